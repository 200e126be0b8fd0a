package main

import (
	"context"
	"errors"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func (a *app) newEchoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "echo <endpoint>",
		Short: "Write every received message back on the stream it arrived on",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := echo(cmd.Context(), s, make([]byte, a.cfg.BufferSize))
			a.logger.WithFields(logrus.Fields{
				"messages": n,
			}).Info("Echo finished")
			return err
		},
	}
}

// echo copies messages from c back to c until EOF and returns how many it
// echoed. A framed read already holds the stream-id prefix, so the write
// goes back out on the same stream.
func echo(ctx context.Context, c conn, buf []byte) (int, error) {
	echoed := 0
	for {
		n, err := readMessage(ctx, c, buf)
		if errors.Is(err, io.EOF) {
			return echoed, nil
		}
		if err != nil {
			return echoed, err
		}
		err = retry(ctx, func() error {
			pace(c, true)
			_, err := c.Write(buf[:n])
			return err
		})
		if err != nil {
			return echoed, err
		}
		echoed++
	}
}
