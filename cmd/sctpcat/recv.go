package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func (a *app) newRecvCmd() *cobra.Command {
	var count int

	cmd := &cobra.Command{
		Use:   "recv <endpoint>",
		Short: "Print received messages until the peer closes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 0 {
				return fmt.Errorf("count must not be negative")
			}
			s, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			buf := make([]byte, a.cfg.BufferSize)
			for received := 0; count == 0 || received < count; received++ {
				n, err := readMessage(cmd.Context(), s, buf)
				if errors.Is(err, io.EOF) {
					a.logger.WithField("messages", received).Debug("Peer closed the session")
					return nil
				}
				if err != nil {
					return err
				}
				if err := printMessage(cmd.OutOrStdout(), s.MaxStreams() > 0, buf[:n]); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&count, "count", "n", 0, "stop after this many messages (0 reads until EOF)")
	return cmd
}
