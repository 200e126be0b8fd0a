package main

import (
	"bufio"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) newSendCmd() *cobra.Command {
	var stream uint16

	cmd := &cobra.Command{
		Use:   "send <endpoint> [message...]",
		Short: "Send one message, or one message per line of stdin",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.open(cmd, args[0])
			if err != nil {
				return err
			}
			defer s.Close()

			if len(args) > 1 {
				return writeMessage(cmd.Context(), s, stream, []byte(strings.Join(args[1:], " ")))
			}

			sent := 0
			scanner := bufio.NewScanner(cmd.InOrStdin())
			scanner.Buffer(make([]byte, a.cfg.BufferSize), a.cfg.BufferSize)
			for scanner.Scan() {
				line := scanner.Bytes()
				if len(line) == 0 {
					continue
				}
				if err := writeMessage(cmd.Context(), s, stream, line); err != nil {
					return err
				}
				sent++
			}
			a.logger.WithField("messages", sent).Debug("Finished sending")
			return scanner.Err()
		},
	}

	cmd.Flags().Uint16Var(&stream, "stream", 0, "stream id for sessions with max_streams")
	return cmd
}
