package main

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/opd-ai/sctplink/config"
	"github.com/opd-ai/sctplink/sctp"
)

// app carries the flag values and the configuration shared by every
// subcommand.
type app struct {
	cfgFile    string
	logLevel   string
	logFormat  string
	nonBlock   bool
	bufferSize int

	cfg    *config.Config
	logger *logrus.Entry
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "sctpcat",
		Short: "Send and receive messages over SCTP sessions",
		Long: `sctpcat opens an SCTP session from a URI or a named endpoint and moves
messages between it and the terminal.

  sctp://host:port[?listen][&max_streams=n][&reuse=1][&events]

On a session with max_streams every message is shown with its stream id.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.cfgFile, "config", "", "config file (.toml, .yaml or .yml)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (default \"info\")")
	flags.StringVar(&a.logFormat, "log-format", "", "log format: text or json (default \"text\")")
	flags.BoolVar(&a.nonBlock, "nonblock", false, "open sessions in non-blocking mode")
	flags.IntVar(&a.bufferSize, "buffer", 0, "receive buffer size in bytes (default 65536)")

	root.AddCommand(
		a.newSendCmd(),
		a.newRecvCmd(),
		a.newEchoCmd(),
		newVersionCmd(),
	)
	return root
}

// setup loads the configuration, applies flag overrides and configures
// logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg := config.Default()
	if a.cfgFile != "" {
		var err error
		cfg, err = config.Load(a.cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.LogLevel = a.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = a.logFormat
	}
	if flags.Changed("nonblock") {
		cfg.NonBlock = a.nonBlock
	}
	if flags.Changed("buffer") {
		cfg.BufferSize = a.bufferSize
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := cfg.ApplyLogging(); err != nil {
		return err
	}
	logrus.SetOutput(cmd.ErrOrStderr())

	a.cfg = cfg
	a.logger = logrus.WithField("component", "sctpcat")
	return nil
}

// open resolves target against the configured endpoints and opens a session.
func (a *app) open(cmd *cobra.Command, target string) (*sctp.Session, error) {
	uri, err := a.cfg.Resolve(target)
	if err != nil {
		return nil, err
	}

	var flags sctp.Flags
	if a.cfg.NonBlock {
		flags |= sctp.FlagNonBlock
	}

	s, err := sctp.OpenContext(cmd.Context(), uri, flags)
	if err != nil {
		return nil, err
	}
	a.logger.WithFields(logrus.Fields{
		"uri":         uri,
		"remote_addr": s.RemoteAddr(),
		"max_streams": s.MaxStreams(),
	}).Debug("Session opened")
	return s, nil
}
