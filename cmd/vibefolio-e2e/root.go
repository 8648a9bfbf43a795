package main

import (
	"errors"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// errMismatch is returned when at least one script did not match its
// recorded outcome. The per-script output has already been printed.
var errMismatch = errors.New("one or more test cases did not match the recorded outcome")

type rootOptions struct {
	configPath string
	verbose    bool
	logger     *logrus.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{logger: logrus.New()}

	cmd := &cobra.Command{
		Use:           "vibefolio-e2e",
		Short:         "Run the recorded VIBEFOLIO browser scripts",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			opts.logger.SetOutput(cmd.ErrOrStderr())
			opts.logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
			if opts.verbose {
				opts.logger.SetLevel(logrus.DebugLevel)
			}
		},
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "YAML settings file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	cmd.AddCommand(newListCmd(), newRunCmd(opts))
	return cmd
}
