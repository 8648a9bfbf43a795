// Fixture App Server
//
// This server is a stand-in for the VIBEFOLIO web application. It renders the
// landing page, creator profiles, the 404 page and /api/projects with the
// element layout the recorded scripts click through, so the scripts can be
// exercised without the real deployment:
//
//	go run ./cmd/fixture-app --addr :3000
//	go run ./cmd/vibefolio-e2e run --base-url http://localhost:3000
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/vibefolio/vibefolio-e2e/cmd/fixture-app/server"
)

func main() {
	logger := logrus.New()

	if err := newRootCmd(logger).Execute(); err != nil {
		logger.WithError(err).Error("fixture app failed")
		os.Exit(1)
	}
}

func newRootCmd(logger *logrus.Logger) *cobra.Command {
	cfg := server.DefaultConfig()
	cfg.Addr = ":3000"
	var verbose bool

	cmd := &cobra.Command{
		Use:           "fixture-app",
		Short:         "Serve a stand-in for the VIBEFOLIO web app",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if verbose {
				logger.SetLevel(logrus.DebugLevel)
			}
			cfg.Logger = logger

			srv, err := server.NewServer(cfg)
			if err != nil {
				return fmt.Errorf("failed to create server: %w", err)
			}
			if _, err := srv.Start(); err != nil {
				return fmt.Errorf("failed to start server: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "VIBEFOLIO fixture ready on %s\n", srv.URL())

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			<-ctx.Done()

			logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address (\":0\" picks a free port)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every request that misses a route")
	return cmd
}
