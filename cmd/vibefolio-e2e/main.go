// VIBEFOLIO E2E runner
//
// Runs the recorded browser scripts against a VIBEFOLIO deployment and
// reports how each one compares with the recorded outcome.
//
// Usage:
//
//	go run ./cmd/vibefolio-e2e list
//	go run ./cmd/vibefolio-e2e run                     # every script
//	go run ./cmd/vibefolio-e2e run TC001 TC009 --headed
//	go run ./cmd/vibefolio-e2e run --parallel 4 --report report.md
//
// Settings come from defaults, --config, E2E_* variables and flags, in that
// order. The exit code is 1 when any script does not match its recording.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := newRootCmd().ExecuteContext(ctx)
	stop()

	switch {
	case err == nil:
	case errors.Is(err, errMismatch):
		os.Exit(1)
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
}
