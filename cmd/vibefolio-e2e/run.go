package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vibefolio/vibefolio-e2e/internal/cases"
	"github.com/vibefolio/vibefolio-e2e/internal/config"
	"github.com/vibefolio/vibefolio-e2e/internal/report"
)

type runOptions struct {
	*rootOptions

	baseURL    string
	browserBin string
	headed     bool
	parallel   int
	reportPath string
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "run [ID...]",
		Short: "Run scripts by ID, or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("base-url") {
				cfg.BaseURL = opts.baseURL
			}
			if cmd.Flags().Changed("browser-bin") {
				cfg.BrowserBin = opts.browserBin
			}
			if opts.headed {
				cfg.Headless = false
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if opts.parallel < 1 {
				return fmt.Errorf("--parallel must be at least 1, got %d", opts.parallel)
			}

			selected, err := selectCases(args)
			if err != nil {
				return err
			}

			started := time.Now()
			results, runErr := runCases(cmd.Context(), selected, cfg, opts.parallel, opts.logger)
			elapsed := time.Since(started)

			printResults(cmd.OutOrStdout(), results)

			if opts.reportPath != "" {
				err := writeReport(opts.reportPath, report.Summary{
					BaseURL:  cfg.BaseURL,
					Started:  started,
					Duration: elapsed,
					Results:  results,
				})
				if err != nil {
					return err
				}
				opts.logger.WithField("path", opts.reportPath).Info("report written")
			}

			if runErr != nil {
				return runErr
			}
			for _, r := range results {
				if !r.OK() {
					return errMismatch
				}
			}
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.baseURL, "base-url", "", "application root (overrides config and E2E_BASE_URL)")
	f.StringVar(&opts.browserBin, "browser-bin", "", "Chrome binary to launch instead of the managed download")
	f.BoolVar(&opts.headed, "headed", false, "show the browser window")
	f.IntVarP(&opts.parallel, "parallel", "p", 1, "number of scripts to run at once, each in its own browser")
	f.StringVar(&opts.reportPath, "report", "", "write a Markdown report to this path")
	return cmd
}

// selectCases resolves IDs in the order given. No IDs selects every script.
// Repeated IDs run once.
func selectCases(ids []string) ([]cases.Case, error) {
	if len(ids) == 0 {
		return cases.All(), nil
	}

	seen := make(map[string]bool, len(ids))
	out := make([]cases.Case, 0, len(ids))
	for _, id := range ids {
		tc, err := cases.Lookup(id)
		if err != nil {
			return nil, err
		}
		if seen[tc.ID] {
			continue
		}
		seen[tc.ID] = true
		out = append(out, tc)
	}
	return out, nil
}

// runCases runs each script in its own browser, at most parallel at a time.
// Results keep the order of selected. Once ctx is done no further script is
// started; those left out get ctx's error as their result.
func runCases(ctx context.Context, selected []cases.Case, cfg config.Config, parallel int, logger logrus.FieldLogger) ([]cases.Result, error) {
	results := make([]cases.Result, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(parallel)
	for i, tc := range selected {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i] = cases.Result{ID: tc.ID, Title: tc.Title, KnownFailure: tc.KnownFailure, Err: err}
				return err
			}
			// A failing script does not stop the others.
			results[i] = cases.Run(gctx, tc, cfg, logger)
			return ctx.Err()
		})
	}

	return results, g.Wait()
}

var statusColors = map[cases.Status]*color.Color{
	cases.StatusPassed:         color.New(color.FgGreen, color.Bold),
	cases.StatusFailed:         color.New(color.FgRed, color.Bold),
	cases.StatusKnownFailure:   color.New(color.FgYellow),
	cases.StatusUnexpectedPass: color.New(color.FgMagenta, color.Bold),
}

// printResults writes one line per script and the error under any that did
// not pass, then a tally.
func printResults(w io.Writer, results []cases.Result) {
	counts := make(map[cases.Status]int)
	for _, r := range results {
		status := r.Status()
		counts[status]++

		label := fmt.Sprintf("%-5s", status)
		if c, ok := statusColors[status]; ok {
			label = c.Sprint(label)
		}
		fmt.Fprintf(w, "%s %s  %s (%s)\n", label, r.ID, r.Title, r.Duration.Round(time.Millisecond))

		switch status {
		case cases.StatusFailed, cases.StatusKnownFailure:
			fmt.Fprintf(w, "      %s\n", strings.ReplaceAll(r.Err.Error(), "\n", "\n      "))
		case cases.StatusUnexpectedPass:
			fmt.Fprintf(w, "      expected failure: %s\n", r.KnownFailure)
		}
	}

	fmt.Fprintf(w, "\n%d passed, %d failed, %d expected failures, %d unexpected passes\n",
		counts[cases.StatusPassed], counts[cases.StatusFailed],
		counts[cases.StatusKnownFailure], counts[cases.StatusUnexpectedPass])
}

func writeReport(path string, s report.Summary) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close report: %w", cerr)
		}
	}()

	if err := report.WriteMarkdown(f, s); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
