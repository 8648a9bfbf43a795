package cases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vibefolio/vibefolio-e2e/internal/config"
	"github.com/vibefolio/vibefolio-e2e/pkg/testutil"
)

// Run executes one script in its own browser:
//  1. launch Chrome and open an incognito context
//  2. navigate to the application root, waiting only for commit
//  3. wait for DOMContentLoaded on the page and its iframes, ignoring timeouts
//  4. run the script's steps and assertions
//  5. pause, then tear everything down
//
// Teardown runs whatever happens and its errors are joined onto the result.
func Run(ctx context.Context, tc Case, cfg config.Config, logger logrus.FieldLogger) Result {
	log := logger.WithField("case", tc.ID)
	log.WithField("title", tc.Title).Info("starting")

	start := time.Now()
	err := run(ctx, tc, cfg, log)
	res := Result{
		ID:           tc.ID,
		Title:        tc.Title,
		KnownFailure: tc.KnownFailure,
		Duration:     time.Since(start),
		Err:          err,
	}

	entry := log.WithFields(logrus.Fields{"status": res.Status(), "duration": res.Duration.Round(time.Millisecond)})
	if err != nil {
		entry = entry.WithError(err)
	}
	if res.OK() {
		entry.Info("finished")
	} else {
		entry.Warn("finished")
	}
	return res
}

func run(ctx context.Context, tc Case, cfg config.Config, log logrus.FieldLogger) (err error) {
	client, err := testutil.NewBrowserClient(ctx, testutil.BrowserConfig{
		Headless:     cfg.Headless,
		Bin:          cfg.BrowserBin,
		WindowWidth:  cfg.WindowWidth,
		WindowHeight: cfg.WindowHeight,
		Timeout:      cfg.DefaultTimeout,
		Logger:       log,
	})
	if err != nil {
		return err
	}
	defer func() {
		if cerr := client.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()

	if _, err := client.Navigate(cfg.URL(""), cfg.NavigationTimeout); err != nil {
		return err
	}
	client.WaitForLoadState(cfg.LoadStateTimeout)

	if tc.script == nil {
		return fmt.Errorf("test case %s has no script", tc.ID)
	}
	if err := tc.script(client, cfg); err != nil {
		return err
	}

	return client.Pause(cfg.FinalPause)
}
