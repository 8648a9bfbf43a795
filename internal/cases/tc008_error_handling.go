package cases

import (
	"time"

	"github.com/vibefolio/vibefolio-e2e/internal/config"
	"github.com/vibefolio/vibefolio-e2e/pkg/testutil"
)

const errorHandlingFailure = "Test failed: The system did not handle invalid routes and network failures " +
	"gracefully. Expected user-friendly error messages and retry options were not displayed as per the test plan."

// errorHandling walks invalid routes and a simulated API failure, using the
// header navigation in between, and looks for an error or retry message.
func errorHandling(b *testutil.BrowserClient, cfg config.Config) error {
	gotoAndSettle := func(route string) error {
		if err := b.Goto(cfg.URL(route), cfg.NavigationTimeout); err != nil {
			return err
		}
		return b.Pause(cfg.SettleDelay)
	}

	for _, route := range []string{"/non-existent-route", "/projects", "/profile"} {
		if err := gotoAndSettle(route); err != nil {
			return err
		}
	}

	// 발견
	if err := b.Click("xpath=html/body/header[2]/div/nav/a", cfg.ActionDelay, cfg.DefaultTimeout); err != nil {
		return err
	}

	for _, route := range []string{"/api/projects?simulateNetworkFailure=true", "/발견"} {
		if err := gotoAndSettle(route); err != nil {
			return err
		}
	}

	// 채용 NEW
	if err := b.Click("xpath=html/body/header[2]/div/nav/a[2]", cfg.ActionDelay, cfg.DefaultTimeout); err != nil {
		return err
	}

	err := b.ExpectVisible("Unexpected Success Message", time.Second)
	return withPlanMessage(err, errorHandlingFailure)
}
