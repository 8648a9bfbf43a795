// Package cases holds the recorded browser scripts for the VIBEFOLIO web app.
//
// Each script is a flat procedure: a fixed sequence of navigations, sleeps,
// XPath clicks and wheel scrolls followed by visible-text assertions. Run
// wraps a script with the session setup and teardown every recording shares.
package cases

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibefolio/vibefolio-e2e/internal/config"
	"github.com/vibefolio/vibefolio-e2e/pkg/testutil"
)

// Case is one recorded script.
type Case struct {
	ID    string
	Title string

	// KnownFailure is the test-plan message the script is recorded to fail
	// with against the current application. Empty when it should pass.
	KnownFailure string

	script func(b *testutil.BrowserClient, cfg config.Config) error
}

var all = []Case{
	{
		ID:     "TC001",
		Title:  "Main Landing Page Load and Display",
		script: landingPage,
	},
	{
		ID:           "TC007",
		Title:        "Profile Page Display and Data Accuracy",
		KnownFailure: profileFailure,
		script:       profilePage,
	},
	{
		ID:           "TC008",
		Title:        "Error Handling on Invalid URL and Network Failures",
		KnownFailure: errorHandlingFailure,
		script:       errorHandling,
	},
	{
		ID:     "TC009",
		Title:  "Responsive UI Components Verification",
		script: responsiveLayout,
	},
}

// All returns every script in ID order.
func All() []Case {
	out := make([]Case, len(all))
	copy(out, all)
	return out
}

// Lookup finds a script by ID, ignoring case.
func Lookup(id string) (Case, error) {
	for _, c := range all {
		if strings.EqualFold(c.ID, id) {
			return c, nil
		}
	}
	return Case{}, fmt.Errorf("unknown test case %q", id)
}

// Status classifies a finished run.
type Status string

const (
	StatusPassed         Status = "PASS"
	StatusFailed         Status = "FAIL"
	StatusKnownFailure   Status = "XFAIL" // failed with the recorded test-plan message
	StatusUnexpectedPass Status = "XPASS" // passed although a failure was recorded
)

// Result is the outcome of one script run.
type Result struct {
	ID           string
	Title        string
	KnownFailure string
	Duration     time.Duration
	Err          error
}

// Status reports how the run compares with the recorded expectation.
func (r Result) Status() Status {
	if r.Err == nil {
		if r.KnownFailure != "" {
			return StatusUnexpectedPass
		}
		return StatusPassed
	}

	var assertErr *testutil.AssertionError
	if r.KnownFailure != "" && errors.As(r.Err, &assertErr) && assertErr.Message == r.KnownFailure {
		return StatusKnownFailure
	}
	return StatusFailed
}

// OK is true when the run matches the recorded expectation.
func (r Result) OK() bool {
	s := r.Status()
	return s == StatusPassed || s == StatusKnownFailure
}

// withPlanMessage replaces the text of a failed assertion with the
// human-readable message from the test plan. Other errors pass through.
func withPlanMessage(err error, msg string) error {
	var assertErr *testutil.AssertionError
	if errors.As(err, &assertErr) {
		assertErr.Message = msg
	}
	return err
}
