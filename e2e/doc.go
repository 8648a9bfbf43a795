//go:build e2e

// Package e2e runs the recorded VIBEFOLIO scripts in a real browser.
//
// These tests are isolated from the standard test suite via build tags.
// They require a Chrome browser (auto-downloaded by Rod if not present).
//
// Running E2E tests against the bundled fixture app:
//
//	go test -tags=e2e ./e2e/...
//
// Running them against a live deployment:
//
//	E2E_BASE_URL=http://localhost:3000 go test -tags=e2e ./e2e/...
//
// Running all tests except E2E:
//
//	go test ./...
//
// E2E tests use:
//   - Rod for browser automation (Chrome DevTools Protocol)
//   - the fixture-app server as a stand-in for the web app
//   - BrowserClient from pkg/testutil for Chrome helpers
//
// Test isolation:
// Each test starts its own server on a random port and launches
// its own browser instance. Tests can run in parallel.
package e2e
