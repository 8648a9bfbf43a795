// browser.go provides browser automation utilities for the recorded scripts.
// It wraps Rod to provide a headless Chrome with one incognito context,
// the fixed waits the scripts were recorded with, and text assertions.
package testutil

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"slices"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"github.com/sirupsen/logrus"
)

// BrowserConfig configures Chrome launch options.
type BrowserConfig struct {
	Headless     bool          // Run in headless mode (default: true)
	Bin          string        // Chrome binary; empty lets Rod find or download one
	WindowWidth  int           // default: 1280
	WindowHeight int           // default: 720
	Timeout      time.Duration // Default operation timeout (default: 5s)
	Logger       logrus.FieldLogger
}

// DefaultBrowserConfig returns the launch options the scripts were recorded with.
func DefaultBrowserConfig() BrowserConfig {
	return BrowserConfig{
		Headless:     true,
		WindowWidth:  1280,
		WindowHeight: 720,
		Timeout:      5 * time.Second,
		Logger:       logrus.StandardLogger(),
	}
}

var errClosed = errors.New("browser client is closed")

// BrowserClient owns one Chrome process, one incognito context inside it and
// the main page opened by Navigate. It is not safe for concurrent use.
type BrowserClient struct {
	ctx       context.Context
	launcher  *launcher.Launcher
	browser   *rod.Browser
	incognito *rod.Browser
	page      *rod.Page
	pages     []proto.TargetTargetID // context pages in the order they appeared
	timeout   time.Duration
	log       logrus.FieldLogger
}

// newLauncher builds the Chrome command line:
//   - window size matching the recorded viewport
//   - no /dev/shm usage and single process mode (container friendly)
//   - no sandbox and no GPU
func newLauncher(cfg BrowserConfig) *launcher.Launcher {
	l := launcher.New().
		Headless(cfg.Headless).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("window-size", fmt.Sprintf("%d,%d", cfg.WindowWidth, cfg.WindowHeight)).
		Set("disable-dev-shm-usage").
		Set("ipc", "host").
		Set("single-process")
	if cfg.Bin != "" {
		l = l.Bin(cfg.Bin)
	}
	return l
}

// OrphanPattern is an extended regular expression matching the command line
// of Chrome processes started by NewBrowserClient and of no other browser.
// Rod gives each launch a user data dir under DefaultUserDataDirPrefix.
func OrphanPattern() string {
	dir := launcher.DefaultUserDataDirPrefix
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return regexp.QuoteMeta("--user-data-dir=" + dir + string(filepath.Separator))
}

// NewBrowserClient launches Chrome and opens a fresh incognito context.
// Every browser operation is bound to ctx; Close still works after ctx is done.
func NewBrowserClient(ctx context.Context, cfg BrowserConfig) (*BrowserClient, error) {
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	l := newLauncher(cfg)
	url, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch Chrome: %w", err)
	}

	// Rod's default device would override the window size.
	browser := rod.New().ControlURL(url).NoDefaultDevice()
	if err := browser.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("failed to connect to Chrome: %w", err)
	}

	incognito, err := browser.Incognito()
	if err != nil {
		_ = browser.Close()
		l.Kill()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	return &BrowserClient{
		ctx:       ctx,
		launcher:  l,
		browser:   browser,
		incognito: incognito,
		timeout:   cfg.Timeout,
		log:       cfg.Logger,
	}, nil
}

// Navigate opens the main page and navigates it to url. It returns once the
// navigation is committed, without waiting for any load event.
func (c *BrowserClient) Navigate(url string, timeout time.Duration) (*rod.Page, error) {
	if c.incognito == nil {
		return nil, errClosed
	}
	page, err := c.incognito.Context(c.ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	c.page = page
	c.pages = append(c.pages, page.TargetID)

	c.log.WithFields(logrus.Fields{"step": "navigate", "url": url}).Debug("navigating")

	pt := page.Timeout(timeout)
	defer pt.CancelTimeout()
	if err := pt.Navigate(url); err != nil {
		return nil, fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return page, nil
}

// Goto navigates the main page to url and waits for its load event.
func (c *BrowserClient) Goto(url string, timeout time.Duration) error {
	if c.page == nil {
		return errors.New("no page open, call Navigate first")
	}

	c.log.WithFields(logrus.Fields{"step": "goto", "url": url}).Debug("navigating")

	pt := c.page.Timeout(timeout)
	defer pt.CancelTimeout()
	if err := pt.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	if err := pt.WaitLoad(); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, err)
	}
	return nil
}

// WaitForLoadState waits for DOMContentLoaded on the main page and then on
// each of its iframes, giving each up to timeout. Failures are ignored.
func (c *BrowserClient) WaitForLoadState(timeout time.Duration) {
	if c.page == nil {
		return
	}

	frames := []*rod.Page{c.page}
	if iframes, err := c.page.Elements("iframe"); err == nil {
		for _, el := range iframes {
			if frame, err := el.Frame(); err == nil {
				frames = append(frames, frame)
			}
		}
	}

	for _, frame := range frames {
		if err := waitDOMContentLoaded(frame, timeout); err != nil {
			c.log.WithField("step", "load-state").WithError(err).Debug("ignoring load state timeout")
		}
	}
}

func waitDOMContentLoaded(p *rod.Page, timeout time.Duration) error {
	pt := p.Timeout(timeout)
	defer pt.CancelTimeout()
	return pt.Wait(rod.Eval(`() => document.readyState !== 'loading'`))
}

// CurrentPage returns the most recently opened page of the context that is
// still open. Pages opened by the application (popups, new tabs) count.
func (c *BrowserClient) CurrentPage() (*rod.Page, error) {
	if c.incognito == nil {
		return nil, errClosed
	}
	scope := c.incognito.Context(c.ctx)

	res, err := proto.TargetGetTargets{}.Call(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to list pages: %w", err)
	}

	open := make(map[proto.TargetTargetID]bool)
	for _, info := range res.TargetInfos {
		if info.Type != proto.TargetTargetInfoTypePage || info.BrowserContextID != c.incognito.BrowserContextID {
			continue
		}
		open[info.TargetID] = true
		if !slices.Contains(c.pages, info.TargetID) {
			c.pages = append(c.pages, info.TargetID)
		}
	}

	for i := len(c.pages) - 1; i >= 0; i-- {
		if !open[c.pages[i]] {
			continue
		}
		if c.page != nil && c.pages[i] == c.page.TargetID {
			return c.page, nil
		}
		page, err := scope.PageFromTarget(c.pages[i])
		if err != nil {
			return nil, fmt.Errorf("failed to attach to page %s: %w", c.pages[i], err)
		}
		return page, nil
	}
	return nil, errors.New("no page open")
}

// Click resolves xpath on the current page, sleeps delay, then clicks the
// first match. Finding and clicking must finish within timeout.
func (c *BrowserClient) Click(xpath string, delay, timeout time.Duration) error {
	page, err := c.CurrentPage()
	if err != nil {
		return err
	}

	c.log.WithFields(logrus.Fields{"step": "click", "xpath": xpath}).Debug("clicking")

	if err := c.Pause(delay); err != nil {
		return err
	}

	pt := page.Context(c.ctx).Timeout(timeout)
	defer pt.CancelTimeout()

	el, err := pt.ElementX(strings.TrimPrefix(xpath, "xpath="))
	if err != nil {
		return fmt.Errorf("failed to find %s: %w", xpath, err)
	}
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click %s: %w", xpath, err)
	}
	return nil
}

// Wheel dispatches a mouse wheel event on the main page.
func (c *BrowserClient) Wheel(dx, dy float64) error {
	if c.page == nil {
		return errors.New("no page open")
	}

	c.log.WithFields(logrus.Fields{"step": "wheel", "dx": dx, "dy": dy}).Debug("scrolling")

	if err := c.page.Mouse.Scroll(dx, dy, 1); err != nil {
		return fmt.Errorf("failed to scroll: %w", err)
	}
	return nil
}

// SetViewport emulates a device viewport on the main page.
func (c *BrowserClient) SetViewport(width, height int, mobile bool) error {
	if c.page == nil {
		return errors.New("no page open")
	}

	c.log.WithFields(logrus.Fields{"step": "viewport", "width": width, "height": height}).Debug("resizing")

	err := c.page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             width,
		Height:            height,
		DeviceScaleFactor: 1,
		Mobile:            mobile,
	})
	if err != nil {
		return fmt.Errorf("failed to set viewport %dx%d: %w", width, height, err)
	}
	return nil
}

// ResetViewport drops any emulated viewport so the window size applies again.
func (c *BrowserClient) ResetViewport() error {
	if c.page == nil {
		return errors.New("no page open")
	}
	if err := c.page.SetViewport(nil); err != nil {
		return fmt.Errorf("failed to reset viewport: %w", err)
	}
	return nil
}

// Pause sleeps for d or until the client's context is done.
func (c *BrowserClient) Pause(d time.Duration) error {
	if d <= 0 {
		return c.ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-t.C:
		return nil
	case <-c.ctx.Done():
		return c.ctx.Err()
	}
}

// Page returns the main page, or nil if none open.
func (c *BrowserClient) Page() *rod.Page {
	return c.page
}

// Eval executes JavaScript on the current page and returns the result.
// Requires Navigate() to have been called first.
func (c *BrowserClient) Eval(js string) (interface{}, error) {
	if c.page == nil {
		return nil, errors.New("no page open, call Navigate first")
	}
	page, err := c.CurrentPage()
	if err != nil {
		return nil, err
	}
	result, err := page.Eval(js)
	if err != nil {
		return nil, fmt.Errorf("eval failed: %w", err)
	}
	return result.Value.Val(), nil
}

// WaitStable waits for the current page to be stable (no DOM changes).
func (c *BrowserClient) WaitStable() error {
	if c.page == nil {
		return errors.New("no page open")
	}
	page, err := c.CurrentPage()
	if err != nil {
		return err
	}
	return page.WaitStable(c.timeout)
}

// Close disposes the context, closes Chrome and removes its profile.
// Always call this (via defer) to prevent orphaned Chrome processes.
// Calling it again is a no-op.
func (c *BrowserClient) Close() error {
	var errs []error
	if c.incognito != nil {
		if err := c.incognito.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser context: %w", err))
		}
		c.incognito = nil
	}
	if c.browser != nil {
		if err := c.browser.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close browser: %w", err))
		}
		c.browser = nil
	}
	if c.launcher != nil {
		c.launcher.Kill()
		c.launcher.Cleanup()
		c.launcher = nil
	}
	c.page = nil
	c.pages = nil
	return errors.Join(errs...)
}
