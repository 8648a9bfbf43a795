// Package config holds the settings shared by every browser script.
//
// Values are consolidated in order: defaults, an optional YAML file, then
// E2E_* environment variables. CLI flags are applied last by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config controls where the scripts point and how long they wait.
type Config struct {
	BaseURL    string `yaml:"base_url" envconfig:"E2E_BASE_URL"`
	Headless   bool   `yaml:"headless" envconfig:"E2E_HEADLESS"`
	BrowserBin string `yaml:"browser_bin" envconfig:"E2E_BROWSER_BIN"`

	WindowWidth  int `yaml:"window_width" envconfig:"E2E_WINDOW_WIDTH"`
	WindowHeight int `yaml:"window_height" envconfig:"E2E_WINDOW_HEIGHT"`

	DefaultTimeout    time.Duration `yaml:"default_timeout" envconfig:"E2E_DEFAULT_TIMEOUT"`
	NavigationTimeout time.Duration `yaml:"navigation_timeout" envconfig:"E2E_NAVIGATION_TIMEOUT"`
	LoadStateTimeout  time.Duration `yaml:"load_state_timeout" envconfig:"E2E_LOAD_STATE_TIMEOUT"`
	ActionDelay       time.Duration `yaml:"action_delay" envconfig:"E2E_ACTION_DELAY"`   // fixed sleep before each click
	SettleDelay       time.Duration `yaml:"settle_delay" envconfig:"E2E_SETTLE_DELAY"`   // fixed sleep after each scripted goto
	AssertTimeout     time.Duration `yaml:"assert_timeout" envconfig:"E2E_ASSERT_TIMEOUT"` // visibility assertions without an explicit timeout
	FinalPause        time.Duration `yaml:"final_pause" envconfig:"E2E_FINAL_PAUSE"`
}

// Default returns the values the recorded scripts were generated with.
func Default() Config {
	return Config{
		BaseURL:           "http://localhost:3000",
		Headless:          true,
		WindowWidth:       1280,
		WindowHeight:      720,
		DefaultTimeout:    5 * time.Second,
		NavigationTimeout: 10 * time.Second,
		LoadStateTimeout:  3 * time.Second,
		ActionDelay:       3 * time.Second,
		SettleDelay:       3 * time.Second,
		AssertTimeout:     30 * time.Second,
		FinalPause:        5 * time.Second,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", path, err)
		}
		dec := yaml.NewDecoder(bytes.NewReader(raw))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return cfg, fmt.Errorf("failed to read environment: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate reports the first setting that cannot drive a browser.
func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("base url %q must be absolute", c.BaseURL)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", c.WindowWidth, c.WindowHeight)
	}

	durations := []struct {
		name string
		d    time.Duration
	}{
		{"default_timeout", c.DefaultTimeout},
		{"navigation_timeout", c.NavigationTimeout},
		{"load_state_timeout", c.LoadStateTimeout},
		{"action_delay", c.ActionDelay},
		{"settle_delay", c.SettleDelay},
		{"assert_timeout", c.AssertTimeout},
		{"final_pause", c.FinalPause},
	}
	for _, d := range durations {
		if d.d < 0 {
			return fmt.Errorf("%s must not be negative, got %v", d.name, d.d)
		}
	}
	return nil
}

// URL joins the base URL with an application route such as "/profile" or
// "/api/projects?simulateNetworkFailure=true".
func (c Config) URL(route string) string {
	base := strings.TrimRight(c.BaseURL, "/")
	if route == "" {
		return base
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return base + route
}
