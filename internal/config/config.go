// Package config builds the run configuration: the primary and optional
// secondary RPC endpoints, the per-request timeout and the strict flag.
// It is read from a YAML file (with ${VAR} expansion) or from environment
// variables, then overridden by command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Environment variables read by FromEnv.
const (
	EnvPrimaryURL   = "RPC_URL"
	EnvSecondaryURL = "RPC_URL_2"
	EnvConfigPath   = "SLOTCOMMIT_CONFIG"
)

// DefaultTimeout bounds every RPC request when nothing else is configured.
const DefaultTimeout = 30 * time.Second

// Config is the root configuration.
type Config struct {
	Primary   Endpoint  `yaml:"primary"`
	Secondary *Endpoint `yaml:"secondary,omitempty"` // nil disables the cross-check
	Defaults  Defaults  `yaml:"defaults"`
	Strict    bool      `yaml:"strict"` // treat a cross-check mismatch as a failure
}

// Endpoint is a single JSON-RPC endpoint.
type Endpoint struct {
	Name    string        `yaml:"name"`
	URL     string        `yaml:"url"`               // supports ${VAR} expansion
	Timeout time.Duration `yaml:"timeout,omitempty"` // falls back to Defaults.Timeout
}

// Defaults apply to endpoints that do not set their own values.
type Defaults struct {
	Timeout time.Duration `yaml:"timeout"`
}

// LoadFile reads and parses a YAML configuration file, expanding environment
// variables. The result is not validated; apply overrides, then call Validate.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	// Allows url: ${RPC_URL}
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// FromEnv builds an unvalidated configuration from RPC_URL and RPC_URL_2.
func FromEnv() *Config {
	cfg := &Config{
		Primary: Endpoint{Name: "primary", URL: os.Getenv(EnvPrimaryURL)},
	}
	if u := os.Getenv(EnvSecondaryURL); u != "" {
		cfg.Secondary = &Endpoint{Name: "secondary", URL: u}
	}
	return cfg
}

// Overrides holds command-line values that take precedence over the file or
// environment. Zero values leave the configuration untouched.
type Overrides struct {
	PrimaryURL   string
	SecondaryURL string
	Timeout      time.Duration
	Strict       *bool // nil when the flag was not given
}

// Apply merges o into c. Call Validate afterwards.
func (c *Config) Apply(o Overrides) {
	if o.PrimaryURL != "" {
		c.Primary.URL = o.PrimaryURL
	}
	if o.SecondaryURL != "" {
		if c.Secondary == nil {
			c.Secondary = &Endpoint{}
		}
		c.Secondary.URL = o.SecondaryURL
	}
	if o.Timeout > 0 {
		c.Defaults.Timeout = o.Timeout
		c.Primary.Timeout = o.Timeout
		if c.Secondary != nil {
			c.Secondary.Timeout = o.Timeout
		}
	}
	if o.Strict != nil {
		c.Strict = *o.Strict
	}
}

// Validate checks the configuration and applies defaults. Suspicious
// timeouts are logged as warnings but do not fail validation.
func (c *Config) Validate(logger zerolog.Logger) error {
	if c.Defaults.Timeout < 0 {
		return fmt.Errorf("defaults.timeout must be > 0")
	}
	if c.Defaults.Timeout == 0 {
		c.Defaults.Timeout = DefaultTimeout
	}

	// A secondary whose URL expanded to nothing is treated as absent.
	if c.Secondary != nil && strings.TrimSpace(c.Secondary.URL) == "" {
		c.Secondary = nil
	}

	if strings.TrimSpace(c.Primary.URL) == "" {
		return fmt.Errorf("primary RPC endpoint is required (set %s, --rpc-url or primary.url)", EnvPrimaryURL)
	}

	if err := c.Primary.validate("primary", c.Defaults.Timeout, logger); err != nil {
		return err
	}
	if c.Secondary != nil {
		if err := c.Secondary.validate("secondary", c.Defaults.Timeout, logger); err != nil {
			return err
		}
		if c.Secondary.Name == c.Primary.Name {
			c.Secondary.Name += "-2"
		}
	}
	return nil
}

func (e *Endpoint) validate(role string, defaultTimeout time.Duration, logger zerolog.Logger) error {
	if e.Name == "" {
		e.Name = role
	}
	if e.Timeout < 0 {
		return fmt.Errorf("%s endpoint %s: timeout must be > 0", role, e.Name)
	}
	if e.Timeout == 0 {
		e.Timeout = defaultTimeout
	}

	u, err := url.Parse(e.URL)
	if err != nil {
		return fmt.Errorf("%s endpoint %s: invalid url: %w", role, e.Name, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%s endpoint %s: invalid url (missing scheme or host)", role, e.Name)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s endpoint %s: invalid url scheme %q (expected http or https)", role, e.Name, u.Scheme)
	}

	const low = 500 * time.Millisecond
	const high = 2 * time.Minute
	if e.Timeout < low {
		logger.Warn().Str("endpoint", e.Name).Dur("timeout", e.Timeout).
			Msg("timeout is very low; requests may fail under normal network jitter")
	}
	if e.Timeout > high {
		logger.Warn().Str("endpoint", e.Name).Dur("timeout", e.Timeout).
			Msg("timeout is very high; a hung endpoint will take a long time to surface")
	}
	return nil
}
