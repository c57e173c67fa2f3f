package cliconfig

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	httpAdapter "github.com/bft-labs/keycalc/internal/adapters/http"
	"github.com/bft-labs/keycalc/internal/domain"
)

// Defaults shared with the HTTP adapter.
const (
	DefaultServiceURL = httpAdapter.DefaultServiceURL
	DefaultTimeout    = httpAdapter.DefaultTimeout
)

// Log output formats.
const (
	LogFormatConsole = "console"
	LogFormatJSON    = "json"
)

// Config holds CLI configuration for keycalc.
type Config struct {
	ServiceURL string
	Timeout    time.Duration

	// LocalOnly starts every session in local-only mode without probing the
	// compute service.
	LocalOnly bool

	LogLevel  string
	LogFormat string
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		ServiceURL: DefaultServiceURL,
		Timeout:    DefaultTimeout,
		LogLevel:   zerolog.InfoLevel.String(),
		LogFormat:  LogFormatConsole,
	}
}

// Validate checks the configuration for errors and normalizes the service URL.
// Errors wrap domain.ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	base, err := httpAdapter.NormalizeBaseURL(c.ServiceURL)
	if err != nil {
		return fmt.Errorf("service-url: %w", err)
	}
	c.ServiceURL = base

	if c.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", domain.ErrInvalidConfig)
	}

	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log-level: %v", domain.ErrInvalidConfig, err)
	}

	switch c.LogFormat {
	case "":
		c.LogFormat = LogFormatConsole
	case LogFormatConsole, LogFormatJSON:
	default:
		return fmt.Errorf("%w: log-format %q must be %q or %q", domain.ErrInvalidConfig, c.LogFormat, LogFormatConsole, LogFormatJSON)
	}

	return nil
}

// configSetter helps apply configuration values while respecting flag precedence.
// It only applies values if the corresponding flag hasn't been explicitly set.
type configSetter struct {
	changed map[string]bool
}

// newConfigSetter creates a new setter with the given changed flags map.
func newConfigSetter(changed map[string]bool) *configSetter {
	return &configSetter{changed: changed}
}

// setString sets a string value if not empty and flag not changed.
func (s *configSetter) setString(flag, value string, dst *string) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value
}

// setDuration parses and sets a duration from string if valid and flag not changed.
func (s *configSetter) setDuration(flag, value string, dst *time.Duration) error {
	if value == "" || s.changed[flag] {
		return nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("parse %s: %w", flag, err)
	}
	*dst = d
	return nil
}

// setBool sets a bool value from a pointer if not nil and flag not changed.
func (s *configSetter) setBool(flag string, value *bool, dst *bool) {
	if value == nil || s.changed[flag] {
		return
	}
	*dst = *value
}

// setBoolFromString parses a string to bool and sets the destination.
// Accepts "true", "1" as true, anything else as false.
func (s *configSetter) setBoolFromString(flag, value string, dst *bool) {
	if value == "" || s.changed[flag] {
		return
	}
	*dst = value == "true" || value == "1"
}
