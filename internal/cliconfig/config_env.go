package cliconfig

import "os"

// ApplyEnvConfig applies configuration from environment variables (KEYCALC_*).
// It respects flags that have been explicitly set (changed map).
// Returns error if any environment variable has an invalid format.
func ApplyEnvConfig(cfg *Config, changed map[string]bool) error {
	s := newConfigSetter(changed)

	s.setString("service-url", os.Getenv("KEYCALC_SERVICE_URL"), &cfg.ServiceURL)
	s.setString("log-level", os.Getenv("KEYCALC_LOG_LEVEL"), &cfg.LogLevel)
	s.setString("log-format", os.Getenv("KEYCALC_LOG_FORMAT"), &cfg.LogFormat)
	s.setBoolFromString("local-only", os.Getenv("KEYCALC_LOCAL_ONLY"), &cfg.LocalOnly)

	if err := s.setDuration("timeout", os.Getenv("KEYCALC_TIMEOUT"), &cfg.Timeout); err != nil {
		return err
	}

	return nil
}
