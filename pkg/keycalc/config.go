package keycalc

import (
	"time"

	httpAdapter "github.com/bft-labs/keycalc/internal/adapters/http"
)

// DefaultServiceURL is the compute service used when Config.ServiceURL is empty.
const DefaultServiceURL = httpAdapter.DefaultServiceURL

// Config configures a Calculator.
type Config struct {
	// ServiceURL is the base URL of the compute service.
	ServiceURL string

	// Timeout bounds each remote calculation. Defaults to 3s.
	Timeout time.Duration

	// LocalOnly skips the compute service entirely.
	LocalOnly bool
}

// SetDefaults fills in zero values.
func (c *Config) SetDefaults() {
	if c.ServiceURL == "" {
		c.ServiceURL = DefaultServiceURL
	}
	if c.Timeout <= 0 {
		c.Timeout = httpAdapter.DefaultTimeout
	}
}

// Validate reports configuration errors. They wrap ErrInvalidConfig.
func (c *Config) Validate() error {
	if c.LocalOnly {
		return nil
	}
	base, err := httpAdapter.NormalizeBaseURL(c.ServiceURL)
	if err != nil {
		return err
	}
	c.ServiceURL = base
	return nil
}
