package http

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/bft-labs/keycalc/internal/domain"
)

// DefaultServiceURL is the base URL of a compute service started with
// `keycalc serve` on the same host.
const DefaultServiceURL = "http://localhost:8080"

// NormalizeBaseURL trims trailing slashes from raw and checks that it is an
// absolute http(s) URL with a host. Errors wrap domain.ErrInvalidConfig.
func NormalizeBaseURL(raw string) (string, error) {
	base := strings.TrimRight(raw, "/")
	u, err := url.Parse(base)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return "", fmt.Errorf("%w: service url %q must be an absolute http(s) URL", domain.ErrInvalidConfig, raw)
	}
	return base, nil
}
