package keycalc

import (
	"net/http"

	logAdapter "github.com/bft-labs/keycalc/internal/adapters/log"
	"github.com/bft-labs/keycalc/internal/ports"
)

// HTTPClient is the interface for making HTTP requests.
// *http.Client satisfies this interface.
type HTTPClient = ports.HTTPClient

// Logger is the interface for structured logging.
type Logger = ports.Logger

// LogField represents a structured log field.
type LogField = ports.Field

// Renderer receives the display after every change.
type Renderer = ports.Renderer

// RendererFunc adapts a function to Renderer.
type RendererFunc func(Display)

// Render calls f.
func (f RendererFunc) Render(d Display) { f(d) }

// Option configures optional behavior of a Calculator.
type Option func(*options)

type options struct {
	httpClient ports.HTTPClient
	logger     ports.Logger
	renderer   ports.Renderer
}

func defaultOptions() options {
	return options{
		httpClient: &http.Client{},
		logger:     logAdapter.NewNoopLogger(),
	}
}

// WithHTTPClient sets a custom HTTP client for the compute service.
// Timeouts come from Config.Timeout, so the client needs none of its own.
func WithHTTPClient(client HTTPClient) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithLogger sets a custom logger for structured logging.
// If not provided, a no-op logger is used (no output).
func WithLogger(logger Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRenderer registers r to receive every display change. Render is called
// synchronously and must not call back into the Calculator.
func WithRenderer(r Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}
