package keycalc

import (
	"context"

	httpAdapter "github.com/bft-labs/keycalc/internal/adapters/http"
	"github.com/bft-labs/keycalc/internal/adapters/local"
	"github.com/bft-labs/keycalc/internal/app"
	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/ports"
)

// Display is the rendered state of a Calculator.
type Display = ports.Display

// Key is a single keypad event. Use ParseKey to build one from a token.
type Key = domain.Key

// Mode reports where calculations are evaluated.
type Mode = domain.DispatchMode

const (
	// ModeRemote evaluates on the compute service.
	ModeRemote = domain.ModeRemote

	// ModeLocalOnly evaluates in process.
	ModeLocalOnly = domain.ModeLocalOnly
)

var (
	// ErrBusy is returned for keys pressed while a calculation is in flight.
	ErrBusy = domain.ErrBusy

	// ErrUnknownKey is returned for tokens that name no key.
	ErrUnknownKey = domain.ErrUnknownKey

	// ErrInvalidConfig wraps configuration errors from New.
	ErrInvalidConfig = domain.ErrInvalidConfig
)

// ParseKey parses a keypad token such as "7", "*", "=" or "c".
func ParseKey(token string) (Key, error) {
	return domain.ParseKey(token)
}

// Calculator is a single calculator session.
type Calculator struct {
	session *app.Session
}

// New creates a Calculator. It does not contact the compute service; the
// first calculation does.
func New(cfg Config, opts ...Option) (*Calculator, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	var remote ports.Evaluator
	if !cfg.LocalOnly {
		remote = httpAdapter.NewRemoteEvaluator(o.httpClient, cfg.ServiceURL, cfg.Timeout, o.logger)
	}
	dispatcher := app.NewDispatcher(remote, local.NewEvaluator(), o.logger)

	return &Calculator{
		session: app.NewSession(dispatcher, o.renderer, o.logger),
	}, nil
}

// Press parses token and presses the key.
func (c *Calculator) Press(ctx context.Context, token string) error {
	k, err := domain.ParseKey(token)
	if err != nil {
		return err
	}
	return c.session.Press(ctx, k)
}

// PressKey presses k. Operator and equals keys block until their calculation
// finishes.
func (c *Calculator) PressKey(ctx context.Context, k Key) error {
	return c.session.Press(ctx, k)
}

// Clear resets the calculator, discarding any calculation in flight.
func (c *Calculator) Clear() {
	c.session.Clear()
}

// Display returns the current display.
func (c *Calculator) Display() Display {
	return c.session.Display()
}

// Mode returns where calculations are currently evaluated.
func (c *Calculator) Mode() Mode {
	return c.session.Mode()
}

// ID returns the session identifier.
func (c *Calculator) ID() string {
	return c.session.ID()
}
