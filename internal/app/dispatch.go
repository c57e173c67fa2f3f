package app

import (
	"context"
	"sync/atomic"

	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/ports"
)

// Dispatcher chooses between the remote and the local evaluator for each
// calculation.
//
// It starts in ModeRemote. The first Failure(ServiceUnavailable) from the
// remote evaluator moves it to ModeLocalOnly for good, and the same
// calculation is retried locally so the caller never sees that failure.
// There is no re-probing and no half-open state. A failure caused by the
// caller's own ctx ending is returned as-is and does not trip the breaker.
type Dispatcher struct {
	remote ports.Evaluator
	local  ports.Evaluator
	logger ports.Logger
	mode   atomic.Int32
}

// NewDispatcher creates a dispatcher. A nil remote starts in ModeLocalOnly.
func NewDispatcher(remote, local ports.Evaluator, logger ports.Logger) *Dispatcher {
	d := &Dispatcher{
		remote: remote,
		local:  local,
		logger: logger,
	}
	if remote == nil {
		d.mode.Store(int32(domain.ModeLocalOnly))
	}
	return d
}

// Mode returns the current dispatch mode.
func (d *Dispatcher) Mode() domain.DispatchMode {
	return domain.DispatchMode(d.mode.Load())
}

// Calculate evaluates a op b according to the current mode.
func (d *Dispatcher) Calculate(ctx context.Context, a, b float64, op domain.Operator) domain.Outcome {
	if d.Mode() == domain.ModeLocalOnly {
		return d.local.Evaluate(ctx, a, b, op)
	}

	out := d.remote.Evaluate(ctx, a, b, op)
	if !out.Is(domain.ReasonServiceUnavailable) {
		return out
	}
	if err := ctx.Err(); err != nil {
		d.logger.Debug("calculation abandoned by caller",
			ports.String("op", op.Name()),
			ports.Err(err))
		return out
	}

	d.trip(op)
	return d.local.Evaluate(ctx, a, b, op)
}

func (d *Dispatcher) trip(op domain.Operator) {
	if d.mode.CompareAndSwap(int32(domain.ModeRemote), int32(domain.ModeLocalOnly)) {
		d.logger.Warn("remote evaluator unavailable, switching to local evaluation",
			ports.String("op", op.Name()))
	}
}
