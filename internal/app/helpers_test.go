package app

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	logAdapter "github.com/bft-labs/keycalc/internal/adapters/log"
	"github.com/bft-labs/keycalc/internal/adapters/local"
	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/ports"
)

// countingEvaluator counts calls and answers with fn.
type countingEvaluator struct {
	calls atomic.Int32
	fn    func(a, b float64, op domain.Operator) domain.Outcome
}

func (c *countingEvaluator) Evaluate(_ context.Context, a, b float64, op domain.Operator) domain.Outcome {
	c.calls.Add(1)
	return c.fn(a, b, op)
}

func (c *countingEvaluator) Calls() int { return int(c.calls.Load()) }

func healthyRemote() *countingEvaluator {
	return &countingEvaluator{fn: local.Evaluate}
}

func downRemote() *countingEvaluator {
	return &countingEvaluator{fn: func(float64, float64, domain.Operator) domain.Outcome {
		return domain.Fail(domain.ServiceUnavailable())
	}}
}

func failingRemote(msg string) *countingEvaluator {
	return &countingEvaluator{fn: func(float64, float64, domain.Operator) domain.Outcome {
		return domain.Fail(domain.ServiceError(msg))
	}}
}

// blockingEvaluator holds each call until release is closed or signalled.
type blockingEvaluator struct {
	started chan struct{}
	release chan struct{}
	outcome domain.Outcome
}

func newBlockingEvaluator(out domain.Outcome) *blockingEvaluator {
	return &blockingEvaluator{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
		outcome: out,
	}
}

func (b *blockingEvaluator) Evaluate(ctx context.Context, _, _ float64, _ domain.Operator) domain.Outcome {
	b.started <- struct{}{}
	<-b.release
	return b.outcome
}

// recordingRenderer keeps every rendered display.
type recordingRenderer struct {
	mu     sync.Mutex
	frames []ports.Display
}

func (r *recordingRenderer) Render(d ports.Display) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.frames = append(r.frames, d)
}

func (r *recordingRenderer) Frames() []ports.Display {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ports.Display{}, r.frames...)
}

func newTestSession(remote ports.Evaluator, renderer ports.Renderer) *Session {
	noop := logAdapter.NewNoopLogger()
	return NewSession(NewDispatcher(remote, local.NewEvaluator(), noop), renderer, noop)
}

func press(t *testing.T, s *Session, tokens ...string) {
	t.Helper()
	for _, tok := range tokens {
		k, err := domain.ParseKey(tok)
		require.NoError(t, err)
		require.NoError(t, s.Press(context.Background(), k), "press %q", tok)
	}
}
