package ports

import (
	"context"

	"github.com/bft-labs/keycalc/internal/domain"
)

// Evaluator computes a op b.
// Implementations report every failure through the returned Outcome and
// never panic. Remote implementations must honor ctx cancellation.
type Evaluator interface {
	Evaluate(ctx context.Context, a, b float64, op domain.Operator) domain.Outcome
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(ctx context.Context, a, b float64, op domain.Operator) domain.Outcome

// Evaluate calls f.
func (f EvaluatorFunc) Evaluate(ctx context.Context, a, b float64, op domain.Operator) domain.Outcome {
	return f(ctx, a, b, op)
}
