// Package local evaluates binary operations in process.
package local

import (
	"context"

	"github.com/bft-labs/keycalc/internal/domain"
)

// Evaluate computes a op b.
//
// Add, Subtract and Multiply always succeed. Divide fails with DivisionByZero
// when b is exactly zero. Any other operator fails with UnknownOperator.
func Evaluate(a, b float64, op domain.Operator) domain.Outcome {
	switch op {
	case domain.OpAdd:
		return domain.Success(a + b)
	case domain.OpSubtract:
		return domain.Success(a - b)
	case domain.OpMultiply:
		return domain.Success(a * b)
	case domain.OpDivide:
		if b == 0 {
			return domain.Fail(domain.DivisionByZero())
		}
		return domain.Success(a / b)
	default:
		return domain.Fail(domain.UnknownOperator())
	}
}

// Evaluator implements ports.Evaluator with Evaluate. It never blocks and
// ignores the context.
type Evaluator struct{}

// NewEvaluator creates a local evaluator.
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Evaluate computes a op b in process.
func (Evaluator) Evaluate(_ context.Context, a, b float64, op domain.Operator) domain.Outcome {
	return Evaluate(a, b, op)
}
