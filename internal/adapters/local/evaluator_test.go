package local

import (
	"context"
	"math"
	"testing"

	"github.com/bft-labs/keycalc/internal/domain"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		op   domain.Operator
		want float64
	}{
		{"add", 2, 3, domain.OpAdd, 5},
		{"subtract", 2, 3, domain.OpSubtract, -1},
		{"multiply", 9, 9, domain.OpMultiply, 81},
		{"divide", 1, 4, domain.OpDivide, 0.25},
		{"divide negative", -9, 3, domain.OpDivide, -3},
		{"divide by tiny", 1, 0x1p-1000, domain.OpDivide, 0x1p1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Evaluate(tt.a, tt.b, tt.op).Value()
			if !ok {
				t.Fatalf("Evaluate(%v, %v, %v) failed", tt.a, tt.b, tt.op)
			}
			if got != tt.want {
				t.Errorf("Evaluate(%v, %v, %v) = %v, want %v", tt.a, tt.b, tt.op, got, tt.want)
			}
		})
	}
}

func TestEvaluate_DivisionByZero(t *testing.T) {
	for _, a := range []float64{0, 1, -1, 5, 1e308, math.Inf(1), math.NaN()} {
		if out := Evaluate(a, 0, domain.OpDivide); !out.Is(domain.ReasonDivisionByZero) {
			t.Errorf("Evaluate(%v, 0, Divide) = %v, want Failure(DivisionByZero)", a, out)
		}
	}
	if out := Evaluate(5, math.Copysign(0, -1), domain.OpDivide); !out.Is(domain.ReasonDivisionByZero) {
		t.Errorf("negative zero divisor = %v, want Failure(DivisionByZero)", out)
	}
}

func TestEvaluate_UnknownOperator(t *testing.T) {
	for _, op := range []domain.Operator{0, 5, -1} {
		if out := Evaluate(1, 2, op); !out.Is(domain.ReasonUnknownOperator) {
			t.Errorf("Evaluate with %v = %v, want Failure(UnknownOperator)", op, out)
		}
	}
}

func TestEvaluator_IgnoresCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, ok := NewEvaluator().Evaluate(ctx, 2, 2, domain.OpAdd).Value()
	if !ok || got != 4 {
		t.Errorf("Evaluate with canceled context = (%v, %v), want (4, true)", got, ok)
	}
}
