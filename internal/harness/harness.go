package harness

import (
	"context"
	"errors"
	"fmt"

	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/ports"
)

// Keypad is what a scenario drives. *app.Session satisfies it.
type Keypad interface {
	Press(ctx context.Context, k domain.Key) error
	Display() ports.Display
}

// Result is the outcome of running a scenario.
type Result struct {
	Name string

	// Pass is true when every expect clause matched.
	Pass bool

	// Steps holds one entry per pressed key, in order.
	Steps []StepResult

	// Errors lists expectation mismatches. Empty when Pass is true.
	Errors []string
}

// StepResult records the display after one key press.
type StepResult struct {
	Key     string
	Display ports.Display
	Dropped bool
}

// Run presses every step of s on kp and checks the expectations.
// Mismatches are collected in the Result; the returned error is reserved for
// keys that cannot be parsed or presses that fail outright.
func Run(ctx context.Context, s *Scenario, kp Keypad) (*Result, error) {
	res := &Result{Name: s.Name, Pass: true}

	for i, step := range s.Steps {
		key, err := domain.ParseKey(step.Key)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}

		dropped := false
		if err := kp.Press(ctx, key); err != nil {
			if !errors.Is(err, domain.ErrBusy) {
				return nil, fmt.Errorf("step %d (%s): %w", i+1, step.Key, err)
			}
			dropped = true
		}

		sr := StepResult{Key: step.Key, Display: kp.Display(), Dropped: dropped}
		res.Steps = append(res.Steps, sr)

		if step.Expect != nil {
			prefix := fmt.Sprintf("step %d (%s)", i+1, step.Key)
			res.check(prefix, *step.Expect, sr.Display, &sr.Dropped)
		}
	}

	if s.Expect != nil {
		res.check("final", *s.Expect, kp.Display(), nil)
	}
	return res, nil
}

func (r *Result) check(prefix string, e Expect, d ports.Display, dropped *bool) {
	str := func(field string, want *string, got string) {
		if want != nil && *want != got {
			r.fail("%s: %s = %q, want %q", prefix, field, got, *want)
		}
	}
	flag := func(field string, want *bool, got bool) {
		if want != nil && *want != got {
			r.fail("%s: %s = %t, want %t", prefix, field, got, *want)
		}
	}

	str("display", e.Display, d.Text)
	str("error", e.Error, d.Error)
	str("pending", e.Pending, d.Pending)
	flag("offline", e.Offline, d.Offline)
	flag("calculating", e.Calculating, d.Calculating)
	if dropped != nil {
		flag("dropped", e.Dropped, *dropped)
	}
}

func (r *Result) fail(format string, args ...any) {
	r.Pass = false
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}
