package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/bft-labs/keycalc/internal/domain"
	"github.com/bft-labs/keycalc/internal/ports"
)

// Session is one calculator: a Machine driven by keypad events, a Dispatcher
// evaluating its calculations, and the display state derived from both.
//
// Session is safe for concurrent use. At most one calculation is outstanding
// at a time; events that arrive meanwhile are dropped with domain.ErrBusy,
// except Clear, which resets immediately and discards the in-flight result.
type Session struct {
	id         string
	dispatcher *Dispatcher
	renderer   ports.Renderer
	logger     ports.Logger

	mu          sync.Mutex
	machine     *Machine
	errMsg      string
	calculating bool
	epoch       uint64
}

// NewSession creates a session in the cleared state. A nil renderer is allowed.
func NewSession(dispatcher *Dispatcher, renderer ports.Renderer, logger ports.Logger) *Session {
	s := &Session{
		id:         uuid.Must(uuid.NewV7()).String(),
		dispatcher: dispatcher,
		renderer:   renderer,
		logger:     logger,
		machine:    NewMachine(),
	}
	s.logger.Info("session created",
		ports.String("session", s.id),
		ports.String("mode", dispatcher.Mode().String()))
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Press routes a keypad event to the matching operation.
func (s *Session) Press(ctx context.Context, k domain.Key) error {
	switch k.Kind {
	case domain.KeyDigit:
		return s.InputDigit(k.Digit)
	case domain.KeyDecimal:
		return s.InputDecimal()
	case domain.KeyOperator:
		return s.ChooseOperator(ctx, k.Operator)
	case domain.KeyEquals:
		return s.Equals(ctx)
	case domain.KeyClear:
		s.Clear()
		return nil
	case domain.KeyToggleSign:
		return s.ToggleSign()
	case domain.KeyPercent:
		return s.Percent()
	default:
		return fmt.Errorf("%w: kind %d", domain.ErrUnknownKey, k.Kind)
	}
}

// InputDigit types the digit d ('0'..'9') and clears any displayed error.
func (s *Session) InputDigit(d byte) error {
	if d < '0' || d > '9' {
		return fmt.Errorf("%w: %q", domain.ErrUnknownKey, d)
	}
	return s.edit("digit", func() { s.machine.InputDigit(d) })
}

// InputDecimal types a decimal point and clears any displayed error.
func (s *Session) InputDecimal() error {
	return s.edit("decimal", s.machine.InputDecimal)
}

// ToggleSign flips the sign of the buffer.
func (s *Session) ToggleSign() error {
	return s.edit("toggle-sign", s.machine.ToggleSign)
}

// Percent divides the buffer by 100.
func (s *Session) Percent() error {
	return s.edit("percent", s.machine.Percent)
}

// ChooseOperator selects op, evaluating the pending operation first when one
// exists. It blocks while that calculation runs. An invalid op is rejected
// with domain.ErrUnknownKey and leaves the state untouched.
func (s *Session) ChooseOperator(ctx context.Context, op domain.Operator) error {
	if !op.Valid() {
		return fmt.Errorf("%w: operator %d", domain.ErrUnknownKey, op)
	}
	return s.calculate(ctx, "operator", true, func() *Calculation {
		return s.machine.ChooseOperator(op)
	})
}

// Equals evaluates the pending operation. Without one it does nothing. It
// blocks while the calculation runs.
func (s *Session) Equals(ctx context.Context) error {
	return s.calculate(ctx, "equals", false, s.machine.Equals)
}

// Clear resets the buffer, the pending operation and any displayed error. It
// is honored even while a calculation is outstanding; that calculation's
// result is then discarded.
func (s *Session) Clear() {
	s.mu.Lock()
	s.machine.Clear()
	s.errMsg = ""
	if s.calculating {
		s.epoch++
	}
	d := s.displayLocked()
	s.mu.Unlock()

	s.render(d)
}

// Display returns the current display state.
func (s *Session) Display() ports.Display {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.displayLocked()
}

// Mode returns the dispatch mode of the session.
func (s *Session) Mode() domain.DispatchMode {
	return s.dispatcher.Mode()
}

// edit applies a buffer edit unless a calculation is outstanding.
func (s *Session) edit(event string, fn func()) error {
	s.mu.Lock()
	if s.calculating {
		s.mu.Unlock()
		s.dropped(event)
		return domain.ErrBusy
	}
	fn()
	s.errMsg = ""
	d := s.displayLocked()
	s.mu.Unlock()

	s.render(d)
	return nil
}

// calculate runs the calculation chosen by pick, if any, outside the lock.
// The calculating flag is set for exactly the duration of that call.
func (s *Session) calculate(ctx context.Context, event string, clearsError bool, pick func() *Calculation) error {
	s.mu.Lock()
	if s.calculating {
		s.mu.Unlock()
		s.dropped(event)
		return domain.ErrBusy
	}
	if clearsError {
		s.errMsg = ""
	}
	calc := pick()
	if calc == nil {
		d := s.displayLocked()
		s.mu.Unlock()
		s.render(d)
		return nil
	}
	s.calculating = true
	epoch := s.epoch
	s.logger.Debug("calculation started",
		ports.String("session", s.id),
		ports.String("state", domain.StateName(s.machine.State())),
		ports.String("op", calc.Op.String()))
	d := s.displayLocked()
	s.mu.Unlock()
	s.render(d)

	var (
		out      domain.Outcome
		resolved bool
	)
	defer func() {
		s.mu.Lock()
		s.calculating = false
		switch {
		case !resolved:
		case epoch != s.epoch:
			s.logger.Debug("calculation result discarded after clear",
				ports.String("session", s.id),
				ports.String("outcome", out.String()))
		default:
			if f := s.machine.Resolve(*calc, out); f != nil {
				s.errMsg = f.DisplayText()
				s.logger.Info("calculation failed",
					ports.String("session", s.id),
					ports.String("reason", f.Reason.String()),
					ports.Err(f))
			}
		}
		d := s.displayLocked()
		s.mu.Unlock()
		s.render(d)
	}()

	out = s.dispatcher.Calculate(ctx, calc.A, calc.B, calc.Op)
	resolved = true
	s.logger.Debug("calculation finished",
		ports.String("session", s.id),
		ports.Float64("a", calc.A),
		ports.Float64("b", calc.B),
		ports.String("op", calc.Op.String()),
		ports.String("outcome", out.String()))
	return nil
}

func (s *Session) dropped(event string) {
	s.logger.Debug("event dropped while calculating",
		ports.String("session", s.id),
		ports.String("event", event))
}

func (s *Session) displayLocked() ports.Display {
	d := ports.Display{
		SessionID:   s.id,
		Text:        s.machine.Buffer(),
		Error:       s.errMsg,
		Pending:     s.machine.Pending(),
		Calculating: s.calculating,
		Offline:     s.dispatcher.Mode() == domain.ModeLocalOnly,
	}
	if s.errMsg != "" {
		d.Text = s.errMsg
	}
	return d
}

func (s *Session) render(d ports.Display) {
	if s.renderer != nil {
		s.renderer.Render(d)
	}
}
