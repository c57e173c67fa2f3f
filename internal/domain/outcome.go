package domain

import "fmt"

// Reason classifies why a calculation failed.
type Reason int

const (
	ReasonDivisionByZero Reason = iota + 1
	ReasonUnknownOperator
	ReasonServiceUnavailable
	ReasonServiceError
)

// String returns a stable identifier for the reason.
func (r Reason) String() string {
	switch r {
	case ReasonDivisionByZero:
		return "DivisionByZero"
	case ReasonUnknownOperator:
		return "UnknownOperator"
	case ReasonServiceUnavailable:
		return "ServiceUnavailable"
	case ReasonServiceError:
		return "ServiceError"
	default:
		return "Unknown"
	}
}

// Failure describes a calculation that did not produce a value.
// Message is only meaningful for ReasonServiceError, where it carries the
// server-reported text verbatim.
type Failure struct {
	Reason  Reason
	Message string
}

// DivisionByZero returns the failure for an exact zero divisor.
func DivisionByZero() *Failure { return &Failure{Reason: ReasonDivisionByZero} }

// UnknownOperator returns the failure for an operator outside the known four.
func UnknownOperator() *Failure { return &Failure{Reason: ReasonUnknownOperator} }

// ServiceUnavailable returns the failure for any transport-level problem.
func ServiceUnavailable() *Failure { return &Failure{Reason: ReasonServiceUnavailable} }

// ServiceError returns the failure for an application-level error reported by
// the compute service.
func ServiceError(message string) *Failure {
	return &Failure{Reason: ReasonServiceError, Message: message}
}

// Error implements error.
func (f *Failure) Error() string {
	if f.Reason == ReasonServiceError {
		return fmt.Sprintf("%s: %s", ErrServiceError.Error(), f.Message)
	}
	return f.sentinel().Error()
}

// Is reports whether target is the sentinel error for f's reason.
func (f *Failure) Is(target error) bool {
	return target == f.sentinel()
}

// DisplayText is the text shown in place of the buffer while the failure is
// displayed.
func (f *Failure) DisplayText() string {
	switch f.Reason {
	case ReasonDivisionByZero:
		return "Cannot divide by zero"
	case ReasonUnknownOperator:
		return "Unknown operation"
	case ReasonServiceUnavailable:
		return "Service unavailable"
	case ReasonServiceError:
		return f.Message
	default:
		return "Error"
	}
}

func (f *Failure) sentinel() error {
	switch f.Reason {
	case ReasonDivisionByZero:
		return ErrDivisionByZero
	case ReasonUnknownOperator:
		return ErrUnknownOperator
	case ReasonServiceUnavailable:
		return ErrServiceUnavailable
	case ReasonServiceError:
		return ErrServiceError
	default:
		return nil
	}
}

// Outcome is the tagged result of evaluating one binary operation: either a
// value or a Failure, never both. Construct it with Success or Fail.
type Outcome struct {
	value   float64
	failure *Failure
}

// Success returns an Outcome carrying v.
func Success(v float64) Outcome {
	return Outcome{value: v}
}

// Fail returns an Outcome carrying f. A nil f is treated as UnknownOperator so
// that a failed Outcome always has a reason.
func Fail(f *Failure) Outcome {
	if f == nil {
		f = UnknownOperator()
	}
	return Outcome{failure: f}
}

// OK reports whether the outcome is a success.
func (o Outcome) OK() bool { return o.failure == nil }

// Value returns the result and true on success, or 0 and false on failure.
func (o Outcome) Value() (float64, bool) {
	if o.failure != nil {
		return 0, false
	}
	return o.value, true
}

// Failure returns the failure, or nil on success.
func (o Outcome) Failure() *Failure { return o.failure }

// Is reports whether the outcome failed with the given reason.
func (o Outcome) Is(r Reason) bool {
	return o.failure != nil && o.failure.Reason == r
}

// String renders the outcome for logs and test messages.
func (o Outcome) String() string {
	if o.failure != nil {
		return "Failure(" + o.failure.Reason.String() + ")"
	}
	return "Success(" + FormatNumber(o.value) + ")"
}
