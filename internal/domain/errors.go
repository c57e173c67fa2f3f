package domain

import "errors"

// Domain errors represent error conditions in the keycalc domain.
// These errors are returned by the public API and can be checked with errors.Is.
var (
	// ErrDivisionByZero is matched by a Failure with ReasonDivisionByZero.
	ErrDivisionByZero = errors.New("keycalc: division by zero")

	// ErrUnknownOperator is matched by a Failure with ReasonUnknownOperator.
	ErrUnknownOperator = errors.New("keycalc: unknown operator")

	// ErrServiceUnavailable is matched by a Failure with ReasonServiceUnavailable.
	ErrServiceUnavailable = errors.New("keycalc: compute service unavailable")

	// ErrServiceError is matched by a Failure with ReasonServiceError.
	ErrServiceError = errors.New("keycalc: compute service error")

	// ErrBusy is returned when an event arrives while a calculation is outstanding.
	// The event is dropped, not queued.
	ErrBusy = errors.New("keycalc: calculation in progress")

	// ErrUnknownKey is returned when a key token cannot be parsed.
	ErrUnknownKey = errors.New("keycalc: unknown key")

	// ErrInvalidConfig is returned when configuration validation fails.
	ErrInvalidConfig = errors.New("keycalc: invalid configuration")
)
