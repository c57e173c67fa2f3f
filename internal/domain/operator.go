package domain

import (
	"fmt"
	"strings"
)

// Operator is a binary arithmetic operation.
// The zero value is not a valid operator.
type Operator int

const (
	OpAdd Operator = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
)

// String returns the keypad symbol for the operator.
func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "-"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Name returns the operation name used by the compute service
// ("Add", "Subtract", "Multiply", "Divide"). Unknown operators return "".
func (o Operator) Name() string {
	switch o {
	case OpAdd:
		return "Add"
	case OpSubtract:
		return "Subtract"
	case OpMultiply:
		return "Multiply"
	case OpDivide:
		return "Divide"
	default:
		return ""
	}
}

// Valid reports whether o is one of the four known operators.
func (o Operator) Valid() bool {
	return o >= OpAdd && o <= OpDivide
}

// ParseOperatorName maps a case-insensitive operation name ("add", "Divide", ...)
// to an Operator.
func ParseOperatorName(name string) (Operator, error) {
	switch strings.ToLower(name) {
	case "add":
		return OpAdd, nil
	case "subtract", "sub":
		return OpSubtract, nil
	case "multiply", "mul":
		return OpMultiply, nil
	case "divide", "div":
		return OpDivide, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, name)
}
