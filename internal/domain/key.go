package domain

import (
	"fmt"
	"strings"
)

// KeyKind identifies the kind of keypad event.
type KeyKind int

const (
	KeyDigit KeyKind = iota + 1
	KeyDecimal
	KeyOperator
	KeyEquals
	KeyClear
	KeyToggleSign
	KeyPercent
)

// Key is a single keypad event. Digit is set for KeyDigit and Operator for
// KeyOperator.
type Key struct {
	Kind     KeyKind
	Digit    byte
	Operator Operator
}

// Digit returns the key for the decimal digit d ('0'..'9').
func Digit(d byte) Key { return Key{Kind: KeyDigit, Digit: d} }

// OperatorKey returns the key for op.
func OperatorKey(op Operator) Key { return Key{Kind: KeyOperator, Operator: op} }

var (
	DecimalKey    = Key{Kind: KeyDecimal}
	EqualsKey     = Key{Kind: KeyEquals}
	ClearKey      = Key{Kind: KeyClear}
	ToggleSignKey = Key{Kind: KeyToggleSign}
	PercentKey    = Key{Kind: KeyPercent}
)

// ParseKey maps a text token to a Key.
//
// Accepted tokens: "0"-"9", ".", "+", "-", "*", "x", "×", "/", "÷", "=",
// "c", "ac", "clear", "±", "+/-", "neg", "%". Letters are case-insensitive.
func ParseKey(token string) (Key, error) {
	t := strings.ToLower(strings.TrimSpace(token))
	if len(t) == 1 && t[0] >= '0' && t[0] <= '9' {
		return Digit(t[0]), nil
	}
	switch t {
	case ".":
		return DecimalKey, nil
	case "+":
		return OperatorKey(OpAdd), nil
	case "-":
		return OperatorKey(OpSubtract), nil
	case "*", "x", "×":
		return OperatorKey(OpMultiply), nil
	case "/", "÷":
		return OperatorKey(OpDivide), nil
	case "=":
		return EqualsKey, nil
	case "c", "ac", "clear":
		return ClearKey, nil
	case "±", "+/-", "neg":
		return ToggleSignKey, nil
	case "%":
		return PercentKey, nil
	}
	return Key{}, fmt.Errorf("%w: %q", ErrUnknownKey, token)
}

// String returns the canonical token for the key.
func (k Key) String() string {
	switch k.Kind {
	case KeyDigit:
		return string(k.Digit)
	case KeyDecimal:
		return "."
	case KeyOperator:
		return k.Operator.String()
	case KeyEquals:
		return "="
	case KeyClear:
		return "C"
	case KeyToggleSign:
		return "±"
	case KeyPercent:
		return "%"
	default:
		return "?"
	}
}
