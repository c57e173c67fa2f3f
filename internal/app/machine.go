package app

import (
	"math"
	"strings"

	"github.com/bft-labs/keycalc/internal/domain"
)

// Calculation is a binary operation the Machine needs evaluated before it can
// move on.
type Calculation struct {
	A, B float64
	Op   domain.Operator

	// Next is the operator that triggered a chained calculation. It is zero
	// when the calculation came from equals.
	Next domain.Operator
}

// Machine folds keypad events into a pending arithmetic expression.
//
// It is a pure state machine: operations that need a result return a
// *Calculation and leave the state untouched until Resolve is called with the
// outcome. Machine is not safe for concurrent use; Session serializes access.
type Machine struct {
	state domain.State
}

// NewMachine returns a machine in the cleared Idle state.
func NewMachine() *Machine {
	return &Machine{state: domain.NewIdle()}
}

// State returns the current state.
func (m *Machine) State() domain.State {
	return m.state
}

// Buffer returns the number currently shown or being typed.
func (m *Machine) Buffer() string {
	return m.state.Buffer()
}

// Pending returns the pending expression, e.g. "9 ×", or "" when idle.
func (m *Machine) Pending() string {
	operand, op, ok := domain.Pending(m.state)
	if !ok {
		return ""
	}
	return domain.FormatNumber(operand) + " " + op.String()
}

// InputDigit types d ('0'..'9'). After an operator it starts a fresh entry;
// otherwise it appends, replacing a lone "0".
func (m *Machine) InputDigit(d byte) {
	switch st := m.state.(type) {
	case domain.OperatorPending:
		m.state = domain.Accumulating{Operand: st.Operand, Operator: st.Operator, Value: string(d)}
	case domain.Accumulating:
		st.Value = appendDigit(st.Value, d)
		m.state = st
	case domain.Idle:
		st.Value = appendDigit(st.Value, d)
		m.state = st
	}
}

// InputDecimal types a decimal point. After an operator it starts "0.";
// otherwise it appends unless the buffer already has one.
func (m *Machine) InputDecimal() {
	switch st := m.state.(type) {
	case domain.OperatorPending:
		m.state = domain.Accumulating{Operand: st.Operand, Operator: st.Operator, Value: "0."}
	case domain.Accumulating:
		st.Value = appendDecimal(st.Value)
		m.state = st
	case domain.Idle:
		st.Value = appendDecimal(st.Value)
		m.state = st
	}
}

// ChooseOperator selects op. From Idle it captures the buffer as the first
// operand and returns nil. With an operation already pending it returns the
// chained calculation; the caller must pass its outcome to Resolve.
func (m *Machine) ChooseOperator(op domain.Operator) *Calculation {
	v := parseBuffer(m.state.Buffer())

	operand, pending, ok := domain.Pending(m.state)
	if !ok {
		m.state = domain.OperatorPending{Operand: v, Operator: op, Value: m.state.Buffer()}
		return nil
	}
	return &Calculation{A: operand, B: v, Op: pending, Next: op}
}

// Equals returns the calculation for the pending operation, or nil when no
// operation is pending.
func (m *Machine) Equals() *Calculation {
	operand, pending, ok := domain.Pending(m.state)
	if !ok {
		return nil
	}
	return &Calculation{A: operand, B: parseBuffer(m.state.Buffer()), Op: pending}
}

// Resolve applies the outcome of c. On success the result becomes the buffer
// and, for a chained calculation, the new pending operand. On failure the
// machine resets to cleared Idle and the failure is returned.
func (m *Machine) Resolve(c Calculation, out domain.Outcome) *domain.Failure {
	v, ok := out.Value()
	if !ok {
		m.state = domain.NewIdle()
		return out.Failure()
	}

	text := domain.FormatNumber(v)
	if c.Next != 0 {
		m.state = domain.OperatorPending{Operand: v, Operator: c.Next, Value: text}
	} else {
		m.state = domain.Idle{Value: text}
	}
	return nil
}

// Clear resets to the cleared Idle state.
func (m *Machine) Clear() {
	m.state = domain.NewIdle()
}

// ToggleSign flips the sign of the buffer text. Zero is left alone.
func (m *Machine) ToggleSign() {
	buf := m.state.Buffer()
	if parseBuffer(buf) == 0 {
		return
	}
	if strings.HasPrefix(buf, "-") {
		m.setBuffer(buf[1:])
	} else {
		m.setBuffer("-" + buf)
	}
}

// Percent replaces the buffer with its value divided by 100.
func (m *Machine) Percent() {
	m.setBuffer(domain.FormatNumber(parseBuffer(m.state.Buffer()) / 100))
}

// setBuffer replaces the buffer without changing the variant.
func (m *Machine) setBuffer(v string) {
	switch st := m.state.(type) {
	case domain.Idle:
		st.Value = v
		m.state = st
	case domain.OperatorPending:
		st.Value = v
		m.state = st
	case domain.Accumulating:
		st.Value = v
		m.state = st
	}
}

func appendDigit(buf string, d byte) string {
	if buf == domain.InitialBuffer || !editable(buf) {
		return string(d)
	}
	return buf + string(d)
}

func appendDecimal(buf string) string {
	if !editable(buf) {
		return "0."
	}
	if strings.Contains(buf, ".") {
		return buf
	}
	return buf + "."
}

// editable reports whether typing may extend buf. A non-finite result
// ("Infinity", "NaN") is replaced by the next entry instead.
func editable(buf string) bool {
	v, err := domain.ParseNumber(strings.TrimSuffix(buf, "."))
	return err == nil && !math.IsInf(v, 0) && !math.IsNaN(v)
}

// parseBuffer reads the buffer as a number. Text that does not parse counts
// as zero.
func parseBuffer(buf string) float64 {
	v, err := domain.ParseNumber(strings.TrimSuffix(buf, "."))
	if err != nil {
		return 0
	}
	return v
}
