package domain

// State is the input state of one calculator. It is one of Idle,
// OperatorPending or Accumulating; the set is closed.
//
// Every variant carries the display buffer. Only OperatorPending and
// Accumulating carry a pending operand and operator, so an operator without an
// operand cannot be represented.
type State interface {
	// Buffer returns the number currently shown or being typed.
	Buffer() string

	isState()
}

// Idle has no pending operation. Typing appends to Buffer, replacing a lone "0".
type Idle struct {
	Value string
}

// OperatorPending holds a captured operand and operator. The next digit or
// decimal point replaces Value instead of appending to it.
type OperatorPending struct {
	Operand  float64
	Operator Operator
	Value    string
}

// Accumulating holds a captured operand and operator while the second operand
// is being typed into Value.
type Accumulating struct {
	Operand  float64
	Operator Operator
	Value    string
}

// InitialBuffer is the buffer of a cleared calculator.
const InitialBuffer = "0"

// NewIdle returns the cleared state.
func NewIdle() Idle { return Idle{Value: InitialBuffer} }

func (s Idle) Buffer() string            { return s.Value }
func (s OperatorPending) Buffer() string { return s.Value }
func (s Accumulating) Buffer() string    { return s.Value }

func (Idle) isState()            {}
func (OperatorPending) isState() {}
func (Accumulating) isState()    {}

// Pending returns the captured operand and operator of s, and false when s is
// Idle.
func Pending(s State) (float64, Operator, bool) {
	switch st := s.(type) {
	case OperatorPending:
		return st.Operand, st.Operator, true
	case Accumulating:
		return st.Operand, st.Operator, true
	default:
		return 0, 0, false
	}
}

// StateName returns a short name for s, used in logs.
func StateName(s State) string {
	switch s.(type) {
	case Idle:
		return "Idle"
	case OperatorPending:
		return "OperatorPending"
	case Accumulating:
		return "Accumulating"
	default:
		return "Unknown"
	}
}
