package domain

// DispatchMode selects where calculations are evaluated. A session starts in
// ModeRemote and can only ever move to ModeLocalOnly.
type DispatchMode int

const (
	ModeRemote DispatchMode = iota
	ModeLocalOnly
)

// String returns a human-readable representation of the mode.
func (m DispatchMode) String() string {
	switch m {
	case ModeRemote:
		return "Remote"
	case ModeLocalOnly:
		return "LocalOnly"
	default:
		return "Unknown"
	}
}
