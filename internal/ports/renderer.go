package ports

// Display is the rendered state of a calculator session.
type Display struct {
	// SessionID identifies the session that produced the display.
	SessionID string

	// Text is the buffer, or the error message while an error is shown.
	Text string

	// Error is the current error message, empty when none is shown.
	Error string

	// Pending is the pending expression (e.g. "9 ×"), empty when idle.
	Pending string

	// Calculating is true while a calculation is outstanding.
	Calculating bool

	// Offline is true once the session evaluates locally only.
	Offline bool
}

// Renderer receives the display after every state change.
// Render is called synchronously and must not call back into the session.
type Renderer interface {
	Render(d Display)
}
