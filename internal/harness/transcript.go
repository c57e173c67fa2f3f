package harness

import (
	"fmt"
	"strings"
)

// Transcript renders a result as one line per step:
//
//	03 3 => 3 [9 ×]
//
// The bracketed part is the pending expression. Error, offline and dropped
// steps are flagged in parentheses.
func Transcript(r *Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "scenario: %s\n", r.Name)
	for i, s := range r.Steps {
		fmt.Fprintf(&b, "%02d %s => %s", i+1, s.Key, s.Display.Text)
		if s.Display.Pending != "" {
			fmt.Fprintf(&b, " [%s]", s.Display.Pending)
		}
		if s.Display.Error != "" {
			b.WriteString(" (error)")
		}
		if s.Display.Offline {
			b.WriteString(" (offline)")
		}
		if s.Dropped {
			b.WriteString(" (dropped)")
		}
		b.WriteByte('\n')
	}
	return b.String()
}
