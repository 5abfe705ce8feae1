package chat

import (
	"fmt"

	"github.com/tutorterm/tutor/internal/stream"
)

// PlaceholderBody is shown when a stream completes without delivering
// any content.
const PlaceholderBody = "The tutor sent no reply. Please try again."

// Assembler applies interpreted events to a turn. Content events carry
// the complete response composed so far, so each one replaces the body
// wholesale; appending would duplicate text.
type Assembler struct {
	gotContent bool
}

// Apply folds one event into the turn and reports whether the turn
// changed. Unrecognized events are discarded.
func (a *Assembler) Apply(ev stream.Event, turn *Turn) bool {
	switch ev := ev.(type) {
	case stream.ContentEvent:
		if !a.gotContent {
			// First content clears the pending/loading state.
			a.gotContent = true
			turn.Pending = false
		}
		turn.Assistant = ev.Text
		return true
	case stream.UsageEvent:
		turn.UsageNote = FormatUsage(ev)
		return true
	default:
		return false
	}
}

// Finish applies the end-of-stream rules: a turn that never received
// content gets the placeholder body instead of an empty string.
func (a *Assembler) Finish(turn *Turn) {
	turn.Pending = false
	if !a.gotContent {
		turn.Assistant = PlaceholderBody
	}
}

// FormatUsage renders the stats annotation shown as a sibling of the
// assistant message: elapsed time to two decimals, raw token counts.
func FormatUsage(u stream.UsageEvent) string {
	return fmt.Sprintf("%.2fs · %d in · %d out", u.ElapsedSeconds, u.InputTokens, u.OutputTokens)
}
