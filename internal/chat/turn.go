// Package chat owns one request/response cycle against the tutor
// service: it assembles the streamed reply into a conversation turn and
// guards against concurrent sends.
package chat

import (
	"time"

	"github.com/google/uuid"
)

// Turn pairs a user message with its in-progress or completed
// assistant reply.
type Turn struct {
	ID        string
	User      string    // the trimmed instruction as sent
	Assistant string    // body of the reply composed so far
	UsageNote string    // stats annotation rendered after the body
	Pending   bool      // true until the first content arrives
	Failed    bool      // terminal failure marker
	StartedAt time.Time
}

// NewTurn creates a pending turn for a user message.
func NewTurn(user string) *Turn {
	return &Turn{
		ID:        uuid.NewString(),
		User:      user,
		Pending:   true,
		StartedAt: time.Now(),
	}
}

// RenderSink receives turn updates as a reply stream progresses. The
// controller calls it from a single goroutine, strictly in event
// order; an update for record n+1 never precedes the one for record n.
type RenderSink interface {
	// TurnUpdated is called after each applied event.
	TurnUpdated(turn Turn)
	// TurnCompleted is called exactly once per send, on success and
	// failure alike, after which the input surface may re-enable.
	TurnCompleted(turn Turn)
}
