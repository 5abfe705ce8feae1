package chat

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/tutorterm/tutor/internal/api"
	"github.com/tutorterm/tutor/internal/session"
	"github.com/tutorterm/tutor/internal/stream"
)

// FailureBody replaces the assistant body when the transport fails
// mid-turn.
const FailureBody = "The tutor could not be reached. Please try again."

// maxInstructionLen mirrors the server-side instruction limit.
const maxInstructionLen = 20000

var (
	// ErrBusy is returned when a send is already in flight. The
	// in-flight turn is not disturbed.
	ErrBusy = errors.New("chat: send already in progress")
	// ErrEmptyInstruction is a validation error: nothing was sent.
	ErrEmptyInstruction = errors.New("chat: instruction is empty")
	// ErrInstructionTooLong is a validation error: nothing was sent.
	ErrInstructionTooLong = errors.New("chat: instruction exceeds 20000 characters")
)

// ReplyStreamer is the transport the controller drives. *api.Client
// satisfies it.
type ReplyStreamer interface {
	StreamReply(ctx context.Context, req api.ChatRequest) (io.ReadCloser, error)
}

// Identity resolves the caller's user id when authenticated. A nil
// Identity means anonymous.
type Identity interface {
	UserID() (id string, ok bool)
}

// IdentityFunc adapts a function to the Identity interface.
type IdentityFunc func() (string, bool)

// UserID implements Identity.
func (f IdentityFunc) UserID() (string, bool) { return f() }

const (
	stateIdle int32 = iota
	stateSending
)

// Controller orchestrates one request/response cycle: request
// construction, reentrancy guard, decode → interpret → assemble
// wiring, and terminal-state cleanup. Send blocks for the duration of
// the stream; run it from its own goroutine and let the sink carry
// updates back to the UI.
type Controller struct {
	transport ReplyStreamer
	identity  Identity
	sink      RenderSink
	log       *slog.Logger

	state atomic.Int32
	// sessionKey is read during Send and replaced only between sends
	// (NewConversation refuses to run mid-stream), so it needs no lock
	// beyond the state guard.
	sessionKey session.Key
}

// NewController wires a controller. identity may be nil for anonymous
// use; a nil log falls back to slog.Default().
func NewController(transport ReplyStreamer, identity Identity, sink RenderSink, key session.Key, log *slog.Logger) *Controller {
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		transport:  transport,
		identity:   identity,
		sink:       sink,
		log:        log,
		sessionKey: key,
	}
}

// SessionKey returns the key scoping the current conversation.
func (c *Controller) SessionKey() session.Key {
	return c.sessionKey
}

// NewConversation swaps in a fresh session key, starting a visually
// empty conversation. It is a no-op while a send is in flight.
func (c *Controller) NewConversation(key session.Key) bool {
	if c.state.Load() != stateIdle {
		return false
	}
	c.sessionKey = key
	return true
}

// Sending reports whether a send is in flight.
func (c *Controller) Sending() bool {
	return c.state.Load() == stateSending
}

// Send runs one full cycle for text. It validates, issues the request,
// drains the stream one chunk at a time (each chunk fully decoded,
// interpreted and assembled before the next read), and returns the
// completed turn. Validation errors are returned before any turn is
// created; transport errors mark the turn failed. Every exit path
// restores the controller to idle.
func (c *Controller) Send(ctx context.Context, text string) (*Turn, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInstruction
	}
	if len(text) > maxInstructionLen {
		return nil, ErrInstructionTooLong
	}

	if !c.state.CompareAndSwap(stateIdle, stateSending) {
		return nil, ErrBusy
	}
	defer c.state.Store(stateIdle)

	turn := NewTurn(text)
	c.sink.TurnUpdated(*turn)

	req := api.ChatRequest{
		Instruction: text,
		SessionID:   string(c.sessionKey),
	}
	if c.identity != nil {
		if id, ok := c.identity.UserID(); ok {
			req.UserID = &id
		}
	}

	body, err := c.transport.StreamReply(ctx, req)
	if err != nil {
		c.fail(turn)
		return turn, fmt.Errorf("chat: open stream: %w", err)
	}
	defer body.Close()

	if err := c.drain(body, turn); err != nil {
		c.fail(turn)
		return turn, fmt.Errorf("chat: read stream: %w", err)
	}

	c.sink.TurnCompleted(*turn)
	return turn, nil
}

// drain pulls the stream one chunk at a time, committing every record a
// chunk yields before requesting the next. No read-ahead.
func (c *Controller) drain(body io.Reader, turn *Turn) error {
	decoder := stream.NewDecoder()
	interpreter := stream.NewInterpreter(c.log)
	var assembler Assembler

	buf := make([]byte, 4096)
	for {
		n, err := body.Read(buf)
		if n > 0 {
			for _, record := range decoder.Feed(buf[:n]) {
				ev := interpreter.Interpret(record)
				if ev == nil {
					continue
				}
				if assembler.Apply(ev, turn) {
					c.sink.TurnUpdated(*turn)
				}
			}
		}
		if err == io.EOF {
			if dropped := decoder.Pending(); dropped > 0 {
				c.log.Debug("discarding unterminated stream tail", "bytes", dropped)
			}
			decoder.Finish()
			assembler.Finish(turn)
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// fail marks the turn terminally failed and still runs the completion
// path so the input surface is never left stuck.
func (c *Controller) fail(turn *Turn) {
	turn.Pending = false
	turn.Failed = true
	turn.Assistant = FailureBody
	c.sink.TurnCompleted(*turn)
}
