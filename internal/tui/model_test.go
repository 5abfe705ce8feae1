package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tutorterm/tutor/internal/api"
	"github.com/tutorterm/tutor/internal/chat"
	"github.com/tutorterm/tutor/internal/config"
	"github.com/tutorterm/tutor/internal/markdown"
	"github.com/tutorterm/tutor/internal/session"
)

type nopStreamer struct{}

func (nopStreamer) StreamReply(context.Context, api.ChatRequest) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("")), nil
}

func testModel(t *testing.T) *Model {
	t.Helper()
	events := NewEventChannel()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := chat.NewController(nopStreamer{}, nil, Sink(events), session.Key("session_1_a_AAAAAAAA"), log)
	m := New(config.Default(), controller, session.NewGenerator(), "student01", events, log)
	m.width = 80
	m.height = 24
	m.viewport.SetSize(80, 20)
	return m
}

func TestUpdateTurnUpdatedTracksActiveTurn(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	turn := chat.Turn{ID: "t1", User: "hi", Assistant: "partial", Pending: false}

	_, cmd := m.Update(TurnUpdatedMsg{Turn: turn})
	if m.active == nil || m.active.Assistant != "partial" {
		t.Fatalf("active turn not tracked: %+v", m.active)
	}
	if len(m.turns) != 0 {
		t.Fatal("streaming update committed to history early")
	}
	if cmd == nil {
		t.Fatal("update loop not re-armed")
	}
}

func TestUpdateTurnCompletedCommitsToHistory(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.Update(TurnUpdatedMsg{Turn: chat.Turn{ID: "t1", User: "hi", Pending: true}})
	m.Update(TurnCompletedMsg{Turn: chat.Turn{ID: "t1", User: "hi", Assistant: "done"}})

	if m.active != nil {
		t.Fatal("active turn not cleared on completion")
	}
	if len(m.turns) != 1 || m.turns[0].Assistant != "done" {
		t.Fatalf("turn not committed: %+v", m.turns)
	}
}

func TestUpdateFailedTurnShowsBanner(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.Update(TurnCompletedMsg{Turn: chat.Turn{ID: "t1", User: "hi", Assistant: chat.FailureBody, Failed: true}})

	if m.banner == "" {
		t.Fatal("no banner after transport failure")
	}
}

func TestValidationBanner(t *testing.T) {
	t.Parallel()

	if got := validationBanner(chat.ErrEmptyInstruction); got == "" {
		t.Fatal("empty instruction produced no banner")
	}
	if got := validationBanner(chat.ErrInstructionTooLong); got == "" {
		t.Fatal("overlong instruction produced no banner")
	}
	if got := validationBanner(nil); got != "" {
		t.Fatalf("nil error produced banner %q", got)
	}
	if got := validationBanner(errors.New("boom")); got != "" {
		t.Fatalf("transport error produced validation banner %q", got)
	}
}

func TestSendFinishedClearsSendingFlag(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.sending = true
	m.Update(SendFinishedMsg{})
	if m.sending {
		t.Fatal("sending flag not cleared")
	}
}

func TestViewRendersWithoutTurns(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	out := m.View()
	if out == "" {
		t.Fatal("empty view")
	}
	if !strings.Contains(out, "student01") {
		t.Fatal("status bar missing username")
	}
}

func TestViewAnonymousUser(t *testing.T) {
	t.Parallel()

	events := NewEventChannel()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	controller := chat.NewController(nopStreamer{}, nil, Sink(events), session.Key("session_1_a_AAAAAAAA"), log)
	m := New(config.Default(), controller, session.NewGenerator(), "", events, log)
	m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	out := m.View()
	if !strings.Contains(out, "anonymous") {
		t.Fatal("status bar missing anonymous label")
	}
}

func TestRenderTurnsEmptyPrompt(t *testing.T) {
	t.Parallel()

	out := renderTurns(nil, 80, markdown.NewRenderer(), true, 0)
	if !strings.Contains(out, "Start a conversation") {
		t.Fatalf("missing empty-state prompt: %q", out)
	}
}

func TestRenderTurnsShowsUsageNote(t *testing.T) {
	t.Parallel()

	turns := []chat.Turn{{User: "q", Assistant: "a", UsageNote: "1.23s · 10 in · 7 out"}}
	out := renderTurns(turns, 80, markdown.NewRenderer(), true, 0)
	if !strings.Contains(out, "1.23s") {
		t.Fatalf("usage note not rendered: %q", out)
	}

	hidden := renderTurns(turns, 80, markdown.NewRenderer(), false, 0)
	if strings.Contains(hidden, "1.23s") {
		t.Fatal("usage note rendered despite showUsage=false")
	}
}

func TestNewConversationClearsTranscript(t *testing.T) {
	t.Parallel()

	m := testModel(t)
	m.turns = []chat.Turn{{User: "old", Assistant: "stale"}}
	before := m.controller.SessionKey()

	m.newConversation()

	if len(m.turns) != 0 {
		t.Fatal("transcript not cleared")
	}
	if m.controller.SessionKey() == before {
		t.Fatal("session key not regenerated")
	}
}
