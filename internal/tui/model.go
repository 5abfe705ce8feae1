// Package tui is the interactive chat surface: a message viewport, an
// input line, and a status bar, wired to the chat controller.
package tui

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tutorterm/tutor/internal/chat"
	"github.com/tutorterm/tutor/internal/config"
	"github.com/tutorterm/tutor/internal/markdown"
	"github.com/tutorterm/tutor/internal/session"
	"github.com/tutorterm/tutor/internal/styles"
)

const (
	inputHeight  = 3
	statusHeight = 1
	bannerTTL    = 5 * time.Second
)

// Model is the root bubbletea model.
type Model struct {
	cfg        *config.Config
	controller *chat.Controller
	keygen     *session.Generator
	log        *slog.Logger

	width  int
	height int

	input    textarea.Model
	viewport TurnViewport
	renderer *markdown.Renderer

	turns   []chat.Turn // committed turns, oldest first
	active  *chat.Turn  // in-flight turn, nil when idle
	sending bool

	banner    string // transient error banner, cleared after bannerTTL
	bannerSet time.Time

	spinnerFrame int

	bindings []binding
	lastKey  tea.KeyMsg

	events chan tea.Msg

	username string // display name for the status bar, empty if anonymous
}

// New builds the model. keygen must already have produced the key the
// controller was constructed with.
func New(cfg *config.Config, controller *chat.Controller, keygen *session.Generator, username string, events chan tea.Msg, log *slog.Logger) *Model {
	input := textarea.New()
	input.Placeholder = "Ask the tutor anything…"
	input.CharLimit = 0
	input.SetHeight(1)
	input.ShowLineNumbers = false
	input.Focus()

	m := &Model{
		cfg:        cfg,
		controller: controller,
		keygen:     keygen,
		log:        log,
		input:      input,
		bindings:   defaultBindings(),
		viewport:   NewTurnViewport(80, 20),
		events:     events,
		username:   username,
	}
	// A nil renderer leaves replies as wrapped plain text.
	if !cfg.UI.PlainText {
		m.renderer = markdown.NewRenderer()
	}
	return m
}

// NewEventChannel creates the sink channel shared between the model
// and the controller's render sink.
func NewEventChannel() chan tea.Msg {
	return make(chan tea.Msg, 64)
}

// Sink returns the controller-facing sink writing into events.
func Sink(events chan tea.Msg) chat.RenderSink {
	return channelSink{ch: events}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForEvent(m.events), m.spinnerTick())
}

func (m *Model) spinnerTick() tea.Cmd {
	return tea.Tick(120*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - inputHeight - statusHeight - m.footerHeight()
		if vpHeight < 1 {
			vpHeight = 1
		}
		m.viewport.SetSize(msg.Width, vpHeight)
		m.input.SetWidth(msg.Width - 4)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TurnUpdatedMsg:
		m.applyTurn(msg.Turn)
		return m, waitForEvent(m.events)

	case TurnCompletedMsg:
		m.commitTurn(msg.Turn)
		return m, waitForEvent(m.events)

	case SendFinishedMsg:
		m.sending = false
		// Transport failures already surfaced through the failed turn;
		// only validation errors need a banner here.
		if banner := validationBanner(msg.Err); banner != "" {
			m.showBanner(banner)
		}
		return m, nil

	case spinnerTickMsg:
		m.spinnerFrame++
		if m.banner != "" && time.Since(m.bannerSet) > bannerTTL {
			m.banner = ""
		}
		return m, m.spinnerTick()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if model, cmd, handled := m.dispatch(msg); handled {
		return model, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// send launches one controller cycle in the background. The reentrancy
// decision belongs to the controller; the local sending flag only
// drives the UI.
func (m *Model) send() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		m.showBanner("Type a message first")
		return nil
	}
	if m.sending {
		// The controller would reject this anyway; keep the input
		// contents so nothing is lost.
		return nil
	}

	m.sending = true
	m.input.Reset()

	controller := m.controller
	return func() tea.Msg {
		_, err := controller.Send(context.Background(), text)
		if errors.Is(err, chat.ErrBusy) {
			return SendFinishedMsg{Err: nil}
		}
		return SendFinishedMsg{Err: err}
	}
}

// applyTurn folds a streaming update into the view.
func (m *Model) applyTurn(turn chat.Turn) {
	m.active = &turn
	m.refreshViewport()
}

// commitTurn moves the in-flight turn into history.
func (m *Model) commitTurn(turn chat.Turn) {
	m.active = nil
	m.turns = append(m.turns, turn)
	if turn.Failed {
		m.showBanner("The tutor is unreachable — check your connection")
	}
	m.refreshViewport()
}

func (m *Model) newConversation() {
	if !m.controller.NewConversation(m.keygen.Generate()) {
		m.showBanner("Finish the current reply before starting over")
		return
	}
	m.turns = nil
	m.active = nil
	m.refreshViewport()
}

func (m *Model) copyLastReply() {
	for i := len(m.turns) - 1; i >= 0; i-- {
		if !m.turns[i].Failed && m.turns[i].Assistant != "" {
			if err := clipboard.WriteAll(m.turns[i].Assistant); err != nil {
				m.showBanner("Clipboard unavailable")
				return
			}
			m.showBanner("Reply copied")
			return
		}
	}
	m.showBanner("Nothing to copy yet")
}

func (m *Model) cycleTheme() {
	names := styles.ListThemes()
	current := styles.GetCurrentThemeName()
	next := names[0]
	for i, name := range names {
		if name == current {
			next = names[(i+1)%len(names)]
			break
		}
	}
	styles.ApplyTheme(next)
	if m.renderer != nil {
		m.renderer = markdown.NewRenderer() // markdown style follows the theme
	}
	if err := config.SaveTheme(next); err != nil {
		m.log.Warn("could not persist theme", "error", err)
	}
	m.refreshViewport()
	m.showBanner("Theme: " + next)
}

func (m *Model) footerHeight() int {
	if m.cfg.UI.ShowFooter {
		return 1
	}
	return 0
}

func (m *Model) showBanner(text string) {
	m.banner = text
	m.bannerSet = time.Now()
}

func (m *Model) refreshViewport() {
	turns := m.turns
	if m.active != nil {
		turns = append(turns[:len(turns):len(turns)], *m.active)
	}
	m.viewport.SetTurns(turns, m.renderer, m.cfg.UI.ShowUsage, m.spinnerFrame)
}

// validationBanner maps validation errors onto user-facing banner
// text; other errors (including nil) yield "".
func validationBanner(err error) string {
	switch {
	case errors.Is(err, chat.ErrEmptyInstruction):
		return "Type a message first"
	case errors.Is(err, chat.ErrInstructionTooLong):
		return "Message is too long (20000 character limit)"
	default:
		return ""
	}
}
