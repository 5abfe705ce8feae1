package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tutorterm/tutor/internal/chat"
	"github.com/tutorterm/tutor/internal/markdown"
	"github.com/tutorterm/tutor/internal/styles"
)

// spinnerFrames animate the pending indicator.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 {
		return "loading…"
	}

	status := m.renderStatusBar()
	body := m.viewport.View()

	inputView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.inputBorderColor()).
		Width(m.width - 2).
		Render(m.input.View())

	sections := []string{status, body, inputView}
	if m.cfg.UI.ShowFooter {
		footer := lipgloss.NewStyle().
			Width(m.width).
			Foreground(styles.TextMuted).
			Render(" " + helpLine(m.bindings))
		sections = append(sections, footer)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		MaxHeight(m.height).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) inputBorderColor() lipgloss.Color {
	if m.sending {
		return styles.BorderNormal
	}
	return styles.BorderActive
}

// renderStatusBar shows identity, conversation id, transient banners
// and the send state.
func (m *Model) renderStatusBar() string {
	statusStyle := lipgloss.NewStyle().
		Width(m.width).
		Background(styles.BgSecondary).
		Foreground(styles.TextMuted)

	who := "anonymous"
	if m.username != "" {
		who = m.username
	}
	key := string(m.controller.SessionKey())
	if len(key) > 28 {
		key = key[:28] + "…"
	}
	left := fmt.Sprintf(" %s · %s", who, key)

	var right string
	switch {
	case m.banner != "":
		right = m.banner + " "
	case m.sending:
		right = spinnerFrames[m.spinnerFrame%len(spinnerFrames)] + " Thinking… "
	default:
		right = "Ready "
	}

	avail := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if avail < 1 {
		avail = 1
	}
	return statusStyle.Render(left + strings.Repeat(" ", avail) + right)
}

// TurnViewport handles rendering and scrolling of the conversation.
type TurnViewport struct {
	viewport viewport.Model
	width    int
	height   int
	atBottom bool
}

// NewTurnViewport creates a viewport with the given dimensions.
func NewTurnViewport(width, height int) TurnViewport {
	vp := viewport.New(width, height)
	return TurnViewport{
		viewport: vp,
		width:    width,
		height:   height,
		atBottom: true,
	}
}

// SetTurns re-renders the conversation into the viewport, keeping the
// view pinned to the bottom while the user has not scrolled away.
func (v *TurnViewport) SetTurns(turns []chat.Turn, renderer *markdown.Renderer, showUsage bool, spinnerFrame int) {
	v.viewport.SetContent(renderTurns(turns, v.width, renderer, showUsage, spinnerFrame))
	if v.atBottom {
		v.viewport.GotoBottom()
	}
}

// SetSize updates the viewport dimensions.
func (v *TurnViewport) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.viewport.Width = width
	v.viewport.Height = height
}

// Update handles tea messages for the viewport.
func (v TurnViewport) Update(msg tea.Msg) (TurnViewport, tea.Cmd) {
	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	v.atBottom = v.viewport.AtBottom()
	return v, cmd
}

// View returns the viewport string.
func (v *TurnViewport) View() string {
	return v.viewport.View()
}

// renderTurns renders the conversation as formatted text.
func renderTurns(turns []chat.Turn, width int, renderer *markdown.Renderer, showUsage bool, spinnerFrame int) string {
	if len(turns) == 0 {
		return lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(styles.TextMuted).
			Render("\n\nStart a conversation — type a question below")
	}

	var sb strings.Builder
	for i, turn := range turns {
		if i > 0 {
			sb.WriteString("\n\n")
		}
		renderTurn(&sb, turn, width, renderer, showUsage, spinnerFrame)
	}
	return sb.String()
}

func renderTurn(sb *strings.Builder, turn chat.Turn, width int, renderer *markdown.Renderer, showUsage bool, spinnerFrame int) {
	prefix := lipgloss.NewStyle().
		Foreground(styles.Secondary).
		Bold(true).
		Render("> ")
	sb.WriteString(prefix)
	sb.WriteString(lipgloss.NewStyle().Foreground(styles.TextPrimary).Render(turn.User))
	sb.WriteString("\n\n")

	switch {
	case turn.Pending:
		sb.WriteString(lipgloss.NewStyle().
			Foreground(styles.Accent).
			Render(spinnerFrames[spinnerFrame%len(spinnerFrames)] + " thinking…"))

	case turn.Failed:
		sb.WriteString(lipgloss.NewStyle().
			Foreground(styles.Error).
			Render("⚠ " + turn.Assistant))

	default:
		var lines []string
		if renderer != nil {
			lines = renderer.RenderContent(turn.Assistant, width)
		} else {
			lines = markdown.WrapText(turn.Assistant, width)
		}
		sb.WriteString(strings.Join(lines, "\n"))
	}

	if showUsage && turn.UsageNote != "" {
		sb.WriteString("\n")
		sb.WriteString(lipgloss.NewStyle().
			Foreground(styles.TextMuted).
			Render(turn.UsageNote))
	}
}
