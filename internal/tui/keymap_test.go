package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestDispatchClaimsBoundKeys(t *testing.T) {
	t.Parallel()

	m := testModel(t)

	_, _, handled := m.dispatch(tea.KeyMsg{Type: tea.KeyCtrlN})
	if !handled {
		t.Fatal("ctrl+n not claimed by a binding")
	}

	_, _, handled = m.dispatch(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if handled {
		t.Fatal("plain rune stolen from the input field")
	}
}

func TestDispatchQuitBinding(t *testing.T) {
	t.Parallel()

	m := testModel(t)

	_, cmd, handled := m.dispatch(tea.KeyMsg{Type: tea.KeyEsc})
	if !handled || cmd == nil {
		t.Fatal("esc did not produce a command")
	}
	if msg := cmd(); msg != tea.Quit() {
		t.Fatalf("esc produced %T, want tea.QuitMsg", msg)
	}
}

func TestHelpLineListsVisibleBindings(t *testing.T) {
	t.Parallel()

	line := helpLine(defaultBindings())
	for _, want := range []string{"enter send", "^n new chat", "^y copy reply", "^t theme", "esc quit"} {
		if !strings.Contains(line, want) {
			t.Errorf("help line missing %q: %s", want, line)
		}
	}
	if strings.Contains(line, "pgup") {
		t.Errorf("hidden binding leaked into help line: %s", line)
	}
}
