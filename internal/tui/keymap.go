package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// binding ties a set of keys to an action and the help label shown in
// the footer. Dispatch walks the table in order; the first match wins.
type binding struct {
	keys []string
	help string // empty bindings are hidden from the footer
	do   func(m *Model) (tea.Model, tea.Cmd)
}

func defaultBindings() []binding {
	return []binding{
		{
			keys: []string{"enter"},
			help: "enter send",
			do: func(m *Model) (tea.Model, tea.Cmd) {
				return m, m.send()
			},
		},
		{
			keys: []string{"ctrl+n"},
			help: "^n new chat",
			do: func(m *Model) (tea.Model, tea.Cmd) {
				m.newConversation()
				return m, nil
			},
		},
		{
			keys: []string{"ctrl+y"},
			help: "^y copy reply",
			do: func(m *Model) (tea.Model, tea.Cmd) {
				m.copyLastReply()
				return m, nil
			},
		},
		{
			keys: []string{"ctrl+t"},
			help: "^t theme",
			do: func(m *Model) (tea.Model, tea.Cmd) {
				m.cycleTheme()
				return m, nil
			},
		},
		{
			keys: []string{"pgup", "pgdown", "up", "down"},
			do: func(m *Model) (tea.Model, tea.Cmd) {
				var cmd tea.Cmd
				m.viewport, cmd = m.viewport.Update(m.lastKey)
				return m, cmd
			},
		},
		{
			keys: []string{"ctrl+c", "esc"},
			help: "esc quit",
			do: func(m *Model) (tea.Model, tea.Cmd) {
				return m, tea.Quit
			},
		},
	}
}

// dispatch routes a key press through the binding table. The second
// return is false when no binding claims the key, leaving it for the
// input field.
func (m *Model) dispatch(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	m.lastKey = msg
	key := msg.String()
	for _, b := range m.bindings {
		for _, k := range b.keys {
			if k == key {
				model, cmd := b.do(m)
				return model, cmd, true
			}
		}
	}
	return nil, nil, false
}

// helpLine renders the footer hint from the visible bindings.
func helpLine(bindings []binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		if b.help != "" {
			parts = append(parts, b.help)
		}
	}
	return strings.Join(parts, "  ·  ")
}
