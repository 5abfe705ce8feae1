package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tutorterm/tutor/internal/chat"
)

// TurnUpdatedMsg carries a streaming update for the in-flight turn.
type TurnUpdatedMsg struct {
	Turn chat.Turn
}

// TurnCompletedMsg signals that the in-flight turn reached a terminal
// state, success or failure.
type TurnCompletedMsg struct {
	Turn chat.Turn
}

// SendFinishedMsg is returned by the send command when Send unblocks.
// Err is nil on success; validation errors arrive here without any
// preceding turn messages.
type SendFinishedMsg struct {
	Err error
}

// spinnerTickMsg advances the pending animation.
type spinnerTickMsg struct{}

var (
	_ tea.Msg = TurnUpdatedMsg{}
	_ tea.Msg = TurnCompletedMsg{}
	_ tea.Msg = SendFinishedMsg{}
)

// channelSink forwards controller callbacks into the program's event
// channel, preserving event order.
type channelSink struct {
	ch chan tea.Msg
}

func (s channelSink) TurnUpdated(turn chat.Turn) {
	s.ch <- TurnUpdatedMsg{Turn: turn}
}

func (s channelSink) TurnCompleted(turn chat.Turn) {
	s.ch <- TurnCompletedMsg{Turn: turn}
}

var _ chat.RenderSink = channelSink{}

// waitForEvent delivers the next sink message to the program and
// re-arms itself from Update.
func waitForEvent(ch chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-ch
	}
}
