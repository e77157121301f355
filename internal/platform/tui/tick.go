// Package tui provides the Bubble Tea integration for the arcade platform.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg time.Time

// VoiceMsg carries one recognized command token.
type VoiceMsg string

// voiceClosedMsg reports that the voice channel has been closed.
type voiceClosedMsg struct{}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// waitForVoice blocks on the next token from ch. It returns nil for a nil
// channel so callers can batch it unconditionally.
func waitForVoice(ch <-chan string) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		token, ok := <-ch
		if !ok {
			return voiceClosedMsg{}
		}
		return VoiceMsg(token)
	}
}
