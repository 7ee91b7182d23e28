// Package tui provides the Bubble Tea front end for the platformer: the
// play screen driving a session and the pack picker.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// DefaultTickRate is the frame rate used when none is configured.
const DefaultTickRate = 30

// TickMsg is sent to trigger a simulation frame.
type TickMsg time.Time

// tickCmd returns a Bubble Tea command that sends one tick after interval.
func tickCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// tickInterval returns the frame interval for a tick rate, stretched to
// at least minFrame.
func tickInterval(tickRate int, minFrame time.Duration) time.Duration {
	if tickRate <= 0 {
		tickRate = DefaultTickRate
	}
	return max(time.Second/time.Duration(tickRate), minFrame)
}
