// Package tui runs the game in a terminal with Bubble Tea. It owns the
// frame clock, key mapping, the menu and scoreboard screens, and the SSH
// front end.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation step.
type TickMsg time.Time

// tickCmd schedules the next step at the given rate.
func tickCmd(tickRate int) tea.Cmd {
	if tickRate <= 0 {
		tickRate = 60
	}
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
