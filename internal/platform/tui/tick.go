// Package tui provides the Bubble Tea integration for the trainer.
// It drives the engine from display ticks, maps mouse and keyboard input to
// engine controls and renders the play field, menus and statistics.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to advance the engine by one frame. Loop identifies the
// game model that scheduled it, so a model left behind by the session never
// keeps a second loop alive.
type TickMsg struct {
	At   time.Time
	Loop uint64
}

var loopIDs atomic.Uint64

func nextLoopID() uint64 {
	return loopIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(fps int, loop uint64) tea.Cmd {
	if fps <= 0 {
		fps = 60
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}
