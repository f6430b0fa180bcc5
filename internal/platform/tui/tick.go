// Package tui provides the Bubble Tea integration for skyshield.
// It handles the terminal UI loop, input mapping, and rendering; the
// simulation itself lives in the game package and is driven one Frame call
// per display tick.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// FrameMsg is sent once per display frame and carries the wall-clock time
// the engine uses to drive its fixed-step accumulator.
type FrameMsg time.Time

// frameCmd returns a Bubble Tea command that sends frame messages at the
// specified display rate.
func frameCmd(frameRate int) tea.Cmd {
	if frameRate <= 0 {
		frameRate = 60
	}
	interval := time.Second / time.Duration(frameRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return FrameMsg(t)
	})
}
