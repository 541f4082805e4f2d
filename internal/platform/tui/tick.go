// Package tui provides the Bubble Tea integration for the party display.
// It handles the terminal UI loop, input mapping, session recording and the
// SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// maxStep caps how much virtual time one tick may advance. A suspended
// terminal or a stalled SSH link resumes instead of replaying every timer.
const maxStep = 250 * time.Millisecond

// TickMsg is sent to advance the scene clock. ID names the model that
// asked for it, so a tick still in flight when a model is replaced is dropped.
type TickMsg struct {
	ID   int64
	Time time.Time
}

var lastModelID atomic.Int64

func nextModelID() int64 {
	return lastModelID.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(id int64, fps int) tea.Cmd {
	if fps <= 0 {
		fps = 30
	}
	interval := time.Second / time.Duration(fps)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{ID: id, Time: t}
	})
}

// step returns the clamped virtual time between two ticks.
func step(last, now time.Time) time.Duration {
	if last.IsZero() {
		return 0
	}
	dt := now.Sub(last)
	switch {
	case dt < 0:
		return 0
	case dt > maxStep:
		return maxStep
	}
	return dt
}
