package party

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/scheduler"
)

// Player is the audio backend behind the music button.
type Player interface {
	// Play starts or resumes looping playback. An error means the runtime
	// refused to play (no device, no asset, not permitted).
	Play() error
	// Pause halts playback, keeping the position.
	Pause()
	// Stop halts playback and rewinds to the start.
	Stop()
	// Levels returns n loudness bands in [0,1] for the sound-wave bars,
	// or nil when nothing is playing.
	Levels(n int) []float64
}

// AudioState is the music button state.
type AudioState int

const (
	AudioPaused AudioState = iota
	AudioPlaying
)

// String returns the state name.
func (s AudioState) String() string {
	if s == AudioPlaying {
		return "playing"
	}
	return "paused"
}

// AudioToggle is the two-state play/pause machine with a transient error
// indicator for rejected playback.
type AudioToggle struct {
	player     Player
	state      AudioState
	showError  bool
	errorTimer scheduler.TimerID
	logger     *log.Logger
	indicator  time.Duration
}

// NewAudioToggle creates a paused toggle. A nil player disables the toggle.
func NewAudioToggle(p Player, logger *log.Logger, indicator time.Duration) *AudioToggle {
	return &AudioToggle{
		player:    p,
		logger:    logger,
		indicator: indicator,
	}
}

// State returns the current state.
func (a *AudioToggle) State() AudioState {
	return a.state
}

// Playing reports whether the toggle shows "Pause Music".
func (a *AudioToggle) Playing() bool {
	return a.state == AudioPlaying
}

// ErrorVisible reports whether the rejection indicator is showing.
func (a *AudioToggle) ErrorVisible() bool {
	return a.showError
}

// Toggle flips the state. Going to Playing attempts playback; a rejection is
// logged and flagged for the indicator duration, but the state still flips.
// The playback error, if any, is returned for bookkeeping only.
func (a *AudioToggle) Toggle(s *scheduler.Scheduler) error {
	if a.player == nil {
		return nil
	}

	if a.state == AudioPlaying {
		a.player.Pause()
		a.state = AudioPaused
		return nil
	}

	err := a.player.Play()
	if err != nil {
		if a.logger != nil {
			a.logger.Warn("audio playback error", "error", err)
		}
		a.flagError(s)
	}
	a.state = AudioPlaying
	return err
}

func (a *AudioToggle) flagError(s *scheduler.Scheduler) {
	a.showError = true
	if s == nil {
		return
	}
	s.Cancel(a.errorTimer)
	a.errorTimer = s.After(a.indicator, func() {
		a.showError = false
		a.errorTimer = 0
	})
}

// Stop pauses and rewinds the player and returns to Paused.
func (a *AudioToggle) Stop() {
	if a.player != nil {
		a.player.Stop()
	}
	a.state = AudioPaused
	a.showError = false
}

// Levels proxies the player's loudness bands while playing.
func (a *AudioToggle) Levels(n int) []float64 {
	if a.player == nil || a.state != AudioPlaying {
		return nil
	}
	return a.player.Levels(n)
}
