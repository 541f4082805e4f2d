package party

import (
	"errors"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/scheduler"
)

var errRejected = errors.New("playback rejected")

// fakePlayer records calls and optionally rejects playback.
type fakePlayer struct {
	err    error
	plays  int
	pauses int
	stops  int
	levels []float64
}

func (p *fakePlayer) Play() error {
	p.plays++
	return p.err
}

func (p *fakePlayer) Pause() { p.pauses++ }
func (p *fakePlayer) Stop()  { p.stops++ }

func (p *fakePlayer) Levels(n int) []float64 {
	if len(p.levels) != n {
		return nil
	}
	return p.levels
}

func quietLogger() *log.Logger {
	return log.New(io.Discard)
}

func TestAudioToggleCycle(t *testing.T) {
	p := &fakePlayer{}
	a := NewAudioToggle(p, quietLogger(), time.Second)
	s := scheduler.New()

	if a.State() != AudioPaused {
		t.Fatalf("initial state = %v, want paused", a.State())
	}
	if err := a.Toggle(s); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if !a.Playing() || p.plays != 1 {
		t.Errorf("after first toggle: playing=%v plays=%d", a.Playing(), p.plays)
	}
	if err := a.Toggle(s); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if a.Playing() || p.pauses != 1 {
		t.Errorf("after second toggle: playing=%v pauses=%d", a.Playing(), p.pauses)
	}
	if a.ErrorVisible() {
		t.Error("error indicator shown without a rejection")
	}
}

func TestAudioRejectionStillPlaysAndClears(t *testing.T) {
	p := &fakePlayer{err: errRejected}
	a := NewAudioToggle(p, quietLogger(), time.Second)
	s := scheduler.New()

	if err := a.Toggle(s); !errors.Is(err, errRejected) {
		t.Fatalf("Toggle() error = %v, want %v", err, errRejected)
	}
	if a.State() != AudioPlaying {
		t.Errorf("state = %v after rejection, want playing", a.State())
	}
	if !a.ErrorVisible() {
		t.Fatal("error indicator not shown")
	}

	s.Advance(999 * time.Millisecond)
	if !a.ErrorVisible() {
		t.Error("indicator cleared early")
	}
	s.Advance(time.Millisecond)
	if a.ErrorVisible() {
		t.Error("indicator still visible after 1000ms")
	}
}

func TestAudioRepeatedRejectionRestartsIndicator(t *testing.T) {
	p := &fakePlayer{err: errRejected}
	a := NewAudioToggle(p, quietLogger(), time.Second)
	s := scheduler.New()

	_ = a.Toggle(s) // rejected at 0
	s.Advance(200 * time.Millisecond)
	_ = a.Toggle(s) // pause
	s.Advance(300 * time.Millisecond)
	_ = a.Toggle(s) // rejected again at 500ms

	s.Advance(700 * time.Millisecond) // 1200ms
	if !a.ErrorVisible() {
		t.Error("indicator cleared by the first timer")
	}
	s.Advance(300 * time.Millisecond) // 1500ms
	if a.ErrorVisible() {
		t.Error("indicator still visible 1000ms after the last rejection")
	}
	if s.Len() != 0 {
		t.Errorf("%d timers pending, want 0", s.Len())
	}
}

func TestAudioStop(t *testing.T) {
	p := &fakePlayer{err: errRejected}
	a := NewAudioToggle(p, quietLogger(), time.Second)
	s := scheduler.New()

	_ = a.Toggle(s)
	a.Stop()
	if a.Playing() || a.ErrorVisible() || p.stops != 1 {
		t.Errorf("after Stop: playing=%v error=%v stops=%d", a.Playing(), a.ErrorVisible(), p.stops)
	}
}

func TestAudioNilPlayer(t *testing.T) {
	a := NewAudioToggle(nil, nil, time.Second)
	if err := a.Toggle(scheduler.New()); err != nil {
		t.Errorf("Toggle() error = %v", err)
	}
	if a.Playing() {
		t.Error("nil player toggle should stay paused")
	}
	a.Stop()
	if a.Levels(5) != nil {
		t.Error("Levels() with nil player should be nil")
	}
}

func TestAudioLevelsOnlyWhilePlaying(t *testing.T) {
	p := &fakePlayer{levels: []float64{0.1, 0.2, 0.3}}
	a := NewAudioToggle(p, quietLogger(), time.Second)

	if a.Levels(3) != nil {
		t.Error("levels reported while paused")
	}
	_ = a.Toggle(scheduler.New())
	if got := a.Levels(3); len(got) != 3 {
		t.Errorf("Levels(3) = %v", got)
	}
}
