package party

import (
	"math/rand"
	"sync"
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/scheduler"
)

// Stats counts what happened during one scene's lifetime.
type Stats struct {
	Duration        time.Duration
	PartyStarted    bool
	AudioToggles    int
	AudioErrors     int
	Resizes         int
	ConfettiSpawned int
}

// Snapshot is a read-only view of the scene state.
type Snapshot struct {
	Now           time.Duration
	Cols, Rows    int
	Bucket        Bucket
	FloorRows     int
	FloorCols     int
	Tiles         int
	LitTiles      int
	Lasers        int
	Spotlights    int
	SoundBars     int
	Particles     []uint64
	Background    core.Color
	PartyStarted  bool
	AudioState    AudioState
	AudioError    bool
	Focus         Button
	Mounted       bool
	TornDown      bool
	RepeatingLive int // Repeating timers still owned by the effect handles
	Timers        int // Every timer pending in the scheduler
}

// Scene is the party display. It owns the descriptors, the scheduler that
// mutates them and the audio toggle. Public methods are serialised, so a
// Teardown from another goroutine is safe.
type Scene struct {
	mu sync.Mutex

	opts  Options
	rng   *rand.Rand
	sched *scheduler.Scheduler
	view  Viewport

	floor    Floor
	rig      Rig
	bars     []SoundBar
	confetti Confetti
	backdrop Backdrop

	effects *Effects
	handles *scheduler.Handles
	audio   *AudioToggle

	mounted  bool
	tornDown bool

	partyStarted bool
	partyAt      time.Duration
	audioErrAt   time.Duration
	focus        Button

	stats Stats
}

// NewScene creates an unmounted scene for a cols x rows terminal.
func NewScene(opts Options, cols, rows int) *Scene {
	opts = opts.withDefaults()
	s := &Scene{
		opts:  opts,
		rng:   rand.New(rand.NewSource(opts.Seed)),
		sched: scheduler.New(),
		view: Viewport{
			Cols:         max(cols, 0),
			Rows:         max(rows, 0),
			CellWidthPx:  opts.CellWidthPx,
			BreakpointPx: opts.BreakpointPx,
		},
		backdrop: Backdrop{Base: core.ColorBlack, Color: core.ColorBlack},
	}
	s.audio = NewAudioToggle(opts.Player, opts.Logger, opts.Timing.ErrorIndicator)
	s.effects = NewEffects(&s.floor, &s.backdrop, s.rng,
		opts.Theme.Palette, opts.Theme.FlashPalette, opts.Theme.FlashOpacity, opts.Timing)
	return s
}

// Mount builds the layout and starts the repeating effects. Mounting twice,
// or after teardown, does nothing.
func (s *Scene) Mount() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mounted || s.tornDown {
		return
	}
	s.mounted = true
	s.rebuild()
	s.handles = s.effects.Start(s.sched)
	s.opts.Logger.Debug("scene mounted",
		"cols", s.view.Cols, "rows", s.view.Rows, "bucket", s.view.Bucket())
}

// rebuild regenerates every bucket-dependent descriptor list.
func (s *Scene) rebuild() {
	c := CountsFor(s.view.Bucket())
	BuildFloor(&s.floor, c)
	BuildLasers(&s.rig, c, s.opts.Theme.Palette, s.rng)
	BuildSpotlights(&s.rig, c, s.opts.Theme.Palette, s.rng)
	s.bars = BuildSoundBars(c, s.rng)
}

// StartParty fires the one-shot party: confetti, a fresh light rig and the
// fast subtitle pulse. It reports whether the party was started by this call.
func (s *Scene) StartParty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted || s.tornDown || s.partyStarted {
		return false
	}
	s.partyStarted = true
	s.partyAt = s.sched.Now()
	s.stats.PartyStarted = true

	s.spawnConfetti()
	c := CountsFor(s.view.Bucket())
	BuildLasers(&s.rig, c, s.opts.Theme.Palette, s.rng)
	BuildSpotlights(&s.rig, c, s.opts.Theme.Palette, s.rng)

	if s.focus == ButtonStart {
		s.focus = ButtonMusic
	}
	s.opts.Logger.Info("party started", "confetti", s.confetti.Len())
	return true
}

// SpawnConfetti replaces the current particles with a fresh batch.
func (s *Scene) SpawnConfetti() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted || s.tornDown {
		return
	}
	s.spawnConfetti()
}

// spawnConfetti drops the live batch, creates a new one and schedules each
// particle's removal. Removal of a particle already gone is a no-op.
func (s *Scene) spawnConfetti() {
	count := CountsFor(s.view.Bucket()).Confetti
	ids := s.confetti.Spawn(count, s.opts.Theme.Palette, s.rng, s.sched.Now())
	for _, id := range ids {
		id := id
		s.sched.After(s.opts.Timing.ConfettiLifetime, func() {
			s.confetti.Remove(id)
		})
	}
	s.stats.ConfettiSpawned += len(ids)
}

// ToggleAudio flips the music button. A playback rejection is already logged
// and shown; the error is returned for callers that want to count it.
func (s *Scene) ToggleAudio() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted || s.tornDown {
		return nil
	}
	s.stats.AudioToggles++
	err := s.audio.Toggle(s.sched)
	if err != nil {
		s.stats.AudioErrors++
		s.audioErrAt = s.sched.Now()
	}
	return err
}

// Resize regenerates the floor, lasers, spotlights and sound bars for the new
// size. Every call rebuilds; after teardown Resize does nothing.
func (s *Scene) Resize(cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tornDown {
		return
	}
	s.view.Cols = max(cols, 0)
	s.view.Rows = max(rows, 0)
	if !s.mounted {
		return
	}
	s.stats.Resizes++
	s.rebuild()
}

// Advance moves scene time forward, firing due timers.
func (s *Scene) Advance(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tornDown {
		return
	}
	s.sched.Advance(dt)
}

// Teardown stops every timer and the audio. Calling it again is a no-op.
func (s *Scene) Teardown() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tornDown {
		return
	}
	s.tornDown = true
	s.effects.Stop(s.sched, s.handles)
	s.sched.CancelAll()
	s.audio.Stop()
	s.stats.Duration = s.sched.Now()
	s.opts.Logger.Debug("scene torn down", "elapsed", s.stats.Duration)
}

// FocusNext moves keyboard focus to the next enabled button.
func (s *Scene) FocusNext() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveFocus()
}

// FocusPrev moves keyboard focus to the previous enabled button. With two
// buttons it is the same move as FocusNext.
func (s *Scene) FocusPrev() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.moveFocus()
}

func (s *Scene) moveFocus() {
	if s.partyStarted {
		s.focus = ButtonMusic
		return
	}
	if s.focus == ButtonStart {
		s.focus = ButtonMusic
	} else {
		s.focus = ButtonStart
	}
}

// Focused returns the button with keyboard focus.
func (s *Scene) Focused() Button {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.focus
}

// Press activates a button. The start button is disabled once used.
func (s *Scene) Press(b Button) {
	switch b {
	case ButtonStart:
		s.StartParty()
	case ButtonMusic:
		_ = s.ToggleAudio()
	}
}

// PressFocused activates the focused button.
func (s *Scene) PressFocused() {
	s.Press(s.Focused())
}

// Frame returns the layout for the current terminal size.
func (s *Scene) Frame() Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frame()
}

func (s *Scene) frame() Frame {
	return ComputeFrame(s.view.Cols, s.view.Rows, s.view.Bucket(), s.view.CellWidthPx)
}

// ButtonAt returns the button drawn at a cell.
func (s *Scene) ButtonAt(x, y int) (Button, bool) {
	return s.Frame().ButtonAt(x, y)
}

// Stats returns the counters collected so far.
func (s *Scene) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := s.stats
	if !s.tornDown {
		st.Duration = s.sched.Now()
	}
	return st
}

// Snapshot returns the current scene state.
func (s *Scene) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	lit := 0
	for _, t := range s.floor.Tiles {
		if !t.Color.IsNone() {
			lit++
		}
	}
	ids := make([]uint64, 0, s.confetti.Len())
	for _, p := range s.confetti.Particles {
		ids = append(ids, p.ID)
	}
	repeating := 0
	if s.handles != nil {
		repeating = s.handles.Len()
	}

	return Snapshot{
		Now:           s.sched.Now(),
		Cols:          s.view.Cols,
		Rows:          s.view.Rows,
		Bucket:        s.view.Bucket(),
		FloorRows:     s.floor.Rows,
		FloorCols:     s.floor.Cols,
		Tiles:         len(s.floor.Tiles),
		LitTiles:      lit,
		Lasers:        len(s.rig.Lasers),
		Spotlights:    len(s.rig.Spotlights),
		SoundBars:     len(s.bars),
		Particles:     ids,
		Background:    s.backdrop.Color,
		PartyStarted:  s.partyStarted,
		AudioState:    s.audio.State(),
		AudioError:    s.audio.ErrorVisible(),
		Focus:         s.focus,
		Mounted:       s.mounted,
		TornDown:      s.tornDown,
		RepeatingLive: repeating,
		Timers:        s.sched.Len(),
	}
}

// ClearTimers cancels the effect handles again. It exists so callers can
// assert that clearing after teardown is harmless.
func (s *Scene) ClearTimers() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects.Stop(s.sched, s.handles)
}
