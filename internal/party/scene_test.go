package party

import (
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/registry"
)

func testTheme() registry.Theme {
	return registry.Theme{
		ID:           "test",
		Title:        "Test",
		Heading:      "Happy Birthday Rohit!",
		Subtitle:     "Let's Boogie All Night Long!",
		Palette:      testPalette,
		FlashPalette: testPalette,
		FlashOpacity: 0.3,
		TitleCycle:   testPalette[:4],
	}
}

// Narrow is 80 cols (640px), wide is 120 cols (960px) at the default cell width.
func newTestScene(t *testing.T, cols, rows int, p Player) *Scene {
	t.Helper()
	s := NewScene(Options{Theme: testTheme(), Seed: 42, Player: p, Logger: quietLogger()}, cols, rows)
	s.Mount()
	return s
}

func TestSceneMountCounts(t *testing.T) {
	tests := []struct {
		name       string
		cols       int
		tiles      int
		lasers     int
		spotlights int
		bars       int
	}{
		{"narrow", 80, 100, 6, 3, 5},
		{"just below breakpoint", 95, 100, 6, 3, 5},
		{"at breakpoint", 96, 400, 12, 5, 10},
		{"wide", 160, 400, 12, 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestScene(t, tt.cols, 30, nil)
			snap := s.Snapshot()
			if snap.Tiles != tt.tiles || snap.Lasers != tt.lasers || snap.Spotlights != tt.spotlights || snap.SoundBars != tt.bars {
				t.Errorf("got tiles=%d lasers=%d spotlights=%d bars=%d, want %d/%d/%d/%d",
					snap.Tiles, snap.Lasers, snap.Spotlights, snap.SoundBars,
					tt.tiles, tt.lasers, tt.spotlights, tt.bars)
			}
			if snap.RepeatingLive != 2 {
				t.Errorf("RepeatingLive = %d, want 2", snap.RepeatingLive)
			}
		})
	}
}

func TestSceneMountIsIdempotent(t *testing.T) {
	s := newTestScene(t, 80, 24, nil)
	s.Mount()
	if got := s.Snapshot().RepeatingLive; got != 2 {
		t.Errorf("double mount left %d repeating timers, want 2", got)
	}
}

func TestSceneResizeCrossesBreakpoint(t *testing.T) {
	s := newTestScene(t, 80, 24, nil)
	s.Advance(time.Second)

	s.Resize(120, 30)
	snap := s.Snapshot()
	if snap.Bucket != Wide || snap.Tiles != 400 || snap.FloorRows != 20 || snap.Lasers != 12 || snap.Spotlights != 5 {
		t.Errorf("after widening: %+v", snap)
	}
	if snap.LitTiles != 0 {
		t.Errorf("%d tiles carried over from the narrow floor", snap.LitTiles)
	}

	s.Advance(time.Second)
	s.Resize(60, 24)
	snap = s.Snapshot()
	if snap.Bucket != Narrow || snap.Tiles != 100 || snap.FloorCols != 10 || snap.Lasers != 6 || snap.Spotlights != 3 {
		t.Errorf("after narrowing: %+v", snap)
	}

	// Reverts scheduled on the wide floor must not touch the new one.
	s.Advance(5 * time.Second)
	if got := s.Snapshot().Tiles; got != 100 {
		t.Errorf("tiles = %d after stale reverts, want 100", got)
	}
	if got := s.Stats().Resizes; got != 2 {
		t.Errorf("Resizes = %d, want 2", got)
	}
}

func TestSceneResizeBeforeMount(t *testing.T) {
	s := NewScene(Options{Theme: testTheme()}, 80, 24)
	s.Resize(120, 30)
	if snap := s.Snapshot(); snap.Tiles != 0 {
		t.Errorf("layout built before mount: %d tiles", snap.Tiles)
	}
	s.Mount()
	if snap := s.Snapshot(); snap.Tiles != 400 {
		t.Errorf("mount after resize built %d tiles, want 400", snap.Tiles)
	}
}

func TestSceneStartPartyOnce(t *testing.T) {
	s := newTestScene(t, 80, 24, nil)

	if !s.StartParty() {
		t.Fatal("first StartParty returned false")
	}
	if s.StartParty() {
		t.Error("second StartParty returned true")
	}
	snap := s.Snapshot()
	if !snap.PartyStarted {
		t.Error("PartyStarted not set")
	}
	if len(snap.Particles) != 50 {
		t.Errorf("%d particles, want 50", len(snap.Particles))
	}
	if got := s.Stats().ConfettiSpawned; got != 50 {
		t.Errorf("ConfettiSpawned = %d, want 50", got)
	}
}

func TestSceneConfettiLifetime(t *testing.T) {
	s := newTestScene(t, 120, 30, nil)
	s.StartParty()

	s.Advance(5999 * time.Millisecond)
	if got := len(s.Snapshot().Particles); got != 100 {
		t.Fatalf("%d particles before lifetime, want 100", got)
	}
	s.Advance(time.Millisecond)
	if got := len(s.Snapshot().Particles); got != 0 {
		t.Errorf("%d particles left after 6000ms", got)
	}
}

func TestSceneConfettiRespawn(t *testing.T) {
	s := newTestScene(t, 80, 24, nil)
	s.SpawnConfetti()
	first := s.Snapshot().Particles

	s.Advance(3 * time.Second)
	s.SpawnConfetti()
	snap := s.Snapshot()
	if len(snap.Particles) != 50 {
		t.Fatalf("%d particles after respawn, want one batch of 50", len(snap.Particles))
	}
	for _, id := range first {
		for _, live := range snap.Particles {
			if id == live {
				t.Fatalf("particle %d from the first batch survived", id)
			}
		}
	}

	// The first batch's removal timers fire at 6s and find nothing.
	s.Advance(3 * time.Second)
	if got := len(s.Snapshot().Particles); got != 50 {
		t.Errorf("%d particles at 6s, want the second batch intact", got)
	}
	s.Advance(3 * time.Second)
	if got := len(s.Snapshot().Particles); got != 0 {
		t.Errorf("%d particles at 9s, want 0", got)
	}
}

func TestSceneTeardown(t *testing.T) {
	p := &fakePlayer{}
	s := newTestScene(t, 80, 24, p)
	s.StartParty()
	_ = s.ToggleAudio()
	s.Advance(250 * time.Millisecond)

	s.Teardown()
	snap := s.Snapshot()
	if snap.RepeatingLive != 0 {
		t.Errorf("RepeatingLive = %d after teardown", snap.RepeatingLive)
	}
	if snap.Timers != 0 {
		t.Errorf("%d timers pending after teardown", snap.Timers)
	}
	if snap.AudioState != AudioPaused || p.stops != 1 {
		t.Errorf("audio state=%v stops=%d after teardown", snap.AudioState, p.stops)
	}

	// Clearing again and tearing down again are harmless.
	s.ClearTimers()
	s.Teardown()
	if p.stops != 1 {
		t.Errorf("second teardown stopped audio again")
	}

	// Nothing acts on a torn-down scene.
	s.Resize(200, 50)
	s.Advance(10 * time.Second)
	_ = s.ToggleAudio()
	after := s.Snapshot()
	if after.Tiles != 100 || after.Cols != 80 {
		t.Errorf("resize after teardown rebuilt the layout: %+v", after)
	}
	if after.Now != snap.Now {
		t.Errorf("clock moved after teardown: %v -> %v", snap.Now, after.Now)
	}
	if p.plays != 1 {
		t.Errorf("audio played after teardown")
	}
}

func TestSceneConcurrentTeardown(t *testing.T) {
	s := newTestScene(t, 80, 24, &fakePlayer{})
	s.StartParty()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				s.Advance(16 * time.Millisecond)
			}
		}()
		go func() {
			defer wg.Done()
			s.Teardown()
		}()
	}
	wg.Wait()

	if snap := s.Snapshot(); snap.Timers != 0 || snap.RepeatingLive != 0 {
		t.Errorf("timers left after concurrent teardown: %+v", snap)
	}
}

func TestSceneAudioRejection(t *testing.T) {
	p := &fakePlayer{err: errRejected}
	s := newTestScene(t, 80, 24, p)

	if err := s.ToggleAudio(); !errors.Is(err, errRejected) {
		t.Fatalf("ToggleAudio() error = %v", err)
	}
	snap := s.Snapshot()
	if snap.AudioState != AudioPlaying || !snap.AudioError {
		t.Errorf("state=%v error=%v, want playing with indicator", snap.AudioState, snap.AudioError)
	}

	scr := core.NewScreen(80, 24)
	s.Render(scr)
	if !strings.Contains(scr.String(), LabelPause) {
		t.Error("rendered button does not read Pause Music after rejection")
	}

	s.Advance(time.Second)
	if s.Snapshot().AudioError {
		t.Error("indicator still visible after 1000ms")
	}

	st := s.Stats()
	if st.AudioToggles != 1 || st.AudioErrors != 1 {
		t.Errorf("stats = %+v", st)
	}
}

func TestSceneFocusAndPress(t *testing.T) {
	p := &fakePlayer{}
	s := newTestScene(t, 80, 24, p)

	if s.Focused() != ButtonStart {
		t.Fatalf("initial focus = %v", s.Focused())
	}
	s.FocusNext()
	if s.Focused() != ButtonMusic {
		t.Errorf("focus after next = %v", s.Focused())
	}
	s.FocusPrev()
	s.PressFocused()
	if !s.Snapshot().PartyStarted {
		t.Error("pressing focused start did not start the party")
	}
	if s.Focused() != ButtonMusic {
		t.Errorf("focus stayed on the disabled start button")
	}
	s.FocusNext()
	if s.Focused() != ButtonMusic {
		t.Errorf("focus moved to the disabled start button")
	}

	f := s.Frame()
	b, ok := s.ButtonAt(f.Music.X, f.Music.Y)
	if !ok || b != ButtonMusic {
		t.Fatalf("ButtonAt(music) = %v, %v", b, ok)
	}
	s.Press(b)
	if p.plays != 1 {
		t.Errorf("plays = %d, want 1", p.plays)
	}
}

func TestSceneRender(t *testing.T) {
	s := newTestScene(t, 80, 24, nil)
	scr := core.NewScreen(1, 1)

	s.Render(scr)
	if scr.Width() != 80 || scr.Height() != 24 {
		t.Fatalf("screen not resized: %dx%d", scr.Width(), scr.Height())
	}
	out := scr.String()
	for _, want := range []string{"Happy Birthday Rohit!", "Let's Boogie All Night Long!", LabelStart, LabelPlay} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q", want)
		}
	}

	s.StartParty()
	s.Advance(100 * time.Millisecond)
	s.Render(scr)
	if !strings.Contains(scr.String(), LabelStarted) {
		t.Error("render missing the started label")
	}

	f := s.Frame()
	cell := scr.GetCell(f.Start.X+f.Start.W/2, f.Start.Y)
	if cell.BG != disabledBG {
		t.Errorf("started button background = %q, want disabled", cell.BG)
	}
}

func TestSceneReducedMotionIsStatic(t *testing.T) {
	s := NewScene(Options{Theme: testTheme(), Seed: 5, ReducedMotion: true}, 100, 30)
	s.Mount()
	s.StartParty()

	a := core.NewScreen(100, 30)
	b := core.NewScreen(100, 30)
	s.Advance(10 * time.Millisecond)
	s.Render(a)
	s.Advance(3700 * time.Millisecond)
	s.Render(b)

	if a.String() != b.String() {
		t.Error("reduced motion render changed between frames")
	}
	// Effects keep running underneath.
	if s.Snapshot().RepeatingLive != 2 {
		t.Error("reduced motion stopped the effect timers")
	}
}

func TestSceneRenderTinyTerminal(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {1, 1}, {5, 3}, {20, 6}} {
		s := newTestScene(t, size[0], size[1], nil)
		s.StartParty()
		s.Advance(2 * time.Second)
		s.Render(core.NewScreen(size[0], size[1]))
	}
}
