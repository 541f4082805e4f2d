package audio

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/faiface/beep"
)

// constStreamer emits the same stereo sample forever.
func constStreamer(v float64) beep.Streamer {
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			samples[i] = [2]float64{v, v}
		}
		return len(samples), true
	})
}

func TestSilentRejectsPlayback(t *testing.T) {
	var s Silent
	if err := s.Play(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Play() error = %v, want ErrUnavailable", err)
	}
	s.Pause()
	s.Stop()
	if s.Levels(5) != nil {
		t.Error("Silent reported levels")
	}
}

func TestPlayerWithoutPath(t *testing.T) {
	p := NewPlayer("", nil)
	if err := p.Play(); !errors.Is(err, ErrUnavailable) {
		t.Errorf("Play() error = %v, want ErrUnavailable", err)
	}
	// Nothing was loaded, so these are no-ops.
	p.Pause()
	p.Stop()
	if p.Levels(3) != nil {
		t.Error("unloaded player reported levels")
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close() error = %v", err)
	}
}

func TestPlayerMissingFile(t *testing.T) {
	p := NewPlayer(filepath.Join(t.TempDir(), "nope.mp3"), nil)
	err := p.Play()
	if err == nil {
		t.Fatal("Play() on a missing file succeeded")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Play() error = %v, want not-exist", err)
	}
}

func TestPlayerUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "party.ogg")
	if err := os.WriteFile(path, []byte("not audio"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewPlayer(path, nil)
	if err := p.Play(); !errors.Is(err, ErrUnsupported) {
		t.Errorf("Play() error = %v, want ErrUnsupported", err)
	}
	if p.Path() != path {
		t.Errorf("Path() = %q", p.Path())
	}
}

func TestPlayerCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "party.wav")
	if err := os.WriteFile(path, []byte("RIFF garbage"), 0o644); err != nil {
		t.Fatal(err)
	}

	p := NewPlayer(path, nil)
	if err := p.Play(); err == nil {
		t.Error("Play() decoded a corrupt wav")
	}
}

func TestTapLevels(t *testing.T) {
	tp := newTap(constStreamer(0.5), 64)

	if tp.levels(4) != nil {
		t.Error("levels before any samples should be nil")
	}

	buf := make([][2]float64, 100)
	if n, ok := tp.Stream(buf); n != 100 || !ok {
		t.Fatalf("Stream() = %d, %v", n, ok)
	}

	got := tp.levels(4)
	if len(got) != 4 {
		t.Fatalf("levels(4) returned %d bands", len(got))
	}
	want := math.Pow(0.5, 0.3)
	for i, v := range got {
		if math.Abs(v-want) > 1e-9 {
			t.Errorf("band %d = %f, want %f", i, v, want)
		}
	}
	if tp.levels(0) != nil {
		t.Error("levels(0) should be nil")
	}
}

func TestTapSnapshotOrder(t *testing.T) {
	i := 0.0
	src := beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for k := range samples {
			i++
			samples[k] = [2]float64{i, i}
		}
		return len(samples), true
	})
	tp := newTap(src, 4)

	tp.Stream(make([][2]float64, 3))
	if got := tp.snapshot(); len(got) != 3 || got[0][0] != 1 || got[2][0] != 3 {
		t.Fatalf("partial snapshot = %v", got)
	}

	tp.Stream(make([][2]float64, 3))
	got := tp.snapshot()
	if len(got) != 4 {
		t.Fatalf("snapshot has %d samples, want 4", len(got))
	}
	for k, want := range []float64{3, 4, 5, 6} {
		if got[k][0] != want {
			t.Errorf("snapshot[%d] = %v, want %v", k, got[k][0], want)
		}
	}
}
