package party

import (
	"math/rand"
	"slices"
	"testing"
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
)

var testPalette = []core.Color{"#ff0099", "#00ffff", "#ffff00", "#ff00ff", "#00ff00", "#9900ff"}

func TestBucketFor(t *testing.T) {
	tests := []struct {
		widthPx int
		want    Bucket
	}{
		{0, Narrow},
		{320, Narrow},
		{767, Narrow},
		{768, Wide},
		{769, Wide},
		{1920, Wide},
	}

	for _, tt := range tests {
		if got := BucketFor(tt.widthPx, DefaultBreakpointPx); got != tt.want {
			t.Errorf("BucketFor(%d) = %v, want %v", tt.widthPx, got, tt.want)
		}
	}
}

func TestViewportBucketUsesCellWidth(t *testing.T) {
	tests := []struct {
		name string
		v    Viewport
		want Bucket
	}{
		{"95 cols at 8px", Viewport{Cols: 95, CellWidthPx: 8}, Narrow},
		{"96 cols at 8px", Viewport{Cols: 96, CellWidthPx: 8}, Wide},
		{"zero cell width uses default", Viewport{Cols: 96}, Wide},
		{"wide cells", Viewport{Cols: 64, CellWidthPx: 12}, Wide},
		{"custom breakpoint", Viewport{Cols: 100, CellWidthPx: 8, BreakpointPx: 1024}, Narrow},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Bucket(); got != tt.want {
				t.Errorf("Bucket() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCountsFor(t *testing.T) {
	narrow := CountsFor(Narrow)
	if narrow.Tiles() != 100 || narrow.FloorRows != 10 || narrow.FloorCols != 10 {
		t.Errorf("narrow floor = %dx%d, want 10x10", narrow.FloorRows, narrow.FloorCols)
	}
	if narrow.Lasers != 6 || narrow.Spotlights != 3 || narrow.SoundBars != 5 || narrow.Confetti != 50 {
		t.Errorf("narrow counts = %+v", narrow)
	}

	wide := CountsFor(Wide)
	if wide.Tiles() != 400 || wide.FloorRows != 20 || wide.FloorCols != 20 {
		t.Errorf("wide floor = %dx%d, want 20x20", wide.FloorRows, wide.FloorCols)
	}
	if wide.Lasers != 12 || wide.Spotlights != 5 || wide.SoundBars != 10 || wide.Confetti != 100 {
		t.Errorf("wide counts = %+v", wide)
	}
}

func TestBuildFloor(t *testing.T) {
	var f Floor
	BuildFloor(&f, CountsFor(Wide))
	if len(f.Tiles) != 400 || f.Generation != 1 {
		t.Fatalf("got %d tiles gen %d, want 400 gen 1", len(f.Tiles), f.Generation)
	}

	f.Tiles[3].Color = "#ffffff"
	BuildFloor(&f, CountsFor(Narrow))
	if len(f.Tiles) != 100 {
		t.Errorf("rebuild left %d tiles, want 100", len(f.Tiles))
	}
	if f.Generation != 2 {
		t.Errorf("Generation = %d, want 2", f.Generation)
	}
	for i, tile := range f.Tiles {
		if !tile.Color.IsNone() {
			t.Errorf("tile %d kept color %q after rebuild", i, tile.Color)
		}
	}

	// Missing container is not an error.
	BuildFloor(nil, CountsFor(Wide))
}

func TestBuildRig(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var r Rig

	for _, b := range []Bucket{Wide, Narrow, Wide} {
		c := CountsFor(b)
		BuildLasers(&r, c, testPalette, rng)
		BuildSpotlights(&r, c, testPalette, rng)

		if len(r.Lasers) != c.Lasers {
			t.Errorf("%v: %d lasers, want %d", b, len(r.Lasers), c.Lasers)
		}
		if len(r.Spotlights) != c.Spotlights {
			t.Errorf("%v: %d spotlights, want %d", b, len(r.Spotlights), c.Spotlights)
		}
		for _, l := range r.Lasers {
			if !slices.Contains(testPalette, l.Color) {
				t.Errorf("laser color %q not in palette", l.Color)
			}
			if l.Delay < 0 || l.Delay >= 2*time.Second {
				t.Errorf("laser delay %v out of range", l.Delay)
			}
		}
		for _, sp := range r.Spotlights {
			if sp.X < 0 || sp.X >= 1 || sp.Y < 0 || sp.Y >= 1 {
				t.Errorf("spotlight at (%f, %f) outside the viewport", sp.X, sp.Y)
			}
			if sp.Delay < 0 || sp.Delay >= 3*time.Second {
				t.Errorf("spotlight delay %v out of range", sp.Delay)
			}
		}
	}

	BuildLasers(nil, CountsFor(Wide), testPalette, rng)
	BuildSpotlights(nil, CountsFor(Wide), testPalette, rng)
}

func TestBuildSoundBars(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	bars := BuildSoundBars(CountsFor(Wide), rng)
	if len(bars) != 10 {
		t.Fatalf("got %d bars, want 10", len(bars))
	}
	for i, b := range bars {
		if b.Delay != time.Duration(i)*50*time.Millisecond {
			t.Errorf("bar %d delay = %v", i, b.Delay)
		}
		if b.Period < 300*time.Millisecond || b.Period >= time.Second {
			t.Errorf("bar %d period %v outside [300ms, 1s)", i, b.Period)
		}
	}
}

func TestPickEmptyPalette(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := pick(nil, rng); got != core.ColorWhite {
		t.Errorf("pick(nil) = %q, want white", got)
	}
}
