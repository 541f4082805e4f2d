package party

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
)

// Sizing defaults.
const (
	DefaultBreakpointPx = 768 // Narrow below, wide at or above
	DefaultCellWidthPx  = 8   // Logical pixels per terminal column
)

// Bucket is the viewport sizing tier.
type Bucket int

const (
	Narrow Bucket = iota
	Wide
)

// String returns the bucket name.
func (b Bucket) String() string {
	if b == Narrow {
		return "narrow"
	}
	return "wide"
}

// BucketFor picks the sizing tier for a viewport width in logical pixels.
func BucketFor(widthPx, breakpointPx int) Bucket {
	if widthPx < breakpointPx {
		return Narrow
	}
	return Wide
}

// Viewport is the terminal area the scene draws into.
type Viewport struct {
	Cols         int
	Rows         int
	CellWidthPx  int
	BreakpointPx int
}

// WidthPx returns the viewport width in logical pixels.
func (v Viewport) WidthPx() int {
	cw := v.CellWidthPx
	if cw <= 0 {
		cw = DefaultCellWidthPx
	}
	return v.Cols * cw
}

// Bucket returns the sizing tier of the viewport.
func (v Viewport) Bucket() Bucket {
	bp := v.BreakpointPx
	if bp <= 0 {
		bp = DefaultBreakpointPx
	}
	return BucketFor(v.WidthPx(), bp)
}

// Counts holds every element count that depends on the bucket.
type Counts struct {
	FloorRows  int
	FloorCols  int
	Lasers     int
	Spotlights int
	SoundBars  int
	Confetti   int
}

// Tiles returns the total number of floor tiles.
func (c Counts) Tiles() int {
	return c.FloorRows * c.FloorCols
}

// CountsFor returns the element counts for a bucket.
func CountsFor(b Bucket) Counts {
	if b == Narrow {
		return Counts{FloorRows: 10, FloorCols: 10, Lasers: 6, Spotlights: 3, SoundBars: 5, Confetti: 50}
	}
	return Counts{FloorRows: 20, FloorCols: 20, Lasers: 12, Spotlights: 5, SoundBars: 10, Confetti: 100}
}

// Tile is one floor cell. An empty Color is transparent.
type Tile struct {
	Color core.Color
}

// Floor is the tile grid. Generation increments on every rebuild so delayed
// callbacks can tell whether the tile they captured still exists.
type Floor struct {
	Rows       int
	Cols       int
	Tiles      []Tile
	Generation uint64
}

// Laser is one sweeping beam.
type Laser struct {
	Color core.Color
	Delay time.Duration
}

// Spotlight is one roaming light blob. X and Y are fractions of the viewport.
type Spotlight struct {
	Color core.Color
	X, Y  float64
	Delay time.Duration
}

// Rig holds the laser and spotlight layers.
type Rig struct {
	Lasers     []Laser
	Spotlights []Spotlight
}

// SoundBar is one bar of the sound-wave row.
type SoundBar struct {
	Delay  time.Duration // Animation offset, 50ms per bar index
	Period time.Duration // One grow-or-shrink stroke, 300ms to 1s
}

// BuildFloor clears the floor and recreates a blank grid for the counts.
// A nil floor is a no-op.
func BuildFloor(f *Floor, c Counts) {
	if f == nil {
		return
	}
	f.Rows = c.FloorRows
	f.Cols = c.FloorCols
	f.Tiles = make([]Tile, c.Tiles())
	f.Generation++
}

// BuildLasers replaces every laser with freshly colored ones.
// A nil rig is a no-op.
func BuildLasers(r *Rig, c Counts, palette []core.Color, rng *rand.Rand) {
	if r == nil {
		return
	}
	r.Lasers = make([]Laser, c.Lasers)
	for i := range r.Lasers {
		r.Lasers[i] = Laser{
			Color: pick(palette, rng),
			Delay: randDuration(rng, 2*time.Second),
		}
	}
}

// BuildSpotlights replaces every spotlight with freshly placed ones.
// A nil rig is a no-op.
func BuildSpotlights(r *Rig, c Counts, palette []core.Color, rng *rand.Rand) {
	if r == nil {
		return
	}
	r.Spotlights = make([]Spotlight, c.Spotlights)
	for i := range r.Spotlights {
		r.Spotlights[i] = Spotlight{
			Color: pick(palette, rng),
			X:     rng.Float64(),
			Y:     rng.Float64(),
			Delay: randDuration(rng, 3*time.Second),
		}
	}
}

// BuildSoundBars creates the sound-wave bars for the counts.
func BuildSoundBars(c Counts, rng *rand.Rand) []SoundBar {
	bars := make([]SoundBar, c.SoundBars)
	for i := range bars {
		bars[i] = SoundBar{
			Delay:  time.Duration(i) * 50 * time.Millisecond,
			Period: 300*time.Millisecond + randDuration(rng, 700*time.Millisecond),
		}
	}
	return bars
}

// pick returns a random palette entry, or ColorWhite for an empty palette.
func pick(palette []core.Color, rng *rand.Rand) core.Color {
	if len(palette) == 0 {
		return core.ColorWhite
	}
	return palette[rng.Intn(len(palette))]
}

// randDuration returns a uniform duration in [0, limit).
func randDuration(rng *rand.Rand, limit time.Duration) time.Duration {
	if limit <= 0 {
		return 0
	}
	return time.Duration(rng.Int63n(int64(limit)))
}
