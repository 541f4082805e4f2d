// Package party implements the disco party display: a declarative scene of
// floor tiles, lasers, spotlights, confetti and sound bars, mutated only by a
// virtual-clock scheduler and drawn into a core.Screen.
//
// The package has no Bubble Tea dependency. The platform layer feeds it
// elapsed time, resizes and button presses.
package party

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/registry"
)

// Timing holds every effect duration and rate.
type Timing struct {
	TileFlicker      time.Duration // Floor flicker interval
	TileRevert       time.Duration // Time a flickered tile stays colored
	MaxFlickerTiles  int           // Cap on tiles recolored per flicker
	FlashInterval    time.Duration // Background flash roll interval
	FlashChance      float64       // Probability a roll flashes
	FlashRevert      time.Duration // Time a flash stays up
	ConfettiLifetime time.Duration // Absolute lifetime of a particle
	ConfettiFall     time.Duration // Fall animation length
	ErrorIndicator   time.Duration // Audio rejection indicator duration
}

// DefaultTiming returns the standard effect timings.
func DefaultTiming() Timing {
	return Timing{
		TileFlicker:      200 * time.Millisecond,
		TileRevert:       500 * time.Millisecond,
		MaxFlickerTiles:  20,
		FlashInterval:    500 * time.Millisecond,
		FlashChance:      0.1,
		FlashRevert:      100 * time.Millisecond,
		ConfettiLifetime: 6000 * time.Millisecond,
		ConfettiFall:     5000 * time.Millisecond,
		ErrorIndicator:   1000 * time.Millisecond,
	}
}

// Options configures a Scene.
type Options struct {
	Theme         registry.Theme
	Timing        Timing
	CellWidthPx   int
	BreakpointPx  int
	ReducedMotion bool
	Seed          int64
	Player        Player
	Logger        *log.Logger
}

// withDefaults fills zero values.
func (o Options) withDefaults() Options {
	if o.Timing == (Timing{}) {
		o.Timing = DefaultTiming()
	}
	if o.CellWidthPx <= 0 {
		o.CellWidthPx = DefaultCellWidthPx
	}
	if o.BreakpointPx <= 0 {
		o.BreakpointPx = DefaultBreakpointPx
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	return o
}
