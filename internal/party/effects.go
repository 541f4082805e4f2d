package party

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/scheduler"
)

// Backdrop is the page background. Flashes set Color briefly, reverts go
// back to Base.
type Backdrop struct {
	Base  core.Color
	Color core.Color
}

// Effects drives the two repeating effects: floor flicker and background flash.
type Effects struct {
	floor    *Floor
	backdrop *Backdrop
	rng      *rand.Rand
	palette  []core.Color
	flash    []core.Color
	opacity  float64
	timing   Timing
}

// NewEffects wires the effects to the descriptors they mutate.
func NewEffects(floor *Floor, backdrop *Backdrop, rng *rand.Rand, palette, flash []core.Color, flashOpacity float64, timing Timing) *Effects {
	return &Effects{
		floor:    floor,
		backdrop: backdrop,
		rng:      rng,
		palette:  palette,
		flash:    flash,
		opacity:  flashOpacity,
		timing:   timing,
	}
}

// FlickerCount returns how many tiles one flicker tick recolors:
// a quarter of the floor, capped, rounded up.
func FlickerCount(tiles, limit int) int {
	if tiles <= 0 || limit <= 0 {
		return 0
	}
	return int(math.Ceil(math.Min(float64(tiles)/4, float64(limit))))
}

// Start registers the repeating timers and returns the handles that own them.
func (e *Effects) Start(s *scheduler.Scheduler) *scheduler.Handles {
	h := &scheduler.Handles{}
	h.Add(s.Every(e.timing.TileFlicker, func() { e.flicker(s) }))
	h.Add(s.Every(e.timing.FlashInterval, func() { e.flashBackground(s) }))
	return h
}

// Stop cancels the timers started by Start. Nil handles are a no-op.
func (e *Effects) Stop(c scheduler.Canceler, h *scheduler.Handles) {
	if h == nil {
		return
	}
	h.Clear(c)
}

// flicker colors a random subset of tiles, chosen with replacement, and
// schedules each one's revert.
func (e *Effects) flicker(s *scheduler.Scheduler) {
	if e.floor == nil || len(e.floor.Tiles) == 0 {
		return
	}
	n := FlickerCount(len(e.floor.Tiles), e.timing.MaxFlickerTiles)
	gen := e.floor.Generation
	for i := 0; i < n; i++ {
		idx := e.rng.Intn(len(e.floor.Tiles))
		e.floor.Tiles[idx].Color = pick(e.palette, e.rng)
		s.After(e.timing.TileRevert, func() { e.revertTile(gen, idx) })
	}
}

// revertTile clears a tile if the floor it was colored on still exists.
func (e *Effects) revertTile(gen uint64, idx int) {
	if e.floor == nil || e.floor.Generation != gen || idx >= len(e.floor.Tiles) {
		return
	}
	e.floor.Tiles[idx].Color = core.ColorNone
}

// flashBackground occasionally tints the backdrop and schedules the revert.
func (e *Effects) flashBackground(s *scheduler.Scheduler) {
	if e.backdrop == nil || len(e.flash) == 0 {
		return
	}
	if e.rng.Float64() >= e.timing.FlashChance {
		return
	}
	e.backdrop.Color = pick(e.flash, e.rng).Blend(e.backdrop.Base, e.opacity)
	s.After(e.timing.FlashRevert, func() {
		e.backdrop.Color = e.backdrop.Base
	})
}
