package party

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
)

// Particle is one confetti piece.
type Particle struct {
	ID    uint64
	Color core.Color
	X     float64       // Horizontal start, fraction of the viewport
	Delay time.Duration // Wait before falling
	Born  time.Duration // Scene time of creation
}

// Confetti is the particle layer.
type Confetti struct {
	Particles []Particle
	nextID    uint64
}

// Spawn drops every current particle and creates count new ones.
// It returns the new particle IDs.
func (c *Confetti) Spawn(count int, palette []core.Color, rng *rand.Rand, now time.Duration) []uint64 {
	if c == nil {
		return nil
	}
	c.Particles = make([]Particle, 0, count)
	ids := make([]uint64, 0, count)
	for i := 0; i < count; i++ {
		c.nextID++
		c.Particles = append(c.Particles, Particle{
			ID:    c.nextID,
			Color: pick(palette, rng),
			X:     rng.Float64(),
			Delay: randDuration(rng, 5*time.Second),
			Born:  now,
		})
		ids = append(ids, c.nextID)
	}
	return ids
}

// Remove deletes a particle by ID. Removing a particle that is already gone
// is a no-op and returns false.
func (c *Confetti) Remove(id uint64) bool {
	if c == nil {
		return false
	}
	for i, p := range c.Particles {
		if p.ID == id {
			c.Particles = append(c.Particles[:i], c.Particles[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of live particles.
func (c *Confetti) Len() int {
	if c == nil {
		return 0
	}
	return len(c.Particles)
}

// FallProgress returns how far a particle has fallen at scene time now,
// from 0 (top) to 1 (bottom), and whether it is visible at all.
// A particle waits out its delay above the screen and vanishes once landed.
func FallProgress(p Particle, now, fall time.Duration) (float64, bool) {
	if fall <= 0 {
		return 0, false
	}
	elapsed := now - p.Born - p.Delay
	if elapsed < 0 || elapsed >= fall {
		return 0, false
	}
	return float64(elapsed) / float64(fall), true
}
