package party

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
)

// Animation periods.
const (
	titleCycle    = 5 * time.Second
	messagePulse  = 2 * time.Second
	partyPulse    = 500 * time.Millisecond
	ballSwing     = 5 * time.Second
	ballSpin      = 10 * time.Second
	laserSweep    = 8 * time.Second
	spotlightLoop = 5 * time.Second
	shakeLength   = 500 * time.Millisecond
)

// phase returns the position in [0,1) of t within a repeating period.
func phase(t, period time.Duration) float64 {
	if period <= 0 {
		return 0
	}
	p := t % period
	if p < 0 {
		p += period
	}
	return float64(p) / float64(period)
}

// TitleColor cycles through the keyframe colors, returning to the first.
func TitleColor(cycle []core.Color, t time.Duration) core.Color {
	if len(cycle) == 0 {
		return core.ColorWhite
	}
	if len(cycle) == 1 {
		return cycle[0]
	}
	pos := phase(t, titleCycle) * float64(len(cycle))
	i := int(pos)
	next := cycle[(i+1)%len(cycle)]
	return core.Lerp(cycle[i], next, pos-float64(i))
}

// Pulse reports whether a pulsing element is in its "big" half.
func Pulse(t, period time.Duration) bool {
	p := phase(t, period)
	return p >= 0.25 && p < 0.75
}

// SwingOffset returns the disco ball's horizontal sway in cells.
func SwingOffset(t time.Duration, amplitude int) int {
	return int(math.Round(math.Cos(2*math.Pi*phase(t, ballSwing)) * float64(amplitude)))
}

// SpinShift returns how many facet columns the ball has rotated.
func SpinShift(t time.Duration, width int) int {
	if width <= 0 {
		return 0
	}
	return int(phase(t, ballSpin) * float64(width))
}

// LaserAngle returns a beam's angle in radians, clockwise from pointing right.
func LaserAngle(l Laser, t time.Duration) float64 {
	return 2 * math.Pi * phase(t-l.Delay, laserSweep)
}

// LaserOpacity fades a beam between 0.3 and 0.7 through its sweep.
func LaserOpacity(l Laser, t time.Duration) float64 {
	p := phase(t-l.Delay, laserSweep)
	// Keyframes: 0% 0.3, 30% 0.7, 50% 0.3, 80% 0.7, 100% 0.3
	switch {
	case p < 0.3:
		return 0.3 + 0.4*p/0.3
	case p < 0.5:
		return 0.7 - 0.4*(p-0.3)/0.2
	case p < 0.8:
		return 0.3 + 0.4*(p-0.5)/0.3
	default:
		return 0.7 - 0.4*(p-0.8)/0.2
	}
}

// spotlightPath is the roaming loop in logical pixels.
var spotlightPath = [...][2]float64{{0, 0}, {100, 100}, {0, 200}, {-100, 100}, {0, 0}}

// SpotlightOffset returns a spotlight's displacement in logical pixels.
func SpotlightOffset(sp Spotlight, t time.Duration) (float64, float64) {
	pos := phase(t-sp.Delay, spotlightLoop) * float64(len(spotlightPath)-1)
	i := int(pos)
	f := pos - float64(i)
	a, b := spotlightPath[i], spotlightPath[i+1]
	return a[0] + (b[0]-a[0])*f, a[1] + (b[1]-a[1])*f
}

// BarLevel returns a sound bar's height in [0,1]. Bars bounce between a low
// and a high stop, one stroke per Period, alternating direction.
func BarLevel(b SoundBar, t time.Duration) float64 {
	if b.Period <= 0 {
		return 0
	}
	p := phase(t-b.Delay, 2*b.Period) * 2
	if p > 1 {
		p = 2 - p
	}
	return p
}

// ShakeOffset returns the horizontal shake of an errored button.
func ShakeOffset(since time.Duration) int {
	if since < 0 || since >= shakeLength {
		return 0
	}
	// Keyframes at 20/40/60/80%: -,+,-,+
	switch int(phase(since, shakeLength) * 5) {
	case 1, 3:
		return -1
	case 2, 4:
		return 1
	}
	return 0
}
