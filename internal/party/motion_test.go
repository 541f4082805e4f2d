package party

import (
	"math"
	"testing"
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
)

func TestPhaseWraps(t *testing.T) {
	tests := []struct {
		t, period time.Duration
		want      float64
	}{
		{0, time.Second, 0},
		{500 * time.Millisecond, time.Second, 0.5},
		{1500 * time.Millisecond, time.Second, 0.5},
		{-250 * time.Millisecond, time.Second, 0.75},
		{time.Second, 0, 0},
	}
	for _, tt := range tests {
		if got := phase(tt.t, tt.period); got != tt.want {
			t.Errorf("phase(%v, %v) = %f, want %f", tt.t, tt.period, got, tt.want)
		}
	}
}

func TestTitleColor(t *testing.T) {
	cycle := []core.Color{"#ff0099", "#00ffff", "#ffff00", "#ff00ff"}

	if got := TitleColor(nil, time.Second); got != core.ColorWhite {
		t.Errorf("empty cycle = %q, want white", got)
	}
	if got := TitleColor(cycle[:1], time.Second); got != cycle[0] {
		t.Errorf("single color cycle = %q", got)
	}

	mid := TitleColor(cycle, 625*time.Millisecond) // halfway between first and second
	if mid == cycle[0] || mid == cycle[1] {
		t.Errorf("halfway color %q equals a keyframe", mid)
	}
}

func TestPulse(t *testing.T) {
	if Pulse(0, messagePulse) {
		t.Error("pulse should start small")
	}
	if !Pulse(time.Second, messagePulse) {
		t.Error("pulse should be big at half period")
	}
	if Pulse(1900*time.Millisecond, messagePulse) {
		t.Error("pulse should be small near period end")
	}
}

func TestLaserMotion(t *testing.T) {
	l := Laser{Delay: time.Second}

	if got := LaserAngle(l, time.Second); got != 0 {
		t.Errorf("angle at delay = %f, want 0", got)
	}
	if got := LaserAngle(l, 3*time.Second); math.Abs(got-math.Pi/2) > 1e-9 {
		t.Errorf("angle a quarter sweep in = %f, want pi/2", got)
	}
	if got := LaserOpacity(l, time.Second); math.Abs(got-0.3) > 1e-9 {
		t.Errorf("opacity at start = %f, want 0.3", got)
	}
	for ms := 0; ms < 8000; ms += 100 {
		op := LaserOpacity(l, time.Second+time.Duration(ms)*time.Millisecond)
		if op < 0.3-1e-9 || op > 0.7+1e-9 {
			t.Fatalf("opacity %f out of range at %dms", op, ms)
		}
	}
}

func TestSpotlightOffset(t *testing.T) {
	sp := Spotlight{Delay: 500 * time.Millisecond}

	tests := []struct {
		at     time.Duration
		dx, dy float64
	}{
		{500 * time.Millisecond, 0, 0},
		{1750 * time.Millisecond, 100, 100},
		{3000 * time.Millisecond, 0, 200},
		{4250 * time.Millisecond, -100, 100},
	}
	for _, tt := range tests {
		dx, dy := SpotlightOffset(sp, tt.at)
		if math.Abs(dx-tt.dx) > 1e-6 || math.Abs(dy-tt.dy) > 1e-6 {
			t.Errorf("offset at %v = (%f, %f), want (%f, %f)", tt.at, dx, dy, tt.dx, tt.dy)
		}
	}
}

func TestBarLevel(t *testing.T) {
	b := SoundBar{Delay: 100 * time.Millisecond, Period: 400 * time.Millisecond}

	if got := BarLevel(b, 100*time.Millisecond); got != 0 {
		t.Errorf("level at delay = %f, want 0", got)
	}
	if got := BarLevel(b, 500*time.Millisecond); math.Abs(got-1) > 1e-9 {
		t.Errorf("level after one stroke = %f, want 1", got)
	}
	if got := BarLevel(b, 900*time.Millisecond); math.Abs(got) > 1e-9 {
		t.Errorf("level after two strokes = %f, want 0", got)
	}
	if got := BarLevel(SoundBar{}, time.Second); got != 0 {
		t.Errorf("zero period level = %f", got)
	}
}

func TestShakeOffset(t *testing.T) {
	if ShakeOffset(0) != 0 {
		t.Error("no shake at start")
	}
	if ShakeOffset(150*time.Millisecond) != -1 {
		t.Error("expected left shake in the second fifth")
	}
	if ShakeOffset(250*time.Millisecond) != 1 {
		t.Error("expected right shake in the third fifth")
	}
	if ShakeOffset(time.Second) != 0 || ShakeOffset(-time.Second) != 0 {
		t.Error("no shake outside the animation")
	}
}
