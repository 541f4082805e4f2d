package tui

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-party/internal/core"
)

// plainRenderer renders without any escape sequences.
func plainRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return r
}

func colorRenderer() *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.TrueColor)
	return r
}

func TestRenderScreenPlainMatchesString(t *testing.T) {
	s := core.NewScreen(12, 3)
	s.DrawText(1, 0, "party", core.ColorRed)
	s.SetBG(4, 1, core.ColorWhite)
	s.SetCell(0, 2, core.Cell{Rune: '#', FG: core.ColorGray, Bold: true})

	if got, want := RenderScreen(s, plainRenderer()), s.String(); got != want {
		t.Errorf("RenderScreen() =\n%q\nwant\n%q", got, want)
	}
}

func TestRenderScreenGroupsRuns(t *testing.T) {
	s := core.NewScreen(6, 1)
	for x := 0; x < 3; x++ {
		s.SetFG(x, 0, 'a', core.ColorRed)
	}
	s.Set(3, 0, 'b')
	s.SetBG(4, 0, core.ColorWhite)
	s.SetBG(5, 0, core.ColorWhite)

	out := RenderScreen(s, colorRenderer())

	// Two styled runs, one plain cell in between.
	if n := strings.Count(out, "\x1b[0m"); n != 2 {
		t.Errorf("got %d styled runs, want 2: %q", n, out)
	}
	if !strings.Contains(out, "aaa") {
		t.Errorf("same-colored cells not grouped: %q", out)
	}
}

func TestRenderScreenEmpty(t *testing.T) {
	if got := RenderScreen(core.NewScreen(0, 0), plainRenderer()); got != "" {
		t.Errorf("RenderScreen(empty) = %q", got)
	}
}

func TestRenderScreenNilRenderer(t *testing.T) {
	s := core.NewScreen(3, 1)
	s.DrawText(0, 0, "abc", core.ColorNone)
	if got := RenderScreen(s, nil); got != "abc" {
		t.Errorf("RenderScreen(nil renderer) = %q, want abc", got)
	}
}

func TestStep(t *testing.T) {
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		last time.Time
		now  time.Time
		want time.Duration
	}{
		{"first tick", time.Time{}, t0, 0},
		{"normal", t0, t0.Add(33 * time.Millisecond), 33 * time.Millisecond},
		{"clock went back", t0, t0.Add(-time.Second), 0},
		{"long stall", t0, t0.Add(time.Minute), maxStep},
	}
	for _, tt := range tests {
		if got := step(tt.last, tt.now); got != tt.want {
			t.Errorf("%s: step() = %v, want %v", tt.name, got, tt.want)
		}
	}
}
