package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-party/internal/core"
)

// cellStyle is the part of a cell that affects styling.
type cellStyle struct {
	fg, bg core.Color
	bold   bool
}

func styleOf(c core.Cell) cellStyle {
	return cellStyle{fg: c.FG, bg: c.BG, bold: c.Bold}
}

func (cs cellStyle) plain() bool {
	return cs.fg.IsNone() && cs.bg.IsNone() && !cs.bold
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same style to minimize ANSI escape sequences.
// A nil renderer uses the lipgloss default (the local terminal).
func RenderScreen(s *core.Screen, r *lipgloss.Renderer) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	styles := make(map[cellStyle]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*4 + s.Height())

	var run strings.Builder
	for y := 0; y < s.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			start := styleOf(s.GetCell(x, y))

			run.Reset()
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if styleOf(cell) != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			if start.plain() {
				sb.WriteString(run.String())
				continue
			}
			style, ok := styles[start]
			if !ok {
				style = r.NewStyle()
				if !start.fg.IsNone() {
					style = style.Foreground(lipgloss.Color(start.fg))
				}
				if !start.bg.IsNone() {
					style = style.Background(lipgloss.Color(start.bg))
				}
				if start.bold {
					style = style.Bold(true)
				}
				styles[start] = style
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}
