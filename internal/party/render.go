package party

import (
	"math"
	"time"

	"github.com/vovakirdan/tui-party/internal/core"
)

// Fixed render colors.
const (
	floorColor    core.Color = "#141414"
	floorLine     core.Color = "#2a2a2a"
	stringColor   core.Color = "#cccccc"
	disabledBG    core.Color = "#555555"
	disabledFG    core.Color = "#aaaaaa"
	errorBG       core.Color = "#ff3333"
	spotlightSize            = 150 // Spotlight radius in logical pixels
)

// barRunes are the eighth-block glyphs for sound bar tops.
var barRunes = []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Render draws the scene into scr, resizing it to the terminal size first.
func (s *Scene) Render(scr *core.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if scr == nil {
		return
	}
	if scr.Width() != s.view.Cols || scr.Height() != s.view.Rows {
		scr.Resize(s.view.Cols, s.view.Rows)
	}
	scr.Clear()
	scr.FillBG(s.backdrop.Color)

	f := s.frame()
	now := s.sched.Now()
	still := s.opts.ReducedMotion

	s.drawSpotlights(scr, now, still)
	s.drawFloor(scr, f)
	s.drawLasers(scr, f, now, still)
	s.drawBars(scr, f, now, still)
	s.drawText(scr, f, now, still)
	s.drawBall(scr, f, now, still)
	s.drawButtons(scr, f, now, still)
	if !still {
		s.drawConfetti(scr, now)
	}
}

func (s *Scene) drawSpotlights(scr *core.Screen, now time.Duration, still bool) {
	w, h := scr.Width(), scr.Height()
	cw := float64(s.view.CellWidthPx)
	rx := spotlightSize / cw
	ry := rx / 2
	if rx < 1 || ry < 1 {
		return
	}

	for _, sp := range s.rig.Spotlights {
		cx := sp.X * float64(w)
		cy := sp.Y * float64(h)
		if !still {
			dx, dy := SpotlightOffset(sp, now)
			cx += dx / cw
			cy += dy / (cw * 2)
		}
		for y := int(cy - ry); y <= int(cy+ry); y++ {
			for x := int(cx - rx); x <= int(cx+rx); x++ {
				if x < 0 || y < 0 || x >= w || y >= h {
					continue
				}
				nx := (float64(x) - cx) / rx
				ny := (float64(y) - cy) / ry
				d := nx*nx + ny*ny
				if d >= 1 {
					continue
				}
				cell := scr.GetCell(x, y)
				scr.SetBG(x, y, sp.Color.Blend(cell.BG, 0.3*(1-d)))
			}
		}
	}
}

func (s *Scene) drawFloor(scr *core.Screen, f Frame) {
	r := f.Floor
	if r.Empty() || s.floor.Rows == 0 || s.floor.Cols == 0 {
		return
	}
	for y := r.Y; y < r.Bottom(); y++ {
		row := (y - r.Y) * s.floor.Rows / r.H
		for x := r.X; x < r.Right(); x++ {
			col := (x - r.X) * s.floor.Cols / r.W
			tile := s.floor.Tiles[row*s.floor.Cols+col]
			bg := floorColor
			if !tile.Color.IsNone() {
				bg = tile.Color.Blend(floorColor, 0.8)
			}
			ch := ' '
			// Grid lines on tile boundaries.
			if col != (x-r.X+1)*s.floor.Cols/r.W && x+1 < r.Right() {
				ch = '│'
			}
			scr.SetCell(x, y, core.Cell{Rune: ch, FG: floorLine, BG: bg})
		}
	}
}

// ballCenter returns the beam origin: the middle of the disco ball, or the
// top center when the ball is hidden.
func ballCenter(f Frame) (int, int) {
	if f.Ball.Empty() {
		return f.Width / 2, 0
	}
	return f.Ball.Center()
}

func (s *Scene) drawLasers(scr *core.Screen, f Frame, now time.Duration, still bool) {
	ox, oy := ballCenter(f)
	limit := f.Floor.Y
	if f.Floor.Empty() {
		limit = scr.Height()
	}
	length := float64(max(scr.Width(), scr.Height()*2))

	for _, l := range s.rig.Lasers {
		angle, opacity := 0.0, 0.3
		if !still {
			angle = LaserAngle(l, now)
			opacity = LaserOpacity(l, now)
		}
		dx, dy := math.Cos(angle), math.Sin(angle)/2
		glyph := beamRune(angle)
		for step := 1.0; step < length; step++ {
			x := ox + int(math.Round(dx*step))
			y := oy + int(math.Round(dy*step))
			if x < 0 || x >= scr.Width() || y < 0 || y >= limit {
				break
			}
			cell := scr.GetCell(x, y)
			cell.Rune = glyph
			cell.FG = l.Color.Blend(cell.BG, opacity+0.3)
			scr.SetCell(x, y, cell)
		}
	}
}

// beamRune picks a line glyph for a beam heading.
func beamRune(angle float64) rune {
	deg := math.Mod(angle*180/math.Pi, 180)
	switch {
	case deg < 22.5 || deg >= 157.5:
		return '─'
	case deg < 67.5:
		return '╲'
	case deg < 112.5:
		return '│'
	default:
		return '╱'
	}
}

func (s *Scene) drawBars(scr *core.Screen, f Frame, now time.Duration, still bool) {
	r := f.Bars
	n := len(s.bars)
	if r.Empty() || n == 0 {
		return
	}

	levels := s.audio.Levels(n)
	slot := 3
	x0 := r.X + (r.W-n*slot)/2
	steps := r.H * 8

	for i, b := range s.bars {
		level := 0.5
		switch {
		case still:
		case len(levels) == n:
			level = levels[i]
		default:
			level = BarLevel(b, now)
		}
		// Bars never collapse below a tenth of their height.
		height := max(int(math.Round(core.ClampF(level, 0.1, 1)*float64(steps))), 1)
		color := s.barColor(i, n)
		x := x0 + i*slot
		for row := 0; row < r.H; row++ {
			y := r.Bottom() - 1 - row
			fill := core.Clamp(height-row*8, 0, 8)
			if fill == 0 {
				break
			}
			scr.SetFG(x, y, barRunes[fill], color)
			scr.SetFG(x+1, y, barRunes[fill], color)
		}
	}
}

func (s *Scene) barColor(i, n int) core.Color {
	p := s.opts.Theme.Palette
	switch {
	case len(p) == 0:
		return core.ColorWhite
	case len(p) == 1 || n < 2:
		return p[0]
	}
	return core.Lerp(p[0], p[1], float64(i)/float64(n-1))
}

func (s *Scene) drawText(scr *core.Screen, f Frame, now time.Duration, still bool) {
	th := s.opts.Theme
	if f.TitleRow >= 0 {
		color := core.ColorWhite
		if len(th.TitleCycle) > 0 {
			color = th.TitleCycle[0]
		}
		if !still {
			color = TitleColor(th.TitleCycle, now)
		}
		s.boldCentered(scr, f.TitleRow, th.Heading, color)
	}

	if f.SubtitleRow >= 0 {
		period := messagePulse
		if s.partyStarted {
			period = partyPulse
		}
		if !still && Pulse(now-s.partyAt, period) {
			s.boldCentered(scr, f.SubtitleRow, th.Subtitle, core.ColorWhite)
		} else {
			scr.DrawTextCentered(f.SubtitleRow, th.Subtitle, core.Shade(core.ColorWhite, 0.85))
		}
	}
}

func (s *Scene) boldCentered(scr *core.Screen, y int, text string, fg core.Color) {
	x := (scr.Width() - len([]rune(text))) / 2
	for i, r := range []rune(text) {
		cell := scr.GetCell(x+i, y)
		scr.SetCell(x+i, y, core.Cell{Rune: r, FG: fg, BG: cell.BG, Bold: true})
	}
}

func (s *Scene) drawBall(scr *core.Screen, f Frame, now time.Duration, still bool) {
	b := f.Ball
	if b.Empty() {
		return
	}

	swing, spin := 0, 0
	if !still {
		swing = SwingOffset(now, 2)
		spin = SpinShift(now, b.W)
	}

	scr.SetFG(f.String.X+swing/2, f.String.Y, '│', stringColor)

	cx := float64(b.X) + float64(b.W-1)/2 + float64(swing)
	cy := float64(b.Y) + float64(b.H-1)/2
	rx, ry := float64(b.W)/2, float64(b.H)/2
	for y := b.Y; y < b.Bottom(); y++ {
		for x := b.X - 2; x < b.Right()+2; x++ {
			nx := (float64(x) - cx) / rx
			ny := (float64(y) - cy) / ry
			d := nx*nx + ny*ny
			if d > 1 {
				continue
			}
			// Mirror facets: a checkerboard that slides with the spin,
			// lit toward the upper left.
			facet := ((x-b.X+spin)/2 + (y - b.Y)) % 2
			base := core.Color("#d8d8d8")
			if facet == 0 {
				base = "#9a9a9a"
			}
			light := 1.15 - 0.45*math.Sqrt(((nx+0.4)*(nx+0.4)+(ny+0.4)*(ny+0.4))/2)
			scr.SetCell(x, y, core.Cell{Rune: ' ', BG: core.Shade(base, light)})
		}
	}
}

func (s *Scene) drawButtons(scr *core.Screen, f Frame, now time.Duration, still bool) {
	p := s.opts.Theme.Palette
	from, to := core.ColorWhite, core.ColorWhite
	if len(p) >= 2 {
		from, to = p[0], p[1]
	}

	start := f.Start
	if s.partyStarted {
		s.drawButton(scr, start, LabelStarted, disabledFG, func(float64) core.Color { return disabledBG }, false)
	} else {
		s.drawButton(scr, start, LabelStart, core.ColorBlack, func(t float64) core.Color {
			return core.Lerp(from, to, t)
		}, s.focus == ButtonStart)
	}

	music := f.Music
	label := LabelPlay
	bg := func(t float64) core.Color { return core.Lerp(to, from, t) }
	if s.audio.Playing() {
		label = LabelPause
		bg = func(t float64) core.Color { return core.Lerp(from, to, 1-t/2) }
	}
	if s.audio.ErrorVisible() {
		bg = func(float64) core.Color { return errorBG }
		if !still {
			music.X += ShakeOffset(now - s.audioErrAt)
		}
	}
	s.drawButton(scr, music, label, core.ColorBlack, bg, s.focus == ButtonMusic)
}

// drawButton paints a one-row button with a horizontal gradient and a
// centered label. Focused buttons get arrow markers at both ends.
func (s *Scene) drawButton(scr *core.Screen, r core.Rect, label string, fg core.Color, bg func(float64) core.Color, focused bool) {
	if r.Empty() {
		return
	}
	runes := []rune(label)
	lx := r.X + (r.W-len(runes))/2
	for x := r.X; x < r.Right(); x++ {
		t := 0.0
		if r.W > 1 {
			t = float64(x-r.X) / float64(r.W-1)
		}
		cell := core.Cell{Rune: ' ', FG: fg, BG: bg(t), Bold: true}
		if i := x - lx; i >= 0 && i < len(runes) {
			cell.Rune = runes[i]
		}
		if focused && x == r.X {
			cell.Rune = '▶'
		}
		if focused && x == r.Right()-1 {
			cell.Rune = '◀'
		}
		scr.SetCell(x, r.Y, cell)
	}
}

func (s *Scene) drawConfetti(scr *core.Screen, now time.Duration) {
	w, h := scr.Width(), scr.Height()
	for _, p := range s.confetti.Particles {
		prog, ok := FallProgress(p, now, s.opts.Timing.ConfettiFall)
		if !ok {
			continue
		}
		x := int(p.X * float64(w))
		y := int(prog * float64(h))
		glyph := '■'
		if p.ID%2 == 0 {
			glyph = '▪'
		}
		scr.SetFG(x, y, glyph, p.Color)
	}
}
