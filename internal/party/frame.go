package party

import (
	"github.com/vovakirdan/tui-party/internal/core"
)

// Button labels.
const (
	LabelStart   = "Start The Party!"
	LabelStarted = "Party Started!"
	LabelPlay    = "Play Music"
	LabelPause   = "Pause Music"
)

// Button identifies one of the two controls.
type Button int

const (
	ButtonStart Button = iota
	ButtonMusic
)

// String returns the button name.
func (b Button) String() string {
	if b == ButtonStart {
		return "start"
	}
	return "music"
}

const (
	buttonWidth = len(LabelStart) + 4
	barRows     = 3
	minFloorH   = 3
)

// Frame is where each part of the display sits for a given terminal size.
// Rows set to -1 and empty rects are not drawn.
type Frame struct {
	Width, Height int
	TitleRow      int
	SubtitleRow   int
	String        core.Rect // Disco ball string
	Ball          core.Rect
	Start         core.Rect
	Music         core.Rect
	Bars          core.Rect
	Floor         core.Rect
}

// ComputeFrame lays the display out for a w x h terminal. Narrow viewports
// stack the buttons; wide ones put them side by side.
func ComputeFrame(w, h int, b Bucket, cellWidthPx int) Frame {
	f := Frame{Width: w, Height: h, TitleRow: -1, SubtitleRow: -1}
	if w <= 0 || h <= 0 {
		return f
	}
	if cellWidthPx <= 0 {
		cellWidthPx = DefaultCellWidthPx
	}

	floorH := max(minFloorH, h*30/100)
	if floorH >= h {
		floorH = h / 2
	}
	f.Floor = core.NewRect(0, h-floorH, w, floorH)

	barsTop := max(f.Floor.Y-barRows, 0)
	f.Bars = core.NewRect(0, barsTop, w, f.Floor.Y-barsTop)

	buttonRows := 1
	if b == Narrow {
		buttonRows = 3
	}

	// Title, gap, subtitle, gap, string, ball, gap, buttons.
	fixed := 5 + 1 + buttonRows
	avail := barsTop

	// Ball is 30vw clamped to 100..200px wide; cells are about twice as tall as wide.
	ballCols := core.Clamp(w*cellWidthPx*30/100, 100, 200) / cellWidthPx
	ballRows := core.Clamp(avail-fixed, 0, max(ballCols/2, 2))
	if ballRows < 2 {
		ballRows = 0
	}

	content := fixed + ballRows
	if ballRows == 0 {
		content-- // no string without a ball
	}
	y := max((avail-content)/2, 0)

	f.TitleRow = y
	y += 2
	f.SubtitleRow = y
	y += 2

	if ballRows > 0 {
		ballW := min(ballCols, w)
		f.String = core.NewRect(w/2, y, 1, 1)
		y++
		f.Ball = core.NewRect((w-ballW)/2, y, ballW, ballRows)
		y += ballRows
	}
	y++

	bw := min(buttonWidth, w)
	if b == Narrow {
		x := (w - bw) / 2
		f.Start = core.NewRect(x, y, bw, 1)
		f.Music = core.NewRect(x, y+2, bw, 1)
	} else {
		total := bw*2 + 2
		x := max((w-total)/2, 0)
		f.Start = core.NewRect(x, y, bw, 1)
		f.Music = core.NewRect(x+bw+2, y, bw, 1)
	}

	return f
}

// ButtonAt returns the button under a cell, if any.
func (f Frame) ButtonAt(x, y int) (Button, bool) {
	switch {
	case f.Start.Contains(x, y):
		return ButtonStart, true
	case f.Music.Contains(x, y):
		return ButtonMusic, true
	}
	return 0, false
}
