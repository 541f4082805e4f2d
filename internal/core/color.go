package core

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is a cell color in "#rrggbb" form.
// The zero value means "terminal default" (transparent for backgrounds).
type Color string

// Fixed colors used by the renderer.
const (
	ColorNone  Color = ""
	ColorBlack Color = "#000000"
	ColorWhite Color = "#ffffff"
	ColorGray  Color = "#888888"
	ColorRed   Color = "#ff0000"
)

// IsNone reports whether c is the transparent/default color.
func (c Color) IsNone() bool {
	return c == ColorNone
}

// Blend mixes c over base with the given opacity (0 = base, 1 = c).
// Invalid hex input falls back to base.
func (c Color) Blend(base Color, opacity float64) Color {
	top, err := colorful.Hex(string(c))
	if err != nil {
		return base
	}
	bottom, err := colorful.Hex(string(base))
	if err != nil {
		bottom = colorful.Color{}
	}
	opacity = ClampF(opacity, 0, 1)
	return Color(bottom.BlendRgb(top, opacity).Clamped().Hex())
}

// Lerp interpolates between a and b in Lab space, t in [0,1].
func Lerp(a, b Color, t float64) Color {
	ca, errA := colorful.Hex(string(a))
	cb, errB := colorful.Hex(string(b))
	if errA != nil || errB != nil {
		return a
	}
	return Color(ca.BlendLab(cb, ClampF(t, 0, 1)).Clamped().Hex())
}

// Shade darkens (factor < 1) or lightens (factor > 1) a color.
func Shade(c Color, factor float64) Color {
	col, err := colorful.Hex(string(c))
	if err != nil {
		return c
	}
	h, s, l := col.Hsl()
	return Color(colorful.Hsl(h, s, ClampF(l*factor, 0, 1)).Clamped().Hex())
}
