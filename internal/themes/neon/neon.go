// Package neon registers a cooler blue/green variant of the disco theme.
package neon

import (
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/registry"
)

// ID is the theme identifier.
const ID = "neon"

func init() {
	registry.Register(ID, New)
}

// New returns the neon theme.
func New() registry.Theme {
	return registry.Theme{
		ID:       ID,
		Title:    "Neon Nights",
		Heading:  "Welcome To The Party!",
		Subtitle: "Turn It Up!",
		Palette: []core.Color{
			"#00e5ff",
			"#2979ff",
			"#76ff03",
			"#d500f9",
			"#1de9b6",
			"#ffffff",
		},
		FlashPalette: []core.Color{"#00e5ff", "#d500f9", "#76ff03"},
		FlashOpacity: 0.25,
		TitleCycle:   []core.Color{"#00e5ff", "#d500f9", "#76ff03", "#2979ff"},
	}
}
