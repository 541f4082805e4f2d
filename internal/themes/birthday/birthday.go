// Package birthday registers the default birthday disco theme.
package birthday

import (
	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/registry"
)

// ID is the theme identifier.
const ID = "birthday"

// Palette is the fixed six-color disco palette.
var Palette = []core.Color{
	"#ff0099",
	"#00ffff",
	"#ffff00",
	"#ff00ff",
	"#00ff00",
	"#9900ff",
}

func init() {
	registry.Register(ID, New)
}

// New returns the birthday theme.
func New() registry.Theme {
	return registry.Theme{
		ID:           ID,
		Title:        "Birthday Disco",
		Heading:      "Happy Birthday Rohit!",
		Subtitle:     "Let's Boogie All Night Long!",
		Palette:      Palette,
		FlashPalette: []core.Color{"#ff0099", "#00ffff", "#ffff00", "#ff00ff", "#00ff00", "#9900ff"},
		FlashOpacity: 0.3,
		TitleCycle:   []core.Color{"#ff0099", "#00ffff", "#ffff00", "#ff00ff"},
	}
}
