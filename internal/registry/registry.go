// Package registry provides a global registry of party themes.
// Themes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-party/internal/core"
)

// Theme describes the look of a party: texts and color palettes.
type Theme struct {
	// ID is the unique identifier used by the CLI (e.g., "birthday").
	ID string

	// Title is a human-readable name for listings.
	Title string

	// Heading is the big line at the top of the display.
	Heading string

	// Subtitle is the pulsing line under the heading.
	Subtitle string

	// Palette colors tiles, lasers, spotlights and confetti.
	Palette []core.Color

	// FlashPalette colors the background flashes. Flashes are drawn
	// translucent, at FlashOpacity over black.
	FlashPalette []core.Color
	FlashOpacity float64

	// TitleCycle is the keyframe list the heading color loops through.
	TitleCycle []core.Color
}

// Valid reports whether the theme has everything the scene needs.
func (t Theme) Valid() error {
	switch {
	case t.ID == "":
		return fmt.Errorf("registry: theme has no id")
	case len(t.Palette) == 0:
		return fmt.Errorf("registry: theme %q has an empty palette", t.ID)
	case len(t.FlashPalette) == 0:
		return fmt.Errorf("registry: theme %q has an empty flash palette", t.ID)
	case len(t.TitleCycle) == 0:
		return fmt.Errorf("registry: theme %q has an empty title cycle", t.ID)
	case t.FlashOpacity < 0 || t.FlashOpacity > 1:
		return fmt.Errorf("registry: theme %q flash opacity %v out of [0,1]", t.ID, t.FlashOpacity)
	}
	return nil
}

// ThemeInfo contains metadata about a registered theme.
type ThemeInfo struct {
	ID    string
	Title string
}

// Factory is a function that creates a theme.
type Factory func() Theme

var (
	factories = make(map[string]Factory)
	titles    = make(map[string]string)
	mu        sync.RWMutex
)

// Register adds a theme factory to the registry.
// Typically called from a theme package's init() function.
// Panics if a theme with the same ID is already registered.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := factories[id]; exists {
		panic(fmt.Sprintf("registry: theme %q already registered", id))
	}

	factories[id] = f
	titles[id] = f().Title
}

// List returns information about all registered themes, sorted by ID.
func List() []ThemeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ThemeInfo, 0, len(factories))
	for id := range factories {
		result = append(result, ThemeInfo{
			ID:    id,
			Title: titles[id],
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create instantiates a theme by its ID.
// Returns an error if the theme ID is not registered.
func Create(id string) (Theme, error) {
	mu.RLock()
	defer mu.RUnlock()

	f, ok := factories[id]
	if !ok {
		return Theme{}, fmt.Errorf("registry: unknown theme %q", id)
	}

	return f(), nil
}

// Exists checks if a theme with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := factories[id]
	return ok
}
