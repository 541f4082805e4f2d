package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-party/internal/audio"
	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/party"
	"github.com/vovakirdan/tui-party/internal/registry"
)

// SceneOptions maps the loaded configuration onto scene options.
// A zero seed in the config picks a time-based one.
func SceneOptions(cfg config.Config, theme registry.Theme, player party.Player, logger *log.Logger) party.Options {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	t := cfg.Timing
	return party.Options{
		Theme: theme,
		Timing: party.Timing{
			TileFlicker:      t.TileFlicker(),
			TileRevert:       t.TileRevert(),
			MaxFlickerTiles:  t.MaxFlickerTiles,
			FlashInterval:    t.FlashInterval(),
			FlashChance:      t.FlashChance,
			FlashRevert:      t.FlashRevert(),
			ConfettiLifetime: t.ConfettiLifetime(),
			ConfettiFall:     t.ConfettiFall(),
			ErrorIndicator:   t.ErrorIndicator(),
		},
		CellWidthPx:   cfg.Layout.CellWidthPx,
		BreakpointPx:  cfg.Layout.BreakpointPx,
		ReducedMotion: cfg.ReducedMotion,
		Seed:          seed,
		Player:        player,
		Logger:        logger,
	}
}

// NewPlayer returns the configured music player. With audio disabled it
// returns a silent player, so the music button shows the rejection
// indicator instead of doing nothing.
func NewPlayer(cfg config.Config, logger *log.Logger) party.Player {
	if !cfg.Audio.Enabled {
		return audio.Silent{}
	}
	path, err := config.ExpandHome(cfg.Audio.Path)
	if err != nil {
		logger.Warn("could not resolve audio path", "path", cfg.Audio.Path, "error", err)
		return audio.Silent{}
	}
	return audio.NewPlayer(path, logger)
}

// ClosePlayer releases a player that holds a file or device.
func ClosePlayer(p party.Player) {
	if c, ok := p.(io.Closer); ok {
		//nolint:errcheck // Best-effort close on exit
		c.Close()
	}
}
