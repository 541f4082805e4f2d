// Package config provides YAML-based configuration loading for the party
// display, with PARTY_* environment overrides.
package config

import (
	"fmt"
	"time"
)

// Config is the full party configuration.
type Config struct {
	Theme         string        `yaml:"theme" koanf:"theme"`
	FPS           int           `yaml:"fps" koanf:"fps"`
	Seed          int64         `yaml:"seed" koanf:"seed"` // 0 picks a time-based seed
	ReducedMotion bool          `yaml:"reduced_motion" koanf:"reduced_motion"`
	Layout        LayoutConfig  `yaml:"layout" koanf:"layout"`
	Timing        TimingConfig  `yaml:"timing" koanf:"timing"`
	Audio         AudioConfig   `yaml:"audio" koanf:"audio"`
	Storage       StorageConfig `yaml:"storage" koanf:"storage"`
	Log           LogConfig     `yaml:"log" koanf:"log"`
	Server        ServerConfig  `yaml:"server" koanf:"server"`
}

// LayoutConfig maps terminal columns onto logical pixels.
type LayoutConfig struct {
	BreakpointPx int `yaml:"breakpoint_px" koanf:"breakpoint_px"`
	CellWidthPx  int `yaml:"cell_width_px" koanf:"cell_width_px"`
}

// TimingConfig holds effect timings in milliseconds.
type TimingConfig struct {
	TileFlickerMs      int     `yaml:"tile_flicker_ms" koanf:"tile_flicker_ms"`
	TileRevertMs       int     `yaml:"tile_revert_ms" koanf:"tile_revert_ms"`
	MaxFlickerTiles    int     `yaml:"max_flicker_tiles" koanf:"max_flicker_tiles"`
	FlashIntervalMs    int     `yaml:"flash_interval_ms" koanf:"flash_interval_ms"`
	FlashChance        float64 `yaml:"flash_chance" koanf:"flash_chance"`
	FlashRevertMs      int     `yaml:"flash_revert_ms" koanf:"flash_revert_ms"`
	ConfettiLifetimeMs int     `yaml:"confetti_lifetime_ms" koanf:"confetti_lifetime_ms"`
	ConfettiFallMs     int     `yaml:"confetti_fall_ms" koanf:"confetti_fall_ms"`
	ErrorIndicatorMs   int     `yaml:"error_indicator_ms" koanf:"error_indicator_ms"`
}

// AudioConfig points at the looped music file.
type AudioConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}

// StorageConfig controls the session history database.
type StorageConfig struct {
	Enabled bool   `yaml:"enabled" koanf:"enabled"`
	Path    string `yaml:"path" koanf:"path"`
}

// LogConfig controls the log file.
type LogConfig struct {
	Path  string `yaml:"path" koanf:"path"`
	Level string `yaml:"level" koanf:"level"`
}

// ServerConfig configures `party serve`.
type ServerConfig struct {
	Addr           string `yaml:"addr" koanf:"addr"`
	HostKeyPath    string `yaml:"host_key_path" koanf:"host_key_path"`
	IdleTimeoutSec int    `yaml:"idle_timeout_sec" koanf:"idle_timeout_sec"`
	MaxSessionMin  int    `yaml:"max_session_min" koanf:"max_session_min"`
}

// ms converts a millisecond setting to a duration.
func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

// TileFlicker returns the floor flicker interval.
func (t TimingConfig) TileFlicker() time.Duration { return ms(t.TileFlickerMs) }

// TileRevert returns how long a flickered tile stays lit.
func (t TimingConfig) TileRevert() time.Duration { return ms(t.TileRevertMs) }

// FlashInterval returns the background flash roll interval.
func (t TimingConfig) FlashInterval() time.Duration { return ms(t.FlashIntervalMs) }

// FlashRevert returns how long a flash stays up.
func (t TimingConfig) FlashRevert() time.Duration { return ms(t.FlashRevertMs) }

// ConfettiLifetime returns the particle lifetime.
func (t TimingConfig) ConfettiLifetime() time.Duration { return ms(t.ConfettiLifetimeMs) }

// ConfettiFall returns the particle fall duration.
func (t TimingConfig) ConfettiFall() time.Duration { return ms(t.ConfettiFallMs) }

// ErrorIndicator returns how long the audio error indicator shows.
func (t TimingConfig) ErrorIndicator() time.Duration { return ms(t.ErrorIndicatorMs) }

// IdleTimeout returns the SSH idle timeout; zero disables it.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutSec) * time.Second
}

// MaxSession returns the SSH session cap; zero disables it.
func (s ServerConfig) MaxSession() time.Duration {
	return time.Duration(s.MaxSessionMin) * time.Minute
}

// Validate checks that the configuration contains usable values.
func (c Config) Validate() error {
	if c.Theme == "" {
		return fmt.Errorf("config: theme is required")
	}
	if c.FPS < 1 || c.FPS > 120 {
		return fmt.Errorf("config: fps must be between 1 and 120, got %d", c.FPS)
	}
	if c.Layout.BreakpointPx <= 0 {
		return fmt.Errorf("config: layout.breakpoint_px must be positive")
	}
	if c.Layout.CellWidthPx <= 0 {
		return fmt.Errorf("config: layout.cell_width_px must be positive")
	}

	t := c.Timing
	positive := []struct {
		name string
		v    int
	}{
		{"tile_flicker_ms", t.TileFlickerMs},
		{"tile_revert_ms", t.TileRevertMs},
		{"max_flicker_tiles", t.MaxFlickerTiles},
		{"flash_interval_ms", t.FlashIntervalMs},
		{"flash_revert_ms", t.FlashRevertMs},
		{"confetti_lifetime_ms", t.ConfettiLifetimeMs},
		{"confetti_fall_ms", t.ConfettiFallMs},
		{"error_indicator_ms", t.ErrorIndicatorMs},
	}
	for _, p := range positive {
		if p.v <= 0 {
			return fmt.Errorf("config: timing.%s must be positive, got %d", p.name, p.v)
		}
	}
	if t.FlashChance < 0 || t.FlashChance > 1 {
		return fmt.Errorf("config: timing.flash_chance must be within [0, 1], got %g", t.FlashChance)
	}

	if c.Audio.Enabled && c.Audio.Path == "" {
		return fmt.Errorf("config: audio.path is required when audio is enabled")
	}
	if c.Server.IdleTimeoutSec < 0 || c.Server.MaxSessionMin < 0 {
		return fmt.Errorf("config: server timeouts must be non-negative")
	}
	return nil
}
