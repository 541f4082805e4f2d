package config

import (
	_ "embed"
)

//go:embed defaults/party.yaml
var defaultPartyYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return append([]byte(nil), defaultPartyYAML...)
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() Config {
	return Config{
		Theme: "birthday",
		FPS:   30,
		Layout: LayoutConfig{
			BreakpointPx: 768,
			CellWidthPx:  8,
		},
		Timing: TimingConfig{
			TileFlickerMs:      200,
			TileRevertMs:       500,
			MaxFlickerTiles:    20,
			FlashIntervalMs:    500,
			FlashChance:        0.1,
			FlashRevertMs:      100,
			ConfettiLifetimeMs: 6000,
			ConfettiFallMs:     5000,
			ErrorIndicatorMs:   1000,
		},
		Audio: AudioConfig{
			Enabled: true,
			Path:    "~/.party/party.mp3",
		},
		Storage: StorageConfig{
			Enabled: true,
			Path:    "~/.party/party.db",
		},
		Log: LogConfig{
			Path:  "~/.party/party.log",
			Level: "info",
		},
		Server: ServerConfig{
			Addr:           ":2323",
			HostKeyPath:    "~/.party/ssh_host_ed25519",
			IdleTimeoutSec: 600,
			MaxSessionMin:  60,
		},
	}
}
