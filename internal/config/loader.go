package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override. A double underscore
// separates nested keys: PARTY_TIMING__FLASH_CHANCE sets timing.flash_chance.
const EnvPrefix = "PARTY_"

// Source names where a loaded configuration came from.
const SourceEmbedded = "embedded"

// Load loads the party configuration and returns it with the file it came
// from. Search order: customPath -> ~/.party/configs/party.yaml ->
// ./configs/party.yaml -> embedded default. Keys missing from the file keep
// their default values. PARTY_* variables are applied last, and
// REDUCED_MOTION=1 forces reduced motion on.
func Load(customPath string) (Config, string, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultPartyYAML, &cfg); err != nil {
		cfg = DefaultConfig() // Fallback to hardcoded if embed fails
	}

	k := koanf.New(".")
	source := SourceEmbedded

	switch {
	case customPath != "":
		if _, err := os.Stat(customPath); err != nil {
			return cfg, "", fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := k.Load(file.Provider(customPath), kyaml.Parser()); err != nil {
			return cfg, "", fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		source = customPath
	default:
		for _, p := range searchPaths() {
			if _, err := os.Stat(p); err != nil {
				continue
			}
			try := koanf.New(".")
			if err := try.Load(file.Provider(p), kyaml.Parser()); err != nil {
				continue
			}
			k = try
			source = p
			break
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return cfg, "", fmt.Errorf("config: loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, "", fmt.Errorf("config: unmarshalling: %w", err)
	}

	if v, ok := os.LookupEnv("REDUCED_MOTION"); ok {
		if on, err := strconv.ParseBool(v); err == nil && on {
			cfg.ReducedMotion = true
		}
	}

	return cfg, source, nil
}

// envKey maps PARTY_TIMING__FLASH_CHANCE to timing.flash_chance.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if p := userConfigPath("party.yaml"); p != "" {
		paths = append(paths, p)
	}
	return append(paths, filepath.Join("configs", "party.yaml"))
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".party", "configs", filename)
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: marshalling: %w", err)
	}
	return data, nil
}

// Save writes the configuration to a YAML file, creating parent directories.
func (c Config) Save(path string) error {
	data, err := c.Marshal()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: cannot create directory for %s: %w", path, err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
