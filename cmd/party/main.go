// party is a disco party display for the terminal.
//
// Usage:
//
//	party play               - Start the party display
//	party menu               - Pick a theme interactively, browse history
//	party serve              - Start SSH server so others can join in
//	party themes             - List available themes
//	party history            - Show recent parties
//	party config             - Print the effective configuration
//
// Global flags:
//
//	--config <path> - Use a specific config file
//	--fps <rate>    - Set frame rate (default from config: 30)
//	--seed <value>  - Set RNG seed for reproducible effects
//	--db <path>     - Set history database path (empty disables history)
//	--log <path>    - Set log file path
package main

import (
	"fmt"
	"io"
	"os"
	"os/user"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-party/internal/config"
	"github.com/vovakirdan/tui-party/internal/storage"

	// Import themes to register them
	_ "github.com/vovakirdan/tui-party/internal/themes/birthday"
	_ "github.com/vovakirdan/tui-party/internal/themes/neon"
)

var (
	// Global flags
	flagConfig  string
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "party",
	Short: "Party - a disco party display in your terminal",
	Long: `Party turns your terminal into a disco: a flickering dance floor,
sweeping lasers, spotlights, a spinning disco ball, confetti and music.

Available commands:
  play     - Start the party display
  menu     - Interactive theme picker and party history
  serve    - Start SSH server so friends can join
  themes   - Show all available themes
  history  - Show recent parties
  config   - Print the effective configuration

Examples:
  party play
  party play --theme neon --reduced-motion
  party serve --ssh :2323
  party history --limit 5`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML (default: ~/.party/configs/party.yaml)")
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Frame rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.party/party.db", "Path to history database (empty disables history)")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.party/party.log", "Path to log file (empty disables logging)")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(themesCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(configCmd)
}

// fatalf prints an error and exits.
func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// loadConfig loads the configuration and applies the global flags the user
// actually set, so config file values win over flag defaults.
func loadConfig(cmd *cobra.Command) (config.Config, string) {
	cfg, source, err := config.Load(flagConfig)
	if err != nil {
		fatalf("%v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = flagFPS
	}
	if flags.Changed("seed") {
		cfg.Seed = flagSeed
	}
	if flags.Changed("db") {
		cfg.Storage.Path = flagDBPath
		cfg.Storage.Enabled = flagDBPath != ""
	}
	if flags.Changed("log") {
		cfg.Log.Path = flagLogPath
	}
	return cfg, source
}

// validate exits on an invalid configuration.
func validate(cfg config.Config) {
	if err := cfg.Validate(); err != nil {
		fatalf("%v", err)
	}
}

// openLogger opens the log file. The terminal belongs to the display, so
// nothing is logged to stderr while it runs.
func openLogger(cfg config.Config) (*log.Logger, func()) {
	path, err := config.ExpandHome(cfg.Log.Path)
	if err != nil || path == "" {
		return log.New(io.Discard), func() {}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "party",
	})
	if lvl, err := log.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, func() { f.Close() }
}

// openStore opens the history database. History is optional: on failure
// the display still runs.
func openStore(cfg config.Config) *storage.Store {
	if !cfg.Storage.Enabled || cfg.Storage.Path == "" {
		return nil
	}
	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		return nil
	}
	return store
}

// terminalSize returns the size of the controlling terminal.
func terminalSize() (int, int) {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return width, height
}

// currentUser names the local user for session records.
func currentUser() string {
	if u, err := user.Current(); err == nil {
		return u.Username
	}
	return os.Getenv("USER")
}
