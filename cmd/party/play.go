package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/platform/tui"
	"github.com/vovakirdan/tui-party/internal/registry"
)

var (
	flagTheme         string
	flagAudio         string
	flagMute          bool
	flagReducedMotion bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Start the party display",
	Long: `Start the disco party display in this terminal.

Controls:
  S          - Start the party (confetti!)
  M/Space    - Play or pause the music
  Tab/Arrows - Move button focus
  Enter      - Press the focused button
  Mouse      - Click a button
  ?          - Show all keys
  Q/Ctrl+C   - Quit

Reduced motion (--reduced-motion, or REDUCED_MOTION=1) keeps the display
still: no flicker, sweeps, pulses or confetti.

Examples:
  party play
  party play --theme neon
  party play --audio ~/Music/boogie.mp3
  party play --reduced-motion
  party play --config ./party.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagTheme, "theme", "", "Theme to use (see 'party themes')")
	playCmd.Flags().StringVar(&flagAudio, "audio", "", "Music file to loop (mp3, wav or flac)")
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable music playback")
	playCmd.Flags().BoolVar(&flagReducedMotion, "reduced-motion", false, "Keep the display still")
}

func runPlay(cmd *cobra.Command, _ []string) {
	cfg, _ := loadConfig(cmd)
	if flagTheme != "" {
		cfg.Theme = flagTheme
	}
	if flagAudio != "" {
		cfg.Audio.Path = flagAudio
		cfg.Audio.Enabled = true
	}
	if flagMute {
		cfg.Audio.Enabled = false
	}
	if flagReducedMotion {
		cfg.ReducedMotion = true
	}
	validate(cfg)

	if !registry.Exists(cfg.Theme) {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", cfg.Theme)
		fmt.Fprintln(os.Stderr, "Run 'party themes' to see available themes.")
		os.Exit(1)
	}
	theme, err := registry.Create(cfg.Theme)
	if err != nil {
		fatalf("creating theme: %v", err)
	}

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	store := openStore(cfg)
	player := tui.NewPlayer(cfg, logger)

	width, height := terminalSize()
	runErr := tui.Run(tui.ModelOptions{
		Scene: tui.SceneOptions(cfg, theme, player, logger),
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.FPS,
			Seed:     cfg.Seed,
		},
		Store:  store,
		User:   currentUser(),
		Origin: "local",
		Logger: logger,
	})

	// Release audio and storage before potential exit
	tui.ClosePlayer(player)
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fatalf("running party: %v", runErr)
	}
}
