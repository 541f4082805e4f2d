package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-party/internal/core"
	"github.com/vovakirdan/tui-party/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick a theme and browse party history",
	Long: `Start the interactive menu. Pick a theme to start a party; Esc in
the party returns to the menu. Tab opens the party history.

This is the same flow SSH visitors get from 'party serve'.`,
	Args: cobra.NoArgs,
	Run:  runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) {
	cfg, _ := loadConfig(cmd)
	validate(cfg)

	logger, closeLog := openLogger(cfg)
	defer closeLog()

	store := openStore(cfg)
	player := tui.NewPlayer(cfg, logger)

	width, height := terminalSize()
	runErr := tui.RunSession(tui.SessionOptions{
		Config: cfg,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: cfg.FPS,
			Seed:     cfg.Seed,
		},
		Store:  store,
		Player: player,
		User:   currentUser(),
		Origin: "local",
		Logger: logger,
	})

	tui.ClosePlayer(player)
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		closeLog()
		fatalf("running menu: %v", runErr)
	}
}
