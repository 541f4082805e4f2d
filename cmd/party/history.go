package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-party/internal/platform/tui"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
	flagInteractive  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent parties",
	Long: `Display recently recorded party sessions, newest first, followed by
totals across every session.

Examples:
  party history
  party history --limit 5
  party history -i        # Browse interactively
  party history --clear   # Forget every session`,
	Args: cobra.NoArgs,
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 20, "Number of sessions to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete all recorded sessions")
	historyCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse history in a table view")
}

func runHistory(cmd *cobra.Command, _ []string) {
	cfg, _ := loadConfig(cmd)
	if !cfg.Storage.Enabled || cfg.Storage.Path == "" {
		fmt.Println("History is disabled (storage.enabled is false).")
		return
	}

	store := openStore(cfg)
	if store == nil {
		os.Exit(1)
	}
	defer store.Close()

	if flagHistoryClear {
		if err := store.ClearSessions(); err != nil {
			store.Close()
			fatalf("%v", err)
		}
		fmt.Println("Party history cleared.")
		return
	}

	if flagInteractive {
		width, height := terminalSize()
		if err := tui.RunHistory(store, width, height); err != nil {
			store.Close()
			fatalf("running history: %v", err)
		}
		return
	}

	sessions, err := store.RecentSessions(flagHistoryLimit)
	if err != nil {
		store.Close()
		fatalf("%v", err)
	}

	fmt.Println("Party History")
	fmt.Println()

	if len(sessions) == 0 {
		fmt.Println("No parties recorded yet.")
		fmt.Println()
		fmt.Println("Run 'party play' to start the first one!")
		return
	}

	fmt.Printf("  %-16s  %-12s  %-10s  %-8s  %-5s  %s\n", "When", "User", "Theme", "Length", "Party", "Music")
	fmt.Printf("  %-16s  %-12s  %-10s  %-8s  %-5s  %s\n", "----", "----", "-----", "------", "-----", "-----")

	for _, s := range sessions {
		row := tui.SessionRow(s)
		fmt.Printf("  %-16s  %-12s  %-10s  %-8s  %-5s  %s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}

	totals, err := store.Stats()
	if err != nil {
		return
	}
	fmt.Println()
	fmt.Println(tui.FormatTotals(totals))
}
