package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-party/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the party SSH server",
	Long: `Start an SSH server that lets others connect and join the party.

Each SSH connection gets its own session with a theme picker and its own
party display. Music cannot travel over SSH: the music button shows its
error indicator instead. Sessions are recorded in the server's history.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key_path from the config
    (default ~/.party/ssh_host_ed25519), generated on first start

Examples:
  party serve                           # Listen on :2323
  party serve --ssh :2222               # Listen on port 2222
  party serve --host-key ./my_host_key  # Use specific host key
  party serve --idle-timeout 5          # Drop idle visitors after 5 minutes

Visitors connect with:
  ssh localhost -p 2323`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from config :2323)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if missing)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes before disconnecting (default from config)")
}

func runServe(cmd *cobra.Command, _ []string) {
	cfg, source := loadConfig(cmd)
	if flagSSHAddr != "" {
		cfg.Server.Addr = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.Server.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		cfg.Server.IdleTimeoutSec = flagIdleTimeout * 60
	}
	validate(cfg)

	server, err := tui.NewSSHServer(tui.ServerConfigFrom(cfg))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting party SSH server on %s (config: %s)\n", server.Addr(), source)
	fmt.Printf("Connect with: ssh localhost -p %s\n", port(server.Addr()))
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}

// port returns the port part of a listen address.
func port(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
