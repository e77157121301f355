package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/reflex-arcade/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagMaxSessions int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the arcade SSH server",
	Long: `Start an SSH server so players can connect with any SSH client.

Each connection gets its own menu; all players share one run history
(--db) and the difficulty preset chosen at startup. If --host-key is not
given, a key is generated at ~/.arcade/host_key.

Examples:
  arcade serve
  arcade serve --ssh :2222 --difficulty hard
  arcade serve --host-key ./host_key --idle-timeout 10m --max-sessions 8

Players connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	defaults := tui.DefaultSSHServerConfig()
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", defaults.Address, "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", defaults.IdleTimeout, "Disconnect idle sessions after this long")
	serveCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", defaults.MaxSessions, "Concurrent player limit (0 = unlimited)")
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: flagIdleTimeout,
		MaxSessions: flagMaxSessions,
	}

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving the arcade on %s (Ctrl+C to stop)\n", cfg.Address)
	return server.ListenAndServe(ctx)
}
