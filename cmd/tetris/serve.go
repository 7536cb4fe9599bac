package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Tetris SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own session with the menu. The SSH user name is
the player name, and all users share the same leaderboard. Use --redis to
share one leaderboard between several servers.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tetris/host_key

Examples:
  tetris serve                           # Listen on :23234 with auto-generated key
  tetris serve --ssh :2222               # Listen on port 2222
  tetris serve --host-key ./my_host_key  # Use specific host key
  tetris serve --redis redis://cache:6379

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, _ []string) error {
	tetrisCfg, modeID, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}

	store, err := openStore()
	if err != nil {
		return fmt.Errorf("cannot open score store: %w", err)
	}
	defer store.Close()

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	cfg.TickRate = flagFPS
	cfg.ModeID = modeID

	server, err := tui.NewSSHServer(cfg, tetrisCfg, store, logger)
	if err != nil {
		return err
	}

	logger.Info("connect with ssh", "address", server.Addr(), "mode", modeID)
	return server.ListenAndServe()
}
