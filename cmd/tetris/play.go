package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a game",
	Long: `Start a single game. Without a mode the --difficulty preset picks one.

Controls:
  ←/→ A/D H/L      - Move
  ↑ W K X          - Rotate clockwise
  Z                - Rotate counter-clockwise
  ↓ S J            - Soft drop
  Space            - Hard drop
  F                - Toggle fast drop
  P                - Pause
  R                - Restart (after game over)
  Esc              - Leave (when paused or over)
  Q/Ctrl+C         - Quit

Difficulty options:
  easy   - Slower start, gentler speed-up
  normal - 1000ms start, 50ms faster per level, 100ms floor
  hard   - Faster start, steeper speed-up
  fixed  - Gravity never speeds up

Examples:
  tetris play
  tetris play tetris_hard
  tetris play --difficulty easy --player ada
  tetris play --seed 42 --no-save
  tetris play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func runPlay(_ *cobra.Command, args []string) error {
	tetrisCfg, modeID, err := loadGameConfig()
	if err != nil {
		return err
	}
	if len(args) == 1 {
		modeID = args[0]
	}

	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q; run 'tetris list' to see available modes", modeID)
	}

	game, err := registry.Create(modeID, tetrisCfg)
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore()
	if err != nil {
		// The game still works without scores.
		fmt.Fprintf(os.Stderr, "Warning: could not open score store: %v\n", err)
		logger.Warn("could not open score store", "error", err)
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{
		Store:  store,
		Player: playerName(),
		Logger: logger,
	}
	return tui.Run(game, opts, runtimeConfig())
}
