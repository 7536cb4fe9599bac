package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the menu to pick a mode and view scores",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to move, left/right to change the difficulty mode and
Enter to select. Leaving a paused or finished game returns to the menu.

Controls:
  Up/Down/j/k    - Navigate menu
  Left/Right     - Change mode
  Enter/Space    - Select
  Q              - Quit

Examples:
  tetris menu
  tetris menu --fps 30
  tetris menu --db ./scores.db --difficulty hard`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	tetrisCfg, modeID, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := tuiLogger()
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := openStore()
	if err != nil {
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

		AllowClear: true,
	}
	return tui.RunSession(opts, runtimeConfig(), tetrisCfg, modeID)
}
