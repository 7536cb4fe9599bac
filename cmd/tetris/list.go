package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the difficulty modes",
	Long:  `Shows every registered mode with its starting and fastest drop speed.`,
	RunE:  runList,
}

// fastestLevel is far past the point where every preset reaches its floor.
const fastestLevel = 1000

func runList(_ *cobra.Command, _ []string) error {
	cfg, _, err := loadGameConfig()
	if err != nil {
		return err
	}

	modes := registry.List()
	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return nil
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		maxIDLen = max(maxIDLen, len(m.ID))
	}

	fmt.Printf("  %-*s  %-10s  %-8s  %-8s  %s\n", maxIDLen, "ID", "Difficulty", "Level 1", "Fastest", "Title")
	fmt.Printf("  %-*s  %-10s  %-8s  %-8s  %s\n", maxIDLen, "--", "----------", "-------", "-------", "-----")

	for _, m := range modes {
		c := cfg
		config.ApplyTetrisPreset(&c, m.Difficulty)
		rules := c.Rules()
		fmt.Printf("  %-*s  %-10s  %-8s  %-8s  %s\n", maxIDLen, m.ID, m.Difficulty,
			rules.DropSpeed(1), rules.DropSpeed(fastestLevel), m.Title)
	}

	fmt.Println()
	fmt.Println("Run 'tetris play <id>' to play a mode.")
	return nil
}
