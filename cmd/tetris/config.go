package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-tetris/internal/config"
)

var flagDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective game configuration",
	Long: `Print the configuration the game would use as YAML: --config if given,
else ~/.tetris/configs/tetris.yaml, else ./configs/tetris.yaml, else the
built-in defaults. The difficulty preset is not applied.

Examples:
  tetris config
  tetris config --defaults > ~/.tetris/configs/tetris.yaml`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagDefaults, "defaults", false, "Print the built-in defaults instead")
}

func runConfig(_ *cobra.Command, _ []string) error {
	if flagDefaults {
		_, err := os.Stdout.Write(config.DefaultYAML())
		return err
	}

	cfg, _, err := loadGameConfig()
	if err != nil {
		return err
	}
	out, err := cfg.YAML()
	if err != nil {
		return fmt.Errorf("cannot encode config: %w", err)
	}
	_, err = os.Stdout.Write(out)
	return err
}
