package config

import (
	_ "embed"
)

//go:embed defaults/tetris.yaml
var defaultTetrisYAML []byte

// DefaultTetrisConfig returns the built-in constants. It matches the embedded
// defaults/tetris.yaml.
func DefaultTetrisConfig() TetrisConfig {
	return TetrisConfig{
		Speed: SpeedConfig{
			BaseMs:     1000,
			StepMs:     50,
			MinMs:      100,
			SoftDropMs: 50,
		},
		Scoring: ScoringConfig{
			LinePoints:      []int{0, 100, 300, 500, 800},
			LinesPerLevel:   10,
			HardDropPerCell: 2,
			SoftDropPerCell: 1,
		},
	}
}

// DefaultYAML returns the embedded default configuration document.
func DefaultYAML() []byte {
	return defaultTetrisYAML
}
