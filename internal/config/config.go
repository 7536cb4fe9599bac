// Package config provides YAML-based configuration loading and difficulty
// presets for the game.
package config

import (
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	engine "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

// TetrisConfig contains the tunable game constants.
type TetrisConfig struct {
	Speed   SpeedConfig   `yaml:"speed"`
	Scoring ScoringConfig `yaml:"scoring"`
}

// SpeedConfig defines the gravity curve. The drop interval at level L is
// max(MinMs, BaseMs - (L-1)*StepMs).
type SpeedConfig struct {
	BaseMs     int `yaml:"base_ms"`
	StepMs     int `yaml:"step_ms"`
	MinMs      int `yaml:"min_ms"`
	SoftDropMs int `yaml:"soft_drop_ms"` // tick period while fast mode is held
}

// ScoringConfig defines points and level progression.
type ScoringConfig struct {
	LinePoints      []int `yaml:"line_points"` // indexed by rows cleared at once
	LinesPerLevel   int   `yaml:"lines_per_level"`
	HardDropPerCell int   `yaml:"hard_drop_per_cell"`
	SoftDropPerCell int   `yaml:"soft_drop_per_cell"`
}

// Validate reports every problem with the configuration at once.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Speed.BaseMs <= 0 {
		errs = append(errs, fmt.Errorf("speed.base_ms must be positive, got %d", c.Speed.BaseMs))
	}
	if c.Speed.StepMs < 0 {
		errs = append(errs, fmt.Errorf("speed.step_ms must not be negative, got %d", c.Speed.StepMs))
	}
	if c.Speed.MinMs <= 0 {
		errs = append(errs, fmt.Errorf("speed.min_ms must be positive, got %d", c.Speed.MinMs))
	}
	if c.Speed.MinMs > c.Speed.BaseMs {
		errs = append(errs, fmt.Errorf("speed.min_ms (%d) exceeds base_ms (%d)", c.Speed.MinMs, c.Speed.BaseMs))
	}
	if c.Speed.SoftDropMs <= 0 {
		errs = append(errs, fmt.Errorf("speed.soft_drop_ms must be positive, got %d", c.Speed.SoftDropMs))
	}
	if len(c.Scoring.LinePoints) < 2 {
		errs = append(errs, errors.New("scoring.line_points needs at least two entries"))
	}
	for i, p := range c.Scoring.LinePoints {
		if p < 0 {
			errs = append(errs, fmt.Errorf("scoring.line_points[%d] must not be negative, got %d", i, p))
		}
	}
	if c.Scoring.LinesPerLevel <= 0 {
		errs = append(errs, fmt.Errorf("scoring.lines_per_level must be positive, got %d", c.Scoring.LinesPerLevel))
	}
	if c.Scoring.HardDropPerCell < 0 || c.Scoring.SoftDropPerCell < 0 {
		errs = append(errs, errors.New("scoring drop bonuses must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: invalid tetris config: %w", errors.Join(errs...))
	}
	return nil
}

// Rules converts the configuration into engine rules.
func (c TetrisConfig) Rules() engine.Rules {
	points := make([]int, len(c.Scoring.LinePoints))
	copy(points, c.Scoring.LinePoints)
	return engine.Rules{
		LinePoints:      points,
		LinesPerLevel:   c.Scoring.LinesPerLevel,
		HardDropPerCell: c.Scoring.HardDropPerCell,
		SoftDropPerCell: c.Scoring.SoftDropPerCell,
		BaseDrop:        ms(c.Speed.BaseMs),
		DropStep:        ms(c.Speed.StepMs),
		MinDrop:         ms(c.Speed.MinMs),
	}
}

// SoftDropInterval returns the tick period used while fast mode is on.
func (c TetrisConfig) SoftDropInterval() time.Duration {
	return ms(c.Speed.SoftDropMs)
}

// YAML renders the configuration as a YAML document.
func (c TetrisConfig) YAML() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: cannot encode tetris config: %w", err)
	}
	return data, nil
}

func ms(n int) time.Duration {
	return time.Duration(n) * time.Millisecond
}
