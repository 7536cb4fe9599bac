package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset is a named adjustment of the speed curve.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // gravity never speeds up
)

// Presets lists the accepted preset names.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParseDifficultyPreset validates a preset name. An empty name means normal.
func ParseDifficultyPreset(name string) (DifficultyPreset, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", name)
}

// ApplyTetrisPreset adjusts the speed curve of cfg for a preset. Scoring is
// never changed. Gravity stays at least 1ms.
func ApplyTetrisPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Speed.BaseMs = cfg.Speed.BaseMs * 3 / 2
		cfg.Speed.StepMs = cfg.Speed.StepMs * 3 / 4
	case DifficultyHard:
		cfg.Speed.BaseMs = cfg.Speed.BaseMs * 7 / 10
		cfg.Speed.StepMs = cfg.Speed.StepMs * 3 / 2
	case DifficultyFixed:
		cfg.Speed.StepMs = 0
	}
	cfg.Speed.BaseMs = max(cfg.Speed.BaseMs, 1)
	if cfg.Speed.MinMs > cfg.Speed.BaseMs {
		cfg.Speed.MinMs = cfg.Speed.BaseMs
	}
	cfg.Speed.MinMs = max(cfg.Speed.MinMs, 1)
}
