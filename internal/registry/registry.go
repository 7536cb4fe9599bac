// Package registry maps game mode IDs to factories. Modes register
// themselves in init() functions, so the CLI can list and create them
// without knowing the game package's internals.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
)

// Game is what the platform drives. Implementations hold pure game logic;
// the platform owns input mapping, timing and terminal output.
type Game interface {
	// ID returns the mode identifier (e.g., "tetris", "tetris_hard").
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset starts a new game. Called once at start and again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances the game by one fixed platform tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws the current state into dst.
	Render(dst *core.Screen)

	// State returns the score summary and the game-over/paused flags.
	State() core.GameState
}

// ModeInfo describes a registered mode.
type ModeInfo struct {
	ID         string
	Title      string
	Difficulty config.DifficultyPreset
}

// Factory builds a game from the loaded configuration. The factory applies
// its own difficulty preset on top of cfg.
type Factory func(cfg config.TetrisConfig) Game

type entry struct {
	factory    Factory
	title      string
	difficulty config.DifficultyPreset
}

var (
	modes = make(map[string]entry)
	mu    sync.RWMutex
)

// Register adds a mode. Panics if the ID is already taken.
func Register(id string, difficulty config.DifficultyPreset, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[id]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", id))
	}

	// Title comes from a throwaway instance
	title := f(config.DefaultTetrisConfig()).Title()
	modes[id] = entry{factory: f, title: title, difficulty: difficulty}
}

// List returns every registered mode, sorted by ID.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]ModeInfo, 0, len(modes))
	for id, e := range modes {
		result = append(result, ModeInfo{
			ID:         id,
			Title:      e.title,
			Difficulty: e.difficulty,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Create builds the mode with the given ID.
func Create(id string, cfg config.TetrisConfig) (Game, error) {
	mu.RLock()
	defer mu.RUnlock()

	e, ok := modes[id]
	if !ok {
		return nil, fmt.Errorf("registry: unknown mode %q", id)
	}

	return e.factory(cfg), nil
}

// ForDifficulty returns the ID of the mode registered for preset.
func ForDifficulty(preset config.DifficultyPreset) (string, error) {
	mu.RLock()
	defer mu.RUnlock()

	for id, e := range modes {
		if e.difficulty == preset {
			return id, nil
		}
	}
	return "", fmt.Errorf("registry: no mode for difficulty %q", preset)
}

// Exists reports whether a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
