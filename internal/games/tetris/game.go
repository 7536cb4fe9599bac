// Package tetris adapts the rules engine to the platform's fixed-step loop:
// it turns input frames into engine actions, runs gravity on a time
// accumulator and draws the playfield into a screen buffer.
package tetris

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// Mode IDs, one per difficulty preset.
const (
	ModeNormal = "tetris"
	ModeEasy   = "tetris_easy"
	ModeHard   = "tetris_hard"
	ModeFixed  = "tetris_fixed"
)

// Game implements registry.Game for the falling-block puzzle.
type Game struct {
	id         string
	difficulty config.DifficultyPreset
	cfg        config.TetrisConfig

	rng    *rand.Rand
	engine *engine.Engine
	state  engine.State

	tick     uint64
	tickRate int
	step     time.Duration // length of one platform step
	elapsed  time.Duration // time since the last gravity tick
	fast     bool          // soft-drop hold: gravity runs at cfg.Speed.SoftDropMs

	screenW int
	screenH int
}

// New creates a game for the given mode ID and difficulty. The preset is
// applied to a copy of cfg.
func New(id string, difficulty config.DifficultyPreset, cfg config.TetrisConfig) *Game {
	cfg.Scoring.LinePoints = append([]int(nil), cfg.Scoring.LinePoints...)
	config.ApplyTetrisPreset(&cfg, difficulty)
	return &Game{
		id:         id,
		difficulty: difficulty,
		cfg:        cfg,
	}
}

func init() {
	modes := []struct {
		id     string
		preset config.DifficultyPreset
	}{
		{ModeNormal, config.DifficultyNormal},
		{ModeEasy, config.DifficultyEasy},
		{ModeHard, config.DifficultyHard},
		{ModeFixed, config.DifficultyFixed},
	}
	for _, m := range modes {
		registry.Register(m.id, m.preset, func(cfg config.TetrisConfig) registry.Game {
			return New(m.id, m.preset, cfg)
		})
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.id
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.difficulty {
	case config.DifficultyEasy:
		return "Tetris (Easy)"
	case config.DifficultyHard:
		return "Tetris (Hard)"
	case config.DifficultyFixed:
		return "Tetris (Fixed Speed)"
	default:
		return "Tetris"
	}
}

// Difficulty returns the preset the game was built with.
func (g *Game) Difficulty() config.DifficultyPreset {
	return g.difficulty
}

// Reset starts a new game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.rng = rand.New(rand.NewSource(seed))
	g.engine = engine.New(g.rng, engine.WithRules(g.cfg.Rules()))
	g.state = g.engine.Start()

	g.tick = 0
	g.tickRate = cfg.TickRate
	g.step = time.Duration(cfg.StepMillis()) * time.Millisecond
	g.elapsed = 0
	g.fast = false
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
}

// Resize updates the screen size used for layout.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
}

// inputActions maps platform actions to engine actions, in the order they
// are applied within one step. Each press is applied once.
var inputActions = []struct {
	in  core.Action
	out engine.Action
}{
	{core.ActionLeft, engine.ActionMoveLeft},
	{core.ActionRight, engine.ActionMoveRight},
	{core.ActionRotate, engine.ActionRotate},
	{core.ActionRotateCCW, engine.ActionRotateCCW},
	{core.ActionSoftDrop, engine.ActionMoveDown},
	{core.ActionHardDrop, engine.ActionHardDrop},
}

// Step advances the game by one platform tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	prev := g.state

	if in.Has(core.ActionRestart) && g.state.IsOver() {
		g.restart()
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) {
		g.state = g.engine.TogglePause(g.state)
	}
	if in.Has(core.ActionFastToggle) && !g.state.IsOver() {
		g.fast = !g.fast
	}

	if !g.state.Playing() {
		return g.result(prev)
	}

	for _, m := range inputActions {
		for range in.Count(m.in) {
			before := g.state
			g.state = g.engine.HandleAction(g.state, m.out)
			if engine.Diff(before, g.state).Locked {
				// A new piece starts a fresh gravity period.
				g.elapsed = 0
			}
			if !g.state.Playing() {
				return g.result(prev)
			}
		}
	}

	g.elapsed += g.step
	for g.state.Playing() {
		interval := g.dropInterval()
		if g.elapsed < interval {
			break
		}
		g.elapsed -= interval
		g.state = g.engine.Tick(g.state)
	}

	return g.result(prev)
}

// restart begins a new game with a seed drawn from the current one, so a
// seeded session stays reproducible across restarts.
func (g *Game) restart() {
	g.Reset(core.RuntimeConfig{
		Seed:     g.rng.Int63(),
		ScreenW:  g.screenW,
		ScreenH:  g.screenH,
		TickRate: g.tickRate,
	})
}

func (g *Game) dropInterval() time.Duration {
	switch {
	case g.fast:
		return g.cfg.SoftDropInterval()
	case g.engine == nil:
		return g.cfg.Rules().DropSpeed(1)
	}
	return g.engine.DropInterval(g.state)
}

func (g *Game) result(prev engine.State) core.StepResult {
	ev := engine.Diff(prev, g.state)
	return core.StepResult{
		State:        g.State(),
		Locked:       ev.Locked,
		LinesCleared: ev.LinesCleared,
		LevelUp:      ev.LevelUp,
		JustEnded:    ev.GameOver,
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score,
		Level:    g.state.Level,
		Lines:    g.state.Lines,
		GameOver: g.state.IsOver(),
		Paused:   g.state.Phase == engine.PhasePaused,
	}
}

// EngineState returns the underlying engine state.
func (g *Game) EngineState() engine.State {
	return g.state
}

// Fast reports whether soft-drop hold is on.
func (g *Game) Fast() bool {
	return g.fast
}

// DropInterval returns the current gravity period.
func (g *Game) DropInterval() time.Duration {
	return g.dropInterval()
}
