package core

import "time"

// Action is a discrete player command.
type Action uint8

const (
	ActionMoveLeft Action = iota + 1
	ActionMoveRight
	ActionMoveDown
	ActionRotate
	ActionRotateCCW
	ActionHardDrop
)

func (a Action) String() string {
	switch a {
	case ActionMoveLeft:
		return "move-left"
	case ActionMoveRight:
		return "move-right"
	case ActionMoveDown:
		return "move-down"
	case ActionRotate:
		return "rotate"
	case ActionRotateCCW:
		return "rotate-ccw"
	case ActionHardDrop:
		return "hard-drop"
	default:
		return "none"
	}
}

// Engine applies the game rules. It carries only the rule constants and the
// random source; all game data lives in State.
type Engine struct {
	rules Rules
	src   Source
}

// Option configures an Engine.
type Option func(*Engine)

// WithRules replaces the default scoring and speed constants.
func WithRules(r Rules) Option {
	return func(e *Engine) {
		e.rules = r
	}
}

// New returns an Engine drawing pieces from src.
func New(src Source, opts ...Option) *Engine {
	e := &Engine{
		rules: DefaultRules(),
		src:   src,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rules returns the constants the engine scores with.
func (e *Engine) Rules() Rules {
	return e.rules
}

// Idle returns the pre-game state: an empty board and no game in progress.
func (e *Engine) Idle() State {
	return State{
		Board: NewBoard(),
		Level: 1,
		Phase: PhaseIdle,
	}
}

// Start begins a new game with a fresh board and bag.
func (e *Engine) Start() State {
	bag := NewBag(e.src)
	current, bag := Draw(bag, e.src)
	next, bag := Draw(bag, e.src)
	return State{
		Board:   NewBoard(),
		Current: Spawn(current),
		Next:    next,
		Bag:     bag,
		Level:   1,
		Phase:   PhasePlaying,
	}
}

// Tick applies one gravity step: the piece falls one row or, if it cannot,
// locks and the next piece spawns. Ticks outside PhasePlaying are no-ops.
func (e *Engine) Tick(s State) State {
	if s.Phase != PhasePlaying {
		return s
	}
	moved, collided := TryMoveDown(s.Current, s.Board)
	if !collided {
		s.Current = moved
		return s
	}
	return e.lockAndSpawn(s)
}

// HandleAction applies a player action. Actions outside PhasePlaying and
// unknown actions return s unchanged.
func (e *Engine) HandleAction(s State, a Action) State {
	if s.Phase != PhasePlaying {
		return s
	}
	switch a {
	case ActionMoveLeft:
		s.Current = TryMove(DirLeft, s.Current, s.Board)
	case ActionMoveRight:
		s.Current = TryMove(DirRight, s.Current, s.Board)
	case ActionMoveDown:
		moved, collided := TryMoveDown(s.Current, s.Board)
		if !collided {
			s.Current = moved
			s.Score += e.rules.SoftDropPerCell
		}
	case ActionRotate:
		s.Current = TryRotate(s.Current, s.Board)
	case ActionRotateCCW:
		s.Current = TryRotateCounterClockwise(s.Current, s.Board)
	case ActionHardDrop:
		landed, distance := HardDrop(s.Current, s.Board)
		s.Current = landed
		s.Score += distance * e.rules.HardDropPerCell
		s = e.lockAndSpawn(s)
	}
	return s
}

// lockAndSpawn locks the current piece, scores cleared rows and promotes the
// next piece. A spawn that collides ends the game.
func (e *Engine) lockAndSpawn(s State) State {
	res := e.rules.LockAndScore(s.Current, s.Board, s.Score, s.Level, s.Lines)
	s.Board = res.Board
	s.Score = res.Score
	s.Level = res.Level
	s.Lines = res.Lines

	s.Current = Spawn(s.Next)
	s.Next, s.Bag = Draw(s.Bag, e.src)
	if Collides(s.Current, s.Board) {
		s.Phase = PhaseGameOver
	}
	return s
}

// Pause suspends a running game. Other phases are returned unchanged.
func (e *Engine) Pause(s State) State {
	if s.Phase == PhasePlaying {
		s.Phase = PhasePaused
	}
	return s
}

// Resume continues a paused game. Other phases are returned unchanged.
func (e *Engine) Resume(s State) State {
	if s.Phase == PhasePaused {
		s.Phase = PhasePlaying
	}
	return s
}

// TogglePause pauses a running game or resumes a paused one.
func (e *Engine) TogglePause(s State) State {
	switch s.Phase {
	case PhasePlaying:
		return e.Pause(s)
	case PhasePaused:
		return e.Resume(s)
	default:
		return s
	}
}

// DropInterval returns the gravity period for the state's level.
func (e *Engine) DropInterval(s State) time.Duration {
	return e.rules.DropSpeed(s.Level)
}
