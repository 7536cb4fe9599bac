package core_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

func newEngine(seed int64) *core.Engine {
	return core.New(rand.New(rand.NewSource(seed)))
}

// fullRowExcept returns b with row y filled except for the given columns.
func fullRowExcept(b core.Board, y int, holes ...int) core.Board {
	skip := map[int]bool{}
	for _, x := range holes {
		skip[x] = true
	}
	for x := range core.BoardWidth {
		if !skip[x] {
			b = b.Set(x, y, core.ColorRed)
		}
	}
	return b
}

func playing(current core.Piece, next core.PieceType, board core.Board) core.State {
	return core.State{
		Board:   board,
		Current: current,
		Next:    next,
		Bag:     core.Bag{core.PieceT, core.PieceS},
		Level:   1,
		Phase:   core.PhasePlaying,
	}
}

func TestIdle(t *testing.T) {
	s := newEngine(1).Idle()
	assert.Equal(t, core.PhaseIdle, s.Phase)
	assert.Equal(t, 0, s.Board.Filled())
	assert.Nil(t, s.ActiveCells())
}

func TestStart(t *testing.T) {
	s := newEngine(1).Start()

	assert.Equal(t, core.PhasePlaying, s.Phase)
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, 1, s.Level)
	assert.Equal(t, 0, s.Lines)
	assert.Equal(t, 0, s.Board.Filled())
	assert.Len(t, s.Bag, 5)
	assert.Equal(t, core.Spawn(s.Current.Type), s.Current)

	drawn := append([]core.PieceType{s.Current.Type, s.Next}, s.Bag...)
	assert.ElementsMatch(t, core.AllPieceTypes[:], drawn)
}

func TestTickFalls(t *testing.T) {
	e := newEngine(1)
	s := e.Start()
	next := e.Tick(s)

	assert.Equal(t, s.Current.Y+1, next.Current.Y)
	assert.Equal(t, 0, s.Current.Y, "input state must be unchanged")
}

func TestTickLocksAndPromotesNext(t *testing.T) {
	e := newEngine(1)
	s := playing(core.Piece{Type: core.PieceO, X: 0, Y: 18}, core.PieceL, core.NewBoard())

	next := e.Tick(s)
	assert.Equal(t, core.PhasePlaying, next.Phase)
	assert.Equal(t, core.Spawn(core.PieceL), next.Current)
	assert.Equal(t, core.PieceT, next.Next)
	assert.Equal(t, core.Bag{core.PieceS}, next.Bag)
	assert.Equal(t, 4, next.Board.Filled())
	assert.Equal(t, core.ColorYellow, next.Board.At(0, 19))

	ev := core.Diff(s, next)
	assert.True(t, ev.Locked)
	assert.Equal(t, 0, ev.LinesCleared)
	assert.False(t, ev.GameOver)
}

func TestTickClearsRowAndScores(t *testing.T) {
	e := newEngine(1)
	board := fullRowExcept(core.NewBoard(), 19, 4, 5)
	board = fullRowExcept(board, 18, 0, 1, 2, 3, 4, 5, 6, 7)
	s := playing(core.Piece{Type: core.PieceO, X: 4, Y: 18}, core.PieceI, board)
	s.Level = 2
	s.Lines = 12

	next := e.Tick(s)
	assert.Equal(t, 200, next.Score)
	assert.Equal(t, 13, next.Lines)
	assert.Equal(t, 2, next.Level)

	// Row 18 moved down to 19: the two original cells plus the O's top half.
	assert.Equal(t, 4, next.Board.Filled())
	assert.Equal(t, core.ColorRed, next.Board.At(8, 19))
	assert.Equal(t, core.ColorYellow, next.Board.At(4, 19))

	ev := core.Diff(s, next)
	assert.True(t, ev.Locked)
	assert.Equal(t, 1, ev.LinesCleared)
	assert.False(t, ev.LevelUp)
}

func TestLevelUpEvent(t *testing.T) {
	e := newEngine(1)
	board := fullRowExcept(core.NewBoard(), 19, 0, 1)
	s := playing(core.Piece{Type: core.PieceO, X: 0, Y: 18}, core.PieceI, board)
	s.Lines = 9

	next := e.Tick(s)
	assert.Equal(t, 2, next.Level)
	assert.True(t, core.Diff(s, next).LevelUp)
}

func TestGameOverOnBlockedSpawn(t *testing.T) {
	e := newEngine(1)
	board := core.NewBoard().Set(4, 1, core.ColorRed).Set(5, 1, core.ColorRed)
	s := playing(core.Piece{Type: core.PieceO, X: 0, Y: 18}, core.PieceO, board)

	next := e.Tick(s)
	assert.Equal(t, core.PhaseGameOver, next.Phase)
	assert.True(t, next.IsOver())
	assert.True(t, core.Diff(s, next).GameOver)

	// Terminal: further input changes nothing.
	assert.Equal(t, next, e.Tick(next))
	assert.Equal(t, next, e.HandleAction(next, core.ActionHardDrop))
	assert.Equal(t, next, e.Pause(next))
	assert.Equal(t, next, e.Resume(next))
}

func TestHandleActionMoves(t *testing.T) {
	e := newEngine(1)
	s := playing(core.Spawn(core.PieceT), core.PieceO, core.NewBoard())

	left := e.HandleAction(s, core.ActionMoveLeft)
	assert.Equal(t, s.Current.X-1, left.Current.X)

	right := e.HandleAction(s, core.ActionMoveRight)
	assert.Equal(t, s.Current.X+1, right.Current.X)

	rotated := e.HandleAction(s, core.ActionRotate)
	assert.Equal(t, 1, rotated.Current.Rotation)

	ccw := e.HandleAction(s, core.ActionRotateCCW)
	assert.Equal(t, 3, ccw.Current.Rotation)

	assert.Equal(t, s, e.HandleAction(s, core.Action(0)), "unknown action is a no-op")
	assert.Equal(t, s, e.HandleAction(s, core.Action(200)), "unknown action is a no-op")
}

func TestSoftDropScores(t *testing.T) {
	e := newEngine(1)
	s := playing(core.Spawn(core.PieceT), core.PieceO, core.NewBoard())

	down := e.HandleAction(s, core.ActionMoveDown)
	assert.Equal(t, 1, down.Current.Y)
	assert.Equal(t, 1, down.Score)

	resting := playing(core.Piece{Type: core.PieceO, X: 0, Y: 18}, core.PieceO, core.NewBoard())
	blocked := e.HandleAction(resting, core.ActionMoveDown)
	assert.Equal(t, resting, blocked, "a blocked soft drop neither scores nor locks")
}

func TestHardDropLocksImmediately(t *testing.T) {
	e := newEngine(1)
	s := playing(core.Spawn(core.PieceO), core.PieceJ, core.NewBoard())

	next := e.HandleAction(s, core.ActionHardDrop)
	assert.Equal(t, 36, next.Score, "18 rows at 2 points each")
	assert.Equal(t, core.Spawn(core.PieceJ), next.Current)
	assert.Equal(t, core.ColorYellow, next.Board.At(4, 19))
	assert.Equal(t, core.ColorYellow, next.Board.At(5, 18))
}

func TestHardDropBonusAddsToClearScore(t *testing.T) {
	e := newEngine(1)
	board := fullRowExcept(core.NewBoard(), 19, 4, 5)
	board = fullRowExcept(board, 18, 4, 5)
	s := playing(core.Spawn(core.PieceO), core.PieceI, board)
	s.Score = 10

	next := e.HandleAction(s, core.ActionHardDrop)
	assert.Equal(t, 10+36+300, next.Score)
	assert.Equal(t, 2, next.Lines)
	assert.Equal(t, 0, next.Board.Filled())
}

func TestPauseResume(t *testing.T) {
	e := newEngine(1)
	s := e.Start()

	paused := e.Pause(s)
	require.Equal(t, core.PhasePaused, paused.Phase)
	assert.Equal(t, paused, e.Pause(paused), "pause is idempotent")

	assert.Equal(t, paused, e.Tick(paused), "ticks are ignored while paused")
	assert.Equal(t, paused, e.HandleAction(paused, core.ActionMoveLeft))

	resumed := e.Resume(paused)
	require.Equal(t, core.PhasePlaying, resumed.Phase)
	assert.Equal(t, resumed, e.Resume(resumed), "resume is idempotent")

	assert.Equal(t, core.PhasePaused, e.TogglePause(resumed).Phase)
	assert.Equal(t, core.PhasePlaying, e.TogglePause(paused).Phase)

	idle := e.Idle()
	assert.Equal(t, idle, e.Pause(idle))
	assert.Equal(t, idle, e.TogglePause(idle))
}

func TestDropInterval(t *testing.T) {
	e := newEngine(1)
	s := e.Start()
	assert.Equal(t, core.DropSpeed(1), e.DropInterval(s))

	s.Level = 10
	assert.Equal(t, core.DropSpeed(10), e.DropInterval(s))

	r := core.DefaultRules()
	r.BaseDrop = 2 * r.BaseDrop
	custom := core.New(rand.New(rand.NewSource(1)), core.WithRules(r))
	assert.Equal(t, r.BaseDrop, custom.DropInterval(custom.Start()))
}

func TestGhostPiece(t *testing.T) {
	s := playing(core.Spawn(core.PieceO), core.PieceI, core.NewBoard())
	ghost := s.GhostPiece()
	assert.Equal(t, 18, ghost.Y)
	assert.Equal(t, s.Current.X, ghost.X)
	assert.Equal(t, 0, s.Current.Y)
}

func TestSameSeedSameGame(t *testing.T) {
	actions := []core.Action{
		core.ActionMoveLeft, core.ActionRotate, core.ActionHardDrop,
		core.ActionMoveRight, core.ActionMoveRight, core.ActionHardDrop,
		core.ActionRotateCCW, core.ActionMoveDown, core.ActionHardDrop,
	}

	run := func() core.State {
		e := newEngine(42)
		s := e.Start()
		for range 30 {
			for _, a := range actions {
				s = e.HandleAction(s, a)
				s = e.Tick(s)
			}
		}
		return s
	}

	assert.Equal(t, run(), run())
}

func TestRandomPlayKeepsStateConsistent(t *testing.T) {
	e := newEngine(7)
	rng := rand.New(rand.NewSource(99))
	actions := []core.Action{
		core.ActionMoveLeft, core.ActionMoveRight, core.ActionMoveDown,
		core.ActionRotate, core.ActionRotateCCW, core.ActionHardDrop,
	}

	s := e.Start()
	for i := 0; i < 5000 && !s.IsOver(); i++ {
		prev := s
		if rng.Intn(3) == 0 {
			s = e.Tick(s)
		} else {
			s = e.HandleAction(s, actions[rng.Intn(len(actions))])
		}

		require.GreaterOrEqual(t, s.Score, prev.Score, "score never decreases")
		require.GreaterOrEqual(t, s.Lines, prev.Lines)
		require.Equal(t, core.LevelForLines(s.Lines), s.Level)
		require.Empty(t, core.CompleteRows(s.Board), "full rows are always cleared")
		if !s.IsOver() {
			require.False(t, core.Collides(s.Current, s.Board), "step %d: active piece overlaps", i)
		}
	}
}
