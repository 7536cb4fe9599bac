package core

// Events summarizes what changed between two consecutive states.
type Events struct {
	Locked       bool
	LinesCleared int
	LevelUp      bool
	GameOver     bool
}

// Any reports whether anything notable happened.
func (ev Events) Any() bool {
	return ev.Locked || ev.LinesCleared > 0 || ev.LevelUp || ev.GameOver
}

// Diff compares prev and next, where next was produced from prev by a single
// Tick or HandleAction.
func Diff(prev, next State) Events {
	var ev Events
	if next.Phase == PhaseIdle || prev.Phase == PhaseIdle {
		return ev
	}
	// Locking always writes at least one cell, so an unchanged board with no
	// cleared rows means nothing locked.
	ev.LinesCleared = max(next.Lines-prev.Lines, 0)
	ev.Locked = ev.LinesCleared > 0 || next.Board != prev.Board
	ev.LevelUp = next.Level > prev.Level
	ev.GameOver = prev.Phase != PhaseGameOver && next.Phase == PhaseGameOver
	return ev
}
