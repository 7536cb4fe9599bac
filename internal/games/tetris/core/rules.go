package core

import "time"

// Rules holds the tunable scoring and speed constants.
type Rules struct {
	// LinePoints[n] is the base award for clearing n rows at once, before the
	// level multiplier. Counts beyond the table score zero.
	LinePoints []int
	// LinesPerLevel is how many cleared rows advance the level by one.
	LinesPerLevel int
	// HardDropPerCell and SoftDropPerCell are awarded per row of manual descent.
	HardDropPerCell int
	SoftDropPerCell int

	BaseDrop time.Duration
	DropStep time.Duration
	MinDrop  time.Duration
}

// DefaultRules returns the standard constants.
func DefaultRules() Rules {
	return Rules{
		LinePoints:      []int{0, 100, 300, 500, 800},
		LinesPerLevel:   10,
		HardDropPerCell: 2,
		SoftDropPerCell: 1,
		BaseDrop:        1000 * time.Millisecond,
		DropStep:        50 * time.Millisecond,
		MinDrop:         100 * time.Millisecond,
	}
}

// LineClearPoints returns the award for clearing n rows at level.
func (r Rules) LineClearPoints(n, level int) int {
	if n <= 0 || n >= len(r.LinePoints) {
		return 0
	}
	return r.LinePoints[n] * level
}

// LevelForLines returns the level reached after clearing lines rows.
func (r Rules) LevelForLines(lines int) int {
	if lines < 0 || r.LinesPerLevel <= 0 {
		return 1
	}
	return lines/r.LinesPerLevel + 1
}

// DropSpeed returns the gravity interval at level, never below MinDrop.
func (r Rules) DropSpeed(level int) time.Duration {
	if level < 1 {
		level = 1
	}
	d := r.BaseDrop - time.Duration(level-1)*r.DropStep
	if d < r.MinDrop {
		return r.MinDrop
	}
	return d
}

// LineClearPoints scores n cleared rows at level with the default table.
func LineClearPoints(n, level int) int {
	return defaultRules.LineClearPoints(n, level)
}

// LevelForLines returns lines/10 + 1.
func LevelForLines(lines int) int {
	return defaultRules.LevelForLines(lines)
}

// DropSpeed returns max(100ms, 1000ms - (level-1)*50ms).
func DropSpeed(level int) time.Duration {
	return defaultRules.DropSpeed(level)
}

var defaultRules = DefaultRules()

// LockResult is the outcome of locking a piece.
type LockResult struct {
	Board   Board
	Score   int
	Level   int
	Lines   int
	Cleared int
}

// LockAndScore locks p into b, clears completed rows and updates the score
// counters. Points are multiplied by the level in effect before the lock.
func (r Rules) LockAndScore(p Piece, b Board, score, level, lines int) LockResult {
	locked := Lock(p, b)
	cleared, n := ClearRows(locked, CompleteRows(locked))
	lines += n
	return LockResult{
		Board:   cleared,
		Score:   score + r.LineClearPoints(n, level),
		Level:   r.LevelForLines(lines),
		Lines:   lines,
		Cleared: n,
	}
}

// LockAndScore applies Rules.LockAndScore with the default constants.
func LockAndScore(p Piece, b Board, score, level, lines int) LockResult {
	return defaultRules.LockAndScore(p, b, score, level, lines)
}
