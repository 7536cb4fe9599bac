package core

import (
	"testing"
	"time"
)

func TestLineClearPoints(t *testing.T) {
	tests := []struct {
		lines    int
		level    int
		expected int
	}{
		{0, 1, 0},
		{1, 1, 100},
		{2, 1, 300},
		{3, 1, 500},
		{4, 1, 800},
		{1, 5, 500},
		{4, 3, 2400},
		{5, 1, 0},
		{-1, 1, 0},
	}

	for _, tt := range tests {
		if got := LineClearPoints(tt.lines, tt.level); got != tt.expected {
			t.Errorf("LineClearPoints(%d, %d) = %d, expected %d", tt.lines, tt.level, got, tt.expected)
		}
	}
}

func TestLevelForLines(t *testing.T) {
	tests := []struct {
		lines    int
		expected int
	}{
		{0, 1},
		{9, 1},
		{10, 2},
		{19, 2},
		{95, 10},
		{-3, 1},
	}

	for _, tt := range tests {
		if got := LevelForLines(tt.lines); got != tt.expected {
			t.Errorf("LevelForLines(%d) = %d, expected %d", tt.lines, got, tt.expected)
		}
	}
}

func TestDropSpeed(t *testing.T) {
	tests := []struct {
		level    int
		expected time.Duration
	}{
		{1, 1000 * time.Millisecond},
		{2, 950 * time.Millisecond},
		{10, 550 * time.Millisecond},
		{19, 100 * time.Millisecond},
		{20, 100 * time.Millisecond},
		{500, 100 * time.Millisecond},
		{0, 1000 * time.Millisecond},
	}

	for _, tt := range tests {
		if got := DropSpeed(tt.level); got != tt.expected {
			t.Errorf("DropSpeed(%d) = %v, expected %v", tt.level, got, tt.expected)
		}
	}
}

func TestCustomRules(t *testing.T) {
	r := DefaultRules()
	r.LinePoints = []int{0, 40, 100, 300, 1200}
	r.LinesPerLevel = 5
	r.BaseDrop = 800 * time.Millisecond

	if got := r.LineClearPoints(4, 2); got != 2400 {
		t.Errorf("LineClearPoints(4, 2) = %d, expected 2400", got)
	}
	if got := r.LevelForLines(10); got != 3 {
		t.Errorf("LevelForLines(10) = %d, expected 3", got)
	}
	if got := r.DropSpeed(3); got != 700*time.Millisecond {
		t.Errorf("DropSpeed(3) = %v, expected 700ms", got)
	}
}

func TestLockAndScoreUsesLevelBeforeLock(t *testing.T) {
	// Row 19 missing only x=4 and x=5; an O fills them on rows 18-19.
	b := fillRow(NewBoard(), 19, 4, 5)
	p := Piece{Type: PieceO, X: 4, Y: 18}

	res := LockAndScore(p, b, 1000, 1, 9)
	if res.Cleared != 1 {
		t.Fatalf("Cleared = %d, expected 1", res.Cleared)
	}
	if res.Score != 1100 {
		t.Errorf("Score = %d, expected 1100", res.Score)
	}
	if res.Lines != 10 || res.Level != 2 {
		t.Errorf("Lines/Level = %d/%d, expected 10/2", res.Lines, res.Level)
	}
	// The upper half of the O drops into row 19.
	if res.Board.At(4, 19) != ColorYellow || res.Board.At(5, 19) != ColorYellow {
		t.Error("remaining O cells should have shifted down to row 19")
	}
	if res.Board.Filled() != 2 {
		t.Errorf("Filled() = %d, expected 2", res.Board.Filled())
	}
}

func TestLockAndScoreNoClear(t *testing.T) {
	res := LockAndScore(Piece{Type: PieceO, X: 0, Y: 18}, NewBoard(), 50, 4, 33)
	if res.Cleared != 0 || res.Score != 50 || res.Lines != 33 || res.Level != 4 {
		t.Errorf("LockAndScore = %+v, expected unchanged counters", res)
	}
}
