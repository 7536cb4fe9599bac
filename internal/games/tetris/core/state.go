package core

// Phase is the lifecycle stage of a game.
type Phase uint8

const (
	PhaseIdle Phase = iota
	PhasePlaying
	PhasePaused
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePlaying:
		return "playing"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// State is a complete game snapshot. Transitions return a new State and
// leave their input untouched.
type State struct {
	Board   Board
	Current Piece
	Next    PieceType
	Bag     Bag

	Score int
	Level int
	Lines int

	Phase Phase
}

// ActiveCells returns the board cells covered by the falling piece, or nil
// when no piece is in play.
func (s State) ActiveCells() []Cell {
	if s.Phase == PhaseIdle {
		return nil
	}
	return OccupiedCells(s.Current)
}

// GhostPiece returns where the current piece would land on a hard drop.
func (s State) GhostPiece() Piece {
	landed, _ := HardDrop(s.Current, s.Board)
	return landed
}

// NextPiece returns the upcoming piece in its spawn placement.
func (s State) NextPiece() Piece {
	return Spawn(s.Next)
}

// IsOver reports whether the game has ended.
func (s State) IsOver() bool {
	return s.Phase == PhaseGameOver
}

// Playing reports whether the game accepts actions and ticks.
func (s State) Playing() bool {
	return s.Phase == PhasePlaying
}
