package tetris

// Snapshot captures the game state for determinism testing.
type Snapshot struct {
	Tick     uint64
	Phase    string
	Score    int
	Level    int
	Lines    int
	Piece    string // falling piece type
	Rotation int
	X, Y     int
	Next     string
	Filled   int // locked cells on the board
	BagLen   int
	Fast     bool
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	return Snapshot{
		Tick:     g.tick,
		Phase:    s.Phase.String(),
		Score:    s.Score,
		Level:    s.Level,
		Lines:    s.Lines,
		Piece:    s.Current.Type.String(),
		Rotation: s.Current.Rotation,
		X:        s.Current.X,
		Y:        s.Current.Y,
		Next:     s.Next.String(),
		Filled:   s.Board.Filled(),
		BagLen:   len(s.Bag),
		Fast:     g.fast,
	}
}
