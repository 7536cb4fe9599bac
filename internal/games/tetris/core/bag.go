package core

// Source supplies uniform random integers. *math/rand.Rand satisfies it.
type Source interface {
	// Intn returns a value in [0, n). n is always positive.
	Intn(n int) int
}

// Bag is the ordered list of piece types not yet drawn in the current cycle.
type Bag []PieceType

// NewBag returns all seven piece types in an order shuffled with src.
func NewBag(src Source) Bag {
	bag := make(Bag, pieceTypeCount)
	copy(bag, AllPieceTypes[:])
	for i := len(bag) - 1; i > 0; i-- {
		j := src.Intn(i + 1)
		bag[i], bag[j] = bag[j], bag[i]
	}
	return bag
}

// Draw removes and returns the first piece of bag. An empty bag is refilled
// with a fresh shuffled cycle first. The input slice is never written to.
func Draw(bag Bag, src Source) (PieceType, Bag) {
	if len(bag) == 0 {
		bag = NewBag(src)
	}
	rest := make(Bag, len(bag)-1)
	copy(rest, bag[1:])
	return bag[0], rest
}

// Spawn places a new piece of type t in rotation 0, horizontally centered on
// its base shape, at the top row.
func Spawn(t PieceType) Piece {
	width := ShapeOf(t, 0).Size()
	return Piece{
		Type:     t,
		Rotation: 0,
		X:        BoardWidth/2 - width/2,
		Y:        0,
	}
}
