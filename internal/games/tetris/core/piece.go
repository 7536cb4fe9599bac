package core

// Piece is the falling piece: a type, a rotation index and the board position
// of the top-left corner of its shape matrix.
type Piece struct {
	Type     PieceType
	Rotation int
	X, Y     int
}

// Shape returns the occupancy matrix for the piece's current rotation.
func (p Piece) Shape() Shape {
	return ShapeOf(p.Type, p.Rotation)
}

// Color returns the color the piece locks with.
func (p Piece) Color() Color {
	return PieceColor(p.Type)
}

// Direction is a horizontal or downward translation.
type Direction uint8

const (
	DirLeft Direction = iota
	DirRight
	DirDown
)

// wallKicks are the horizontal offsets tried, in order, after a rotation collides.
var wallKicks = [...]int{-1, 1, 2}

// MoveLeft shifts p one column left without a collision check.
func MoveLeft(p Piece) Piece {
	p.X--
	return p
}

// MoveRight shifts p one column right without a collision check.
func MoveRight(p Piece) Piece {
	p.X++
	return p
}

// MoveDown shifts p one row down without a collision check.
func MoveDown(p Piece) Piece {
	p.Y++
	return p
}

// RotateClockwise advances the rotation index by one. Position is unchanged.
func RotateClockwise(p Piece) Piece {
	p.Rotation = normalizeRotation(p.Rotation+1, RotationCount(p.Type))
	return p
}

// RotateCounterClockwise steps the rotation index back by one.
func RotateCounterClockwise(p Piece) Piece {
	p.Rotation = normalizeRotation(p.Rotation-1, RotationCount(p.Type))
	return p
}

// TryMove translates p in dir, or returns p unchanged if the result collides.
func TryMove(dir Direction, p Piece, b Board) Piece {
	var next Piece
	switch dir {
	case DirLeft:
		next = MoveLeft(p)
	case DirRight:
		next = MoveRight(p)
	case DirDown:
		next = MoveDown(p)
	default:
		return p
	}
	if Collides(next, b) {
		return p
	}
	return next
}

// TryMoveDown moves p one row down. When the move is blocked it returns p
// unchanged and collided = true.
func TryMoveDown(p Piece, b Board) (Piece, bool) {
	next := MoveDown(p)
	if Collides(next, b) {
		return p, true
	}
	return next, false
}

// TryRotate rotates p clockwise, applying wall kicks when the rotated piece
// collides. If no placement fits, p is returned unchanged.
func TryRotate(p Piece, b Board) Piece {
	return kick(p, RotateClockwise(p), b)
}

// TryRotateCounterClockwise is TryRotate in the other direction, using the
// same kick offsets.
func TryRotateCounterClockwise(p Piece, b Board) Piece {
	return kick(p, RotateCounterClockwise(p), b)
}

func kick(orig, rotated Piece, b Board) Piece {
	if !Collides(rotated, b) {
		return rotated
	}
	for _, dx := range wallKicks {
		candidate := rotated
		candidate.X += dx
		if !Collides(candidate, b) {
			return candidate
		}
	}
	return orig
}

// HardDrop moves p straight down until the next step would collide and
// returns the landed piece along with the number of rows it fell.
func HardDrop(p Piece, b Board) (Piece, int) {
	distance := 0
	for {
		next := MoveDown(p)
		if Collides(next, b) {
			return p, distance
		}
		p = next
		distance++
	}
}
