// Package core implements the falling-block rules engine: the piece catalog,
// the bag randomizer, board collision and line clearing, and the state
// transitions driven by player actions and gravity ticks.
//
// Everything here is pure. Operations take a State (or a Piece and a Board)
// and return a new value; nothing is mutated in place and nothing is shared
// between successive states. Timing, input and rendering belong to the caller.
package core

// PieceType identifies one of the seven tetrominoes.
type PieceType uint8

const (
	PieceI PieceType = iota
	PieceO
	PieceT
	PieceS
	PieceZ
	PieceJ
	PieceL

	pieceTypeCount = 7
)

// AllPieceTypes lists every piece type in catalog order.
var AllPieceTypes = [pieceTypeCount]PieceType{PieceI, PieceO, PieceT, PieceS, PieceZ, PieceJ, PieceL}

// String returns the single-letter name of the piece type.
func (t PieceType) String() string {
	if !t.Valid() {
		return "?"
	}
	return "IOTSZJL"[t : t+1]
}

// Valid reports whether t is one of the seven catalog types.
func (t PieceType) Valid() bool {
	return t < pieceTypeCount
}

// Color is the engine-level color of a board cell. ColorEmpty marks a free cell.
type Color uint8

const (
	ColorEmpty Color = iota
	ColorCyan
	ColorYellow
	ColorPurple
	ColorGreen
	ColorRed
	ColorBlue
	ColorOrange
)

// maxShapeSize is the side of the largest shape matrix (the I piece).
const maxShapeSize = 4

// Shape is a square occupancy matrix for one rotation state of a piece.
// It is a plain value; copies never share storage.
type Shape struct {
	size  int
	cells [maxShapeSize][maxShapeSize]bool
}

// Size returns the side length of the square matrix.
func (s Shape) Size() int {
	return s.size
}

// Filled reports whether the matrix cell at (row, col) is occupied.
// Coordinates outside the matrix are reported as empty.
func (s Shape) Filled(row, col int) bool {
	if row < 0 || row >= s.size || col < 0 || col >= s.size {
		return false
	}
	return s.cells[row][col]
}

// Count returns the number of occupied cells.
func (s Shape) Count() int {
	n := 0
	for row := range s.size {
		for col := range s.size {
			if s.cells[row][col] {
				n++
			}
		}
	}
	return n
}

// String renders the matrix as rows of '#' and '.', joined by newlines.
func (s Shape) String() string {
	buf := make([]byte, 0, s.size*(s.size+1))
	for row := range s.size {
		if row > 0 {
			buf = append(buf, '\n')
		}
		for col := range s.size {
			if s.cells[row][col] {
				buf = append(buf, '#')
			} else {
				buf = append(buf, '.')
			}
		}
	}
	return string(buf)
}

// shapeOf builds a Shape from rows of '#' (occupied) and '.' (empty).
func shapeOf(rows ...string) Shape {
	s := Shape{size: len(rows)}
	for r, line := range rows {
		for c := 0; c < len(line) && c < maxShapeSize; c++ {
			s.cells[r][c] = line[c] == '#'
		}
	}
	return s
}

type pieceDef struct {
	color  Color
	states []Shape
}

// catalog holds the rotation states of every piece, clockwise from spawn.
var catalog = [pieceTypeCount]pieceDef{
	PieceI: {
		color: ColorCyan,
		states: []Shape{
			shapeOf("....", "####", "....", "...."),
			shapeOf("..#.", "..#.", "..#.", "..#."),
			shapeOf("....", "....", "####", "...."),
			shapeOf(".#..", ".#..", ".#..", ".#.."),
		},
	},
	PieceO: {
		color: ColorYellow,
		states: []Shape{
			shapeOf("##", "##"),
		},
	},
	PieceT: {
		color: ColorPurple,
		states: []Shape{
			shapeOf(".#.", "###", "..."),
			shapeOf(".#.", ".##", ".#."),
			shapeOf("...", "###", ".#."),
			shapeOf(".#.", "##.", ".#."),
		},
	},
	PieceS: {
		color: ColorGreen,
		states: []Shape{
			shapeOf(".##", "##.", "..."),
			shapeOf(".#.", ".##", "..#"),
		},
	},
	PieceZ: {
		color: ColorRed,
		states: []Shape{
			shapeOf("##.", ".##", "..."),
			shapeOf("..#", ".##", ".#."),
		},
	},
	PieceJ: {
		color: ColorBlue,
		states: []Shape{
			shapeOf("#..", "###", "..."),
			shapeOf(".##", ".#.", ".#."),
			shapeOf("...", "###", "..#"),
			shapeOf(".#.", ".#.", "##."),
		},
	},
	PieceL: {
		color: ColorOrange,
		states: []Shape{
			shapeOf("..#", "###", "..."),
			shapeOf(".#.", ".#.", ".##"),
			shapeOf("...", "###", "#.."),
			shapeOf("##.", ".#.", ".#."),
		},
	},
}

// RotationCount returns how many distinct rotation states t has (1, 2 or 4).
// Unknown types report 1 so modular arithmetic on the result stays safe.
func RotationCount(t PieceType) int {
	if !t.Valid() {
		return 1
	}
	return len(catalog[t].states)
}

// ShapeOf returns the shape matrix of t at the given rotation index.
// The index is reduced modulo the type's rotation count, so any integer works.
func ShapeOf(t PieceType, rotation int) Shape {
	if !t.Valid() {
		return Shape{}
	}
	states := catalog[t].states
	return states[normalizeRotation(rotation, len(states))]
}

// PieceColor returns the lock color of t.
func PieceColor(t PieceType) Color {
	if !t.Valid() {
		return ColorEmpty
	}
	return catalog[t].color
}

func normalizeRotation(rotation, n int) int {
	r := rotation % n
	if r < 0 {
		r += n
	}
	return r
}
