package core

// Playfield dimensions. Row 0 is the top, x grows to the right.
const (
	BoardWidth  = 10
	BoardHeight = 20
)

// Board is the locked playfield. It is an array value, so assigning or
// passing a Board copies every row.
type Board [BoardHeight][BoardWidth]Color

// Cell is an absolute playfield coordinate.
type Cell struct {
	X, Y int
}

// NewBoard returns an empty playfield.
func NewBoard() Board {
	return Board{}
}

// InBounds reports whether (x, y) lies on the playfield.
func InBounds(x, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardHeight
}

// At returns the color at (x, y), or ColorEmpty for out-of-range coordinates.
func (b Board) At(x, y int) Color {
	if !InBounds(x, y) {
		return ColorEmpty
	}
	return b[y][x]
}

// IsEmpty reports whether (x, y) is on the board and free.
func (b Board) IsEmpty(x, y int) bool {
	return InBounds(x, y) && b[y][x] == ColorEmpty
}

// Set returns a copy of b with (x, y) set to c. Out-of-range writes are ignored.
func (b Board) Set(x, y int, c Color) Board {
	if InBounds(x, y) {
		b[y][x] = c
	}
	return b
}

// RowFull reports whether every cell of row y is occupied.
func (b Board) RowFull(y int) bool {
	if y < 0 || y >= BoardHeight {
		return false
	}
	for x := range BoardWidth {
		if b[y][x] == ColorEmpty {
			return false
		}
	}
	return true
}

// Filled returns the number of occupied cells on the board.
func (b Board) Filled() int {
	n := 0
	for y := range BoardHeight {
		for x := range BoardWidth {
			if b[y][x] != ColorEmpty {
				n++
			}
		}
	}
	return n
}

// OccupiedCells returns the absolute board coordinates covered by p, in
// matrix row-major order. Coordinates may lie outside the board.
func OccupiedCells(p Piece) []Cell {
	shape := p.Shape()
	cells := make([]Cell, 0, 4)
	for row := range shape.Size() {
		for col := range shape.Size() {
			if shape.Filled(row, col) {
				cells = append(cells, Cell{X: p.X + col, Y: p.Y + row})
			}
		}
	}
	return cells
}

// Collides reports whether p overlaps a wall, the floor or a locked cell.
// Cells above the top edge (y < 0) are not a violation.
func Collides(p Piece, b Board) bool {
	for _, c := range OccupiedCells(p) {
		if c.X < 0 || c.X >= BoardWidth || c.Y >= BoardHeight {
			return true
		}
		if c.Y >= 0 && b[c.Y][c.X] != ColorEmpty {
			return true
		}
	}
	return false
}

// Lock returns a copy of b with p's cells filled in p's color.
// Cells outside the board are dropped.
func Lock(p Piece, b Board) Board {
	color := p.Color()
	for _, c := range OccupiedCells(p) {
		if InBounds(c.X, c.Y) {
			b[c.Y][c.X] = color
		}
	}
	return b
}

// CompleteRows returns the indices of every full row, ascending.
func CompleteRows(b Board) []int {
	var rows []int
	for y := range BoardHeight {
		if b.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearRows removes the given rows from b, shifting the rows above them down
// and filling the top with empty rows. It returns the new board and the number
// of rows removed. Out-of-range and repeated indices are ignored.
func ClearRows(b Board, rows []int) (Board, int) {
	var remove [BoardHeight]bool
	removed := 0
	for _, y := range rows {
		if y < 0 || y >= BoardHeight || remove[y] {
			continue
		}
		remove[y] = true
		removed++
	}
	if removed == 0 {
		return b, 0
	}

	var out Board
	dst := BoardHeight - 1
	for y := BoardHeight - 1; y >= 0; y-- {
		if remove[y] {
			continue
		}
		out[dst] = b[y]
		dst--
	}
	return out, removed
}
