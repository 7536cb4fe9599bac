package core

import (
	"strings"
)

// Cell is one character position on the screen.
type Cell struct {
	Rune  rune
	Color Color
}

var blank = Cell{Rune: ' '}

// Screen is a character buffer the game draws into. The platform turns it
// into terminal output, so game rendering never touches the terminal.
type Screen struct {
	width  int
	height int
	cells  [][]Cell
}

// NewScreen creates a blank screen of the given size.
func NewScreen(width, height int) *Screen {
	s := &Screen{width: width, height: height}
	s.cells = allocCells(width, height)
	return s
}

func allocCells(width, height int) [][]Cell {
	cells := make([][]Cell, height)
	for y := range cells {
		row := make([]Cell, width)
		for x := range row {
			row[x] = blank
		}
		cells[y] = row
	}
	return cells
}

func (s *Screen) Width() int  { return s.width }
func (s *Screen) Height() int { return s.height }

// Bounds returns the whole screen as a Rect.
func (s *Screen) Bounds() Rect {
	return NewRect(0, 0, s.width, s.height)
}

// Resize changes the screen dimensions, keeping the overlapping top-left area.
func (s *Screen) Resize(width, height int) {
	if width == s.width && height == s.height {
		return
	}
	cells := allocCells(width, height)
	for y := 0; y < min(height, s.height); y++ {
		copy(cells[y], s.cells[y][:min(width, s.width)])
	}
	s.width, s.height, s.cells = width, height, cells
}

// Clear blanks every cell.
func (s *Screen) Clear() {
	for y := range s.cells {
		for x := range s.cells[y] {
			s.cells[y][x] = blank
		}
	}
}

func (s *Screen) inside(x, y int) bool {
	return x >= 0 && x < s.width && y >= 0 && y < s.height
}

// Set places r at (x, y) in the default color. Out-of-bounds writes are dropped.
func (s *Screen) Set(x, y int, r rune) {
	s.SetCell(x, y, r, ColorDefault)
}

// SetCell places r at (x, y) in color c. Out-of-bounds writes are dropped.
func (s *Screen) SetCell(x, y int, r rune, c Color) {
	if !s.inside(x, y) {
		return
	}
	s.cells[y][x] = Cell{Rune: r, Color: c}
}

// Get returns the rune at (x, y), or a space outside the screen.
func (s *Screen) Get(x, y int) rune {
	return s.GetCell(x, y).Rune
}

// GetCell returns the cell at (x, y), or a blank cell outside the screen.
func (s *Screen) GetCell(x, y int) Cell {
	if !s.inside(x, y) {
		return blank
	}
	return s.cells[y][x]
}

// DrawText writes text starting at (x, y), clipped to the screen.
func (s *Screen) DrawText(x, y int, text string) {
	s.DrawTextColor(x, y, text, ColorDefault)
}

// DrawTextColor writes text in color c starting at (x, y).
func (s *Screen) DrawTextColor(x, y int, text string, c Color) {
	i := 0
	for _, r := range text {
		s.SetCell(x+i, y, r, c)
		i++
	}
}

// DrawTextCentered writes text horizontally centered within r on row y.
func (s *Screen) DrawTextCentered(r Rect, y int, text string, c Color) {
	n := len([]rune(text))
	s.DrawTextColor(r.X+(r.W-n)/2, y, text, c)
}

// FillRect fills r with ch in color c.
func (s *Screen) FillRect(r Rect, ch rune, c Color) {
	for y := r.Y; y < r.Bottom(); y++ {
		for x := r.X; x < r.Right(); x++ {
			s.SetCell(x, y, ch, c)
		}
	}
}

// DrawBox outlines r with box-drawing characters in color c.
func (s *Screen) DrawBox(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	right, bottom := r.Right()-1, r.Bottom()-1

	s.SetCell(r.X, r.Y, '┌', c)
	s.SetCell(right, r.Y, '┐', c)
	s.SetCell(r.X, bottom, '└', c)
	s.SetCell(right, bottom, '┘', c)
	for x := r.X + 1; x < right; x++ {
		s.SetCell(x, r.Y, '─', c)
		s.SetCell(x, bottom, '─', c)
	}
	for y := r.Y + 1; y < bottom; y++ {
		s.SetCell(r.X, y, '│', c)
		s.SetCell(right, y, '│', c)
	}
}

// String returns the screen as plain text, one line per row, without colors.
func (s *Screen) String() string {
	var sb strings.Builder
	sb.Grow((s.width + 1) * s.height)
	for y := range s.height {
		if y > 0 {
			sb.WriteByte('\n')
		}
		for x := range s.width {
			sb.WriteRune(s.cells[y][x].Rune)
		}
	}
	return sb.String()
}

// Row returns row y as plain text.
func (s *Screen) Row(y int) string {
	if y < 0 || y >= s.height {
		return strings.Repeat(" ", s.width)
	}
	runes := make([]rune, s.width)
	for x, c := range s.cells[y] {
		runes[x] = c.Rune
	}
	return string(runes)
}
