package tetris

import (
	"fmt"

	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-tetris/internal/core"
	engine "github.com/vovakirdan/tui-tetris/internal/games/tetris/core"
)

const (
	cellWidth  = 2 // columns per board cell, so blocks look square
	panelWidth = 16
	panelGap   = 2

	boardW = engine.BoardWidth*cellWidth + 2 // + border
	boardH = engine.BoardHeight + 2

	// MinWidth and MinHeight are the smallest screen the layout fits.
	MinWidth  = boardW + panelGap + panelWidth
	MinHeight = boardH
)

const (
	blockRune = '█'
	ghostRune = '░'
	emptyRune = '·'
)

// Color conversion from engine cells to screen colors.
var cellColors = map[engine.Color]core.Color{
	engine.ColorEmpty:  core.ColorDefault,
	engine.ColorCyan:   core.ColorCyan,
	engine.ColorYellow: core.ColorYellow,
	engine.ColorPurple: core.ColorPurple,
	engine.ColorGreen:  core.ColorGreen,
	engine.ColorRed:    core.ColorRed,
	engine.ColorBlue:   core.ColorBlue,
	engine.ColorOrange: core.ColorOrange,
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.screenW < MinWidth || g.screenH < MinHeight {
		g.renderTooSmall(dst)
		return
	}

	layout := core.CenterIn(dst.Bounds(), MinWidth, MinHeight)
	board := core.NewRect(layout.X, layout.Y, boardW, boardH)
	panel := core.NewRect(board.Right()+panelGap, layout.Y, panelWidth, boardH)

	g.renderBoard(dst, board)
	g.renderPanel(dst, panel)

	switch g.state.Phase {
	case engine.PhasePaused:
		renderOverlay(dst, board, "PAUSED", "P to resume")
	case engine.PhaseGameOver:
		renderOverlay(dst, board, "GAME OVER", "R to restart")
	}
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := dst.Height() / 2
	dst.DrawTextCentered(dst.Bounds(), y, "Window too small", core.ColorAccent)
	dst.DrawTextCentered(dst.Bounds(), y+1, fmt.Sprintf("Need %dx%d", MinWidth, MinHeight), core.ColorDim)
}

// renderBoard draws the border, locked cells, ghost and falling piece.
func (g *Game) renderBoard(dst *core.Screen, r core.Rect) {
	dst.DrawBox(r, core.ColorGray)
	inner := r.Inset(1)

	for y := range engine.BoardHeight {
		for x := range engine.BoardWidth {
			c := g.state.Board.At(x, y)
			if c == engine.ColorEmpty {
				drawCell(dst, inner, x, y, emptyRune, core.ColorDim)
				continue
			}
			drawCell(dst, inner, x, y, blockRune, cellColors[c])
		}
	}

	if g.state.Phase == engine.PhaseIdle {
		return
	}

	if g.state.Playing() {
		for _, c := range engine.OccupiedCells(g.state.GhostPiece()) {
			drawCell(dst, inner, c.X, c.Y, ghostRune, core.ColorGray)
		}
	}

	color := cellColors[g.state.Current.Color()]
	for _, c := range g.state.ActiveCells() {
		drawCell(dst, inner, c.X, c.Y, blockRune, color)
	}
}

// drawCell paints board cell (x, y). Cells above the playfield are skipped.
func drawCell(dst *core.Screen, inner core.Rect, x, y int, ch rune, c core.Color) {
	if !engine.InBounds(x, y) {
		return
	}
	sx := inner.X + x*cellWidth
	sy := inner.Y + y
	for i := range cellWidth {
		if ch == emptyRune && i == 0 {
			dst.SetCell(sx+i, sy, ' ', c)
			continue
		}
		dst.SetCell(sx+i, sy, ch, c)
	}
}

// renderPanel draws the next-piece preview and the counters.
func (g *Game) renderPanel(dst *core.Screen, r core.Rect) {
	next := core.NewRect(r.X, r.Y, r.W, 6)
	dst.DrawBox(next, core.ColorGray)
	dst.DrawTextColor(next.X+2, next.Y, " NEXT ", core.ColorAccent)
	if g.state.Phase != engine.PhaseIdle {
		renderPreview(dst, next.Inset(1), g.state.Next)
	}

	y := next.Bottom() + 1
	stats := []struct {
		label string
		value string
	}{
		{"SCORE", humanize.Comma(int64(g.state.Score))},
		{"LEVEL", fmt.Sprintf("%d", g.state.Level)},
		{"LINES", humanize.Comma(int64(g.state.Lines))},
		{"SPEED", fmt.Sprintf("%dms", g.dropInterval().Milliseconds())},
	}
	for _, s := range stats {
		dst.DrawTextColor(r.X+1, y, s.label, core.ColorDim)
		dst.DrawTextColor(r.X+1, y+1, s.value, core.ColorWhite)
		y += 3
	}

	if g.fast {
		dst.DrawTextColor(r.X+1, y, "FAST DROP", core.ColorOrange)
	}
	dst.DrawTextColor(r.X+1, r.Bottom()-1, fmt.Sprintf("MODE %s", g.difficulty), core.ColorGray)
}

// renderPreview centers the spawn shape of t inside r.
func renderPreview(dst *core.Screen, r core.Rect, t engine.PieceType) {
	shape := engine.ShapeOf(t, 0)
	rows, cols := shapeExtent(shape)
	area := core.CenterIn(r, cols*cellWidth, rows)
	color := cellColors[engine.PieceColor(t)]

	row := 0
	for sy := range shape.Size() {
		if !rowUsed(shape, sy) {
			continue
		}
		for sx := range shape.Size() {
			if !shape.Filled(sy, sx) {
				continue
			}
			for i := range cellWidth {
				dst.SetCell(area.X+sx*cellWidth+i, area.Y+row, blockRune, color)
			}
		}
		row++
	}
}

// shapeExtent returns the number of non-empty rows and the matrix width.
func shapeExtent(s engine.Shape) (rows, cols int) {
	for y := range s.Size() {
		if rowUsed(s, y) {
			rows++
		}
	}
	return rows, s.Size()
}

func rowUsed(s engine.Shape, y int) bool {
	for x := range s.Size() {
		if s.Filled(y, x) {
			return true
		}
	}
	return false
}

// renderOverlay draws a boxed two-line message centered over r.
func renderOverlay(dst *core.Screen, r core.Rect, title, hint string) {
	w := max(len(title), len(hint)) + 4
	box := core.CenterIn(r, w, 5)
	dst.FillRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorAccent)
	dst.DrawTextCentered(box, box.Y+1, title, core.ColorAccent)
	dst.DrawTextCentered(box, box.Y+3, hint, core.ColorDim)
}
