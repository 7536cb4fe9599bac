package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// colorStyles maps core.Color to lipgloss styles. Piece colors use the
// 256-color palette so orange and purple are distinct.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("51")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
	core.ColorPurple:  lipgloss.NewStyle().Foreground(lipgloss.Color("129")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("46")),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("27")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorDim:     lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	core.ColorAccent:  lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
}

// Shared text styles for the menu, scoreboard and status line.
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	cursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// RenderScreen converts a Screen buffer to a styled string for display.
// Runs of cells with the same color share one escape sequence.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText pads text on the left to center it within width.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
