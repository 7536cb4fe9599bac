package core

// Color is the foreground color of a screen cell. The platform maps each
// value to a terminal color; ColorDefault leaves the terminal's own color.
type Color uint8

const (
	ColorDefault Color = iota
	ColorCyan
	ColorYellow
	ColorPurple
	ColorGreen
	ColorRed
	ColorBlue
	ColorOrange
	ColorWhite
	ColorGray
	ColorDim
	ColorAccent
)

func (c Color) String() string {
	switch c {
	case ColorDefault:
		return "default"
	case ColorCyan:
		return "cyan"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorGreen:
		return "green"
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorOrange:
		return "orange"
	case ColorWhite:
		return "white"
	case ColorGray:
		return "gray"
	case ColorDim:
		return "dim"
	case ColorAccent:
		return "accent"
	default:
		return "unknown"
	}
}
