package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

// GameKeyMap holds the in-game key bindings.
type GameKeyMap struct {
	Left      key.Binding
	Right     key.Binding
	SoftDrop  key.Binding
	Rotate    key.Binding
	RotateCCW key.Binding
	HardDrop  key.Binding
	Fast      key.Binding
	Pause     key.Binding
	Restart   key.Binding
	Back      key.Binding
	Quit      key.Binding
}

// ShortHelp returns the bindings shown in the one-line help bar.
func (k GameKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Rotate, k.SoftDrop, k.HardDrop, k.Pause, k.Quit}
}

// FullHelp returns the bindings for the controls screen.
func (k GameKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Left, k.Right, k.SoftDrop, k.HardDrop},
		{k.Rotate, k.RotateCCW, k.Fast},
		{k.Pause, k.Restart, k.Back, k.Quit},
	}
}

// DefaultGameKeyMap returns arrow keys plus WASD and vim-style alternatives.
func DefaultGameKeyMap() GameKeyMap {
	return GameKeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "a", "h"),
			key.WithHelp("←/→", "move"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d", "l"),
			key.WithHelp("→", "move right"),
		),
		SoftDrop: key.NewBinding(
			key.WithKeys("down", "s", "j"),
			key.WithHelp("↓", "soft drop"),
		),
		Rotate: key.NewBinding(
			key.WithKeys("up", "w", "k", "x"),
			key.WithHelp("↑", "rotate"),
		),
		RotateCCW: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "rotate left"),
		),
		HardDrop: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "hard drop"),
		),
		Fast: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "fast drop on/off"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "menu"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// Action translates a key message to a platform action. Keys without a
// binding map to core.ActionNone.
func (k GameKeyMap) Action(msg tea.KeyMsg) core.Action {
	bindings := []struct {
		binding key.Binding
		action  core.Action
	}{
		{k.Quit, core.ActionQuit},
		{k.Left, core.ActionLeft},
		{k.Right, core.ActionRight},
		{k.SoftDrop, core.ActionSoftDrop},
		{k.Rotate, core.ActionRotate},
		{k.RotateCCW, core.ActionRotateCCW},
		{k.HardDrop, core.ActionHardDrop},
		{k.Fast, core.ActionFastToggle},
		{k.Pause, core.ActionPause},
		{k.Restart, core.ActionRestart},
		{k.Back, core.ActionBack},
	}
	for _, b := range bindings {
		if key.Matches(msg, b.binding) {
			return b.action
		}
	}
	return core.ActionNone
}

// MenuKeyMap holds the bindings shared by the menu and the scoreboard.
type MenuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Select key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns the bindings shown in the help bar.
func (k MenuKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Select, k.Back, k.Quit}
}

// FullHelp returns all menu bindings.
func (k MenuKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Select, k.Back, k.Quit},
	}
}

// DefaultMenuKeyMap returns the default menu bindings.
func DefaultMenuKeyMap() MenuKeyMap {
	return MenuKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h", "a"),
			key.WithHelp("←/→", "difficulty"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l", "d"),
			key.WithHelp("→", "next difficulty"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}
