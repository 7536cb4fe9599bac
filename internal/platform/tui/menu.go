package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

// MenuChoice is what the user picked in the main menu.
type MenuChoice int

const (
	ChoiceNone MenuChoice = iota
	ChoicePlay
	ChoiceScores
	ChoiceControls
	ChoiceQuit
)

var menuItems = []struct {
	choice MenuChoice
	label  string
}{
	{ChoicePlay, "Play"},
	{ChoiceScores, "High Scores"},
	{ChoiceControls, "Controls"},
	{ChoiceQuit, "Quit"},
}

const logo = `
 ████ ████ ████ ███  █ ███
  █   █     █   █  █ █ █
  █   ███   █   ███  █ ███
  █   █     █   █ █  █   █
  █   ████  █   █  █ █ ███`

// MenuModel is the main menu: a list of entries plus a mode selector that
// cycles through the registered difficulty modes.
type MenuModel struct {
	modes    []registry.ModeInfo
	mode     int
	cursor   int
	width    int
	height   int
	player   string
	keys     MenuKeyMap
	help     help.Model
	choice   MenuChoice
	controls bool // showing the controls screen
}

// NewMenuModel creates the menu with the mode whose ID is modeID selected.
func NewMenuModel(cfg core.RuntimeConfig, player, modeID string) MenuModel {
	m := MenuModel{
		modes:  registry.List(),
		width:  cfg.ScreenW,
		height: cfg.ScreenH,
		player: player,
		keys:   DefaultMenuKeyMap(),
		help:   help.New(),
	}
	for i, info := range m.modes {
		if info.ID == modeID {
			m.mode = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}
	return m, nil
}

func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		m.choice = ChoiceQuit
		return m, nil
	}

	if m.controls {
		if key.Matches(msg, m.keys.Back) || key.Matches(msg, m.keys.Select) {
			m.controls = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(menuItems)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Left):
		if len(m.modes) > 0 {
			m.mode = (m.mode + len(m.modes) - 1) % len(m.modes)
		}
	case key.Matches(msg, m.keys.Right):
		if len(m.modes) > 0 {
			m.mode = (m.mode + 1) % len(m.modes)
		}
	case key.Matches(msg, m.keys.Select):
		choice := menuItems[m.cursor].choice
		if choice == ChoiceControls {
			m.controls = true
			return m, nil
		}
		m.choice = choice
	case key.Matches(msg, m.keys.Back):
		m.choice = ChoiceQuit
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.controls {
		return m.controlsView()
	}

	var b strings.Builder
	for _, line := range strings.Split(strings.TrimPrefix(logo, "\n"), "\n") {
		b.WriteString(titleStyle.Render(centerText(line, m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(centerText("player: "+m.player, m.width)))
	b.WriteString("\n\n")

	for i, item := range menuItems {
		label := item.label
		if item.choice == ChoicePlay {
			label = fmt.Sprintf("Play  ◂ %s ▸", m.ModeTitle())
		}
		if i == m.cursor {
			b.WriteString(cursorStyle.Render(centerText("> "+label, m.width)))
		} else {
			b.WriteString(centerText("  "+label, m.width))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

func (m MenuModel) controlsView() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("CONTROLS", m.width)))
	b.WriteString("\n\n")

	h := help.New()
	h.ShowAll = true
	b.WriteString(h.View(DefaultGameKeyMap()))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("Clear rows to score: 100 / 300 / 500 / 800 points × level."))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Every 10 lines the level rises and pieces fall faster."))
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("esc back"))
	return b.String()
}

// Choice returns the picked entry, or ChoiceNone while the menu is open.
func (m MenuModel) Choice() MenuChoice {
	return m.choice
}

// ModeID returns the ID of the selected mode.
func (m MenuModel) ModeID() string {
	if len(m.modes) == 0 {
		return ""
	}
	return m.modes[m.mode].ID
}

// ModeTitle returns the display name of the selected mode.
func (m MenuModel) ModeTitle() string {
	if len(m.modes) == 0 {
		return "no modes"
	}
	return m.modes[m.mode].Title
}
