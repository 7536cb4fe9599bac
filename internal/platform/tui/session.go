package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-tetris/internal/config"
	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
)

type view int

const (
	viewMenu view = iota
	viewGame
	viewScores
)

// SessionModel manages a full session: menu -> game or scoreboard -> menu.
// The interactive menu command and every SSH connection run one.
type SessionModel struct {
	opts      Options
	config    core.RuntimeConfig
	tetrisCfg config.TetrisConfig

	view   view
	menu   MenuModel
	game   GameModel
	scores ScoreboardModel
	modeID string

	quitting bool
}

// NewSessionModel creates a session starting at the menu with modeID
// preselected.
func NewSessionModel(opts Options, cfg core.RuntimeConfig, tetrisCfg config.TetrisConfig, modeID string) SessionModel {
	return SessionModel{
		opts:      opts,
		config:    cfg,
		tetrisCfg: tetrisCfg,
		menu:      NewMenuModel(cfg, opts.Player, modeID),
		modeID:    modeID,
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update routes messages to the active screen.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.view {
	case viewGame:
		return m.updateGame(msg)
	case viewScores:
		return m.updateScores(msg)
	default:
		return m.updateMenu(msg)
	}
}

func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)
	m.modeID = m.menu.ModeID()

	switch m.menu.Choice() {
	case ChoiceQuit:
		m.quitting = true
		return m, tea.Quit

	case ChoicePlay:
		game, err := registry.Create(m.modeID, m.tetrisCfg)
		if err != nil {
			m.opts.logger().Error("cannot start game", "mode", m.modeID, "error", err)
			m.menu = NewMenuModel(m.config, m.opts.Player, m.modeID)
			return m, nil
		}
		m.game = NewGameModel(game, m.opts, m.config)
		m.view = viewGame
		return m, m.game.Init()

	case ChoiceScores:
		m.scores = NewScoreboardModel(m.opts.Store, m.opts.Player, m.config.ScreenW, m.config.ScreenH).
			WithClear(m.opts.AllowClear)
		m.view = viewScores
		return m, m.scores.Init()
	}

	return m, cmd
}

func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.game.Update(msg)
	m.game = next.(GameModel)

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.toMenu()
	}
	return m, cmd
}

func (m SessionModel) updateScores(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.scores.Update(msg)
	m.scores = next.(ScoreboardModel)

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		return m.toMenu()
	}
	return m, cmd
}

// toMenu returns to the menu. The game's pending tick lands in the menu,
// which ignores it, and that stops the game's clock.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.config, m.opts.Player, m.modeID)
	return m, m.menu.Init()
}

// View renders the active screen.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}
	switch m.view {
	case viewGame:
		return m.game.View()
	case viewScores:
		return m.scores.View()
	default:
		return m.menu.View()
	}
}

// RunSession runs a menu session in the current terminal.
func RunSession(opts Options, cfg core.RuntimeConfig, tetrisCfg config.TetrisConfig, modeID string) error {
	p := tea.NewProgram(
		NewSessionModel(opts, cfg, tetrisCfg, modeID),
		tea.WithAltScreen(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
