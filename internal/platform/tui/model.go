package tui

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/registry"
	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// storeTimeout bounds every score store call made from the UI.
const storeTimeout = 3 * time.Second

// Options carries the collaborators shared by every model in a session.
type Options struct {
	Store  storage.ScoreStore // nil disables score saving
	Player string
	Logger *log.Logger

	// AllowClear enables deleting every score from the scoreboard. Local
	// sessions only: SSH players share one board.
	AllowClear bool
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.New(io.Discard)
}

// resizer is implemented by games that can relayout without a reset.
type resizer interface {
	Resize(w, h int)
}

type highScoreMsg struct {
	score int
	err   error
}

type scoreSavedMsg struct {
	round int // game the save belongs to
	entry storage.Entry
	rank  int
	err   error
}

// GameModel runs one game: it feeds key presses to the game as input
// frames, steps it on a fixed clock and saves the score when it ends.
type GameModel struct {
	game   registry.Game
	screen *core.Screen
	opts   Options
	config core.RuntimeConfig
	keys   GameKeyMap
	help   help.Model

	input     core.InputFrame
	gameState core.GameState

	highScore  int
	round      int  // counts restarts; tags save results
	scoreSaved bool // set once per finished game
	saved      *storage.Entry
	rank       int
	saveErr    error

	quitting   bool
	backToMenu bool
}

// NewGameModel creates a model for game. cfg describes the whole terminal;
// the bottom row is kept for the status line.
func NewGameModel(game registry.Game, opts Options, cfg core.RuntimeConfig) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	cfg.ScreenH = max(cfg.ScreenH-1, 1)

	return GameModel{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		opts:   opts,
		config: cfg,
		keys:   DefaultGameKeyMap(),
		help:   help.New(),
	}
}

// Init starts the game and the tick loop.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.opts.logger().Debug("game started", "mode", m.game.ID(), "seed", m.config.Seed)
	return tea.Batch(tickCmd(m.config.TickRate), m.loadHighScore())
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case highScoreMsg:
		if msg.err != nil {
			m.opts.logger().Warn("could not load high score", "error", msg.err)
			return m, nil
		}
		m.highScore = max(m.highScore, msg.score)
		return m, nil

	case scoreSavedMsg:
		return m.handleSaved(msg)
	}

	return m, nil
}

func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch action := m.keys.Action(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if m.gameState.GameOver || m.gameState.Paused {
			m.backToMenu = true
		}
	case core.ActionNone:
	default:
		m.input.Set(action)
	}
	return m, nil
}

func (m GameModel) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = max(msg.Height-1, 1)
	m.screen.Resize(m.config.ScreenW, m.config.ScreenH)
	m.help.Width = msg.Width

	if r, ok := m.game.(resizer); ok {
		r.Resize(m.config.ScreenW, m.config.ScreenH)
	}
	return m, nil
}

func (m GameModel) handleTick() (tea.Model, tea.Cmd) {
	wasOver := m.gameState.GameOver

	result := m.game.Step(m.input)
	m.input.Clear()
	m.gameState = result.State

	// Restarted after game over.
	if wasOver && !m.gameState.GameOver {
		m.round++
		m.scoreSaved = false
		m.saved = nil
		m.rank = 0
		m.saveErr = nil
	}

	logger := m.opts.logger()
	if result.LevelUp {
		logger.Debug("level up", "level", m.gameState.Level, "lines", m.gameState.Lines)
	}

	cmds := []tea.Cmd{tickCmd(m.config.TickRate)}
	if m.gameState.GameOver && !m.scoreSaved {
		m.scoreSaved = true
		logger.Info("game over",
			"player", m.opts.Player,
			"score", m.gameState.Score,
			"level", m.gameState.Level,
			"lines", m.gameState.Lines,
		)
		if m.gameState.Score > 0 {
			cmds = append(cmds, m.saveScore())
		}
	}
	m.highScore = max(m.highScore, m.gameState.Score)

	return m, tea.Batch(cmds...)
}

func (m GameModel) handleSaved(msg scoreSavedMsg) (tea.Model, tea.Cmd) {
	if msg.round != m.round {
		// Finished after a restart; the new game has its own status.
		m.opts.logger().Debug("stale score result", "round", msg.round, "error", msg.err)
		return m, nil
	}
	if msg.err != nil {
		m.saveErr = msg.err
		m.opts.logger().Error("could not save score", "error", msg.err)
		return m, nil
	}
	entry := msg.entry
	m.saved = &entry
	m.rank = msg.rank
	m.opts.logger().Info("score saved", "player", entry.Player, "score", entry.Score, "rank", msg.rank)
	return m, nil
}

// loadHighScore reads the best stored score in the background.
func (m GameModel) loadHighScore() tea.Cmd {
	store := m.opts.Store
	if store == nil {
		return nil
	}
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		score, err := store.HighScore(ctx)
		return highScoreMsg{score: score, err: err}
	}
}

// saveScore stores the finished game and looks up the player's rank.
func (m GameModel) saveScore() tea.Cmd {
	store := m.opts.Store
	if store == nil {
		return nil
	}
	entry := storage.Entry{
		Player: m.opts.Player,
		Score:  m.gameState.Score,
		Level:  m.gameState.Level,
		Lines:  m.gameState.Lines,
	}
	round := m.round
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		saved, err := store.Save(ctx, entry)
		if err != nil {
			return scoreSavedMsg{round: round, err: err}
		}
		rank, err := store.Rank(ctx, saved.Player)
		return scoreSavedMsg{round: round, entry: saved, rank: rank, err: err}
	}
}

// View renders the game screen and the status line.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + m.statusLine()
}

func (m GameModel) statusLine() string {
	switch {
	case m.saveErr != nil:
		return errorStyle.Render("score not saved: " + m.saveErr.Error())
	case m.saved != nil && m.rank > 0:
		return titleStyle.Render(fmt.Sprintf("%s scored %s - rank #%d", m.saved.Player, humanize.Comma(int64(m.saved.Score)), m.rank)) +
			dimStyle.Render("   r restart · esc menu · q quit")
	case m.gameState.GameOver:
		return dimStyle.Render("r restart · esc menu · q quit")
	}
	high := dimStyle.Render(fmt.Sprintf("HIGH %s  ", humanize.Comma(int64(m.highScore))))
	return high + m.help.View(m.keys)
}

// IsQuitting returns true if the user asked to quit.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user asked to leave the game.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// GameState returns the state after the last step.
func (m GameModel) GameState() core.GameState {
	return m.gameState
}

// Run plays a single game in the current terminal until the user quits or
// leaves it.
func Run(game registry.Game, opts Options, cfg core.RuntimeConfig) error {
	p := tea.NewProgram(
		standaloneGame{NewGameModel(game, opts, cfg)},
		tea.WithAltScreen(),
	)
	_, err := p.Run()
	if err != nil {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}

// standaloneGame ends the program when the game asks for the menu.
type standaloneGame struct {
	GameModel
}

func (s standaloneGame) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := s.GameModel.Update(msg)
	s.GameModel = next.(GameModel)
	if s.BackToMenu() {
		return s, tea.Quit
	}
	return s, cmd
}
