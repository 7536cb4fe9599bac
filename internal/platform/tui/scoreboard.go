package tui

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/vovakirdan/tui-tetris/internal/storage"
)

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up      key.Binding
	Down    key.Binding
	Refresh key.Binding
	Clear   key.Binding
	Confirm key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Refresh, k.Clear, k.Back, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Refresh},
		{k.Clear, k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Clear: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "clear all"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "confirm"),
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

type scoresLoadedMsg struct {
	entries []storage.Entry
	rank    int
	err     error
}

type scoresClearedMsg struct {
	err error
}

// ScoreboardModel shows the leaderboard in a table.
type ScoreboardModel struct {
	store  storage.ScoreStore
	player string
	now    func() time.Time

	entries []storage.Entry
	rank    int // player's position, 0 if unranked
	err     error
	loaded  bool

	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	width      int
	height     int
	confirming bool // waiting for the clear confirmation

	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard for store. player's rank is shown
// under the table. Clearing is off until WithClear(true).
func NewScoreboardModel(store storage.ScoreStore, player string, width, height int) ScoreboardModel {
	m := ScoreboardModel{
		store:  store,
		player: player,
		now:    time.Now,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	return m.WithClear(false)
}

// WithClear returns m with the clear-all keys enabled or disabled.
func (m ScoreboardModel) WithClear(allow bool) ScoreboardModel {
	m.keys.Clear.SetEnabled(allow)
	m.keys.Confirm.SetEnabled(allow)
	return m
}

func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Player", Width: storage.MaxPlayerLen + 2},
		{Title: "Score", Width: 11},
		{Title: "Level", Width: 6},
		{Title: "Lines", Width: 6},
		{Title: "Played", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(min(storage.DefaultLimit+1, max(m.height-8, 3))),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// Init loads the scores.
func (m ScoreboardModel) Init() tea.Cmd {
	return m.load()
}

func (m ScoreboardModel) load() tea.Cmd {
	store, player := m.store, m.player
	return func() tea.Msg {
		if store == nil {
			return scoresLoadedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		entries, err := store.Top(ctx, storage.DefaultLimit)
		if err != nil {
			return scoresLoadedMsg{err: err}
		}
		rank, err := store.Rank(ctx, player)
		return scoresLoadedMsg{entries: entries, rank: rank, err: err}
	}
}

func (m ScoreboardModel) clear() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		if store == nil {
			return scoresClearedMsg{}
		}
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		return scoresClearedMsg{err: store.Clear(ctx)}
	}
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case scoresLoadedMsg:
		m.loaded = true
		m.err = msg.err
		m.entries = msg.entries
		m.rank = msg.rank
		m.updateTableRows()
		return m, nil

	case scoresClearedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		return m, m.load()

	case tea.KeyMsg:
		if m.confirming {
			m.confirming = false
			if key.Matches(msg, m.keys.Confirm) {
				return m, m.clear()
			}
			return m, nil
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, nil
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil
		case key.Matches(msg, m.keys.Refresh):
			return m, m.load()
		case key.Matches(msg, m.keys.Clear):
			if len(m.entries) > 0 {
				m.confirming = true
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.entries))
	for i, e := range m.entries {
		rows[i] = table.Row{
			strconv.Itoa(i + 1),
			e.Player,
			humanize.Comma(int64(e.Score)),
			strconv.Itoa(e.Level),
			strconv.Itoa(e.Lines),
			humanize.RelTime(e.CreatedAt, m.now(), "ago", "from now"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(titleStyle.Render(centerText("HIGH SCORES", m.width)))
	b.WriteString("\n\n")

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	switch {
	case m.err != nil:
		b.WriteString(errorStyle.Render("Could not load scores: " + m.err.Error()))
	case !m.loaded:
		b.WriteString(dimStyle.Render(centerText("Loading...", m.width)))
	case len(m.entries) == 0:
		empty := dimStyle.Italic(true).Padding(1, 4).
			Render("No scores recorded yet.\nPlay a game to set a high score!")
		b.WriteString(centerBlock(box.Render(empty), m.width))
	default:
		b.WriteString(centerBlock(box.Render(m.table.View()), m.width))
	}
	b.WriteString("\n\n")

	if m.loaded && m.err == nil {
		b.WriteString(centerText(m.rankLine(), m.width))
		b.WriteString("\n")
	}
	if m.confirming {
		b.WriteString(errorStyle.Render(centerText("Delete every score? y to confirm", m.width)))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m ScoreboardModel) rankLine() string {
	if m.rank == 0 {
		return dimStyle.Render(fmt.Sprintf("%s has no ranked games yet", storage.NormalizePlayer(m.player)))
	}
	return titleStyle.Render(fmt.Sprintf("%s is ranked #%d", storage.NormalizePlayer(m.player), m.rank))
}

// IsGoingBack returns true if the user wants to go back to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if the user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// centerBlock centers every line of a multi-line block.
func centerBlock(block string, width int) string {
	pad := (width - lipgloss.Width(block)) / 2
	if pad <= 0 {
		return block
	}
	return lipgloss.NewStyle().PaddingLeft(pad).Render(block)
}
