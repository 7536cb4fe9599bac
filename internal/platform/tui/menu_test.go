package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-tetris/internal/core"
	"github.com/vovakirdan/tui-tetris/internal/games/tetris"
)

func menuKey(t *testing.T, m MenuModel, msg tea.KeyMsg) MenuModel {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(MenuModel)
}

func TestMenuPreselectsMode(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "ada", tetris.ModeHard)
	assert.Equal(t, tetris.ModeHard, m.ModeID())
	assert.Equal(t, "Tetris (Hard)", m.ModeTitle())
	assert.Contains(t, m.View(), "Play  ◂ Tetris (Hard) ▸")
	assert.Contains(t, m.View(), "player: ada")
}

func TestMenuCyclesModes(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "ada", tetris.ModeNormal)
	require.Equal(t, tetris.ModeNormal, m.ModeID())

	// Modes are listed by ID: tetris, tetris_easy, tetris_fixed, tetris_hard.
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, tetris.ModeEasy, m.ModeID())

	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, tetris.ModeHard, m.ModeID(), "left wraps around")
}

func TestMenuChoices(t *testing.T) {
	tests := []struct {
		name string
		keys []tea.KeyMsg
		want MenuChoice
	}{
		{"play", []tea.KeyMsg{{Type: tea.KeyEnter}}, ChoicePlay},
		{"scores", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyEnter}}, ChoiceScores},
		{"quit entry", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}}, ChoiceQuit},
		{"cursor stops at the end", []tea.KeyMsg{{Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyDown}, {Type: tea.KeyEnter}}, ChoiceQuit},
		{"cursor stops at the top", []tea.KeyMsg{{Type: tea.KeyUp}, {Type: tea.KeyEnter}}, ChoicePlay},
		{"q", []tea.KeyMsg{runeKey('q')}, ChoiceQuit},
		{"esc", []tea.KeyMsg{{Type: tea.KeyEsc}}, ChoiceQuit},
		{"nothing yet", []tea.KeyMsg{{Type: tea.KeyDown}}, ChoiceNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMenuModel(core.DefaultConfig(), "ada", tetris.ModeNormal)
			for _, k := range tt.keys {
				m = menuKey(t, m, k)
			}
			assert.Equal(t, tt.want, m.Choice())
		})
	}
}

func TestMenuControlsScreen(t *testing.T) {
	m := NewMenuModel(core.DefaultConfig(), "ada", tetris.ModeNormal)
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ChoiceNone, m.Choice())
	view := m.View()
	assert.Contains(t, view, "CONTROLS")
	assert.Contains(t, view, "hard drop")

	m = menuKey(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ChoiceNone, m.Choice(), "esc leaves the controls screen only")
	assert.NotContains(t, m.View(), "CONTROLS")
}
