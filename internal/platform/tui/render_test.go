package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-tetris/internal/core"
)

func TestRenderScreen(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawText(0, 0, "ab")
	s.SetCell(2, 0, '█', core.ColorCyan)
	s.SetCell(3, 0, '█', core.ColorCyan)
	s.DrawTextColor(0, 1, "GO", core.ColorAccent)

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("RenderScreen produced %d lines, want 2", len(lines))
	}
	for i, line := range lines {
		if w := lipgloss.Width(line); w != 6 {
			t.Errorf("line %d width = %d, want 6", i, w)
		}
	}
	if !strings.Contains(out, "ab") || !strings.Contains(out, "██") || !strings.Contains(out, "GO") {
		t.Errorf("RenderScreen lost content: %q", out)
	}
}

func TestCenterText(t *testing.T) {
	tests := []struct {
		text  string
		width int
		want  string
	}{
		{"ab", 6, "  ab"},
		{"abc", 6, " abc"},
		{"toolong", 4, "toolong"},
		{"█", 3, " █"},
	}
	for _, tt := range tests {
		if got := centerText(tt.text, tt.width); got != tt.want {
			t.Errorf("centerText(%q, %d) = %q, want %q", tt.text, tt.width, got, tt.want)
		}
	}
}
