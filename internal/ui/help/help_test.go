package help

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelp_New(t *testing.T) {
	m := New()

	titles := make([]string, 0, len(m.Sections()))
	for _, s := range m.Sections() {
		assert.NotEmpty(t, s.Bindings, "section %q has no bindings", s.Title)
		titles = append(titles, s.Title)
	}
	assert.Equal(t, []string{"Navigation", "Tours", "During a tour", "General"}, titles)
}

func TestHelp_SetSize(t *testing.T) {
	m := New().SetSize(120, 40)

	assert.Equal(t, 120, m.width)
	assert.Equal(t, 40, m.height)

	m2 := m.SetSize(80, 24)
	assert.Equal(t, 80, m2.width)
	assert.Equal(t, 120, m.width, "expected original model width unchanged")
}

func TestHelp_View_ContainsKeybindings(t *testing.T) {
	view := ansi.Strip(New().SetSize(100, 24).View())

	for _, want := range []string{"Keybindings", "ctrl+r", "replay tour", "upgrade tour", "skip tour", "next panel", "quit"} {
		assert.Contains(t, view, want)
	}
	assert.Contains(t, view, "Press ? or Esc to close")
}

func TestHelp_View_FillsViewport(t *testing.T) {
	view := New().SetSize(100, 24).View()

	lines := strings.Split(view, "\n")
	require.Len(t, lines, 24)
	for _, line := range lines {
		assert.Equal(t, 100, ansi.StringWidth(line))
	}
}

func TestHelp_Overlay_KeepsBackground(t *testing.T) {
	bg := strings.Repeat(strings.Repeat("#", 100)+"\n", 23) + strings.Repeat("#", 100)

	view := New().SetSize(100, 24).Overlay(bg)

	lines := strings.Split(view, "\n")
	require.Len(t, lines, 24)
	assert.Equal(t, strings.Repeat("#", 100), lines[0], "rows above the box are untouched")
	assert.Contains(t, ansi.Strip(view), "Keybindings")
}
