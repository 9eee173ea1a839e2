package logoverlay

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spotlight/internal/log"
)

func entry(level, msg string) log.LogEvent {
	return log.LogEvent{Payload: fmt.Sprintf("2026-10-19T10:45:00 [%s] [tour] %s\n", level, msg)}
}

func visible(t *testing.T) Model {
	t.Helper()
	m := New()
	m.SetSize(100, 30)
	m.Toggle()
	require.True(t, m.Visible())
	return m
}

func TestNew(t *testing.T) {
	m := New()

	require.False(t, m.Visible())
	require.Empty(t, m.View())
	require.Equal(t, log.LevelDebug, m.minLevel)
}

func TestToggle(t *testing.T) {
	m := New()
	m.Toggle()
	require.True(t, m.Visible())
	m.Toggle()
	require.False(t, m.Visible())
}

func TestUpdate_BuffersEntriesWhileHidden(t *testing.T) {
	m := New()

	m, cmd := m.Update(entry("INFO", "tour started"))

	assert.Nil(t, cmd, "no listener, nothing to re-arm")
	require.Len(t, m.Entries(), 1)
	assert.Equal(t, "2026-10-19T10:45:00 [INFO] [tour] tour started", m.Entries()[0])
}

func TestUpdate_BufferIsBounded(t *testing.T) {
	m := New()
	for i := range MaxEntries + 10 {
		m, _ = m.Update(entry("DEBUG", fmt.Sprintf("n=%d", i)))
	}

	require.Len(t, m.Entries(), MaxEntries)
	assert.Contains(t, m.Entries()[0], "n=10")
	assert.Contains(t, m.Entries()[MaxEntries-1], fmt.Sprintf("n=%d", MaxEntries+9))
}

func TestView_ShowsEntries(t *testing.T) {
	m := visible(t)
	m, _ = m.Update(entry("WARN", "store read failed"))

	view := ansi.Strip(m.View())
	assert.Contains(t, view, "Logs")
	assert.Contains(t, view, "store read failed")
	assert.Contains(t, view, "[w] Warn")
}

func TestView_EmptyBuffer(t *testing.T) {
	m := visible(t)
	assert.Contains(t, ansi.Strip(m.View()), "No logs to display")
}

func TestFilterLevels(t *testing.T) {
	m := visible(t)
	m, _ = m.Update(entry("DEBUG", "debug line"))
	m, _ = m.Update(entry("ERROR", "error line"))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("e")})
	view := ansi.Strip(m.View())
	assert.NotContains(t, view, "debug line")
	assert.Contains(t, view, "error line")

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	assert.Contains(t, ansi.Strip(m.View()), "debug line")
}

func TestClear(t *testing.T) {
	m := visible(t)
	m, _ = m.Update(entry("INFO", "something"))

	m, _ = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})

	assert.Empty(t, m.Entries())
}

func TestEscCloses(t *testing.T) {
	m := visible(t)

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.Visible())
	require.NotNil(t, cmd)
	assert.Equal(t, CloseMsg{}, cmd())
}

func TestKeysIgnoredWhileHidden(t *testing.T) {
	m := New()
	m, _ = m.Update(entry("INFO", "kept"))

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})

	assert.Nil(t, cmd)
	assert.Len(t, m.Entries(), 1)
}

func TestOverlay_HiddenReturnsBackground(t *testing.T) {
	m := New()
	assert.Equal(t, "bg", m.Overlay("bg"))
}

func TestMatchesLevel(t *testing.T) {
	m := New()
	m.minLevel = log.LevelWarn

	assert.False(t, m.matchesLevel("x [INFO] [ui] y"))
	assert.True(t, m.matchesLevel("x [WARN] [ui] y"))
	assert.True(t, m.matchesLevel("x [ERROR] [ui] y"))
	assert.True(t, m.matchesLevel("no level at all"))
}

func TestStartListening_ReceivesLogEntries(t *testing.T) {
	var buf bytes.Buffer
	log.InitWriter(&buf)
	defer log.Reset()

	m := New()
	cmd := m.StartListening()
	require.NotNil(t, cmd)
	defer m.StopListening()

	msgs := make(chan tea.Msg, 1)
	go func() { msgs <- cmd() }()

	// The subscription exists before StartListening returns.
	log.Info(log.CatUI, "hello overlay")

	select {
	case msg := <-msgs:
		ev, ok := msg.(log.LogEvent)
		require.True(t, ok)
		assert.Contains(t, ev.Payload, "hello overlay")
	case <-time.After(time.Second):
		t.Fatal("no log event delivered")
	}
}

func TestStartListening_WithoutLogger(t *testing.T) {
	log.Reset()
	m := New()
	assert.Nil(t, m.StartListening())
}
