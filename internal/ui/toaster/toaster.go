// Package toaster shows short-lived notifications above the status bar.
package toaster

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/spotlight/internal/ui/overlay"
	"github.com/zjrosen/spotlight/internal/ui/styles"
)

// DefaultDuration is how long Flash keeps a toast on screen.
const DefaultDuration = 3 * time.Second

// Style determines the icon and border colour of the toast.
type Style int

const (
	StyleSuccess Style = iota
	StyleError
	StyleInfo
	StyleWarn
)

type look struct {
	icon   string
	border lipgloss.TerminalColor
}

// lookFor reads the colour tokens at render time so theme changes apply.
func lookFor(s Style) look {
	switch s {
	case StyleError:
		return look{"✗", styles.ToastBorderErrorColor}
	case StyleInfo:
		return look{"i", styles.ToastBorderInfoColor}
	case StyleWarn:
		return look{"!", styles.ToastBorderWarnColor}
	default:
		return look{"✓", styles.ToastBorderSuccessColor}
	}
}

// Model holds the toaster state.
type Model struct {
	message string
	style   Style
	visible bool
	width   int
	height  int

	// seq identifies the toast a DismissMsg belongs to.
	seq int
}

// New creates a hidden toaster.
func New() Model {
	return Model{}
}

// Show displays a toast until Hide or a newer toast replaces it.
func (m Model) Show(message string, style Style) Model {
	m.message = message
	m.style = style
	m.visible = message != ""
	m.seq++
	return m
}

// Flash shows a toast and schedules its dismissal after d.
func (m Model) Flash(message string, style Style, d time.Duration) (Model, tea.Cmd) {
	m = m.Show(message, style)
	seq := m.seq
	return m, tea.Tick(d, func(time.Time) tea.Msg { return DismissMsg{seq: seq} })
}

// Hide dismisses the toast.
func (m Model) Hide() Model {
	m.visible = false
	m.message = ""
	return m
}

// Update hides the toast when its own DismissMsg arrives. Dismissals for a
// toast that has since been replaced are ignored.
func (m Model) Update(msg tea.Msg) Model {
	if d, ok := msg.(DismissMsg); ok && d.seq == m.seq {
		return m.Hide()
	}
	return m
}

// Visible reports whether a toast is showing.
func (m Model) Visible() bool {
	return m.visible
}

// Message returns the current toast text.
func (m Model) Message() string {
	return m.message
}

// SetSize records the screen size used by View and Overlay.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the toast box, or "" when hidden.
func (m Model) View() string {
	if !m.visible {
		return ""
	}
	l := lookFor(m.style)
	message := m.message
	if m.width > 8 {
		message = styles.TruncateString(message, m.width-8)
	}
	return lipgloss.NewStyle().
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(l.border).
		Render(lipgloss.NewStyle().Bold(true).Foreground(l.border).Render(l.icon) + " " + message)
}

// Overlay draws the toast bottom-centre over bg, one row above the bottom.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Bottom,
		PadY:     1,
	}, m.View(), bg)
}

// DismissMsg hides the toast it was scheduled for.
type DismissMsg struct {
	seq int
}
