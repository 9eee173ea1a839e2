// Package help contains the key binding help overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/spotlight/internal/keys"
	"github.com/zjrosen/spotlight/internal/ui/overlay"
	"github.com/zjrosen/spotlight/internal/ui/styles"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.AccentColor).
			PaddingLeft(2)

	dividerStyle = lipgloss.NewStyle().
			Foreground(styles.BorderFocusColor)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(styles.AccentColor).
			MarginTop(1)

	keyStyle = lipgloss.NewStyle().
			Foreground(styles.TextSecondaryColor).
			Width(11)

	descStyle = lipgloss.NewStyle().
			Foreground(styles.TextPrimaryColor)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(styles.BorderFocusColor)

	contentStyle = lipgloss.NewStyle().
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(styles.TextMutedColor).
			MarginTop(1)
)

// Section is a titled group of bindings.
type Section struct {
	Title    string
	Bindings []key.Binding
}

// Model holds the help view state.
type Model struct {
	sections []Section
	width    int
	height   int
}

// New creates the help view for the home screen and the tour controls.
func New() Model {
	app := keys.DefaultAppKeyMap()
	tour := keys.DefaultTourKeyMap()
	full := app.FullHelp()
	return Model{
		sections: []Section{
			{Title: "Navigation", Bindings: full[0]},
			{Title: "Tours", Bindings: full[1]},
			{Title: "During a tour", Bindings: tour.ShortHelp()},
			{Title: "General", Bindings: full[2]},
		},
	}
}

// Sections returns the groups shown.
func (m Model) Sections() []Section {
	return m.sections
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help overlay (standalone, no background).
func (m Model) View() string {
	return m.Overlay("")
}

// Overlay renders the help box on top of a background view.
func (m Model) Overlay(background string) string {
	helpBox := m.renderContent()

	if background == "" {
		return lipgloss.Place(
			m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			helpBox,
		)
	}

	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, helpBox, background)
}

func (m Model) renderContent() string {
	columnStyle := lipgloss.NewStyle().MarginRight(4)

	cols := make([]string, len(m.sections))
	for i, s := range m.sections {
		var col strings.Builder
		col.WriteString(sectionStyle.Render(s.Title))
		col.WriteString("\n")
		for _, b := range s.Bindings {
			col.WriteString(renderBinding(b))
		}
		if i < len(m.sections)-1 {
			cols[i] = columnStyle.Render(col.String())
		} else {
			cols[i] = col.String()
		}
	}

	columns := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	boxWidth := lipgloss.Width(columns) + 4

	body := contentStyle.Render(columns + "\n" + footerStyle.Render("Press ? or Esc to close"))
	divider := dividerStyle.Render(strings.Repeat("─", boxWidth))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings"))
	content.WriteString("\n")
	content.WriteString(divider)
	content.WriteString("\n")
	content.WriteString(body)

	return boxStyle.Width(boxWidth).Render(content.String())
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
