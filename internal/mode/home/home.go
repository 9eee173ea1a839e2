// Package home is the demo screen the tours walk through: reminders,
// memories, challenges, a points balance and an upgrade button.
package home

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/keys"
	"github.com/zjrosen/spotlight/internal/log"
	"github.com/zjrosen/spotlight/internal/mode"
	"github.com/zjrosen/spotlight/internal/mode/shared"
	"github.com/zjrosen/spotlight/internal/ui/styles"
)

// Target IDs marked by the home screen.
const (
	TargetReminders  = "home.reminders"
	TargetMemories   = "home.memories"
	TargetChallenges = "home.challenges"
	TargetPoints     = "home.points"
	TargetUpgrade    = "home.upgrade"
)

// Panel identifies a focusable list.
type Panel int

const (
	PanelReminders Panel = iota
	PanelMemories
	PanelChallenges
	panelCount
)

func (p Panel) target() string {
	switch p {
	case PanelMemories:
		return TargetMemories
	case PanelChallenges:
		return TargetChallenges
	default:
		return TargetReminders
	}
}

// UpgradeRequestedMsg is sent when the upgrade button is clicked.
type UpgradeRequestedMsg struct{}

type reminder struct {
	title string
	due   time.Duration // from now
}

type memory struct {
	title string
	ago   time.Duration
}

type challenge struct {
	title  string
	points int64
	done   bool
}

// Model is the home screen.
type Model struct {
	services mode.Services
	keys     keys.AppKeyMap
	clock    shared.Clock

	width  int
	height int

	focus  Panel
	cursor [panelCount]int

	points     int64
	reminders  []reminder
	memories   []memory
	challenges []challenge
}

var _ mode.Controller = Model{}

// New creates the home screen with sample data.
func New(services mode.Services) Model {
	clock := services.Clock
	if clock == nil {
		clock = shared.RealClock{}
	}
	return Model{
		services: services,
		keys:     keys.DefaultAppKeyMap(),
		clock:    clock,
		points:   1240,
		reminders: []reminder{
			{title: "Call Sam about the weekend", due: 2 * time.Hour},
			{title: "Anniversary dinner booking", due: 3 * 24 * time.Hour},
			{title: "Pick up flowers", due: 26 * time.Hour},
		},
		memories: []memory{
			{title: "Beach trip", ago: 3 * 24 * time.Hour},
			{title: "First concert together", ago: 45 * 24 * time.Hour},
			{title: "Sunday pancakes", ago: 20 * time.Minute},
		},
		challenges: []challenge{
			{title: "Plan a surprise", points: 150},
			{title: "Cook a new recipe", points: 80},
			{title: "Write a note", points: 40, done: true},
		},
	}
}

// Init implements mode.Controller.
func (m Model) Init() tea.Cmd {
	return nil
}

// Targets implements mode.Controller.
func (m Model) Targets() []string {
	return []string{TargetReminders, TargetMemories, TargetChallenges, TargetPoints, TargetUpgrade}
}

// Focus returns the focused panel.
func (m Model) Focus() Panel {
	return m.focus
}

// Points returns the points balance.
func (m Model) Points() int64 {
	return m.points
}

// SetSize implements mode.Controller.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	return m
}

// Update implements mode.Controller.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.SetSize(msg.Width, msg.Height), nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Focus):
		m.focus = (m.focus + 1) % panelCount
	case key.Matches(msg, m.keys.Up):
		m.cursor[m.focus] = max(m.cursor[m.focus]-1, 0)
	case key.Matches(msg, m.keys.Down):
		m.cursor[m.focus] = min(m.cursor[m.focus]+1, m.rows(m.focus)-1)
	case msg.String() == "enter" || msg.String() == " ":
		if m.focus == PanelChallenges {
			m = m.toggleChallenge(m.cursor[PanelChallenges])
		}
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (mode.Controller, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if m.hit(TargetUpgrade, msg.X, msg.Y) {
		return m, func() tea.Msg { return UpgradeRequestedMsg{} }
	}
	for p := range panelCount {
		rect, ok := m.rect(p.target())
		if !ok || !rect.Contains(msg.X, msg.Y) {
			continue
		}
		m.focus = p
		// Rows start below the panel's top border.
		if row := msg.Y - rect.Y - 1; row >= 0 && row < m.rows(p) {
			m.cursor[p] = row
			if p == PanelChallenges {
				m = m.toggleChallenge(row)
			}
		}
		return m, nil
	}
	return m, nil
}

func (m Model) toggleChallenge(i int) Model {
	if i < 0 || i >= len(m.challenges) {
		return m
	}
	// Copy so earlier model values keep their own slice.
	challenges := make([]challenge, len(m.challenges))
	copy(challenges, m.challenges)
	c := &challenges[i]
	c.done = !c.done
	if c.done {
		m.points += c.points
	} else {
		m.points -= c.points
	}
	m.challenges = challenges
	log.Debug(log.CatUI, "challenge toggled", "title", c.title, "done", c.done, "points", m.points)
	return m
}

func (m Model) rows(p Panel) int {
	switch p {
	case PanelMemories:
		return len(m.memories)
	case PanelChallenges:
		return len(m.challenges)
	default:
		return len(m.reminders)
	}
}

func (m Model) rect(id string) (geometry.Rect, bool) {
	if m.services.Layout == nil {
		return geometry.Rect{}, false
	}
	return m.services.Layout.Measure(id)
}

func (m Model) hit(id string, x, y int) bool {
	r, ok := m.rect(id)
	return ok && r.Contains(x, y)
}

func (m Model) mark(id, s string) string {
	if m.services.Layout == nil {
		return s
	}
	return m.services.Layout.Mark(id, s)
}

// View implements mode.Controller.
func (m Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}

	header := m.renderHeader()

	panelH := min(max(m.height-6, 5), 10)
	panels := m.renderPanels(panelH)

	upgrade := m.mark(TargetUpgrade, styles.PrimaryButtonStyle.Render("Upgrade to Plus"))
	footer := lipgloss.NewStyle().PaddingLeft(1).Render(upgrade)

	return lipgloss.JoinVertical(lipgloss.Left, header, "", panels, "", footer)
}

func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.AccentColor).Render("spotlight")
	subtitle := lipgloss.NewStyle().Foreground(styles.TextMutedColor).Render(" · relationship tracker")
	points := m.mark(TargetPoints, lipgloss.NewStyle().Bold(true).Foreground(styles.PointsColor).Render(styles.FormatPoints(m.points)))

	left := " " + title + subtitle
	if lipgloss.Width(left)+lipgloss.Width(points)+2 > m.width {
		left = " " + title
	}
	gap := max(m.width-lipgloss.Width(left)-lipgloss.Width(points)-1, 1)
	return left + strings.Repeat(" ", gap) + points
}

func (m Model) renderPanels(height int) string {
	now := m.clock.Now()

	reminders := make([]string, len(m.reminders))
	for i, r := range m.reminders {
		reminders[i] = fmt.Sprintf("%s · %s", r.title, shared.Until(m.clock, now.Add(r.due)))
	}
	memories := make([]string, len(m.memories))
	for i, mem := range m.memories {
		memories[i] = fmt.Sprintf("%s · %s", mem.title, shared.Ago(m.clock, now.Add(-mem.ago)))
	}
	challenges := make([]string, len(m.challenges))
	for i, c := range m.challenges {
		box := "[ ]"
		if c.done {
			box = "[x]"
		}
		challenges[i] = fmt.Sprintf("%s %s +%d", box, c.title, c.points)
	}

	lists := [panelCount][]string{reminders, memories, challenges}
	titles := [panelCount]string{"Reminders", "Memories", "Challenges"}

	if m.width >= 72 {
		w := m.width / int(panelCount)
		rendered := make([]string, panelCount)
		for p := range panelCount {
			rendered[p] = m.renderPanel(p, titles[p], lists[p], w, height)
		}
		return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
	}

	// Narrow terminals stack the panels.
	h := max(len(m.reminders)+2, 3)
	rendered := make([]string, panelCount)
	for p := range panelCount {
		rendered[p] = m.renderPanel(p, titles[p], lists[p], m.width, h)
	}
	return lipgloss.JoinVertical(lipgloss.Left, rendered...)
}

func (m Model) renderPanel(p Panel, title string, items []string, width, height int) string {
	inner := max(width-2, 1)
	lines := make([]string, len(items))
	for i, item := range items {
		line := styles.TruncateString(item, inner)
		if p == m.focus && i == m.cursor[p] {
			line = lipgloss.NewStyle().Reverse(true).Render(line)
		}
		lines[i] = line
	}
	panel := styles.RenderPanel(strings.Join(lines, "\n"), title, width, height, p == m.focus, styles.TextPrimaryColor)
	return m.mark(p.target(), panel)
}
