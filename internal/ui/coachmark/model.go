// Package coachmark renders the active tour step over a screen: a dimmed
// scrim with a cut-out around the target, an optional highlight ring, and a
// tooltip card with Back, Skip and Next controls.
package coachmark

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/keys"
	"github.com/zjrosen/spotlight/internal/log"
	"github.com/zjrosen/spotlight/internal/pubsub"
	"github.com/zjrosen/spotlight/internal/tour"
	"github.com/zjrosen/spotlight/internal/ui/overlay"
	"github.com/zjrosen/spotlight/internal/ui/styles"
)

// frameInterval paces the fade animation.
const frameInterval = 16 * time.Millisecond

// Hit classifies a cell for pointer routing.
type Hit int

const (
	// HitPassThrough belongs to the screen underneath: the inside of the hole,
	// or anywhere when no tour is showing.
	HitPassThrough Hit = iota
	// HitControl is a card button.
	HitControl
	// HitCard is the card outside its buttons.
	HitCard
	// HitBackdrop is the dimmed scrim.
	HitBackdrop
)

func (h Hit) String() string {
	switch h {
	case HitPassThrough:
		return "pass-through"
	case HitControl:
		return "control"
	case HitCard:
		return "card"
	case HitBackdrop:
		return "backdrop"
	default:
		return "unknown"
	}
}

// Control identifies a card button.
type Control string

const (
	ControlBack Control = "back"
	ControlSkip Control = "skip"
	ControlNext Control = "next"
)

// Config holds rendering and behavior settings.
type Config struct {
	Metrics  geometry.Metrics
	SafeArea geometry.Insets

	FadeDuration time.Duration
	// DimOpacity is how far dimmed text is blended toward the scrim colour.
	DimOpacity float64
	// ScrimColor is a hex colour; empty uses the theme's coach.scrim token.
	ScrimColor string

	// Ring draws the highlight ring around the hole.
	Ring bool
	// BackdropAdvance lets a backdrop click advance steps that allow it.
	BackdropAdvance bool

	Poller tour.Poller

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// DefaultConfig returns the terminal defaults.
func DefaultConfig() Config {
	return Config{
		Metrics:         geometry.TerminalMetrics(),
		FadeDuration:    180 * time.Millisecond,
		DimOpacity:      0.6,
		Ring:            true,
		BackdropAdvance: true,
		Poller:          tour.DefaultPoller(),
	}
}

// Model draws the service's active tour. It is owned by the update goroutine.
type Model struct {
	svc    *tour.Service
	layout *Layout
	cfg    Config
	keys   keys.TourKeyMap
	zoneID string

	width  int
	height int

	// frame is the snapshot being drawn: the live state while a tour runs, the
	// final snapshot while the exit animation plays.
	frame   tour.State
	showing bool
	exiting bool

	progress  float64
	animStart time.Time
	animSeq   int

	measureGen    int
	cancelMeasure context.CancelFunc
}

// New creates a renderer for svc measuring targets through layout.
func New(svc *tour.Service, layout *Layout, cfg Config) Model {
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return Model{
		svc:    svc,
		layout: layout,
		cfg:    cfg,
		keys:   keys.DefaultTourKeyMap(),
		zoneID: zone.NewPrefix(),
	}
}

// SetSize updates the viewport dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// SetConfig replaces the settings, keeping the clock.
func (m Model) SetConfig(cfg Config) Model {
	if cfg.Clock == nil {
		cfg.Clock = m.cfg.Clock
	}
	m.cfg = cfg
	return m
}

// Showing reports whether anything is drawn, including the exit animation.
func (m Model) Showing() bool {
	return m.showing
}

// Progress is the fade position in [0, 1].
func (m Model) Progress() float64 {
	return m.progress
}

// Frame returns the snapshot being drawn.
func (m Model) Frame() tour.State {
	return m.frame
}

// Intercepts reports whether msg belongs to the tour rather than the screen.
// Only tour keys are taken, and mouse events everywhere except inside the hole.
func (m Model) Intercepts(msg tea.Msg) bool {
	if !m.svc.Active() {
		return false
	}
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.keys.Matches(msg)
	case tea.MouseMsg:
		return m.HitTest(msg.X, msg.Y) != HitPassThrough
	}
	return false
}

// Update handles input, service events, measurements and animation frames.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m = m.SetSize(msg.Width, msg.Height)
		if m.svc.Active() {
			return m.measure()
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case pubsub.Event[tour.Event]:
		return m.Sync()

	case TargetMeasuredMsg:
		if msg.Gen != m.measureGen {
			return m, nil
		}
		if !msg.OK {
			// The target is gone; drop any stale rect.
			m.svc.Unregister(msg.ID)
			log.Debug(log.CatRegistry, "target not measured, showing step without a hole", "id", msg.ID)
			return m, nil
		}
		m.svc.Register(msg.ID, msg.Rect)
		return m, nil

	case frameMsg:
		if msg.seq != m.animSeq {
			return m, nil
		}
		return m.advanceAnimation()
	}
	return m, nil
}

// Sync brings the renderer in line with the service. Call it after driving the
// service directly; it is idempotent.
func (m Model) Sync() (Model, tea.Cmd) {
	st := m.svc.State()
	switch {
	case st.Active && (!m.showing || m.exiting || st.RunID != m.frame.RunID):
		m.frame = st
		m.showing = true
		m.exiting = false
		anim := m.startAnimation()
		var measure tea.Cmd
		m, measure = m.measure()
		return m, tea.Batch(anim, measure)

	case st.Active && st.Index != m.frame.Index:
		m.frame = st
		return m.measure()

	case st.Active:
		m.frame = st
		return m, nil

	case m.showing && !m.exiting:
		// m.frame still holds the last active snapshot.
		m.exiting = true
		m.stopMeasuring()
		return m, m.startAnimation()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (Model, tea.Cmd) {
	if !m.svc.Active() {
		return m, nil
	}
	switch {
	case key.Matches(msg, m.keys.Next):
		m.svc.Next()
	case key.Matches(msg, m.keys.Back):
		m.svc.Prev()
	case key.Matches(msg, m.keys.Skip):
		m.svc.Stop()
	default:
		return m, nil
	}
	return m.Sync()
}

func (m Model) handleMouse(msg tea.MouseMsg) (Model, tea.Cmd) {
	if !m.svc.Active() {
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}

	if c, ok := m.controlAt(msg.X, msg.Y); ok {
		switch c {
		case ControlBack:
			m.svc.Prev()
		case ControlSkip:
			m.svc.Stop()
		case ControlNext:
			m.svc.Next()
		}
		return m.Sync()
	}

	if m.HitTest(msg.X, msg.Y) == HitBackdrop && m.cfg.BackdropAdvance && m.frame.Step.BackdropAdvances() {
		m.svc.Next()
		return m.Sync()
	}
	return m, nil
}

// HitTest classifies the cell at (x, y). Card controls need the last frame to
// have gone through zone.Scan. Where the card overlaps the hole (a forced
// top or bottom placement on a target at the screen edge) the card wins.
func (m Model) HitTest(x, y int) Hit {
	if !m.showing {
		return HitPassThrough
	}
	if _, ok := m.controlAt(x, y); ok {
		return HitControl
	}
	l, _ := m.compose()
	switch {
	case l.Card.Contains(x, y):
		return HitCard
	case l.PassThrough(x, y):
		return HitPassThrough
	default:
		return HitBackdrop
	}
}

func (m Model) controlAt(x, y int) (Control, bool) {
	if !m.showing {
		return "", false
	}
	probe := tea.MouseMsg{X: x, Y: y}
	for _, c := range m.controls() {
		if zone.Get(m.controlZone(c)).InBounds(probe) {
			return c, true
		}
	}
	return "", false
}

func (m Model) controls() []Control {
	if m.frame.Index > 0 {
		return []Control{ControlBack, ControlSkip, ControlNext}
	}
	return []Control{ControlSkip, ControlNext}
}

func (m Model) controlZone(c Control) string {
	return m.zoneID + string(c)
}

// Retain unregisters every target not listed in ids. Hosts call it when the
// screen changes so unmounted targets stop producing holes.
func (m Model) Retain(ids []string) {
	keep := make(map[string]bool, len(ids))
	for _, id := range ids {
		keep[id] = true
	}
	for _, id := range m.svc.Registry().IDs() {
		if !keep[id] {
			m.svc.Unregister(id)
		}
	}
}

// Layout resolves the geometry of the current frame.
func (m Model) Layout() geometry.Layout {
	l, _ := m.compose()
	return l
}

// View draws the current frame over background. The background is expected to
// be the screen's view after Layout.Scan.
func (m Model) View(background string) string {
	if !m.showing || m.width <= 0 || m.height <= 0 {
		return background
	}
	l, card := m.compose()

	out := overlay.Spotlight(overlay.Spot{
		Width:     m.width,
		Height:    m.height,
		HasHole:   l.HasHole,
		Hole:      l.Hole,
		Radius:    l.HoleRadius,
		Dim:       lipgloss.NewStyle().Foreground(m.dimColor()),
		Ring:      m.cfg.Ring,
		RingStyle: styles.CoachRingStyle,
	}, background)

	if l.Arrow && l.Card.Y > 0 && !l.Hole.Contains(l.ArrowX, l.Card.Y-1) {
		out = overlay.Place(overlay.Config{
			Width: m.width, Height: m.height,
			Position: overlay.Absolute,
			X:        l.ArrowX,
			Y:        l.Card.Y - 1,
		}, styles.CoachArrowStyle.Render("▲"), out)
	}

	return overlay.Place(overlay.Config{
		Width: m.width, Height: m.height,
		Position: overlay.Absolute,
		X:        l.Card.X,
		Y:        l.Card.Y,
	}, card, out)
}

// compose resolves the layout twice: once for the card width, then with the
// rendered card's height.
func (m Model) compose() (geometry.Layout, string) {
	step := m.frame.Step
	in := geometry.Input{
		Viewport:   geometry.Size{W: m.width, H: m.height},
		SafeArea:   m.cfg.SafeArea,
		Placement:  step.Placement,
		Padding:    step.Padding,
		Radius:     step.Radius,
		EdgeMargin: step.EdgeMargin,
		Metrics:    m.cfg.Metrics,
	}
	if step.TargetID != "" {
		if r, ok := m.svc.Lookup(step.TargetID); ok {
			in.Target = &r
		}
	}

	l := geometry.Resolve(in)
	card := m.renderCard(l.Card.Width)
	in.CardHeight = lipgloss.Height(card)
	return geometry.Resolve(in), card
}

func (m Model) renderCard(width int) string {
	st := m.frame
	inner := max(width-4, 1)

	var sections []string
	if st.Step.Title != "" {
		sections = append(sections, styles.CoachTitleStyle.Render(styles.TruncateString(st.Step.Title, inner)))
	}
	if st.Step.Text != "" {
		sections = append(sections, styles.CoachTextStyle.Render(wordwrap.String(st.Step.Text, inner)))
	}
	sections = append(sections, "", m.renderFooter(inner))

	return styles.CoachCardStyle.
		Width(max(width-2, 1)).
		Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) renderFooter(inner int) string {
	st := m.frame
	progress := styles.CoachProgressStyle.Render(fmt.Sprintf("%d/%d", st.Index+1, st.Total))

	var buttons []string
	for _, c := range m.controls() {
		label, style := "Skip", styles.SecondaryButtonStyle
		switch c {
		case ControlBack:
			label = "Back"
		case ControlNext:
			label, style = "Next", styles.PrimaryButtonStyle
			if st.Last() {
				label = "Done"
			}
		}
		buttons = append(buttons, zone.Mark(m.controlZone(c), style.Render(label)))
	}
	row := strings.Join(buttons, " ")

	gap := inner - lipgloss.Width(progress) - lipgloss.Width(row)
	if gap < 1 {
		return progress + "\n" + row
	}
	return progress + strings.Repeat(" ", gap) + row
}

func (m Model) dimColor() lipgloss.Color {
	scrim := m.cfg.ScrimColor
	if scrim == "" {
		scrim = styles.CoachScrimHex
	}
	base := styles.TextPrimaryColor.Dark
	if !lipgloss.HasDarkBackground() {
		base = styles.TextPrimaryColor.Light
	}
	return overlay.Blend(base, scrim, m.cfg.DimOpacity*m.progress)
}

// measure starts polling for the current step's target, cancelling any poll
// still running for an earlier step.
func (m Model) measure() (Model, tea.Cmd) {
	m.stopMeasuring()
	m.measureGen++
	id := m.frame.Step.TargetID
	if id == "" || m.layout == nil {
		return m, nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelMeasure = cancel
	return m, MeasureCmd(ctx, m.layout.After(m.layout.Scans()), m.cfg.Poller, id, m.measureGen)
}

func (m Model) stopMeasuring() {
	if m.cancelMeasure != nil {
		m.cancelMeasure()
	}
}

// Close cancels any running measurement.
func (m Model) Close() {
	m.stopMeasuring()
}

type frameMsg struct {
	seq int
}

func (m *Model) startAnimation() tea.Cmd {
	m.animSeq++
	m.animStart = m.cfg.Clock()
	if m.cfg.FadeDuration <= 0 {
		m.finishAnimation()
		return nil
	}
	if m.exiting {
		m.progress = 1
	} else {
		m.progress = 0
	}
	return m.tick()
}

func (m Model) advanceAnimation() (Model, tea.Cmd) {
	t := float64(m.cfg.Clock().Sub(m.animStart)) / float64(m.cfg.FadeDuration)
	if t >= 1 {
		m.finishAnimation()
		return m, nil
	}
	t = max(t, 0)
	if m.exiting {
		m.progress = 1 - t
	} else {
		m.progress = t
	}
	return m, m.tick()
}

func (m *Model) finishAnimation() {
	if m.exiting {
		m.progress = 0
		m.showing = false
		m.exiting = false
		m.frame = tour.State{}
		return
	}
	m.progress = 1
}

func (m Model) tick() tea.Cmd {
	seq := m.animSeq
	return tea.Tick(frameInterval, func(time.Time) tea.Msg {
		return frameMsg{seq: seq}
	})
}
