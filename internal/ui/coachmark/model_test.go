package coachmark

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/pubsub"
	"github.com/zjrosen/spotlight/internal/testutil"
	"github.com/zjrosen/spotlight/internal/tour"
)

const (
	viewW = 60
	viewH = 20
)

func newTestModel(t *testing.T, mutate ...func(*Config)) (Model, *tour.Service) {
	t.Helper()
	svc := tour.NewService(tour.NewMemoryStore())
	t.Cleanup(svc.Close)

	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	for _, fn := range mutate {
		fn(&cfg)
	}
	return New(svc, nil, cfg).SetSize(viewW, viewH), svc
}

func background() string {
	rows := make([]string, viewH)
	for i := range rows {
		rows[i] = strings.Repeat(".", viewW)
	}
	return strings.Join(rows, "\n")
}

func started(t *testing.T, m Model, svc *tour.Service, tr tour.Tour) Model {
	t.Helper()
	require.True(t, svc.Start(tr))
	m, _ = m.Sync()
	return m
}

func press(m Model, s string) Model {
	var msg tea.KeyMsg
	switch s {
	case "right":
		msg = tea.KeyMsg{Type: tea.KeyRight}
	case "left":
		msg = tea.KeyMsg{Type: tea.KeyLeft}
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		msg = tea.KeyMsg{Type: tea.KeyEsc}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
	m, _ = m.Update(msg)
	return m
}

func click(m Model, x, y int) Model {
	m, _ = m.Update(tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft})
	return m
}

func TestModel_IdleViewReturnsBackground(t *testing.T) {
	m, _ := newTestModel(t)

	bg := background()
	assert.Equal(t, bg, m.View(bg))
	assert.False(t, m.Showing())
	assert.Equal(t, HitPassThrough, m.HitTest(0, 0))
}

func TestModel_SyncShowsStartedTour(t *testing.T) {
	m, svc := newTestModel(t)

	m = started(t, m, svc, testutil.DemoTour())

	assert.True(t, m.Showing())
	assert.Equal(t, 0, m.Frame().Index)
	assert.Equal(t, 3, m.Frame().Total)
	assert.InDelta(t, 1.0, m.Progress(), 0.0001)
}

func TestModel_SyncFromBrokerEvent(t *testing.T) {
	m, svc := newTestModel(t)
	require.True(t, svc.Start(testutil.DemoTour()))

	m, _ = m.Update(pubsub.Event[tour.Event]{Type: pubsub.CreatedEvent, Payload: tour.Event{Kind: tour.EventTourStarted}})

	assert.True(t, m.Showing())
}

func TestModel_KeysDriveTour(t *testing.T) {
	m, svc := newTestModel(t)
	m = started(t, m, svc, testutil.DemoTour())

	m = press(m, "right")
	assert.Equal(t, 1, svc.State().Index)
	assert.Equal(t, 1, m.Frame().Index)

	m = press(m, "left")
	assert.Equal(t, 0, m.Frame().Index)

	m = press(m, "left")
	assert.Equal(t, 0, m.Frame().Index, "back stops at the first step")

	m = press(m, "esc")
	assert.False(t, svc.Active())
	assert.False(t, m.Showing(), "no fade means the overlay disappears at once")
}

func TestModel_EnterOnLastStepFinishes(t *testing.T) {
	finished := 0
	tr := testutil.NewTour("k").WithSteps(2).OnFinish(func() { finished++ }).Build()
	m, svc := newTestModel(t)
	m = started(t, m, svc, tr)

	m = press(m, "enter")
	m = press(m, "enter")

	assert.False(t, svc.Active())
	assert.Equal(t, 1, finished)
	assert.False(t, m.Showing())
}

func TestModel_Intercepts(t *testing.T) {
	m, svc := newTestModel(t)

	assert.False(t, m.Intercepts(tea.KeyMsg{Type: tea.KeyRight}), "nothing is consumed while idle")

	m = started(t, m, svc, testutil.DemoTour())

	assert.True(t, m.Intercepts(tea.KeyMsg{Type: tea.KeyRight}))
	assert.True(t, m.Intercepts(tea.KeyMsg{Type: tea.KeyEsc}))
	assert.False(t, m.Intercepts(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}))
	assert.False(t, m.Intercepts(tea.KeyMsg{Type: tea.KeyCtrlR}))
	assert.False(t, m.Intercepts(tea.WindowSizeMsg{Width: 1, Height: 1}))
	assert.True(t, m.Intercepts(tea.MouseMsg{X: 0, Y: 0}), "backdrop absorbs the pointer")
}

func TestModel_ViewRendersCard(t *testing.T) {
	m, svc := newTestModel(t)
	m = started(t, m, svc, testutil.DemoTour())

	view := ansi.Strip(zone.Scan(m.View(background())))

	assert.Contains(t, view, "Welcome")
	assert.Contains(t, view, "A quick look around.")
	assert.Contains(t, view, "1/3")
	assert.Contains(t, view, "Skip")
	assert.Contains(t, view, "Next")
	assert.NotContains(t, view, "Back", "no Back on the first step")
	assert.Len(t, strings.Split(view, "\n"), viewH)
}

func TestModel_ViewLastStepShowsDone(t *testing.T) {
	m, svc := newTestModel(t)
	m = started(t, m, svc, testutil.DemoTour())
	m = press(m, "right")
	m = press(m, "right")

	view := ansi.Strip(zone.Scan(m.View(background())))

	assert.Contains(t, view, "3/3")
	assert.Contains(t, view, "Back")
	assert.Contains(t, view, "Done")
	assert.NotContains(t, view, "Next")
}

func TestModel_ViewWrapsLongText(t *testing.T) {
	text := strings.Repeat("lorem ipsum ", 20)
	tr := testutil.NewTour("").WithStep("s", testutil.Text(text)).Build()
	m, svc := newTestModel(t)
	m = started(t, m, svc, tr)

	l := m.Layout()
	view := ansi.Strip(zone.Scan(m.View(background())))

	lines := strings.Split(view, "\n")
	require.Len(t, lines, viewH)
	for _, line := range lines {
		assert.LessOrEqual(t, ansi.StringWidth(line), viewW)
	}
	assert.Greater(t, l.Card.Height, 5, "wrapped body grows the card")
}

func TestModel_HoleAroundRegisteredTarget(t *testing.T) {
	m, svc := newTestModel(t)
	svc.Register("btn", geometry.Rect{X: 10, Y: 5, Width: 6, Height: 1})
	m = started(t, m, svc, testutil.DemoTour())
	m = press(m, "right")

	l := m.Layout()
	require.True(t, l.HasHole)
	assert.Equal(t, geometry.Rect{X: 9, Y: 4, Width: 8, Height: 3}, l.Hole)
	assert.Equal(t, geometry.PlacementBottom, l.Placement)

	assert.Equal(t, HitPassThrough, m.HitTest(12, 5))
	assert.Equal(t, HitPassThrough, m.HitTest(9, 4), "hole edges are inside")
	assert.Equal(t, HitBackdrop, m.HitTest(17, 5), "right edge is outside")
	assert.Equal(t, HitBackdrop, m.HitTest(0, 0))
	assert.Equal(t, HitCard, m.HitTest(l.Card.X+1, l.Card.Y+1))

	assert.False(t, m.Intercepts(tea.MouseMsg{X: 12, Y: 5}), "clicks in the hole reach the screen")
}

func TestModel_CardWinsWhereItOverlapsHole(t *testing.T) {
	m, svc := newTestModel(t)
	svc.Register("btn", geometry.Rect{X: 10, Y: 1, Width: 6, Height: 1})
	tr := testutil.NewTour("").WithStep("top", testutil.Target("btn"), testutil.Text("Up here"), testutil.Placement(geometry.PlacementTop)).Build()
	m = started(t, m, svc, tr)

	l := m.Layout()
	require.True(t, l.HasHole)
	require.Equal(t, geometry.PlacementTop, l.Placement)

	x, y := l.Hole.X, max(l.Hole.Y, l.Card.Y)
	require.True(t, l.PassThrough(x, y))
	require.True(t, l.Card.Contains(x, y))
	assert.Equal(t, HitCard, m.HitTest(x, y))
	assert.True(t, m.Intercepts(tea.MouseMsg{X: x, Y: y}))
}

func TestModel_HoleKeepsTargetContent(t *testing.T) {
	m, svc := newTestModel(t, func(c *Config) { c.Ring = false })
	svc.Register("btn", geometry.Rect{X: 10, Y: 5, Width: 6, Height: 1})
	m = started(t, m, svc, testutil.DemoTour())
	m = press(m, "right")

	rows := strings.Split(background(), "\n")
	rows[5] = rows[5][:10] + "BUTTON" + rows[5][16:]
	view := ansi.Strip(zone.Scan(m.View(strings.Join(rows, "\n"))))

	assert.Contains(t, strings.Split(view, "\n")[5], "BUTTON")
}

func TestModel_RingDrawnOnHole(t *testing.T) {
	m, svc := newTestModel(t)
	svc.Register("btn", geometry.Rect{X: 10, Y: 5, Width: 6, Height: 1})
	m = started(t, m, svc, testutil.DemoTour())
	m = press(m, "right")

	lines := strings.Split(ansi.Strip(zone.Scan(m.View(background()))), "\n")

	assert.Equal(t, "╭──────╮", ansi.Cut(lines[4], 9, 17))
	assert.Equal(t, "╰──────╯", ansi.Cut(lines[6], 9, 17))
}

func TestModel_BackdropClickAdvances(t *testing.T) {
	m, svc := newTestModel(t)
	m = started(t, m, svc, testutil.DemoTour())

	m = click(m, 0, 0)

	assert.Equal(t, 1, svc.State().Index)
	assert.Equal(t, 1, m.Frame().Index)
}

func TestModel_BackdropClickRespectsStep(t *testing.T) {
	m, svc := newTestModel(t)
	m = started(t, m, svc, testutil.DemoTour())
	m = press(m, "right")
	m = press(m, "right")

	m = click(m, 0, 0)

	assert.True(t, svc.Active(), "the last demo step refuses backdrop taps")
	assert.Equal(t, 2, m.Frame().Index)
}

func TestModel_BackdropAdvanceKillSwitch(t *testing.T) {
	m, svc := newTestModel(t, func(c *Config) { c.BackdropAdvance = false })
	m = started(t, m, svc, testutil.DemoTour())

	m = click(m, 0, 0)

	assert.Equal(t, 0, svc.State().Index)
}

func TestModel_NonPressMouseIgnored(t *testing.T) {
	m, svc := newTestModel(t)
	m = started(t, m, svc, testutil.DemoTour())

	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionRelease, Button: tea.MouseButtonLeft})
	m, _ = m.Update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion})

	assert.Equal(t, 0, svc.State().Index)
	assert.True(t, m.Showing())
}

func waitZone(t *testing.T, id string) *zone.ZoneInfo {
	t.Helper()
	var z *zone.ZoneInfo
	// Zone registration is asynchronous via a channel worker in bubblezone.
	require.Eventually(t, func() bool {
		z = zone.Get(id)
		return !z.IsZero()
	}, time.Second, time.Millisecond)
	return z
}

func TestModel_ControlClicks(t *testing.T) {
	m, svc := newTestModel(t)
	m = started(t, m, svc, testutil.DemoTour())

	zone.Scan(m.View(background()))
	next := waitZone(t, m.controlZone(ControlNext))
	assert.Equal(t, HitControl, m.HitTest(next.StartX, next.StartY))

	m = click(m, next.StartX, next.StartY)
	require.Equal(t, 1, svc.State().Index)

	zone.Scan(m.View(background()))
	back := waitZone(t, m.controlZone(ControlBack))
	m = click(m, back.StartX, back.StartY)
	require.Equal(t, 0, svc.State().Index)

	zone.Scan(m.View(background()))
	// Back is gone once this frame has been processed, so Skip is current.
	require.Eventually(t, func() bool {
		return zone.Get(m.controlZone(ControlBack)).IsZero()
	}, time.Second, time.Millisecond)
	skip := waitZone(t, m.controlZone(ControlSkip))
	m = click(m, skip.StartX, skip.StartY)
	assert.False(t, svc.Active())
	assert.False(t, m.Showing())
}

func TestModel_MeasuresStepTarget(t *testing.T) {
	layout := NewLayout()
	defer layout.Close()

	svc := tour.NewService(tour.NewMemoryStore())
	defer svc.Close()
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	cfg.Poller = tour.Poller{Attempts: 200, Interval: 2 * time.Millisecond}
	m := New(svc, layout, cfg).SetSize(viewW, viewH)

	tr := testutil.NewTour("").WithStep("only", testutil.Target("btn"), testutil.Text("Press")).Build()
	require.True(t, svc.Start(tr))
	m.frame = svc.State()
	m.showing = true

	m, cmd := m.measure()
	require.NotNil(t, cmd)
	layout.Scan("\n   " + layout.Mark("btn", "[ok]"))

	msg := cmd()
	measured, ok := msg.(TargetMeasuredMsg)
	require.True(t, ok)
	require.True(t, measured.OK)

	m, _ = m.Update(msg)
	rect, found := svc.Lookup("btn")
	require.True(t, found)
	assert.Equal(t, geometry.Rect{X: 3, Y: 1, Width: 4, Height: 1}, rect)
	assert.True(t, m.Layout().HasHole)
}

func TestModel_VanishedTargetLosesHole(t *testing.T) {
	layout := NewLayout()
	defer layout.Close()

	svc := tour.NewService(tour.NewMemoryStore())
	defer svc.Close()
	cfg := DefaultConfig()
	cfg.FadeDuration = 0
	cfg.Poller = tour.Poller{Attempts: 20, Interval: 2 * time.Millisecond}
	m := New(svc, layout, cfg).SetSize(viewW, viewH)

	layout.Scan("\n   " + layout.Mark("btn", "[ok]"))
	require.Eventually(t, func() bool {
		_, ok := layout.Measure("btn")
		return ok
	}, time.Second, 5*time.Millisecond)
	rect, _ := layout.Measure("btn")
	svc.Register("btn", rect)

	tr := testutil.NewTour("").WithStep("only", testutil.Target("btn"), testutil.Text("Press")).Build()
	m = started(t, m, svc, tr)
	require.True(t, m.Layout().HasHole)

	// The screen re-renders without the target.
	layout.Scan("\n   [ok]")
	require.Eventually(t, func() bool {
		_, ok := layout.Measure("btn")
		return !ok
	}, time.Second, 5*time.Millisecond)

	m, cmd := m.measure()
	require.NotNil(t, cmd)
	layout.Scan("\n   [ok]")

	msg := cmd()
	measured, ok := msg.(TargetMeasuredMsg)
	require.True(t, ok)
	require.False(t, measured.OK)

	m, _ = m.Update(msg)
	_, found := svc.Lookup("btn")
	assert.False(t, found)
	assert.False(t, m.Layout().HasHole)
	assert.Equal(t, HitBackdrop, m.HitTest(4, 1), "old target cells are dimmed again")
}

func TestModel_FailedMeasurementUnregisters(t *testing.T) {
	m, svc := newTestModel(t)
	svc.Register("btn", geometry.Rect{X: 10, Y: 5, Width: 6, Height: 1})
	m = started(t, m, svc, testutil.DemoTour())
	m = press(m, "right")
	require.True(t, m.Layout().HasHole)

	m, _ = m.Update(TargetMeasuredMsg{ID: "btn", OK: false, Gen: m.measureGen})
	assert.False(t, m.Layout().HasHole)
	assert.Equal(t, 0, svc.Registry().Len())
}

func TestModel_RetainDropsUnlistedTargets(t *testing.T) {
	m, svc := newTestModel(t)
	svc.Register("btn", geometry.Rect{X: 10, Y: 5, Width: 6, Height: 1})
	svc.Register("menu", geometry.Rect{X: 0, Y: 0, Width: 4, Height: 1})
	svc.Register("footer", geometry.Rect{X: 0, Y: 19, Width: 10, Height: 1})

	m.Retain([]string{"menu", "gone"})
	assert.Equal(t, []string{"menu"}, svc.Registry().IDs())

	m.Retain(nil)
	assert.Equal(t, 0, svc.Registry().Len())
}

func TestModel_StaleMeasurementDropped(t *testing.T) {
	m, svc := newTestModel(t)
	m = started(t, m, svc, testutil.DemoTour())

	m, _ = m.Update(TargetMeasuredMsg{ID: "btn", Rect: geometry.Rect{Width: 2, Height: 2}, OK: true, Gen: m.measureGen - 1})

	_, found := svc.Lookup("btn")
	assert.False(t, found)
}

func TestModel_FadeAnimation(t *testing.T) {
	now := time.Unix(0, 0)
	m, svc := newTestModel(t, func(c *Config) {
		c.FadeDuration = 100 * time.Millisecond
		c.Clock = func() time.Time { return now }
	})

	require.True(t, svc.Start(testutil.DemoTour()))
	m, cmd := m.Sync()
	require.NotNil(t, cmd)
	assert.Zero(t, m.Progress())
	seq := m.animSeq

	now = now.Add(50 * time.Millisecond)
	m, cmd = m.Update(frameMsg{seq: seq})
	assert.InDelta(t, 0.5, m.Progress(), 0.0001)
	assert.NotNil(t, cmd)

	now = now.Add(60 * time.Millisecond)
	m, cmd = m.Update(frameMsg{seq: seq})
	assert.InDelta(t, 1.0, m.Progress(), 0.0001)
	assert.Nil(t, cmd, "animation stops once complete")

	// Finish from the last step; the exit plays the final snapshot.
	m = press(m, "right")
	m = press(m, "right")
	m = press(m, "right")
	require.False(t, svc.Active())
	assert.True(t, m.Showing())
	assert.Equal(t, 2, m.Frame().Index)
	assert.InDelta(t, 1.0, m.Progress(), 0.0001)

	m, _ = m.Update(frameMsg{seq: seq})
	assert.InDelta(t, 1.0, m.Progress(), 0.0001, "stale frames are ignored")

	now = now.Add(100 * time.Millisecond)
	m, _ = m.Update(frameMsg{seq: m.animSeq})
	assert.False(t, m.Showing())
	assert.Equal(t, background(), m.View(background()))
}

func TestModel_FollowUpTourFromOnFinish(t *testing.T) {
	m, svc := newTestModel(t)
	followUp := testutil.NewTour("second").WithSteps(1).Build()
	first := testutil.NewTour("first").WithSteps(1).OnFinish(func() {
		svc.Start(followUp)
	}).Build()

	m = started(t, m, svc, first)
	firstRun := m.Frame().RunID

	m = press(m, "enter")

	require.True(t, svc.Active())
	assert.True(t, m.Showing())
	assert.Equal(t, "second", m.Frame().Key)
	assert.NotEqual(t, firstRun, m.Frame().RunID)
}

func TestHit_String(t *testing.T) {
	assert.Equal(t, "pass-through", HitPassThrough.String())
	assert.Equal(t, "control", HitControl.String())
	assert.Equal(t, "card", HitCard.String())
	assert.Equal(t, "backdrop", HitBackdrop.String())
}
