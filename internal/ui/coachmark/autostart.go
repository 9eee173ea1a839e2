package coachmark

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/spotlight/internal/log"
	"github.com/zjrosen/spotlight/internal/tour"
)

// DefaultSettleDelay gives the screen time to lay out before a tour starts.
const DefaultSettleDelay = 400 * time.Millisecond

// AutoStartMsg fires a pending auto-start.
type AutoStartMsg struct {
	key string
	gen int
}

// AutoStarter starts a tour once per user when its screen is shown. Mount and
// Update must be called from the update goroutine.
type AutoStarter struct {
	svc   *tour.Service
	tour  tour.Tour
	delay time.Duration

	mounted bool
	gen     int
	cancel  context.CancelFunc
}

// NewAutoStarter creates an auto-starter for t. A non-positive delay uses
// DefaultSettleDelay.
func NewAutoStarter(svc *tour.Service, t tour.Tour, delay time.Duration) *AutoStarter {
	if delay <= 0 {
		delay = DefaultSettleDelay
	}
	return &AutoStarter{svc: svc, tour: t, delay: delay}
}

// Tour returns the tour this starter runs.
func (a *AutoStarter) Tour() tour.Tour {
	return a.tour
}

// Mount marks the screen as shown and returns a command that checks
// completion off the update goroutine and, when the tour has not been seen,
// fires an AutoStartMsg after the settle delay.
func (a *AutoStarter) Mount() tea.Cmd {
	a.stop()
	a.mounted = true
	a.gen++
	if a.svc.Active() {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	a.cancel = cancel
	svc, t, delay, gen := a.svc, a.tour, a.delay, a.gen
	return func() tea.Msg {
		if !svc.ShouldAutoStart(ctx, t.Key, t.UserID) {
			log.Debug(log.CatTour, "auto-start skipped, already completed", "key", t.Key, "user", t.UserID)
			return nil
		}
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil
		case <-timer.C:
			return AutoStartMsg{key: t.Key, gen: gen}
		}
	}
}

// Unmount drops any pending fire.
func (a *AutoStarter) Unmount() {
	a.stop()
	a.mounted = false
	a.gen++
}

// Update starts the tour when msg is this starter's current fire and no tour
// is running. It reports whether a tour was started.
func (a *AutoStarter) Update(msg tea.Msg) bool {
	fire, ok := msg.(AutoStartMsg)
	if !ok || fire.key != a.tour.Key || fire.gen != a.gen {
		return false
	}
	if !a.mounted || a.svc.Active() {
		log.Debug(log.CatTour, "auto-start dropped", "key", a.tour.Key, "mounted", a.mounted)
		return false
	}
	log.Info(log.CatTour, "auto-starting tour", "key", a.tour.Key, "user", a.tour.UserID)
	return a.svc.Start(a.tour)
}

func (a *AutoStarter) stop() {
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}
