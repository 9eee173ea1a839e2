package tour

import (
	"slices"

	"github.com/google/uuid"

	"github.com/zjrosen/spotlight/internal/log"
)

// Hooks connect the controller to persistence and observers.
type Hooks struct {
	// MarkDone records completion of t. Called on skip and on finish, only
	// when t.Key is set. It must not block.
	MarkDone func(t Tour, runID string, outcome EventKind)
	// Emit receives every transition.
	Emit func(Event)
	// NewRunID generates run identifiers. Defaults to random UUIDs.
	NewRunID func() string
}

// Controller is the tour state machine: Idle -> Active(index) -> Idle.
// It is owned by the UI goroutine and is not safe for concurrent use.
//
// While active, 0 <= index < total, and total is fixed at Start.
type Controller struct {
	tour   Tour
	index  int
	total  int
	active bool
	runID  string
	hooks  Hooks
}

// NewController creates an idle controller.
func NewController(hooks Hooks) *Controller {
	if hooks.NewRunID == nil {
		hooks.NewRunID = uuid.NewString
	}
	return &Controller{hooks: hooks}
}

// Start begins t and reports whether it did. Tours without steps are ignored,
// as is any Start while another tour is active: the running tour keeps its
// index and total.
func (c *Controller) Start(t Tour) bool {
	if len(t.Steps) == 0 {
		log.Warn(log.CatTour, "ignoring tour without steps", "key", t.Key)
		return false
	}
	if c.active {
		log.Warn(log.CatTour, "ignoring start while a tour is active", "key", t.Key, "active", c.tour.Key, "index", c.index)
		return false
	}

	// Own a copy so callers mutating their slice cannot change the running tour.
	t.Steps = slices.Clone(t.Steps)
	c.tour = t
	c.total = len(t.Steps)
	c.index = 0
	c.active = true
	c.runID = c.hooks.NewRunID()

	log.Info(log.CatTour, "tour started", "key", t.Key, "user", t.UserID, "total", c.total, "run", c.runID)
	c.emit(Event{Kind: EventTourStarted, State: c.State()})
	return true
}

// Next advances one step, or finishes the tour from the last step.
func (c *Controller) Next() {
	if !c.active {
		return
	}
	if c.index+1 < c.total {
		c.index++
		c.emit(Event{Kind: EventStepChanged, State: c.State()})
		return
	}
	c.end(EventTourFinished)
}

// Prev moves back one step, never below the first.
func (c *Controller) Prev() {
	if !c.active || c.index == 0 {
		return
	}
	c.index--
	c.emit(Event{Kind: EventStepChanged, State: c.State()})
}

// Stop skips the rest of the tour. Completion is recorded but OnFinish is
// not called.
func (c *Controller) Stop() {
	if !c.active {
		return
	}
	c.end(EventTourSkipped)
}

// end records completion, returns to idle, then runs OnFinish for a natural
// finish. OnFinish runs after the reset so it may start a follow-up tour.
func (c *Controller) end(outcome EventKind) {
	final := c.State()
	t := c.tour

	if t.Key != "" && c.hooks.MarkDone != nil {
		c.hooks.MarkDone(t, c.runID, outcome)
	}

	c.tour = Tour{}
	c.index = 0
	c.total = 0
	c.active = false
	c.runID = ""

	log.Info(log.CatTour, "tour ended", "key", t.Key, "outcome", outcome, "index", final.Index, "total", final.Total)
	c.emit(Event{Kind: outcome, State: final})

	if outcome == EventTourFinished && t.OnFinish != nil {
		t.OnFinish()
	}
}

// Active reports whether a tour is running.
func (c *Controller) Active() bool {
	return c.active
}

// State returns a snapshot of the controller.
func (c *Controller) State() State {
	if !c.active {
		return State{}
	}
	return State{
		Active: true,
		Index:  c.index,
		Total:  c.total,
		Step:   c.tour.Steps[c.index],
		Key:    c.tour.Key,
		UserID: c.tour.UserID,
		RunID:  c.runID,
	}
}

func (c *Controller) emit(e Event) {
	if c.hooks.Emit != nil {
		c.hooks.Emit(e)
	}
}
