package tour_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/spotlight/internal/testutil"
	"github.com/zjrosen/spotlight/internal/tour"
)

type markCall struct {
	key     string
	user    string
	outcome tour.EventKind
}

type recorder struct {
	marks  []markCall
	events []tour.Event
}

func newController(rec *recorder) *tour.Controller {
	return tour.NewController(tour.Hooks{
		MarkDone: func(t tour.Tour, _ string, outcome tour.EventKind) {
			rec.marks = append(rec.marks, markCall{t.Key, t.UserID, outcome})
		},
		Emit:     func(e tour.Event) { rec.events = append(rec.events, e) },
		NewRunID: func() string { return "run-1" },
	})
}

func TestController_StartRequiresSteps(t *testing.T) {
	c := newController(&recorder{})
	require.False(t, c.Start(tour.Tour{Key: "empty"}))
	require.False(t, c.Active())
	require.Equal(t, tour.State{}, c.State())
}

func TestController_StartSnapshotsSteps(t *testing.T) {
	rec := &recorder{}
	c := newController(rec)
	tr := testutil.NewTour("k").WithSteps(3).Build()

	require.True(t, c.Start(tr))
	tr.Steps[0].Text = "mutated"
	tr.Steps = tr.Steps[:1]

	st := c.State()
	require.True(t, st.Active)
	require.Equal(t, 0, st.Index)
	require.Equal(t, 3, st.Total, "total is locked at start")
	require.Equal(t, "step-1", st.Step.Text)
	require.Equal(t, "run-1", st.RunID)
	require.Equal(t, tour.EventTourStarted, rec.events[0].Kind)
}

func TestController_NestedStartIsIgnored(t *testing.T) {
	c := newController(&recorder{})
	require.True(t, c.Start(testutil.NewTour("a").WithSteps(3).Build()))
	c.Next()

	require.False(t, c.Start(testutil.NewTour("b").WithSteps(5).Build()))
	st := c.State()
	require.Equal(t, "a", st.Key)
	require.Equal(t, 1, st.Index)
	require.Equal(t, 3, st.Total)
}

func TestController_PrevFloor(t *testing.T) {
	rec := &recorder{}
	c := newController(rec)
	c.Start(testutil.NewTour("k").WithSteps(2).Build())

	c.Prev()
	require.Equal(t, 0, c.State().Index)
	require.Len(t, rec.events, 1, "prev at the floor emits nothing")
	require.Empty(t, rec.marks)
}

func TestController_FinishCallsOnFinishOnce(t *testing.T) {
	rec := &recorder{}
	c := newController(rec)
	finished := 0
	c.Start(testutil.NewTour("demo").ForUser("u1").WithSteps(2).OnFinish(func() { finished++ }).Build())

	c.Next()
	require.True(t, c.State().Last())
	c.Next()
	c.Next()

	require.Equal(t, 1, finished)
	require.False(t, c.Active())
	require.Equal(t, tour.State{}, c.State())
	require.Equal(t, []markCall{{"demo", "u1", tour.EventTourFinished}}, rec.marks)

	last := rec.events[len(rec.events)-1]
	require.Equal(t, tour.EventTourFinished, last.Kind)
	require.True(t, last.State.Active, "end event carries the final snapshot")
	require.Equal(t, 1, last.State.Index)
}

func TestController_SkipPersistsWithoutOnFinish(t *testing.T) {
	rec := &recorder{}
	c := newController(rec)
	finished := 0
	c.Start(testutil.NewTour("demo").WithSteps(3).OnFinish(func() { finished++ }).Build())

	c.Stop()
	c.Stop()

	require.Zero(t, finished)
	require.False(t, c.Active())
	require.Equal(t, []markCall{{"demo", "", tour.EventTourSkipped}}, rec.marks)
}

func TestController_NoKeyNoPersistence(t *testing.T) {
	rec := &recorder{}
	c := newController(rec)
	c.Start(testutil.NewTour("").WithSteps(1).Build())
	c.Next()
	require.Empty(t, rec.marks)
}

func TestController_OnFinishCanStartFollowUp(t *testing.T) {
	c := newController(&recorder{})
	followUp := testutil.NewTour("second").WithSteps(1).Build()
	started := false
	first := testutil.NewTour("first").WithSteps(1).OnFinish(func() {
		started = c.Start(followUp)
	}).Build()

	c.Start(first)
	c.Next()

	require.True(t, started)
	require.Equal(t, "second", c.State().Key)
}

func TestController_IdleOperationsAreNoops(t *testing.T) {
	rec := &recorder{}
	c := newController(rec)
	c.Next()
	c.Prev()
	c.Stop()
	assert.Empty(t, rec.events)
	assert.Empty(t, rec.marks)
}

func TestController_IndexInvariant(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		rec := &recorder{}
		c := newController(rec)
		total := rapid.IntRange(1, 8).Draw(t, "total")
		finishes := 0
		c.Start(testutil.NewTour("k").WithSteps(total).OnFinish(func() { finishes++ }).Build())

		ops := rapid.SliceOfN(rapid.SampledFrom([]string{"next", "prev", "stop"}), 0, 40).Draw(t, "ops")
		for _, op := range ops {
			before := c.State()
			switch op {
			case "next":
				c.Next()
			case "prev":
				c.Prev()
			case "stop":
				c.Stop()
			}
			st := c.State()
			if !st.Active {
				if before.Active && op == "next" && before.Index != total-1 {
					t.Fatalf("next from %d of %d ended the tour", before.Index, total)
				}
				continue
			}
			if st.Index < 0 || st.Index >= st.Total || st.Total != total {
				t.Fatalf("invariant broken: index=%d total=%d", st.Index, st.Total)
			}
			if op == "next" && st.Index != before.Index+1 {
				t.Fatalf("next moved %d -> %d", before.Index, st.Index)
			}
			if op == "prev" && st.Index != max(0, before.Index-1) {
				t.Fatalf("prev moved %d -> %d", before.Index, st.Index)
			}
		}
		if finishes > 1 {
			t.Fatalf("OnFinish called %d times", finishes)
		}
		if len(rec.marks) > 1 {
			t.Fatalf("completion recorded %d times", len(rec.marks))
		}
	})
}
