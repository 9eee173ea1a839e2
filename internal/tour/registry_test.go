package tour_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/tour"
)

func TestRegistry_RegisterIsIdempotent(t *testing.T) {
	var events []tour.Event
	r := tour.NewRegistry(func(e tour.Event) { events = append(events, e) })

	rect := geometry.Rect{X: 1, Y: 2, Width: 3, Height: 4}
	require.True(t, r.Register("btn", rect))
	require.False(t, r.Register("btn", rect), "same rect is a no-op")
	require.Equal(t, uint64(1), r.Version())
	require.Len(t, events, 1)
	require.Equal(t, tour.EventTargetRegistered, events[0].Kind)
	require.Equal(t, "btn", events[0].TargetID)

	moved := geometry.Rect{X: 5, Y: 2, Width: 3, Height: 4}
	require.True(t, r.Register("btn", moved))
	got, ok := r.Lookup("btn")
	require.True(t, ok)
	require.Equal(t, moved, got)
	require.Equal(t, 1, r.Len())
}

func TestRegistry_IgnoresDegenerateInput(t *testing.T) {
	r := tour.NewRegistry(nil)
	good := geometry.Rect{X: 1, Y: 1, Width: 2, Height: 2}
	require.True(t, r.Register("btn", good))

	require.False(t, r.Register("", good))
	require.False(t, r.Register("btn", geometry.Rect{X: 9, Y: 9}), "zero size must not replace a good measurement")
	require.False(t, r.Register("other", geometry.Rect{Width: -1, Height: 4}))

	got, _ := r.Lookup("btn")
	require.Equal(t, good, got)
	require.Equal(t, []string{"btn"}, r.IDs())
}

func TestRegistry_Unregister(t *testing.T) {
	var kinds []tour.EventKind
	r := tour.NewRegistry(func(e tour.Event) { kinds = append(kinds, e.Kind) })

	require.False(t, r.Unregister("missing"))
	r.Register("b", geometry.Rect{Width: 1, Height: 1})
	r.Register("a", geometry.Rect{Width: 1, Height: 1})
	require.Equal(t, []string{"a", "b"}, r.IDs())

	require.True(t, r.Unregister("b"))
	_, ok := r.Lookup("b")
	require.False(t, ok)
	require.Equal(t, []tour.EventKind{
		tour.EventTargetRegistered,
		tour.EventTargetRegistered,
		tour.EventTargetUnregistered,
	}, kinds)
}
