package testutil

import (
	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/tour"
)

// DemoTour is a three step tour persisted as "demo" for user "u1". The first
// step has no target, the second anchors to "btn" and the third refuses
// backdrop taps.
func DemoTour() tour.Tour {
	return NewTour("demo").ForUser("u1").
		WithStep("intro", Title("Welcome"), Text("A quick look around.")).
		WithStep("button", Target("btn"), Title("Button"), Text("Press this."), Placement(geometry.PlacementBottom)).
		WithStep("done", Text("That's it."), NoBackdropAdvance()).
		Build()
}
