package tour

import (
	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/pubsub"
)

// EventKind identifies what changed.
type EventKind string

const (
	EventTargetRegistered   EventKind = "target_registered"
	EventTargetUnregistered EventKind = "target_unregistered"
	EventTourStarted        EventKind = "tour_started"
	EventStepChanged        EventKind = "step_changed"
	EventTourFinished       EventKind = "tour_finished"
	EventTourSkipped        EventKind = "tour_skipped"
)

// Event is published by the service whenever the registry or controller changes.
// For finished/skipped events State is the final active snapshot, which the
// renderer uses to animate the exit.
type Event struct {
	Kind     EventKind
	TargetID string
	Rect     geometry.Rect
	State    State
}

// Ended reports whether the event moved the controller to idle.
func (e Event) Ended() bool {
	return e.Kind == EventTourFinished || e.Kind == EventTourSkipped
}

func (k EventKind) pubsubType() pubsub.EventType {
	switch k {
	case EventTargetRegistered, EventTourStarted:
		return pubsub.CreatedEvent
	case EventTargetUnregistered, EventTourFinished, EventTourSkipped:
		return pubsub.DeletedEvent
	default:
		return pubsub.UpdatedEvent
	}
}
