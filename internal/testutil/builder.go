package testutil

import (
	"fmt"

	"github.com/zjrosen/spotlight/internal/tour"
)

// TourBuilder accumulates steps for a tour.
type TourBuilder struct {
	t tour.Tour
}

// NewTour starts a tour with the given persist key. An empty key builds a
// tour whose completion is not recorded.
func NewTour(key string) *TourBuilder {
	return &TourBuilder{t: tour.Tour{Key: key}}
}

// ForUser scopes completion to userID.
func (b *TourBuilder) ForUser(userID string) *TourBuilder {
	b.t.UserID = userID
	return b
}

// WithStep appends a step. Text defaults to the ID.
func (b *TourBuilder) WithStep(id string, opts ...StepOption) *TourBuilder {
	s := tour.Step{ID: id, Text: id}
	for _, opt := range opts {
		opt(&s)
	}
	b.t.Steps = append(b.t.Steps, s)
	return b
}

// WithSteps appends n plain steps named step-1..step-n after any existing ones.
func (b *TourBuilder) WithSteps(n int) *TourBuilder {
	start := len(b.t.Steps)
	for i := 1; i <= n; i++ {
		b.WithStep(fmt.Sprintf("step-%d", start+i))
	}
	return b
}

// OnFinish sets the finish callback.
func (b *TourBuilder) OnFinish(fn func()) *TourBuilder {
	b.t.OnFinish = fn
	return b
}

// Build returns the tour.
func (b *TourBuilder) Build() tour.Tour {
	return b.t
}
