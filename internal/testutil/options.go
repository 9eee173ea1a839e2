package testutil

import (
	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/tour"
)

// StepOption customizes a step added by the builder.
type StepOption func(*tour.Step)

// Target anchors the step to a registered target.
func Target(id string) StepOption {
	return func(s *tour.Step) { s.TargetID = id }
}

// Title sets the card title.
func Title(title string) StepOption {
	return func(s *tour.Step) { s.Title = title }
}

// Text sets the card body.
func Text(text string) StepOption {
	return func(s *tour.Step) { s.Text = text }
}

// Placement sets the card placement.
func Placement(p geometry.Placement) StepOption {
	return func(s *tour.Step) { s.Placement = p }
}

// Padding overrides the hole padding.
func Padding(v int) StepOption {
	return func(s *tour.Step) { s.Padding = &v }
}

// Radius overrides the hole radius.
func Radius(v int) StepOption {
	return func(s *tour.Step) { s.Radius = &v }
}

// NoBackdropAdvance disables advancing on backdrop taps.
func NoBackdropAdvance() StepOption {
	return func(s *tour.Step) {
		f := false
		s.AllowBackdropTapToNext = &f
	}
}

// EdgeTop overrides only the top edge margin.
func EdgeTop(v int) StepOption {
	return func(s *tour.Step) {
		if s.EdgeMargin == nil {
			s.EdgeMargin = &geometry.Margins{}
		}
		s.EdgeMargin.Top = &v
	}
}
