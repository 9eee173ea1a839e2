// Package tour implements the guided-tour engine: a registry of measured
// targets, the tour state machine, completion persistence and the service that
// ties them together for a UI host.
package tour

import (
	"github.com/zjrosen/spotlight/internal/geometry"
)

// Step is one highlighted instruction. Optional fields left nil fall back to
// the renderer's metrics.
type Step struct {
	ID        string             `yaml:"id" json:"id"`
	TargetID  string             `yaml:"target" json:"target,omitempty"`
	Title     string             `yaml:"title" json:"title,omitempty"`
	Text      string             `yaml:"text" json:"text"`
	Placement geometry.Placement `yaml:"placement" json:"placement,omitempty"`
	Radius    *int               `yaml:"radius" json:"radius,omitempty"`
	Padding   *int               `yaml:"padding" json:"padding,omitempty"`
	// AllowBackdropTapToNext defaults to true when nil.
	AllowBackdropTapToNext *bool             `yaml:"allow_backdrop_tap_to_next" json:"allow_backdrop_tap_to_next,omitempty"`
	EdgeMargin             *geometry.Margins `yaml:"edge_margin" json:"edge_margin,omitempty"`
}

// BackdropAdvances reports whether a tap outside the hole moves to the next step.
func (s Step) BackdropAdvances() bool {
	return s.AllowBackdropTapToNext == nil || *s.AllowBackdropTapToNext
}

// Tour is an ordered sequence of steps. Key is the persist key; when empty,
// completion is not recorded. UserID scopes the completion record.
type Tour struct {
	Key      string
	UserID   string
	Steps    []Step
	OnFinish func()
}

// State is a snapshot of the controller.
type State struct {
	Active bool
	Index  int
	Total  int
	Step   Step
	Key    string
	UserID string
	RunID  string
}

// Last reports whether the snapshot is on the final step.
func (s State) Last() bool {
	return s.Active && s.Index == s.Total-1
}
