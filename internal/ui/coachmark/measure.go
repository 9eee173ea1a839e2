package coachmark

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/tour"
)

// TargetMeasuredMsg reports the outcome of a measurement poll. Gen ties it to
// the request so results for a step the user already left are dropped.
type TargetMeasuredMsg struct {
	ID   string
	Rect geometry.Rect
	OK   bool
	Gen  int
}

// MeasureCmd polls m for id off the update goroutine.
func MeasureCmd(ctx context.Context, m tour.Measurer, p tour.Poller, id string, gen int) tea.Cmd {
	return func() tea.Msg {
		rect, ok := p.MeasureTarget(ctx, m, id)
		return TargetMeasuredMsg{ID: id, Rect: rect, OK: ok, Gen: gen}
	}
}
