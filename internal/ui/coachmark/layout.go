package coachmark

import (
	"sync/atomic"

	zone "github.com/lrstanley/bubblezone"

	"github.com/zjrosen/spotlight/internal/geometry"
	"github.com/zjrosen/spotlight/internal/tour"
)

// Layout measures tour targets. It owns a private zone manager so target
// markers never mix with the card's control zones, which live in the global
// manager.
//
// Screens wrap each target with Mark, and the root model passes the screen's
// view through Scan once per frame.
type Layout struct {
	zones *zone.Manager
	scans atomic.Uint64
}

// NewLayout creates a layout host with its own zone worker.
func NewLayout() *Layout {
	return &Layout{zones: zone.New()}
}

// Mark wraps s so its position is recorded under id on the next Scan.
func (l *Layout) Mark(id, s string) string {
	return l.zones.Mark(id, s)
}

// Scan records every marked region in view and returns view without markers.
// Zones become visible to Measure shortly after, once the zone worker has
// processed them.
func (l *Layout) Scan(view string) string {
	out := l.zones.Scan(view)
	l.scans.Add(1)
	return out
}

// Scans counts completed Scan calls.
func (l *Layout) Scans() uint64 {
	return l.scans.Load()
}

// Measure implements tour.Measurer.
func (l *Layout) Measure(id string) (geometry.Rect, bool) {
	z := l.zones.Get(id)
	if z.IsZero() {
		return geometry.Rect{}, false
	}
	// Zone ends are inclusive.
	r := geometry.Rect{
		X:      z.StartX,
		Y:      z.StartY,
		Width:  z.EndX - z.StartX + 1,
		Height: z.EndY - z.StartY + 1,
	}
	return r, !r.Empty()
}

// After returns a measurer that only reports zones once a Scan newer than n
// has happened. It keeps a resize from measuring the previous frame.
func (l *Layout) After(n uint64) tour.Measurer {
	return freshLayout{layout: l, after: n}
}

// Close stops the zone worker.
func (l *Layout) Close() {
	l.zones.Close()
}

type freshLayout struct {
	layout *Layout
	after  uint64
}

func (f freshLayout) Measure(id string) (geometry.Rect, bool) {
	if f.layout.Scans() <= f.after {
		return geometry.Rect{}, false
	}
	return f.layout.Measure(id)
}
