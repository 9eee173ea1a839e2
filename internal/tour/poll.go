package tour

import (
	"context"
	"time"

	"github.com/zjrosen/spotlight/internal/geometry"
)

// Measurer reports the on-screen rectangle of a target. ok is false until the
// layout host has measured it.
type Measurer interface {
	Measure(id string) (geometry.Rect, bool)
}

// Poller retries an attempt a bounded number of times.
type Poller struct {
	Attempts int
	Interval time.Duration
}

// DefaultPoller retries for roughly 24 frames.
func DefaultPoller() Poller {
	return Poller{Attempts: 24, Interval: 16 * time.Millisecond}
}

// Poll waits Interval before each attempt and stops on the first success.
// It returns false when attempts run out or ctx is cancelled.
func (p Poller) Poll(ctx context.Context, attempt func() bool) bool {
	attempts := p.Attempts
	if attempts <= 0 {
		attempts = 1
	}
	timer := time.NewTimer(p.Interval)
	defer timer.Stop()

	for i := 0; i < attempts; i++ {
		if i > 0 {
			timer.Reset(p.Interval)
		}
		select {
		case <-ctx.Done():
			return false
		case <-timer.C:
		}
		if attempt() {
			return true
		}
	}
	return false
}

// MeasureTarget polls m until id has a non-empty rectangle.
func (p Poller) MeasureTarget(ctx context.Context, m Measurer, id string) (geometry.Rect, bool) {
	var rect geometry.Rect
	ok := p.Poll(ctx, func() bool {
		r, found := m.Measure(id)
		if !found || r.Empty() {
			return false
		}
		rect = r
		return true
	})
	return rect, ok
}
