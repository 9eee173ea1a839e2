package coachmark

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/spotlight/internal/geometry"
)

func waitMeasured(t *testing.T, l *Layout, id string) geometry.Rect {
	t.Helper()
	var rect geometry.Rect
	// Zone registration is asynchronous via a channel worker in bubblezone.
	require.Eventually(t, func() bool {
		r, ok := l.Measure(id)
		rect = r
		return ok
	}, time.Second, time.Millisecond)
	return rect
}

func TestLayout_MeasureSingleLine(t *testing.T) {
	l := NewLayout()
	defer l.Close()

	out := l.Scan("....\n.." + l.Mark("target", "XY"))

	assert.Equal(t, "....\n..XY", out, "markers are stripped")
	assert.Equal(t, geometry.Rect{X: 2, Y: 1, Width: 2, Height: 1}, waitMeasured(t, l, "target"))
}

func TestLayout_MeasureBlock(t *testing.T) {
	l := NewLayout()
	defer l.Close()

	view := lipgloss.JoinHorizontal(lipgloss.Top, "  \n  ", l.Mark("box", "ab\ncd"))
	l.Scan(view)

	assert.Equal(t, geometry.Rect{X: 2, Y: 0, Width: 2, Height: 2}, waitMeasured(t, l, "box"))
}

func TestLayout_UnknownTarget(t *testing.T) {
	l := NewLayout()
	defer l.Close()

	l.Scan("nothing marked")

	_, ok := l.Measure("missing")
	assert.False(t, ok)
}

func TestLayout_AfterWaitsForNewScan(t *testing.T) {
	l := NewLayout()
	defer l.Close()

	l.Scan(l.Mark("t", "X"))
	waitMeasured(t, l, "t")

	fresh := l.After(l.Scans())
	_, ok := fresh.Measure("t")
	assert.False(t, ok, "zones from before the request are not trusted")

	l.Scan(" " + l.Mark("t", "X"))
	require.Eventually(t, func() bool {
		r, ok := fresh.Measure("t")
		return ok && r.X == 1
	}, time.Second, time.Millisecond)
}

func TestLayout_ScansCounts(t *testing.T) {
	l := NewLayout()
	defer l.Close()

	require.Zero(t, l.Scans())
	l.Scan("a")
	l.Scan("b")
	assert.Equal(t, uint64(2), l.Scans())
}
