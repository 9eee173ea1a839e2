// Package shared holds helpers used by more than one screen.
package shared

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
)

// Clock provides the current time. Use RealClock for production and
// FixedClock in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual current time.
type RealClock struct{}

// Now returns the current time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return time.Time(c) }

const day = 24 * time.Hour

// agoUnits is ordered largest first; the first unit that fits wins.
var agoUnits = []struct {
	size   time.Duration
	suffix string
}{
	{365 * day, "y"},
	{30 * day, "mo"},
	{7 * day, "w"},
	{day, "d"},
	{time.Hour, "h"},
	{time.Minute, "m"},
}

// Ago renders a past time in the compact form used by list rows:
// "now", "20m ago", "3d ago", "2w ago". Future times read as "now".
func Ago(clock Clock, t time.Time) string {
	d := clock.Now().Sub(t)
	for _, u := range agoUnits {
		if d >= u.size {
			return fmt.Sprintf("%d%s ago", d/u.size, u.suffix)
		}
	}
	return "now"
}

// Until renders a due time in words, e.g. "2 hours from now". Past times
// read as "... ago".
func Until(clock Clock, t time.Time) string {
	return humanize.RelTime(clock.Now(), t, "from now", "ago")
}
