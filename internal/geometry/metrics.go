package geometry

import (
	"fmt"
	"strings"
)

// Placement is where the tooltip card sits relative to the hole.
type Placement string

const (
	PlacementAuto   Placement = "auto"
	PlacementTop    Placement = "top"
	PlacementBottom Placement = "bottom"
	PlacementLeft   Placement = "left"
	PlacementRight  Placement = "right"
)

// ParsePlacement accepts the placement names case-insensitively. Empty means auto.
func ParsePlacement(s string) (Placement, error) {
	switch p := Placement(strings.ToLower(strings.TrimSpace(s))); p {
	case "", PlacementAuto:
		return PlacementAuto, nil
	case PlacementTop, PlacementBottom, PlacementLeft, PlacementRight:
		return p, nil
	default:
		return "", fmt.Errorf("invalid placement %q (must be auto, top, bottom, left or right)", s)
	}
}

// Metrics are the layout constants. Step-level padding, radius and edge
// margins override the first three.
type Metrics struct {
	Padding             int
	Radius              int
	EdgeMargin          Insets
	MinHoleSize         int
	CardMaxWidth        int
	SideMargin          int
	Gap                 int
	EstimatedCardHeight int
	ArrowMargin         int
	NoHoleTopOffset     int
	NoHoleBottomOffset  int
}

// DefaultMetrics is the pixel profile.
func DefaultMetrics() Metrics {
	return Metrics{
		Padding:             8,
		Radius:              16,
		EdgeMargin:          Uniform(8),
		MinHoleSize:         16,
		CardMaxWidth:        378,
		SideMargin:          16,
		Gap:                 12,
		EstimatedCardHeight: 160,
		ArrowMargin:         20,
		NoHoleTopOffset:     96,
		NoHoleBottomOffset:  120,
	}
}

// TerminalMetrics is the cell profile used by the TUI.
func TerminalMetrics() Metrics {
	return Metrics{
		Padding:             1,
		Radius:              1,
		EdgeMargin:          Uniform(1),
		MinHoleSize:         3,
		CardMaxWidth:        48,
		SideMargin:          2,
		Gap:                 1,
		EstimatedCardHeight: 7,
		ArrowMargin:         2,
		NoHoleTopOffset:     2,
		NoHoleBottomOffset:  2,
	}
}
