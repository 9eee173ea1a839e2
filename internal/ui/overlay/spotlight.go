package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/zjrosen/spotlight/internal/geometry"
)

// Spot describes a dimmed backdrop with an optional rectangular cut-out.
type Spot struct {
	Width  int
	Height int

	HasHole bool
	Hole    geometry.Rect
	// Radius above zero draws rounded ring corners.
	Radius int

	// Dim styles every cell outside the hole. Styling already present in the
	// background is stripped first.
	Dim lipgloss.Style

	// Ring draws a border on the hole's perimeter.
	Ring      bool
	RingStyle lipgloss.Style
}

// Spotlight renders bg through the spot. Cells inside the hole keep their
// original content and styling.
func Spotlight(s Spot, bg string) string {
	if s.Width <= 0 || s.Height <= 0 {
		return ""
	}
	lines := strings.Split(bg, "\n")
	hole, hasHole := s.clippedHole()

	out := make([]string, s.Height)
	for y := range s.Height {
		var line string
		if y < len(lines) {
			line = lines[y]
		}
		if !hasHole || y < hole.Y || y >= hole.Bottom() {
			out[y] = dim(s.Dim, cut(line, 0, s.Width))
			continue
		}

		left := cut(line, 0, hole.X)
		right := cut(line, hole.Right(), s.Width)
		var mid string
		if s.Ring && hole.Width >= 2 && hole.Height >= 2 {
			mid = s.ringRow(line, hole, y)
		} else {
			mid = cut(line, hole.X, hole.Right())
		}
		out[y] = dim(s.Dim, left) + mid + dim(s.Dim, right)
	}
	return strings.Join(out, "\n")
}

// clippedHole bounds the hole to the viewport.
func (s Spot) clippedHole() (geometry.Rect, bool) {
	if !s.HasHole || s.Hole.Empty() {
		return geometry.Rect{}, false
	}
	x0, y0 := max(s.Hole.X, 0), max(s.Hole.Y, 0)
	x1, y1 := min(s.Hole.Right(), s.Width), min(s.Hole.Bottom(), s.Height)
	if x1 <= x0 || y1 <= y0 {
		return geometry.Rect{}, false
	}
	return geometry.Rect{X: x0, Y: y0, Width: x1 - x0, Height: y1 - y0}, true
}

func (s Spot) ringRow(line string, hole geometry.Rect, y int) string {
	b := lipgloss.NormalBorder()
	if s.Radius > 0 {
		b = lipgloss.RoundedBorder()
	}
	inner := hole.Width - 2
	switch y {
	case hole.Y:
		return s.RingStyle.Render(b.TopLeft + strings.Repeat(b.Top, inner) + b.TopRight)
	case hole.Bottom() - 1:
		return s.RingStyle.Render(b.BottomLeft + strings.Repeat(b.Bottom, inner) + b.BottomRight)
	default:
		return s.RingStyle.Render(b.Left) + cut(line, hole.X+1, hole.Right()-1) + s.RingStyle.Render(b.Right)
	}
}

// cut returns the cells [left, right) of line, padded with spaces when the
// line is shorter or a wide rune straddles a boundary.
func cut(line string, left, right int) string {
	if right <= left {
		return ""
	}
	part := ansi.Cut(line, left, right)
	if w := ansi.StringWidth(part); w < right-left {
		part += strings.Repeat(" ", right-left-w)
	}
	return part
}

func dim(style lipgloss.Style, s string) string {
	if s == "" {
		return ""
	}
	return style.Render(ansi.Strip(s))
}

// Blend mixes from toward to by t, clamped to [0, 1]. Unparseable colours
// return from unchanged.
func Blend(from, to string, t float64) lipgloss.Color {
	a, err := colorful.Hex(from)
	if err != nil {
		return lipgloss.Color(from)
	}
	b, err := colorful.Hex(to)
	if err != nil {
		return lipgloss.Color(from)
	}
	t = max(0, min(t, 1))
	return lipgloss.Color(a.BlendRgb(b, t).Clamped().Hex())
}
