// Package geometry computes spotlight layouts: where the cut-out over a target
// goes and where the tooltip card sits, under viewport and safe-area limits.
//
// Everything here is pure and deterministic. Units are whatever the host uses
// (pixels for DefaultMetrics, terminal cells for TerminalMetrics).
package geometry

// Rect is an axis-aligned rectangle in viewport coordinates.
type Rect struct {
	X      int `json:"x" yaml:"x"`
	Y      int `json:"y" yaml:"y"`
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Empty reports whether r has no area. Empty rects are never authoritative
// measurements.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Right returns the exclusive right edge.
func (r Rect) Right() int { return r.X + r.Width }

// Bottom returns the exclusive bottom edge.
func (r Rect) Bottom() int { return r.Y + r.Height }

// CenterX returns the horizontal centre.
func (r Rect) CenterX() int { return r.X + r.Width/2 }

// CenterY returns the vertical centre.
func (r Rect) CenterY() int { return r.Y + r.Height/2 }

// Contains reports whether the point lies inside the half-open rectangle
// [X, X+Width) x [Y, Y+Height).
func (r Rect) Contains(x, y int) bool {
	return !r.Empty() && x >= r.X && x < r.Right() && y >= r.Y && y < r.Bottom()
}

// Size is a viewport size.
type Size struct {
	W int
	H int
}

// Insets holds a value per edge.
type Insets struct {
	Top    int `mapstructure:"top" yaml:"top"`
	Right  int `mapstructure:"right" yaml:"right"`
	Bottom int `mapstructure:"bottom" yaml:"bottom"`
	Left   int `mapstructure:"left" yaml:"left"`
}

// Uniform returns insets with the same value on every edge.
func Uniform(v int) Insets {
	return Insets{Top: v, Right: v, Bottom: v, Left: v}
}

// Margins overrides individual edges of a default Insets. Nil edges keep the default.
type Margins struct {
	Top    *int `json:"top,omitempty" yaml:"top,omitempty"`
	Right  *int `json:"right,omitempty" yaml:"right,omitempty"`
	Bottom *int `json:"bottom,omitempty" yaml:"bottom,omitempty"`
	Left   *int `json:"left,omitempty" yaml:"left,omitempty"`
}

// Resolve applies m over def. Negative values are treated as zero.
func (m *Margins) Resolve(def Insets) Insets {
	out := def
	if m != nil {
		if m.Top != nil {
			out.Top = *m.Top
		}
		if m.Right != nil {
			out.Right = *m.Right
		}
		if m.Bottom != nil {
			out.Bottom = *m.Bottom
		}
		if m.Left != nil {
			out.Left = *m.Left
		}
	}
	out.Top = max(out.Top, 0)
	out.Right = max(out.Right, 0)
	out.Bottom = max(out.Bottom, 0)
	out.Left = max(out.Left, 0)
	return out
}
