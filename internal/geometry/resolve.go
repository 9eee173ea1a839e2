package geometry

// Input is everything Resolve needs for one step.
type Input struct {
	// Target is the measured rectangle of the step's target, nil when the step
	// has no target or it was never measured.
	Target *Rect

	Viewport Size
	SafeArea Insets

	Placement Placement

	// Padding, Radius and EdgeMargin override Metrics when set.
	Padding    *int
	Radius     *int
	EdgeMargin *Margins

	// CardHeight is the rendered tooltip height. Zero uses Metrics.EstimatedCardHeight.
	CardHeight int

	Metrics Metrics
}

// Layout is the resolved geometry for one frame.
type Layout struct {
	HasHole    bool
	Hole       Rect
	HoleRadius int

	// Placement is never PlacementAuto. It can differ from the requested
	// placement: left and right become top when there is no hole, and fall
	// back to the automatic top/bottom choice when the side lacks room for a
	// card.
	Placement Placement
	Card      Rect

	Arrow  bool
	ArrowX int
}

// PassThrough reports whether a pointer at (x, y) belongs to the highlighted UI.
func (l Layout) PassThrough(x, y int) bool {
	return l.HasHole && l.Hole.Contains(x, y)
}

// Resolve computes the hole and tooltip placement.
func Resolve(in Input) Layout {
	m := in.Metrics
	vw, vh := max(in.Viewport.W, 0), max(in.Viewport.H, 0)

	var out Layout
	if hole, ok := resolveHole(in, vw, vh); ok {
		out.HasHole = true
		out.Hole = hole
		radius := m.Radius
		if in.Radius != nil {
			radius = *in.Radius
		}
		out.HoleRadius = clamp(radius, 0, min(hole.Width, hole.Height)/2)
	}

	cardH := in.CardHeight
	if cardH <= 0 {
		cardH = m.EstimatedCardHeight
	}

	out.Placement = resolvePlacement(in.Placement, out, vh)

	switch out.Placement {
	case PlacementLeft, PlacementRight:
		card, ok := sideCard(out, m, in.SafeArea, vw, vh, cardH)
		if ok {
			out.Card = card
			return out
		}
		// Not enough room beside the hole; fall back to the vertical choice.
		out.Placement = resolvePlacement(PlacementAuto, out, vh)
	}

	out.Card = verticalCard(out, m, in.SafeArea, vw, vh, cardH)
	if out.HasHole && out.Placement == PlacementBottom {
		out.Arrow = true
		out.ArrowX = arrowX(out.Hole, out.Card, m.ArrowMargin)
	}
	return out
}

func resolveHole(in Input, vw, vh int) (Rect, bool) {
	if in.Target == nil || in.Target.Empty() {
		return Rect{}, false
	}
	m := in.Metrics
	margin := in.EdgeMargin.Resolve(m.EdgeMargin)
	pad := m.Padding
	if in.Padding != nil {
		pad = *in.Padding
	}
	pad = max(pad, 0)

	maxW := vw - margin.Left - margin.Right
	maxH := vh - margin.Top - margin.Bottom
	if maxW <= 0 || maxH <= 0 {
		return Rect{}, false
	}

	t := *in.Target
	w := min(max(t.Width+2*pad, m.MinHoleSize), maxW)
	h := min(max(t.Height+2*pad, m.MinHoleSize), maxH)
	x := clamp(t.X-pad, margin.Left, vw-margin.Right-w)
	y := clamp(t.Y-pad, margin.Top, vh-margin.Bottom-h)
	return Rect{X: x, Y: y, Width: w, Height: h}, true
}

func resolvePlacement(p Placement, l Layout, vh int) Placement {
	switch p {
	case PlacementTop, PlacementBottom:
		return p
	case PlacementLeft, PlacementRight:
		if l.HasHole {
			return p
		}
		return PlacementTop
	}

	above, below := vh/2, vh-vh/2
	if l.HasHole {
		above, below = l.Hole.Y, vh-l.Hole.Bottom()
	}
	if below > above {
		return PlacementBottom
	}
	return PlacementTop
}

func cardWidth(m Metrics, vw int) int {
	w := min(m.CardMaxWidth, vw-2*m.SideMargin)
	if w < 1 {
		w = max(vw, 1)
	}
	return w
}

func verticalCard(l Layout, m Metrics, safe Insets, vw, vh, cardH int) Rect {
	w := cardWidth(m, vw)

	centre := vw / 2
	if l.HasHole {
		centre = l.Hole.CenterX()
	}
	x := centre - w/2
	if lo, hi := m.SideMargin, vw-m.SideMargin-w; hi >= lo {
		x = clamp(x, lo, hi)
	} else {
		x = max(0, (vw-w)/2)
	}

	var y int
	switch {
	case !l.HasHole && l.Placement == PlacementBottom:
		y = max(safe.Top, vh-safe.Bottom-m.NoHoleBottomOffset-cardH)
	case !l.HasHole:
		y = safe.Top + m.NoHoleTopOffset
	case l.Placement == PlacementBottom:
		y = min(vh-safe.Bottom-m.Gap, l.Hole.Bottom()+m.Gap)
	default:
		// A forced top on a target near the top edge overlaps the hole. Hit
		// testing gives the card priority there.
		y = max(safe.Top+m.Gap, l.Hole.Y-m.Gap-cardH)
	}
	return Rect{X: x, Y: y, Width: w, Height: cardH}
}

func sideCard(l Layout, m Metrics, safe Insets, vw, vh, cardH int) (Rect, bool) {
	var x, w int
	if l.Placement == PlacementLeft {
		room := l.Hole.X - m.Gap - m.SideMargin
		w = min(m.CardMaxWidth, room)
		x = l.Hole.X - m.Gap - w
	} else {
		x = l.Hole.Right() + m.Gap
		w = min(m.CardMaxWidth, vw-m.SideMargin-x)
	}
	if w < 1 {
		return Rect{}, false
	}

	y := l.Hole.CenterY() - cardH/2
	lo, hi := safe.Top+m.Gap, vh-safe.Bottom-m.Gap-cardH
	y = max(lo, min(y, hi))
	return Rect{X: x, Y: y, Width: w, Height: cardH}, true
}

func arrowX(hole, card Rect, margin int) int {
	lo, hi := card.X+margin, card.X+card.Width-margin
	if hi < lo {
		return card.CenterX()
	}
	return clamp(hole.CenterX(), lo, hi)
}

// clamp bounds v to [lo, hi]; when hi < lo, lo wins.
func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
