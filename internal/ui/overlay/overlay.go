// Package overlay composites styled layers over a rendered screen: boxes
// placed at a position, and the spotlight scrim with its cut-out.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position specifies where to place the overlay content.
type Position int

const (
	// Center places the overlay in the middle of the viewport.
	Center Position = iota
	// Bottom centers the overlay horizontally, PadY rows above the bottom edge.
	Bottom
	// Absolute places the overlay's top-left corner at (X, Y).
	Absolute
)

// Config controls where a layer lands.
type Config struct {
	Width    int
	Height   int
	Position Position
	PadY     int
	// X and Y are the cell coordinates used by Absolute.
	X int
	Y int
}

// Place renders fg on top of bg. Both layers keep their ANSI styling. The
// background is padded to Height rows; foreground cells that fall outside
// Width or Height are clipped.
func Place(cfg Config, fg, bg string) string {
	fgLines := strings.Split(fg, "\n")
	bgLines := strings.Split(bg, "\n")

	for len(bgLines) < cfg.Height {
		bgLines = append(bgLines, strings.Repeat(" ", cfg.Width))
	}

	x, y := origin(cfg, lipgloss.Width(fg), len(fgLines))
	for i, line := range fgLines {
		row := y + i
		if row >= len(bgLines) {
			break
		}
		if cfg.Width > 0 {
			if x >= cfg.Width {
				break
			}
			line = ansi.Truncate(line, cfg.Width-x, "")
		}
		bgLines[row] = splice(bgLines[row], line, x)
	}

	return strings.Join(bgLines, "\n")
}

// splice writes fg over bg starting at column x.
func splice(bg, fg string, x int) string {
	left := ansi.Truncate(bg, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}

	end := x + ansi.StringWidth(fg)
	var right string
	if end < ansi.StringWidth(bg) {
		right = ansi.TruncateLeft(bg, end, "")
	}
	return left + fg + right
}

// origin returns the top-left cell of a w×h layer, never negative.
func origin(cfg Config, w, h int) (x, y int) {
	switch cfg.Position {
	case Bottom:
		x = (cfg.Width - w) / 2
		y = cfg.Height - h - cfg.PadY
	case Absolute:
		x, y = cfg.X, cfg.Y
	default:
		x = (cfg.Width - w) / 2
		y = (cfg.Height - h) / 2
	}
	return max(x, 0), max(y, 0)
}
