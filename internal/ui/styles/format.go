package styles

import (
	"github.com/charmbracelet/x/ansi"
	"github.com/dustin/go-humanize"
)

// TruncateString shortens s to maxWidth cells, ending in "..." when cut.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return ansi.Truncate("...", maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// FormatPoints renders a score with thousands separators.
func FormatPoints(n int64) string {
	return "★ " + humanize.Comma(n)
}
