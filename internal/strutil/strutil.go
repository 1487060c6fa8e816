package strutil

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// TabWidth is the number of spaces a tab expands to.
const TabWidth = 4

// Width returns the display width of s in terminal cells, ignoring ANSI codes.
func Width(s string) int {
	return runewidth.StringWidth(ansi.Strip(s))
}

// Limit truncates a string to a specific width, accounting for ANSI codes
func Limit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}

// LimitEllipsis truncates s to width cells, marking the cut with an ellipsis.
func LimitEllipsis(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if Width(s) <= width {
		return s
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(s, width, "…")
}

// Sanitize expands tabs and removes escape sequences and other control
// characters so s can be placed cell by cell on the screen.
func Sanitize(s string) string {
	s = ansi.Strip(s)
	s = strings.ReplaceAll(s, "\t", Repeat(" ", TabWidth))
	return strings.Map(func(r rune) rune {
		if r < 0x20 && r != '\n' || r == 0x7f {
			return -1
		}
		return r
	}, s)
}

// Alignment of a string within a fixed width.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignCenter
	AlignRight
)

// Align pads or truncates s to exactly width cells.
func Align(s string, width int, align Alignment) string {
	s = Limit(s, width)
	pad := width - Width(s)
	if pad <= 0 {
		return s
	}
	switch align {
	case AlignRight:
		return Repeat(" ", pad) + s
	case AlignCenter:
		left := pad / 2
		return Repeat(" ", left) + s + Repeat(" ", pad-left)
	default:
		return s + Repeat(" ", pad)
	}
}
