package tui

import (
	"strings"

	"cursespp/internal/strutil"
	"cursespp/internal/theme"
)

// Entry is one logical item of an Adapter. It renders to one or more lines
// at a given width.
type Entry interface {
	SetWidth(width int)
	LineCount() int
	Line(i int) string
}

// PairEntry is implemented by entries that draw in their own color pair.
type PairEntry interface {
	Pair() (theme.Pair, bool)
}

// TextEntry is a text entry that either word-wraps or truncates to the
// viewport width. Lines are recomputed only when the width changes.
type TextEntry struct {
	text    string
	wrap    bool
	pair    theme.Pair
	hasPair bool

	width int
	lines []string
}

// NewTextEntry returns an entry for text, which is sanitized for display.
func NewTextEntry(text string, wrap bool) *TextEntry {
	return &TextEntry{text: strutil.Sanitize(text), wrap: wrap, width: -1}
}

// WithPair sets the color pair the entry draws in.
func (e *TextEntry) WithPair(p theme.Pair) *TextEntry {
	e.pair, e.hasPair = p, true
	return e
}

func (e *TextEntry) Text() string             { return e.text }
func (e *TextEntry) Pair() (theme.Pair, bool) { return e.pair, e.hasPair }

func (e *TextEntry) SetWidth(width int) {
	if width == e.width {
		return
	}
	e.width = width
	if e.wrap {
		e.lines = strutil.Wrap(e.text, width)
		return
	}
	e.lines = []string{strutil.LimitEllipsis(strings.ReplaceAll(e.text, "\n", " "), width)}
}

func (e *TextEntry) LineCount() int {
	if e.lines == nil {
		e.SetWidth(max(e.width, 1))
	}
	return len(e.lines)
}

func (e *TextEntry) Line(i int) string {
	if i < 0 || i >= e.LineCount() {
		return ""
	}
	return e.lines[i]
}
