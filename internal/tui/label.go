package tui

import (
	"cursespp/internal/strutil"
	"cursespp/internal/theme"
)

// TextLabel draws one line of aligned text.
type TextLabel struct {
	*Window

	text  string
	align strutil.Alignment
}

func NewTextLabel(text string, align strutil.Alignment) *TextLabel {
	l := &TextLabel{Window: newWindow(), text: text, align: align}
	l.Init(l)
	return l
}

func (l *TextLabel) Text() string { return l.text }

func (l *TextLabel) SetText(text string) {
	if text == l.text {
		return
	}
	l.text = text
	l.Invalidate()
}

func (l *TextLabel) SetAlignment(align strutil.Alignment) {
	l.align = align
	l.Invalidate()
}

// SetPair draws the label in p regardless of focus.
func (l *TextLabel) SetPair(p theme.Pair) {
	l.SetColors(Colors{Content: p, ContentFocused: p, Frame: l.colors.Frame, FrameFocused: l.colors.FrameFocused})
}

func (l *TextLabel) Draw(s *Surface) {
	s.PrintPlain(0, 0, strutil.Align(strutil.Sanitize(l.text), s.Width(), l.align))
}
