package tui

import (
	"slices"
	"unicode"

	"cursespp/internal/strutil"
	"cursespp/internal/theme"
)

// TextInput is a single-line editor. While focused it sees every key before
// any other handler and keeps the ones it edits with.
type TextInput struct {
	*Window

	text   []rune
	cursor int
	offset int
	hint   string

	// OnChanged fires after every edit.
	OnChanged func(text string)
	// OnEnter fires when enter is pressed.
	OnEnter func(text string)
}

func NewTextInput() *TextInput {
	t := &TextInput{Window: newWindow()}
	t.Init(t)
	t.SetFocusable(true)
	t.colors.Content, t.colors.ContentFocused = theme.TextInput, theme.TextInputFocused
	return t
}

func (t *TextInput) Text() string { return string(t.text) }

// SetText replaces the text and moves the cursor to its end.
func (t *TextInput) SetText(s string) {
	t.text = []rune(s)
	t.cursor = len(t.text)
	t.changed()
}

// SetHint sets the text shown while the input is empty and unfocused.
func (t *TextInput) SetHint(hint string) {
	t.hint = hint
	t.Invalidate()
}

func (t *TextInput) changed() {
	t.Invalidate()
	if t.OnChanged != nil {
		t.OnChanged(string(t.text))
	}
}

func (t *TextInput) Write(k Key) bool {
	switch k {
	case "backspace":
		if t.cursor > 0 {
			t.text = slices.Delete(t.text, t.cursor-1, t.cursor)
			t.cursor--
			t.changed()
		}
	case "delete":
		if t.cursor < len(t.text) {
			t.text = slices.Delete(t.text, t.cursor, t.cursor+1)
			t.changed()
		}
	case "left":
		t.cursor = max(t.cursor-1, 0)
		t.Invalidate()
	case "right":
		t.cursor = min(t.cursor+1, len(t.text))
		t.Invalidate()
	case "home":
		t.cursor = 0
		t.Invalidate()
	case "end":
		t.cursor = len(t.text)
		t.Invalidate()
	case "enter":
		if t.OnEnter != nil {
			t.OnEnter(string(t.text))
		}
	case "space":
		t.insert(' ')
	default:
		r := k.Rune()
		if r == 0 || !unicode.IsPrint(r) {
			return false
		}
		t.insert(r)
	}
	return true
}

func (t *TextInput) insert(r rune) {
	t.text = slices.Insert(t.text, t.cursor, r)
	t.cursor++
	t.changed()
}

func (t *TextInput) Draw(s *Surface) {
	w := s.Width()
	if len(t.text) == 0 && !t.focused && t.hint != "" {
		s.Print(0, 0, strutil.LimitEllipsis(t.hint, w), t.Style(theme.Footer))
		return
	}
	// Keep the cursor inside the visible slice of text.
	if t.cursor < t.offset {
		t.offset = t.cursor
	}
	for t.offset < t.cursor && strutil.Width(string(t.text[t.offset:t.cursor])) >= w {
		t.offset++
	}
	s.PrintPlain(0, 0, string(t.text[t.offset:]))
	s.SetCursor(strutil.Width(string(t.text[t.offset:t.cursor])), 0)
}
