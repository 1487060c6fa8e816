package tui

import (
	"cursespp/internal/theme"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

// Colors holds the four color slots of a window.
type Colors struct {
	Content        theme.Pair
	ContentFocused theme.Pair
	Frame          theme.Pair
	FrameFocused   theme.Pair
}

// DefaultColors are the slots used by plain windows.
func DefaultColors() Colors {
	return Colors{
		Content:        theme.ContentNormal,
		ContentFocused: theme.ContentFocused,
		Frame:          theme.FrameNormal,
		FrameFocused:   theme.FrameFocused,
	}
}

// OverlayColors are the slots used by overlay layouts.
func OverlayColors() Colors {
	return Colors{
		Content:        theme.OverlayContent,
		ContentFocused: theme.OverlayContent,
		Frame:          theme.OverlayFrame,
		FrameFocused:   theme.OverlayFrame,
	}
}

type cell struct {
	text   string
	style  tcell.Style
	styled bool
	// cont marks the trailing half of a wide grapheme.
	cont bool
}

// Surface is the on-screen region of a window: an absolute rectangle, an
// optional frame, and a cell buffer for the content area. Surfaces are
// created and destroyed by the Compositor as windows are shown and hidden.
type Surface struct {
	owner     *Window
	rect      Rect
	framed    bool
	title     string
	colors    Colors
	focused   bool
	destroyed bool

	cells            []cell
	cursorX, cursorY int
	cursorOn         bool
}

func newSurface(owner *Window, rect Rect, framed bool) *Surface {
	s := &Surface{owner: owner, rect: rect, framed: framed}
	c := s.ContentRect()
	if !c.Empty() {
		s.cells = make([]cell, c.Width*c.Height)
	}
	return s
}

// Rect returns the absolute rectangle of the surface, frame included.
func (s *Surface) Rect() Rect { return s.rect }

// Framed reports whether the surface draws a frame.
func (s *Surface) Framed() bool { return s.framed }

// Focused reports whether the surface draws with its focused colors.
func (s *Surface) Focused() bool { return s.focused }

// ContentRect returns the absolute rectangle inside the frame.
func (s *Surface) ContentRect() Rect {
	if s.framed {
		return s.rect.Inset(1)
	}
	return s.rect
}

// Width returns the width of the content area.
func (s *Surface) Width() int { return s.ContentRect().Width }

// Height returns the height of the content area.
func (s *Surface) Height() int { return s.ContentRect().Height }

// Clear resets every content cell to a blank in the content color.
func (s *Surface) Clear() {
	for i := range s.cells {
		s.cells[i] = cell{}
	}
	s.cursorOn = false
}

// Fill paints every content cell with a blank in style.
func (s *Surface) Fill(style tcell.Style) {
	for i := range s.cells {
		s.cells[i] = cell{style: style, styled: true}
	}
}

// FillRow paints row y with blanks in style.
func (s *Surface) FillRow(y int, style tcell.Style) {
	w := s.Width()
	if y < 0 || y >= s.Height() {
		return
	}
	for x := 0; x < w; x++ {
		s.cells[y*w+x] = cell{style: style, styled: true}
	}
}

// SetCell places a single grapheme at (x, y) in content coordinates.
func (s *Surface) SetCell(x, y int, text string, style tcell.Style) {
	w := s.Width()
	if x < 0 || y < 0 || x >= w || y >= s.Height() {
		return
	}
	s.cells[y*w+x] = cell{text: text, style: style, styled: true}
}

// Print writes str starting at (x, y), clipped to the content area, and
// returns the number of cells used. Wide graphemes that do not fit are
// replaced by a blank.
func (s *Surface) Print(x, y int, str string, style tcell.Style) int {
	return s.print(x, y, str, style, true)
}

// PrintPlain is Print using the surface's content color.
func (s *Surface) PrintPlain(x, y int, str string) int {
	return s.print(x, y, str, tcell.StyleDefault, false)
}

func (s *Surface) print(x, y int, str string, style tcell.Style, styled bool) int {
	w := s.Width()
	if y < 0 || y >= s.Height() {
		return 0
	}
	start := x
	g := uniseg.NewGraphemes(str)
	for g.Next() && x < w {
		cw := g.Width()
		if cw == 0 {
			continue
		}
		if x < 0 {
			x += cw
			continue
		}
		if x+cw > w {
			s.cells[y*w+x] = cell{text: " ", style: style, styled: styled}
			x = w
			break
		}
		s.cells[y*w+x] = cell{text: g.Str(), style: style, styled: styled}
		for i := 1; i < cw; i++ {
			s.cells[y*w+x+i] = cell{cont: true, style: style, styled: styled}
		}
		x += cw
	}
	return x - start
}

// SetCursor shows the terminal cursor at (x, y) while the surface is focused.
func (s *Surface) SetCursor(x, y int) {
	s.cursorX, s.cursorY, s.cursorOn = x, y, true
}

// HideCursor stops the surface from requesting the terminal cursor.
func (s *Surface) HideCursor() {
	s.cursorOn = false
}

// Text returns row y of the content buffer as a string, for tests and debugging.
func (s *Surface) Text(y int) string {
	w := s.Width()
	if y < 0 || y >= s.Height() {
		return ""
	}
	out := make([]byte, 0, w)
	for x := 0; x < w; x++ {
		c := s.cells[y*w+x]
		switch {
		case c.cont:
		case c.text == "":
			out = append(out, ' ')
		default:
			out = append(out, c.text...)
		}
	}
	return string(out)
}

func (s *Surface) contentStyle(th *theme.Theme) tcell.Style {
	if s.focused {
		return th.Style(s.colors.ContentFocused)
	}
	return th.Style(s.colors.Content)
}

func (s *Surface) frameStyle(th *theme.Theme) tcell.Style {
	if s.focused {
		return th.Style(s.colors.FrameFocused)
	}
	return th.Style(s.colors.Frame)
}

// paint copies the surface onto the screen, clipped to clip.
func (s *Surface) paint(scr tcell.Screen, th *theme.Theme, clip Rect) {
	if s.framed {
		s.paintFrame(scr, th, clip)
	}

	base := s.contentStyle(th)
	c := s.ContentRect()
	for y := 0; y < c.Height; y++ {
		for x := 0; x < c.Width; x++ {
			cl := s.cells[y*c.Width+x]
			if cl.cont {
				continue
			}
			ax, ay := c.X+x, c.Y+y
			if !clip.Contains(ax, ay) {
				continue
			}
			style := base
			if cl.styled {
				style = cl.style
			}
			mainc, combc := ' ', []rune(nil)
			if cl.text != "" {
				runes := []rune(cl.text)
				mainc, combc = runes[0], runes[1:]
			}
			scr.SetContent(ax, ay, mainc, combc, style)
		}
	}
}

func (s *Surface) paintFrame(scr tcell.Screen, th *theme.Theme, clip Rect) {
	style := s.frameStyle(th)
	r := s.rect
	set := func(x, y int, ch rune) {
		if clip.Contains(x, y) {
			scr.SetContent(x, y, ch, nil, style)
		}
	}
	right, bottom := r.X+r.Width-1, r.Y+r.Height-1
	for x := r.X + 1; x < right; x++ {
		set(x, r.Y, tcell.RuneHLine)
		set(x, bottom, tcell.RuneHLine)
	}
	for y := r.Y + 1; y < bottom; y++ {
		set(r.X, y, tcell.RuneVLine)
		set(right, y, tcell.RuneVLine)
	}
	set(r.X, r.Y, tcell.RuneULCorner)
	set(right, r.Y, tcell.RuneURCorner)
	set(r.X, bottom, tcell.RuneLLCorner)
	set(right, bottom, tcell.RuneLRCorner)

	if s.title == "" || r.Width < 5 {
		return
	}
	titleStyle := th.Style(theme.Title)
	if s.focused {
		titleStyle = th.Style(theme.TitleFocused)
	}
	if s.colors.Frame == theme.OverlayFrame {
		titleStyle = th.Style(theme.OverlayTitle)
	}
	x := r.X + 2
	g := uniseg.NewGraphemes(" " + s.title + " ")
	for g.Next() {
		cw := g.Width()
		if x+cw > right-1 {
			break
		}
		runes := g.Runes()
		if clip.Contains(x, r.Y) {
			scr.SetContent(x, r.Y, runes[0], runes[1:], titleStyle)
		}
		x += cw
	}
}
