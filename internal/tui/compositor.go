package tui

import (
	"fmt"

	"cursespp/internal/theme"

	"github.com/gdamore/tcell/v2"
)

// Compositor owns the z-ordered stack of surfaces and paints them onto the
// screen. Index 0 of the stack is the bottom.
type Compositor struct {
	screen  tcell.Screen
	theme   *theme.Theme
	stack   []*Surface
	pending bool
	frozen  bool
	flushes int

	// cursorOwner, when set, is the only window allowed to place the
	// terminal cursor.
	cursorOwner *Window
}

// NewCompositor returns a compositor painting onto screen.
func NewCompositor(screen tcell.Screen, th *theme.Theme) *Compositor {
	if th == nil {
		th = theme.Default()
	}
	return &Compositor{screen: screen, theme: th}
}

// SetTheme changes the theme used to resolve color slots.
func (c *Compositor) SetTheme(th *theme.Theme) {
	c.theme = th
	c.Invalidate()
}

// ScreenRect returns the current screen bounds.
func (c *Compositor) ScreenRect() Rect {
	w, h := c.screen.Size()
	return Rect{Width: w, Height: h}
}

// Surfaces returns the live surfaces from bottom to top.
func (c *Compositor) Surfaces() []*Surface {
	return append([]*Surface(nil), c.stack...)
}

// Invalidate requests a repaint on the next Flush.
func (c *Compositor) Invalidate() {
	c.pending = true
}

// Pending reports whether a repaint has been requested.
func (c *Compositor) Pending() bool {
	return c.pending
}

// Freeze suppresses flushes until Unfreeze. The window tree is untouched.
func (c *Compositor) Freeze() {
	c.frozen = true
}

// Unfreeze re-enables flushing and schedules a full repaint.
func (c *Compositor) Unfreeze() {
	if c.frozen {
		c.frozen = false
		c.pending = true
	}
}

// Frozen reports whether flushing is suppressed.
func (c *Compositor) Frozen() bool {
	return c.frozen
}

// Flushes returns how many physical refreshes have been made.
func (c *Compositor) Flushes() int {
	return c.flushes
}

func (c *Compositor) index(s *Surface) int {
	for i, o := range c.stack {
		if o == s {
			return i
		}
	}
	return -1
}

// create puts a new surface on top of the stack.
func (c *Compositor) create(owner *Window, rect Rect, framed bool) *Surface {
	s := newSurface(owner, rect, framed)
	c.stack = append(c.stack, s)
	c.pending = true
	return s
}

// replace destroys old and puts a new surface in its z slot.
func (c *Compositor) replace(old *Surface, rect Rect, framed bool) *Surface {
	i := c.index(old)
	if old.destroyed || i < 0 {
		panic(fmt.Sprintf("tui: replacing dead surface of window %d", old.owner.id))
	}
	s := newSurface(old.owner, rect, framed)
	s.title, s.colors, s.focused = old.title, old.colors, old.focused
	old.destroyed = true
	c.stack[i] = s
	c.pending = true
	return s
}

func (c *Compositor) destroy(s *Surface) {
	i := c.index(s)
	if s.destroyed || i < 0 {
		panic(fmt.Sprintf("tui: surface of window %d destroyed twice", s.owner.id))
	}
	s.destroyed = true
	c.stack = append(c.stack[:i], c.stack[i+1:]...)
	c.pending = true
}

// raise moves surfaces to the top, keeping their relative order.
func (c *Compositor) raise(surfaces ...*Surface) {
	if moved := c.extract(surfaces); len(moved) > 0 {
		c.stack = append(c.stack, moved...)
		c.pending = true
	}
}

// lower moves surfaces to the bottom, keeping their relative order.
func (c *Compositor) lower(surfaces ...*Surface) {
	if moved := c.extract(surfaces); len(moved) > 0 {
		c.stack = append(moved, c.stack...)
		c.pending = true
	}
}

// extract removes the live members of surfaces from the stack and returns them.
func (c *Compositor) extract(surfaces []*Surface) []*Surface {
	var moved []*Surface
	for _, s := range surfaces {
		if i := c.index(s); i >= 0 {
			c.stack = append(c.stack[:i], c.stack[i+1:]...)
			moved = append(moved, s)
		}
	}
	return moved
}

// Flush repaints the screen if a redraw is pending and the compositor is not
// frozen. Windows with pending content changes are redrawn into their
// surfaces first. It reports whether the screen was refreshed.
func (c *Compositor) Flush() bool {
	if c.frozen || !c.pending {
		return false
	}
	c.pending = false

	for _, s := range c.stack {
		if w := s.owner; w.dirty {
			w.dirty = false
			s.Clear()
			w.self.Draw(s)
		}
	}

	c.screen.SetStyle(c.theme.Style(theme.ContentNormal))
	c.screen.Clear()
	clip := c.ScreenRect()
	var cursor *Surface
	for _, s := range c.stack {
		s.paint(c.screen, c.theme, clip)
		if s.focused && s.cursorOn && (c.cursorOwner == nil || s.owner == c.cursorOwner) {
			cursor = s
		}
	}
	if cursor != nil {
		cr := cursor.ContentRect()
		c.screen.ShowCursor(cr.X+cursor.cursorX, cr.Y+cursor.cursorY)
	} else {
		c.screen.HideCursor()
	}
	c.screen.Show()
	c.flushes++
	return true
}

// PaintNotice clears the screen and shows msg centered, bypassing the frozen
// state. Used while the terminal is too small for the window tree.
func (c *Compositor) PaintNotice(msg string) {
	style := c.theme.Style(theme.TooSmall)
	w, h := c.screen.Size()
	c.screen.SetStyle(style)
	c.screen.Clear()
	c.screen.HideCursor()
	runes := []rune(msg)
	if len(runes) > w {
		runes = runes[:w]
	}
	x, y := (w-len(runes))/2, h/2
	for i, r := range runes {
		c.screen.SetContent(x+i, y, r, nil, style)
	}
	c.screen.Show()
}
