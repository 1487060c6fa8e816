package tui

import (
	"cmp"
	"slices"

	"charm.land/bubbles/v2/key"
)

// Layout is a widget that owns child windows and a focus chain.
type Layout interface {
	Widget
	Container() *LayoutBase
	// Layout positions the children. It runs whenever the layout's size
	// changes and when the App relayouts after a terminal resize.
	Layout()
}

// FocusMode controls what happens when focus steps past either end of the
// focus chain.
type FocusMode int

const (
	// FocusModeCircular wraps around and fires OnFocusWrapped.
	FocusModeCircular FocusMode = iota
	// FocusModeTerminating drops focus and fires OnFocusTerminated. The next
	// step resumes from the first (or last) child.
	FocusModeTerminating
)

// Focus index sentinels.
const (
	FocusNone = -1
	FocusAuto = -2
)

// LayoutBase is the common container. Widgets that arrange children embed
// it and override Layout.
type LayoutBase struct {
	*Window

	children   []Widget
	focusable  []Widget
	focusIndex int
	focusMode  FocusMode

	// OnFocusWrapped fires after focus wrapped around an end in circular mode.
	OnFocusWrapped func(forward bool)
	// OnFocusTerminated fires after focus stepped off an end in terminating mode.
	OnFocusTerminated func(forward bool)
}

func newLayoutBase() *LayoutBase {
	l := &LayoutBase{Window: newWindow(), focusIndex: FocusAuto}
	l.Window.layout = l
	return l
}

// NewLayout returns an empty layout. Embedders call Init with themselves
// after wrapping it.
func NewLayout() *LayoutBase {
	l := newLayoutBase()
	l.Init(l)
	return l
}

// Container returns l.
func (l *LayoutBase) Container() *LayoutBase { return l }

// Layout does nothing; containers override it to place their children.
func (l *LayoutBase) Layout() {}

// Children returns the children in insertion order.
func (l *LayoutBase) Children() []Widget {
	return slices.Clone(l.children)
}

// AddWindow adds w as the last child, moving it from any previous parent.
func (l *LayoutBase) AddWindow(w Widget) Widget {
	b := w.Base()
	if b.destroyed {
		panic("tui: adding a destroyed window")
	}
	if b.parent == l.Window {
		return w
	}
	if b.parent != nil {
		b.parent.layout.RemoveWindow(w)
	}
	l.children = append(l.children, w)
	b.parent = l.Window
	b.setApp(l.app)
	b.sync()
	l.refreshFocusable()
	return w
}

// RemoveWindow detaches w. It reports whether w was a child.
func (l *LayoutBase) RemoveWindow(w Widget) bool {
	i := slices.Index(l.children, w)
	if i < 0 {
		return false
	}
	b := w.Base()
	if l.GetFocus() == w {
		b.Blur()
		l.focusIndex = FocusAuto
	}
	l.children = slices.Delete(l.children, i, i+1)
	b.setApp(nil)
	b.parent = nil
	b.badBounds = false
	l.refreshFocusable()
	if l.app != nil {
		l.app.compositor.Invalidate()
	}
	return true
}

// refreshFocusable rebuilds the focus chain after children, visibility or
// focus order changed, and resolves an automatic focus index.
func (l *LayoutBase) refreshFocusable() {
	current := l.GetFocus()

	l.focusable = l.focusable[:0]
	for _, c := range l.children {
		if c.Base().focusable {
			l.focusable = append(l.focusable, c)
		}
	}
	slices.SortStableFunc(l.focusable, func(a, b Widget) int {
		ab, bb := a.Base(), b.Base()
		return cmp.Or(cmp.Compare(ab.focusOrder, bb.focusOrder), cmp.Compare(ab.id, bb.id))
	})

	if current != nil {
		i := slices.Index(l.focusable, current)
		if i >= 0 && current.Base().visible {
			l.focusIndex = i
		} else {
			current.Base().Blur()
			l.focusIndex = FocusAuto
		}
	}
	if l.focusIndex == FocusAuto {
		if i := l.firstVisible(0, true); i >= 0 {
			l.setIndex(i)
		}
	}
}

// firstVisible scans from i in the given direction for a visible child.
func (l *LayoutBase) firstVisible(i int, forward bool) int {
	for ; i >= 0 && i < len(l.focusable); i = stepIndex(i, forward) {
		if l.focusable[i].Base().visible {
			return i
		}
	}
	return -1
}

func stepIndex(i int, forward bool) int {
	if forward {
		return i + 1
	}
	return i - 1
}

func (l *LayoutBase) setIndex(i int) {
	old := l.GetFocus()
	l.focusIndex = i
	cur := l.GetFocus()
	if old != nil && old != cur {
		old.Base().Blur()
	}
	if cur != nil {
		cur.Base().Focus()
	}
}

// FocusNext moves focus to the next visible child and returns it.
func (l *LayoutBase) FocusNext() Widget { return l.step(true) }

// FocusPrev moves focus to the previous visible child and returns it.
func (l *LayoutBase) FocusPrev() Widget { return l.step(false) }

func (l *LayoutBase) step(forward bool) Widget {
	n := len(l.focusable)
	if l.firstVisible(0, true) < 0 {
		return nil
	}
	if l.focusIndex < 0 {
		start := 0
		if !forward {
			start = n - 1
		}
		l.setIndex(l.firstVisible(start, forward))
		return l.GetFocus()
	}

	i, wrapped := l.focusIndex, false
	for {
		i = stepIndex(i, forward)
		if i < 0 || i >= n {
			if l.focusMode == FocusModeTerminating {
				l.setIndex(FocusNone)
				if l.OnFocusTerminated != nil {
					l.OnFocusTerminated(forward)
				}
				return nil
			}
			i, wrapped = 0, true
			if !forward {
				i = n - 1
			}
		}
		if l.focusable[i].Base().visible {
			break
		}
	}
	l.setIndex(i)
	if wrapped && l.OnFocusWrapped != nil {
		l.OnFocusWrapped(forward)
	}
	return l.focusable[i]
}

// FocusFirst focuses the first visible focusable child.
func (l *LayoutBase) FocusFirst() Widget {
	if i := l.firstVisible(0, true); i >= 0 {
		l.setIndex(i)
	}
	return l.GetFocus()
}

// FocusLast focuses the last visible focusable child.
func (l *LayoutBase) FocusLast() Widget {
	if i := l.firstVisible(len(l.focusable)-1, false); i >= 0 {
		l.setIndex(i)
	}
	return l.GetFocus()
}

// SetFocus focuses w. It reports false if w is not a visible focusable child.
func (l *LayoutBase) SetFocus(w Widget) bool {
	i := slices.Index(l.focusable, w)
	if i < 0 || !w.Base().visible {
		return false
	}
	l.setIndex(i)
	return true
}

// GetFocus returns the focused child, or nil.
func (l *LayoutBase) GetFocus() Widget {
	if l.focusIndex >= 0 && l.focusIndex < len(l.focusable) {
		return l.focusable[l.focusIndex]
	}
	return nil
}

// FocusIndex returns the position of the focused child in the focus chain,
// or FocusNone. An unresolved automatic index reports FocusNone.
func (l *LayoutBase) FocusIndex() int {
	if l.focusIndex < 0 {
		return FocusNone
	}
	return l.focusIndex
}

// FocusableCount returns the length of the focus chain.
func (l *LayoutBase) FocusableCount() int { return len(l.focusable) }

func (l *LayoutBase) SetFocusMode(mode FocusMode) { l.focusMode = mode }
func (l *LayoutBase) FocusMode() FocusMode        { return l.focusMode }

func (l *LayoutBase) keyMap() *KeyMap {
	if l.app != nil {
		return &l.app.keys
	}
	return &Keys
}

// KeyPress handles focus navigation keys, then offers the key to a focused
// child that is itself a layout.
func (l *LayoutBase) KeyPress(k Key) bool {
	keys := l.keyMap()
	switch {
	case key.Matches(k, keys.FocusNext):
		return l.navigate(true)
	case key.Matches(k, keys.FocusPrev):
		return l.navigate(false)
	}
	if c := l.GetFocus(); c != nil {
		if cb := c.Base(); cb.caps.Layout != nil && cb.caps.Keys != nil {
			return cb.caps.Keys.KeyPress(k)
		}
	}
	return false
}

func (l *LayoutBase) navigate(forward bool) bool {
	if l.firstVisible(0, true) < 0 {
		return false
	}
	l.step(forward)
	return true
}

// MouseEvent delivers ev to the topmost child under the pointer, focusing it
// first on a left press or click.
func (l *LayoutBase) MouseEvent(ev *MouseEvent) bool {
	c := l.childAt(ev.AbsX, ev.AbsY)
	if c == nil {
		return false
	}
	b := c.Base()
	focused := false
	if b.focusable && (ev.Pressed(ButtonLeft) || ev.Clicked(ButtonLeft)) {
		focused = l.SetFocus(c)
	}
	if h := b.caps.Mouse; h != nil {
		r := b.AbsoluteRect()
		local := ev.Local(r.X, r.Y)
		if h.MouseEvent(&local) {
			return true
		}
	}
	return focused
}

// childAt returns the child whose surface is topmost at (x, y).
func (l *LayoutBase) childAt(x, y int) Widget {
	if l.app == nil {
		return nil
	}
	stack := l.app.compositor.stack
	for i := len(stack) - 1; i >= 0; i-- {
		s := stack[i]
		if s.owner.parent == l.Window && s.rect.Contains(x, y) {
			return s.owner.self
		}
	}
	return nil
}
