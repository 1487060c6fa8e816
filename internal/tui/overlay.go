package tui

import "slices"

// OverlayStack holds layouts shown above the root layout. Only the top
// overlay is visible and receives input; the root stays visible below.
type OverlayStack struct {
	app   *App
	stack []Layout
}

// Top returns the topmost overlay, or nil.
func (o *OverlayStack) Top() Layout {
	if len(o.stack) == 0 {
		return nil
	}
	return o.stack[len(o.stack)-1]
}

func (o *OverlayStack) Len() int { return len(o.stack) }

func (o *OverlayStack) contains(w *Window) bool {
	return slices.ContainsFunc(o.stack, func(l Layout) bool { return l.Base() == w })
}

// Push hides the current top overlay and shows l above everything. Focus
// moves to l, leaving the layouts below unfocused.
func (o *OverlayStack) Push(l Layout) {
	b := l.Base()
	if b.parent != nil {
		panic("tui: pushing a window that has a parent as an overlay")
	}
	o.app.reconcileFocus()
	if o.contains(b) {
		o.Remove(l)
	}
	if top := o.Top(); top != nil {
		top.Base().Hide()
	}
	o.stack = append(o.stack, l)
	b.setApp(o.app)
	o.raise(l)
	o.app.reconcileFocus()
}

// Remove takes l off the stack and hides it. If l was on top, the overlay
// below it becomes visible again and focus returns to the new active layout.
// It reports whether l was on the stack.
func (o *OverlayStack) Remove(l Layout) bool {
	i := slices.IndexFunc(o.stack, func(e Layout) bool { return e.Base() == l.Base() })
	if i < 0 {
		return false
	}
	o.app.reconcileFocus()
	wasTop := i == len(o.stack)-1
	o.stack = slices.Delete(o.stack, i, i+1)
	b := l.Base()
	b.Hide()
	b.setApp(nil)
	if top := o.Top(); wasTop && top != nil {
		o.raise(top)
	}
	o.app.reconcileFocus()
	o.app.compositor.Invalidate()
	return true
}

// raise places, shows and raises l.
func (o *OverlayStack) raise(l Layout) {
	o.app.placeTopLevel(l)
	l.Base().Show()
	l.Base().BringToTop()
}

// relayout re-places every overlay after a terminal resize.
func (o *OverlayStack) relayout() {
	for _, l := range o.stack {
		o.app.placeTopLevel(l)
	}
}

// CenterRect returns a width x height rectangle centered in outer and
// clipped to it.
func CenterRect(outer Rect, width, height int) Rect {
	width, height = min(width, outer.Width), min(height, outer.Height)
	return Rect{
		X:      outer.X + (outer.Width-width)/2,
		Y:      outer.Y + (outer.Height-height)/2,
		Width:  width,
		Height: height,
	}
}
