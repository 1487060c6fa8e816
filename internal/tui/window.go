package tui

import (
	"fmt"
	"sync/atomic"
	"time"

	"cursespp/internal/msgqueue"
	"cursespp/internal/theme"

	"github.com/gdamore/tcell/v2"
)

var lastWindowID atomic.Int64

var fallbackTheme = theme.Default()

// Widget is anything that can live in the window tree. Concrete widgets embed
// a *Window (directly or through LayoutBase, ScrollableWindow, ...) and bind
// themselves to it with Init so the tree can reach their overrides.
type Widget interface {
	Base() *Window
	Draw(s *Surface)
}

// Window is a node of the window tree. Position is relative to the parent's
// content area (inside its frame), or to the screen for top-level windows.
//
// A window has a surface exactly when it is visible, every ancestor is
// visible, it is attached to a running App, and its bounds fit inside the
// parent's content area all the way up to the screen. Windows that are
// visible but do not fit are marked bad-bounds and render nothing until a
// later show or resize makes them fit.
type Window struct {
	self   Widget
	caps   Capabilities
	id     int
	app    *App
	parent *Window
	layout *LayoutBase

	x, y, width, height int

	visible    bool
	focusable  bool
	focusOrder int
	focused    bool
	framed     bool
	title      string
	colors     Colors

	surface    *Surface
	badBounds  bool
	dirty      bool
	destroying bool
	destroyed  bool
}

func newWindow() *Window {
	return &Window{
		id:      int(lastWindowID.Add(1)),
		visible: true,
		colors:  DefaultColors(),
	}
}

// NewWindow returns a detached, visible window that draws nothing.
func NewWindow() *Window {
	w := newWindow()
	w.Init(w)
	return w
}

// Init binds self as the widget this window represents and caches the
// optional interfaces it implements. Call it once from the widget's
// constructor, after the embedded window exists.
func (w *Window) Init(self Widget) {
	if self.Base() != w {
		panic("tui: Init called with a widget that does not embed this window")
	}
	w.self = self
	w.caps = resolveCapabilities(self)
}

// Base returns w.
func (w *Window) Base() *Window { return w }

// Draw paints nothing; widgets override it.
func (w *Window) Draw(*Surface) {}

// Self returns the widget bound to w.
func (w *Window) Self() Widget { return w.self }

// Capabilities returns the cached optional interfaces of the widget.
func (w *Window) Capabilities() Capabilities { return w.caps }

// ID returns the creation id, which orders focus among equal focus orders.
func (w *Window) ID() int { return w.id }

// App returns the application the window is attached to, or nil.
func (w *Window) App() *App { return w.app }

// Parent returns the parent window, or nil for top-level and detached windows.
func (w *Window) Parent() *Window { return w.parent }

// Surface returns the live surface, or nil.
func (w *Window) Surface() *Surface { return w.surface }

// HasBadBounds reports whether the window wants to be shown but does not fit.
func (w *Window) HasBadBounds() bool { return w.badBounds }

func (w *Window) IsVisible() bool   { return w.visible }
func (w *Window) IsFocused() bool   { return w.focused }
func (w *Window) IsFocusable() bool { return w.focusable }
func (w *Window) FocusOrder() int   { return w.focusOrder }
func (w *Window) IsDestroyed() bool { return w.destroyed }

// Position returns the position relative to the parent's content area.
func (w *Window) Position() (x, y int) { return w.x, w.y }

// Size returns the outer size, frame included.
func (w *Window) Size() (width, height int) { return w.width, w.height }

// ContentSize returns the size inside the frame.
func (w *Window) ContentSize() (width, height int) {
	if w.framed {
		return max(w.width-2, 0), max(w.height-2, 0)
	}
	return w.width, w.height
}

// SetFocusable marks the window as eligible for its parent's focus chain.
func (w *Window) SetFocusable(focusable bool) {
	if w.focusable == focusable {
		return
	}
	w.focusable = focusable
	w.notifyParent()
}

// SetFocusOrder sets the explicit focus order; lower orders come first.
func (w *Window) SetFocusOrder(order int) {
	if w.focusOrder == order {
		return
	}
	w.focusOrder = order
	w.notifyParent()
}

func (w *Window) notifyParent() {
	if w.parent != nil && w.parent.layout != nil {
		w.parent.layout.refreshFocusable()
	}
}

// SetFrameVisible turns the one-cell frame on or off.
func (w *Window) SetFrameVisible(framed bool) {
	if w.framed == framed {
		return
	}
	w.framed = framed
	if w.caps.Layout != nil {
		w.caps.Layout.Layout()
	}
	w.sync()
	w.Invalidate()
}

func (w *Window) IsFrameVisible() bool { return w.framed }

// SetTitle sets the text drawn in the top frame edge.
func (w *Window) SetTitle(title string) {
	w.title = title
	if w.surface != nil {
		w.surface.title = title
	}
	w.Invalidate()
}

func (w *Window) Title() string { return w.title }

// SetColors replaces the four color slots.
func (w *Window) SetColors(c Colors) {
	w.colors = c
	if w.surface != nil {
		w.surface.colors = c
	}
	w.Invalidate()
}

func (w *Window) Colors() Colors { return w.colors }

// Style resolves a color pair with the app's theme.
func (w *Window) Style(p theme.Pair) tcell.Style {
	if w.app != nil {
		return w.app.theme.Style(p)
	}
	return fallbackTheme.Style(p)
}

// AbsoluteRect returns the outer rectangle in screen coordinates.
func (w *Window) AbsoluteRect() Rect {
	var ox, oy int
	if w.parent != nil {
		pc := w.parent.absContentRect()
		ox, oy = pc.X, pc.Y
	}
	return Rect{X: ox + w.x, Y: oy + w.y, Width: w.width, Height: w.height}
}

func (w *Window) absContentRect() Rect {
	r := w.AbsoluteRect()
	if w.framed {
		return r.Inset(1)
	}
	return r
}

// boundsValid walks the ancestor chain; trees are shallow so the cost is a
// handful of comparisons per show or resize.
func (w *Window) boundsValid() bool {
	if w.app == nil || w.width <= 0 || w.height <= 0 {
		return false
	}
	if w.framed && (w.width < 3 || w.height < 3) {
		return false
	}
	outer := w.app.compositor.ScreenRect()
	if w.parent != nil {
		if !w.parent.boundsValid() {
			return false
		}
		outer = w.parent.absContentRect()
	}
	return w.AbsoluteRect().Within(outer)
}

func (w *Window) ancestorsVisible() bool {
	for p := w.parent; p != nil; p = p.parent {
		if !p.visible {
			return false
		}
	}
	return true
}

// sync creates, recreates or destroys the surfaces of w and its descendants
// so they match the current visibility and geometry.
func (w *Window) sync() {
	created := w.syncSurface()
	if w.layout == nil {
		return
	}
	for _, c := range w.layout.children {
		c.Base().sync()
	}
	if created {
		// A new parent surface lands on top; children belong above it.
		w.app.compositor.raise(w.descendantSurfaces()...)
	}
}

func (w *Window) syncSurface() (created bool) {
	wanted := w.app != nil && w.visible && w.ancestorsVisible()
	valid := wanted && w.boundsValid()
	w.badBounds = wanted && !valid

	if !valid {
		if w.surface != nil {
			w.app.compositor.destroy(w.surface)
			w.surface = nil
		}
		return false
	}

	rect := w.AbsoluteRect()
	c := w.app.compositor
	switch {
	case w.surface == nil:
		w.surface = c.create(w, rect, w.framed)
		w.surface.title, w.surface.colors, w.surface.focused = w.title, w.colors, w.focused
		w.dirty = true
		return true
	case w.surface.rect != rect || w.surface.framed != w.framed:
		w.surface = c.replace(w.surface, rect, w.framed)
		w.dirty = true
	}
	return false
}

// descendantSurfaces lists the live surfaces below w in tree order.
func (w *Window) descendantSurfaces() []*Surface {
	var out []*Surface
	if w.layout == nil {
		return out
	}
	for _, c := range w.layout.children {
		cb := c.Base()
		if cb.surface != nil {
			out = append(out, cb.surface)
		}
		out = append(out, cb.descendantSurfaces()...)
	}
	return out
}

func (w *Window) subtreeSurfaces() []*Surface {
	var out []*Surface
	if w.surface != nil {
		out = append(out, w.surface)
	}
	return append(out, w.descendantSurfaces()...)
}

// releaseSurfaces destroys every surface in the subtree.
func (w *Window) releaseSurfaces() {
	if w.surface != nil {
		w.app.compositor.destroy(w.surface)
		w.surface = nil
	}
	if w.layout != nil {
		for _, c := range w.layout.children {
			c.Base().releaseSurfaces()
		}
	}
}

// setApp attaches the subtree to app, or detaches it when app is nil.
// Message targets are registered with the app's queue while attached.
func (w *Window) setApp(app *App) {
	if w.app == app {
		return
	}
	if w.app != nil {
		w.releaseSurfaces()
		if w.caps.Messages != nil {
			w.app.queue.Unregister(w.caps.Messages)
		}
	}
	w.app = app
	if app != nil && w.caps.Messages != nil {
		app.queue.Register(w.caps.Messages)
	}
	if w.layout != nil {
		for _, c := range w.layout.children {
			c.Base().setApp(app)
		}
	}
}

// Show marks the window visible and creates its surface if its bounds fit.
// Showing an already visible window rechecks its bounds.
func (w *Window) Show() {
	was := w.visible
	w.visible = true
	w.sync()
	if !was {
		w.visibilityChanged()
	}
}

// Hide marks the window invisible and destroys the surfaces of its subtree.
func (w *Window) Hide() {
	if !w.visible {
		return
	}
	w.visible = false
	w.sync()
	w.visibilityChanged()
	if w.app != nil {
		w.app.compositor.Invalidate()
	}
}

func (w *Window) visibilityChanged() {
	if w.caps.Visibility != nil {
		w.caps.Visibility.OnVisibilityChanged(w.visible)
	}
	w.notifyParent()
}

// MoveAndResize sets the geometry relative to the parent's content area.
// The surface is recreated only when the absolute rectangle changes.
func (w *Window) MoveAndResize(x, y, width, height int) {
	resized := width != w.width || height != w.height
	w.x, w.y, w.width, w.height = x, y, width, height
	if resized && w.caps.Layout != nil {
		w.caps.Layout.Layout()
	}
	w.sync()
}

// BringToTop raises the window and its descendants above every other surface.
func (w *Window) BringToTop() {
	if w.app != nil {
		w.app.compositor.raise(w.subtreeSurfaces()...)
	}
}

// SendToBottom lowers the window and its descendants below every other surface.
func (w *Window) SendToBottom() {
	if w.app != nil {
		w.app.compositor.lower(w.subtreeSurfaces()...)
	}
}

// Invalidate schedules a redraw of the window's content.
func (w *Window) Invalidate() {
	w.dirty = true
	if w.app != nil {
		w.app.compositor.Invalidate()
	}
}

// Focus gives the window focus colors. It is a no-op if already focused.
func (w *Window) Focus() {
	if w.focused {
		return
	}
	w.focused = true
	if w.surface != nil {
		w.surface.focused = true
	}
	w.Invalidate()
	if w.caps.Focus != nil {
		w.caps.Focus.OnFocusChanged(true)
	}
}

// Blur removes focus. It is a no-op if not focused.
func (w *Window) Blur() {
	if !w.focused {
		return
	}
	w.focused = false
	if w.surface != nil {
		w.surface.focused = false
	}
	w.Invalidate()
	if w.caps.Focus != nil {
		w.caps.Focus.OnFocusChanged(false)
	}
}

// Destroy detaches the window, destroys its subtree and drops its pending
// messages. Destroying a window twice, or from inside its own destruction,
// panics.
func (w *Window) Destroy() {
	if w.destroying || w.destroyed {
		panic(fmt.Sprintf("tui: window %d destroyed twice", w.id))
	}
	w.destroying = true
	if w.layout != nil {
		for n := len(w.layout.children); n > 0; n = len(w.layout.children) {
			w.layout.children[n-1].Base().Destroy()
		}
	}
	switch {
	case w.parent != nil:
		w.parent.layout.RemoveWindow(w.self)
	case w.app != nil:
		w.app.dropTopLevel(w.self)
		w.setApp(nil)
	}
	w.destroying = false
	w.destroyed = true
}

// Post queues a message to this window on the app's queue.
func (w *Window) Post(typ int, data1, data2 any, delay time.Duration) bool {
	if w.app == nil || w.caps.Messages == nil {
		return false
	}
	w.app.queue.Post(msgqueue.Message{Target: w.caps.Messages, Type: typ, Data1: data1, Data2: data2}, delay)
	return true
}

// Debounce is Post replacing any pending message of the same type.
func (w *Window) Debounce(typ int, data1, data2 any, delay time.Duration) bool {
	if w.app == nil || w.caps.Messages == nil {
		return false
	}
	w.app.queue.Debounce(msgqueue.Message{Target: w.caps.Messages, Type: typ, Data1: data1, Data2: data2}, delay)
	return true
}

// RemoveMessages drops pending messages of type typ to this window.
func (w *Window) RemoveMessages(typ int) {
	if w.app != nil && w.caps.Messages != nil {
		w.app.queue.Remove(w.caps.Messages, typ)
	}
}
