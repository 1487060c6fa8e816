package tui

import (
	"context"
	"slices"
	"time"

	"cursespp/internal/msgqueue"

	"github.com/gdamore/tcell/v2"
)

// Run processes events until Quit is called, ctx is cancelled or the
// screen's event source closes. The caller owns the screen and finalizes it
// afterwards.
func (a *App) Run(ctx context.Context) error {
	a.ctx = ctx
	events := make(chan tcell.Event, 64)
	stop := make(chan struct{})
	go a.screen.ChannelEvents(events, stop)
	defer close(stop)

	if a.opts.Mouse {
		a.screen.EnableMouse(tcell.MouseButtonEvents)
	}
	a.applyResize()

	timer := time.NewTimer(time.Hour)
	defer timer.Stop()
	for !a.quit.Load() {
		a.Tick()
		if a.quit.Load() {
			break
		}
		timer.Reset(a.nextTimeout())
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			a.HandleEvent(ev)
		case <-a.queue.Wake():
		case <-timer.C:
		}
	}
	return nil
}

// nextTimeout is zero while a repaint is pending, otherwise the idle
// timeout shortened to the next message deadline.
func (a *App) nextTimeout() time.Duration {
	if a.compositor.Pending() && !a.compositor.Frozen() {
		return 0
	}
	d := a.opts.IdleTimeout
	if dl, ok := a.queue.NextDeadline(); ok {
		d = min(d, max(dl.Sub(a.queue.Now()), 0))
	}
	return d
}

// Tick reconciles focus, flushes the compositor and dispatches due messages.
// Run calls it once per loop iteration; tests drive it directly.
func (a *App) Tick() {
	a.reconcileFocus()
	a.compositor.Flush()
	a.queue.Dispatch()
}

// HandleEvent decodes and routes one input event.
func (a *App) HandleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		a.handleKey(DecodeKey(ev))
	case *tcell.EventMouse:
		if !a.opts.Mouse {
			return
		}
		if me := a.mouse.decode(ev); me != nil {
			a.handleMouse(me)
		}
	case *tcell.EventResize:
		a.queue.Debounce(msgqueue.Message{Target: a, Type: MsgResize}, a.opts.ResizeDebounce)
	case *tcell.EventInterrupt:
		if fn, ok := ev.Data().(func()); ok && fn != nil {
			fn()
		}
	}
}

// handleKey routes k: a focused text input first, then the key hook, the
// global key handler, the focused widget and finally the active layout.
func (a *App) handleKey(k Key) {
	if k == "" {
		return
	}
	a.reconcileFocus()
	var target *Window
	if a.focusTarget != nil {
		target = a.focusTarget.Base()
	}
	if target != nil && target.caps.Input != nil && target.caps.Input.Write(k) {
		return
	}
	if a.keyHook != nil && a.keyHook(k) {
		return
	}
	if a.keyHandler != nil && a.keyHandler(k) {
		return
	}
	if target != nil && target.caps.Keys != nil && target.caps.Keys.KeyPress(k) {
		return
	}
	if l := a.ActiveLayout(); l != nil {
		if h := l.Base().caps.Keys; h != nil {
			h.KeyPress(k)
		}
	}
}

// handleMouse delivers ev to the active layout when it is under the pointer.
func (a *App) handleMouse(ev *MouseEvent) {
	l := a.ActiveLayout()
	if l == nil {
		return
	}
	b := l.Base()
	if b.surface == nil || !b.surface.rect.Contains(ev.AbsX, ev.AbsY) || b.caps.Mouse == nil {
		return
	}
	local := ev.Local(b.surface.rect.X, b.surface.rect.Y)
	b.caps.Mouse.MouseEvent(&local)
}

// reconcileFocus points the focus target at the deepest focused widget of
// the active layout. When the target moves, the old target and its
// ancestors below their top-level layout are blurred and the new chain is
// focused, so a layout under an overlay draws unfocused.
func (a *App) reconcileFocus() {
	var target Widget
	var owner *Window
	if l := a.ActiveLayout(); l != nil {
		target = deepestFocus(l)
		owner = l.Base()
	}
	if target != nil {
		owner = target.Base()
	}
	if target == a.focusTarget && owner == a.compositor.cursorOwner {
		return
	}
	if target != a.focusTarget {
		moveFocus(a.focusTarget, target)
	}
	a.focusTarget = target
	a.compositor.cursorOwner = owner
	a.compositor.Invalidate()
}

// moveFocus blurs the focus chain of from that is not shared with to, then
// focuses the chain of to. Top-level layouts are left alone.
func moveFocus(from, to Widget) {
	next := focusChain(to)
	for _, w := range focusChain(from) {
		if !w.destroyed && !slices.Contains(next, w) {
			w.Blur()
		}
	}
	for _, w := range next {
		w.Focus()
	}
}

// focusChain returns w and its ancestors up to, not including, the
// top-level window.
func focusChain(w Widget) []*Window {
	if w == nil {
		return nil
	}
	var chain []*Window
	for b := w.Base(); b != nil && b.parent != nil; b = b.parent {
		chain = append(chain, b)
	}
	return chain
}

func deepestFocus(l Layout) Widget {
	w := l.Container().GetFocus()
	for w != nil {
		inner := w.Base().caps.Layout
		if inner == nil {
			break
		}
		next := inner.Container().GetFocus()
		if next == nil {
			break
		}
		w = next
	}
	return w
}
