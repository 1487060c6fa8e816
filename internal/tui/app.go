package tui

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"cursespp/internal/config"
	"cursespp/internal/constants"
	"cursespp/internal/logger"
	"cursespp/internal/msgqueue"
	"cursespp/internal/theme"

	"github.com/gdamore/tcell/v2"
)

// Options tune the App. Zero durations fall back to the defaults.
type Options struct {
	MinWidth       int
	MinHeight      int
	ResizeDebounce time.Duration
	IdleTimeout    time.Duration
	DoubleClick    time.Duration
	FocusMode      FocusMode
	Scrollbar      bool
	Mouse          bool

	// Clock replaces time.Now for the message queue and the mouse decoder.
	Clock func() time.Time
}

// DefaultOptions returns the options matching the default configuration.
func DefaultOptions() Options {
	return OptionsFromConfig(config.Default().UI)
}

// OptionsFromConfig converts the [ui] configuration section.
func OptionsFromConfig(ui config.UIConfig) Options {
	mode := FocusModeCircular
	if strings.EqualFold(ui.FocusMode, constants.FocusModeTerminating) {
		mode = FocusModeTerminating
	}
	return Options{
		MinWidth:       ui.MinWidth,
		MinHeight:      ui.MinHeight,
		ResizeDebounce: ui.ResizeDebounce(),
		IdleTimeout:    ui.IdleTimeout(),
		DoubleClick:    ui.DoubleClick(),
		FocusMode:      mode,
		Scrollbar:      ui.Scrollbar,
		Mouse:          ui.Mouse,
	}
}

// App ties the window tree to a screen. It owns the compositor, the message
// queue, the overlay stack, the theme and the key map, and runs the event
// loop. Everything except the message queue must be used from the loop's
// goroutine.
type App struct {
	screen     tcell.Screen
	compositor *Compositor
	queue      *msgqueue.Queue
	overlays   *OverlayStack
	theme      *theme.Theme
	keys       KeyMap
	opts       Options
	mouse      *mouseDecoder
	ctx        context.Context

	root        Layout
	focusTarget Widget

	keyHook    func(Key) bool
	keyHandler func(Key) bool

	quit atomic.Bool
}

// NewApp returns an App drawing on screen, which must already be
// initialized. A nil theme uses the built-in default.
func NewApp(screen tcell.Screen, th *theme.Theme, opts Options) *App {
	if th == nil {
		th = theme.Default()
	}
	if opts.IdleTimeout <= 0 {
		opts.IdleTimeout = 250 * time.Millisecond
	}
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = 400 * time.Millisecond
	}
	opts.ResizeDebounce = max(opts.ResizeDebounce, 0)

	var qopts []msgqueue.Option
	mouse := newMouseDecoder(opts.DoubleClick)
	if opts.Clock != nil {
		qopts = append(qopts, msgqueue.WithClock(opts.Clock))
		mouse.now = opts.Clock
	}
	a := &App{
		screen:     screen,
		compositor: NewCompositor(screen, th),
		queue:      msgqueue.New(qopts...),
		theme:      th,
		keys:       Keys,
		opts:       opts,
		mouse:      mouse,
		ctx:        context.Background(),
	}
	a.overlays = &OverlayStack{app: a}
	a.queue.Register(a)
	return a
}

func (a *App) Screen() tcell.Screen         { return a.screen }
func (a *App) Compositor() *Compositor      { return a.compositor }
func (a *App) Queue() *msgqueue.Queue       { return a.queue }
func (a *App) Overlays() *OverlayStack      { return a.overlays }
func (a *App) Theme() *theme.Theme          { return a.theme }
func (a *App) Options() Options             { return a.opts }
func (a *App) Keys() *KeyMap                { return &a.keys }
func (a *App) Root() Layout                 { return a.root }
func (a *App) FocusTarget() Widget          { return a.focusTarget }
func (a *App) SetKeyHook(fn func(Key) bool) { a.keyHook = fn }

// Context returns the context Run was called with, for logging from
// handlers.
func (a *App) Context() context.Context { return a.ctx }

// SetKeyHandler sets the global key handler, consulted after the key hook
// and before the focused widget.
func (a *App) SetKeyHandler(fn func(Key) bool) { a.keyHandler = fn }

// SetKeyMap replaces the key bindings.
func (a *App) SetKeyMap(k KeyMap) { a.keys = k }

// SetTheme switches the theme and repaints everything.
func (a *App) SetTheme(th *theme.Theme) {
	a.theme = th
	a.compositor.SetTheme(th)
	a.invalidateTree()
}

func (a *App) invalidateTree() {
	for _, s := range a.compositor.stack {
		s.owner.dirty = true
	}
	a.compositor.Invalidate()
}

// SetRoot makes l the root layout, filling the screen below any overlays.
func (a *App) SetRoot(l Layout) {
	if a.root != nil {
		a.root.Base().setApp(nil)
	}
	a.root = l
	a.focusTarget = nil
	if l == nil {
		a.compositor.Invalidate()
		return
	}
	b := l.Base()
	if b.parent != nil {
		panic("tui: root layout has a parent")
	}
	l.Container().SetFocusMode(a.opts.FocusMode)
	b.setApp(a)
	a.placeTopLevel(l)
	b.Show()
	b.SendToBottom()
}

// ActiveLayout returns the top overlay, or the root layout when there are
// no overlays.
func (a *App) ActiveLayout() Layout {
	if top := a.overlays.Top(); top != nil {
		return top
	}
	return a.root
}

// placeTopLevel sizes a root or overlay layout to the screen, or to the
// rectangle its Placer chooses.
func (a *App) placeTopLevel(l Layout) {
	screen := a.compositor.ScreenRect()
	r := screen
	if p := l.Base().caps.Placer; p != nil {
		r = p.Place(screen)
	}
	l.Base().MoveAndResize(r.X, r.Y, r.Width, r.Height)
}

// dropTopLevel forgets w if it is the root or an overlay.
func (a *App) dropTopLevel(w Widget) {
	if a.root != nil && a.root.Base() == w.Base() {
		a.root = nil
	}
	if l, ok := w.(Layout); ok {
		a.overlays.Remove(l)
	}
	if a.focusTarget != nil && a.focusTarget.Base() == w.Base() {
		a.focusTarget = nil
	}
}

// ProcessMessage handles the framework's own messages.
func (a *App) ProcessMessage(m *msgqueue.Message) {
	switch m.Type {
	case MsgResize:
		a.applyResize()
	}
}

// applyResize runs once a burst of resize events has settled.
func (a *App) applyResize() {
	w, h := a.screen.Size()
	if w < a.opts.MinWidth || h < a.opts.MinHeight {
		if !a.compositor.Frozen() {
			logger.Debug(a.ctx, "Terminal too small: %dx%d (need %dx%d)", w, h, a.opts.MinWidth, a.opts.MinHeight)
		}
		a.compositor.Freeze()
		a.compositor.PaintNotice(fmt.Sprintf("Terminal too small (%dx%d, need %dx%d)", w, h, a.opts.MinWidth, a.opts.MinHeight))
		return
	}
	logger.Trace(a.ctx, "Resized to %dx%d", w, h)
	a.compositor.Unfreeze()
	if a.root != nil {
		a.placeTopLevel(a.root)
	}
	a.overlays.relayout()
	a.screen.Sync()
	a.invalidateTree()
}

// Call runs fn on the event loop goroutine. It is safe to call from any
// goroutine.
func (a *App) Call(fn func()) error {
	return a.screen.PostEvent(tcell.NewEventInterrupt(fn))
}

// Quit makes Run return after the current tick. It is safe to call from any
// goroutine.
func (a *App) Quit() {
	a.quit.Store(true)
	_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
}
