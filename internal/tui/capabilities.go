package tui

import "cursespp/internal/msgqueue"

// KeyHandler is implemented by widgets that react to keys while focused.
type KeyHandler interface {
	KeyPress(k Key) bool
}

// TextInputHandler is implemented by widgets that edit text. A focused text
// input sees every key before any other handler.
type TextInputHandler interface {
	Write(k Key) bool
}

// MouseHandler is implemented by widgets that react to mouse events.
// Coordinates are relative to the widget's top-left cell, frame included.
type MouseHandler interface {
	MouseEvent(ev *MouseEvent) bool
}

// FocusListener is notified when a widget gains or loses focus.
type FocusListener interface {
	OnFocusChanged(focused bool)
}

// VisibilityListener is notified when a widget is shown or hidden.
type VisibilityListener interface {
	OnVisibilityChanged(visible bool)
}

// Placer lets an overlay choose its own rectangle on the screen.
type Placer interface {
	Place(screen Rect) Rect
}

// Capabilities caches the optional interfaces a widget implements. It is
// resolved once when the widget is bound to its window.
type Capabilities struct {
	Keys       KeyHandler
	Input      TextInputHandler
	Mouse      MouseHandler
	Layout     Layout
	Focus      FocusListener
	Visibility VisibilityListener
	Placer     Placer
	Messages   msgqueue.Target
}

func resolveCapabilities(w Widget) Capabilities {
	var c Capabilities
	c.Keys, _ = w.(KeyHandler)
	c.Input, _ = w.(TextInputHandler)
	c.Mouse, _ = w.(MouseHandler)
	c.Layout, _ = w.(Layout)
	c.Focus, _ = w.(FocusListener)
	c.Visibility, _ = w.(VisibilityListener)
	c.Placer, _ = w.(Placer)
	c.Messages, _ = w.(msgqueue.Target)
	return c
}
