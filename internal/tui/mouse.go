package tui

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// MouseButton is a bit set of mouse buttons.
type MouseButton int

const (
	ButtonLeft MouseButton = 1 << iota
	ButtonMiddle
	ButtonRight
)

// MouseEvent is a decoded mouse event. X and Y are relative to the window
// receiving the event; AbsX and AbsY are screen coordinates.
type MouseEvent struct {
	X, Y       int
	AbsX, AbsY int
	Mods       tcell.ModMask

	pressed MouseButton
	clicked MouseButton
	double  MouseButton
	wheel   int
}

// Pressed reports whether b went down with this event.
func (e *MouseEvent) Pressed(b MouseButton) bool { return e.pressed&b != 0 }

// Clicked reports whether b was released on the cell it was pressed on.
func (e *MouseEvent) Clicked(b MouseButton) bool { return e.clicked&b != 0 }

// DoubleClicked reports whether this click of b is the second one on the
// same cell within the double-click interval.
func (e *MouseEvent) DoubleClicked(b MouseButton) bool { return e.double&b != 0 }

func (e *MouseEvent) WheelUp() bool   { return e.wheel < 0 }
func (e *MouseEvent) WheelDown() bool { return e.wheel > 0 }

// Local returns a copy of e with X and Y relative to the cell (x, y).
func (e *MouseEvent) Local(x, y int) MouseEvent {
	c := *e
	c.X, c.Y = e.AbsX-x, e.AbsY-y
	return c
}

func buttonsOf(m tcell.ButtonMask) MouseButton {
	var b MouseButton
	if m&tcell.Button1 != 0 {
		b |= ButtonLeft
	}
	if m&tcell.Button3 != 0 {
		b |= ButtonMiddle
	}
	if m&tcell.Button2 != 0 {
		b |= ButtonRight
	}
	return b
}

// mouseDecoder turns tcell's button state reports into press, click and
// double-click events.
type mouseDecoder struct {
	interval time.Duration
	now      func() time.Time

	held         MouseButton
	downX, downY int

	lastClick    MouseButton
	lastX, lastY int
	lastTime     time.Time
}

func newMouseDecoder(interval time.Duration) *mouseDecoder {
	return &mouseDecoder{interval: interval, now: time.Now}
}

// decode returns nil for events that carry nothing to deliver, such as a
// release away from the pressed cell.
func (d *mouseDecoder) decode(ev *tcell.EventMouse) *MouseEvent {
	x, y := ev.Position()
	mask := ev.Buttons()
	out := &MouseEvent{X: x, Y: y, AbsX: x, AbsY: y, Mods: ev.Modifiers()}

	switch {
	case mask&tcell.WheelUp != 0:
		out.wheel = -1
	case mask&tcell.WheelDown != 0:
		out.wheel = 1
	}

	held := buttonsOf(mask)
	out.pressed = held &^ d.held
	released := d.held &^ held
	if out.pressed != 0 {
		d.downX, d.downY = x, y
	}
	if released != 0 && x == d.downX && y == d.downY {
		out.clicked = released
		now := d.now()
		if released == d.lastClick && x == d.lastX && y == d.lastY && now.Sub(d.lastTime) <= d.interval {
			out.double = released
			d.lastClick = 0
		} else {
			d.lastClick, d.lastX, d.lastY, d.lastTime = released, x, y, now
		}
	}
	d.held = held

	if out.wheel == 0 && out.pressed == 0 && out.clicked == 0 {
		return nil
	}
	return out
}
