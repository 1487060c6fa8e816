package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newFocusLayout(n int) (*LayoutBase, []*Window) {
	l := NewLayout()
	var ws []*Window
	for range n {
		w := newFocusable(0)
		l.AddWindow(w)
		ws = append(ws, w)
	}
	return l, ws
}

func TestFocusChainOrder(t *testing.T) {
	l := NewLayout()
	a, b, c := newFocusable(2), newFocusable(1), newFocusable(1)
	l.AddWindow(a)
	l.AddWindow(b)
	l.AddWindow(c)
	l.AddWindow(NewWindow())

	if l.GetFocus() != a {
		t.Fatalf("auto focus = %v, want the first child added", l.GetFocus())
	}
	if l.FocusableCount() != 3 {
		t.Errorf("FocusableCount() = %d, want 3", l.FocusableCount())
	}

	want := []*Window{b, c, a, b}
	got := []Widget{l.FocusFirst(), l.FocusNext(), l.FocusNext(), l.FocusNext()}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("step %d focused id %d, want id %d", i, got[i].Base().ID(), want[i].ID())
		}
	}
	for _, w := range []*Window{a, c} {
		if w.IsFocused() {
			t.Errorf("window %d still focused", w.ID())
		}
	}
}

func TestFocusCircularWraps(t *testing.T) {
	l, ws := newFocusLayout(3)
	var wraps []bool
	l.OnFocusWrapped = func(forward bool) { wraps = append(wraps, forward) }

	l.FocusLast()
	if got := l.FocusNext(); got != ws[0] {
		t.Fatalf("FocusNext() past the end = %v, want first", got)
	}
	l.FocusNext()
	if len(wraps) != 1 || !wraps[0] {
		t.Fatalf("wraps = %v, want [true]", wraps)
	}

	l.FocusFirst()
	if got := l.FocusPrev(); got != ws[2] {
		t.Fatalf("FocusPrev() past the start = %v, want last", got)
	}
	if len(wraps) != 2 || wraps[1] {
		t.Errorf("wraps = %v, want [true false]", wraps)
	}
}

func TestFocusTerminating(t *testing.T) {
	l, ws := newFocusLayout(3)
	l.SetFocusMode(FocusModeTerminating)
	var terminated []bool
	l.OnFocusTerminated = func(forward bool) { terminated = append(terminated, forward) }

	l.FocusLast()
	if got := l.FocusNext(); got != nil {
		t.Fatalf("FocusNext() past the end = %v, want nil", got)
	}
	if l.FocusIndex() != FocusNone || ws[2].IsFocused() {
		t.Fatalf("FocusIndex() = %d, last focused = %v", l.FocusIndex(), ws[2].IsFocused())
	}
	if len(terminated) != 1 || !terminated[0] {
		t.Fatalf("terminated = %v, want [true]", terminated)
	}

	if got := l.FocusNext(); got != ws[0] {
		t.Errorf("FocusNext() after termination = %v, want first", got)
	}
	if got := l.FocusPrev(); got != nil {
		t.Errorf("FocusPrev() before the start = %v, want nil", got)
	}
	if got := l.FocusPrev(); got != ws[2] {
		t.Errorf("FocusPrev() after termination = %v, want last", got)
	}
	if len(terminated) != 2 || terminated[1] {
		t.Errorf("terminated = %v, want [true false]", terminated)
	}
}

func TestFocusSkipsHidden(t *testing.T) {
	l, ws := newFocusLayout(3)
	ws[1].Hide()
	l.FocusFirst()
	if got := l.FocusNext(); got != ws[2] {
		t.Errorf("FocusNext() = %v, want the third child", got)
	}
	if l.SetFocus(ws[1]) {
		t.Error("SetFocus() accepted a hidden child")
	}
	if l.SetFocus(NewWindow()) {
		t.Error("SetFocus() accepted a stranger")
	}
}

func TestHidingFocusedChildMovesFocus(t *testing.T) {
	l, ws := newFocusLayout(3)
	l.SetFocus(ws[1])

	ws[1].Hide()
	if l.GetFocus() != ws[0] || ws[1].IsFocused() || !ws[0].IsFocused() {
		t.Fatalf("focus after hiding = %v", l.GetFocus())
	}

	for _, w := range ws {
		w.Hide()
	}
	if l.FocusIndex() != FocusNone || l.GetFocus() != nil {
		t.Fatalf("FocusIndex() with nothing visible = %d", l.FocusIndex())
	}
	if l.FocusNext() != nil {
		t.Error("FocusNext() with nothing visible returned a window")
	}

	ws[2].Show()
	if l.GetFocus() != ws[2] {
		t.Errorf("focus after showing = %v, want the shown child", l.GetFocus())
	}
}

func TestRemovingFocusedChildMovesFocus(t *testing.T) {
	l, ws := newFocusLayout(2)
	if !l.RemoveWindow(ws[0]) {
		t.Fatal("RemoveWindow() = false")
	}
	if l.GetFocus() != ws[1] || ws[0].IsFocused() {
		t.Errorf("focus after removal = %v", l.GetFocus())
	}
	if l.RemoveWindow(ws[0]) {
		t.Error("RemoveWindow() of a non-child = true")
	}
}

func TestEmptyLayoutFocus(t *testing.T) {
	l := NewLayout()
	if l.FocusNext() != nil || l.FocusPrev() != nil || l.FocusFirst() != nil {
		t.Error("focus operations on an empty layout returned a window")
	}
	if l.FocusIndex() != FocusNone {
		t.Errorf("FocusIndex() = %d, want FocusNone", l.FocusIndex())
	}
	if l.KeyPress("tab") {
		t.Error("empty layout consumed tab")
	}
}

func TestLayoutKeyNavigation(t *testing.T) {
	l, ws := newFocusLayout(3)
	tests := []struct {
		key  Key
		want *Window
	}{
		{"tab", ws[1]},
		{"down", ws[2]},
		{"right", ws[0]},
		{"shift+tab", ws[2]},
		{"up", ws[1]},
		{"left", ws[0]},
	}
	for _, tt := range tests {
		if !l.KeyPress(tt.key) {
			t.Errorf("KeyPress(%q) = false", tt.key)
		}
		if l.GetFocus() != tt.want {
			t.Errorf("after %q focus = %d, want %d", tt.key, l.GetFocus().Base().ID(), tt.want.ID())
		}
	}
	if l.KeyPress("x") {
		t.Error("layout consumed a non-navigation key")
	}
}

func TestNestedLayoutReceivesKeys(t *testing.T) {
	outer := NewLayout()
	inner := NewLayout()
	inner.SetFocusable(true)
	inner.MoveAndResize(0, 0, 5, 5)
	outer.AddWindow(inner)
	list := NewListWindow(numberedAdapter(10))
	list.MoveAndResize(0, 0, 5, 3)
	inner.AddWindow(list)

	if outer.KeyPress("end") {
		t.Error("layout consumed a key nobody handles")
	}
	if outer.GetFocus() != inner || inner.GetFocus() != list {
		t.Errorf("nested focus not resolved")
	}
}

func TestMouseFocusesTopmostChild(t *testing.T) {
	app, root := newRootApp(t, 40, 20)
	left, right := newMouseWindow(), newMouseWindow()
	left.MoveAndResize(0, 0, 20, 10)
	right.MoveAndResize(20, 0, 20, 10)
	root.AddWindow(left)
	root.AddWindow(right)
	if root.GetFocus() != left {
		t.Fatal("first child not auto-focused")
	}

	app.HandleEvent(tcell.NewEventMouse(25, 3, tcell.Button1, tcell.ModNone))
	if root.GetFocus() != right {
		t.Fatalf("press did not focus the child under the pointer")
	}
	app.HandleEvent(tcell.NewEventMouse(25, 3, tcell.ButtonNone, tcell.ModNone))
	if len(right.events) != 2 {
		t.Fatalf("right received %d events, want 2", len(right.events))
	}
	if ev := right.events[1]; ev.X != 5 || ev.Y != 3 || !ev.Clicked(ButtonLeft) {
		t.Errorf("click delivered at (%d,%d) clicked=%v, want (5,3) true", ev.X, ev.Y, ev.Clicked(ButtonLeft))
	}
	if len(left.events) != 0 {
		t.Errorf("left received %d events", len(left.events))
	}

	// Overlapping children: the one on top wins.
	over := newMouseWindow()
	over.MoveAndResize(15, 0, 10, 5)
	root.AddWindow(over)
	app.HandleEvent(tcell.NewEventMouse(16, 1, tcell.Button1, tcell.ModNone))
	if len(over.events) != 1 || len(left.events) != 0 {
		t.Errorf("overlap: over got %d, left got %d", len(over.events), len(left.events))
	}
}
