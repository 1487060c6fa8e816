package tui

import (
	"strings"
	"testing"
)

func TestFlushOncePerTick(t *testing.T) {
	app, root := newRootApp(t, 40, 20)
	f := newFillWindow("a")
	f.MoveAndResize(0, 0, 5, 5)
	root.AddWindow(f)
	c := app.Compositor()

	app.Tick()
	if c.Flushes() != 1 || f.draws != 1 {
		t.Fatalf("first tick: flushes %d draws %d, want 1 1", c.Flushes(), f.draws)
	}

	c.Invalidate()
	c.Invalidate()
	f.Invalidate()
	app.Tick()
	if c.Flushes() != 2 || f.draws != 2 {
		t.Errorf("second tick: flushes %d draws %d, want 2 2", c.Flushes(), f.draws)
	}

	app.Tick()
	if c.Flushes() != 2 {
		t.Errorf("idle tick flushed: %d", c.Flushes())
	}

	c.Invalidate()
	app.Tick()
	if f.draws != 2 {
		t.Errorf("clean window redrawn: draws %d", f.draws)
	}
}

func TestFlushPaintsBottomToTop(t *testing.T) {
	app, scr, _ := newTestApp(t, 40, 20)
	root := NewLayout()
	app.SetRoot(root)
	a, b := newFillWindow("a"), newFillWindow("b")
	a.MoveAndResize(0, 0, 10, 5)
	b.MoveAndResize(5, 2, 10, 5)
	root.AddWindow(a)
	root.AddWindow(b)

	app.Tick()
	if got := screenRune(scr, 6, 3); got != 'b' {
		t.Errorf("overlap = %q, want b on top", got)
	}
	if got := screenRune(scr, 0, 0); got != 'a' {
		t.Errorf("(0,0) = %q, want a", got)
	}

	a.BringToTop()
	app.Tick()
	if got := screenRune(scr, 6, 3); got != 'a' {
		t.Errorf("overlap after BringToTop = %q, want a", got)
	}
	if got := screenRune(scr, 14, 6); got != 'b' {
		t.Errorf("(14,6) = %q, want b", got)
	}
}

func TestFlushDrawsFrameTitle(t *testing.T) {
	app, scr, _ := newTestApp(t, 40, 20)
	root := NewLayout()
	app.SetRoot(root)
	w := newFillWindow("z")
	w.SetFrameVisible(true)
	w.SetTitle("Files")
	w.MoveAndResize(10, 0, 12, 5)
	root.AddWindow(w)
	app.Tick()

	if got := screenRow(scr, 0); !strings.Contains(got, " Files ") {
		t.Errorf("top row %q has no title", got)
	}
	if got := screenRune(scr, 11, 1); got != 'z' {
		t.Errorf("content origin = %q, want z", got)
	}
	if w.Surface().Width() != 10 || w.Surface().Height() != 3 {
		t.Errorf("content size = %dx%d, want 10x3", w.Surface().Width(), w.Surface().Height())
	}
}

func TestFrozenCompositorSkipsFlush(t *testing.T) {
	app, root := newRootApp(t, 40, 20)
	f := newFillWindow("a")
	f.MoveAndResize(0, 0, 5, 5)
	root.AddWindow(f)
	c := app.Compositor()
	app.Tick()

	c.Freeze()
	f.Invalidate()
	if c.Flush() || c.Flushes() != 1 {
		t.Fatalf("frozen compositor flushed")
	}
	if !c.Pending() {
		t.Error("freeze dropped the pending redraw")
	}
	c.Unfreeze()
	if !c.Flush() || c.Flushes() != 2 {
		t.Error("unfrozen compositor did not flush")
	}
}

func TestSurfaceDestroyedTwicePanics(t *testing.T) {
	app, _ := newRootApp(t, 40, 20)
	c := app.Compositor()
	s := c.create(NewWindow(), Rect{Width: 3, Height: 3}, false)
	c.destroy(s)
	defer func() {
		if recover() == nil {
			t.Error("second destroy did not panic")
		}
	}()
	c.destroy(s)
}

func TestSurfacePrint(t *testing.T) {
	s := newSurface(NewWindow(), Rect{Width: 6, Height: 2}, false)
	if n := s.PrintPlain(0, 0, "ab日本"); n != 6 {
		t.Errorf("PrintPlain() = %d cells, want 6", n)
	}
	if got := s.Text(0); got != "ab日本" {
		t.Errorf("row 0 = %q", got)
	}
	// A wide grapheme that does not fit is blanked.
	s.PrintPlain(0, 1, "abcde日")
	if got := s.Text(1); got != "abcde " {
		t.Errorf("row 1 = %q", got)
	}
}
