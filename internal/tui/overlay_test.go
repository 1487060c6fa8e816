package tui

import "testing"

type placedLayout struct {
	*LayoutBase
	w, h int
}

func newPlacedLayout(w, h int) *placedLayout {
	p := &placedLayout{LayoutBase: newLayoutBase(), w: w, h: h}
	p.Init(p)
	p.SetFrameVisible(true)
	p.SetColors(OverlayColors())
	return p
}

func (p *placedLayout) Place(screen Rect) Rect {
	return CenterRect(screen, p.w, p.h)
}

func TestOverlayStack(t *testing.T) {
	app, root := newRootApp(t, 40, 20)
	o := app.Overlays()

	first := newPlacedLayout(20, 6)
	o.Push(first)
	if o.Len() != 1 || o.Top() != Layout(first) || app.ActiveLayout() != Layout(first) {
		t.Fatal("pushed overlay is not active")
	}
	if got, want := first.AbsoluteRect(), (Rect{X: 10, Y: 7, Width: 20, Height: 6}); got != want {
		t.Errorf("overlay rect = %+v, want %+v", got, want)
	}
	surfaces := app.Compositor().Surfaces()
	if surfaces[len(surfaces)-1] != first.Surface() {
		t.Error("overlay not on top")
	}
	if root.Surface() == nil {
		t.Error("root hidden under overlay")
	}

	second := newPlacedLayout(10, 4)
	o.Push(second)
	if first.Surface() != nil || first.IsVisible() {
		t.Error("previous overlay still visible")
	}
	if second.Surface() == nil {
		t.Fatal("second overlay has no surface")
	}

	if !o.Remove(second) {
		t.Fatal("Remove() = false")
	}
	if second.Surface() != nil || second.App() != nil {
		t.Error("removed overlay still attached")
	}
	if first.Surface() == nil || app.ActiveLayout() != Layout(first) {
		t.Error("previous overlay not restored")
	}

	o.Remove(first)
	if o.Len() != 0 || app.ActiveLayout() != Layout(root) {
		t.Error("root not active after removing every overlay")
	}
	if o.Remove(first) {
		t.Error("removing twice = true")
	}
}

func TestOverlayChildrenAboveOverlay(t *testing.T) {
	app, _ := newRootApp(t, 40, 20)
	ov := newPlacedLayout(20, 8)
	list := NewListWindow(numberedAdapter(5))
	list.MoveAndResize(0, 0, 18, 6)
	ov.AddWindow(list)

	app.Overlays().Push(ov)
	surfaces := app.Compositor().Surfaces()
	if n := len(surfaces); surfaces[n-2] != ov.Surface() || surfaces[n-1] != list.Surface() {
		t.Error("overlay child not directly above the overlay")
	}
	if got, want := list.Surface().Rect(), (Rect{X: 11, Y: 7, Width: 18, Height: 6}); got != want {
		t.Errorf("child rect = %+v, want %+v", got, want)
	}
}

func TestCenterRect(t *testing.T) {
	tests := []struct {
		outer Rect
		w, h  int
		want  Rect
	}{
		{Rect{Width: 40, Height: 20}, 20, 6, Rect{X: 10, Y: 7, Width: 20, Height: 6}},
		{Rect{Width: 10, Height: 5}, 20, 6, Rect{Width: 10, Height: 5}},
		{Rect{X: 2, Y: 2, Width: 11, Height: 5}, 4, 2, Rect{X: 5, Y: 3, Width: 4, Height: 2}},
	}
	for _, tt := range tests {
		if got := CenterRect(tt.outer, tt.w, tt.h); got != tt.want {
			t.Errorf("CenterRect(%+v, %d, %d) = %+v, want %+v", tt.outer, tt.w, tt.h, got, tt.want)
		}
	}
}
