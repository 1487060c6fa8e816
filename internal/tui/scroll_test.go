package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"cursespp/internal/theme"
)

// fixedEntry is an entry of a fixed line count.
type fixedEntry int

func (e fixedEntry) SetWidth(int)    {}
func (e fixedEntry) LineCount() int  { return int(e) }
func (e fixedEntry) Line(int) string { return "x" }

type fixedAdapter []int

func (a fixedAdapter) EntryCount() int     { return len(a) }
func (a fixedAdapter) EntryAt(i int) Entry { return fixedEntry(a[i]) }

func uniform(n int) fixedAdapter {
	a := make(fixedAdapter, n)
	for i := range a {
		a[i] = 1
	}
	return a
}

func numberedAdapter(n int) *SimpleAdapter {
	a := NewSimpleAdapter(0)
	for i := range n {
		a.AddEntry(NewTextEntry(fmt.Sprintf("item %d", i), false))
	}
	return a
}

func TestVisibleRange(t *testing.T) {
	tests := []struct {
		name      string
		adapter   fixedAdapter
		desired   int
		height    int
		wantFirst int
		wantCount int
		wantLines int
	}{
		{"top of long list", uniform(50), 0, 10, 0, 10, 10},
		{"middle", uniform(50), 20, 10, 20, 10, 10},
		{"near the end fills backward", uniform(50), 45, 10, 40, 10, 10},
		{"past the end", uniform(50), 100, 10, 40, 10, 10},
		{"negative anchor", uniform(50), -4, 10, 0, 10, 10},
		{"short list", uniform(5), 3, 10, 0, 5, 5},
		{"empty", nil, 3, 10, 0, 0, 0},
		{"overflowing entry excluded", fixedAdapter{3, 3, 3, 3}, 0, 7, 0, 2, 6},
		{"backward fill stops on overflow", fixedAdapter{3, 3, 3, 3}, 3, 7, 2, 2, 6},
		{"exact fit", fixedAdapter{2, 3, 5}, 1, 8, 1, 2, 8},
		{"oversize entry clipped", fixedAdapter{2, 12, 2}, 1, 5, 1, 1, 5},
		{"oversize last entry clipped", fixedAdapter{1, 9}, 1, 5, 1, 1, 5},
		{"oversize next entry stops forward pass", fixedAdapter{1, 9}, 0, 5, 0, 1, 1},
		{"zero height", uniform(5), 0, 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VisibleRange(tt.adapter, tt.desired, tt.height, 20)
			if got.FirstVisibleEntryIndex != tt.wantFirst || got.VisibleEntryCount != tt.wantCount || got.LineCount != tt.wantLines {
				t.Errorf("VisibleRange() = first %d count %d lines %d, want first %d count %d lines %d",
					got.FirstVisibleEntryIndex, got.VisibleEntryCount, got.LineCount,
					tt.wantFirst, tt.wantCount, tt.wantLines)
			}
			if got.TotalEntries != len(tt.adapter) {
				t.Errorf("TotalEntries = %d, want %d", got.TotalEntries, len(tt.adapter))
			}
		})
	}
}

func TestVisibleRangeInvariants(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	for n := range 500 {
		a := make(fixedAdapter, r.IntN(30))
		for i := range a {
			a[i] = 1 + r.IntN(6)
		}
		height := 1 + r.IntN(12)
		desired := r.IntN(40) - 5
		pos := VisibleRange(a, desired, height, 10)

		if len(a) == 0 {
			if pos.VisibleEntryCount != 0 {
				t.Fatalf("case %d: empty adapter shows %d entries", n, pos.VisibleEntryCount)
			}
			continue
		}
		if pos.VisibleEntryCount < 1 || pos.FirstVisibleEntryIndex < 0 || pos.Last() >= len(a) {
			t.Fatalf("case %d: range [%d,%d] outside [0,%d)", n, pos.FirstVisibleEntryIndex, pos.Last(), len(a))
		}
		if pos.LineCount > height {
			t.Fatalf("case %d: %d lines in a %d line viewport", n, pos.LineCount, height)
		}
		sum := 0
		for i := pos.FirstVisibleEntryIndex; i <= pos.Last(); i++ {
			sum += a[i]
		}
		if pos.VisibleEntryCount == 1 && sum > height {
			sum = height
		}
		if sum != pos.LineCount {
			t.Fatalf("case %d: LineCount %d, entries sum to %d", n, pos.LineCount, sum)
		}
	}
}

func TestTextEntry(t *testing.T) {
	e := NewTextEntry("hello world foo", true)
	e.SetWidth(5)
	if e.LineCount() != 3 || e.Line(1) != "world" {
		t.Errorf("wrapped lines = %d, line 1 = %q", e.LineCount(), e.Line(1))
	}
	e.SetWidth(40)
	if e.LineCount() != 1 {
		t.Errorf("wide lines = %d, want 1", e.LineCount())
	}

	single := NewTextEntry("one\ttwo\x1b[31m three", false)
	single.SetWidth(80)
	if got := single.Line(0); got != "one    two three" {
		t.Errorf("sanitized line = %q", got)
	}
	if single.Line(5) != "" {
		t.Error("out of range line not empty")
	}
}

func TestSimpleAdapterTrimsFront(t *testing.T) {
	a := NewSimpleAdapter(3)
	trimmed := 0
	for i := range 5 {
		trimmed += a.AddEntry(NewTextEntry(fmt.Sprint(i), false))
	}
	if a.EntryCount() != 3 || trimmed != 2 {
		t.Fatalf("count %d trimmed %d, want 3 and 2", a.EntryCount(), trimmed)
	}
	if got := a.EntryAt(0).(*TextEntry).Text(); got != "2" {
		t.Errorf("oldest entry = %q, want %q", got, "2")
	}
	if a.EntryAt(3) != nil {
		t.Error("EntryAt past the end not nil")
	}
	a.Clear()
	if a.EntryCount() != 0 {
		t.Error("Clear() left entries")
	}
}

func TestScrollableFollowsTail(t *testing.T) {
	a := NewSimpleAdapter(0)
	sw := NewScrollableWindow(a)
	sw.MoveAndResize(0, 0, 20, 5)
	add := func(n int) {
		for range n {
			a.AddEntry(NewTextEntry("line", false))
		}
		sw.OnAdapterChanged()
	}

	add(3)
	sw.ScrollToBottom()
	add(10)
	if pos := sw.ScrollPosition(); pos.FirstVisibleEntryIndex != 8 || !sw.IsAtBottom() {
		t.Fatalf("following: first %d atBottom %v, want 8 true", pos.FirstVisibleEntryIndex, sw.IsAtBottom())
	}

	sw.ScrollUp(2)
	add(1)
	if pos := sw.ScrollPosition(); pos.FirstVisibleEntryIndex != 6 || sw.IsAtBottom() {
		t.Fatalf("scrolled up: first %d atBottom %v, want 6 false", pos.FirstVisibleEntryIndex, sw.IsAtBottom())
	}

	sw.ScrollDown(100)
	if got := sw.ScrollPosition().FirstVisibleEntryIndex; got != 9 {
		t.Errorf("after ScrollDown(100) first = %d, want 9", got)
	}
	sw.PageUp()
	if got := sw.ScrollPosition().FirstVisibleEntryIndex; got != 4 {
		t.Errorf("after PageUp first = %d, want 4", got)
	}
	sw.ScrollToTop()
	if got := sw.ScrollPosition().FirstVisibleEntryIndex; got != 0 {
		t.Errorf("after ScrollToTop first = %d, want 0", got)
	}
	sw.PageDown()
	if got := sw.ScrollPosition().FirstVisibleEntryIndex; got != 5 {
		t.Errorf("after PageDown first = %d, want 5", got)
	}
}

func TestScrollableKeysAndWheel(t *testing.T) {
	sw := NewScrollableWindow(numberedAdapter(30))
	sw.MoveAndResize(0, 0, 20, 5)

	steps := []struct {
		key  Key
		want int
	}{
		{"down", 1},
		{"pgdown", 6},
		{"end", 25},
		{"up", 24},
		{"home", 0},
	}
	for _, s := range steps {
		if !sw.KeyPress(s.key) {
			t.Errorf("KeyPress(%q) = false", s.key)
		}
		if got := sw.ScrollPosition().FirstVisibleEntryIndex; got != s.want {
			t.Errorf("after %q first = %d, want %d", s.key, got, s.want)
		}
	}
	if sw.KeyPress("x") {
		t.Error("scrollable consumed x")
	}
	sw.MouseEvent(&MouseEvent{wheel: 1})
	if got := sw.ScrollPosition().FirstVisibleEntryIndex; got != wheelLines {
		t.Errorf("after wheel first = %d, want %d", got, wheelLines)
	}
}

func TestListSelectionReanchors(t *testing.T) {
	l := NewListWindow(numberedAdapter(50))
	l.MoveAndResize(0, 0, 20, 10)
	var changes [][2]int
	l.OnSelectionChanged = func(n, o int) { changes = append(changes, [2]int{n, o}) }

	steps := []struct {
		name      string
		do        func()
		wantSel   int
		wantFirst int
	}{
		{"down within view", func() { l.ScrollDown(9) }, 9, 0},
		{"down out of view", func() { l.ScrollDown(1) }, 10, 1},
		{"up within view", func() { l.ScrollUp(5) }, 5, 1},
		{"up out of view", func() { l.ScrollUp(5) }, 0, 0},
		{"page down", l.PageDown, 10, 10},
		{"page down again", l.PageDown, 20, 20},
		{"page up", l.PageUp, 10, 10},
		{"bottom", l.ScrollToBottom, 49, 40},
		{"page up from bottom", l.PageUp, 39, 30},
		{"page down to last page", l.PageDown, 49, 40},
		{"page down on last page", l.PageDown, 49, 40},
		{"clamped down", func() { l.ScrollDown(5) }, 49, 40},
		{"top", l.ScrollToTop, 0, 0},
		{"page up on first page", l.PageUp, 0, 0},
		{"clamped set", func() { l.SetSelectedIndex(-3) }, 0, 0},
	}
	for _, s := range steps {
		s.do()
		if got := l.GetSelectedIndex(); got != s.wantSel {
			t.Errorf("%s: selected = %d, want %d", s.name, got, s.wantSel)
		}
		if got := l.ScrollPosition().FirstVisibleEntryIndex; got != s.wantFirst {
			t.Errorf("%s: first = %d, want %d", s.name, got, s.wantFirst)
		}
	}
	if len(changes) != 11 {
		t.Errorf("selection changes = %v, want 11", changes)
	}
	if changes[0] != [2]int{9, 0} {
		t.Errorf("first change = %v, want [9 0]", changes[0])
	}
}

func TestListActivation(t *testing.T) {
	l := NewListWindow(numberedAdapter(10))
	l.MoveAndResize(0, 0, 20, 5)
	activated := -1
	l.OnEntryActivated = func(i int) { activated = i }

	l.KeyPress("down")
	if !l.KeyPress("enter") || activated != 1 {
		t.Errorf("enter activated %d, want 1", activated)
	}

	l.MouseEvent(&MouseEvent{Y: 3, pressed: ButtonLeft})
	if l.GetSelectedIndex() != 3 {
		t.Errorf("click selected %d, want 3", l.GetSelectedIndex())
	}
	l.MouseEvent(&MouseEvent{Y: 2, clicked: ButtonLeft, double: ButtonLeft})
	if activated != 2 {
		t.Errorf("double click activated %d, want 2", activated)
	}
	if l.MouseEvent(&MouseEvent{Y: 7, pressed: ButtonLeft}) {
		t.Error("click below the last row was consumed")
	}
	l.MouseEvent(&MouseEvent{wheel: 1})
	if l.GetSelectedIndex() != 3 {
		t.Errorf("wheel selected %d, want 3", l.GetSelectedIndex())
	}

	empty := NewListWindow(nil)
	if empty.GetSelectedIndex() != NoSelection || empty.KeyPress("enter") {
		t.Error("empty list has a selection")
	}
}

func TestListAdapterChangeClampsSelection(t *testing.T) {
	a := numberedAdapter(10)
	l := NewListWindow(a)
	l.MoveAndResize(0, 0, 20, 5)
	l.ScrollToBottom()

	a.SetEntries(a.entries[:4])
	l.OnAdapterChanged()
	if l.GetSelectedIndex() != 3 {
		t.Errorf("selection after shrink = %d, want 3", l.GetSelectedIndex())
	}
	a.Clear()
	l.OnAdapterChanged()
	if l.GetSelectedIndex() != NoSelection {
		t.Errorf("selection of empty list = %d", l.GetSelectedIndex())
	}
}

func TestListDrawsSelection(t *testing.T) {
	app, root := newRootApp(t, 40, 20)
	l := NewListWindow(numberedAdapter(20))
	l.MoveAndResize(0, 0, 20, 5)
	root.AddWindow(l)
	app.Tick()

	s := l.Surface()
	if got := strings.TrimRight(s.Text(0), " "); got != "item 0" {
		t.Errorf("row 0 = %q", got)
	}
	if got, want := s.cells[0].style, app.Theme().Style(theme.ListSelected); got != want {
		t.Errorf("selected row style = %v, want %v", got, want)
	}

	l.Blur()
	app.Tick()
	s = l.Surface()
	if got, want := s.cells[0].style, app.Theme().Style(theme.ListSelectedUnfocused); got != want {
		t.Errorf("unfocused selected row style = %v, want %v", got, want)
	}
	if s.cells[s.Width()].styled {
		t.Error("unselected row has its own style")
	}
}

func TestScrollbarColumn(t *testing.T) {
	app, root := newRootApp(t, 40, 20)
	sw := NewScrollableWindow(numberedAdapter(20))
	sw.SetScrollbarVisible(true)
	sw.MoveAndResize(0, 0, 10, 5)
	root.AddWindow(sw)
	app.Tick()

	s := sw.Surface()
	thumb := app.Theme().Style(theme.ScrollbarThumb)
	if got := s.cells[9].style; got != thumb {
		t.Errorf("top of scrollbar = %v, want thumb", got)
	}
	if got := s.cells[4*10+9].style; got == thumb {
		t.Error("bottom of scrollbar drawn as thumb at the top of the list")
	}
}
