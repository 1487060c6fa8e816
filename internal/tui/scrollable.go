package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/gdamore/tcell/v2"

	"cursespp/internal/theme"
)

const wheelLines = 3

// ScrollableWindow shows the entries of an Adapter in a viewport, laying out
// only the entries that are visible.
type ScrollableWindow struct {
	*Window

	adapter   Adapter
	anchor    int
	follow    bool
	scrollbar *bool
}

func newScrollableWindow(a Adapter) *ScrollableWindow {
	if a == nil {
		a = NewSimpleAdapter(0)
	}
	return &ScrollableWindow{Window: newWindow(), adapter: a}
}

// NewScrollableWindow returns a focusable scrollable window over a.
func NewScrollableWindow(a Adapter) *ScrollableWindow {
	sw := newScrollableWindow(a)
	sw.Init(sw)
	sw.SetFocusable(true)
	return sw
}

func (sw *ScrollableWindow) Adapter() Adapter { return sw.adapter }

// SetAdapter replaces the adapter and scrolls to the top.
func (sw *ScrollableWindow) SetAdapter(a Adapter) {
	if a == nil {
		a = NewSimpleAdapter(0)
	}
	sw.adapter = a
	sw.anchor, sw.follow = 0, false
	sw.Invalidate()
}

// SetScrollbarVisible overrides the app-wide scrollbar setting.
func (sw *ScrollableWindow) SetScrollbarVisible(visible bool) {
	sw.scrollbar = &visible
	sw.Invalidate()
}

func (sw *ScrollableWindow) scrollbarVisible() bool {
	if sw.scrollbar != nil {
		return *sw.scrollbar
	}
	return sw.app != nil && sw.app.opts.Scrollbar
}

// viewport returns the size entries are laid out in.
func (sw *ScrollableWindow) viewport() (width, height int) {
	width, height = sw.ContentSize()
	if sw.scrollbarVisible() && width > 1 {
		width--
	}
	return width, height
}

// ScrollPosition returns the currently visible range.
func (sw *ScrollableWindow) ScrollPosition() ScrollPosition {
	w, h := sw.viewport()
	return VisibleRange(sw.adapter, sw.anchor, h, w)
}

func (sw *ScrollableWindow) setAnchor(anchor int) {
	sw.anchor = min(max(anchor, 0), sw.adapter.EntryCount())
	sw.follow = sw.ScrollPosition().AtBottom()
	sw.Invalidate()
}

// ScrollUp moves the view up by delta entries.
func (sw *ScrollableWindow) ScrollUp(delta int) {
	sw.setAnchor(sw.ScrollPosition().FirstVisibleEntryIndex - delta)
}

// ScrollDown moves the view down by delta entries, stopping at the bottom.
func (sw *ScrollableWindow) ScrollDown(delta int) {
	pos := sw.ScrollPosition()
	if pos.AtBottom() {
		sw.follow = true
		return
	}
	sw.setAnchor(pos.FirstVisibleEntryIndex + delta)
}

func (sw *ScrollableWindow) PageUp() {
	sw.ScrollUp(max(sw.ScrollPosition().VisibleEntryCount, 1))
}

func (sw *ScrollableWindow) PageDown() {
	sw.ScrollDown(max(sw.ScrollPosition().VisibleEntryCount, 1))
}

func (sw *ScrollableWindow) ScrollToTop() { sw.setAnchor(0) }

// ScrollToBottom anchors past the last entry so the last page is shown and
// new entries are followed.
func (sw *ScrollableWindow) ScrollToBottom() { sw.setAnchor(sw.adapter.EntryCount()) }

func (sw *ScrollableWindow) IsAtBottom() bool { return sw.ScrollPosition().AtBottom() }

// OnAdapterChanged must be called after the adapter's contents change. A
// view scrolled to the bottom keeps following the tail.
func (sw *ScrollableWindow) OnAdapterChanged() {
	if sw.follow {
		sw.anchor = sw.adapter.EntryCount()
	} else {
		sw.anchor = min(sw.anchor, sw.adapter.EntryCount())
	}
	sw.Invalidate()
}

func (sw *ScrollableWindow) KeyPress(k Key) bool {
	keys := sw.keys()
	switch {
	case key.Matches(k, keys.Up):
		sw.ScrollUp(1)
	case key.Matches(k, keys.Down):
		sw.ScrollDown(1)
	case key.Matches(k, keys.PageUp):
		sw.PageUp()
	case key.Matches(k, keys.PageDown):
		sw.PageDown()
	case key.Matches(k, keys.Home):
		sw.ScrollToTop()
	case key.Matches(k, keys.End):
		sw.ScrollToBottom()
	default:
		return false
	}
	return true
}

func (sw *ScrollableWindow) MouseEvent(ev *MouseEvent) bool {
	switch {
	case ev.WheelUp():
		sw.ScrollUp(wheelLines)
	case ev.WheelDown():
		sw.ScrollDown(wheelLines)
	default:
		return false
	}
	return true
}

func (sw *ScrollableWindow) keys() *KeyMap {
	if sw.app != nil {
		return &sw.app.keys
	}
	return &Keys
}

func (sw *ScrollableWindow) Draw(s *Surface) {
	sw.render(s, nil)
}

// render draws the visible entries and the scrollbar. rowStyle, if set,
// picks a style that fills every line of entry i.
func (sw *ScrollableWindow) render(s *Surface, rowStyle func(i int) (tcell.Style, bool)) ScrollPosition {
	width, height := s.Width(), s.Height()
	bar := sw.scrollbarVisible() && width > 1
	if bar {
		width--
	}
	pos := VisibleRange(sw.adapter, sw.anchor, height, width)

	y := 0
	for i := pos.FirstVisibleEntryIndex; i <= pos.Last() && y < height; i++ {
		e := sw.adapter.EntryAt(i)
		if e == nil {
			y++
			continue
		}
		style, styled := tcell.StyleDefault, false
		if pe, ok := e.(PairEntry); ok {
			if p, ok := pe.Pair(); ok {
				style, styled = sw.Style(p), true
			}
		}
		if rowStyle != nil {
			if st, ok := rowStyle(i); ok {
				style, styled = st, true
			}
		}
		for l := 0; l < e.LineCount() && y < height; l++ {
			if styled {
				s.FillRow(y, style)
				s.Print(0, y, e.Line(l), style)
			} else {
				s.PrintPlain(0, y, e.Line(l))
			}
			y++
		}
	}
	if bar {
		sw.drawScrollbar(s, pos, width)
	}
	return pos
}

func (sw *ScrollableWindow) drawScrollbar(s *Surface, pos ScrollPosition, x int) {
	h := s.Height()
	track, thumb := sw.Style(theme.Scrollbar), sw.Style(theme.ScrollbarThumb)
	for y := range h {
		s.SetCell(x, y, string(tcell.RuneVLine), track)
	}
	if pos.TotalEntries <= pos.VisibleEntryCount {
		return
	}
	size := max(h*pos.VisibleEntryCount/pos.TotalEntries, 1)
	top := 0
	if hidden := pos.TotalEntries - pos.VisibleEntryCount; hidden > 0 {
		top = (h - size) * pos.FirstVisibleEntryIndex / hidden
	}
	for y := top; y < top+size && y < h; y++ {
		s.SetCell(x, y, " ", thumb)
	}
}
