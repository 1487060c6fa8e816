package tui

import (
	"charm.land/bubbles/v2/key"
	"github.com/gdamore/tcell/v2"

	"cursespp/internal/theme"
)

// NoSelection is the selected index of an empty list.
const NoSelection = -1

// ListWindow is a scrollable window with a selected entry. Moving the
// selection re-anchors the view only when the selection leaves it.
type ListWindow struct {
	*ScrollableWindow

	selected int

	// OnSelectionChanged fires after the selected index changed.
	OnSelectionChanged func(newIndex, oldIndex int)
	// OnEntryActivated fires on enter or a double click.
	OnEntryActivated func(index int)
}

// NewListWindow returns a focusable list over a.
func NewListWindow(a Adapter) *ListWindow {
	l := &ListWindow{ScrollableWindow: newScrollableWindow(a)}
	l.Init(l)
	l.SetFocusable(true)
	l.colors.Content, l.colors.ContentFocused = theme.ListItem, theme.ListItem
	l.selected = l.clamp(0)
	return l
}

func (l *ListWindow) clamp(i int) int {
	n := l.adapter.EntryCount()
	if n == 0 {
		return NoSelection
	}
	return min(max(i, 0), n-1)
}

func (l *ListWindow) GetSelectedIndex() int { return l.selected }

// SetSelectedIndex selects entry i, clamped to the list bounds.
func (l *ListWindow) SetSelectedIndex(i int) {
	i = l.clamp(i)
	old := l.selected
	l.selected = i
	l.ensureVisible()
	l.Invalidate()
	if i != old && l.OnSelectionChanged != nil {
		l.OnSelectionChanged(i, old)
	}
}

// ensureVisible re-anchors so the selected entry is fully visible.
func (l *ListWindow) ensureVisible() {
	if l.selected == NoSelection {
		l.anchor = 0
		return
	}
	pos := l.ScrollPosition()
	w, h := l.viewport()
	switch {
	case l.selected < pos.FirstVisibleEntryIndex:
		l.anchor = l.selected
	case l.selected > pos.Last():
		l.anchor = anchorEndingAt(l.adapter, l.selected, h, w)
	default:
		return
	}
	l.follow = false
}

// ScrollUp moves the selection up by delta entries.
func (l *ListWindow) ScrollUp(delta int) {
	if l.selected != NoSelection {
		l.SetSelectedIndex(l.selected - delta)
	}
}

// ScrollDown moves the selection down by delta entries.
func (l *ListWindow) ScrollDown(delta int) {
	if l.selected != NoSelection {
		l.SetSelectedIndex(l.selected + delta)
	}
}

// PageUp shows the page ending just above the first visible entry. The
// selection keeps its row within the page; on the first page it moves to
// the first entry.
func (l *ListWindow) PageUp() {
	if l.selected == NoSelection {
		return
	}
	pos := l.ScrollPosition()
	if pos.FirstVisibleEntryIndex == 0 {
		l.SetSelectedIndex(0)
		return
	}
	w, h := l.viewport()
	l.page(anchorEndingAt(l.adapter, pos.FirstVisibleEntryIndex-1, h, w))
}

// PageDown shows the page starting just below the last visible entry. The
// selection keeps its row within the page; on the last page it moves to
// the last entry.
func (l *ListWindow) PageDown() {
	if l.selected == NoSelection {
		return
	}
	pos := l.ScrollPosition()
	if pos.AtBottom() {
		l.SetSelectedIndex(l.adapter.EntryCount() - 1)
		return
	}
	l.page(pos.Last() + 1)
}

// page anchors at anchor and selects the entry at the selection's old
// offset from the top of the view, clamped to the new page.
func (l *ListWindow) page(anchor int) {
	offset := max(l.selected-l.ScrollPosition().FirstVisibleEntryIndex, 0)
	l.setAnchor(anchor)
	pos := l.ScrollPosition()
	l.SetSelectedIndex(min(pos.FirstVisibleEntryIndex+offset, pos.Last()))
}

// ScrollToTop selects the first entry and anchors at it.
func (l *ListWindow) ScrollToTop() {
	l.ScrollableWindow.ScrollToTop()
	l.SetSelectedIndex(0)
}

// ScrollToBottom selects the last entry and shows the last page.
func (l *ListWindow) ScrollToBottom() {
	l.ScrollableWindow.ScrollToBottom()
	l.SetSelectedIndex(l.adapter.EntryCount() - 1)
}

// OnAdapterChanged keeps the selection inside the new bounds.
func (l *ListWindow) OnAdapterChanged() {
	l.ScrollableWindow.OnAdapterChanged()
	old := l.selected
	l.selected = l.clamp(max(l.selected, 0))
	l.ensureVisible()
	if l.selected != old && l.OnSelectionChanged != nil {
		l.OnSelectionChanged(l.selected, old)
	}
}

// SetAdapter replaces the adapter and selects the first entry.
func (l *ListWindow) SetAdapter(a Adapter) {
	l.ScrollableWindow.SetAdapter(a)
	old := l.selected
	l.selected = l.clamp(0)
	if l.selected != old && l.OnSelectionChanged != nil {
		l.OnSelectionChanged(l.selected, old)
	}
}

func (l *ListWindow) activate() bool {
	if l.selected == NoSelection {
		return false
	}
	if l.OnEntryActivated != nil {
		l.OnEntryActivated(l.selected)
	}
	return true
}

func (l *ListWindow) KeyPress(k Key) bool {
	keys := l.keys()
	switch {
	case key.Matches(k, keys.Up):
		l.ScrollUp(1)
	case key.Matches(k, keys.Down):
		l.ScrollDown(1)
	case key.Matches(k, keys.PageUp):
		l.PageUp()
	case key.Matches(k, keys.PageDown):
		l.PageDown()
	case key.Matches(k, keys.Home):
		l.ScrollToTop()
	case key.Matches(k, keys.End):
		l.ScrollToBottom()
	case key.Matches(k, keys.Enter):
		return l.activate()
	default:
		return false
	}
	return true
}

func (l *ListWindow) MouseEvent(ev *MouseEvent) bool {
	switch {
	case ev.WheelUp():
		l.ScrollUp(1)
		return true
	case ev.WheelDown():
		l.ScrollDown(1)
		return true
	case ev.Clicked(ButtonLeft), ev.Pressed(ButtonLeft):
		i := l.entryAtRow(ev.Y)
		if i < 0 {
			return false
		}
		l.SetSelectedIndex(i)
		if ev.DoubleClicked(ButtonLeft) {
			l.activate()
		}
		return true
	}
	return false
}

// entryAtRow maps a row in window coordinates to an entry index, or -1.
func (l *ListWindow) entryAtRow(y int) int {
	if l.framed {
		y--
	}
	if y < 0 {
		return -1
	}
	pos := l.ScrollPosition()
	w, _ := l.viewport()
	row := 0
	for i := pos.FirstVisibleEntryIndex; i <= pos.Last(); i++ {
		row += entryLines(l.adapter, i, w)
		if y < row {
			return i
		}
	}
	return -1
}

func (l *ListWindow) Draw(s *Surface) {
	l.render(s, func(i int) (tcell.Style, bool) {
		switch {
		case i != l.selected:
			return tcell.StyleDefault, false
		case l.focused:
			return l.Style(theme.ListSelected), true
		default:
			return l.Style(theme.ListSelectedUnfocused), true
		}
	})
}
