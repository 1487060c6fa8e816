package screens

import (
	"fmt"

	"charm.land/bubbles/v2/key"

	"cursespp/internal/tui"
)

const helpWidth = 52

// HelpOverlay lists the key bindings in a centered, framed overlay.
type HelpOverlay struct {
	*tui.LayoutBase

	text  *tui.ScrollableWindow
	lines *tui.SimpleAdapter
	keys  *tui.KeyMap
}

// NewHelpOverlay returns a help overlay for keys.
func NewHelpOverlay(keys *tui.KeyMap) *HelpOverlay {
	lines := tui.NewSimpleAdapter(0)
	h := &HelpOverlay{LayoutBase: tui.NewLayout(), lines: lines, keys: keys}
	h.Init(h)
	h.SetFrameVisible(true)
	h.SetTitle("Help")
	h.SetColors(tui.OverlayColors())

	for i, group := range keys.FullHelp() {
		if i > 0 {
			lines.AddEntry(tui.NewTextEntry("", false))
		}
		for _, b := range group {
			help := b.Help()
			lines.AddEntry(tui.NewTextEntry(fmt.Sprintf(" %-10s %s", help.Key, help.Desc), false))
		}
	}
	h.text = tui.NewScrollableWindow(lines)
	h.text.SetColors(tui.OverlayColors())
	h.AddWindow(h.text)
	return h
}

// Place centers the overlay, sized to its contents where the screen allows.
func (h *HelpOverlay) Place(screen tui.Rect) tui.Rect {
	w := min(helpWidth, screen.Width-4)
	ht := min(h.lines.EntryCount()+2, screen.Height-2)
	return tui.CenterRect(screen, w, ht)
}

func (h *HelpOverlay) Layout() {
	w, ht := h.ContentSize()
	h.text.MoveAndResize(0, 0, w, ht)
}

// KeyPress closes the overlay on esc, help or quit.
func (h *HelpOverlay) KeyPress(k tui.Key) bool {
	if key.Matches(k, h.keys.Esc, h.keys.Help, h.keys.Quit) {
		h.Close()
		return true
	}
	return h.LayoutBase.KeyPress(k)
}

// Close removes the overlay from the app's overlay stack.
func (h *HelpOverlay) Close() {
	if app := h.App(); app != nil {
		app.Overlays().Remove(h)
	}
}
