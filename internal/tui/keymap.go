package tui

import (
	"charm.land/bubbles/v2/key"
)

// KeyMap defines all key bindings for the TUI.
// Groups:
//   - Focus:      FocusNext, FocusPrev (layout-level child cycling)
//   - Scroll:     Up, Down, PageUp, PageDown, Home, End (scrollable and list windows)
//   - Action:     Enter (activate), Esc (close overlay), Parent (directory up)
//   - Browser:    Copy, Refresh, ToggleHidden
//   - Utility:    Help, Quit, ForceQuit
//
// Layouts only see FocusNext/FocusPrev after the focused widget declined
// the key, so a list consumes up/down before they move focus.
type KeyMap struct {
	FocusNext key.Binding
	FocusPrev key.Binding

	Up       key.Binding
	Down     key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding

	Enter  key.Binding
	Esc    key.Binding
	Parent key.Binding

	Copy         key.Binding
	Refresh      key.Binding
	ToggleHidden key.Binding

	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding
}

// ShortHelp returns bindings shown in the status line.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.FocusNext, k.Enter, k.Parent, k.Help, k.Quit}
}

// FullHelp returns all bindings grouped into columns.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.FocusNext, k.FocusPrev, k.Up, k.Down, k.PageUp, k.PageDown, k.Home, k.End},
		{k.Enter, k.Esc, k.Parent, k.Copy, k.Refresh, k.ToggleHidden, k.Help, k.Quit, k.ForceQuit},
	}
}

// Keys is the default key map used throughout the TUI.
var Keys = KeyMap{
	FocusNext: key.NewBinding(
		key.WithKeys("tab", "down", "right"),
		key.WithHelp("tab", "next window"),
	),
	FocusPrev: key.NewBinding(
		key.WithKeys("shift+tab", "up", "left"),
		key.WithHelp("shift+tab", "previous window"),
	),
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "move up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "move down"),
	),
	PageUp: key.NewBinding(
		key.WithKeys("pgup"),
		key.WithHelp("pgup", "page up"),
	),
	PageDown: key.NewBinding(
		key.WithKeys("pgdown"),
		key.WithHelp("pgdn", "page down"),
	),
	Home: key.NewBinding(
		key.WithKeys("home"),
		key.WithHelp("home", "go to top"),
	),
	End: key.NewBinding(
		key.WithKeys("end"),
		key.WithHelp("end", "go to bottom"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Esc: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	Parent: key.NewBinding(
		key.WithKeys("backspace"),
		key.WithHelp("backspace", "parent directory"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy path"),
	),
	Refresh: key.NewBinding(
		key.WithKeys("ctrl+r", "f5"),
		key.WithHelp("ctrl+r", "refresh"),
	),
	ToggleHidden: key.NewBinding(
		key.WithKeys("."),
		key.WithHelp(".", "toggle hidden files"),
	),
	Help: key.NewBinding(
		key.WithKeys("f1", "?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "force quit"),
	),
}
