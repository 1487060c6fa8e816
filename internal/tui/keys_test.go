package tui

import (
	"testing"

	"charm.land/bubbles/v2/key"
	"github.com/gdamore/tcell/v2"
)

func TestDecodeKey(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		ch   rune
		mod  tcell.ModMask
		want Key
	}{
		{"letter", tcell.KeyRune, 'a', tcell.ModNone, "a"},
		{"shifted letter", tcell.KeyRune, 'A', tcell.ModShift, "A"},
		{"unicode", tcell.KeyRune, 'é', tcell.ModNone, "é"},
		{"space", tcell.KeyRune, ' ', tcell.ModNone, "space"},
		{"ctrl space", tcell.KeyRune, ' ', tcell.ModCtrl, "ctrl+space"},
		{"alt letter", tcell.KeyRune, 'x', tcell.ModAlt, "alt+x"},
		{"ctrl letter", tcell.KeyRune, 'c', tcell.ModCtrl, "ctrl+c"},
		{"raw control code", tcell.KeyRune, 3, tcell.ModNone, "ctrl+c"},
		{"ctrl key constant", tcell.KeyCtrlR, 0, tcell.ModCtrl, "ctrl+r"},
		{"enter", tcell.KeyEnter, 0, tcell.ModNone, "enter"},
		{"tab", tcell.KeyTab, 0, tcell.ModNone, "tab"},
		{"backtab", tcell.KeyBacktab, 0, tcell.ModNone, "shift+tab"},
		{"backtab with shift", tcell.KeyBacktab, 0, tcell.ModShift, "shift+tab"},
		{"backspace", tcell.KeyBackspace, 0, tcell.ModNone, "backspace"},
		{"backspace2", tcell.KeyBackspace2, 0, tcell.ModNone, "backspace"},
		{"escape", tcell.KeyEsc, 0, tcell.ModNone, "esc"},
		{"delete", tcell.KeyDelete, 0, tcell.ModNone, "delete"},
		{"page down", tcell.KeyPgDn, 0, tcell.ModNone, "pgdown"},
		{"function key", tcell.KeyF5, 0, tcell.ModNone, "f5"},
		{"shift arrow", tcell.KeyUp, 0, tcell.ModShift, "shift+up"},
		{"ctrl alt arrow", tcell.KeyRight, 0, tcell.ModCtrl | tcell.ModAlt, "ctrl+alt+right"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecodeKey(tcell.NewEventKey(tt.key, tt.ch, tt.mod)); got != tt.want {
				t.Errorf("DecodeKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyRune(t *testing.T) {
	if Key("a").Rune() != 'a' || Key("é").Rune() != 'é' {
		t.Error("single rune keys")
	}
	if Key("enter").Rune() != 0 {
		t.Error("named key has a rune")
	}
}

func TestKeyMapMatchesDecodedKeys(t *testing.T) {
	tests := []struct {
		ev      *tcell.EventKey
		binding key.Binding
	}{
		{tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModNone), Keys.FocusPrev},
		{tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), Keys.FocusNext},
		{tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModNone), Keys.PageDown},
		{tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl), Keys.ForceQuit},
		{tcell.NewEventKey(tcell.KeyF1, 0, tcell.ModNone), Keys.Help},
		{tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone), Keys.Help},
	}
	for _, tt := range tests {
		k := DecodeKey(tt.ev)
		if !key.Matches(k, tt.binding) {
			t.Errorf("%q does not match %v", k, tt.binding.Keys())
		}
	}
}
