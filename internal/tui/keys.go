package tui

import (
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Key is a normalized key name: printable runes as themselves, named keys
// in lower case ("enter", "pgdown", "f5"), with "ctrl+", "alt+" and
// "shift+" prefixes in that order.
type Key string

func (k Key) String() string { return string(k) }

// Rune returns the printable rune of a single-rune key, or 0.
func (k Key) Rune() rune {
	if r := []rune(string(k)); len(r) == 1 {
		return r[0]
	}
	return 0
}

var namedKeys = map[tcell.Key]string{
	tcell.KeyEnter:     "enter",
	tcell.KeyTab:       "tab",
	tcell.KeyBacktab:   "shift+tab",
	tcell.KeyBackspace: "backspace",
	tcell.KeyDEL:       "backspace",
	tcell.KeyEscape:    "esc",
	tcell.KeyDelete:    "delete",
	tcell.KeyInsert:    "insert",
	tcell.KeyUp:        "up",
	tcell.KeyDown:      "down",
	tcell.KeyLeft:      "left",
	tcell.KeyRight:     "right",
	tcell.KeyHome:      "home",
	tcell.KeyEnd:       "end",
	tcell.KeyPgUp:      "pgup",
	tcell.KeyPgDn:      "pgdown",
	tcell.KeyF1:        "f1",
	tcell.KeyF2:        "f2",
	tcell.KeyF3:        "f3",
	tcell.KeyF4:        "f4",
	tcell.KeyF5:        "f5",
	tcell.KeyF6:        "f6",
	tcell.KeyF7:        "f7",
	tcell.KeyF8:        "f8",
	tcell.KeyF9:        "f9",
	tcell.KeyF10:       "f10",
	tcell.KeyF11:       "f11",
	tcell.KeyF12:       "f12",
}

// DecodeKey converts a tcell key event to a Key. Unknown keys decode to "".
func DecodeKey(ev *tcell.EventKey) Key {
	mods := ev.Modifiers()
	k := ev.Key()

	switch {
	case k == tcell.KeyRune:
		r := ev.Rune()
		name := string(r)
		if r == ' ' {
			name = "space"
		}
		if mods&tcell.ModCtrl != 0 {
			name = "ctrl+" + strings.ToLower(name)
		}
		if mods&tcell.ModAlt != 0 {
			name = "alt+" + name
		}
		return Key(name)

	case k == tcell.KeyCtrlSpace:
		return "ctrl+space"

	case k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ:
		return Key("ctrl+" + string(rune('a'+k-tcell.KeyCtrlA)))
	}

	name, ok := namedKeys[k]
	if !ok {
		// Raw control codes that tcell did not map to a named key.
		if k >= 1 && k <= 26 {
			return Key("ctrl+" + string(rune('a'+k-1)))
		}
		return ""
	}
	if k == tcell.KeyBacktab {
		mods &^= tcell.ModShift
	}
	var b strings.Builder
	if mods&tcell.ModCtrl != 0 {
		b.WriteString("ctrl+")
	}
	if mods&tcell.ModAlt != 0 {
		b.WriteString("alt+")
	}
	if mods&tcell.ModShift != 0 && k != tcell.KeyBacktab {
		b.WriteString("shift+")
	}
	b.WriteString(name)
	return Key(b.String())
}
