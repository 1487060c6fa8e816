package tui

import (
	"strings"
	"testing"
	"time"

	"cursespp/internal/msgqueue"

	"github.com/gdamore/tcell/v2"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newTestScreen(t *testing.T, width, height int) tcell.SimulationScreen {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	scr.SetSize(width, height)
	t.Cleanup(scr.Fini)
	return scr
}

func newTestApp(t *testing.T, width, height int) (*App, tcell.SimulationScreen, *fakeClock) {
	t.Helper()
	scr := newTestScreen(t, width, height)
	clk := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	app := NewApp(scr, nil, Options{
		MinWidth:       10,
		MinHeight:      5,
		ResizeDebounce: 100 * time.Millisecond,
		IdleTimeout:    50 * time.Millisecond,
		DoubleClick:    400 * time.Millisecond,
		Mouse:          true,
		Clock:          clk.Now,
	})
	return app, scr, clk
}

// newRootApp returns an app with an empty root layout filling the screen.
func newRootApp(t *testing.T, width, height int) (*App, *LayoutBase) {
	t.Helper()
	app, _, _ := newTestApp(t, width, height)
	root := NewLayout()
	app.SetRoot(root)
	return app, root
}

func screenRune(scr tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := scr.GetContents()
	c := cells[y*w+x]
	if len(c.Runes) == 0 {
		return 0
	}
	return c.Runes[0]
}

func screenRow(scr tcell.SimulationScreen, y int) string {
	cells, w, _ := scr.GetContents()
	var b strings.Builder
	for x := range w {
		if r := cells[y*w+x].Runes; len(r) > 0 {
			b.WriteRune(r[0])
		}
	}
	return b.String()
}

func stackIndex(app *App, s *Surface) int {
	for i, o := range app.Compositor().Surfaces() {
		if o == s {
			return i
		}
	}
	return -1
}

// fillWindow paints every content cell with one character and counts draws.
type fillWindow struct {
	*Window
	ch    string
	draws int
}

func newFillWindow(ch string) *fillWindow {
	f := &fillWindow{Window: newWindow(), ch: ch}
	f.Init(f)
	return f
}

func (f *fillWindow) Draw(s *Surface) {
	f.draws++
	for y := range s.Height() {
		s.PrintPlain(0, y, strings.Repeat(f.ch, s.Width()))
	}
}

// msgWindow records the messages it receives.
type msgWindow struct {
	*Window
	got []int
}

func newMsgWindow() *msgWindow {
	m := &msgWindow{Window: newWindow()}
	m.Init(m)
	return m
}

func (m *msgWindow) ProcessMessage(msg *msgqueue.Message) {
	m.got = append(m.got, msg.Type)
}

// mouseWindow records mouse events and focus changes.
type mouseWindow struct {
	*Window
	events []MouseEvent
	focus  []bool
}

func newMouseWindow() *mouseWindow {
	m := &mouseWindow{Window: newWindow()}
	m.Init(m)
	m.SetFocusable(true)
	return m
}

func (m *mouseWindow) MouseEvent(ev *MouseEvent) bool {
	m.events = append(m.events, *ev)
	return true
}

func (m *mouseWindow) OnFocusChanged(focused bool) {
	m.focus = append(m.focus, focused)
}

func newFocusable(order int) *Window {
	w := NewWindow()
	w.SetFocusable(true)
	w.SetFocusOrder(order)
	w.MoveAndResize(0, 0, 1, 1)
	return w
}
