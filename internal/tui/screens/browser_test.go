package screens

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"cursespp/internal/config"
	"cursespp/internal/msgqueue"
	"cursespp/internal/tui"
)

func makeTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range map[string]string{
		"b.txt":     "bee\n",
		"a.txt":     "hello\nworld\n",
		".hidden":   "secret",
		"sub/c.txt": "see",
	} {
		path := filepath.Join(dir, name)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func labels(a tui.Adapter) []string {
	var out []string
	for i := range a.EntryCount() {
		out = append(out, a.EntryAt(i).(*tui.TextEntry).Text())
	}
	return out
}

func newTestBrowser(t *testing.T) (*Browser, string) {
	t.Helper()
	dir := makeTree(t)
	b, err := NewBrowser(dir, config.Default())
	if err != nil {
		t.Fatalf("NewBrowser() error = %v", err)
	}
	return b, dir
}

func TestBrowserListsDirectory(t *testing.T) {
	b, dir := newTestBrowser(t)

	want := []string{"..", "sub/", "a.txt", "b.txt"}
	if diff := cmp.Diff(want, labels(b.List().Adapter())); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if got := b.SelectedPath(); got != filepath.Dir(dir) {
		t.Errorf("SelectedPath() = %q, want the parent directory", got)
	}
	if !strings.Contains(b.Status(), "3 items") {
		t.Errorf("status %q does not count 3 items", b.Status())
	}

	b.SetShowHidden(true)
	want = []string{"..", "sub/", ".hidden", "a.txt", "b.txt"}
	if diff := cmp.Diff(want, labels(b.List().Adapter())); diff != "" {
		t.Errorf("entries with hidden files mismatch (-want +got):\n%s", diff)
	}
}

func TestBrowserFilter(t *testing.T) {
	b, dir := newTestBrowser(t)
	b.List().SetSelectedIndex(3)

	b.Filter().SetText("A.")
	if diff := cmp.Diff([]string{"a.txt"}, labels(b.List().Adapter())); diff != "" {
		t.Errorf("filtered entries mismatch (-want +got):\n%s", diff)
	}
	if got, want := b.SelectedPath(), filepath.Join(dir, "a.txt"); got != want {
		t.Errorf("SelectedPath() = %q, want %q", got, want)
	}

	b.Filter().SetText("")
	if got, want := b.SelectedPath(), filepath.Join(dir, "a.txt"); got != want {
		t.Errorf("clearing the filter moved the selection to %q", got)
	}
}

func TestBrowserNavigation(t *testing.T) {
	b, dir := newTestBrowser(t)

	b.List().SetSelectedIndex(1)
	b.List().OnEntryActivated(1)
	if got, want := b.Dir(), filepath.Join(dir, "sub"); got != want {
		t.Fatalf("Dir() = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{"..", "c.txt"}, labels(b.List().Adapter())); diff != "" {
		t.Errorf("sub entries mismatch (-want +got):\n%s", diff)
	}

	b.KeyPress("backspace")
	if b.Dir() != dir {
		t.Fatalf("Dir() = %q after backspace, want %q", b.Dir(), dir)
	}
	if got, want := b.SelectedPath(), filepath.Join(dir, "sub"); got != want {
		t.Errorf("returning up selected %q, want %q", got, want)
	}

	b.List().SetSelectedIndex(2)
	b.List().OnEntryActivated(2)
	if b.Dir() != dir || b.GetFocus() != tui.Widget(b.Preview()) {
		t.Error("activating a file did not focus the preview")
	}
}

func TestBrowserRefresh(t *testing.T) {
	b, dir := newTestBrowser(t)
	b.List().SetSelectedIndex(3)

	if err := os.WriteFile(filepath.Join(dir, "0.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	b.ProcessMessage(&msgqueue.Message{Type: MsgRefresh})
	want := []string{"..", "sub/", "0.txt", "a.txt", "b.txt"}
	if diff := cmp.Diff(want, labels(b.List().Adapter())); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if got, want := b.SelectedPath(), filepath.Join(dir, "b.txt"); got != want {
		t.Errorf("refresh moved the selection to %q, want %q", got, want)
	}
}

func TestBrowserCopy(t *testing.T) {
	b, dir := newTestBrowser(t)
	var copied []string
	b.SetClipboard(func(s string) error {
		copied = append(copied, s)
		return nil
	})
	b.List().SetSelectedIndex(2)
	if !b.KeyPress("y") {
		t.Fatal("y not handled")
	}
	if diff := cmp.Diff([]string{filepath.Join(dir, "a.txt")}, copied); diff != "" {
		t.Errorf("copied mismatch (-want +got):\n%s", diff)
	}
	if !strings.Contains(b.Status(), "Copied") {
		t.Errorf("status = %q", b.Status())
	}
}

func newBrowserApp(t *testing.T) (*tui.App, *Browser) {
	t.Helper()
	scr := tcell.NewSimulationScreen("")
	if err := scr.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	scr.SetSize(80, 24)
	t.Cleanup(scr.Fini)

	b, _ := newTestBrowser(t)
	app := tui.NewApp(scr, nil, tui.OptionsFromConfig(config.Default().UI))
	app.SetRoot(b)
	return app, b
}

func TestBrowserLayout(t *testing.T) {
	_, b := newBrowserApp(t)
	for _, w := range []tui.Widget{b.Filter(), b.List(), b.Preview(), b.Log()} {
		if w.Base().Surface() == nil {
			t.Errorf("window %d has no surface (bad bounds %v)", w.Base().ID(), w.Base().HasBadBounds())
		}
	}
	if _, h := b.Log().Size(); h != 7 {
		t.Errorf("log height = %d, want 7", h)
	}
}

func TestBrowserHelpOverlay(t *testing.T) {
	app, b := newBrowserApp(t)

	app.HandleEvent(tcell.NewEventKey(tcell.KeyRune, '?', tcell.ModNone))
	if app.Overlays().Len() != 1 {
		t.Fatal("help overlay not shown")
	}
	if b.List().IsFocused() {
		t.Error("file list still focused under the help overlay")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone))
	if b.List().GetSelectedIndex() != 0 {
		t.Error("key reached the browser below the overlay")
	}
	app.HandleEvent(tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone))
	if app.Overlays().Len() != 0 {
		t.Fatal("esc did not close the help overlay")
	}
	if app.ActiveLayout() != tui.Layout(b) {
		t.Error("browser is not active again")
	}
	if !b.List().IsFocused() {
		t.Error("file list not refocused after the help overlay closed")
	}
}

func TestHelpOverlayPlace(t *testing.T) {
	h := NewHelpOverlay(&tui.Keys)
	n := h.lines.EntryCount()
	tests := []struct {
		name   string
		screen tui.Rect
		want   tui.Rect
	}{
		{"roomy", tui.Rect{Width: 100, Height: 50}, tui.Rect{X: 24, Y: (50 - n - 2) / 2, Width: helpWidth, Height: n + 2}},
		{"small", tui.Rect{Width: 40, Height: 12}, tui.Rect{X: 2, Y: 1, Width: 36, Height: 10}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := h.Place(tt.screen); got != tt.want {
				t.Errorf("Place() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
