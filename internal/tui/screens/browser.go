package screens

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"charm.land/bubbles/v2/key"
	"github.com/atotto/clipboard"

	"cursespp/internal/config"
	"cursespp/internal/logger"
	"cursespp/internal/msgqueue"
	"cursespp/internal/strutil"
	"cursespp/internal/theme"
	"cursespp/internal/tui"
)

// previewDelay lets fast list scrolling settle before a file is read.
const previewDelay = 80 * time.Millisecond

const parentEntry = ".."

type dirEntry struct {
	name string
	dir  bool
}

func (e dirEntry) label() string {
	if e.dir {
		return e.name + "/"
	}
	return e.name
}

// Browser is the root layout of the demo: a directory list with a filter
// field, a preview of the selected file and a live log window.
type Browser struct {
	*tui.LayoutBase

	header  *tui.TextLabel
	filter  *tui.TextInput
	list    *tui.ListWindow
	preview *Preview
	log     *LogWindow
	status  *tui.TextLabel
	help    *HelpOverlay

	entries    *tui.SimpleAdapter
	all        []dirEntry
	shown      []dirEntry
	dir        string
	showHidden bool
	message    string

	watcher *DirWatcher
	clip    func(string) error
}

// NewBrowser returns a browser showing dir.
func NewBrowser(dir string, conf config.AppConfig) (*Browser, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	if info, err := os.Stat(abs); err != nil {
		return nil, err
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", abs)
	}

	entries := tui.NewSimpleAdapter(0)
	b := &Browser{
		LayoutBase: tui.NewLayout(),
		header:     tui.NewTextLabel("", strutil.AlignLeft),
		filter:     tui.NewTextInput(),
		list:       tui.NewListWindow(entries),
		preview:    NewPreview(conf.Browser.PreviewMaxBytes),
		log:        NewLogWindow(conf.Browser.LogLines),
		status:     tui.NewTextLabel("", strutil.AlignLeft),
		entries:    entries,
		showHidden: conf.Browser.ShowHidden,
		clip:       clipboard.WriteAll,
	}
	b.Init(b)
	b.header.SetPair(theme.Header)
	b.status.SetPair(theme.Footer)
	b.filter.SetHint("type to filter")
	b.list.SetTitle("Files")

	b.list.SetFrameVisible(conf.UI.Borders)
	b.preview.SetFrameVisible(conf.UI.Borders)
	b.log.SetFrameVisible(conf.UI.Borders)
	for i, w := range []tui.Widget{b.filter, b.list, b.preview, b.log} {
		w.Base().SetFocusOrder(i)
	}
	for _, w := range []tui.Widget{b.header, b.filter, b.list, b.preview, b.log, b.status} {
		b.AddWindow(w)
	}

	b.filter.OnChanged = func(string) { b.applyFilter(b.selectedName()) }
	b.filter.OnEnter = func(string) { b.SetFocus(b.list) }
	b.list.OnSelectionChanged = func(int, int) { b.schedulePreview() }
	b.list.OnEntryActivated = b.open

	if err := b.chdir(abs, ""); err != nil {
		return nil, err
	}
	b.SetFocus(b.list)
	return b, nil
}

func (b *Browser) Dir() string            { return b.dir }
func (b *Browser) List() *tui.ListWindow  { return b.list }
func (b *Browser) Filter() *tui.TextInput { return b.filter }
func (b *Browser) Preview() *Preview      { return b.preview }
func (b *Browser) Log() *LogWindow        { return b.log }
func (b *Browser) Status() string         { return b.status.Text() }

// SetWatcher makes the browser point w at every directory it enters.
func (b *Browser) SetWatcher(w *DirWatcher) {
	b.watcher = w
	b.watch()
}

// SetClipboard replaces the function used to copy paths.
func (b *Browser) SetClipboard(fn func(string) error) { b.clip = fn }

func (b *Browser) Layout() {
	w, h := b.ContentSize()
	b.header.MoveAndResize(0, 0, w, 1)
	b.filter.MoveAndResize(0, 1, w, 1)
	b.status.MoveAndResize(0, h-1, w, 1)

	body := max(h-3, 0)
	logH := max(body/3, 3)
	mainH := body - logH
	listW := min(max(w*2/5, 12), w)
	b.list.MoveAndResize(0, 2, listW, mainH)
	b.preview.MoveAndResize(listW, 2, w-listW, mainH)
	b.log.MoveAndResize(0, 2+mainH, w, logH)
}

// Chdir shows dir.
func (b *Browser) Chdir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return err
	}
	return b.chdir(abs, "")
}

// Up shows the parent directory with the current one selected.
func (b *Browser) Up() {
	parent := filepath.Dir(b.dir)
	if parent == b.dir {
		return
	}
	if err := b.chdir(parent, filepath.Base(b.dir)); err != nil {
		b.setMessage(err.Error())
	}
}

func (b *Browser) chdir(dir, keep string) error {
	all, err := readDir(dir, b.showHidden)
	if err != nil {
		logger.Error(b.context(), "Reading %s: %v", dir, err)
		return err
	}
	logger.Debug(b.context(), "Entering %s", dir)
	b.dir, b.all = dir, all
	b.header.SetText(" " + dir)
	b.message = ""
	b.watch()
	// SetText fires OnChanged, which applies the (empty) filter.
	if b.filter.Text() != "" {
		b.filter.SetText("")
	}
	b.applyFilter(keep)
	if b.indexOf(keep) < 0 {
		b.list.ScrollToTop()
	}
	return nil
}

func (b *Browser) watch() {
	if b.watcher == nil || b.dir == "" {
		return
	}
	if err := b.watcher.SetDir(b.dir); err != nil {
		logger.Warn(b.context(), "Not watching %s: %v", b.dir, err)
	}
}

func readDir(dir string, hidden bool) ([]dirEntry, error) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []dirEntry
	for _, d := range dirents {
		if !hidden && strings.HasPrefix(d.Name(), ".") {
			continue
		}
		isDir := d.IsDir()
		if d.Type()&os.ModeSymlink != 0 {
			if info, err := os.Stat(filepath.Join(dir, d.Name())); err == nil {
				isDir = info.IsDir()
			}
		}
		out = append(out, dirEntry{name: d.Name(), dir: isDir})
	}
	slices.SortFunc(out, func(a, c dirEntry) int {
		if a.dir != c.dir {
			if a.dir {
				return -1
			}
			return 1
		}
		return cmp.Or(cmp.Compare(strings.ToLower(a.name), strings.ToLower(c.name)), cmp.Compare(a.name, c.name))
	})
	return out, nil
}

// applyFilter rebuilds the visible entries, keeping keep selected if it is
// still shown.
func (b *Browser) applyFilter(keep string) {
	needle := strings.ToLower(b.filter.Text())
	b.shown = b.shown[:0]
	if needle == "" && filepath.Dir(b.dir) != b.dir {
		b.shown = append(b.shown, dirEntry{name: parentEntry, dir: true})
	}
	for _, e := range b.all {
		if needle == "" || strings.Contains(strings.ToLower(e.name), needle) {
			b.shown = append(b.shown, e)
		}
	}
	entries := make([]tui.Entry, len(b.shown))
	for i, e := range b.shown {
		entries[i] = tui.NewTextEntry(e.label(), false)
	}
	b.entries.SetEntries(entries)
	b.list.OnAdapterChanged()
	if i := b.indexOf(keep); i >= 0 {
		b.list.SetSelectedIndex(i)
	}
	b.updateStatus()
	b.schedulePreview()
}

func (b *Browser) indexOf(name string) int {
	if name == "" {
		return -1
	}
	return slices.IndexFunc(b.shown, func(e dirEntry) bool { return e.name == name })
}

func (b *Browser) selected() (dirEntry, bool) {
	i := b.list.GetSelectedIndex()
	if i < 0 || i >= len(b.shown) {
		return dirEntry{}, false
	}
	return b.shown[i], true
}

func (b *Browser) selectedName() string {
	e, _ := b.selected()
	return e.name
}

// SelectedPath returns the path of the selected entry, or "".
func (b *Browser) SelectedPath() string {
	e, ok := b.selected()
	if !ok {
		return ""
	}
	if e.name == parentEntry {
		return filepath.Dir(b.dir)
	}
	return filepath.Join(b.dir, e.name)
}

func (b *Browser) open(i int) {
	if i < 0 || i >= len(b.shown) {
		return
	}
	e := b.shown[i]
	switch {
	case e.name == parentEntry:
		b.Up()
	case e.dir:
		if err := b.chdir(filepath.Join(b.dir, e.name), ""); err != nil {
			b.setMessage(err.Error())
		}
	default:
		b.SetFocus(b.preview)
	}
}

// SetShowHidden shows or hides dot files.
func (b *Browser) SetShowHidden(show bool) {
	b.showHidden = show
	b.Refresh()
}

// Refresh re-reads the directory, keeping the selection where possible.
func (b *Browser) Refresh() {
	keep := b.selectedName()
	all, err := readDir(b.dir, b.showHidden)
	if err != nil {
		logger.Warn(b.context(), "Refreshing %s: %v", b.dir, err)
		b.Up()
		return
	}
	b.all = all
	b.applyFilter(keep)
}

func (b *Browser) schedulePreview() {
	if !b.Debounce(MsgPreview, nil, nil, previewDelay) {
		b.updatePreview()
	}
}

func (b *Browser) updatePreview() {
	path := b.SelectedPath()
	if path == "" {
		b.preview.Clear()
		return
	}
	if path != b.preview.Path() {
		b.preview.Load(path)
	}
}

func (b *Browser) copySelected() {
	path := b.SelectedPath()
	if path == "" {
		return
	}
	if err := b.clip(path); err != nil {
		logger.Warn(b.context(), "Copying to clipboard: %v", err)
		b.setMessage("Clipboard unavailable")
		return
	}
	logger.Info(b.context(), "Copied %s", path)
	b.setMessage("Copied " + path)
}

func (b *Browser) setMessage(msg string) {
	b.message = msg
	b.updateStatus()
}

func (b *Browser) keys() *tui.KeyMap {
	if app := b.App(); app != nil {
		return app.Keys()
	}
	return &tui.Keys
}

func (b *Browser) updateStatus() {
	if b.message != "" {
		b.status.SetText(" " + b.message)
		return
	}
	n := len(b.shown)
	if n > 0 && b.shown[0].name == parentEntry {
		n--
	}
	var help []string
	for _, k := range b.keys().ShortHelp() {
		help = append(help, k.Help().Key+" "+k.Help().Desc)
	}
	hidden := ""
	if b.showHidden {
		hidden = ", hidden shown"
	}
	b.status.SetText(fmt.Sprintf(" %d items%s | %s", n, hidden, strings.Join(help, " · ")))
}

// ShowHelp pushes the help overlay.
func (b *Browser) ShowHelp() {
	app := b.App()
	if app == nil {
		return
	}
	if b.help == nil {
		b.help = NewHelpOverlay(app.Keys())
	}
	app.Overlays().Push(b.help)
}

func (b *Browser) KeyPress(k tui.Key) bool {
	keys := b.keys()
	switch {
	case key.Matches(k, keys.Parent):
		b.Up()
	case key.Matches(k, keys.Copy):
		b.copySelected()
	case key.Matches(k, keys.ToggleHidden):
		b.SetShowHidden(!b.showHidden)
	case key.Matches(k, keys.Refresh):
		b.Refresh()
	case key.Matches(k, keys.Help):
		b.ShowHelp()
	case key.Matches(k, keys.Esc):
		if b.filter.Text() == "" {
			return false
		}
		b.filter.SetText("")
	case key.Matches(k, keys.Quit):
		if app := b.App(); app != nil {
			app.Quit()
		}
	default:
		return b.LayoutBase.KeyPress(k)
	}
	return true
}

func (b *Browser) ProcessMessage(m *msgqueue.Message) {
	switch m.Type {
	case MsgRefresh:
		b.Refresh()
	case MsgPreview:
		b.updatePreview()
	}
}

func (b *Browser) context() context.Context {
	if app := b.App(); app != nil {
		return app.Context()
	}
	return context.Background()
}
