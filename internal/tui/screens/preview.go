package screens

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cursespp/internal/theme"
	"cursespp/internal/tui"
)

// Preview shows the beginning of a file, or a summary of a directory.
type Preview struct {
	*tui.ScrollableWindow

	lines    *tui.SimpleAdapter
	maxBytes int64
	path     string
}

// NewPreview returns a preview reading at most maxBytes of each file.
func NewPreview(maxBytes int64) *Preview {
	lines := tui.NewSimpleAdapter(0)
	p := &Preview{ScrollableWindow: tui.NewScrollableWindow(lines), lines: lines, maxBytes: maxBytes}
	p.Init(p)
	p.SetFrameVisible(true)
	p.SetTitle("Preview")
	return p
}

func (p *Preview) Path() string { return p.path }

// Clear empties the preview.
func (p *Preview) Clear() {
	p.path = ""
	p.lines.Clear()
	p.SetTitle("Preview")
	p.ScrollToTop()
}

// Load replaces the preview with the contents of path. Read errors are
// shown in place of the contents.
func (p *Preview) Load(path string) {
	p.path = path
	p.SetTitle(filepath.Base(path))
	entries, err := p.read(path)
	if err != nil {
		entries = []tui.Entry{tui.NewTextEntry(err.Error(), true).WithPair(theme.LogError)}
	}
	p.lines.SetEntries(entries)
	p.ScrollToTop()
}

func (p *Preview) read(path string) ([]tui.Entry, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		dirents, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		return []tui.Entry{tui.NewTextEntry(fmt.Sprintf("directory, %d entries", len(dirents)), true).WithPair(theme.Footer)}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, p.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if bytes.IndexByte(data, 0) >= 0 {
		return []tui.Entry{tui.NewTextEntry(fmt.Sprintf("binary file, %d bytes", info.Size()), true).WithPair(theme.Footer)}, nil
	}

	text := strings.TrimSuffix(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")
	var entries []tui.Entry
	for line := range strings.SplitSeq(text, "\n") {
		entries = append(entries, tui.NewTextEntry(line, true))
	}
	if info.Size() > p.maxBytes {
		entries = append(entries, tui.NewTextEntry(fmt.Sprintf("(truncated at %d of %d bytes)", p.maxBytes, info.Size()), true).WithPair(theme.Footer))
	}
	return entries, nil
}
