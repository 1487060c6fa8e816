package tui

// Adapter supplies the entries of a scrollable window. Entries are fetched by
// index as they become visible, so an adapter may be backed by anything
// indexable.
type Adapter interface {
	EntryCount() int
	EntryAt(i int) Entry
}

// SimpleAdapter is an in-memory adapter. A positive max size bounds the
// number of entries by dropping the oldest ones.
type SimpleAdapter struct {
	entries []Entry
	maxSize int
}

func NewSimpleAdapter(maxSize int) *SimpleAdapter {
	return &SimpleAdapter{maxSize: maxSize}
}

func (a *SimpleAdapter) EntryCount() int { return len(a.entries) }

func (a *SimpleAdapter) EntryAt(i int) Entry {
	if i < 0 || i >= len(a.entries) {
		return nil
	}
	return a.entries[i]
}

// AddEntry appends e, trimming from the front past the max size. It returns
// the number of entries trimmed.
func (a *SimpleAdapter) AddEntry(e Entry) int {
	a.entries = append(a.entries, e)
	return a.trim()
}

// SetEntries replaces the contents.
func (a *SimpleAdapter) SetEntries(entries []Entry) {
	a.entries = append(a.entries[:0], entries...)
	a.trim()
}

func (a *SimpleAdapter) Clear() {
	clear(a.entries)
	a.entries = a.entries[:0]
}

func (a *SimpleAdapter) SetMaxSize(n int) {
	a.maxSize = n
	a.trim()
}

func (a *SimpleAdapter) trim() int {
	if a.maxSize <= 0 || len(a.entries) <= a.maxSize {
		return 0
	}
	n := len(a.entries) - a.maxSize
	clear(a.entries[:n])
	a.entries = a.entries[n:]
	return n
}
