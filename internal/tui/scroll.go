package tui

// ScrollPosition describes the visible run of entries of a scrollable window.
type ScrollPosition struct {
	FirstVisibleEntryIndex int
	VisibleEntryCount      int
	TotalEntries           int
	// LineCount is the number of rendered lines, never more than the
	// viewport height.
	LineCount int
	// LogicalIndex is the requested anchor after clamping.
	LogicalIndex int
}

// Last returns the index of the last visible entry, or -1.
func (p ScrollPosition) Last() int {
	return p.FirstVisibleEntryIndex + p.VisibleEntryCount - 1
}

// AtBottom reports whether the last entry is visible.
func (p ScrollPosition) AtBottom() bool {
	return p.FirstVisibleEntryIndex+p.VisibleEntryCount >= p.TotalEntries
}

// VisibleRange computes which entries of a fill a viewport of height lines
// at width cells, starting as close to desired as possible.
//
// Entries are laid out forward from desired. If the viewport fills, or the
// next entry does not fit, the run starts at desired. If the end of the
// collection is reached with room to spare, the viewport is filled backward
// from the last entry instead, so scrolling past the end shows a full page.
// An entry taller than the whole viewport is shown alone, clipped.
func VisibleRange(a Adapter, desired, height, width int) ScrollPosition {
	total := a.EntryCount()
	pos := ScrollPosition{TotalEntries: total}
	if total == 0 || height <= 0 {
		return pos
	}
	d := min(max(desired, 0), total-1)
	pos.LogicalIndex = d

	lines, i := 0, d
	full := false
	for ; i < total; i++ {
		n := entryLines(a, i, width)
		if lines+n > height {
			full = true
			break
		}
		lines += n
		if lines == height {
			i++
			full = true
			break
		}
	}
	if full {
		pos.FirstVisibleEntryIndex = d
		if i == d {
			pos.VisibleEntryCount, pos.LineCount = 1, height
			return pos
		}
		pos.VisibleEntryCount, pos.LineCount = i-d, lines
		return pos
	}

	lines, first := 0, total
	for j := total - 1; j >= 0; j-- {
		n := entryLines(a, j, width)
		if lines+n > height {
			if first == total {
				pos.FirstVisibleEntryIndex, pos.VisibleEntryCount, pos.LineCount = j, 1, height
				return pos
			}
			break
		}
		lines += n
		first = j
	}
	pos.FirstVisibleEntryIndex = first
	pos.VisibleEntryCount = total - first
	pos.LineCount = lines
	return pos
}

func entryLines(a Adapter, i, width int) int {
	e := a.EntryAt(i)
	if e == nil {
		return 1
	}
	e.SetWidth(width)
	return max(e.LineCount(), 1)
}

// anchorEndingAt returns the first entry of the longest run ending at last
// that fits in height lines.
func anchorEndingAt(a Adapter, last, height, width int) int {
	lines, first := 0, last
	for j := last; j >= 0; j-- {
		n := entryLines(a, j, width)
		if lines+n > height {
			break
		}
		lines += n
		first = j
	}
	return first
}
