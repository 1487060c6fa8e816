package strutil

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

// Wrap breaks s into lines no wider than width cells. Lines break at spaces;
// a word wider than width is split at grapheme boundaries. Explicit newlines
// are kept. The result always has at least one line.
func Wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		lines = append(lines, wrapParagraph(para, width)...)
	}
	return lines
}

type lineBuilder struct {
	width int
	lines []string
	cur   strings.Builder
	curW  int
}

func (b *lineBuilder) flush() {
	b.lines = append(b.lines, strings.TrimRight(b.cur.String(), " "))
	b.cur.Reset()
	b.curW = 0
}

func (b *lineBuilder) add(s string, w int) {
	b.cur.WriteString(s)
	b.curW += w
}

func wrapParagraph(para string, width int) []string {
	if para == "" {
		return []string{""}
	}
	b := &lineBuilder{width: width}
	for _, tok := range splitRuns(para) {
		tw := runewidth.StringWidth(tok)
		switch {
		case tok[0] == ' ':
			if b.curW+tw <= width {
				b.add(tok, tw)
			} else if b.curW > 0 {
				// Spaces at a break point are dropped.
				b.flush()
			}
		case b.curW+tw <= width:
			b.add(tok, tw)
		case tw <= width:
			b.flush()
			b.add(tok, tw)
		default:
			if b.curW > 0 {
				b.flush()
			}
			splitWord(b, tok)
		}
	}
	if b.curW > 0 || len(b.lines) == 0 {
		b.flush()
	}
	return b.lines
}

// splitWord places an over-long word grapheme by grapheme.
func splitWord(b *lineBuilder, word string) {
	g := uniseg.NewGraphemes(word)
	for g.Next() {
		cluster := g.Str()
		cw := g.Width()
		if b.curW+cw > b.width && b.curW > 0 {
			b.flush()
		}
		b.add(cluster, cw)
	}
}

// splitRuns splits s into alternating runs of spaces and non-spaces.
func splitRuns(s string) []string {
	var runs []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || (s[i] == ' ') != (s[start] == ' ') {
			runs = append(runs, s[start:i])
			start = i
		}
	}
	return runs
}
