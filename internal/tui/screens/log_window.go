package screens

import (
	"context"
	"strings"

	"cursespp/internal/logger"
	"cursespp/internal/msgqueue"
	"cursespp/internal/theme"
	"cursespp/internal/tui"
)

var levelPairs = []struct {
	label string
	pair  theme.Pair
}{
	{logger.LevelLabel(logger.LevelTrace), theme.LogTrace},
	{logger.LevelLabel(logger.LevelDebug), theme.LogDebug},
	{logger.LevelLabel(logger.LevelInfo), theme.LogInfo},
	{logger.LevelLabel(logger.LevelNotice), theme.LogNotice},
	{logger.LevelLabel(logger.LevelWarn), theme.LogWarn},
	{logger.LevelLabel(logger.LevelError), theme.LogError},
	{logger.LevelLabel(logger.LevelFatal), theme.LogFatal},
}

// LogWindow shows the tail of the application log. Lines arrive through
// the message queue so any goroutine can feed it.
type LogWindow struct {
	*tui.ScrollableWindow

	lines *tui.SimpleAdapter
}

// NewLogWindow returns a log window keeping at most maxLines lines.
func NewLogWindow(maxLines int) *LogWindow {
	lines := tui.NewSimpleAdapter(maxLines)
	lw := &LogWindow{ScrollableWindow: tui.NewScrollableWindow(lines), lines: lines}
	lw.Init(lw)
	lw.SetFrameVisible(true)
	lw.SetTitle("Log")
	lw.ScrollToBottom()
	return lw
}

// Append adds a line and keeps the view on the tail if it was there.
func (lw *LogWindow) Append(line string) {
	e := tui.NewTextEntry(line, false)
	if p, ok := levelPair(line); ok {
		e.WithPair(p)
	}
	lw.lines.AddEntry(e)
	lw.OnAdapterChanged()
}

func (lw *LogWindow) ProcessMessage(m *msgqueue.Message) {
	if m.Type != MsgLogLine {
		return
	}
	if line, ok := m.Data1.(string); ok {
		lw.Append(line)
	}
}

// Pump forwards lines to lw through q until ctx is done or lines closes.
// It runs on its own goroutine.
func (lw *LogWindow) Pump(ctx context.Context, q *msgqueue.Queue, lines <-chan string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			q.Post(msgqueue.Message{Target: lw, Type: MsgLogLine, Data1: line}, 0)
		}
	}
}

func levelPair(line string) (theme.Pair, bool) {
	for _, lp := range levelPairs {
		if strings.Contains(line, lp.label) {
			return lp.pair, true
		}
	}
	return 0, false
}
