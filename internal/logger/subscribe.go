package logger

import (
	"bytes"
	"context"
	"log/slog"
	"sync"

	"github.com/charmbracelet/x/ansi"
	"github.com/lmittmann/tint"
)

// subscriberBuffer is the capacity of each subscription channel. Lines are
// dropped for a subscriber that falls this far behind.
const subscriberBuffer = 256

var subscribers struct {
	sync.Mutex
	chans map[chan string]struct{}
}

// SubscribeLogLines returns a channel receiving every log line written at or
// above the file level, and a function that ends the subscription.
func SubscribeLogLines() (<-chan string, func()) {
	ch := make(chan string, subscriberBuffer)
	subscribers.Lock()
	if subscribers.chans == nil {
		subscribers.chans = make(map[chan string]struct{})
	}
	subscribers.chans[ch] = struct{}{}
	subscribers.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			subscribers.Lock()
			delete(subscribers.chans, ch)
			subscribers.Unlock()
			close(ch)
		})
	}
}

func hasSubscribers() bool {
	subscribers.Lock()
	defer subscribers.Unlock()
	return len(subscribers.chans) > 0
}

func publish(line string) {
	subscribers.Lock()
	defer subscribers.Unlock()
	for ch := range subscribers.chans {
		select {
		case ch <- line:
		default:
		}
	}
}

// lineWriter splits tint output into lines for the subscribers.
type lineWriter struct{}

func (lineWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		publish(ansi.Strip(string(line)))
	}
	return len(p), nil
}

// subscriberHandler formats records like the log file and hands them to subscribers.
type subscriberHandler struct {
	inner slog.Handler
}

func newSubscriberHandler() *subscriberHandler {
	return &subscriberHandler{inner: tint.NewHandler(lineWriter{}, &tint.Options{
		Level:       FileLevelVar,
		TimeFormat:  "15:04:05",
		NoColor:     true,
		ReplaceAttr: plainLevelAttr,
	})}
}

func (h *subscriberHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return hasSubscribers() && h.inner.Enabled(ctx, level)
}

func (h *subscriberHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *subscriberHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &subscriberHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *subscriberHandler) WithGroup(name string) slog.Handler {
	return &subscriberHandler{inner: h.inner.WithGroup(name)}
}
