package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"cursespp/internal/console"
	"cursespp/internal/version"

	"github.com/lmittmann/tint"
	"github.com/muesli/termenv"
)

// Helper to resolve message from any type to string
func resolveMsg(msg any) string {
	switch v := msg.(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "\n")
	case []any:
		var parts []string
		for _, item := range v {
			parts = append(parts, resolveMsg(item))
		}
		return strings.Join(parts, "\n")
	default:
		return fmt.Sprint(v)
	}
}

func log(ctx context.Context, level slog.Level, msg any, args ...any) {
	logAt(ctx, time.Now(), level, msg, args...)
}

// Internal helper to log with a specific timestamp
func logAt(ctx context.Context, t time.Time, level slog.Level, msg any, args ...any) {
	h := slog.Default().Handler()
	if !h.Enabled(ctx, level) {
		return
	}

	msgStr := resolveMsg(msg)
	// Printf-style call: consume the args as format operands.
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}

	if !strings.Contains(msgStr, "\n") {
		r := slog.NewRecord(t, level, msgStr, 0)
		r.Add(args...)
		_ = h.Handle(ctx, r)
		return
	}

	// One record per line keeps the timestamp column aligned.
	lines := strings.Split(msgStr, "\n")
	for i, line := range lines {
		r := slog.NewRecord(t, level, line, 0)
		if i == 0 {
			r.Add(args...)
		}
		_ = h.Handle(ctx, r)
	}
}

// Custom log levels
const (
	LevelTrace  = slog.Level(-8)
	LevelDebug  = slog.LevelDebug
	LevelInfo   = slog.Level(-2)
	LevelNotice = slog.LevelInfo
	LevelWarn   = slog.LevelWarn
	LevelError  = slog.LevelError
	LevelFatal  = slog.Level(12)
)

// LevelVar allows dynamic changing of the log level
var LevelVar = new(slog.LevelVar)
var FileLevelVar = new(slog.LevelVar)

func init() {
	LevelVar.Set(LevelNotice)
	FileLevelVar.Set(LevelInfo) // Default file to Info (-v behavior)
}

func SetLevel(level slog.Level) {
	LevelVar.Set(level)
	// File level should be at least Info, or lower if Debug is requested
	if level < LevelInfo {
		FileLevelVar.Set(level)
	} else {
		FileLevelVar.Set(LevelInfo)
	}
}

// LevelLabel returns the fixed-width bracketed label printed for a level.
func LevelLabel(level slog.Level) string {
	switch level {
	case LevelTrace:
		return "[TRACE ]"
	case LevelDebug:
		return "[DEBUG ]"
	case LevelInfo:
		return "[INFO  ]"
	case LevelNotice:
		return "[NOTICE]"
	case LevelWarn:
		return "[WARN  ]"
	case LevelError:
		return "[ERROR ]"
	case LevelFatal:
		return "[FATAL ]"
	default:
		return "[" + level.String() + "]"
	}
}

func levelColor(level slog.Level) string {
	switch level {
	case LevelTrace, LevelDebug, LevelInfo:
		return console.CodeBlue
	case LevelNotice:
		return console.CodeGreen
	case LevelWarn:
		return console.CodeYellow
	case LevelError:
		return console.CodeRed
	case LevelFatal:
		return console.CodeRedBg + console.CodeWhite
	}
	return ""
}

func plainLevelAttr(groups []string, a slog.Attr) slog.Attr {
	if a.Key == slog.LevelKey {
		level := a.Value.Any().(slog.Level)
		a.Value = slog.StringValue(LevelLabel(level) + "  ")
	}
	return a
}

const timeFormat = "2006-01-02 15:04:05"

// fileHandler is swapped in once the log file is opened (after the instance lock is held).
var fileHandler atomic.Pointer[slog.Handler]

func NewLogger() *slog.Logger {
	wStderr := os.Stderr

	// Colors only on a terminal with a color-capable profile
	useColor := console.IsTerminal(wStderr) && console.GetPreferredProfile() != termenv.Ascii

	replaceAttrConsole := func(groups []string, a slog.Attr) slog.Attr {
		if a.Key == slog.LevelKey {
			level := a.Value.Any().(slog.Level)
			label := LevelLabel(level)
			if useColor {
				label = levelColor(level) + label + console.CodeReset
			}
			a.Value = slog.StringValue(label + "  ")
		}
		return a
	}

	consoleHandler := tint.NewHandler(wStderr, &tint.Options{
		Level:       LevelVar,
		TimeFormat:  timeFormat,
		NoColor:     !useColor,
		ReplaceAttr: replaceAttrConsole,
	})

	handlers := []slog.Handler{
		&tuiMutedHandler{inner: consoleHandler},
		&deferredHandler{slot: &fileHandler},
		newSubscriberHandler(),
	}
	return slog.New(&FanoutHandler{handlers: handlers})
}

// OpenLogFile truncates the log file at path and starts writing records to it.
// The returned closer detaches the file handler and closes the file.
func OpenLogFile(path string) (io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	var h slog.Handler = tint.NewHandler(f, &tint.Options{
		Level:       FileLevelVar,
		TimeFormat:  timeFormat,
		NoColor:     true,
		ReplaceAttr: plainLevelAttr,
	})
	fileHandler.Store(&h)
	return closerFunc(func() error {
		fileHandler.Store(nil)
		return f.Close()
	}), nil
}

type closerFunc func() error

func (c closerFunc) Close() error { return c() }

// FanoutHandler broadcasts records to multiple handlers
type FanoutHandler struct {
	handlers []slog.Handler
}

func (h *FanoutHandler) Enabled(ctx context.Context, level slog.Level) bool {
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, level) {
			return true
		}
	}
	return false
}

func (h *FanoutHandler) Handle(ctx context.Context, r slog.Record) error {
	var errs []error
	for _, handler := range h.handlers {
		if handler.Enabled(ctx, r.Level) {
			if err := handler.Handle(ctx, r.Clone()); err != nil {
				errs = append(errs, err)
			}
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

func (h *FanoutHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithAttrs(attrs)
	}
	return &FanoutHandler{handlers: newHandlers}
}

func (h *FanoutHandler) WithGroup(name string) slog.Handler {
	newHandlers := make([]slog.Handler, len(h.handlers))
	for i, handler := range h.handlers {
		newHandlers[i] = handler.WithGroup(name)
	}
	return &FanoutHandler{handlers: newHandlers}
}

// tuiMutedHandler drops console output while the TUI owns the terminal.
type tuiMutedHandler struct {
	inner slog.Handler
}

func (h *tuiMutedHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return !console.IsTUIEnabled() && h.inner.Enabled(ctx, level)
}

func (h *tuiMutedHandler) Handle(ctx context.Context, r slog.Record) error {
	return h.inner.Handle(ctx, r)
}

func (h *tuiMutedHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &tuiMutedHandler{inner: h.inner.WithAttrs(attrs)}
}

func (h *tuiMutedHandler) WithGroup(name string) slog.Handler {
	return &tuiMutedHandler{inner: h.inner.WithGroup(name)}
}

// deferredHandler forwards to whatever handler is currently stored in slot.
// Attributes and groups added before the slot is filled are replayed on use.
type deferredHandler struct {
	slot  *atomic.Pointer[slog.Handler]
	attrs []slog.Attr
	group string
}

func (h *deferredHandler) current() slog.Handler {
	p := h.slot.Load()
	if p == nil {
		return nil
	}
	inner := *p
	if h.group != "" {
		inner = inner.WithGroup(h.group)
	}
	if len(h.attrs) > 0 {
		inner = inner.WithAttrs(h.attrs)
	}
	return inner
}

func (h *deferredHandler) Enabled(ctx context.Context, level slog.Level) bool {
	inner := h.current()
	return inner != nil && inner.Enabled(ctx, level)
}

func (h *deferredHandler) Handle(ctx context.Context, r slog.Record) error {
	if inner := h.current(); inner != nil {
		return inner.Handle(ctx, r)
	}
	return nil
}

func (h *deferredHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &deferredHandler{slot: h.slot, attrs: append(append([]slog.Attr{}, h.attrs...), attrs...), group: h.group}
}

func (h *deferredHandler) WithGroup(name string) slog.Handler {
	return &deferredHandler{slot: h.slot, attrs: h.attrs, group: name}
}

// Global helpers for custom levels that don't satisfy standard slog methods
func Trace(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelTrace, msg, args...)
}

func Debug(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelDebug, msg, args...)
}

func Info(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelInfo, msg, args...)
}

func Notice(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelNotice, msg, args...)
}

func Warn(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelWarn, msg, args...)
}

func Error(ctx context.Context, msg any, args ...any) {
	log(ctx, LevelError, msg, args...)
}

func getSystemInfo() []string {
	var info []string

	info = append(info, fmt.Sprintf("%s [%s] (commit %s, built %s)", version.ApplicationName, version.Version, version.Commit, version.BuildDate))
	info = append(info, "")

	executable, _ := os.Executable()
	info = append(info, fmt.Sprintf("Currently running as: %s (PID %d)", executable, os.Getpid()))
	info = append(info, "")

	info = append(info, fmt.Sprintf("ARCH:             %s", runtime.GOARCH))
	info = append(info, fmt.Sprintf("OS:               %s", runtime.GOOS))
	info = append(info, fmt.Sprintf("GO:               %s", runtime.Version()))
	info = append(info, fmt.Sprintf("TERM:             %s", os.Getenv("TERM")))
	if w, h, err := console.GetTerminalSize(); err == nil && w > 0 {
		info = append(info, fmt.Sprintf("TERMINAL SIZE:    %dx%d", w, h))
	}
	info = append(info, "")

	currentUser, err := user.Current()
	if err == nil {
		info = append(info, fmt.Sprintf("DETECTED_UNAME:   %s", currentUser.Username))
		info = append(info, fmt.Sprintf("DETECTED_HOMEDIR: %s", currentUser.HomeDir))
	} else {
		info = append(info, fmt.Sprintf("User Info Error: %v", err))
	}

	return info
}

// Fatal logs a message at FatalLevel with a stack trace and panics with FatalError.
func Fatal(ctx context.Context, msg any, args ...any) {
	FatalWithStackSkip(ctx, 1, msg, args...)
}

// FatalWithStackSkip is Fatal with the innermost skip frames hidden from the trace.
func FatalWithStackSkip(ctx context.Context, skip int, msg any, args ...any) {
	now := time.Now()

	pc := make([]uintptr, 32)
	n := runtime.Callers(skip+1, pc)
	frames := runtime.CallersFrames(pc[:n])

	var infoLines []string
	for _, i := range getSystemInfo() {
		if i != "" {
			infoLines = append(infoLines, "  "+i)
		} else {
			infoLines = append(infoLines, "")
		}
	}

	var allFrames []runtime.Frame
	for {
		frame, more := frames.Next()
		allFrames = append(allFrames, frame)
		if !more {
			break
		}
	}

	traceLines := formatFrames(allFrames)

	msgStr := resolveMsg(msg)
	if len(args) > 0 && strings.Contains(msgStr, "%") {
		msgStr = fmt.Sprintf(msgStr, args...)
		args = nil
	}

	output := []any{
		"### BEGIN SYSTEM INFORMATION AND STACK TRACE ###",
		infoLines,
		"",
		traceLines,
		"### END SYSTEM INFORMATION AND STACK TRACE ###",
		"",
		msgStr,
		"",
		"Please let the dev know of this error.",
	}

	logAt(ctx, now, LevelFatal, output, args...)

	panic(FatalError{})
}

// formatFrames renders frames outermost first, each call indented under its caller.
func formatFrames(allFrames []runtime.Frame) []string {
	var traceLines []string
	maxIndex := len(allFrames) - 1
	width := len(fmt.Sprintf("%d", maxIndex))

	wd, _ := os.Getwd()

	indent := ""
	for i := len(allFrames) - 1; i >= 0; i-- {
		frame := allFrames[i]

		if wd != "" {
			if rel, err := filepath.Rel(wd, frame.File); err == nil {
				if !strings.HasPrefix(rel, "..") && !strings.HasPrefix(rel, string(filepath.Separator)) {
					frame.File = "./" + filepath.ToSlash(rel)
				}
			}
		}

		suffix := ""
		arrowIndent := indent
		if i < len(allFrames)-1 {
			suffix = "└>"
			if len(indent) >= 2 {
				arrowIndent = indent[:len(indent)-2]
			}
		}

		line := fmt.Sprintf("  %*d: %s%s%s:%d (%s)",
			width, i, arrowIndent, suffix, frame.File, frame.Line, filepath.Base(frame.Function))
		traceLines = append(traceLines, line)

		indent += "  "
	}
	return traceLines
}

// FatalNoTrace logs a message at FatalLevel without stack trace and exits
func FatalNoTrace(ctx context.Context, msg any, args ...any) {
	output := []any{
		msg,
		"",
		"Please let the dev know of this error.",
	}
	logAt(ctx, time.Now(), LevelFatal, output, args...)
	panic(FatalError{})
}

// FatalError is a special error used to panic from Fatal logger calls
// This allows the main run loop to recover and perform cleanup before exiting
type FatalError struct{}

func (FatalError) Error() string { return "fatal error" }
