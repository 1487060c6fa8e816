package logger

import (
	"context"

	"cursespp/internal/console"
)

// Recover traps panics and displays them using FatalWithStackSkip.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	if r := recover(); r != nil {
		// Only FatalError may escape, so main can set the exit code.
		defer func() {
			if r2 := recover(); r2 != nil {
				if _, ok := r2.(FatalError); ok {
					panic(r2)
				}
			}
		}()

		// Restore terminal if TUI was running
		if console.TUIShutdown != nil {
			console.TUIShutdown()
		}

		// Ensure TUI flag is off so we print directly to terminal
		console.SetTUIEnabled(false)

		// Already reported by Fatal
		if _, ok := r.(FatalError); ok {
			panic(r)
		}

		// Skip Recover and runtime.gopanic so the trace starts at the panicking frame
		FatalWithStackSkip(ctx, 3, "panic: %v", r)
	}
}

// RecoverGo runs fn and converts a panic inside it into a fatal log, for use
// on goroutines that would otherwise crash the process without restoring the terminal.
func RecoverGo(ctx context.Context, fn func() error) func() error {
	return func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				if console.TUIShutdown != nil {
					console.TUIShutdown()
				}
				console.SetTUIEnabled(false)
				if fe, ok := r.(FatalError); ok {
					err = fe
					return
				}
				func() {
					defer func() {
						if r2 := recover(); r2 != nil {
							if fe, ok := r2.(FatalError); ok {
								err = fe
							}
						}
					}()
					FatalWithStackSkip(ctx, 3, "goroutine panic: %v", r)
				}()
			}
		}()
		return fn()
	}
}
