package console

import "sync/atomic"

var tuiEnabled atomic.Bool

// TUIShutdown restores the terminal when the TUI owns it. It is set by the
// running application and called from panic recovery before anything is printed.
var TUIShutdown func()

// IsTUIEnabled returns true if the application is currently running in TUI mode.
func IsTUIEnabled() bool {
	return tuiEnabled.Load()
}

// SetTUIEnabled sets whether the application is running in TUI mode.
func SetTUIEnabled(enabled bool) {
	tuiEnabled.Store(enabled)
}
