// Package screens holds the layouts of the bundled directory browser.
package screens

import "cursespp/internal/tui"

// Message types posted to the browser's windows.
const (
	// MsgLogLine carries one formatted log line in Data1.
	MsgLogLine = tui.MsgUser + iota
	// MsgRefresh asks the browser to re-read its directory.
	MsgRefresh
	// MsgPreview asks the browser to preview the selected entry.
	MsgPreview
)
