package tui

// Message types handled by the framework. Application messages start at
// MsgUser.
const (
	MsgResize = iota + 1
	MsgUser   = 1024
)
