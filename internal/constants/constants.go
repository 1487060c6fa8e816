package constants

// Folder Names
const (
	ThemesDirName = "themes"
)

// File Names
const (
	AppConfigFileName = "cursespp.toml"
	LogFileName       = "cursespp.log"
	LockFileName      = "cursespp.lock"
	ThemeFileExt      = ".yaml"
	DefaultThemeName  = "default"
)

// Config keys, as they appear in validation errors
const (
	MinWidthKey        = "ui.min_width"
	MinHeightKey       = "ui.min_height"
	ResizeDebounceKey  = "ui.resize_debounce_ms"
	IdleTimeoutKey     = "ui.idle_timeout_ms"
	DoubleClickKey     = "ui.double_click_ms"
	FocusModeKey       = "ui.focus_mode"
	PreviewMaxBytesKey = "browser.preview_max_bytes"
	LogLinesKey        = "browser.log_lines"
)

// Focus mode names accepted in config and on the command line
const (
	FocusModeCircular    = "circular"
	FocusModeTerminating = "terminating"
)
