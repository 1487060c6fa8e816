package console

// Raw ANSI Color Codes
const (
	// Reset
	CodeReset = "\033[0m"

	// Modifiers
	CodeBold      = "\033[1m"
	CodeDim       = "\033[2m"
	CodeUnderline = "\033[4m"
	CodeReverse   = "\033[7m"

	// Foreground
	CodeBlack   = "\033[30m"
	CodeRed     = "\033[31m"
	CodeGreen   = "\033[32m"
	CodeYellow  = "\033[33m"
	CodeBlue    = "\033[34m"
	CodeMagenta = "\033[35m"
	CodeCyan    = "\033[36m"
	CodeWhite   = "\033[37m"

	// Background
	CodeRedBg = "\033[41m"
)

// Colorize wraps text in the given code when colors are enabled for stdout.
func Colorize(code, text string) string {
	if !ColorEnabled() {
		return text
	}
	return code + text + CodeReset
}
