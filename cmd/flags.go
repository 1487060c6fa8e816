package cmd

import (
	"io"

	"cursespp/internal/version"

	"github.com/spf13/pflag"
)

// Options holds the parsed command line.
type Options struct {
	// Modifiers
	Verbose bool
	Debug   bool
	Trace   bool

	// Commands
	Help      bool
	Version   bool
	ThemeList bool

	// Overrides applied on top of the configuration file
	ConfigPath string
	Theme      string
	Dir        string
	NoMouse    bool
	MinWidth   int
	MinHeight  int
	FocusMode  string
}

// newFlagSet defines the flags, bound to opts.
func newFlagSet(opts *Options) *pflag.FlagSet {
	fs := pflag.NewFlagSet(version.CommandName, pflag.ContinueOnError)
	fs.SortFlags = false
	fs.SetOutput(io.Discard)

	// Modifiers
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Verbose output")
	fs.BoolVarP(&opts.Debug, "debug", "x", false, "Debug output")
	fs.BoolVar(&opts.Trace, "trace", false, "Trace output, including every message and resize")

	// Configuration
	fs.StringVarP(&opts.ConfigPath, "config", "c", "", "Read settings from this file instead of the default")
	fs.StringVarP(&opts.Theme, "theme", "T", "", "Use this theme")
	fs.BoolVar(&opts.ThemeList, "theme-list", false, "List available themes")
	fs.StringVarP(&opts.Dir, "dir", "d", "", "Start browsing in this directory")
	fs.BoolVar(&opts.NoMouse, "no-mouse", false, "Do not capture the mouse")
	fs.IntVar(&opts.MinWidth, "min-width", 0, "Smallest usable terminal width")
	fs.IntVar(&opts.MinHeight, "min-height", 0, "Smallest usable terminal height")
	fs.StringVar(&opts.FocusMode, "focus-mode", "", "Focus chain mode (circular or terminating)")

	// Information
	fs.BoolVarP(&opts.Version, "version", "V", false, "Show version")
	fs.BoolVarP(&opts.Help, "help", "h", false, "Show help")
	return fs
}
