package cmd

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"cursespp/internal/console"
	"cursespp/internal/constants"
	"cursespp/internal/version"

	"github.com/spf13/pflag"
)

// ErrHelp is returned by Parse when help was requested.
var ErrHelp = errors.New("help requested")

// ParseError describes a bad command line, pointing at the failing argument.
type ParseError struct {
	Args    []string // The full argument list passed to Parse
	Index   int      // The index of the failing argument, or -1
	Message string   // The specific error message
}

func (e *ParseError) Error() string {
	if e.Index < 0 || e.Index >= len(e.Args) {
		return e.Message
	}
	indent := "   "

	parts := []string{version.CommandName}
	for i, arg := range e.Args {
		if i == e.Index {
			arg = console.Colorize(console.CodeRed, arg)
		}
		parts = append(parts, arg)
	}

	// Indent + ' + command + space + previous args
	caret := len(indent) + 1 + len(version.CommandName) + 1
	for _, arg := range e.Args[:e.Index] {
		caret += len(arg) + 1
	}

	var sb strings.Builder
	sb.WriteString(e.Message + "\n")
	sb.WriteString(indent + "'" + strings.Join(parts, " ") + "'\n")
	sb.WriteString(strings.Repeat(" ", caret) + console.Colorize(console.CodeRed, "^") + "\n")
	sb.WriteString(fmt.Sprintf("See '%s --help' for more information.", version.CommandName))
	return sb.String()
}

// Parse reads the command line. It returns ErrHelp when -h was given and a
// *ParseError for anything it cannot accept.
func Parse(args []string) (Options, error) {
	var opts Options
	fs := newFlagSet(&opts)
	if err := fs.Parse(args); err != nil {
		return opts, &ParseError{Args: args, Index: failingIndex(args, err), Message: parseMessage(err)}
	}
	if rest := fs.Args(); len(rest) > 0 {
		i := slices.Index(args, rest[0])
		return opts, &ParseError{Args: args, Index: i, Message: fmt.Sprintf("Invalid option '%s'", rest[0])}
	}
	if opts.Help {
		return opts, ErrHelp
	}

	switch opts.FocusMode {
	case "", constants.FocusModeCircular, constants.FocusModeTerminating:
	default:
		return opts, &ParseError{
			Args:    args,
			Index:   flagValueIndex(args, fs.Lookup("focus-mode")),
			Message: fmt.Sprintf("Focus mode must be '%s' or '%s'", constants.FocusModeCircular, constants.FocusModeTerminating),
		}
	}
	for _, name := range []string{"min-width", "min-height"} {
		if v, _ := fs.GetInt(name); v < 0 {
			return opts, &ParseError{Args: args, Index: flagValueIndex(args, fs.Lookup(name)), Message: fmt.Sprintf("--%s must not be negative", name)}
		}
	}
	return opts, nil
}

func parseMessage(err error) string {
	var notExist *pflag.NotExistError
	var needsValue *pflag.ValueRequiredError
	var invalid *pflag.InvalidValueError
	switch {
	case errors.As(err, &notExist):
		return fmt.Sprintf("Invalid option '%s'", specified(notExist.GetSpecifiedName(), notExist.GetSpecifiedShortnames()))
	case errors.As(err, &needsValue):
		return fmt.Sprintf("Option '%s' requires an argument", specified(needsValue.GetSpecifiedName(), needsValue.GetSpecifiedShortnames()))
	case errors.As(err, &invalid):
		return fmt.Sprintf("Invalid value '%s' for option '--%s'", invalid.GetValue(), invalid.GetFlag().Name)
	}
	return err.Error()
}

func specified(name, shorthands string) string {
	if shorthands != "" {
		return "-" + name[:1]
	}
	return "--" + name
}

// failingIndex finds the argument a pflag error refers to, or -1.
func failingIndex(args []string, err error) int {
	var notExist *pflag.NotExistError
	var needsValue *pflag.ValueRequiredError
	var invalid *pflag.InvalidValueError
	var syntax *pflag.InvalidSyntaxError
	switch {
	case errors.As(err, &notExist):
		return argIndex(args, notExist.GetSpecifiedName(), notExist.GetSpecifiedShortnames())
	case errors.As(err, &needsValue):
		return argIndex(args, needsValue.GetSpecifiedName(), needsValue.GetSpecifiedShortnames())
	case errors.As(err, &invalid):
		return flagValueIndex(args, invalid.GetFlag())
	case errors.As(err, &syntax):
		return slices.Index(args, syntax.GetSpecifiedFlag())
	}
	return -1
}

func argIndex(args []string, name, shorthands string) int {
	for i, arg := range args {
		if arg == "--" {
			break
		}
		if shorthands != "" {
			if isShortGroup(arg) && strings.HasSuffix(arg, shorthands) {
				return i
			}
			continue
		}
		if arg == "--"+name || strings.HasPrefix(arg, "--"+name+"=") {
			return i
		}
	}
	return -1
}

// flagValueIndex returns the index of the last argument setting f.
func flagValueIndex(args []string, f *pflag.Flag) int {
	if f == nil {
		return -1
	}
	last := -1
	for i, arg := range args {
		switch {
		case arg == "--":
			return last
		case arg == "--"+f.Name || strings.HasPrefix(arg, "--"+f.Name+"="):
			last = i
		case f.Shorthand != "" && isShortGroup(arg) &&
			(strings.HasPrefix(arg[1:], f.Shorthand) || strings.HasSuffix(arg, f.Shorthand)):
			last = i
		}
	}
	return last
}

// isShortGroup reports whether arg is one or more shorthand flags, as in -vx.
func isShortGroup(arg string) bool {
	return len(arg) > 1 && arg[0] == '-' && arg[1] != '-'
}
