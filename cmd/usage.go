package cmd

import (
	"fmt"
	"strings"

	"cursespp/internal/console"
	"cursespp/internal/version"
)

// PrintHelp prints usage information.
func PrintHelp() {
	fmt.Print(GetUsage())
}

// GetUsage returns usage information as a string.
func GetUsage() string {
	var sb strings.Builder
	printStr := func(s string) {
		sb.WriteString(s + "\n")
	}

	appName := version.ApplicationName
	appCmd := version.CommandName

	printStr(fmt.Sprintf("Usage: %s [%s]", console.Colorize(console.CodeCyan, appCmd), console.Colorize(console.CodeCyan, "<Flags>")))
	printStr("")
	printStr(fmt.Sprintf("%s [%s]", console.Colorize(console.CodeBold, appName), version.Version))
	printStr("A terminal directory browser built on a window compositor.")
	printStr("For regular usage you can run without providing any options.")
	printStr("")
	printStr("Settings are read from the configuration file and can be overridden by the")
	printStr("flags below for a single run.")
	printStr("")
	printStr("Flags:")
	printStr("")

	var opts Options
	sb.WriteString(newFlagSet(&opts).FlagUsages())
	printStr("")
	printStr("Keys:")
	printStr("")
	printStr("  tab, shift+tab   move between windows      enter      open")
	printStr("  backspace        parent directory          y          copy path")
	printStr("  .                toggle hidden files       ctrl+r     refresh")
	printStr("  ?                help                      q          quit")
	return sb.String()
}
