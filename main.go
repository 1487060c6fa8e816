package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"cursespp/cmd"
	"cursespp/internal/console"
	"cursespp/internal/logger"
	"cursespp/internal/version"
)

func main() {
	os.Exit(run())
}

func run() (exitCode int) {
	slog.SetDefault(logger.NewLogger())
	ctx := context.Background()

	// Recover from logger.FatalError so the exit code is set
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(logger.FatalError); ok {
				// This panic was intentional from logger.Fatal/FatalNoTrace
				exitCode = 1
			} else {
				// Re-panic for other errors
				panic(r)
			}
		}
		if exitCode != 0 {
			fmt.Fprintf(os.Stderr, "%s did not finish running successfully.\n", console.Colorize(console.CodeBold, version.ApplicationName))
		}
	}()
	// Turn any other panic into a fatal log after restoring the terminal
	defer logger.Recover(ctx)

	// Parse command line arguments
	opts, err := cmd.Parse(os.Args[1:])
	if errors.Is(err, cmd.ErrHelp) {
		cmd.PrintHelp()
		return 0
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Hand off execution to the cmd package
	return cmd.Execute(ctx, opts)
}
