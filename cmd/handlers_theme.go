package cmd

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"cursespp/internal/assets"
	"cursespp/internal/config"
	"cursespp/internal/logger"
	"cursespp/internal/theme"
	"cursespp/internal/version"
)

// handleThemeList prints the installed themes, marking the configured one.
func handleThemeList(ctx context.Context, conf config.AppConfig) error {
	installThemes(ctx)
	themes, err := theme.List()
	if err != nil {
		logger.Error(ctx, "Failed to read themes directory: %v", err)
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintf(w, "  Theme\tDescription\tAuthor\t\n")
	for _, t := range themes {
		mark := " "
		if t.Name == conf.UI.Theme {
			mark = "*"
		}
		fmt.Fprintf(w, "%s %s\t%s\t%s\t\n", mark, t.Name, t.Description, t.Author)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nRun '%s --theme <name>' to try one, or set 'theme' in %s.\n", version.CommandName, conf.Path)
	return nil
}

// installThemes writes the built-in and bundled themes to the themes
// directory. Failures only cost the user the bundled choices.
func installThemes(ctx context.Context) {
	if err := theme.WriteDefault(); err != nil {
		logger.Warn(ctx, "Failed to write the default theme: %v", err)
	}
	if err := assets.EnsureAssets(ctx); err != nil {
		logger.Warn(ctx, "Failed to install bundled themes: %v", err)
	}
}

// loadTheme loads the configured theme, falling back to the built-in one.
func loadTheme(ctx context.Context, name string) *theme.Theme {
	th, err := theme.Load(name)
	if err != nil {
		logger.Warn(ctx, "Using the default theme: %v", err)
	}
	return th
}
