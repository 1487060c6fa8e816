// Package assets carries the bundled themes and extracts them into the
// user's state directory.
package assets

import (
	"context"
	"embed"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"cursespp/internal/logger"
	"cursespp/internal/paths"
)

//go:embed themes
var embeddedFS embed.FS

// Themes returns the names of the bundled theme files.
func Themes() ([]string, error) {
	entries, err := embeddedFS.ReadDir("themes")
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// EnsureAssets extracts embedded assets to the user's system if they are missing.
func EnsureAssets(ctx context.Context) error {
	if err := extractFolder(ctx, "themes", paths.GetThemesDir()); err != nil {
		return fmt.Errorf("failed to extract themes: %w", err)
	}
	return nil
}

// extractFolder copies srcDir out of the embedded tree. Files that already
// exist are left alone so user edits survive.
func extractFolder(ctx context.Context, srcDir, destDir string) error {
	return fs.WalkDir(embeddedFS, srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		relPath, _ := filepath.Rel(srcDir, path)
		if relPath == "." {
			return os.MkdirAll(destDir, 0o755)
		}

		targetPath := filepath.Join(destDir, relPath)
		if d.IsDir() {
			return os.MkdirAll(targetPath, 0o755)
		}
		if _, err := os.Stat(targetPath); err == nil {
			return nil
		}

		logger.Debug(ctx, "Extracting asset: %s", relPath)

		srcFile, err := embeddedFS.Open(path)
		if err != nil {
			return err
		}
		defer srcFile.Close()

		destFile, err := os.Create(targetPath)
		if err != nil {
			return err
		}
		defer destFile.Close()

		_, err = io.Copy(destFile, srcFile)
		return err
	})
}
