package theme

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cursespp/internal/constants"
	"cursespp/internal/paths"

	"gopkg.in/yaml.v3"
)

// ThemeMetadata holds information about a theme.
type ThemeMetadata struct {
	Name        string
	Description string
	Author      string
}

// List returns a list of available themes with their metadata.
// The built-in default theme is always included.
func List() ([]ThemeMetadata, error) {
	themesDir := paths.GetThemesDir()
	entries, err := os.ReadDir(themesDir)
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}

	var themes []ThemeMetadata
	haveDefault := false
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), constants.ThemeFileExt) {
			continue
		}
		name := strings.TrimSuffix(entry.Name(), constants.ThemeFileExt)
		meta, _ := getThemeMetadata(filepath.Join(themesDir, entry.Name()))
		meta.Name = name // Ensure name is set from filename
		if name == constants.DefaultThemeName {
			haveDefault = true
		}
		themes = append(themes, meta)
	}
	if !haveDefault {
		d := Default()
		themes = append(themes, ThemeMetadata{Name: d.Name, Description: d.Description})
	}
	sort.Slice(themes, func(i, j int) bool { return themes[i].Name < themes[j].Name })
	return themes, nil
}

func getThemeMetadata(path string) (ThemeMetadata, error) {
	var meta ThemeMetadata
	data, err := os.ReadFile(path)
	if err != nil {
		return meta, err
	}
	var f themeFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return meta, err
	}
	meta.Description = f.Description
	meta.Author = f.Author
	return meta, nil
}
