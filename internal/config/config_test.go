package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"cursespp/internal/constants"
	"cursespp/internal/paths"
)

func withTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	paths.ConfigHomeOverride = dir
	paths.StateHomeOverride = dir
	t.Cleanup(func() {
		paths.ConfigHomeOverride = ""
		paths.StateHomeOverride = ""
	})
	return dir
}

func TestLoadWritesDefaults(t *testing.T) {
	withTempConfigHome(t)

	conf, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if conf.UI.FocusMode != constants.FocusModeCircular {
		t.Errorf("Expected focus mode %q, got %q", constants.FocusModeCircular, conf.UI.FocusMode)
	}
	if _, err := os.Stat(paths.GetConfigFilePath()); err != nil {
		t.Errorf("Expected defaults written to %s: %v", paths.GetConfigFilePath(), err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	withTempConfigHome(t)

	conf := Default()
	conf.UI.Theme = "TestTheme"
	conf.UI.Borders = false
	conf.UI.FocusMode = constants.FocusModeTerminating
	conf.Browser.LogLines = 42

	if err := SaveAppConfig(conf); err != nil {
		t.Fatalf("SaveAppConfig failed: %v", err)
	}

	loaded, err := LoadAppConfig("")
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if loaded.UI.Theme != "TestTheme" {
		t.Errorf("Expected Theme 'TestTheme', got '%s'", loaded.UI.Theme)
	}
	if loaded.UI.Borders != false {
		t.Errorf("Expected Borders false, got %v", loaded.UI.Borders)
	}
	if loaded.UI.FocusMode != constants.FocusModeTerminating {
		t.Errorf("Expected focus mode terminating, got %q", loaded.UI.FocusMode)
	}
	if loaded.Browser.LogLines != 42 {
		t.Errorf("Expected log_lines 42, got %d", loaded.Browser.LogLines)
	}
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	dir := withTempConfigHome(t)
	path := filepath.Join(dir, "partial.toml")
	if err := os.WriteFile(path, []byte("[ui]\nmin_width = 100\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	conf, err := LoadAppConfig(path)
	if err != nil {
		t.Fatalf("LoadAppConfig failed: %v", err)
	}
	if conf.UI.MinWidth != 100 {
		t.Errorf("Expected min_width 100, got %d", conf.UI.MinWidth)
	}
	if conf.UI.MinHeight != Default().UI.MinHeight {
		t.Errorf("Expected default min_height, got %d", conf.UI.MinHeight)
	}
}

func TestLoadErrors(t *testing.T) {
	dir := withTempConfigHome(t)

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"bad toml", "[ui\n", "parsing"},
		{"bad focus mode", "[ui]\nfocus_mode = \"sideways\"\n", constants.FocusModeKey},
		{"zero min width", "[ui]\nmin_width = 0\n", constants.MinWidthKey},
		{"negative debounce", "[ui]\nresize_debounce_ms = -1\n", constants.ResizeDebounceKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, strings.ReplaceAll(tt.name, " ", "_")+".toml")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := LoadAppConfig(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("LoadAppConfig() error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}

	if _, err := LoadAppConfig(filepath.Join(dir, "missing.toml")); err == nil {
		t.Error("Expected error for missing explicit config file")
	}
}

func TestExpandVariables(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	tests := []struct {
		in   string
		want string
	}{
		{"${HOME}/music", home + "/music"},
		{"~/music", home + "/music"},
		{"~", home},
		{"/abs/path", "/abs/path"},
		{"${UNKNOWN}x", "x"},
	}
	for _, tt := range tests {
		if got := ExpandVariables(tt.in); got != tt.want {
			t.Errorf("ExpandVariables(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
