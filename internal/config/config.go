package config

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"time"

	"cursespp/internal/constants"
	"cursespp/internal/paths"

	"github.com/adrg/xdg"
	toml "github.com/pelletier/go-toml/v2"
)

// AppConfig holds the application configuration settings.
type AppConfig struct {
	UI      UIConfig      `toml:"ui"`
	Browser BrowserConfig `toml:"browser"`

	// These are helper fields for runtime use, not saved to TOML
	Path     string `toml:"-"`
	StartDir string `toml:"-"`
}

// UIConfig holds user interface related settings.
type UIConfig struct {
	Theme            string `toml:"theme"`
	MinWidth         int    `toml:"min_width"`
	MinHeight        int    `toml:"min_height"`
	ResizeDebounceMs int    `toml:"resize_debounce_ms"`
	IdleTimeoutMs    int    `toml:"idle_timeout_ms"`
	DoubleClickMs    int    `toml:"double_click_ms"`
	Mouse            bool   `toml:"mouse"`
	FocusMode        string `toml:"focus_mode"` // circular or terminating
	Scrollbar        bool   `toml:"scrollbar"`
	Borders          bool   `toml:"borders"`
}

// BrowserConfig holds settings of the bundled directory browser.
type BrowserConfig struct {
	StartDir        string `toml:"start_dir"`
	ShowHidden      bool   `toml:"show_hidden"`
	LogLines        int    `toml:"log_lines"`
	PreviewMaxBytes int64  `toml:"preview_max_bytes"`
	Watch           bool   `toml:"watch"`
}

// Default returns the configuration used when no file exists.
func Default() AppConfig {
	return AppConfig{
		UI: UIConfig{
			Theme:            constants.DefaultThemeName,
			MinWidth:         40,
			MinHeight:        12,
			ResizeDebounceMs: 100,
			IdleTimeoutMs:    250,
			DoubleClickMs:    400,
			Mouse:            true,
			FocusMode:        constants.FocusModeCircular,
			Scrollbar:        true,
			Borders:          true,
		},
		Browser: BrowserConfig{
			StartDir:        "${HOME}",
			ShowHidden:      false,
			LogLines:        500,
			PreviewMaxBytes: 64 * 1024,
			Watch:           true,
		},
	}
}

// ResizeDebounce returns the resize debounce window.
func (c UIConfig) ResizeDebounce() time.Duration {
	return time.Duration(c.ResizeDebounceMs) * time.Millisecond
}

// IdleTimeout returns the event loop idle timeout.
func (c UIConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutMs) * time.Millisecond
}

// DoubleClick returns the maximum interval between the clicks of a double click.
func (c UIConfig) DoubleClick() time.Duration {
	return time.Duration(c.DoubleClickMs) * time.Millisecond
}

// ExpandVariables expands environment variables in the config values.
// It supports:
// - ${XDG_CONFIG_HOME} -> xdg.ConfigHome
// - ${XDG_DATA_HOME}   -> xdg.DataHome
// - ${XDG_STATE_HOME}  -> xdg.StateHome
// - ${XDG_CACHE_HOME}  -> xdg.CacheHome
// - ${HOME}            -> os.UserHomeDir()
// - ${USER}            -> Current username
// - ~ at the start of the value is treated as ${HOME}
func ExpandVariables(val string) string {
	mapper := func(varName string) string {
		switch varName {
		case "XDG_CONFIG_HOME":
			return xdg.ConfigHome
		case "XDG_DATA_HOME":
			return xdg.DataHome
		case "XDG_STATE_HOME":
			return xdg.StateHome
		case "XDG_CACHE_HOME":
			return xdg.CacheHome
		case "HOME":
			home, err := os.UserHomeDir()
			if err != nil {
				return ""
			}
			return home
		case "USER":
			u, err := user.Current()
			if err != nil {
				return os.Getenv("USERNAME") // Fallback for Windows
			}
			return u.Username
		}
		return ""
	}
	if val == "~" || strings.HasPrefix(val, "~/") {
		val = "${HOME}" + val[1:]
	}
	return os.Expand(val, mapper)
}

// Validate checks values that would leave the UI unusable.
func (c AppConfig) Validate() error {
	switch c.UI.FocusMode {
	case constants.FocusModeCircular, constants.FocusModeTerminating:
	default:
		return fmt.Errorf("%s: invalid value %q (expected %q or %q)",
			constants.FocusModeKey, c.UI.FocusMode, constants.FocusModeCircular, constants.FocusModeTerminating)
	}
	if c.UI.MinWidth < 1 {
		return fmt.Errorf("%s: must be positive, got %d", constants.MinWidthKey, c.UI.MinWidth)
	}
	if c.UI.MinHeight < 1 {
		return fmt.Errorf("%s: must be positive, got %d", constants.MinHeightKey, c.UI.MinHeight)
	}
	if c.UI.ResizeDebounceMs < 0 {
		return fmt.Errorf("%s: must not be negative, got %d", constants.ResizeDebounceKey, c.UI.ResizeDebounceMs)
	}
	if c.UI.IdleTimeoutMs < 1 {
		return fmt.Errorf("%s: must be positive, got %d", constants.IdleTimeoutKey, c.UI.IdleTimeoutMs)
	}
	if c.UI.DoubleClickMs < 0 {
		return fmt.Errorf("%s: must not be negative, got %d", constants.DoubleClickKey, c.UI.DoubleClickMs)
	}
	if c.Browser.LogLines < 1 {
		return fmt.Errorf("%s: must be positive, got %d", constants.LogLinesKey, c.Browser.LogLines)
	}
	if c.Browser.PreviewMaxBytes < 1 {
		return fmt.Errorf("%s: must be positive, got %d", constants.PreviewMaxBytesKey, c.Browser.PreviewMaxBytes)
	}
	return nil
}

// LoadAppConfig reads the configuration file at path, or the default location
// when path is empty. A missing default file is created with the defaults.
func LoadAppConfig(path string) (AppConfig, error) {
	conf := Default()

	explicit := path != ""
	if !explicit {
		path = paths.GetConfigFilePath()
	}
	conf.Path = path

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := toml.Unmarshal(data, &conf); err != nil {
			return conf, fmt.Errorf("parsing %s: %w", path, err)
		}
	case os.IsNotExist(err) && !explicit:
		if err := SaveAppConfig(conf); err != nil {
			return conf, err
		}
	default:
		return conf, fmt.Errorf("reading config: %w", err)
	}

	conf.StartDir = ExpandVariables(conf.Browser.StartDir)
	if err := conf.Validate(); err != nil {
		return conf, fmt.Errorf("%s: %w", path, err)
	}
	return conf, nil
}

// SaveAppConfig writes the configuration to conf.Path, or the default location.
func SaveAppConfig(conf AppConfig) error {
	path := conf.Path
	if path == "" {
		path = paths.GetConfigFilePath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(conf)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
