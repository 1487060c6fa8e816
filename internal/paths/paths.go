package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"cursespp/internal/constants"
	"cursespp/internal/version"

	"github.com/adrg/xdg"
)

var (
	// StateHomeOverride allows overriding the state home for tests.
	StateHomeOverride string
	// ConfigHomeOverride allows overriding the config home for tests.
	ConfigHomeOverride string
)

func appDirName() string {
	return strings.ToLower(version.ApplicationName)
}

// GetConfigFilePath returns the absolute path to the cursespp.toml file.
// It places it in a subdirectory named after the application (e.g., ~/.config/cursespp/cursespp.toml).
func GetConfigFilePath() string {
	if ConfigHomeOverride != "" {
		return filepath.Join(ConfigHomeOverride, appDirName(), constants.AppConfigFileName)
	}
	if runtime.GOOS == "darwin" {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", appDirName(), constants.AppConfigFileName)
	}
	return filepath.Join(xdg.ConfigHome, appDirName(), constants.AppConfigFileName)
}

// GetConfigDir returns the absolute path to the configuration directory.
func GetConfigDir() string {
	return filepath.Dir(GetConfigFilePath())
}

// GetStateDir returns the absolute path to the state directory.
func GetStateDir() string {
	if StateHomeOverride != "" {
		return StateHomeOverride
	}
	return filepath.Join(xdg.StateHome, appDirName())
}

// GetThemesDir returns the absolute path to the themes directory in the state folder.
func GetThemesDir() string {
	return filepath.Join(GetStateDir(), constants.ThemesDirName)
}

// GetLogFilePath returns the path of the application log file.
func GetLogFilePath() string {
	return filepath.Join(GetStateDir(), constants.LogFileName)
}

// GetLockFilePath returns the path of the single-instance lock file.
func GetLockFilePath() string {
	return filepath.Join(GetStateDir(), constants.LockFileName)
}

// GetCacheDir returns the absolute path to the cache directory.
func GetCacheDir() string {
	return filepath.Join(xdg.CacheHome, appDirName())
}
