// Package configpaths resolves the on-disk locations the daemon searches
// for its INI configuration, and where it writes a default one.
package configpaths

import (
	"errors"
	"os"
	"path/filepath"
)

// UserConfigPath returns the user-scoped config file path:
// $XDG_CONFIG_HOME/g29emu/config.ini, falling back to ~/.config/g29emu/config.ini.
func UserConfigPath() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "g29emu", "config.ini"), nil
	}
	if home := os.Getenv("HOME"); home != "" {
		return filepath.Join(home, ".config", "g29emu", "config.ini"), nil
	}
	return "", errors.New("neither XDG_CONFIG_HOME nor HOME is set")
}

// SystemConfigPath is the system-wide fallback config location.
const SystemConfigPath = "/etc/g29emu/config.ini"

// SearchPaths returns the ordered list of paths Load checks: user config
// first, then system config. This resolves spec.md's Open Question in favor
// of a user-first policy.
func SearchPaths() []string {
	paths := make([]string, 0, 2)
	if p, err := UserConfigPath(); err == nil {
		paths = append(paths, p)
	}
	paths = append(paths, SystemConfigPath)
	return paths
}

// EnsureDir ensures the directory for a given file path exists.
func EnsureDir(filePath string) error {
	return os.MkdirAll(filepath.Dir(filePath), 0o755)
}
