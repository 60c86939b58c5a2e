// Package config holds mdbundle's run configuration and where it is loaded from.
package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Dir returns the mdbundle global configuration directory.
//
// Resolution:
//   - $MDBUNDLE_CONFIG_HOME if set
//   - $XDG_CONFIG_HOME/mdbundle if set
//   - %AppData%/mdbundle on Windows
//   - ~/.config/mdbundle on macOS and Linux
//
// Returns "" if no home directory can be determined.
func Dir() string {
	if dir := os.Getenv("MDBUNDLE_CONFIG_HOME"); dir != "" {
		return dir
	}

	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "mdbundle")
	}

	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "mdbundle")
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "mdbundle")
}

// GlobalFile returns the path of the global config file, or "" if Dir is unknown.
func GlobalFile() string {
	dir := Dir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "config.yaml")
}
