// Package config provides paths and persisted preferences for DeskNote.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// dataDirOverride lets tests and portable installs relocate the data directory.
var dataDirOverride string

// SetDataDir overrides the data directory returned by GetPath.
func SetDataDir(dir string) {
	dataDirOverride = dir
}

// GetPath returns the path to the user's data directory.
func GetPath() (string, error) {
	if dataDirOverride != "" {
		return dataDirOverride, nil
	}
	if env := os.Getenv("DESKNOTE_DATA_DIR"); env != "" {
		return env, nil
	}

	if runtime.GOOS == "windows" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return "", fmt.Errorf("failed to get user config directory: %w", err)
		}
		return filepath.Join(dir, AppName), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName)), nil
}

// EnsurePath returns the data directory, creating it if needed.
func EnsurePath() (string, error) {
	dir, err := GetPath()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return dir, nil
}

// DatabasePath returns the full path of the SQLite database.
func DatabasePath() (string, error) {
	dir, err := EnsurePath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, DatabaseFile), nil
}
