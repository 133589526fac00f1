// Package pathutil provides small path normalization helpers shared by the
// workspace resolver and the CLI.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// Normalize converts a path to an absolute, clean path, expanding a leading ~.
func Normalize(path string) (string, error) {
	path = ExpandHome(path)

	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return filepath.Clean(absPath), nil
}

// ExpandHome expands a leading ~ to the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}

	if path == "~" {
		return home
	}

	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}

	return path
}
