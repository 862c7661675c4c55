// Package project persists jobs, application settings, templates, the
// sheet and tool inventory and custom controller profiles as JSON files
// under the user's ~/.sheetyield directory.
package project

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// dirName is the per-user data directory below the home directory.
const dirName = ".sheetyield"

// DefaultConfigDir returns the directory holding all application files.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, dirName)
}

// writeJSON writes v as indented JSON, creating missing parent directories.
func writeJSON(path string, v interface{}) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// readJSON decodes the file at path into v. A missing file is reported with
// an error satisfying os.IsNotExist.
func readJSON(path string, v interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
