package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// DirName is the directory in $HOME holding the user's configuration.
const DirName = ".simple_shell"

// DefaultDir returns the configuration directory in $HOME, empty if there's
// no home directory.
func DefaultDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, DirName)
}

// Find loads the configuration at path, which must exist. With no path the
// configuration in DefaultDir is used if there is one, otherwise the
// built-in defaults.
func Find(configFs afero.Fs, path string) (*Configuration, error) {
	if path != "" {
		return Load(configFs, path)
	}

	dir := DefaultDir()
	if dir == "" {
		return Default(), nil
	}

	cfg, err := Load(configFs, dir)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}
