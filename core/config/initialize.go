package config

import (
	"errors"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

// Initialize writes the default configuration into dir if one doesn't
// already exist.
func Initialize(configFs afero.Fs, dir string, logger *log.Logger) error {
	logger.Printf("Initializing configuration in %q\n", dir)
	if err := configFs.MkdirAll(dir, 0700); err != nil {
		return err
	}

	configPath := filepath.Join(dir, ConfigurationName)
	switch _, err := configFs.Stat(configPath); {
	case err == nil:
		logger.Printf("- %s already exists, skipping\n", configPath)
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}

	logger.Printf("- Writing %s\n", configPath)
	return afero.WriteFile(configFs, configPath, defaultConfigData, 0600)
}
