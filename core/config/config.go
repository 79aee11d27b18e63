package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	ColorAlways = "always"
	ColorAuto   = "auto"
	ColorNever  = "never"
)

type Configuration struct {
	configFs  afero.Fs
	configDir string

	// Prompt holds the interactive prompt template.
	Prompt string `json:"prompt" validate:"required"`
	// Color controls colorized diagnostics.
	Color string `json:"color" validate:"oneof=always auto never"`

	HistoryFile  string `json:"history_file"`
	HistoryLimit int    `json:"history_limit" validate:"gte=0"`

	EnvFile  string `json:"env_file"`
	EventLog string `json:"event_log"`

	SuggestCommands bool `json:"suggest_commands"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

func (c *Configuration) fs() afero.Fs {
	if c.configFs == nil {
		c.configFs = afero.NewOsFs()
	}
	return c.configFs
}

// Dir returns the directory the configuration was loaded from, empty for the
// built-in defaults.
func (c *Configuration) Dir() string {
	return c.configDir
}

// Resolve returns the path relative to the configuration directory.
// Absolute paths are returned as is.
func (c *Configuration) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.configDir == "" {
		return path
	}
	return filepath.Join(c.configDir, path)
}

// HistoryPath returns the resolved history file, empty if history isn't
// persisted.
func (c *Configuration) HistoryPath() string {
	return c.Resolve(c.HistoryFile)
}

// OpenEventLog opens the event log in an append only state.
func (c *Configuration) OpenEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.Resolve(c.EventLog), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadEventLog opens the event log for reading.
func (c *Configuration) ReadEventLog() (afero.File, error) {
	return c.fs().OpenFile(c.Resolve(c.EventLog), os.O_RDONLY, 0600)
}

// OpenEnvFile opens the dotenv file for reading.
func (c *Configuration) OpenEnvFile() (afero.File, error) {
	return c.fs().Open(c.Resolve(c.EnvFile))
}

// Default returns the built-in configuration backed by the OS filesystem.
func Default() *Configuration {
	cfg := defaultConfig()
	cfg.configFs = afero.NewOsFs()
	return cfg
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
