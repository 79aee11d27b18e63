package config

import (
	"reflect"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestBuiltinConfig(t *testing.T) {
	rawConfig := make(map[string]interface{})
	assert.Nil(t, yaml.Unmarshal(defaultConfigData, &rawConfig))

	knownFields := make(map[string]bool)
	rt := reflect.TypeOf(Configuration{})
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}

		jsonTag := field.Tag.Get("json")
		assert.NotEmpty(t, jsonTag)
		jsonField := strings.Split(jsonTag, ",")[0]
		knownFields[jsonField] = true

		if _, ok := rawConfig[jsonField]; !ok {
			assert.False(t, true, "default config missing field: %q", jsonField)
		}
	}

	for k := range rawConfig {
		_, ok := knownFields[k]
		assert.True(t, ok, "default config contains invalid field: %q", k)
	}
}

func TestDefaultConfig(t *testing.T) {
	// Will panic() on load failure because it should never happen at runtime.
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.NoError(t, cfg.Validate())

	assert.Equal(t, `simple_shell:\w$ `, cfg.Prompt)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, 1000, cfg.HistoryLimit)
	assert.True(t, cfg.SuggestCommands)
	assert.Empty(t, cfg.EventLog)
}

func TestLoad(t *testing.T) {
	cases := map[string]struct {
		contents string
		wantErr  string
		check    func(t *testing.T, cfg *Configuration)
	}{
		"partial-keeps-defaults": {
			contents: "color: never\nevent_log: events.jsonl\n",
			check: func(t *testing.T, cfg *Configuration) {
				assert.Equal(t, ColorNever, cfg.Color)
				assert.Equal(t, `simple_shell:\w$ `, cfg.Prompt)
				assert.Equal(t, "/etc/shell/events.jsonl", cfg.Resolve(cfg.EventLog))
			},
		},
		"invalid-color": {
			contents: "color: sometimes\n",
			wantErr:  "color",
		},
		"negative-history": {
			contents: "history_limit: -1\n",
			wantErr:  "history_limit",
		},
		"unknown-field": {
			contents: "colour: never\n",
			wantErr:  "colour",
		},
		"empty-prompt": {
			contents: "prompt: ''\n",
			wantErr:  "prompt",
		},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, afero.WriteFile(fs, "/etc/shell/config.yaml", []byte(tc.contents), 0600))

			cfg, err := Load(fs, "/etc/shell/config.yaml")
			if tc.wantErr != "" {
				assert.ErrorContains(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "/etc/shell", cfg.Dir())
			tc.check(t, cfg)
		})
	}

	t.Run("missing", func(t *testing.T) {
		_, err := Load(afero.NewMemMapFs(), "/nothing")
		assert.Error(t, err)
	})
}

func TestConfiguration_Resolve(t *testing.T) {
	cfg := &Configuration{configDir: "/home/user/.simple_shell"}

	assert.Equal(t, "", cfg.Resolve(""))
	assert.Equal(t, "/var/log/x", cfg.Resolve("/var/log/x"))
	assert.Equal(t, "/home/user/.simple_shell/history", cfg.Resolve("history"))

	// The built-in defaults resolve against the working directory.
	assert.Equal(t, "history", Default().Resolve("history"))
}
