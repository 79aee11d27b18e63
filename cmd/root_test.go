package cmd

import (
	"bytes"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/josephlewis42/simpleshell/core/config"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	out := &bytes.Buffer{}
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		cfgPath = ""
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootCmd_Args(t *testing.T) {
	assert.NoError(t, rootCmd.Args(rootCmd, nil))
	assert.NoError(t, rootCmd.Args(rootCmd, []string{"script.sh"}))
	assert.EqualError(t, rootCmd.Args(rootCmd, []string{"a", "b"}), "Usage: simple_shell [filename]")
}

func TestRootCmd_Script(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Initialize(afero.NewOsFs(), dir, log.New(io.Discard, "", 0)))

	script := filepath.Join(dir, "script.sh")
	require.NoError(t, os.WriteFile(script, []byte("# comment\necho hi\nexit 3\necho unreachable\n"), 0644))

	out, err := executeRoot(t, "--config", dir, "--color", "never", script)

	var exitErr *exitError
	require.ErrorAs(t, err, &exitErr)
	assert.Equal(t, 3, exitErr.code)
	assert.Equal(t, "hi\nExiting simple_shell with status 3.\n", out)
}

func TestRootCmd_MissingScript(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Initialize(afero.NewOsFs(), dir, log.New(io.Discard, "", 0)))

	_, err := executeRoot(t, "--config", dir, filepath.Join(dir, "missing.sh"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "fopen: "), err.Error())
}

func TestRootCmd_ScriptNamedLikeCommand(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, config.Initialize(afero.NewOsFs(), dir, log.New(io.Discard, "", 0)))
	t.Chdir(dir)

	for _, name := range []string{"init", "builtins", "events", "help", "completion"} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, os.WriteFile(name, []byte("echo from-script\n"), 0644))

			out, err := executeRoot(t, "--config", dir, name)
			require.NoError(t, err)
			assert.Equal(t, "from-script\nExiting simple_shell.\n", out)
		})
	}
}
