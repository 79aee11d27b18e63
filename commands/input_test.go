package commands

import (
	"io"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderSource(t *testing.T) {
	prompts := &strings.Builder{}
	src := NewReaderSource("stdin", strings.NewReader("one\n\ntwo"), prompts)
	defer src.Close()

	var lines []string
	for {
		line, err := src.ReadLine("> ")
		if err == io.EOF {
			break
		}
		require.NoError(t, err)
		lines = append(lines, line)
	}

	assert.Equal(t, []string{"one", "", "two"}, lines)
	assert.Equal(t, "> > > > ", prompts.String())
	assert.Equal(t, "stdin", src.Name())
}

func TestOpenScript(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/script.sh", []byte("echo hi\nexit 2\n"), 0644))

	t.Run("exists", func(t *testing.T) {
		src, err := OpenScript(fs, "/script.sh")
		require.NoError(t, err)
		defer src.Close()

		assert.Equal(t, "/script.sh", src.Name())

		line, err := src.ReadLine("ignored$ ")
		require.NoError(t, err)
		assert.Equal(t, "echo hi", line)

		line, err = src.ReadLine("")
		require.NoError(t, err)
		assert.Equal(t, "exit 2", line)

		_, err = src.ReadLine("")
		assert.Equal(t, io.EOF, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := OpenScript(fs, "/missing.sh")
		assert.Error(t, err)
	})
}
