package vos_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"github.com/josephlewis42/simpleshell/core/vos"
	"github.com/josephlewis42/simpleshell/core/vos/vostest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0755))
	return path
}

func TestCmd_Run(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	t.Run("success", func(t *testing.T) {
		testOS := vostest.New(dir)
		status, err := vos.Command(testOS, "echo", []string{"echo", "hello", "world"}).Run(ctx)

		assert.NoError(t, err)
		assert.True(t, status.Success())
		assert.Equal(t, 0, status.Status())
		assert.Equal(t, "hello world\n", testOS.Output.String())
	})

	t.Run("exit-code", func(t *testing.T) {
		testOS := vostest.New(dir)
		script := writeScript(t, dir, "exit3", "exit 3")

		status, err := vos.Command(testOS, script, nil).Run(ctx)

		assert.NoError(t, err)
		assert.Equal(t, vos.ExitStatus{Code: 3}, status)
		assert.Equal(t, 3, status.Status())
		assert.Equal(t, "exit status 3", status.String())
	})

	t.Run("signaled", func(t *testing.T) {
		testOS := vostest.New(dir)
		script := writeScript(t, dir, "killself", "kill -9 $$")

		status, err := vos.Command(testOS, script, nil).Run(ctx)

		assert.NoError(t, err)
		assert.True(t, status.Signaled)
		assert.Equal(t, syscall.SIGKILL, status.Signal)
		assert.Equal(t, vos.StatusSignaled, status.Status())
		assert.Equal(t, "signal 9 (SIGKILL)", status.String())
	})

	t.Run("environment", func(t *testing.T) {
		testOS := vostest.New(dir, "GREETING=hi")
		script := writeScript(t, dir, "greet", `echo "$GREETING"`)

		_, err := vos.Command(testOS, script, nil).Run(ctx)

		assert.NoError(t, err)
		assert.Equal(t, "hi\n", testOS.Output.String())
	})

	t.Run("working-directory", func(t *testing.T) {
		subdir := filepath.Join(dir, "sub")
		require.NoError(t, os.MkdirAll(subdir, 0755))
		testOS := vostest.New(subdir)

		_, err := vos.Command(testOS, "pwd", []string{"pwd", "-P"}).Run(ctx)

		want, evalErr := filepath.EvalSymlinks(subdir)
		require.NoError(t, evalErr)
		assert.NoError(t, err)
		assert.Equal(t, want+"\n", testOS.Output.String())
	})

	t.Run("not-found", func(t *testing.T) {
		testOS := vostest.New(dir)

		status, err := vos.Command(testOS, "definitely-not-a-command", nil).Run(ctx)

		var execErr *vos.ExecError
		require.ErrorAs(t, err, &execErr)
		assert.Equal(t, "definitely-not-a-command", execErr.Name)
		assert.ErrorIs(t, err, vos.ErrNotFound)
		assert.Equal(t, vos.ExitFailure, status.Status())
	})

	t.Run("exec-format", func(t *testing.T) {
		testOS := vostest.New(dir)
		path := filepath.Join(dir, "garbage")
		require.NoError(t, os.WriteFile(path, []byte("\x00\x01\x02\x03"), 0755))

		status, err := vos.Command(testOS, path, nil).Run(ctx)

		var execErr *vos.ExecError
		assert.ErrorAs(t, err, &execErr)
		assert.Equal(t, vos.ExitFailure, status.Status())
	})

	t.Run("no-path", func(t *testing.T) {
		testOS := vostest.New(dir)
		require.NoError(t, testOS.Unsetenv(vos.EnvPath))

		_, err := vos.Command(testOS, "echo", nil).Run(ctx)

		assert.ErrorIs(t, err, vos.ErrNoPath)
	})
}

var errBrokenOutput = errors.New("broken output")

type brokenWriter struct{}

func (brokenWriter) Write([]byte) (int, error) {
	return 0, errBrokenOutput
}

func TestCmd_RunProcErrors(t *testing.T) {
	t.Run("fork", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := vos.Command(vostest.New(t.TempDir()), "true", []string{"true"}).Run(ctx)

		var procErr *vos.ProcError
		require.ErrorAs(t, err, &procErr)
		assert.Equal(t, "fork", procErr.Op)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("waitpid", func(t *testing.T) {
		testOS := vostest.New(t.TempDir())
		testOS.Out = brokenWriter{}

		_, err := vos.Command(testOS, "echo", []string{"echo", "hi"}).Run(context.Background())

		var procErr *vos.ProcError
		require.ErrorAs(t, err, &procErr)
		assert.Equal(t, "waitpid", procErr.Op)
		assert.ErrorIs(t, err, errBrokenOutput)
	})

	t.Run("stdin", func(t *testing.T) {
		testOS := vostest.New(t.TempDir())
		testOS.SetStdin("piped\n")

		status, err := vos.Command(testOS, "cat", []string{"cat"}).Run(context.Background())
		require.NoError(t, err)
		assert.True(t, status.Success())
		assert.Equal(t, "piped\n", testOS.Output.String())
	})
}

func TestExitStatus(t *testing.T) {
	cases := map[string]struct {
		status  vos.ExitStatus
		want    int
		success bool
	}{
		"zero":     {status: vos.ExitStatus{}, want: 0, success: true},
		"failure":  {status: vos.ExitStatus{Code: 2}, want: 2},
		"signaled": {status: vos.ExitStatus{Signaled: true, Signal: syscall.SIGTERM}, want: -1},
	}

	for tn, tc := range cases {
		t.Run(tn, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.status.Status())
			assert.Equal(t, tc.success, tc.status.Success())
		})
	}
}
