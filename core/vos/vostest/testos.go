// Package vostest provides a VOS for tests that runs real programs on the
// host filesystem but keeps the environment, working directory and process
// ID virtual so tests never touch the state of the test binary.
package vostest

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/josephlewis42/simpleshell/core/vos"
	"github.com/spf13/afero"
)

const (
	// DefaultPID is the process ID reported by a TestOS.
	DefaultPID = 4242
	// DefaultPath is the PATH of a TestOS.
	DefaultPath = "/usr/local/bin:/usr/bin:/bin"
)

// TestOS is a deterministic VOS.
type TestOS struct {
	*vos.MapEnv
	vos.Stdio
	afero.Fs

	PID      int
	UID      int
	Dir      string
	HostName string

	// Output holds everything written to stdout and stderr in order.
	Output *bytes.Buffer
}

var _ vos.VOS = (*TestOS)(nil)

// New creates a TestOS rooted at dir with PATH and HOME set and an empty
// stdin. Extra "key=value" pairs are added to the environment and may
// replace the defaults.
func New(dir string, env ...string) *TestOS {
	out := &bytes.Buffer{}
	testOS := &TestOS{
		MapEnv: vos.NewMapEnvFromEnvList([]string{
			vos.EnvPath + "=" + DefaultPath,
			"HOME=" + dir,
		}),
		Stdio:    vos.NewStdio(nil, out, out),
		Fs:       afero.NewOsFs(),
		PID:      DefaultPID,
		UID:      1000,
		Dir:      dir,
		HostName: "localhost",
		Output:   out,
	}

	if err := vos.CopyEnv(testOS.MapEnv, env); err != nil {
		panic(fmt.Sprintf("vostest: invalid environment %q: %v", env, err))
	}
	return testOS
}

// SetStdin replaces the standard input.
func (t *TestOS) SetStdin(input string) {
	t.In = strings.NewReader(input)
}

// Getpid implements VOS.Getpid.
func (t *TestOS) Getpid() int {
	return t.PID
}

// Getuid implements VOS.Getuid.
func (t *TestOS) Getuid() int {
	return t.UID
}

// Hostname implements VOS.Hostname.
func (t *TestOS) Hostname() (string, error) {
	return t.HostName, nil
}

// Getwd implements VOS.Getwd.
func (t *TestOS) Getwd() (string, error) {
	if t.Dir == "" {
		return "", &fs.PathError{Op: "getwd", Path: ".", Err: syscall.ENOENT}
	}
	return t.Dir, nil
}

// Chdir implements VOS.Chdir, errors match the ones returned by os.Chdir.
func (t *TestOS) Chdir(dir string) error {
	target := dir
	if !filepath.IsAbs(target) {
		target = filepath.Join(t.Dir, target)
	}

	stat, err := t.Stat(target)
	switch {
	case err != nil:
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			err = pathErr.Err
		}
		return &fs.PathError{Op: "chdir", Path: dir, Err: err}
	case !stat.IsDir():
		return &fs.PathError{Op: "chdir", Path: dir, Err: syscall.ENOTDIR}
	default:
		t.Dir = filepath.Clean(target)
		return nil
	}
}

// String describes the OS for test failures.
func (t *TestOS) String() string {
	return fmt.Sprintf("TestOS{pid: %d, dir: %q, env: %q}", t.PID, t.Dir, t.Environ())
}
