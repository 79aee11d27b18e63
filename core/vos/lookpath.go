package vos

import (
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
)

const EnvPath = "PATH"

var (
	// ErrNotFound is the error resulting if a path search failed to find an
	// executable file.
	ErrNotFound = exec.ErrNotFound

	// ErrNoPath is returned when a bare command name must be searched for but
	// PATH isn't set at all.
	ErrNoPath = errors.New("PATH environment variable not set.")
)

func findExecutable(vos VOS, file string) error {
	d, err := vos.Stat(file)
	if err != nil {
		return unwrapPathError(err)
	}
	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories named by
// the PATH environment variable. If file contains a slash, it is tried directly
// and the PATH is not consulted. Relative results are resolved against the
// working directory of the virtual OS so the result is always absolute.
func LookPath(vos VOS, file string) (string, error) {
	if strings.Contains(file, "/") {
		path, err := absPath(vos, file)
		if err != nil {
			return "", err
		}
		if err := findExecutable(vos, path); err != nil {
			return "", err
		}
		return path, nil
	}

	pathEnv, ok := vos.LookupEnv(EnvPath)
	if !ok {
		return "", ErrNoPath
	}

	for _, dir := range filepath.SplitList(pathEnv) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path, err := absPath(vos, filepath.Join(dir, file))
		if err != nil {
			return "", err
		}
		if err := findExecutable(vos, path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}

func absPath(vos VOS, path string) (string, error) {
	if filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := vos.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, path), nil
}
