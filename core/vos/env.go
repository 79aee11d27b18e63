package vos

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"sync"
	"syscall"
)

// VEnv represents a virtual environment.
type VEnv interface {
	// Unsetenv unsets a single environment variable.
	Unsetenv(key string) error

	// Setenv sets the value of the environment variable named by the key.
	// It returns an error, if any.
	Setenv(key, value string) error

	// LookupEnv retrieves the value of the environment variable named by the key.
	// If the variable is present in the environment the value (which may be
	// empty) is returned and the boolean is true. Otherwise the returned value
	// will be empty and the boolean will be false.
	LookupEnv(key string) (string, bool)

	// Getenv retrieves the value of the environment variable named by the key.
	// It returns the value, which will be empty if the variable is not present.
	// To distinguish between an empty value and an unset value, use LookupEnv.
	Getenv(key string) string

	// Environ returns a copy of strings representing the environment, in the
	// form "key=value".
	Environ() []string
}

// CopyEnv copies all the "key=value" pairs into dst. Entries without an "="
// are set with an empty value.
func CopyEnv(dst VEnv, environ []string) error {
	for _, e := range environ {
		key, value, _ := strings.Cut(e, "=")
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}

	return nil
}

// MergeEnv sets every variable in vars that isn't already present in dst.
func MergeEnv(dst VEnv, vars map[string]string) error {
	for key, value := range vars {
		if _, ok := dst.LookupEnv(key); ok {
			continue
		}
		if err := dst.Setenv(key, value); err != nil {
			return err
		}
	}
	return nil
}

// NewMapEnv creates a new environment backed by a map.
func NewMapEnv() *MapEnv {
	return &MapEnv{}
}

// NewMapEnvFromEnvList creates a new environment from a list of "key=value"
// pairs.
func NewMapEnvFromEnvList(environ []string) *MapEnv {
	out := &MapEnv{}
	for _, e := range environ {
		key, value, _ := strings.Cut(e, "=")
		if key == "" {
			continue
		}
		// Ignore error, keys without "=" can't fail.
		_ = out.Setenv(key, value)
	}

	return out
}

// MapEnv implemnts an in-memory VEnv.
type MapEnv struct {
	rw  sync.RWMutex
	env map[string]string
}

var _ VEnv = (*MapEnv)(nil)

// Unsetenv implements VEnv.Unsetenv.
func (m *MapEnv) Unsetenv(key string) error {
	if err := checkEnvKey("unsetenv", key); err != nil {
		return err
	}

	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env != nil {
		delete(m.env, key)
	}
	return nil
}

// Setenv implements VEnv.Setenv, like the C library it rejects empty keys
// and keys containing "=".
func (m *MapEnv) Setenv(key, value string) error {
	if err := checkEnvKey("setenv", key); err != nil {
		return err
	}

	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
	return nil
}

// LookupEnv implements VEnv.LookupEnv.
func (m *MapEnv) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv implements VEnv.Getenv.
func (m *MapEnv) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ implements VEnv.Environ, entries are sorted by key.
func (m *MapEnv) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	var env []string
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	return env
}

func checkEnvKey(op, key string) error {
	if key == "" || strings.Contains(key, "=") {
		return os.NewSyscallError(op, syscall.EINVAL)
	}
	return nil
}

// OSEnv is a VEnv backed by the environment of the running process.
type OSEnv struct{}

var _ VEnv = OSEnv{}

// Unsetenv implements VEnv.Unsetenv.
func (OSEnv) Unsetenv(key string) error {
	if err := checkEnvKey("unsetenv", key); err != nil {
		return err
	}
	return os.Unsetenv(key)
}

// Setenv implements VEnv.Setenv.
func (OSEnv) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

// LookupEnv implements VEnv.LookupEnv.
func (OSEnv) LookupEnv(key string) (string, bool) {
	return os.LookupEnv(key)
}

// Getenv implements VEnv.Getenv.
func (OSEnv) Getenv(key string) string {
	return os.Getenv(key)
}

// Environ implements VEnv.Environ.
func (OSEnv) Environ() []string {
	return os.Environ()
}
