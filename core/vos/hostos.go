package vos

import (
	"os"

	"github.com/spf13/afero"
)

// HostOS is the VOS of the running process: the real environment, working
// directory and filesystem with the given standard streams.
type HostOS struct {
	OSEnv
	VIO
	VFS
}

var _ VOS = (*HostOS)(nil)

// NewHostOS creates a VOS backed by the running process.
func NewHostOS(stdio VIO) *HostOS {
	return &HostOS{
		VIO: stdio,
		VFS: afero.NewOsFs(),
	}
}

// Getpid implements VOS.Getpid.
func (*HostOS) Getpid() int {
	return os.Getpid()
}

// Getuid implements VOS.Getuid.
func (*HostOS) Getuid() int {
	return os.Getuid()
}

// Hostname implements VOS.Hostname.
func (*HostOS) Hostname() (string, error) {
	return os.Hostname()
}

// Getwd implements VOS.Getwd.
func (*HostOS) Getwd() (string, error) {
	return os.Getwd()
}

// Chdir implements VOS.Chdir.
func (*HostOS) Chdir(dir string) error {
	return os.Chdir(dir)
}
