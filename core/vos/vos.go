package vos

import "github.com/spf13/afero"

// VFS is the filesystem layer of the virtual OS.
type VFS = afero.Fs

// VProc holds the process attributes of the virtual OS.
type VProc interface {
	// Getpid returns the process ID of the shell.
	Getpid() int
	// Getuid returns the numeric user ID of the caller.
	Getuid() int
	// Hostname returns the host name.
	Hostname() (string, error)
	// Getwd returns a rooted path name corresponding to the current directory.
	Getwd() (dir string, err error)
	// Chdir changes the current working directory to the named directory.
	Chdir(dir string) error
}

// VOS provides a virtual OS interface, everything the shell needs to talk to
// the system goes through it.
type VOS interface {
	VEnv
	VIO
	VProc
	VFS
}
