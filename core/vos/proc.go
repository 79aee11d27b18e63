package vos

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os/exec"
	"syscall"
)

const (
	// StatusSignaled is the status reported for a child killed by a signal.
	StatusSignaled = -1

	// ExitFailure is the status of a child that couldn't be executed.
	ExitFailure = 1
)

// ExitStatus is the decoded result of waiting on a child process.
type ExitStatus struct {
	// Code is the exit code of a child that exited normally.
	Code int
	// Signaled is set if the child was terminated by a signal.
	Signaled bool
	// Signal that terminated the child.
	Signal syscall.Signal
}

// Status returns the value stored as the shell's last status.
func (e ExitStatus) Status() int {
	if e.Signaled {
		return StatusSignaled
	}
	return e.Code
}

// Success is true if the child exited normally with code 0.
func (e ExitStatus) Success() bool {
	return !e.Signaled && e.Code == 0
}

func (e ExitStatus) String() string {
	if e.Signaled {
		return fmt.Sprintf("signal %d (%s)", int(e.Signal), SignalName(e.Signal))
	}
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExecError is returned when a program can't be resolved or executed. The
// shell treats it like a child that exited with ExitFailure.
type ExecError struct {
	Name string
	Err  error
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// ProcError is returned when process creation or collection fails in a way
// the shell can't recover from.
type ProcError struct {
	Op  string
	Err error
}

func (e *ProcError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ProcError) Unwrap() error {
	return e.Err
}

// Cmd is similar to go's os/exec.Cmd.
type Cmd struct {
	// Name is the command as typed.
	Name string

	// Path is the resolved path of the command to run, empty if resolution
	// failed.
	Path string

	// Args holds command line arguments, including the command as Args[0].
	Args []string

	// Env specifies the environment of the process.
	// Each entry is of the form "key=value".
	Env []string

	// Dir specifies the working directory of the command.
	// If Dir is the empty string, Run runs the command in the
	// calling process's current directory.
	Dir string

	// Stdin specifies the process's standard input.
	Stdin io.Reader

	// Stdout and Stderr specify the process's standard output and error.
	Stdout io.Writer
	Stderr io.Writer

	lookPathErr error
}

// Command returns the Cmd struct to execute the named program with the given
// arguments in the environment, working directory and streams of the virtual
// OS. argv follows the argv convention, argv[0] is passed to the child as is.
func Command(virtOS VOS, name string, argv []string) *Cmd {
	if len(argv) == 0 {
		argv = []string{name}
	}

	cmd := &Cmd{
		Name:   name,
		Args:   argv,
		Env:    virtOS.Environ(),
		Stdin:  virtOS.Stdin(),
		Stdout: virtOS.Stdout(),
		Stderr: virtOS.Stderr(),
	}

	if dir, err := virtOS.Getwd(); err == nil {
		cmd.Dir = dir
	}

	cmd.Path, cmd.lookPathErr = LookPath(virtOS, name)
	return cmd
}

// Run starts the command and waits for it to complete.
//
// Resolution and exec failures return an *ExecError with an ExitFailure
// status. A missing PATH returns ErrNoPath. Failures to create or wait on the
// process return a *ProcError.
func (c *Cmd) Run(ctx context.Context) (ExitStatus, error) {
	switch {
	case errors.Is(c.lookPathErr, ErrNoPath):
		return ExitStatus{}, c.lookPathErr
	case c.lookPathErr != nil:
		return ExitStatus{Code: ExitFailure}, &ExecError{Name: c.Name, Err: c.lookPathErr}
	}

	proc := exec.CommandContext(ctx, c.Path)
	proc.Args = c.Args
	proc.Env = c.Env
	proc.Dir = c.Dir
	proc.Stdin = c.Stdin
	proc.Stdout = c.Stdout
	proc.Stderr = c.Stderr

	if err := proc.Start(); err != nil {
		if isExecFailure(err) {
			return ExitStatus{Code: ExitFailure}, &ExecError{Name: c.Name, Err: unwrapPathError(err)}
		}
		return ExitStatus{}, &ProcError{Op: "fork", Err: err}
	}

	err := proc.Wait()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return ExitStatus{}, nil
	case errors.As(err, &exitErr):
		return decodeExitStatus(exitErr), nil
	default:
		return ExitStatus{}, &ProcError{Op: "waitpid", Err: err}
	}
}

func decodeExitStatus(exitErr *exec.ExitError) ExitStatus {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return ExitStatus{Signaled: true, Signal: ws.Signal()}
	}
	return ExitStatus{Code: exitErr.ExitCode()}
}

// unwrapPathError strips the operation and path from errors like
// "fork/exec /bin/x: permission denied".
func unwrapPathError(err error) error {
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		return pathErr.Err
	}
	return err
}

func isExecFailure(err error) bool {
	for _, target := range []error{
		fs.ErrNotExist,
		fs.ErrPermission,
		ErrNotFound,
		syscall.ENOEXEC,
		syscall.ENOTDIR,
		syscall.ELOOP,
		syscall.ENAMETOOLONG,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
