package commands

import "fmt"

// FatalError is returned when the shell can't continue, the process should
// report it and exit with status 1.
type FatalError struct {
	// Op is the failed operation, e.g. "fork" or "getcwd".
	Op  string
	Err error
}

func (e *FatalError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FatalError) Unwrap() error {
	return e.Err
}
