package shell

import (
	"strconv"
	"strings"
)

const (
	// TokLastStatus is replaced by the status of the last external command.
	TokLastStatus = "$?"
	// TokPID is replaced by the process ID of the shell.
	TokPID = "$$"
)

// Specials holds the values of the special tokens.
type Specials struct {
	LastStatus int
	PID        int
}

// Substitute replaces the first occurrence of $? and then the first
// occurrence of $$ in the line. Later occurrences are left as they are and
// there is no escaping.
func Substitute(line string, sp Specials) string {
	line = strings.Replace(line, TokLastStatus, strconv.Itoa(sp.LastStatus), 1)
	return strings.Replace(line, TokPID, strconv.Itoa(sp.PID), 1)
}
