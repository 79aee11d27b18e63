package logger

// LogEntry is a single line of the event log. Exactly one event field is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id,omitempty"`

	SessionStart      *SessionStart      `json:"session_start,omitempty"`
	SessionEnd        *SessionEnd        `json:"session_end,omitempty"`
	RunCommand        *RunCommand        `json:"run_command,omitempty"`
	UnknownCommand    *UnknownCommand    `json:"unknown_command,omitempty"`
	Builtin           *Builtin           `json:"builtin,omitempty"`
	InvalidInvocation *InvalidInvocation `json:"invalid_invocation,omitempty"`
}

// LogType is implemented by every event that can be recorded.
type LogType interface {
	setOn(le *LogEntry)
}

// GetLogType returns the event held by the entry, nil if there is none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.SessionStart != nil:
		return le.SessionStart
	case le.SessionEnd != nil:
		return le.SessionEnd
	case le.RunCommand != nil:
		return le.RunCommand
	case le.UnknownCommand != nil:
		return le.UnknownCommand
	case le.Builtin != nil:
		return le.Builtin
	case le.InvalidInvocation != nil:
		return le.InvalidInvocation
	default:
		return nil
	}
}

// Session modes.
const (
	ModeInteractive = "interactive"
	ModeScript      = "script"
)

// Reasons a session ended.
const (
	EndReasonEOF   = "eof"
	EndReasonExit  = "exit"
	EndReasonFatal = "fatal"
)

// SessionStart is recorded when the shell starts reading input.
type SessionStart struct {
	Mode   string `json:"mode"`
	Script string `json:"script,omitempty"`
	PID    int    `json:"pid"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// SessionEnd is recorded when the read loop stops.
type SessionEnd struct {
	ExitCode int    `json:"exit_code"`
	Reason   string `json:"reason"`
	Error    string `json:"error,omitempty"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

// RunCommand is recorded after an external program completes.
type RunCommand struct {
	Command             []string `json:"command"`
	ResolvedCommandPath string   `json:"resolved_command_path"`
	Status              int      `json:"status"`
	Signal              string   `json:"signal,omitempty"`
	DurationMicros      int64    `json:"duration_micros"`
}

func (e *RunCommand) setOn(le *LogEntry) { le.RunCommand = e }

// UnknownCommand is recorded when a program can't be resolved or executed.
type UnknownCommand struct {
	Command    []string `json:"command"`
	Error      string   `json:"error"`
	Suggestion string   `json:"suggestion,omitempty"`
}

func (e *UnknownCommand) setOn(le *LogEntry) { le.UnknownCommand = e }

// Builtin is recorded after a builtin runs.
type Builtin struct {
	Command []string `json:"command"`
	Status  int      `json:"status"`
}

func (e *Builtin) setOn(le *LogEntry) { le.Builtin = e }

// InvalidInvocation is recorded when a builtin is called incorrectly.
type InvalidInvocation struct {
	Command []string `json:"command"`
	Error   string   `json:"error"`
}

func (e *InvalidInvocation) setOn(le *LogEntry) { le.InvalidInvocation = e }
