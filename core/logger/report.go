package logger

import (
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		InvalidInvocation: InvalidInvocationReport{
			Invocations: NewPathCounter("command", "error"),
		},
		UnknownCommand: UnknownCommandReport{
			Errors: NewPathCounter("command", "error"),
		},
	}
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	Session           SessionReport           `json:"session_report"`
	RunCommand        RunCommandReport        `json:"run_command_report"`
	UnknownCommand    UnknownCommandReport    `json:"unknown_command_report"`
	Builtin           BuiltinReport           `json:"builtin_report"`
	InvalidInvocation InvalidInvocationReport `json:"invalid_invocation_report"`
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		r.Session.updateStart(event)
	case *SessionEnd:
		r.Session.updateEnd(event)
	case *RunCommand:
		r.RunCommand.update(event)
	case *UnknownCommand:
		r.UnknownCommand.update(event)
	case *Builtin:
		r.Builtin.update(event)
	case *InvalidInvocation:
		r.InvalidInvocation.update(event)
	default:
		r.InvalidEntries.Increment("empty")
	}
}

type SessionReport struct {
	Count      int        `json:"count"`
	Modes      StrCounter `json:"modes"`
	EndReasons StrCounter `json:"end_reasons"`
	ExitCodes  StrCounter `json:"exit_codes"`
}

func (r *SessionReport) updateStart(e *SessionStart) {
	r.Count++
	r.Modes.Increment(e.Mode)
}

func (r *SessionReport) updateEnd(e *SessionEnd) {
	r.EndReasons.Increment(e.Reason)
	r.ExitCodes.Increment(strconv.Itoa(e.ExitCode))
}

type RunCommandReport struct {
	// Name of the resolved command
	ResolvedCommandPaths StrCounter `json:"resolved_command_names"`
	// Name of the command
	CommandNames StrCounter `json:"command_names"`
	// Statuses of the commands, -1 for signals.
	Statuses StrCounter `json:"statuses"`
	Signals  StrCounter `json:"signals,omitempty"`
}

func (r *RunCommandReport) update(rc *RunCommand) {
	r.ResolvedCommandPaths.Increment(rc.ResolvedCommandPath)
	if len(rc.Command) > 0 {
		r.CommandNames.Increment(rc.Command[0])
	}
	r.Statuses.Increment(strconv.Itoa(rc.Status))
	if rc.Signal != "" {
		r.Signals.Increment(rc.Signal)
	}
}

type UnknownCommandReport struct {
	CommandNames StrCounter   `json:"command_names"`
	Errors       *PathCounter `json:"errors"`
}

func (r *UnknownCommandReport) update(logEntry *UnknownCommand) {
	if len(logEntry.Command) == 0 {
		return
	}
	r.CommandNames.Increment(logEntry.Command[0])
	if r.Errors != nil {
		r.Errors.Increment(logEntry.Command[0], logEntry.Error)
	}
}

type BuiltinReport struct {
	CommandNames StrCounter `json:"command_names"`
}

func (r *BuiltinReport) update(logEntry *Builtin) {
	if len(logEntry.Command) > 0 {
		r.CommandNames.Increment(logEntry.Command[0])
	}
}

type InvalidInvocationReport struct {
	Invocations *PathCounter `json:"invocations"`
}

func (r *InvalidInvocationReport) update(logEntry *InvalidInvocation) {
	if len(logEntry.Command) > 0 && r.Invocations != nil {
		r.Invocations.Increment(logEntry.Command[0], logEntry.Error)
	}
}

// TranscriptReport holds the commands run in each session.
type TranscriptReport struct {
	// Map of sessionID -> transcript
	sessions map[string]*Transcript
}

// Transcript is the list of commands a single session ran.
type Transcript struct {
	Mode       string   `json:"mode"`
	Script     string   `json:"script,omitempty"`
	LogEntries int      `json:"log_entries"`
	Commands   []string `json:"commands"`
	ExitCode   *int     `json:"exit_code,omitempty"`
}

func (t *Transcript) Update(le *LogEntry) {
	t.LogEntries++

	switch event := le.GetLogType().(type) {
	case *SessionStart:
		t.Mode = event.Mode
		t.Script = event.Script
	case *SessionEnd:
		code := event.ExitCode
		t.ExitCode = &code
	case *RunCommand:
		t.Commands = append(t.Commands, strings.Join(event.Command, " "))
	case *UnknownCommand:
		t.Commands = append(t.Commands, strings.Join(event.Command, " "))
	case *Builtin:
		t.Commands = append(t.Commands, strings.Join(event.Command, " "))
	}
}

func (t *TranscriptReport) init() {
	if t.sessions == nil {
		t.sessions = make(map[string]*Transcript)
	}
}

// MarshalJSON implemnts custom JSON marshaler.
func (t *TranscriptReport) MarshalJSON() ([]byte, error) {
	t.init()

	return json.Marshal(t.sessions)
}

// Get returns the transcript of a session.
func (t *TranscriptReport) Get(sessionID string) (*Transcript, bool) {
	t.init()
	transcript, ok := t.sessions[sessionID]
	return transcript, ok
}

func (t *TranscriptReport) Update(le *LogEntry) {
	t.init()

	sessionID := le.SessionID
	if sessionID == "" {
		return
	}
	transcript, ok := t.sessions[sessionID]
	if !ok {
		transcript = &Transcript{}
		t.sessions[sessionID] = transcript
	}

	transcript.Update(le)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of times each combination of column values
// was seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
