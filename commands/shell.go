package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/josephlewis42/simpleshell/core/config"
	"github.com/josephlewis42/simpleshell/core/logger"
	"github.com/josephlewis42/simpleshell/core/shell"
	"github.com/josephlewis42/simpleshell/core/vos"
	"github.com/sajari/fuzzy"
)

const (
	EnvHome   = "HOME"
	EnvPWD    = "PWD"
	EnvOldPWD = "OLDPWD"
	EnvUser   = "USER"

	// ShellName prefixes messages that aren't tied to a command.
	ShellName = "simple_shell"

	// Lines starting with CommentPrefix are ignored.
	CommentPrefix = "#"
)

// Shell holds the state of a single interpreter session.
type Shell struct {
	VirtualOS vos.VOS
	Config    *config.Configuration
	Aliases   *shell.AliasTable
	Printer   *ColorPrinter
	Events    logger.EventRecorder

	// lastRet is the status of the last external command, it's
	// substituted for $?.
	lastRet int
	history []string

	// Set to true to quit the shell
	Quit bool
	// ExitCode is the code the shell exits with once Quit is set.
	ExitCode int
}

// NewShell creates a shell on the virtual OS, the built-in defaults are used
// if cfg is nil.
func NewShell(virtualOS vos.VOS, cfg *config.Configuration) *Shell {
	if cfg == nil {
		cfg = config.Default()
	}

	return &Shell{
		VirtualOS: virtualOS,
		Config:    cfg,
		Aliases:   shell.NewAliasTable(),
		Printer:   NewColorPrinter(cfg.Color, virtualOS.Stderr()),
		Events:    logger.NopRecorder{},
	}
}

// Init loads the configured dotenv file into the environment. Variables
// that are already set win.
func (s *Shell) Init() error {
	if s.Config.EnvFile == "" {
		return nil
	}

	fd, err := s.Config.OpenEnvFile()
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Printf("Skipping env file: %v", err)
		return nil
	case err != nil:
		return err
	}
	defer fd.Close()

	vars, err := godotenv.Parse(fd)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", s.Config.EnvFile, err)
	}

	return vos.MergeEnv(s.VirtualOS, vars)
}

// LastStatus returns the status of the last external command.
func (s *Shell) LastStatus() int {
	return s.lastRet
}

// History returns the lines entered in this session.
func (s *Shell) History() []string {
	return s.history
}

func (s *Shell) addHistory(line string) {
	limit := s.Config.HistoryLimit
	if limit <= 0 {
		return
	}

	s.history = append(s.history, line)
	if len(s.history) > limit {
		s.history = s.history[len(s.history)-limit:]
	}
}

func (s *Shell) prompt() (string, error) {
	pwd, err := s.VirtualOS.Getwd()
	if err != nil {
		return "", &FatalError{Op: "getcwd", Err: err}
	}

	host, _ := s.VirtualOS.Hostname()

	return expandPrompt(s.Config.Prompt, promptInfo{
		Cwd:  pwd,
		User: s.VirtualOS.Getenv(EnvUser),
		Host: host,
		Root: s.VirtualOS.Getuid() == 0,
	}), nil
}

// Run reads lines from src until input ends or the shell quits and returns
// the code the process should exit with.
func (s *Shell) Run(ctx context.Context, src LineSource, interactive bool) (int, error) {
	start := &logger.SessionStart{
		Mode: logger.ModeScript,
		PID:  s.VirtualOS.Getpid(),
	}
	if interactive {
		start.Mode = logger.ModeInteractive
	} else {
		start.Script = src.Name()
	}
	s.record(start)

	code, reason, err := s.readLoop(ctx, src, interactive)

	end := &logger.SessionEnd{ExitCode: code, Reason: reason}
	if err != nil {
		end.Error = err.Error()
	}
	s.record(end)

	return code, err
}

func (s *Shell) readLoop(ctx context.Context, src LineSource, interactive bool) (int, string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 1, logger.EndReasonFatal, err
		}

		var prompt string
		if interactive {
			var err error
			if prompt, err = s.prompt(); err != nil {
				return 1, logger.EndReasonFatal, err
			}
		}

		line, err := src.ReadLine(prompt)
		if err != nil {
			if !errors.Is(err, io.EOF) {
				log.Printf("Error reading input: %v", err)
			}

			w := s.VirtualOS.Stdout()
			if interactive {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "Exiting %s.\n", ShellName)
			return 0, logger.EndReasonEOF, nil
		}

		if err := s.RunLine(ctx, line); err != nil {
			return 1, logger.EndReasonFatal, err
		}

		if s.Quit {
			return s.ExitCode, logger.EndReasonExit, nil
		}
	}
}

// RunLine runs a single line of input. Only errors the shell can't recover
// from are returned, everything else is reported on stderr.
func (s *Shell) RunLine(ctx context.Context, line string) error {
	if shell.IsBlank(line) || strings.HasPrefix(line, CommentPrefix) {
		return nil
	}
	s.addHistory(line)

	line = shell.Substitute(line, shell.Specials{
		LastStatus: s.lastRet,
		PID:        s.VirtualOS.Getpid(),
	})

	for _, stmt := range shell.SplitStatements(line) {
		if err := s.runStatement(ctx, stmt); err != nil {
			return err
		}
		if s.Quit {
			return nil
		}
	}

	return nil
}

// runStatement evaluates one chain of commands. A command after the first
// only runs if the status so far is 0, a skipped command resets the status
// to 0. Both "&&" and "||" use that rule.
func (s *Shell) runStatement(ctx context.Context, text string) error {
	status := 0
	for i, cmd := range shell.ParseChain(text) {
		if i > 0 {
			if status != 0 {
				status = 0
				continue
			}

			if cmd.Connective() != shell.Unconditional {
				effective, ok := cmd.Effective()
				if !ok {
					s.Printer.Errorf(s.VirtualOS.Stderr(), "%s: syntax error near unexpected token '%s'", ShellName, cmd.Name)
					status = 1
					continue
				}
				cmd = effective
			}
		}

		var err error
		if status, err = s.runCommand(ctx, cmd, status); err != nil {
			return err
		}

		if s.Quit {
			return nil
		}
	}

	return nil
}

// runCommand runs a builtin or external program and returns the new chain
// status. Builtins leave the status alone.
func (s *Shell) runCommand(ctx context.Context, cmd shell.Command, status int) (int, error) {
	if builtin, ok := AllBuiltins[cmd.Name]; ok {
		ret := builtin.Main(s, cmd.Args)
		s.record(&logger.Builtin{Command: cmd.Args, Status: ret})
		return status, nil
	}

	return s.runExternal(ctx, cmd)
}

func (s *Shell) runExternal(ctx context.Context, cmd shell.Command) (int, error) {
	started := time.Now()
	proc := vos.Command(s.VirtualOS, cmd.Name, cmd.Args)
	result, err := proc.Run(ctx)

	var (
		execErr *vos.ExecError
		procErr *vos.ProcError
		stderr  = s.VirtualOS.Stderr()
	)
	switch {
	case errors.As(err, &execErr):
		s.Printer.Errorf(stderr, "execvp: %s", execErr)

		suggestion := s.suggest(cmd.Name)
		if suggestion != "" {
			s.Printer.Infof(stderr, "%s: did you mean %q?", ShellName, suggestion)
		}

		s.record(&logger.UnknownCommand{
			Command:    cmd.Args,
			Error:      execErr.Err.Error(),
			Suggestion: suggestion,
		})

	case errors.As(err, &procErr):
		return 0, &FatalError{Op: procErr.Op, Err: procErr.Err}

	case err != nil:
		return 0, &FatalError{Err: err}

	default:
		s.reportStatus(result)

		event := &logger.RunCommand{
			Command:             cmd.Args,
			ResolvedCommandPath: proc.Path,
			Status:              result.Status(),
			DurationMicros:      time.Since(started).Microseconds(),
		}
		if result.Signaled {
			event.Signal = vos.SignalName(result.Signal)
		}
		s.record(event)
	}

	s.lastRet = result.Status()
	return s.lastRet, nil
}

func (s *Shell) reportStatus(result vos.ExitStatus) {
	stderr := s.VirtualOS.Stderr()
	switch {
	case result.Signaled:
		s.Printer.Infof(stderr, "Command terminated by signal %d (%s)", int(result.Signal), vos.SignalName(result.Signal))
	case result.Code != 0:
		s.Printer.Infof(stderr, "Command exited with status %d", result.Code)
	}
}

// suggest finds a builtin or alias close to the unknown command name.
func (s *Shell) suggest(name string) string {
	if !s.Config.SuggestCommands {
		return ""
	}

	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.Train(append(BuiltinNames(), s.Aliases.Names()...))

	suggestion := model.SpellCheck(name)
	if suggestion == name {
		return ""
	}
	return suggestion
}

func (s *Shell) record(event logger.LogType) {
	if s.Events == nil {
		return
	}
	if err := s.Events.Record(event); err != nil {
		log.Printf("Error recording event: %v", err)
	}
}
