package commands

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

// ShellBuiltin is a command that runs inside the shell process. The returned
// value is informational, it never becomes the status of a chain.
type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// BuiltinNames returns the sorted names of the builtins.
func BuiltinNames() []string {
	var names []string
	for name := range AllBuiltins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Shell) usage(args []string, usage string) int {
	s.Printer.Errorf(s.VirtualOS.Stderr(), "%s", usage)
	s.logInvalidInvocation(args, errors.New(usage))
	return 1
}

// Exit quits the shell with the status given as the first argument.
func Exit(s *Shell, args []string) int {
	code := 0
	if len(args) > 1 {
		code = atoi(args[1])
	}

	fmt.Fprintf(s.VirtualOS.Stdout(), "Exiting %s with status %d.\n", ShellName, code)
	s.Quit = true
	s.ExitCode = code
	return code
}

// atoi parses a leading decimal integer the way the C library does, invalid
// input is 0.
func atoi(str string) int {
	str = strings.TrimLeft(str, " \t\n\v\f\r")

	sign := 1
	if str != "" && (str[0] == '-' || str[0] == '+') {
		if str[0] == '-' {
			sign = -1
		}
		str = str[1:]
	}

	out := 0
	for _, c := range str {
		if c < '0' || c > '9' {
			break
		}
		out = out*10 + int(c-'0')
	}
	return sign * out
}

// Setenv sets an environment variable.
func Setenv(s *Shell, args []string) int {
	if len(args) != 3 {
		return s.usage(args, "Usage: setenv VARIABLE VALUE")
	}

	if err := s.VirtualOS.Setenv(args[1], args[2]); err != nil {
		s.Printer.Errorf(s.VirtualOS.Stderr(), "Failed to set environment variable %s", args[1])
		return 1
	}
	return 0
}

// Unsetenv removes an environment variable.
func Unsetenv(s *Shell, args []string) int {
	if len(args) != 2 {
		return s.usage(args, "Usage: unsetenv VARIABLE")
	}

	if err := s.VirtualOS.Unsetenv(args[1]); err != nil {
		s.Printer.Errorf(s.VirtualOS.Stderr(), "Failed to unset environment variable %s", args[1])
		return 1
	}
	return 0
}

// Cd is the cd shell builtin, it keeps PWD and OLDPWD up to date.
func Cd(s *Shell, args []string) int {
	stderr := s.VirtualOS.Stderr()

	var dir string
	switch {
	case len(args) < 2 || args[1] == "~":
		home, ok := s.VirtualOS.LookupEnv(EnvHome)
		if !ok {
			s.Printer.Errorf(stderr, "cd: HOME not set")
			return 1
		}
		dir = home
	case args[1] == "-":
		prev, ok := s.VirtualOS.LookupEnv(EnvOldPWD)
		if !ok {
			return 0
		}
		dir = prev
	default:
		dir = args[1]
	}

	oldwd, oldErr := s.VirtualOS.Getwd()
	if err := s.VirtualOS.Chdir(dir); err != nil {
		s.Printer.Errorf(stderr, "%v", err)
		return 1
	}

	wd, err := s.VirtualOS.Getwd()
	if err != nil {
		s.Printer.Errorf(stderr, "getcwd: %v", err)
		return 1
	}

	if oldErr == nil {
		_ = s.VirtualOS.Setenv(EnvOldPWD, oldwd)
	}
	_ = s.VirtualOS.Setenv(EnvPWD, wd)
	return 0
}

// Alias lists every alias, shows a single one or defines name=value pairs.
func Alias(s *Shell, args []string) int {
	w := s.VirtualOS.Stdout()

	var lines []string
	switch {
	case len(args) == 1:
		lines = s.Aliases.List()
	case len(args) == 2 && !strings.Contains(args[1], "="):
		lines = s.Aliases.Lookup(args[1])
	default:
		for _, arg := range args[1:] {
			name, value, ok := strings.Cut(arg, "=")
			if !ok {
				return s.usage(args, fmt.Sprintf("Invalid alias syntax: %s", arg))
			}
			s.Aliases.Define(name, value)
		}
	}

	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
	return 0
}

// History shows or clears the lines entered in this session.
func History(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "history [-c]",
		Short: "Display the history list with line numbers.",
	}
	clear := cmd.Flags().Bool('c', "clear the history by deleting all entries")

	return cmd.Run(s, args, func() int {
		if *clear {
			s.history = nil
			return 0
		}

		w := s.VirtualOS.Stdout()
		for i, line := range s.history {
			fmt.Fprintf(w, "% 5d  %s\n", i+1, line)
		}
		return 0
	})
}

// Help lists the builtins.
func Help(s *Shell, args []string) int {
	cmd := &SimpleCommand{
		Use:   "help",
		Short: "Display information about builtin commands.",
	}

	return cmd.Run(s, args, func() int {
		w := s.VirtualOS.Stdout()
		fmt.Fprintln(w, "These shell commands are defined internally.")
		fmt.Fprintln(w, "Anything else is run as a program found in $PATH.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Builtins:")
		fmt.Fprintln(w, strings.Join(BuiltinNames(), "\n"))
		return 0
	})
}

func init() {
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["setenv"] = ShellBuiltinFunc(Setenv)
	AllBuiltins["unsetenv"] = ShellBuiltinFunc(Unsetenv)
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["alias"] = ShellBuiltinFunc(Alias)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
	AllBuiltins["help"] = ShellBuiltinFunc(Help)
}
