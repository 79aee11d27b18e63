package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/josephlewis42/simpleshell/core/config"
	"github.com/josephlewis42/simpleshell/core/logger"
	getopt "github.com/pborman/getopt/v2"
	"golang.org/x/term"
)

// SimpleCommand parses the flags of a builtin and prints its help.
type SimpleCommand struct {
	// Use holds a one line usage string
	Use string
	// Short holds a sone line description of the command.
	Short string
	// ShowHelp sets whether help is displayed or not.
	// If this is non-nil when Run() is called, then the default help flag isn't
	// added.
	ShowHelp *bool

	flags *getopt.Set
}

// Flags gets the command's flag set.
func (s *SimpleCommand) Flags() *getopt.Set {
	if s.flags == nil {
		s.flags = getopt.New()
	}

	return s.flags
}

// PrintHelp writes help for the command to the given writer.
func (s *SimpleCommand) PrintHelp(w io.Writer) {
	fmt.Fprint(w, "usage: ")
	fmt.Fprintln(w, s.Use)
	fmt.Fprintln(w, s.Short)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	s.Flags().PrintOptions(w)
}

// Run the command, if flag parsing was successful call the callback.
func (s *SimpleCommand) Run(sh *Shell, args []string, callback func() int) int {
	opts := s.Flags()

	// Add help flag if not overridden.
	if s.ShowHelp == nil {
		s.ShowHelp = opts.BoolLong("help", 'h', "show this help and exit")
	}

	if err := opts.Getopt(args, nil); err != nil {
		sh.logInvalidInvocation(args, err)
		sh.Printer.Errorf(sh.VirtualOS.Stderr(), "error: %s", err)

		s.PrintHelp(sh.VirtualOS.Stdout())
		return 1
	}

	if *s.ShowHelp {
		s.PrintHelp(sh.VirtualOS.Stdout())
		return 0
	}

	return callback()
}

var (
	ColorBoldRed = color.New(color.FgRed, color.Bold)
	ColorYellow  = color.New(color.FgYellow)
)

// ColorPrinter writes diagnostics, colorizing them according to the
// configured mode.
type ColorPrinter struct {
	mode       string
	isTerminal func() bool
}

// NewColorPrinter creates a printer for the mode (always|auto|never). In auto
// mode output is colored if w is a terminal.
func NewColorPrinter(mode string, w io.Writer) *ColorPrinter {
	return &ColorPrinter{
		mode: mode,
		isTerminal: func() bool {
			return IsTerminal(w)
		},
	}
}

// IsTerminal returns true if the writer or reader is backed by a terminal.
func IsTerminal(stream interface{}) bool {
	fd, ok := stream.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	return term.IsTerminal(int(fd.Fd()))
}

func (c *ColorPrinter) ShouldColor() bool {
	switch {
	case c == nil:
		return false
	case c.mode == config.ColorNever:
		return false
	case c.mode == config.ColorAlways:
		return true
	default:
		return c.isTerminal != nil && c.isTerminal()
	}
}

func (c *ColorPrinter) Sprintf(color *color.Color, format string, a ...interface{}) string {
	if c.ShouldColor() {
		color.EnableColor()
		return color.Sprintf(format, a...)
	}
	return fmt.Sprintf(format, a...)
}

// Errorf writes an error line to w.
func (c *ColorPrinter) Errorf(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, c.Sprintf(ColorBoldRed, format, a...))
}

// Infof writes an informational line to w.
func (c *ColorPrinter) Infof(w io.Writer, format string, a ...interface{}) {
	fmt.Fprintln(w, c.Sprintf(ColorYellow, format, a...))
}

// logInvalidInvocation records a builtin that was called incorrectly.
func (s *Shell) logInvalidInvocation(args []string, err error) {
	s.record(&logger.InvalidInvocation{Command: args, Error: err.Error()})
}
