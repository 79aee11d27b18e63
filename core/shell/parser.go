// Package shell holds the line level grammar of simple_shell: statement
// splitting, tokenizing, connective chains, special token substitution and
// the alias table.
//
// The grammar is a small subset of
// https://pubs.opengroup.org/onlinepubs/9699919799/utilities/V3_chap02.html
//
//  1. The shell reads a line and substitutes the special tokens $? and $$.
//  2. The line is split into statements on every ';'.
//  3. Each statement is broken into words on runs of spaces and tabs, there is
//     no quoting or escaping.
//  4. Words that are exactly "&&" or "||" start a new command in the chain.
package shell

import (
	"strings"
)

const (
	// StatementSeparator splits a line into statements.
	StatementSeparator = ";"

	tokAndIf = "&&"
	tokOrIf  = "||"
)

// Connective is the logical operator that introduces a command in a chain.
type Connective int

const (
	// Unconditional commands are the first in a statement or follow a plain word.
	Unconditional Connective = iota
	// AndIf commands are introduced by "&&".
	AndIf
	// OrIf commands are introduced by "||".
	OrIf
)

func (c Connective) String() string {
	switch c {
	case AndIf:
		return tokAndIf
	case OrIf:
		return tokOrIf
	default:
		return ""
	}
}

// Command is a single parsed command. Args follows the argv convention and
// includes the command name as Args[0].
type Command struct {
	Name string
	Args []string
}

// Empty returns true if the command has no name.
func (c Command) Empty() bool {
	return c.Name == ""
}

// Connective returns the operator named by the command, Unconditional for
// ordinary commands.
func (c Command) Connective() Connective {
	switch c.Name {
	case tokAndIf:
		return AndIf
	case tokOrIf:
		return OrIf
	default:
		return Unconditional
	}
}

// Effective returns the command formed by the words following a connective.
// The boolean is false if nothing follows it.
func (c Command) Effective() (Command, bool) {
	if len(c.Args) < 2 {
		return Command{}, false
	}
	return newCommand(c.Args[1:]), true
}

func (c Command) String() string {
	return strings.Join(c.Args, " ")
}

// IsConnective returns true if the word is exactly "&&" or "||".
func IsConnective(word string) bool {
	return word == tokAndIf || word == tokOrIf
}

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// IsBlank returns true if the text is empty or made only of spaces and tabs.
func IsBlank(text string) bool {
	return strings.TrimFunc(text, isBlank) == ""
}

// Tokenize splits the text into words on runs of spaces and tabs. Other
// whitespace is part of a word.
func Tokenize(text string) []string {
	return strings.FieldsFunc(text, isBlank)
}

// SplitStatements splits a line on every ';' and drops the segments that are
// blank.
func SplitStatements(line string) []string {
	var out []string
	for _, stmt := range strings.Split(line, StatementSeparator) {
		if IsBlank(stmt) {
			continue
		}
		out = append(out, stmt)
	}
	return out
}

// ParseCommand turns the text into a single command. Blank text produces the
// empty command.
func ParseCommand(text string) Command {
	return newCommand(Tokenize(text))
}

// ParseChain splits a statement into commands. A new command starts at every
// word that is a connective, the connective becoming that command's name. The
// first command is whatever the first word is.
func ParseChain(text string) []Command {
	var (
		chain   []Command
		current []string
	)

	for _, word := range Tokenize(text) {
		if IsConnective(word) && len(current) > 0 {
			chain = append(chain, newCommand(current))
			current = nil
		}
		current = append(current, word)
	}

	if len(current) > 0 {
		chain = append(chain, newCommand(current))
	}

	return chain
}

func newCommand(words []string) Command {
	if len(words) == 0 {
		return Command{}
	}

	args := make([]string, len(words))
	copy(args, words)
	return Command{Name: args[0], Args: args}
}
