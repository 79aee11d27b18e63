package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/abiosoft/readline"
	"github.com/josephlewis42/simpleshell/core/config"
	"github.com/josephlewis42/simpleshell/core/vos"
	"github.com/spf13/afero"
)

// LineSource supplies lines of input to the shell.
type LineSource interface {
	// ReadLine shows the prompt, if any, and returns the next line without
	// its trailing newline. io.EOF is returned once input is exhausted.
	ReadLine(prompt string) (string, error)
	// Name describes the source.
	Name() string

	io.Closer
}

type readerSource struct {
	name   string
	r      *bufio.Reader
	prompt io.Writer
	closer io.Closer
}

var _ LineSource = (*readerSource)(nil)

// NewReaderSource reads lines from r, prompts are written to promptOut.
func NewReaderSource(name string, r io.Reader, promptOut io.Writer) LineSource {
	return &readerSource{
		name:   name,
		r:      bufio.NewReader(r),
		prompt: promptOut,
	}
}

// OpenScript opens a script file, lines are read without a prompt.
func OpenScript(fs afero.Fs, path string) (LineSource, error) {
	fd, err := fs.Open(path)
	if err != nil {
		return nil, err
	}

	return &readerSource{
		name:   path,
		r:      bufio.NewReader(fd),
		closer: fd,
	}, nil
}

func (rs *readerSource) Name() string {
	return rs.name
}

func (rs *readerSource) ReadLine(prompt string) (string, error) {
	if prompt != "" && rs.prompt != nil {
		fmt.Fprint(rs.prompt, prompt)
	}

	line, err := rs.r.ReadString('\n')
	switch {
	case errors.Is(err, io.EOF) && line != "":
		// The last line doesn't need a newline.
	case err != nil:
		return "", err
	}

	return strings.TrimSuffix(line, "\n"), nil
}

func (rs *readerSource) Close() error {
	if rs.closer == nil {
		return nil
	}
	return rs.closer.Close()
}

type readlineSource struct {
	rl *readline.Instance
}

var _ LineSource = (*readlineSource)(nil)

// NewReadlineSource creates an interactive line editor on the standard
// streams of the virtual OS with history persisted as configured.
func NewReadlineSource(virtualOS vos.VOS, cfg *config.Configuration) (LineSource, error) {
	historyLimit := cfg.HistoryLimit
	if historyLimit == 0 {
		// Disables history in readline.
		historyLimit = -1
	}

	rlCfg := &readline.Config{
		HistoryFile:     cfg.HistoryPath(),
		HistoryLimit:    historyLimit,
		InterruptPrompt: "^C",
		Stdin:           readline.NewCancelableStdin(virtualOS.Stdin()),
		Stdout:          virtualOS.Stdout(),
		Stderr:          virtualOS.Stderr(),
	}

	if err := rlCfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, err
	}

	return &readlineSource{rl: rl}, nil
}

func (r *readlineSource) Name() string {
	return "readline"
}

func (r *readlineSource) ReadLine(prompt string) (string, error) {
	for {
		r.rl.SetPrompt(prompt)
		line, err := r.rl.Readline()
		if err == readline.ErrInterrupt {
			// Interrupt clears line.
			continue
		}
		return line, err
	}
}

func (r *readlineSource) Close() error {
	return r.rl.Close()
}
