package vos

import (
	"io"
)

// VIO holds the standard streams of the virtual OS. The shell never closes
// them, programs it starts share them.
type VIO interface {
	Stdin() io.Reader
	Stdout() io.Writer
	Stderr() io.Writer
}

// Stdio is a fixed set of streams. A nil In is always at EOF, a nil Out or
// Err discards what is written.
type Stdio struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

var _ VIO = Stdio{}

// NewStdio bundles the streams.
func NewStdio(in io.Reader, out, err io.Writer) Stdio {
	return Stdio{In: in, Out: out, Err: err}
}

func (s Stdio) Stdin() io.Reader {
	if s.In == nil {
		return eofReader{}
	}
	return s.In
}

func (s Stdio) Stdout() io.Writer {
	if s.Out == nil {
		return io.Discard
	}
	return s.Out
}

func (s Stdio) Stderr() io.Writer {
	if s.Err == nil {
		return io.Discard
	}
	return s.Err
}

type eofReader struct{}

func (eofReader) Read([]byte) (int, error) {
	return 0, io.EOF
}
