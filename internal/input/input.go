// Package input contains the readers that get DelveQuest command lines from
// the console or from any other stream of input.
package input

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"
)

// DefaultPrompt is shown before each command in interactive mode.
const DefaultPrompt = "> "

// DirectCommandReader implements command.Reader and reads commands from any
// generic input stream directly. It can be used generically with any io.Reader
// but does not sanitize the input of control and escape sequences.
//
// DirectCommandReader should not be used directly; instead, create one with
// [NewDirectReader].
type DirectCommandReader struct {
	r             *bufio.Reader
	blanksAllowed bool
}

// InteractiveCommandReader implements command.Reader and reads commands from
// stdin using a go implementation of the GNU Readline library. This keeps input
// clear of all typing and editing escape sequences and enables the use of
// command history. This should in general probably only be used when directly
// connecting to a TTY for input.
//
// InteractiveCommandReader should not be used directly; instead, create one
// with [NewInteractiveReader].
type InteractiveCommandReader struct {
	rl            *readline.Instance
	blanksAllowed bool
	prompt        string
}

// InteractiveOptions configures an InteractiveCommandReader.
type InteractiveOptions struct {
	// Prompt is shown before each line. Defaults to DefaultPrompt.
	Prompt string

	// HistoryFile is where line history is persisted between sessions. Empty
	// means history is kept only in memory.
	HistoryFile string

	// HistoryLimit is the number of lines of history kept. Zero uses the
	// readline default.
	HistoryLimit int
}

// NewDirectReader creates a new DirectCommandReader and initializes a buffered
// reader on the provided reader.
func NewDirectReader(r io.Reader) *DirectCommandReader {
	return &DirectCommandReader{
		r: bufio.NewReader(r),
	}
}

// NewInteractiveReader creates a new InteractiveCommandReader and initializes
// readline. The returned InteractiveCommandReader must have Close() called on
// it before disposal to properly teardown readline resources.
func NewInteractiveReader(opts InteractiveOptions) (*InteractiveCommandReader, error) {
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          opts.Prompt,
		HistoryFile:     opts.HistoryFile,
		HistoryLimit:    opts.HistoryLimit,
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}

	return &InteractiveCommandReader{
		rl:     rl,
		prompt: opts.Prompt,
	}, nil
}

// Close cleans up resources associated with the DirectCommandReader. The
// DirectCommandReader does not own the stream it reads, so this does nothing,
// but callers should treat it as though it must be called.
func (dcr *DirectCommandReader) Close() error {
	return nil
}

// Close cleans up readline resources and other resources associated with the
// InteractiveCommandReader.
func (icr *InteractiveCommandReader) Close() error {
	return icr.rl.Close()
}

// ReadCommand reads the next line from the stream. Unless blanks are allowed,
// this function blocks until a line containing non-space characters is read.
//
// If at end of input, the returned string will be empty and error will be
// io.EOF. If any other error occurs, the returned string will be empty and
// error will be that error.
func (dcr *DirectCommandReader) ReadCommand() (string, error) {
	return readNonBlank(dcr.r.ReadString, '\n', dcr.blanksAllowed)
}

// ReadCommand reads the next command from stdin. Unless blanks are allowed,
// this function blocks until a line consisting of more than empty or
// whitespace-only input is read. A Ctrl-C interrupt is reported as io.EOF so
// the session ends the same way it would at the end of input.
func (icr *InteractiveCommandReader) ReadCommand() (string, error) {
	read := func(byte) (string, error) {
		line, err := icr.rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			return "", io.EOF
		}
		return line, err
	}
	return readNonBlank(read, '\n', icr.blanksAllowed)
}

// readNonBlank calls readLine until it gets a non-blank line, an error, or a
// blank line while blanks are allowed.
func readNonBlank(readLine func(byte) (string, error), delim byte, allowBlank bool) (string, error) {
	for {
		line, err := readLine(delim)
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}

		line = strings.TrimSpace(line)

		if line != "" || allowBlank {
			return line, nil
		}
		if err == io.EOF {
			return "", io.EOF
		}
	}
}

// AllowBlank sets whether blank output is allowed. By default it is not.
func (dcr *DirectCommandReader) AllowBlank(allow bool) {
	dcr.blanksAllowed = allow
}

// AllowBlank sets whether blank output is allowed. By default it is not.
func (icr *InteractiveCommandReader) AllowBlank(allow bool) {
	icr.blanksAllowed = allow
}

// SetPrompt updates the prompt to the given text.
func (icr *InteractiveCommandReader) SetPrompt(p string) {
	icr.prompt = p
	icr.rl.SetPrompt(p)
}

// GetPrompt gets the current prompt.
func (icr *InteractiveCommandReader) GetPrompt() string {
	return icr.prompt
}
