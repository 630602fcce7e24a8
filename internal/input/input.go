// Package input reads single lines of FSH text from interactive
// sources, grounded on the teacher's internal/input command-reading
// package.
package input

import (
	"fmt"
	"strings"

	"github.com/chzyer/readline"
)

// InteractiveReader reads lines from stdin using a GNU-readline-backed
// console, giving history and line editing to a caller iterating on
// single entity declarations. It should not be used directly; create
// one with NewInteractiveReader.
type InteractiveReader struct {
	rl *readline.Instance
}

// NewInteractiveReader initializes readline. The returned
// InteractiveReader must have Close called on it before disposal to
// properly tear down readline resources.
func NewInteractiveReader() (*InteractiveReader, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt: "fsh> ",
	})
	if err != nil {
		return nil, fmt.Errorf("create readline config: %w", err)
	}
	return &InteractiveReader{rl: rl}, nil
}

// Close cleans up readline resources.
func (r *InteractiveReader) Close() error {
	return r.rl.Close()
}

// ReadCommand reads the next non-blank line from stdin. If at end of
// input, the returned string is empty and error is io.EOF (or whatever
// error readline itself returned); otherwise it blocks until a line
// containing non-space characters is read.
func (r *InteractiveReader) ReadCommand() (string, error) {
	var line string
	var err error
	for line == "" {
		line, err = r.rl.Readline()
		if err != nil {
			return "", err
		}
		line = strings.TrimSpace(line)
	}
	return line, nil
}
