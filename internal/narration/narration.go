// Package narration holds the per-turn buffer that collects the lines of text
// produced while a single command is resolved.
package narration

import (
	"fmt"
	"strings"
)

// Buffer accumulates narration lines for one turn. The zero value is ready for
// use. A Buffer should not be kept past the turn it was created for.
type Buffer struct {
	lines []string
}

// Add appends msg to the buffer. Empty messages are ignored.
func (b *Buffer) Add(msg string) {
	if msg == "" {
		return
	}
	b.lines = append(b.lines, msg)
}

// Addf formats according to a format specifier and appends the result.
func (b *Buffer) Addf(format string, a ...interface{}) {
	b.Add(fmt.Sprintf(format, a...))
}

// Read appends every line of a multi-line block of text. Blank lines inside
// the block are kept so paragraph breaks survive.
func (b *Buffer) Read(text string) {
	if text == "" {
		return
	}
	b.lines = append(b.lines, strings.Split(text, "\n")...)
}

// Len returns the number of lines collected so far.
func (b *Buffer) Len() int {
	return len(b.lines)
}

// Lines returns a copy of the collected lines.
func (b *Buffer) Lines() []string {
	return append([]string{}, b.lines...)
}

// Send joins all collected lines with newlines and empties the buffer.
func (b *Buffer) Send() string {
	msg := strings.Join(b.lines, "\n")
	b.lines = nil
	return msg
}
