package objscript

import (
	"errors"
	"fmt"

	"github.com/dekarrin/delveq/internal/dqerrors"
)

var (
	errUnknownOpcode = errors.New("unknown opcode")
	errTooDeep       = errors.New("run instructions nested too deeply")
	errNotInteger    = errors.New("argument is not an integer")
	errNoTarget      = errors.New("no such entity")
)

// Error is a semantic error in a script: an unknown opcode, a bad argument
// count, or an instruction that could not be applied. It matches
// dqerrors.ErrScript with errors.Is.
type Error struct {
	// Subject is the id of the entity the script was running against.
	Subject string

	// Index is the 0-based position of the failing instruction.
	Index int

	// Instruction is the text of the failing instruction.
	Instruction string

	// Err is the underlying problem.
	Err error
}

func newError(subject Target, idx int, instr string, err error) *Error {
	se := &Error{Index: idx, Instruction: instr, Err: err}
	if subject != nil {
		se.Subject = subject.ID()
	}
	return se
}

func (e *Error) Error() string {
	return fmt.Sprintf("script on %q: instruction %d (%q): %v", e.Subject, e.Index+1, e.Instruction, e.Err)
}

// Unwrap returns the underlying problem.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is dqerrors.ErrScript.
func (e *Error) Is(target error) bool {
	return target == dqerrors.ErrScript
}

func argCountError(op opcode, got int) error {
	switch {
	case op.maxArgs < 0:
		return fmt.Errorf("%s needs at least %d argument(s), got %d", op.name, op.minArgs, got)
	case op.minArgs == op.maxArgs:
		return fmt.Errorf("%s needs exactly %d argument(s), got %d", op.name, op.minArgs, got)
	default:
		return fmt.Errorf("%s needs %d to %d arguments, got %d", op.name, op.minArgs, op.maxArgs, got)
	}
}
