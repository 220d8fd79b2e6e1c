// Package dqerrors holds the error types used across DelveQuest. Most errors a
// player can cause carry two messages: one to show in-game, and a technical one
// for the operator log.
package dqerrors

import (
	"errors"
	"fmt"
)

// Sentinel errors that classify what went wrong. Use errors.Is to check an
// error returned from the game against them.
var (
	// ErrUnknownCommand means the first word of the input is not a verb the
	// game knows.
	ErrUnknownCommand = errors.New("unrecognized command")

	// ErrNotFound means a noun did not refer to anything in scope.
	ErrNotFound = errors.New("target not found")

	// ErrAmbiguous means a noun matched more than one thing in scope.
	ErrAmbiguous = errors.New("ambiguous target")

	// ErrInvalidTransition means the command asked for a state change that
	// the target cannot make from its current state.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrBadArgs means the command was missing a required argument.
	ErrBadArgs = errors.New("missing or malformed arguments")

	// ErrLoad means external definition data was missing or malformed.
	ErrLoad = errors.New("definition load error")

	// ErrScript means an object script could not be executed.
	ErrScript = errors.New("script error")
)

// interpreterError is an error caused by attempting to interpret input. Either
// the input could not be understood or it specifies doing something that is
// impossible or not allowed at the current time.
//
// It includes a human-readable message to show to the player as well as a
// typical more technical "error message" style message.
type interpreterError struct {
	msg   string
	human string
	kind  error
	wrap  error
}

func (e *interpreterError) Error() string {
	return e.msg
}

// GameMessage shows the message that should be displayed in-game to describe
// the error.
func (e *interpreterError) GameMessage() string {
	return e.human
}

// Unwrap gives the error that the interpreterError wraps, if it wraps one.
func (e *interpreterError) Unwrap() error {
	return e.wrap
}

// Is matches the interpreterError against its sentinel classification.
func (e *interpreterError) Is(target error) bool {
	return e.kind != nil && target == e.kind
}

// New returns a new error of the given classification that has both the
// message to show the player and the technical description of the error.
func New(kind error, game, technical string) error {
	if technical == "" {
		if kind != nil {
			technical = fmt.Sprintf("%s: %q", kind.Error(), game)
		} else {
			technical = fmt.Sprintf("got InterpreterError(%q)", game)
		}
	}
	return &interpreterError{
		msg:   technical,
		human: game,
		kind:  kind,
	}
}

// Newf returns a new error of the given classification with a message to show
// to the player and an automatically generated Error() description. The
// arguments after kind are the format string and the arguments to it.
func Newf(kind error, gameFormat string, a ...interface{}) error {
	return New(kind, fmt.Sprintf(gameFormat, a...), "")
}

// Wrap returns a new error of the given classification that has both the
// message to show the player and the technical description of the error, and
// that wraps the given error.
func Wrap(e error, kind error, game, technical string) error {
	if technical == "" {
		technical = fmt.Sprintf("%q: %v", game, e)
	}
	return &interpreterError{
		msg:   technical,
		human: game,
		kind:  kind,
		wrap:  e,
	}
}

// Wrapf returns a new error of the given classification that wraps e and has
// a player message built from the format string and its arguments.
func Wrapf(e error, kind error, gameFormat string, a ...interface{}) error {
	return Wrap(e, kind, fmt.Sprintf(gameFormat, a...), "")
}

// GameMessage gets the message to display to the player for the given error.
// If err is or wraps one of the types defined in dqerrors, its game message is
// returned. Otherwise, err.Error() is returned.
func GameMessage(err error) string {
	var intErr *interpreterError
	if errors.As(err, &intErr) {
		return intErr.GameMessage()
	}
	return err.Error()
}
