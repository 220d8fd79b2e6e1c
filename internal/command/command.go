// Package command defines game command data types and handles normalizing and
// parsing of commands from input sources.
package command

// Command is a single parsed line of player input.
type Command struct {

	// Verb is the canonical name of the command being invoked, such as "go",
	// "take", "use", or "quit". Shorthand forms are expanded before the verb is
	// set, so "n" is seen as "go" with a Recipient of "north".
	Verb string

	// Prep is the preposition that came directly after the verb, if any, for
	// instance "at" in "look at box" or "to" in "talk to goblin".
	Prep string

	// Recipient is the thing receiving the action, for instance in "take key"
	// or "talk to goblin" the recipient would be "key" and "goblin"
	// respectively. For go commands, this is the direction.
	Recipient string

	// Link is the preposition that separates Recipient from Instrument, such
	// as "from" in "take key from box".
	Link string

	// Instrument is the second object of the command, for instance in "take
	// key from box" or "put key in box", "box" is the instrument. The exact
	// meaning depends on the verb.
	Instrument string

	// Tokens is the normalized input, alias-expanded, that the Command was
	// parsed from.
	Tokens []string
}

// Args returns all tokens after the verb.
func (c Command) Args() []string {
	if len(c.Tokens) < 2 {
		return nil
	}
	return append([]string{}, c.Tokens[1:]...)
}

// Reader is a type that can be used for getting command input.
type Reader interface {
	// ReadCommand reads a single user command. It will block until one is
	// ready. If there is an error or output is at end (EOF), the returned
	// string will be empty, otherwise it will always be non-empty.
	//
	// When error is io.EOF, string will always be empty. If EOF was encountered
	// on a call but some input was received, the input will be returned and
	// error will be nil, and the next call to ReadCommand will return "",
	// io.EOF.
	ReadCommand() (string, error)

	// AllowBlank sets whether ReadCommand may return an empty line.
	AllowBlank(allow bool)

	// Close performs any operations required to clean the resources created by
	// the Reader. It should be called at least once when the Reader is no
	// longer needed.
	Close() error
}
