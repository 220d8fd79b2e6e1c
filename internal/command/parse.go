package command

import (
	"strings"
)

var (
	// Directions are the movement directions understood by the game.
	Directions = []string{"north", "south", "east", "west", "up", "down"}

	// Fillers are word sequences dropped from input wherever they occur.
	Fillers = [][]string{
		{"a", "piece", "of"},
		{"some"},
	}

	// Prepositions are the words recognized directly after a verb or between
	// the two objects of a command.
	Prepositions = []string{
		"to", "with", "at", "in", "into", "inside", "on", "under", "behind", "from", "about",
	}
)

var (
	// VerbAliases maps shorthand verbs (which must be the first words in a
	// command) to their canonical forms. They are all lower case.
	VerbAliases = map[string]string{
		"north": "go north",
		"south": "go south",
		"east":  "go east",
		"west":  "go west",
		"up":    "go up",
		"down":  "go down",
		"n":     "go north",
		"s":     "go south",
		"e":     "go east",
		"w":     "go west",
		"u":     "go up",
		"d":     "go down",
		"move":  "go",
		"walk":  "go",
		"inv":   "inventory",
		"i":     "inventory",
		"l":     "look",
		"x":     "examine",
		"exit":  "quit",
		"bye":   "quit",
		"pick":  "take",
	}

	// linkingVerbs are the verbs that take a second object after a linking
	// preposition, along with the prepositions that may link them.
	linkingVerbs = map[string][]string{
		"take":   {"from"},
		"get":    {"from"},
		"put":    {"in", "into", "inside", "on"},
		"place":  {"in", "into", "inside", "on"},
		"use":    {"on", "with"},
		"unlock": {"with"},
		"lock":   {"with"},
		"open":   {"with"},
		"attack": {"with"},
		"hit":    {"with"},
		"ask":    {"about"},
	}
)

// Normalize lower-cases the input, collapses whitespace, removes filler
// phrases, and drops the first "the". The returned tokens are a new slice; s
// is not modified.
func Normalize(s string) []string {
	tokens := strings.Fields(strings.ToLower(s))

	for _, filler := range Fillers {
		tokens = removeSequence(tokens, filler)
	}

	for i := range tokens {
		if tokens[i] == "the" {
			tokens = append(tokens[:i:i], tokens[i+1:]...)
			break
		}
	}

	return tokens
}

// removeSequence returns tokens with every occurrence of seq removed.
func removeSequence(tokens, seq []string) []string {
	out := make([]string, 0, len(tokens))
	for i := 0; i < len(tokens); i++ {
		if i+len(seq) <= len(tokens) && equalTokens(tokens[i:i+len(seq)], seq) {
			i += len(seq) - 1
			continue
		}
		out = append(out, tokens[i])
	}
	return out
}

func equalTokens(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Parse normalizes the input and parses it into a Command. If the input is
// empty or only filler, the zero Command is returned.
//
// Parse does not check whether the verb is known; that is up to the caller.
func Parse(s string) Command {
	return ParseTokens(Normalize(s))
}

// ParseTokens parses already-normalized tokens into a Command.
func ParseTokens(tokens []string) Command {
	var cmd Command

	tokens = ExpandAliases(tokens, 2)
	if len(tokens) < 1 {
		return cmd
	}

	cmd.Tokens = tokens
	cmd.Verb = tokens[0]
	args := tokens[1:]

	// "pick up" and "go to" style leading prepositions are recorded and then
	// skipped over.
	if len(args) > 0 && (isPreposition(args[0]) || (cmd.Verb == "take" && args[0] == "up")) {
		cmd.Prep = args[0]
		args = args[1:]
	}

	if links, ok := linkingVerbs[cmd.Verb]; ok {
		for i := range args {
			if i > 0 && inList(args[i], links) {
				cmd.Link = args[i]
				cmd.Recipient = strings.Join(args[:i], " ")
				cmd.Instrument = strings.Join(args[i+1:], " ")
				return cmd
			}
		}
	}

	cmd.Recipient = strings.Join(args, " ")
	return cmd
}

// ExpandAliases takes a slice of tokens of user input and runs alias expansion
// on it. It expects all strings in the given slice to be lower case; failure to
// ensure this may cause the expansion to not work properly. The returned slice
// contains the same tokens but with aliases expanded.
//
// The unexpanded tokens slice is not modified during this operation.
//
// Aliases up to aliasLimit words long are supported. If it is less than 0, it
// is assumed to be 0. Passing 0 means the given tokens will be returned
// unchanged.
//
// Aliases will not be multi-expanded; that is, expansion is not applied to the
// results of an expansion; if the caller needs it, they will need to call
// ExpandAliases again on its output.
func ExpandAliases(tokens []string, aliasLimit int) []string {
	expandedTokens := append([]string{}, tokens...)
	if aliasLimit < 1 {
		return expandedTokens
	}

	// only modify verb up to minimum of limit and number of tokens
	if aliasLimit > len(tokens) {
		aliasLimit = len(tokens)
	}

	for curLimit := aliasLimit; curLimit >= 1; curLimit-- {
		checkStr := strings.Join(tokens[:curLimit], " ")
		expansion, ok := VerbAliases[checkStr]
		if ok {
			replacementTokens := strings.Fields(expansion)

			// we know we are operating from start of tokens passed in so we can
			// just trash all those in the checkStr and replace with the
			// replacementTokens slice
			expandedTokens = append(replacementTokens, tokens[curLimit:]...)

			// we gaurantee only one single substitution, so we can immediately
			// exit
			return expandedTokens
		}
	}

	return expandedTokens
}

// IsDirection returns whether word is one of the movement Directions.
func IsDirection(word string) bool {
	return inList(word, Directions)
}

func isPreposition(word string) bool {
	return inList(word, Prepositions)
}

func inList(s string, list []string) bool {
	for i := range list {
		if list[i] == s {
			return true
		}
	}
	return false
}
