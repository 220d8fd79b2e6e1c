package command

import "sort"

// DefaultVerbs is the verb vocabulary every game understands. Games may add
// more through configuration.
var DefaultVerbs = []string{
	"about", "help", "commands", "stuck", "hint", "stats", "inventory", "quit", "exits",
	"go", "look", "examine", "listen", "smell", "search",
	"take", "get", "drop", "leave", "put", "place",
	"open", "close", "lock", "unlock", "use", "light", "read", "eat", "drink",
	"talk", "ask", "say",
	"attack", "hit", "fight", "kill", "kick", "punch",
}

// Vocabulary is the set of verbs accepted as the first word of a command.
type Vocabulary struct {
	verbs map[string]bool
}

// NewVocabulary creates a Vocabulary holding DefaultVerbs, the movement
// Directions, and any extra verbs given.
func NewVocabulary(extra ...string) Vocabulary {
	v := Vocabulary{verbs: map[string]bool{}}
	for _, verb := range DefaultVerbs {
		v.verbs[verb] = true
	}
	for _, dir := range Directions {
		v.verbs[dir] = true
	}
	for _, verb := range extra {
		if verb != "" {
			v.verbs[verb] = true
		}
	}
	return v
}

// Has returns whether verb is in the vocabulary.
func (v Vocabulary) Has(verb string) bool {
	return v.verbs[verb]
}

// Verbs returns every verb in the vocabulary in alphabetical order.
func (v Vocabulary) Verbs() []string {
	verbs := make([]string, 0, len(v.verbs))
	for verb := range v.verbs {
		verbs = append(verbs, verb)
	}
	sort.Strings(verbs)
	return verbs
}
