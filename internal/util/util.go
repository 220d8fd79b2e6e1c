// Package util holds the text helpers used when building narration: article
// insertion, natural-language lists, and a few small slice and map helpers.
package util

import (
	"sort"
	"strings"
	"unicode"
)

var (
	// PieceNouns are mass nouns that take "a piece of" rather than "a".
	PieceNouns = []string{"moss", "ice", "soap", "cloth", "fabric", "paper", "music", "glass", "wood"}

	// SomeNouns are mass nouns that take "some" rather than "a".
	SomeNouns = []string{"water", "blood", "soup", "gravy"}
)

// MakeTextList gives a nice list of things based on their display name. If
// articles is true, each item is given its indefinite article.
func MakeTextList(items []string, articles bool) string {
	if len(items) < 1 {
		return ""
	}

	withArts := make([]string, len(items))
	for i := range items {
		item := items[i]
		if articles {
			item = WithArticle(item)
		}
		withArts[i] = item
	}

	if len(withArts) == 1 {
		return withArts[0]
	} else if len(withArts) == 2 {
		return withArts[0] + " and " + withArts[1]
	}

	// if its more than two, use an oxford comma
	withArts[len(withArts)-1] = "and " + withArts[len(withArts)-1]
	return strings.Join(withArts, ", ")
}

// WithArticle returns s preceded by its indefinite article. Mass nouns get
// "a piece of" or "some" instead.
func WithArticle(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	if InSlice(lower, PieceNouns) {
		return "a piece of " + s
	}
	if InSlice(lower, SomeNouns) {
		return "some " + s
	}
	return ArticleFor(s, false) + " " + s
}

// ArticleFor returns the article for the given string. It will be capitalized
// the same as the string. If definite is true, the returned value will be "the"
// capitalized as described; otherwise, it will be "a"/"an" capitalized as
// described.
func ArticleFor(s string, definite bool) string {
	sRunes := []rune(s)

	if len(sRunes) < 1 {
		return ""
	}

	leadingUpper := unicode.IsUpper(sRunes[0])
	allCaps := leadingUpper
	if leadingUpper && len(sRunes) > 1 {
		allCaps = unicode.IsUpper(sRunes[1])
	}

	art := ""
	if definite {
		if allCaps {
			art = "THE"
		} else if leadingUpper {
			art = "The"
		} else {
			art = "the"
		}
	} else {
		if allCaps || leadingUpper {
			art = "A"
		} else {
			art = "a"
		}

		first := unicode.ToUpper(sRunes[0])
		if first == 'A' || first == 'E' || first == 'I' || first == 'O' || first == 'U' {
			if allCaps {
				art += "N"
			} else {
				art += "n"
			}
		}
	}

	return art
}

// Singular strips a plural trailing "s" from word. Words ending in "ss" or
// that are too short to be plurals are returned unchanged, and ok is false.
func Singular(word string) (singular string, ok bool) {
	if len(word) < 3 || !strings.HasSuffix(word, "s") || strings.HasSuffix(word, "ss") {
		return word, false
	}
	return word[:len(word)-1], true
}

// Capitalize upper-cases the first letter of s.
func Capitalize(s string) string {
	r := []rune(s)
	if len(r) < 1 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// InSlice returns whether s is an element of sl.
func InSlice(s string, sl []string) bool {
	for i := range sl {
		if sl[i] == s {
			return true
		}
	}
	return false
}

// OrderedKeys returns the keys of m, ordered a particular way. The order is
// guaranteed to be the same on every run.
//
// As of this writing, the order is alphabetical, but this function does not
// guarantee this will always be the case.
func OrderedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}
