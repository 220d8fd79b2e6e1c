package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_MakeTextList(t *testing.T) {
	testCases := []struct {
		name     string
		items    []string
		articles bool
		expect   string
	}{
		{name: "empty", items: nil, expect: ""},
		{name: "one with article", items: []string{"key"}, articles: true, expect: "a key"},
		{name: "two", items: []string{"apple", "rock"}, articles: true, expect: "an apple and a rock"},
		{name: "three oxford comma", items: []string{"stone", "bark", "knife"}, articles: true, expect: "a stone, a bark, and a knife"},
		{name: "mass nouns", items: []string{"moss", "water"}, articles: true, expect: "a piece of moss and some water"},
		{name: "no articles", items: []string{"north", "south", "up"}, expect: "north, south, and up"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, MakeTextList(tc.items, tc.articles))
		})
	}
}

func Test_ArticleFor(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		definite bool
		expect   string
	}{
		{name: "consonant", input: "goblin", expect: "a"},
		{name: "vowel", input: "owl", expect: "an"},
		{name: "capital vowel", input: "Orc", expect: "An"},
		{name: "all caps", input: "ORB", expect: "AN"},
		{name: "definite", input: "Sword", definite: true, expect: "The"},
		{name: "empty", input: "", expect: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			assert.Equal(tc.expect, ArticleFor(tc.input, tc.definite))
		})
	}
}

func Test_Singular(t *testing.T) {
	testCases := []struct {
		input    string
		expect   string
		expectOK bool
	}{
		{input: "rocks", expect: "rock", expectOK: true},
		{input: "moss", expect: "moss"},
		{input: "key", expect: "key"},
		{input: "us", expect: "us"},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert := assert.New(t)

			actual, ok := Singular(tc.input)
			assert.Equal(tc.expect, actual)
			assert.Equal(tc.expectOK, ok)
		})
	}
}
