package dialog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/delveq/internal/dice"
	"github.com/stretchr/testify/assert"
)

func Test_Provider_Line(t *testing.T) {
	sets := map[string][]string{
		"default": {"Hmm?", "What?"},
		"Goblin":  {"Gold!", "Mine!", "Go away!"},
		"old_man": {"In my day..."},
		"echoes":  {"Your voice bounces off the walls."},
		"nobody":  {},
	}

	testCases := []struct {
		name    string
		speaker string
		faces   []int
		expect  string
	}{
		{
			name:    "own set, first line",
			speaker: "goblin",
			faces:   []int{1},
			expect:  "Gold!",
		},
		{
			name:    "own set, last line",
			speaker: "GOBLIN",
			faces:   []int{3},
			expect:  "Go away!",
		},
		{
			name:    "underscores match spaces",
			speaker: "old man",
			faces:   []int{1},
			expect:  "In my day...",
		},
		{
			name:    "unknown speaker falls back to default",
			speaker: "troll",
			faces:   []int{2},
			expect:  "What?",
		},
		{
			name:    "empty set falls back to default",
			speaker: "nobody",
			faces:   []int{1},
			expect:  "Hmm?",
		},
		{
			name:    "ambient set",
			speaker: Echoes,
			faces:   []int{1},
			expect:  "Your voice bounces off the walls.",
		},
		{
			name:    "missing ambient set does not fall back",
			speaker: Sounds,
			faces:   []int{1},
			expect:  "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			p := New(sets, dice.New(dice.NewSequence(tc.faces...)))

			assert.Equal(tc.expect, p.Line(tc.speaker))
		})
	}
}

func Test_Provider_Line_noDefault(t *testing.T) {
	assert := assert.New(t)

	p := New(map[string][]string{"goblin": {"Gold!"}}, nil)

	assert.Equal("", p.Line("troll"))
	assert.True(p.Has("goblin"))
	assert.False(p.Has("troll"))
}

func Test_Load(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	textFile := "# what the hermit says\n\nGo away.\n  Leave me be.  \n"
	if err := os.WriteFile(filepath.Join(dir, "hermit.txt"), []byte(textFile), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	yamlFile := "default:\n  - \"...\"\nhermit: hermit.txt\nsounds:\n  - dripping water\n"
	path := filepath.Join(dir, "dialog.yaml")
	if err := os.WriteFile(path, []byte(yamlFile), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	p, err := Load(path, dice.New(dice.NewSequence(2)))
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]string{"default", "hermit", "sounds"}, p.Speakers())
	assert.Equal("Leave me be.", p.Line("hermit"))
	assert.Equal("dripping water", p.Line(Sounds))
}

func Test_Parse_errors(t *testing.T) {
	testCases := []struct {
		name  string
		input string
	}{
		{
			name:  "not yaml",
			input: "default: [unterminated",
		},
		{
			name:  "set is a map",
			input: "default:\n  line: hello\n",
		},
		{
			name:  "missing text file",
			input: "hermit: does-not-exist.txt\n",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := Parse([]byte(tc.input), nil)

			assert.Error(err)
		})
	}
}
