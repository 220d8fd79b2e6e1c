package delveq

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const testWorld = `format = "DELVE"
type = "DATA"

[game]
title = "Test Cave"
start = "cave"
player_hp = 1

[[room]]
id = "cave"
name = "cave"
long_description = "A long damp cave stretches out before you."
short_description = "The damp cave."
items = ["torch"]
map = { north = "outside" }

[[room]]
id = "outside"
name = "outside"
long_description = "Sunlight! You made it out."
game_exit = true

[[item]]
id = "torch"
attributes = ["lightable"]
`

func writeWorld(t *testing.T) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "world.dqw")
	if err := os.WriteFile(p, []byte(testWorld), 0644); err != nil {
		t.Fatalf("write world: %v", err)
	}
	return p
}

func Test_Engine_RunUntilQuit(t *testing.T) {
	testCases := []struct {
		name        string
		input       string
		expectIn    []string
		expectNotIn []string
	}{
		{
			name:     "quit",
			input:    "look\nquit\nnorth\n",
			expectIn: []string{"Welcome to Test Cave", "(direct input mode)", "A long damp cave", "Goodbye."},
			expectNotIn: []string{
				"Sunlight!",
			},
		},
		{
			name:     "win",
			input:    "north\nlook\n",
			expectIn: []string{"Sunlight! You made it out.", "you have won"},
			expectNotIn: []string{
				"Goodbye.",
			},
		},
		{
			name:     "out of input",
			input:    "look\n",
			expectIn: []string{"Goodbye."},
		},
		{
			name:     "die and decline",
			input:    "kick torch\nmaybe\nn\nlook\n",
			expectIn: []string{"You died!", "Play again? (y/n)", "Goodbye."},
		},
		{
			name:     "die and play again",
			input:    "kick torch\ny\nnorth\n",
			expectIn: []string{"You died!", "Play again? (y/n)", "you have won"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			var out bytes.Buffer

			eng, err := New(strings.NewReader(tc.input), &out, Options{
				WorldFile:   writeWorld(t),
				ForceDirect: true,
				Seed:        1,
			})
			if !assert.NoError(err) {
				return
			}

			err = eng.RunUntilQuit()
			assert.NoError(err)
			assert.NoError(eng.Close())

			actual := out.String()
			for _, s := range tc.expectIn {
				assert.Contains(actual, s)
			}
			for _, s := range tc.expectNotIn {
				assert.NotContains(actual, s)
			}
		})
	}
}

func Test_Engine_playAgainPrompt(t *testing.T) {
	assert := assert.New(t)
	var out bytes.Buffer

	eng, err := New(strings.NewReader("kick torch\nmaybe\n\nn\n"), &out, Options{
		WorldFile:   writeWorld(t),
		ForceDirect: true,
	})
	if !assert.NoError(err) {
		return
	}

	assert.NoError(eng.RunUntilQuit())
	assert.Equal(3, strings.Count(out.String(), "Play again? (y/n)"))
}

func Test_New_missingWorld(t *testing.T) {
	assert := assert.New(t)

	_, err := New(strings.NewReader(""), &bytes.Buffer{}, Options{
		WorldFile: filepath.Join(t.TempDir(), "nope.dqw"),
	})

	assert.Error(err)
}

func Test_Engine_wrapsNarration(t *testing.T) {
	assert := assert.New(t)
	var out bytes.Buffer

	eng, err := New(strings.NewReader("look\n"), &out, Options{
		WorldFile:   writeWorld(t),
		ForceDirect: true,
		Width:       20,
	})
	if !assert.NoError(err) {
		return
	}

	assert.NoError(eng.RunUntilQuit())
	for _, line := range strings.Split(out.String(), "\n") {
		if strings.HasPrefix(line, "=") || strings.HasPrefix(line, "Welcome") || strings.HasPrefix(line, "(direct") {
			continue
		}
		assert.LessOrEqual(len(line), 20, "line too long: %q", line)
	}
}
