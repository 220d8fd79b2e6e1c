package game

import (
	"strings"
	"testing"

	"github.com/dekarrin/delveq/internal/dice"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/fields"
	"github.com/stretchr/testify/assert"
)

// newTestWorld creates a started World from defs whose dice roll the given
// faces in order.
func newTestWorld(t *testing.T, defs StaticLoader, cfg Config, faces ...int) *World {
	t.Helper()
	if cfg.Start == "" {
		cfg.Start = "cave"
	}
	w, err := New(defs, cfg, Options{Random: dice.NewSequence(faces...)})
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}
	w.Start()
	return w
}

func caveWorld() StaticLoader {
	return StaticLoader{
		EntityRoom: {
			"cave": {
				"name":              fields.Str("Cave"),
				"long_description":  fields.Str("A long damp cave stretches out before you."),
				"short_description": fields.Str("The damp cave."),
				"map":               fields.Map(map[string]string{"north": "hall"}),
				"items":             fields.List("torch"),
			},
			"hall": {
				"name":              fields.Str("great hall"),
				"long_description":  fields.Str("The ceiling of the hall is lost in shadow."),
				"short_description": fields.Str("The great hall."),
				"map":               fields.Map(map[string]string{"south": "cave", "north": "outside"}),
			},
			"outside": {
				"name":             fields.Str("Outside"),
				"long_description": fields.Str("Sunlight! You made it out."),
				"game_exit":        fields.Bool(true),
			},
		},
		EntityItem: {
			"torch": {
				"attributes": fields.List("lightable"),
			},
		},
	}
}

func Test_World_New_missingStart(t *testing.T) {
	assert := assert.New(t)

	_, err := New(caveWorld(), Config{Start: "attic"}, Options{})

	assert.ErrorIs(err, dqerrors.ErrLoad)
}

func Test_World_New_fillsReferences(t *testing.T) {
	assert := assert.New(t)
	defs := caveWorld()
	defs[EntityRoom]["cave"]["items"] = fields.List("torch", "mystery box")
	defs[EntityRoom]["cave"]["npcs"] = fields.List("ghost")

	w := newTestWorld(t, defs, Config{})

	_, ok := w.Item("mystery box")
	assert.True(ok)
	ghost, ok := w.Monster("ghost")
	if assert.True(ok) {
		assert.True(ghost.Alive())
	}
}

func Test_World_Handle_movement(t *testing.T) {
	assert := assert.New(t)
	defs := caveWorld()

	w, err := New(defs, Config{Start: "cave"}, Options{Random: dice.NewSequence()})
	if !assert.NoError(err) {
		return
	}

	start := w.Start()
	assert.Contains(start, "<< Cave >>")
	assert.Contains(start, "A long damp cave stretches out before you.")
	assert.Contains(start, "You see a torch here.")

	res := w.Handle("go north")
	assert.NoError(res.Err)
	assert.Equal(Continue, res.Status)
	assert.Contains(res.Narration, "<< Great Hall >>")
	assert.Contains(res.Narration, "The ceiling of the hall is lost in shadow.")
	assert.Equal("hall", w.Player().Room())

	// second visit gets the short description
	res = w.Handle("s")
	assert.NoError(res.Err)
	assert.Contains(res.Narration, "The damp cave.")
	assert.NotContains(res.Narration, "A long damp cave")

	// looking shows the long one again
	res = w.Handle("look")
	assert.Contains(res.Narration, "A long damp cave stretches out before you.")

	res = w.Handle("go west")
	assert.ErrorIs(res.Err, dqerrors.ErrInvalidTransition)
	assert.Equal("You can't go that way.", res.Narration)
	assert.Equal("cave", w.Player().Room())
}

func Test_World_Handle_status(t *testing.T) {
	testCases := []struct {
		name   string
		input  []string
		setup  func(w *World)
		expect Status
	}{
		{
			name:   "quit",
			input:  []string{"quit"},
			expect: Quit,
		},
		{
			name:   "quit by alias",
			input:  []string{"bye"},
			expect: Quit,
		},
		{
			name:   "reaching the exit wins",
			input:  []string{"north", "north"},
			expect: Won,
		},
		{
			name:  "hurting yourself to death loses",
			input: []string{"kick torch"},
			setup: func(w *World) {
				w.Player().Fields().SetInt("HP", 1)
			},
			expect: Lost,
		},
		{
			name:   "ordinary turn continues",
			input:  []string{"inventory"},
			expect: Continue,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld(t, caveWorld(), Config{})
			if tc.setup != nil {
				tc.setup(w)
			}

			var res TurnResult
			for _, in := range tc.input {
				res = w.Handle(in)
			}

			assert.Equal(tc.expect, res.Status)
			assert.Equal(tc.expect, w.Status())
		})
	}
}

func Test_World_Handle_unknownCommand(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld(t, caveWorld(), Config{Commands: []string{"dance"}})

	res := w.Handle("juggle torch")
	assert.ErrorIs(res.Err, dqerrors.ErrUnknownCommand)
	assert.Equal(`"juggle" is not a recognized command. Type HELP for a list.`, res.Narration)
	assert.Equal(Continue, res.Status)

	// a configured verb with no handler is accepted but does nothing
	res = w.Handle("dance")
	assert.NoError(res.Err)
	assert.Equal("You try to dance, but nothing happens.", res.Narration)

	res = w.Handle("   ")
	assert.NoError(res.Err)
	assert.Equal("", res.Narration)
}

func Test_World_Handle_solution(t *testing.T) {
	assert := assert.New(t)
	defs := caveWorld()
	cave := defs[EntityRoom]["cave"]
	cave["solution"] = fields.List("pray", "use torch")
	cave["solved_script"] = fields.Str("set altar_glow 3; add HP 5")
	cave["solved_description"] = fields.Str("The altar in the cave glows softly.")

	w := newTestWorld(t, defs, Config{})
	room := w.CurrentRoom()

	res := w.Handle("pray")
	assert.NoError(res.Err)
	assert.Contains(res.Narration, "The altar in the cave glows softly.")
	assert.True(room.Solved())
	assert.Equal(3, room.Fields().Int("altar_glow"))
	assert.Equal(DefaultPlayerHP+5, w.Player().HP())

	res = w.Handle("pray")
	assert.Equal("You did that already and it worked.", res.Narration)
	assert.Equal(DefaultPlayerHP+5, w.Player().HP())
}

func Test_World_Handle_solutionNeedsItem(t *testing.T) {
	assert := assert.New(t)
	defs := caveWorld()
	defs[EntityRoom]["cave"]["solution"] = fields.List("use torch")

	w := newTestWorld(t, defs, Config{})

	res := w.Handle("use torch")
	assert.Equal("This seems like a brilliant idea. Too bad you don't have a torch.", res.Narration)
	assert.False(w.CurrentRoom().Solved())

	w.Handle("take torch")
	w.Handle("use torch")
	assert.True(w.CurrentRoom().Solved())
}

func Test_World_Reset(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld(t, caveWorld(), Config{})

	w.Handle("take torch")
	w.Handle("north")
	w.Player().Hurt(5)
	assert.True(w.Player().Has("torch"))

	out := w.Reset()

	assert.Contains(out, "A long damp cave stretches out before you.")
	assert.Equal("cave", w.Player().Room())
	assert.Equal(DefaultPlayerHP, w.Player().HP())
	assert.False(w.Player().Has("torch"))
	assert.True(w.CurrentRoom().HasItem("torch"))
	assert.Equal(1, w.CurrentRoom().Visits())
	hall, _ := w.Room("hall")
	assert.Equal(0, hall.Visits())
	assert.Empty(w.RecentCommands(10))
	assert.Equal(Continue, w.Status())
}

func Test_World_Handle_infoVerbs(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "empty inventory",
			input:  "i",
			expect: []string{"You aren't carrying anything."},
		},
		{
			name:   "stats",
			input:  "stats",
			expect: []string{"HP: 20/20", "AC: 14", "Weapon: fist"},
		},
		{
			name:   "exits",
			input:  "exits",
			expect: []string{"You can go: north"},
		},
		{
			name:   "help lists verbs",
			input:  "help",
			expect: []string{"Here are the commands you can use:", "INVENTORY/I"},
		},
		{
			name:   "about",
			input:  "about",
			expect: []string{"You are playing The Cave."},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld(t, caveWorld(), Config{Title: "The Cave"})

			res := w.Handle(tc.input)

			assert.NoError(res.Err)
			for _, s := range tc.expect {
				assert.Contains(res.Narration, s)
			}
		})
	}
}

func Test_World_Handle_debug(t *testing.T) {
	assert := assert.New(t)

	w := newTestWorld(t, caveWorld(), Config{})
	res := w.Handle("debug room hall")
	assert.ErrorIs(res.Err, dqerrors.ErrUnknownCommand)

	w = newTestWorld(t, caveWorld(), Config{Debug: true})
	res = w.Handle("debug room hall")
	assert.NoError(res.Err)
	assert.Equal("hall", w.Player().Room())

	res = w.Handle("debug exec set Motto Keep_Going")
	assert.NoError(res.Err)
	assert.Equal("Keep_Going", w.CurrentRoom().Fields().Text("Motto"))

	res = w.Handle("debug fields")
	assert.NoError(res.Err)
	assert.True(strings.Contains(res.Narration, "max_HP"))
}

func newRoller(faces ...int) *dice.Roller {
	return dice.New(dice.NewSequence(faces...))
}
