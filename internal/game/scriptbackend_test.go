package game

import (
	"testing"

	"github.com/dekarrin/delveq/internal/fields"
	"github.com/stretchr/testify/assert"
)

func keepWorld() StaticLoader {
	return StaticLoader{
		EntityRoom: {
			"starting_room": {
				"name":             fields.Str("keep entrance"),
				"long_description": fields.Str("Cold stone walls rise on every side."),
				"map":              fields.Map(map[string]string{"east": "side_room"}),
				"doors":            fields.List("oak door"),
				"greet":            fields.Str("run side_room greet"),
			},
			"side_room": {
				"name":             fields.Str("side room"),
				"long_description": fields.Str("A cramped side room."),
				"greet":            fields.Str("add gold 5"),
			},
		},
		EntityItem: {
			"oak door": {
				"kind": fields.Str("door"),
			},
		},
		EntityMonster: {
			"cave_troll": {
				"name": fields.Str("cave troll"),
				"roar": fields.Str("set roared true"),
			},
		},
	}
}

func Test_World_scripts_worldIDs(t *testing.T) {
	testCases := []struct {
		name   string
		script string
		check  func(assert *assert.Assertions, w *World)
	}{
		{
			name:   "run on room with underscore",
			script: "run side_room greet",
			check: func(assert *assert.Assertions, w *World) {
				r, _ := w.Room("side_room")
				assert.Equal(5, r.Fields().Int("gold"))
			},
		},
		{
			name:   "run on starting room",
			script: "run starting_room greet",
			check: func(assert *assert.Assertions, w *World) {
				r, _ := w.Room("side_room")
				assert.Equal(5, r.Fields().Int("gold"))
			},
		},
		{
			name:   "run on monster with underscore",
			script: "run cave_troll roar",
			check: func(assert *assert.Assertions, w *World) {
				m, _ := w.Monster("cave_troll")
				assert.True(m.Fields().Bool("roared"))
			},
		},
		{
			name:   "open item written with underscore",
			script: "open oak_door",
			check: func(assert *assert.Assertions, w *World) {
				door, _ := w.Item("oak door")
				assert.True(Door{door}.IsOpen())
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld(t, keepWorld(), Config{Start: "starting_room"})

			_, err := w.scripts.Exec(tc.script, w.CurrentRoom())

			assert.NoError(err)
			tc.check(assert, w)
		})
	}
}

func Test_World_scripts_undefinedRoom(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld(t, keepWorld(), Config{Start: "starting_room"})
	w.Handle("east")

	w.exec("set room nowhere", w.CurrentRoom())

	if assert.NotNil(w.CurrentRoom()) {
		assert.Equal("side_room", w.CurrentRoom().ID())
	}
}

func Test_World_Handle_undefinedRoom(t *testing.T) {
	assert := assert.New(t)
	w := newTestWorld(t, keepWorld(), Config{Start: "starting_room"})
	w.Player().Fields().SetText("room", "nowhere")

	res := w.Handle("look")

	assert.NoError(res.Err)
	assert.Contains(res.Narration, "Cold stone walls rise on every side.")
	assert.Equal("starting_room", w.CurrentRoom().ID())
}
