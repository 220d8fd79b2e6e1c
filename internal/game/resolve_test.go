package game

import (
	"testing"

	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/fields"
	"github.com/stretchr/testify/assert"
)

func resolverWorld() StaticLoader {
	return StaticLoader{
		EntityRoom: {
			"cave": {
				"name":             fields.Str("Cave"),
				"long_description": fields.Str("Stalactites hang from the ceiling."),
				"items":            fields.List("floor key", "red gem", "blue gem", "chest"),
				"npcs":             fields.List("goblin"),
				"doors":            fields.List("oak_door"),
			},
		},
		EntityItem: {
			"pocket key": {"name": fields.Str("key")},
			"floor key":  {"name": fields.Str("key")},
			"red gem":    {},
			"blue gem":   {},
			"chest": {
				"kind":     fields.Str("container"),
				"open":     fields.Bool(true),
				"contents": fields.List("silver coin"),
			},
			"silver coin": {},
			"oak door":    {"kind": fields.Str("door")},
		},
		EntityMonster: {
			"goblin": {"HP": fields.Int(3), "AC": fields.Int(5)},
		},
	}
}

func Test_World_Resolve(t *testing.T) {
	testCases := []struct {
		name      string
		phrase    string
		expect    Resolution
		expectErr error
	}{
		{
			name:   "inventory beats floor",
			phrase: "key",
			expect: Resolution{ID: "pocket key", Where: InInventory},
		},
		{
			name:   "floor by id",
			phrase: "floor key",
			expect: Resolution{ID: "floor key", Where: OnFloor},
		},
		{
			name:   "open container on the floor",
			phrase: "silver coin",
			expect: Resolution{ID: "silver coin", Where: InRoomContainer, Container: "chest"},
		},
		{
			name:   "partial match on one item",
			phrase: "coin",
			expect: Resolution{ID: "silver coin", Where: InRoomContainer, Container: "chest"},
		},
		{
			name:   "npc",
			phrase: "goblin",
			expect: Resolution{ID: "goblin", Where: AtNPC},
		},
		{
			name:   "door by generic word",
			phrase: "door",
			expect: Resolution{ID: "oak door", Where: AtDoor},
		},
		{
			name:   "scenery from the description",
			phrase: "ceiling",
			expect: Resolution{ID: "ceiling", Where: InScenery},
		},
		{
			name:      "partial match on several items",
			phrase:    "gem",
			expectErr: dqerrors.ErrAmbiguous,
		},
		{
			name:      "plural of an ambiguous item",
			phrase:    "gems",
			expectErr: dqerrors.ErrAmbiguous,
		},
		{
			name:      "nothing",
			phrase:    "unicorn",
			expectErr: dqerrors.ErrNotFound,
		},
		{
			name:      "empty",
			phrase:    "",
			expectErr: dqerrors.ErrBadArgs,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			w := newTestWorld(t, resolverWorld(), Config{})
			pocketKey, _ := w.Item("pocket key")
			w.Player().Take(pocketKey)

			actual, err := w.Resolve(tc.phrase)
			if tc.expectErr != nil {
				assert.ErrorIs(err, tc.expectErr)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_World_Resolve_ambiguousDoor(t *testing.T) {
	assert := assert.New(t)
	defs := resolverWorld()
	defs[EntityRoom]["cave"]["doors"] = fields.List("oak_door", "iron_door")
	defs[EntityItem]["iron door"] = fields.Bag{"kind": fields.Str("door")}
	w := newTestWorld(t, defs, Config{})

	res := w.Handle("open door")

	assert.ErrorIs(res.Err, dqerrors.ErrAmbiguous)
	assert.Equal("Which door do you mean? There's an oak door and an iron door.", res.Narration)

	res = w.Handle("open iron door")
	assert.NoError(res.Err)
	assert.Equal("You open the iron door.", res.Narration)
}

func Test_World_Resolve_closedContainerHidesContents(t *testing.T) {
	assert := assert.New(t)
	defs := resolverWorld()
	defs[EntityItem]["chest"]["open"] = fields.Bool(false)
	w := newTestWorld(t, defs, Config{})

	_, err := w.Resolve("silver coin")

	assert.ErrorIs(err, dqerrors.ErrNotFound)
}
