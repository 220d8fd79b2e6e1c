package dqw

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/game"
	"github.com/stretchr/testify/assert"
)

const caveData = `format = "DELVE"
type = "DATA"

[game]
title = "The Cave"
start = "cave_mouth"
commands = ["dance"]
dialog = "dialog.yaml"
player_hp = 12

[[room]]
id = "cave_mouth"
name = "Cave Mouth"
long_description = "A damp opening in the hillside."
items = ["rusty_key", "torch"]
lit = true
map = { north = "great_hall" }

[[room]]
id = "great_hall"
name = "Great Hall"
visits = 0

[[item]]
id = "rusty_key"
name = "rusty key"
attributes = ["key"]

[[item]]
id = "torch"
attributes = ["lightable"]

[[monster]]
id = "goblin"
HP = 3
AC = 5
drops = ["gold_coin"]
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

func Test_ScanFileInfo(t *testing.T) {
	testCases := []struct {
		name      string
		input     string
		expect    FileInfo
		expectErr bool
	}{
		{
			name:   "header only",
			input:  "format = \"DELVE\"\ntype = \"DATA\"\n",
			expect: FileInfo{Format: "DELVE", Type: "DATA"},
		},
		{
			name:   "stops at first table",
			input:  "format = \"DELVE\"\ntype = \"MANIFEST\"\n\n[game]\ntitle = 7 = broken\n",
			expect: FileInfo{Format: "DELVE", Type: "MANIFEST"},
		},
		{
			name:      "bad toml in header",
			input:     "format = \n",
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual, err := ScanFileInfo([]byte(tc.input))
			if tc.expectErr {
				assert.Error(err)
				return
			}
			assert.NoError(err)
			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_LoadResourceBundle_dataFile(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "cave.dqw", caveData)

	world, err := LoadResourceBundle(path)
	if !assert.NoError(err) {
		return
	}

	assert.Equal("The Cave", world.Config.Title)
	assert.Equal("cave_mouth", world.Config.Start)
	assert.Equal([]string{"dance"}, world.Config.Commands)
	assert.Equal(12, world.Config.PlayerHP)
	assert.Equal(filepath.Join(dir, "dialog.yaml"), world.Dialog)

	assert.Equal([]string{"cave_mouth", "great_hall"}, world.IDs(game.EntityRoom))
	assert.Equal([]string{"rusty key", "torch"}, world.IDs(game.EntityItem))
	assert.Equal([]string{"goblin"}, world.IDs(game.EntityMonster))

	room, err := world.Load(game.EntityRoom, "cave_mouth")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(fields.KindString, room["name"].Kind())
	assert.Equal("Cave Mouth", room["name"].Text())
	assert.Equal([]string{"rusty key", "torch"}, room["items"].Items())
	assert.True(room["lit"].Truth())
	assert.Equal(map[string]string{"north": "great_hall"}, room["map"].Mapping())
	_, hasID := room["id"]
	assert.False(hasID)

	goblin, err := world.Load(game.EntityMonster, "goblin")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(fields.KindInt, goblin["HP"].Kind())
	assert.Equal(3, goblin["HP"].Num())
	assert.Equal([]string{"gold coin"}, goblin["drops"].Items())
}

func Test_LoadResourceBundle_manifest(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()

	writeFile(t, dir, "rooms.dqw", `format = "DELVE"
type = "DATA"

[game]
start = "cell"

[[room]]
id = "cell"
`)
	writeFile(t, dir, "things.dqw", `format = "DELVE"
type = "DATA"

[game]
title = "Jailbreak"

[[item]]
id = "spoon"
`)
	if err := os.Mkdir(filepath.Join(dir, "more"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "more"), "back.dqw", `format = "DELVE"
type = "MANIFEST"
files = ["../world.dqw", "guard.dqw"]
`)
	writeFile(t, filepath.Join(dir, "more"), "guard.dqw", `format = "DELVE"
type = "DATA"

[[monster]]
id = "guard"
`)
	path := writeFile(t, dir, "world.dqw", `format = "DELVE"
type = "MANIFEST"
files = ["rooms.dqw", "things.dqw", "more/back.dqw"]
`)

	world, err := LoadResourceBundle(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal("cell", world.Config.Start)
	assert.Equal("Jailbreak", world.Config.Title)
	assert.Equal([]string{"cell"}, world.IDs(game.EntityRoom))
	assert.Equal([]string{"spoon"}, world.IDs(game.EntityItem))
	assert.Equal([]string{"guard"}, world.IDs(game.EntityMonster))
}

func Test_LoadResourceBundle_errors(t *testing.T) {
	testCases := []struct {
		name        string
		files       map[string]string
		expectIs    error
		expectErrIn bool
	}{
		{
			name: "wrong format",
			files: map[string]string{
				"main.dqw": "format = \"TUNA\"\ntype = \"DATA\"\n",
			},
		},
		{
			name: "unknown type",
			files: map[string]string{
				"main.dqw": "format = \"DELVE\"\ntype = \"SAVE\"\n",
			},
		},
		{
			name: "empty manifest",
			files: map[string]string{
				"main.dqw": "format = \"DELVE\"\ntype = \"MANIFEST\"\nfiles = []\n",
			},
			expectIs: ErrManifestEmpty,
		},
		{
			name: "manifest that only refers to itself",
			files: map[string]string{
				"main.dqw": "format = \"DELVE\"\ntype = \"MANIFEST\"\nfiles = [\"main.dqw\"]\n",
			},
			expectIs: ErrManifestEmpty,
		},
		{
			name: "duplicate start",
			files: map[string]string{
				"main.dqw": "format = \"DELVE\"\ntype = \"MANIFEST\"\nfiles = [\"a.dqw\", \"b.dqw\"]\n",
				"a.dqw":    "format = \"DELVE\"\ntype = \"DATA\"\n[game]\nstart = \"a\"\n[[room]]\nid = \"a\"\n",
				"b.dqw":    "format = \"DELVE\"\ntype = \"DATA\"\n[game]\nstart = \"b\"\n[[room]]\nid = \"b\"\n",
			},
		},
		{
			name: "duplicate item id",
			files: map[string]string{
				"main.dqw": "format = \"DELVE\"\ntype = \"DATA\"\n[[item]]\nid = \"old_key\"\n[[item]]\nid = \"old key\"\n",
			},
		},
		{
			name: "missing id",
			files: map[string]string{
				"main.dqw": "format = \"DELVE\"\ntype = \"DATA\"\n[[room]]\nname = \"Nowhere\"\n",
			},
		},
		{
			name: "start room not defined",
			files: map[string]string{
				"main.dqw": "format = \"DELVE\"\ntype = \"DATA\"\n[game]\nstart = \"void\"\n[[room]]\nid = \"cell\"\n",
			},
		},
		{
			name: "missing included file",
			files: map[string]string{
				"main.dqw": "format = \"DELVE\"\ntype = \"MANIFEST\"\nfiles = [\"gone.dqw\"]\n",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)
			dir := t.TempDir()
			for name, content := range tc.files {
				writeFile(t, dir, name, content)
			}

			_, err := LoadResourceBundle(filepath.Join(dir, "main.dqw"))
			assert.Error(err)
			if tc.expectIs != nil {
				assert.ErrorIs(err, tc.expectIs)
			}
		})
	}
}

func Test_WorldData_Load_badValue(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "main.dqw", `format = "DELVE"
type = "DATA"

[[item]]
id = "scale"
weight = 1.5
`)

	world, err := LoadResourceBundle(path)
	if !assert.NoError(err) {
		return
	}

	_, err = world.Load(game.EntityItem, "scale")
	assert.True(errors.Is(err, dqerrors.ErrLoad))

	_, err = world.Load(game.EntityItem, "feather")
	assert.True(errors.Is(err, dqerrors.ErrLoad))
}

func Test_LoadManifestFile(t *testing.T) {
	assert := assert.New(t)
	dir := t.TempDir()
	path := writeFile(t, dir, "m.dqw", "format = \"DELVE\"\ntype = \"MANIFEST\"\nfiles = [\"a.dqw\", \"b.dqw\"]\n")

	manif, err := LoadManifestFile(path)
	assert.NoError(err)
	assert.Equal([]string{"a.dqw", "b.dqw"}, manif.Files)
}
