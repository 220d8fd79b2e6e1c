package dqw

import (
	"fmt"
	"regexp"
	"sort"

	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/game"
)

const idChars = `A-Za-z0-9_' -`

var idRegexp = regexp.MustCompile(fmt.Sprintf(`^[%s]+$`, idChars))

// WorldData contains data loaded from one or more DQW World Data files. It is
// a game.Loader.
type WorldData struct {
	// Config is the [game] table, without defaults applied.
	Config game.Config

	// Dialog is the path to the dialog file named in the [game] table, or ""
	// if there is none.
	Dialog string

	defs map[game.EntityKind]map[string]definition
}

// IDs returns the ids of every definition of the given kind, sorted.
func (wd *WorldData) IDs(kind game.EntityKind) []string {
	ids := make([]string, 0, len(wd.defs[kind]))
	for id := range wd.defs[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Load converts the definition of the given kind and id into fields. A
// definition with a value that cannot be a field is a load error.
func (wd *WorldData) Load(kind game.EntityKind, id string) (fields.Bag, error) {
	def, ok := wd.defs[kind][id]
	if !ok {
		return nil, dqerrors.New(dqerrors.ErrLoad, "", fmt.Sprintf("no %s with id %q exists", kind, id))
	}
	bag, err := def.toBag()
	if err != nil {
		return nil, dqerrors.Wrap(err, dqerrors.ErrLoad, "", fmt.Sprintf("%s %q: %v", kind, id, err))
	}
	return bag, nil
}

func parseManifest(dqw topLevelManifest) (Manifest, error) {
	manif := Manifest{
		Files: dqw.Files,
	}

	return manif, nil
}

func parseWorldData(dqw topLevelWorldData) (*WorldData, error) {
	world := &WorldData{
		Config: dqw.Game.toGameConfig(),
		Dialog: dqw.Game.Dialog,
		defs: map[game.EntityKind]map[string]definition{
			game.EntityRoom:    {},
			game.EntityItem:    {},
			game.EntityMonster: {},
		},
	}

	sections := []struct {
		kind game.EntityKind
		defs []definition
	}{
		{game.EntityRoom, dqw.Rooms},
		{game.EntityItem, dqw.Items},
		{game.EntityMonster, dqw.Monsters},
	}

	for _, sec := range sections {
		for idx, def := range sec.defs {
			id := def.id()
			if err := checkID(id); err != nil {
				return nil, fmt.Errorf("%s[%d]: %w", sec.kind, idx, err)
			}
			if sec.kind == game.EntityItem {
				id = itemID(id)
			}
			if _, dup := world.defs[sec.kind][id]; dup {
				return nil, fmt.Errorf("%s[%d]: a %s with id %q has already been defined", sec.kind, idx, sec.kind, id)
			}
			world.defs[sec.kind][id] = def
		}
	}

	// an explicit start must be somewhere real; the default one is checked
	// when the game is created.
	if start := world.Config.Start; start != "" {
		if _, ok := world.defs[game.EntityRoom][start]; !ok {
			return nil, fmt.Errorf("game: start: no room with id %q exists", start)
		}
	}

	return world, nil
}

func checkID(id string) error {
	if id == "" {
		return fmt.Errorf("'id' must exist and be a non-empty string")
	}
	if !idRegexp.MatchString(id) {
		return fmt.Errorf("id %q contains characters other than letters, numbers, spaces, and any of _'-", id)
	}
	return nil
}
