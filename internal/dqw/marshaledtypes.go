package dqw

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/game"
)

type topLevelManifest struct {
	Format string   `toml:"format"`
	Type   string   `toml:"type"`
	Files  []string `toml:"files"`
}

// topLevelWorldData is the top-level structure containing all keys in a
// complete DQW 'DATA' type file.
type topLevelWorldData struct {
	Format   string       `toml:"format"`
	Type     string       `toml:"type"`
	Game     gameSettings `toml:"game"`
	Rooms    []definition `toml:"room"`
	Items    []definition `toml:"item"`
	Monsters []definition `toml:"monster"`
}

// gameSettings is the [game] table.
type gameSettings struct {
	Title        string   `toml:"title"`
	Start        string   `toml:"start"`
	Commands     []string `toml:"commands"`
	About        string   `toml:"about"`
	Help         string   `toml:"help"`
	Stuck        string   `toml:"stuck"`
	Intro        string   `toml:"intro"`
	Dialog       string   `toml:"dialog"`
	PlayerHP     int      `toml:"player_hp"`
	PlayerAC     int      `toml:"player_ac"`
	PlayerWeapon string   `toml:"player_weapon"`
}

// merge fills in everything in gs that is not yet set from other. It is an
// error for both to name a title or a start room.
func (gs *gameSettings) merge(other gameSettings) error {
	if other.Title != "" {
		if gs.Title != "" {
			return fmt.Errorf("duplicate title; title has already been defined as %q", gs.Title)
		}
		gs.Title = other.Title
	}
	if other.Start != "" {
		if gs.Start != "" {
			return fmt.Errorf("duplicate start; start has already been defined as %q", gs.Start)
		}
		gs.Start = other.Start
	}
	gs.Commands = append(gs.Commands, other.Commands...)

	fill := func(dest *string, src string) {
		if *dest == "" {
			*dest = src
		}
	}
	fill(&gs.About, other.About)
	fill(&gs.Help, other.Help)
	fill(&gs.Stuck, other.Stuck)
	fill(&gs.Intro, other.Intro)
	fill(&gs.Dialog, other.Dialog)
	fill(&gs.PlayerWeapon, other.PlayerWeapon)
	if gs.PlayerHP == 0 {
		gs.PlayerHP = other.PlayerHP
	}
	if gs.PlayerAC == 0 {
		gs.PlayerAC = other.PlayerAC
	}
	return nil
}

func (gs gameSettings) toGameConfig() game.Config {
	return game.Config{
		Title:        gs.Title,
		Start:        gs.Start,
		Commands:     gs.Commands,
		About:        gs.About,
		Help:         gs.Help,
		Stuck:        gs.Stuck,
		Intro:        gs.Intro,
		PlayerHP:     gs.PlayerHP,
		PlayerAC:     gs.PlayerAC,
		PlayerWeapon: itemID(gs.PlayerWeapon),
	}
}

// definition is one [[room]], [[item]] or [[monster]] entry, kept as TOML
// decoded it until the game asks for it.
type definition map[string]interface{}

func (d definition) id() string {
	s, _ := d["id"].(string)
	return s
}

// itemRefs are the fields whose values are item ids and so get the same
// normalization the ids of item definitions get.
var itemRefs = map[string]bool{
	"items":      true,
	"contents":   true,
	"drops":      true,
	"corpse":     true,
	"unlock_key": true,
}

// itemID gives the id an item is known by in the game. Definitions may write
// multi-word ids with underscores.
func itemID(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "_", " ")
}

// toBag converts every key but the id into a field.
func (d definition) toBag() (fields.Bag, error) {
	bag := fields.Bag{}

	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if k == "id" {
			continue
		}
		v, err := toValue(d[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		if itemRefs[k] {
			v = normalizeRefs(v)
		}
		bag[k] = v
	}
	return bag, nil
}

func normalizeRefs(v fields.Value) fields.Value {
	switch v.Kind() {
	case fields.KindString:
		return fields.Str(itemID(v.Text()))
	case fields.KindList:
		items := v.Items()
		for i := range items {
			items[i] = itemID(items[i])
		}
		return fields.List(items...)
	default:
		return v
	}
}

// toValue converts one decoded TOML value into a field value. Lists and
// tables may only hold scalars.
func toValue(raw interface{}) (fields.Value, error) {
	switch v := raw.(type) {
	case string:
		return fields.Str(v), nil
	case int64:
		return fields.Int(int(v)), nil
	case bool:
		return fields.Bool(v), nil
	case []interface{}:
		items := make([]string, len(v))
		for i := range v {
			s, err := scalarText(v[i])
			if err != nil {
				return fields.Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			items[i] = s
		}
		return fields.List(items...), nil
	case map[string]interface{}:
		m := make(map[string]string, len(v))
		for k := range v {
			s, err := scalarText(v[k])
			if err != nil {
				return fields.Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			m[k] = s
		}
		return fields.Map(m), nil
	default:
		return fields.Value{}, fmt.Errorf("unsupported value type %T", raw)
	}
}

func scalarText(raw interface{}) (string, error) {
	switch v := raw.(type) {
	case string:
		return v, nil
	case int64, bool:
		return fmt.Sprint(v), nil
	default:
		return "", fmt.Errorf("must be a string, integer, or boolean, not %T", raw)
	}
}
