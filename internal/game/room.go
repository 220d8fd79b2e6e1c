package game

import (
	"strings"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/util"
)

// HiddenFound and HiddenNotFound are the values of a room's hidden_state
// field.
const (
	HiddenFound    = "found"
	HiddenNotFound = "not found"
)

// Room is a single location in the world.
type Room struct {
	id    string
	store *fields.Store
}

// NewRoom creates a Room with the given id and fields.
func NewRoom(id string, bag fields.Bag) *Room {
	return &Room{id: id, store: fields.NewStore(bag)}
}

func (r *Room) ID() string {
	return r.id
}

func (r *Room) Fields() *fields.Store {
	return r.store
}

func (r *Room) Name() string {
	if n := r.store.Text("name"); n != "" {
		return n
	}
	return r.id
}

// IsLit returns whether the room can be seen in without a light. Rooms are
// lit unless their definition says otherwise.
func (r *Room) IsLit() bool {
	if !r.store.Has("lit") {
		return true
	}
	return r.store.Bool("lit")
}

// Items returns the ids of the items on the floor of the room.
func (r *Room) Items() []string {
	return r.store.List("items")
}

// HasItem returns whether the item is on the floor of the room.
func (r *Room) HasItem(id string) bool {
	return r.store.Contains("items", id)
}

func (r *Room) AddItems(ids ...string) {
	if err := r.store.Append("items", ids...); err != nil {
		r.store.SetList("items", append(r.Items(), ids...))
	}
}

func (r *Room) RemoveItem(id string) bool {
	ok, _ := r.store.Remove("items", id)
	return ok
}

// NPCs returns the ids of the monsters in the room.
func (r *Room) NPCs() []string {
	return r.store.List("npcs")
}

func (r *Room) HasNPC(id string) bool {
	return r.store.Contains("npcs", id)
}

func (r *Room) RemoveNPC(id string) bool {
	ok, _ := r.store.Remove("npcs", id)
	return ok
}

// Doors returns the item ids of the room's doors. Door ids may be written with
// underscores in definitions; they are returned with spaces.
func (r *Room) Doors() []string {
	raw := r.store.List("doors")
	doors := make([]string, len(raw))
	for i := range raw {
		doors[i] = strings.ReplaceAll(raw[i], "_", " ")
	}
	return doors
}

// Exits returns the exits of the room as a map of direction to room id. When
// dark is true and the room has a separate map for darkness, that map is used
// instead.
func (r *Room) Exits(dark bool) map[string]string {
	if dark {
		if m := r.store.Map("dark_map"); len(m) > 0 {
			return m
		}
	}
	m := r.store.Map("map")
	if m == nil {
		m = map[string]string{}
	}
	return m
}

// ExitDirections returns the directions of the given exits with the standard
// movement directions first, in their usual order.
func ExitDirections(exits map[string]string) []string {
	var dirs []string
	for _, d := range command.Directions {
		if _, ok := exits[d]; ok {
			dirs = append(dirs, d)
		}
	}
	for _, d := range util.OrderedKeys(exits) {
		if !command.IsDirection(d) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}

// Visits returns how many times the player has entered the room.
func (r *Room) Visits() int {
	return r.store.Int("visits")
}

// Visit records that the player entered the room and returns the visit count
// before this one.
func (r *Room) Visit() int {
	n := r.Visits()
	r.store.SetInt("visits", n+1)
	return n
}

// IsExit returns whether entering the room ends the game in victory.
func (r *Room) IsExit() bool {
	return r.store.Has("game_exit") && (r.store.Bool("game_exit") || r.store.Text("game_exit") != "false")
}

// Solutions returns the phrases that solve the room's puzzle.
func (r *Room) Solutions() []string {
	return r.store.List("solution")
}

// IsSolution returns whether phrase is one of the room's solution phrases.
func (r *Room) IsSolution(phrase string) bool {
	for _, s := range r.Solutions() {
		if strings.EqualFold(strings.TrimSpace(s), phrase) {
			return true
		}
	}
	return false
}

func (r *Room) Solved() bool {
	return r.store.Bool("solved")
}

// HiddenFound returns whether the room's hidden feature has been found.
func (r *Room) HiddenFound() bool {
	return r.store.Text("hidden_state") == HiddenFound
}

// HasHidden returns whether the room has a hidden feature left to find.
func (r *Room) HasHidden() bool {
	return r.store.Has("hidden") && !r.HiddenFound()
}
