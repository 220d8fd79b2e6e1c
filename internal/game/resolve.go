package game

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/util"
)

// Location is where a resolved noun was found.
type Location int

const (
	NotFound Location = iota
	InInventory
	InCarried
	OnFloor
	InRoomContainer
	AtNPC
	AtDoor
	InScenery
)

func (loc Location) String() string {
	switch loc {
	case InInventory:
		return "inventory"
	case InCarried:
		return "carried container"
	case OnFloor:
		return "floor"
	case InRoomContainer:
		return "room container"
	case AtNPC:
		return "npc"
	case AtDoor:
		return "door"
	case InScenery:
		return "scenery"
	default:
		return "not found"
	}
}

// Held returns whether the location is somewhere on the player.
func (loc Location) Held() bool {
	return loc == InInventory || loc == InCarried
}

// Resolution is what a noun phrase refers to.
type Resolution struct {
	// ID is the id of the entity. For scenery, it is the phrase itself.
	ID string

	Where Location

	// Container is the id of the holder the entity is in, for InCarried and
	// InRoomContainer.
	Container string
}

// Resolve finds what the noun phrase refers to from where the player is
// standing. The places searched, first match winning, are: the player's
// inventory, the containers they carry, the room floor, open containers on the
// floor, the monsters in the room, and the room's doors. After that, a partial
// match against the held items and then the room's items is tried, and then
// the singular of a plural phrase. If all of that fails, a phrase that
// appears in the room's description resolves as scenery. In a dark room only
// what the player carries can be found.
//
// If the phrase matches more than one held item, or is "door" in a room with
// several doors, the returned error matches dqerrors.ErrAmbiguous. If nothing
// matches, it matches dqerrors.ErrNotFound.
func (w *World) Resolve(phrase string) (Resolution, error) {
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	if phrase == "" {
		return Resolution{}, dqerrors.New(dqerrors.ErrBadArgs, "What are you referring to?", "resolve empty phrase")
	}

	res, err := w.resolveExact(phrase)
	if err != nil || res.Where != NotFound {
		return res, err
	}

	res, err = w.resolvePartial(phrase)
	if err != nil || res.Where != NotFound {
		return res, err
	}

	if singular, ok := util.Singular(phrase); ok {
		res, err := w.Resolve(singular)
		if err == nil || !errors.Is(err, dqerrors.ErrNotFound) {
			return res, err
		}
	}

	if room := w.CurrentRoom(); room != nil && w.canSee(room) {
		desc := strings.ToLower(room.Fields().Text("long_description") + " " + room.Fields().Text("short_description"))
		if strings.Contains(desc, phrase) {
			return Resolution{ID: phrase, Where: InScenery}, nil
		}
	}

	return Resolution{}, dqerrors.Newf(dqerrors.ErrNotFound, "You don't see %s here.", util.WithArticle(phrase))
}

func (w *World) resolveExact(phrase string) (Resolution, error) {
	room := w.CurrentRoom()

	for _, id := range w.player.Inventory() {
		if w.itemMatches(id, phrase) {
			return Resolution{ID: id, Where: InInventory}, nil
		}
	}
	for _, cid := range w.player.Containers() {
		for _, id := range w.holderContents(cid) {
			if w.itemMatches(id, phrase) {
				return Resolution{ID: id, Where: InCarried, Container: cid}, nil
			}
		}
	}

	// nothing in a dark room can be found, only what the player carries
	if room == nil || !w.canSee(room) {
		return Resolution{}, nil
	}

	for _, id := range room.Items() {
		if w.itemMatches(id, phrase) {
			return Resolution{ID: id, Where: OnFloor}, nil
		}
	}
	for _, cid := range room.Items() {
		if !w.isOpenHolder(cid) {
			continue
		}
		for _, id := range w.holderContents(cid) {
			if w.itemMatches(id, phrase) {
				return Resolution{ID: id, Where: InRoomContainer, Container: cid}, nil
			}
		}
	}
	for _, id := range room.NPCs() {
		if m, ok := w.monsters[id]; ok && m.Matches(phrase) || id == phrase {
			return Resolution{ID: id, Where: AtNPC}, nil
		}
	}

	doors := room.Doors()
	for _, id := range doors {
		if w.itemMatches(id, phrase) {
			return Resolution{ID: id, Where: AtDoor}, nil
		}
	}
	if phrase == "door" && len(doors) > 0 {
		if len(doors) == 1 {
			return Resolution{ID: doors[0], Where: AtDoor}, nil
		}
		return Resolution{}, dqerrors.New(
			dqerrors.ErrAmbiguous,
			fmt.Sprintf("Which door do you mean? There's %s.", util.MakeTextList(w.itemNames(doors), true)),
			fmt.Sprintf("%q matches %d doors", phrase, len(doors)),
		)
	}

	return Resolution{}, nil
}

// resolvePartial matches the phrase as a part of item names: first the items
// the player holds, then the items in the room.
func (w *World) resolvePartial(phrase string) (Resolution, error) {
	var held []Resolution
	for _, id := range w.player.Inventory() {
		held = append(held, Resolution{ID: id, Where: InInventory})
	}
	for _, cid := range w.player.Containers() {
		for _, id := range w.holderContents(cid) {
			held = append(held, Resolution{ID: id, Where: InCarried, Container: cid})
		}
	}
	if res, err := w.pickPartial(phrase, held, "have"); err != nil || res.Where != NotFound {
		return res, err
	}

	room := w.CurrentRoom()
	if room == nil || !w.canSee(room) {
		return Resolution{}, nil
	}
	var here []Resolution
	for _, id := range room.Items() {
		here = append(here, Resolution{ID: id, Where: OnFloor})
	}
	for _, cid := range room.Items() {
		if !w.isOpenHolder(cid) {
			continue
		}
		for _, id := range w.holderContents(cid) {
			here = append(here, Resolution{ID: id, Where: InRoomContainer, Container: cid})
		}
	}
	return w.pickPartial(phrase, here, "see")
}

func (w *World) pickPartial(phrase string, candidates []Resolution, verb string) (Resolution, error) {
	var hits []Resolution
	for _, c := range candidates {
		name := strings.ToLower(w.itemName(c.ID))
		if strings.Contains(strings.ToLower(c.ID), phrase) || strings.Contains(name, phrase) {
			hits = append(hits, c)
		}
	}
	switch len(hits) {
	case 0:
		return Resolution{}, nil
	case 1:
		return hits[0], nil
	}

	names := make([]string, len(hits))
	for i := range hits {
		names[i] = w.itemName(hits[i].ID)
	}
	return Resolution{}, dqerrors.New(
		dqerrors.ErrAmbiguous,
		fmt.Sprintf("Which one? You %s %s.", verb, util.MakeTextList(names, true)),
		fmt.Sprintf("%q partially matches %d items", phrase, len(hits)),
	)
}

func (w *World) itemMatches(id, phrase string) bool {
	if it, ok := w.items[id]; ok {
		return it.Matches(phrase)
	}
	return strings.EqualFold(id, phrase)
}

func (w *World) holderContents(id string) []string {
	it, ok := w.items[id]
	if !ok {
		return nil
	}
	h, ok := AsHolder(it)
	if !ok {
		return nil
	}
	return h.Contents()
}

func (w *World) isOpenHolder(id string) bool {
	it, ok := w.items[id]
	if !ok {
		return false
	}
	if _, ok := AsHolder(it); !ok {
		return false
	}
	o, ok := AsOpenable(it)
	return ok && o.IsOpen()
}

// take removes a resolved item from wherever it is. It returns false if the
// item was not somewhere it could be removed from.
func (w *World) take(res Resolution) bool {
	switch res.Where {
	case InInventory:
		return w.player.Drop(res.ID)
	case InCarried, InRoomContainer:
		it, ok := w.items[res.Container]
		if !ok {
			return false
		}
		h, ok := AsHolder(it)
		return ok && h.Release(res.ID)
	case OnFloor:
		return w.CurrentRoom().RemoveItem(res.ID)
	}
	return false
}
