package game

import (
	"github.com/dekarrin/delveq/internal/objscript"
)

// scriptBackend is the view of the World given to the script interpreter.
type scriptBackend struct {
	w *World
}

func (sb scriptBackend) Player() objscript.Target {
	return sb.w.player
}

func (sb scriptBackend) CurrentRoom() objscript.Target {
	r := sb.w.CurrentRoom()
	if r == nil {
		// a nil *Room in the interface would not compare equal to nil
		return nil
	}
	return r
}

// Lookup finds an entity by id, checking monsters first, then rooms, then
// items.
func (sb scriptBackend) Lookup(id string) (objscript.Target, bool) {
	if id == PlayerID {
		return sb.w.player, true
	}
	if m, ok := sb.w.monsters[id]; ok {
		return m, true
	}
	if r, ok := sb.w.rooms[id]; ok {
		return r, true
	}
	if it, ok := sb.w.items[id]; ok {
		return it, true
	}
	return nil, false
}

// Open opens t if it is an item that can be opened.
func (sb scriptBackend) Open(t objscript.Target) (string, bool) {
	it, ok := t.(*Item)
	if !ok {
		return "", false
	}
	o, ok := AsOpenable(it)
	if !ok {
		return "", false
	}
	msg, err := o.Open()
	if err != nil {
		return errorText(err), true
	}
	return msg, true
}
