package game

import "github.com/dekarrin/delveq/internal/fields"

// Entity is any addressable thing in the world: rooms, items, monsters and
// the player. All of an entity's state is held in its field store.
type Entity interface {
	// ID returns the stable key of the entity.
	ID() string

	// Name returns the display name of the entity.
	Name() string

	// Fields returns the entity's field store.
	Fields() *fields.Store
}

// Openable is something that can be opened and closed.
type Openable interface {
	Entity

	// IsOpen returns whether the thing is currently open.
	IsOpen() bool

	// Open opens the thing and returns the narration of doing so. Opening an
	// open thing describes it again. A locked thing cannot be opened.
	Open() (string, error)

	// Close closes the thing. Closing a closed thing is an invalid transition.
	Close() (string, error)
}

// Lockable is something that can be locked and unlocked with a key.
type Lockable interface {
	Openable

	// IsLocked returns whether the thing is currently locked.
	IsLocked() bool

	// KeyID returns the id of the item that locks and unlocks it, or "" if any
	// attempt works.
	KeyID() string

	// Lock locks the thing. Locking a locked thing is an invalid transition.
	Lock() (string, error)

	// Unlock unlocks the thing. Unlocking an unlocked thing is an invalid
	// transition.
	Unlock() (string, error)
}

// Holder is something that has other items inside of it.
type Holder interface {
	Entity

	// Contents returns the ids of the items inside, in order.
	Contents() []string

	// Holds returns whether the item with the given id is inside.
	Holds(id string) bool

	// Put places an item inside.
	Put(id string)

	// Release removes an item from inside. It returns false if the item was
	// not there.
	Release(id string) bool
}

// Drawable is something that items can be drawn from at random until it runs
// out.
type Drawable interface {
	Entity

	// Remaining returns the number of draws left.
	Remaining() int

	// Draw removes one random item. If there are none left, ok is false and the
	// count is unchanged.
	Draw(choose func(options []string) string) (id string, ok bool)

	// Return gives back an item that was drawn. It returns false if the item is
	// not something that could have come from here.
	Return(id string) bool
}

// Wieldable is something that can be attacked with.
type Wieldable interface {
	Entity

	// ToHit returns the modifier added to attack rolls.
	ToHit() int

	// Damage returns the damage dealt on a hit.
	Damage() int

	// HitText, MissText and CritText return narration for attack outcomes.
	// Each may be empty.
	HitText() string
	MissText() string
	CritText() string
}

// AsOpenable returns the item as an Openable if its kind can be opened.
func AsOpenable(it *Item) (Openable, bool) {
	switch it.Kind() {
	case KindDoor:
		return Door{it}, true
	case KindContainer, KindLockbox:
		return Container{it}, true
	}
	return nil, false
}

// AsLockable returns the item as a Lockable if its kind can be locked.
func AsLockable(it *Item) (Lockable, bool) {
	switch it.Kind() {
	case KindDoor:
		return Door{it}, true
	case KindLockbox:
		return Container{it}, true
	}
	return nil, false
}

// AsHolder returns the item as a Holder if its kind holds other items.
func AsHolder(it *Item) (Holder, bool) {
	switch it.Kind() {
	case KindContainer, KindLockbox:
		return Container{it}, true
	}
	return nil, false
}

// AsDrawable returns the item as a Drawable if it is a pile.
func AsDrawable(it *Item) (Drawable, bool) {
	if it.Kind() == KindPile {
		return Pile{it}, true
	}
	return nil, false
}

// AsWieldable returns the item as a Wieldable if it is a weapon.
func AsWieldable(it *Item) (Wieldable, bool) {
	if it.Kind() == KindWeapon {
		return Weapon{it}, true
	}
	return nil, false
}
