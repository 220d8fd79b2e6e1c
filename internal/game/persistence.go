package game

import (
	"fmt"
	"sort"

	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/fields"
)

// EntityKind is a directory of entities a Loader can read from.
type EntityKind int

const (
	EntityRoom EntityKind = iota
	EntityItem
	EntityMonster
)

func (k EntityKind) String() string {
	switch k {
	case EntityRoom:
		return "room"
	case EntityItem:
		return "item"
	case EntityMonster:
		return "monster"
	default:
		return fmt.Sprintf("EntityKind(%d)", int(k))
	}
}

// Loader reads entity definitions from wherever they are kept.
type Loader interface {
	// IDs returns the id of every entity of the given kind that the Loader
	// has a definition for.
	IDs(kind EntityKind) []string

	// Load returns the fields of the entity with the given kind and id. If
	// the definition is missing or malformed, the returned error matches
	// dqerrors.ErrLoad.
	Load(kind EntityKind, id string) (fields.Bag, error)
}

// StaticLoader is a Loader backed by definitions already in memory.
type StaticLoader map[EntityKind]map[string]fields.Bag

func (sl StaticLoader) IDs(kind EntityKind) []string {
	ids := make([]string, 0, len(sl[kind]))
	for id := range sl[kind] {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (sl StaticLoader) Load(kind EntityKind, id string) (fields.Bag, error) {
	bag, ok := sl[kind][id]
	if !ok {
		return nil, dqerrors.New(dqerrors.ErrLoad, "", fmt.Sprintf("no %s definition for %q", kind, id))
	}
	return bag, nil
}

// snapshots holds the encoded initial state of every entity so the world can
// be put back the way it was loaded.
type snapshots map[string][]byte

func snapshotKey(kind string, id string) string {
	return kind + ":" + id
}

func (s snapshots) save(kind string, e Entity) error {
	data, err := e.Fields().MarshalBinary()
	if err != nil {
		return fmt.Errorf("snapshot %s %q: %w", kind, e.ID(), err)
	}
	s[snapshotKey(kind, e.ID())] = data
	return nil
}

func (s snapshots) restore(kind string, e Entity) error {
	data, ok := s[snapshotKey(kind, e.ID())]
	if !ok {
		return fmt.Errorf("no snapshot for %s %q", kind, e.ID())
	}
	if err := e.Fields().UnmarshalBinary(data); err != nil {
		return fmt.Errorf("restore %s %q: %w", kind, e.ID(), err)
	}
	return nil
}
