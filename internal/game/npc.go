package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/delveq/internal/fields"
)

// Monster is a non-player character: anything from a talkative wizard to a
// goblin that wants the player dead.
type Monster struct {
	id    string
	store *fields.Store
}

// NewMonster creates a Monster with the given id and fields.
func NewMonster(id string, bag fields.Bag) *Monster {
	return &Monster{id: id, store: fields.NewStore(bag)}
}

func (m *Monster) ID() string {
	return m.id
}

func (m *Monster) Fields() *fields.Store {
	return m.store
}

func (m *Monster) Name() string {
	if n := m.store.Text("name"); n != "" {
		return n
	}
	return m.id
}

// Matches returns whether phrase names this monster.
func (m *Monster) Matches(phrase string) bool {
	phrase = strings.ToLower(phrase)
	return phrase == strings.ToLower(m.id) || phrase == strings.ToLower(m.Name())
}

// Is returns whether the monster has the given attribute tag, such as
// "talkative" or "blocker".
func (m *Monster) Is(attr string) bool {
	return m.store.Contains("attributes", attr)
}

func (m *Monster) Describe() string {
	if d := m.store.Text("description"); d != "" {
		return d
	}
	return fmt.Sprintf("The %s looks back at you.", m.Name())
}

func (m *Monster) AC() int {
	return m.store.Int("AC")
}

func (m *Monster) HP() int {
	return m.store.Int("HP")
}

// Wound reduces the monster's HP by dmg, never going below zero. It returns
// whether the monster died.
func (m *Monster) Wound(dmg int) bool {
	hp := m.HP() - dmg
	if hp < 0 {
		hp = 0
	}
	m.store.SetInt("HP", hp)
	return hp <= 0
}

func (m *Monster) Alive() bool {
	return m.HP() > 0
}

func (m *Monster) ToHit() int {
	return m.store.Int("to_hit")
}

func (m *Monster) Damage() int {
	return m.store.Int("damage")
}

// DialogRef returns the id of the dialog set the monster speaks from.
func (m *Monster) DialogRef() string {
	if r := m.store.Text("responses"); r != "" {
		return r
	}
	return m.id
}

// Blocks returns whether the monster stops the player from leaving in the
// given direction.
func (m *Monster) Blocks(dir string) bool {
	return m.Is("blocker") && m.store.Contains("block_direction", dir)
}

func (m *Monster) BlockText() string {
	if t := m.store.Text("block_text"); t != "" {
		return t
	}
	return fmt.Sprintf("The %s won't let you pass.", m.Name())
}

// Corpse returns the id of the item left behind when the monster dies, or ""
// if it leaves none.
func (m *Monster) Corpse() string {
	return m.store.Text("corpse")
}

// Drops returns the ids of the items the monster leaves on the floor when it
// dies.
func (m *Monster) Drops() []string {
	return m.store.List("drops")
}

func (m *Monster) DeathText() string {
	return m.store.Text("death_text")
}

func (m *Monster) HitText() string {
	if t := m.store.Text("hit_text"); t != "" {
		return t
	}
	return fmt.Sprintf("The %s hits you!", m.Name())
}

func (m *Monster) MissText() string {
	if t := m.store.Text("miss_text"); t != "" {
		return t
	}
	return fmt.Sprintf("The %s misses you.", m.Name())
}
