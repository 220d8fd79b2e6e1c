package game

import (
	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/util"
)

const (
	// PlayerID is the id the player entity is known by in scripts.
	PlayerID = "player"

	// NoLight is the value of the light field when nothing is lit.
	NoLight = "none"

	// Fist and Foot are the weapons used when the player has nothing else, or
	// when they punch or kick.
	Fist = "fist"
	Foot = "foot"
)

// Player is the player character. Like every other entity its state lives in
// a field store so scripts can reach it.
type Player struct {
	store *fields.Store
}

// NewPlayer creates a Player starting in the given room with the given stats.
func NewPlayer(start string, hp, ac int, weapon string) *Player {
	if weapon == "" {
		weapon = Fist
	}
	return &Player{store: fields.NewStore(fields.Bag{
		"name":       fields.Str("Player"),
		"inventory":  fields.List(),
		"containers": fields.List(),
		"room":       fields.Str(start),
		"HP":         fields.Int(hp),
		"max_HP":     fields.Int(hp),
		"AC":         fields.Int(ac),
		"weapon":     fields.Str(weapon),
		"light":      fields.Str(NoLight),
	})}
}

func (p *Player) ID() string {
	return PlayerID
}

func (p *Player) Name() string {
	return p.store.Text("name")
}

func (p *Player) Fields() *fields.Store {
	return p.store
}

// Room returns the id of the room the player is in.
func (p *Player) Room() string {
	return p.store.Text("room")
}

func (p *Player) MoveTo(room string) {
	p.store.SetText("room", room)
}

func (p *Player) HP() int {
	return p.store.Int("HP")
}

func (p *Player) MaxHP() int {
	return p.store.Int("max_HP")
}

func (p *Player) AC() int {
	return p.store.Int("AC")
}

// Hurt reduces the player's HP by dmg. It returns whether the player died.
func (p *Player) Hurt(dmg int) bool {
	hp := p.HP() - dmg
	p.store.SetInt("HP", hp)
	return hp <= 0
}

// Weapon returns the id of the equipped weapon.
func (p *Player) Weapon() string {
	if w := p.store.Text("weapon"); w != "" {
		return w
	}
	return Fist
}

// Light returns the id of the lit light source, or NoLight.
func (p *Player) Light() string {
	if l := p.store.Text("light"); l != "" {
		return l
	}
	return NoLight
}

// HasLight returns whether the player carries a light source. It may not be
// lit.
func (p *Player) HasLight() bool {
	return p.Light() != NoLight
}

func (p *Player) SetLight(id string) {
	p.store.SetText("light", id)
}

// Inventory returns the ids of the items the player holds directly, in the
// order they were picked up.
func (p *Player) Inventory() []string {
	return p.store.List("inventory")
}

// Containers returns the ids of the held items that can hold other items.
func (p *Player) Containers() []string {
	return p.store.List("containers")
}

// Has returns whether the item is directly in the player's inventory.
func (p *Player) Has(id string) bool {
	return p.store.Contains("inventory", id)
}

// Take puts an item in the player's inventory. Weapons are wielded if the
// player has nothing better than their fists, light sources become the one
// the player carries, and holders are tracked so their contents are in
// reach.
func (p *Player) Take(it *Item) {
	p.appendTo("inventory", it.ID())
	if it.Kind() == KindWeapon && p.Weapon() == Fist {
		p.store.SetText("weapon", it.ID())
	}
	if it.Is("lightable") || it.Is("light") {
		p.SetLight(it.ID())
	}
	if _, ok := AsHolder(it); ok {
		p.appendTo("containers", it.ID())
	}
}

// Drop removes an item from the player's inventory. Anything it was equipped
// as is unequipped. It returns false if the player did not have it.
func (p *Player) Drop(id string) bool {
	ok, _ := p.store.Remove("inventory", id)
	if !ok {
		return false
	}
	_, _ = p.store.Remove("containers", id)
	if p.Weapon() == id {
		p.store.SetText("weapon", Fist)
	}
	if p.Light() == id {
		p.SetLight(NoLight)
	}
	return true
}

func (p *Player) appendTo(field, id string) {
	if util.InSlice(id, p.store.List(field)) {
		return
	}
	if err := p.store.Append(field, id); err != nil {
		p.store.SetList(field, append(p.store.List(field), id))
	}
}
