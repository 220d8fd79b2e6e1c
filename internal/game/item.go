package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/util"
)

// ItemKind is the behavioral variant of an Item. It decides which capability
// interfaces the item satisfies.
type ItemKind int

const (
	KindPlain ItemKind = iota
	KindDoor
	KindWeapon
	KindPile
	KindContainer
	KindLockbox
)

func (k ItemKind) String() string {
	switch k {
	case KindDoor:
		return "door"
	case KindWeapon:
		return "weapon"
	case KindPile:
		return "pile"
	case KindContainer:
		return "container"
	case KindLockbox:
		return "lockbox"
	default:
		return "item"
	}
}

// ParseItemKind returns the ItemKind named by s. Unknown names are plain
// items. The plural "containers" is accepted as an alias of "container".
func ParseItemKind(s string) ItemKind {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "door":
		return KindDoor
	case "weapon":
		return KindWeapon
	case "pile":
		return KindPile
	case "container", "containers":
		return KindContainer
	case "lockbox":
		return KindLockbox
	default:
		return KindPlain
	}
}

// DefaultPileContents is what a pile holds if its definition lists nothing.
var DefaultPileContents = []string{"rock"}

// Item is a thing in the world that is not a room or a monster. Doors,
// weapons, piles, and containers are all Items whose Kind grants them extra
// capabilities.
type Item struct {
	id    string
	store *fields.Store
}

// NewItem creates an Item with the given id and fields.
func NewItem(id string, bag fields.Bag) *Item {
	return &Item{id: id, store: fields.NewStore(bag)}
}

func (it *Item) ID() string {
	return it.id
}

func (it *Item) Fields() *fields.Store {
	return it.store
}

// Name returns the display name of the item, which is its id unless a name
// field says otherwise.
func (it *Item) Name() string {
	if n := it.store.Text("name"); n != "" {
		return n
	}
	return it.id
}

// Kind returns the behavioral kind of the item.
func (it *Item) Kind() ItemKind {
	return ParseItemKind(it.store.Text("kind"))
}

// Is returns whether the item has the given attribute tag.
func (it *Item) Is(attr string) bool {
	return it.store.Contains("attributes", attr)
}

// Matches returns whether phrase names this item.
func (it *Item) Matches(phrase string) bool {
	phrase = strings.ToLower(phrase)
	return phrase == strings.ToLower(it.id) || phrase == strings.ToLower(it.Name())
}

// Immovable returns whether the item can never be picked up.
func (it *Item) Immovable() bool {
	k := it.Kind()
	return k == KindDoor || k == KindPile || it.Is("immovable") || it.Is("scenery")
}

// Describe returns the text shown when the item is examined.
func (it *Item) Describe() string {
	desc := it.store.Text("description")
	if desc == "" {
		desc = fmt.Sprintf("It's %s. Nothing about it stands out.", util.WithArticle(it.Name()))
	}
	if extra := it.store.Text("describe_text"); extra != "" {
		desc += " " + extra
	}
	if c, ok := AsHolder(it); ok {
		if o, ok := AsOpenable(it); ok && o.IsOpen() {
			desc += "\n" + spill(c)
		}
	}
	return desc
}

// spill lists the contents of an open holder.
func spill(h Holder) string {
	contents := h.Contents()
	if len(contents) == 0 {
		return fmt.Sprintf("The %s is empty.", h.Name())
	}
	return fmt.Sprintf("Inside it you find %s.", util.MakeTextList(contents, true))
}

// Door is the Openable and Lockable view of a door item.
type Door struct {
	*Item
}

func (d Door) IsOpen() bool {
	return d.store.Bool("open")
}

func (d Door) IsLocked() bool {
	return d.store.Bool("locked")
}

func (d Door) KeyID() string {
	return d.store.Text("unlock_key")
}

func (d Door) Open() (string, error) {
	if d.IsOpen() {
		return fmt.Sprintf("The %s is already open.", d.Name()), nil
	}
	if d.IsLocked() {
		return "", dqerrors.New(dqerrors.ErrInvalidTransition, "You can't open it. It's locked!", fmt.Sprintf("open on locked door %q", d.id))
	}
	d.store.SetBool("open", true)
	return fmt.Sprintf("You open the %s.", d.Name()), nil
}

func (d Door) Close() (string, error) {
	if !d.IsOpen() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s is already closed.", d.Name())
	}
	d.store.SetBool("open", false)
	return fmt.Sprintf("You close the %s.", d.Name()), nil
}

func (d Door) Lock() (string, error) {
	if d.IsLocked() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s was already locked.", d.Name())
	}
	if d.IsOpen() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You'll need to close the %s first.", d.Name())
	}
	d.store.SetBool("locked", true)
	return fmt.Sprintf("The %s is now locked.", d.Name()), nil
}

func (d Door) Unlock() (string, error) {
	if !d.IsLocked() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s wasn't locked.", d.Name())
	}
	d.store.SetBool("locked", false)
	if msg := d.store.Text("msg_unlock"); msg != "" {
		return msg, nil
	}
	return fmt.Sprintf("The %s is now unlocked.", d.Name()), nil
}

// Container is the view of a container or lockbox item. Plain containers are
// never locked.
type Container struct {
	*Item
}

func (c Container) IsOpen() bool {
	return c.store.Bool("open")
}

func (c Container) IsLocked() bool {
	return c.Kind() == KindLockbox && c.store.Bool("locked")
}

func (c Container) KeyID() string {
	return c.store.Text("unlock_key")
}

// IsTrapped returns whether unlocking the container springs a trap.
func (c Container) IsTrapped() bool {
	return c.Kind() == KindLockbox && c.store.Bool("trapped")
}

func (c Container) Contents() []string {
	return c.store.List("contents")
}

func (c Container) Holds(id string) bool {
	return c.store.Contains("contents", id)
}

func (c Container) Put(id string) {
	// contents is created as a list if absent, so this cannot mismatch unless
	// the definition gave contents some other kind
	if err := c.store.Append("contents", id); err != nil {
		c.store.SetList("contents", append(c.Contents(), id))
	}
}

func (c Container) Release(id string) bool {
	ok, _ := c.store.Remove("contents", id)
	return ok
}

// Open opens the container and lists what is inside. Opening an open
// container describes it again rather than listing its contents twice.
func (c Container) Open() (string, error) {
	if c.IsOpen() {
		return c.Describe(), nil
	}
	if c.IsLocked() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s is locked. There must be some way to unlock it.", c.Name())
	}
	c.store.SetBool("open", true)

	var opening string
	if c.Is("corpse") {
		opening = fmt.Sprintf("It's gruesome work, but you carve open the %s.", c.Name())
	} else {
		opening = fmt.Sprintf("You open the %s.", c.Name())
	}
	return opening + "\n" + spill(c), nil
}

func (c Container) Close() (string, error) {
	if !c.IsOpen() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s is already closed.", c.Name())
	}
	c.store.SetBool("open", false)
	return fmt.Sprintf("You close the %s.", c.Name()), nil
}

func (c Container) Lock() (string, error) {
	if c.IsLocked() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s was already locked.", c.Name())
	}
	if c.IsOpen() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You'll need to close the %s first.", c.Name())
	}
	c.store.SetBool("locked", true)
	return fmt.Sprintf("The %s is now locked.", c.Name()), nil
}

// Unlock unlocks a lockbox. If the lockbox is trapped, the trap is sprung and
// disarmed; the narration says so but any trap_script is left for the caller
// to run.
func (c Container) Unlock() (string, error) {
	if !c.IsLocked() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s wasn't locked.", c.Name())
	}
	c.store.SetBool("locked", false)

	msg := c.store.Text("msg_unlock")
	if msg == "" {
		msg = fmt.Sprintf("The %s is now unlocked.", c.Name())
	}
	if c.IsTrapped() {
		c.store.SetBool("trapped", false)
		trap := "It was trapped!"
		if effect := c.store.Text("trap_effect"); effect != "" {
			trap += " " + effect
		}
		msg += "\n" + trap
	}
	return msg, nil
}

// Pile is the Drawable view of a pile item, such as a heap of rocks that
// items can be taken from until it runs out.
type Pile struct {
	*Item
}

func (p Pile) Remaining() int {
	return p.store.Int("count")
}

func (p Pile) options() []string {
	opts := p.store.List("contents")
	if len(opts) == 0 {
		opts = DefaultPileContents
	}
	return opts
}

// Draw takes one item from the pile, with choose picking which of the
// possible contents it is.
func (p Pile) Draw(choose func(options []string) string) (string, bool) {
	n := p.Remaining()
	if n <= 0 {
		return "", false
	}
	id := choose(p.options())
	if id == "" {
		return "", false
	}
	p.store.SetInt("count", n-1)
	return id, true
}

func (p Pile) Return(id string) bool {
	if !util.InSlice(id, p.options()) {
		return false
	}
	p.store.SetInt("count", p.Remaining()+1)
	return true
}

// Weapon is the Wieldable view of a weapon item.
type Weapon struct {
	*Item
}

func (w Weapon) ToHit() int {
	return w.store.Int("to_hit")
}

// Damage returns the weapon's damage. A weapon defined without damage deals
// 1.
func (w Weapon) Damage() int {
	if !w.store.Has("damage") {
		return 1
	}
	return w.store.Int("damage")
}

func (w Weapon) HitText() string {
	return w.store.Text("hit_text")
}

func (w Weapon) MissText() string {
	return w.store.Text("miss_text")
}

func (w Weapon) CritText() string {
	return w.store.Text("crit_text")
}

// bareHands is used when the player attacks with a fist or foot that the
// world does not define as a weapon.
type bareHands struct {
	*Item
}

func (b bareHands) ToHit() int       { return 0 }
func (b bareHands) Damage() int      { return 1 }
func (b bareHands) HitText() string  { return "" }
func (b bareHands) MissText() string { return "" }
func (b bareHands) CritText() string { return "" }
