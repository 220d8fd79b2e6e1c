package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/narration"
	"github.com/dekarrin/delveq/internal/util"
)

func (w *World) executeGo(cmd command.Command) (string, error) {
	dir := cmd.Recipient
	if dir == "" {
		return "", dqerrors.New(dqerrors.ErrBadArgs, "Where do you want to go?", "go with no direction")
	}
	if exp, ok := command.VerbAliases[dir]; ok && strings.HasPrefix(exp, "go ") {
		dir = strings.TrimPrefix(exp, "go ")
	}

	room := w.CurrentRoom()
	dest, ok := room.Exits(!w.canSee(room))[dir]
	if !ok {
		return "", dqerrors.New(dqerrors.ErrInvalidTransition, "You can't go that way.", fmt.Sprintf("no exit %q from %q", dir, room.ID()))
	}

	var buf narration.Buffer
	for _, id := range room.NPCs() {
		m, ok := w.monsters[id]
		if !ok || !m.Alive() || !m.Is("blocker") {
			continue
		}
		if m.Blocks(dir) {
			return m.BlockText(), nil
		}
		buf.Addf("The %s ignores your cowardly retreat.", m.Name())
		break
	}

	if _, ok := w.rooms[dest]; !ok {
		return "", dqerrors.New(dqerrors.ErrLoad, "Something blocks the way.", fmt.Sprintf("exit %q from %q leads to undefined room %q", dir, room.ID(), dest))
	}

	w.player.MoveTo(dest)
	buf.Read(w.describeRoom(false, true))
	return buf.Send(), nil
}

func (w *World) executeTake(cmd command.Command) (string, error) {
	target := cmd.Recipient
	if target == "" {
		return "", missingArg("take")
	}
	if cmd.Instrument != "" {
		return w.takeFrom(target, cmd.Instrument)
	}

	if target == "all" || target == "everything" {
		return w.takeAll()
	}

	res, err := w.Resolve(target)
	if err != nil {
		if pile, ok := w.findPile(target); ok {
			return w.drawFrom(pile)
		}
		return "", err
	}
	return w.takeResolved(res)
}

func (w *World) takeResolved(res Resolution) (string, error) {
	switch res.Where {
	case InInventory, InCarried:
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You already have the %s.", w.itemName(res.ID))
	case AtNPC:
		m := w.monsters[res.ID]
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s wouldn't appreciate that.", m.Name())
	case InScenery, AtDoor:
		return "", dqerrors.New(dqerrors.ErrInvalidTransition, "You can't take that.", fmt.Sprintf("take on %s", res.Where))
	}

	it, ok := w.items[res.ID]
	if !ok {
		return "", dqerrors.New(dqerrors.ErrNotFound, "You can't take that.", fmt.Sprintf("take on undefined item %q", res.ID))
	}
	if p, ok := AsDrawable(it); ok {
		return w.drawFrom(p)
	}
	if it.Is("corpse") {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You sicko. Why are you tampering with the %s? Let the poor thing rest in peace.", it.Name())
	}
	if it.Is("locked") {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "Try as you might, you just can't get the %s free.", it.Name())
	}
	if it.Immovable() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You can't seem to move it. The %s isn't going anywhere.", it.Name())
	}

	var buf narration.Buffer
	room := w.CurrentRoom()
	buf.Read(w.exec(room.Fields().Text("on_take_"+strings.ReplaceAll(it.ID(), " ", "_")), room))

	w.take(res)
	w.player.Take(it)
	if res.Where == InRoomContainer {
		buf.Addf("You take the %s from the %s.", it.Name(), w.itemName(res.Container))
	} else {
		buf.Addf("You pick up the %s.", it.Name())
	}
	return buf.Send(), nil
}

func (w *World) takeAll() (string, error) {
	room := w.CurrentRoom()
	if !w.canSee(room) {
		return "", dqerrors.New(dqerrors.ErrInvalidTransition, "You feel around in the dark but can't find anything to pick up.", "take all in the dark")
	}
	var targets []Resolution
	for _, id := range room.Items() {
		targets = append(targets, Resolution{ID: id, Where: OnFloor})
		if w.isOpenHolder(id) {
			for _, inner := range w.holderContents(id) {
				targets = append(targets, Resolution{ID: inner, Where: InRoomContainer, Container: id})
			}
		}
	}
	if len(targets) == 0 {
		return "There's nothing to pick up here.", nil
	}

	var buf narration.Buffer
	for _, res := range targets {
		if it, ok := w.items[res.ID]; ok {
			if _, isPile := AsDrawable(it); isPile || it.Is("corpse") || it.Immovable() {
				continue
			}
		}
		out, err := w.takeResolved(res)
		buf.Read(out)
		if err != nil {
			buf.Read(errorText(err))
		}
	}
	if buf.Len() == 0 {
		return "There's nothing here you can carry.", nil
	}
	return buf.Send(), nil
}

func (w *World) takeFrom(target, source string) (string, error) {
	src, srcRes, err := w.resolveItem(source, "take from")
	if err != nil {
		return "", err
	}
	if p, ok := AsDrawable(src); ok {
		return w.drawFrom(p)
	}
	h, ok := AsHolder(src)
	if !ok {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You can't take anything from the %s.", src.Name())
	}
	if o, _ := AsOpenable(src); !o.IsOpen() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s is closed.", src.Name())
	}

	for _, id := range h.Contents() {
		if !w.itemMatches(id, target) {
			continue
		}
		where := InRoomContainer
		if srcRes.Where.Held() {
			where = InCarried
		}
		return w.takeResolved(Resolution{ID: id, Where: where, Container: src.ID()})
	}
	return "", dqerrors.Newf(dqerrors.ErrNotFound, "There's no %s in the %s.", target, src.Name())
}

// findPile returns a pile in the room that the phrase names, either by
// mentioning "pile" or by naming something the pile holds.
func (w *World) findPile(phrase string) (Drawable, bool) {
	room := w.CurrentRoom()
	if !w.canSee(room) {
		return nil, false
	}
	singular, _ := util.Singular(phrase)
	for _, id := range room.Items() {
		it, ok := w.items[id]
		if !ok {
			continue
		}
		p, ok := AsDrawable(it)
		if !ok {
			continue
		}
		contents := Pile{it}.options()
		if strings.Contains(phrase, "pile") || util.InSlice(phrase, contents) || util.InSlice(singular, contents) {
			return p, true
		}
	}
	return nil, false
}

func (w *World) drawFrom(p Drawable) (string, error) {
	id, ok := p.Draw(w.dice.Choose)
	if !ok {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "There's nothing left in the %s.", p.Name())
	}
	if w.player.Has(id) {
		p.Return(id)
		return fmt.Sprintf("You already have %s. You decide not to be greedy.", util.WithArticle(w.itemName(id))), nil
	}
	it, ok := w.items[id]
	if !ok {
		it = NewItem(id, defaultBag(EntityItem, id))
		w.items[id] = it
	}
	w.player.Take(it)
	return fmt.Sprintf("You take %s from the %s.", util.WithArticle(it.Name()), p.Name()), nil
}

func (w *World) executeDrop(cmd command.Command) (string, error) {
	target := cmd.Recipient
	if target == "" {
		return "", missingArg("drop")
	}

	if target == "all" || target == "everything" {
		inv := w.player.Inventory()
		if len(inv) == 0 {
			return "You don't have anything to drop.", nil
		}
		var buf narration.Buffer
		for _, id := range inv {
			buf.Read(w.dropItem(Resolution{ID: id, Where: InInventory}))
		}
		return buf.Send(), nil
	}

	res, err := w.Resolve(target)
	if err != nil {
		return "", err
	}
	if !res.Where.Held() {
		return "", dqerrors.Newf(dqerrors.ErrNotFound, "What %s? You don't have any.", target)
	}
	return w.dropItem(res), nil
}

// dropItem moves a held item to the room floor, or back to the pile it came
// from if that pile is here.
func (w *World) dropItem(res Resolution) string {
	w.take(res)
	name := w.itemName(res.ID)
	room := w.CurrentRoom()

	for _, id := range room.Items() {
		if it, ok := w.items[id]; ok {
			if p, ok := AsDrawable(it); ok && p.Return(res.ID) {
				return fmt.Sprintf("You put the %s back on the %s.", name, p.Name())
			}
		}
	}

	room.AddItems(res.ID)
	return fmt.Sprintf("You drop the %s.", name)
}

func (w *World) executePut(cmd command.Command) (string, error) {
	if cmd.Recipient == "" {
		return "", missingArg(cmd.Verb)
	}
	res, err := w.Resolve(cmd.Recipient)
	if err != nil {
		return "", err
	}
	if !res.Where.Held() {
		return "", dqerrors.Newf(dqerrors.ErrNotFound, "You don't have %s.", util.WithArticle(cmd.Recipient))
	}

	switch cmd.Instrument {
	case "", "room", "here", "floor", "ground":
		return w.dropItem(res), nil
	}

	dest, destRes, err := w.resolveItem(cmd.Instrument, cmd.Verb)
	if err != nil {
		return "", err
	}
	if dest.ID() == res.ID {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You can't put the %s inside itself.", dest.Name())
	}
	if p, ok := AsDrawable(dest); ok {
		if !p.Return(res.ID) {
			return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s doesn't belong on the %s.", w.itemName(res.ID), p.Name())
		}
		w.take(res)
		return fmt.Sprintf("You put the %s back on the %s.", w.itemName(res.ID), p.Name()), nil
	}

	h, ok := AsHolder(dest)
	if !ok {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You can't put the %s in the %s.", w.itemName(res.ID), dest.Name())
	}
	if o, _ := AsOpenable(dest); !o.IsOpen() {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s is closed.", dest.Name())
	}

	w.take(res)
	h.Put(res.ID)
	if destRes.Where.Held() {
		return fmt.Sprintf("You put the %s in the %s that you are carrying.", w.itemName(res.ID), dest.Name()), nil
	}
	return fmt.Sprintf("You put the %s in the %s.", w.itemName(res.ID), dest.Name()), nil
}
