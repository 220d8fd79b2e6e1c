package game

import (
	"fmt"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/narration"
	"github.com/dekarrin/delveq/internal/util"
)

// heldItem resolves a phrase that must name something the player carries.
func (w *World) heldItem(phrase, verb string) (*Item, Resolution, error) {
	if phrase == "" {
		return nil, Resolution{}, missingArg(verb)
	}
	it, res, err := w.resolveItem(phrase, verb)
	if err != nil {
		return nil, res, err
	}
	if !res.Where.Held() {
		return nil, res, dqerrors.Newf(dqerrors.ErrNotFound, "You don't have %s.", util.WithArticle(it.Name()))
	}
	return it, res, nil
}

func (w *World) executeUse(cmd command.Command) (string, error) {
	it, _, err := w.heldItem(cmd.Recipient, "use")
	if err != nil {
		return "", err
	}

	if it.Is("light") || it.Is("lightable") {
		return w.light(it)
	}

	// a key used on its own tries every lock in reach
	if it.Is("key") && cmd.Instrument == "" {
		for _, id := range append(w.CurrentRoom().Doors(), w.CurrentRoom().Items()...) {
			if target, ok := w.items[id]; ok {
				if l, ok := AsLockable(target); ok && l.KeyID() == it.ID() && l.IsLocked() {
					return w.executeUnlock(command.Command{Verb: "unlock", Recipient: id})
				}
			}
		}
		return fmt.Sprintf("The %s doesn't appear to unlock anything here.", it.Name()), nil
	}
	if cmd.Instrument != "" {
		if it.Is("key") {
			return w.executeUnlock(command.Command{Verb: "unlock", Recipient: cmd.Instrument, Instrument: cmd.Recipient})
		}
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You can't figure out how to use the %s on the %s.", it.Name(), cmd.Instrument)
	}

	return w.activate(it), nil
}

// activate runs an item's activation. Togglable items switch between in use
// and not in use each time; others can only be activated once.
func (w *World) activate(it *Item) string {
	f := it.Fields()
	if !f.Has("activate_script") && !f.Has("activate_text") && !f.Has("activate_text_on") {
		return fmt.Sprintf("You attempt to use the %s, but nothing happens.", it.Name())
	}

	var buf narration.Buffer
	if it.Is("togglable") {
		on := !f.Bool("in_use")
		f.SetBool("in_use", on)
		buf.Read(w.exec(f.Text("activate_script"), it))
		if on {
			buf.Read(f.Text("activate_text_on"))
		} else {
			buf.Read(f.Text("activate_text_off"))
		}
		return buf.Send()
	}

	if f.Bool("in_use") {
		return fmt.Sprintf("The %s is already active.", it.Name())
	}
	f.SetBool("in_use", true)
	buf.Read(w.exec(f.Text("activate_script"), it))
	buf.Read(f.Text("activate_text"))
	if buf.Len() == 0 {
		buf.Addf("You use the %s.", it.Name())
	}
	return buf.Send()
}

func (w *World) executeLight(cmd command.Command) (string, error) {
	it, _, err := w.heldItem(cmd.Recipient, "light")
	if err != nil {
		return "", err
	}
	if !it.Is("light") && !it.Is("lightable") {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You can't light the %s.", it.Name())
	}
	return w.light(it)
}

func (w *World) light(it *Item) (string, error) {
	if w.player.Light() == it.ID() && it.Fields().Bool("in_use") {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s is already lit.", it.Name())
	}
	room := w.CurrentRoom()
	wasDark := !w.canSee(room)

	w.player.SetLight(it.ID())
	it.Fields().SetBool("in_use", true)

	var buf narration.Buffer
	if text := it.Fields().Text("activate_text_on"); text != "" {
		buf.Read(text)
	} else {
		buf.Addf("You light the %s.", it.Name())
	}
	buf.Read(w.exec(it.Fields().Text("activate_script"), it))
	if wasDark {
		buf.Add("")
		buf.Read(w.describeRoom(false, false))
	}
	return buf.Send(), nil
}

func (w *World) executeRead(cmd command.Command) (string, error) {
	room := w.CurrentRoom()
	if !w.canSee(room) {
		return "", dqerrors.New(dqerrors.ErrInvalidTransition, "It's too dark to read anything.", "read in the dark")
	}
	if cmd.Recipient == "" {
		if texts := room.Fields().List("texts"); len(texts) > 0 {
			return w.dice.Choose(texts), nil
		}
		return "", missingArg("read")
	}
	it, _, err := w.resolveItem(cmd.Recipient, "read")
	if err != nil {
		return "", err
	}
	// several texts means one is picked each time it is read
	if texts := it.Fields().List("read_text"); len(texts) > 0 {
		return w.dice.Choose(texts), nil
	}
	return fmt.Sprintf("There's nothing written on the %s.", it.Name()), nil
}

func (w *World) executeEat(cmd command.Command) (string, error) {
	return w.consume(cmd, "eat", "edible")
}

func (w *World) executeDrink(cmd command.Command) (string, error) {
	return w.consume(cmd, "drink", "drinkable")
}

// consume eats or drinks an item within reach. The item is used up unless it
// is a corpse, which stays where it lies.
func (w *World) consume(cmd command.Command, verb, attr string) (string, error) {
	if cmd.Recipient == "" {
		return "", missingArg(verb)
	}
	it, res, err := w.resolveItem(cmd.Recipient, verb)
	if err != nil {
		return "", err
	}

	textField := verb + "_text"
	if !it.Is(attr) && !it.Fields().Has(textField) {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You can't %s %s!", verb, util.WithArticle(it.Name()))
	}

	if !it.Is("corpse") {
		w.take(res)
	}

	var buf narration.Buffer
	if text := it.Fields().Text(textField); text != "" {
		buf.Read(text)
	} else {
		buf.Addf("You %s the %s.", verb, it.Name())
	}
	buf.Read(w.exec(it.Fields().Text(verb+"_script"), it))
	if w.player.HP() <= 0 {
		buf.Addf("You died! That %s did not agree with you.", it.Name())
		w.status = Lost
	}
	return buf.Send(), nil
}
