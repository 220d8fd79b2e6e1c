package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/narration"
	"github.com/dekarrin/delveq/internal/util"
)

// resolveItem resolves a phrase that must name an item, not a monster or a
// bit of scenery.
func (w *World) resolveItem(phrase, verb string) (*Item, Resolution, error) {
	res, err := w.Resolve(phrase)
	if err != nil {
		return nil, res, err
	}
	switch res.Where {
	case AtNPC:
		m := w.monsters[res.ID]
		return nil, res, dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s wouldn't appreciate that.", m.Name())
	case InScenery:
		return nil, res, dqerrors.Newf(dqerrors.ErrInvalidTransition, "You can't %s that.", verb)
	}
	it, ok := w.items[res.ID]
	if !ok {
		return nil, res, dqerrors.New(dqerrors.ErrNotFound, fmt.Sprintf("You don't see %s here.", util.WithArticle(phrase)), fmt.Sprintf("resolved %q to undefined item %q", phrase, res.ID))
	}
	return it, res, nil
}

// doorInDark returns an error if the room is too dark to see and phrase
// names one of its doors.
func (w *World) doorInDark(phrase, verb string) error {
	room := w.CurrentRoom()
	if w.canSee(room) {
		return nil
	}
	phrase = strings.ToLower(strings.TrimSpace(phrase))
	for _, id := range room.Doors() {
		if phrase == "door" || w.itemMatches(id, phrase) {
			return dqerrors.New(dqerrors.ErrInvalidTransition, fmt.Sprintf("You can't find a door to %s in the dark.", verb), fmt.Sprintf("%s %q in dark room %q", verb, id, room.ID()))
		}
	}
	return nil
}

func (w *World) executeOpen(cmd command.Command) (string, error) {
	if cmd.Recipient == "" {
		return "", missingArg("open")
	}
	if err := w.doorInDark(cmd.Recipient, "open"); err != nil {
		return "", err
	}
	it, _, err := w.resolveItem(cmd.Recipient, "open")
	if err != nil {
		return "", err
	}
	o, ok := AsOpenable(it)
	if !ok {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s can't be opened.", it.Name())
	}
	return o.Open()
}

func (w *World) executeClose(cmd command.Command) (string, error) {
	if cmd.Recipient == "" {
		return "", missingArg("close")
	}
	if err := w.doorInDark(cmd.Recipient, "close"); err != nil {
		return "", err
	}
	it, _, err := w.resolveItem(cmd.Recipient, "close")
	if err != nil {
		return "", err
	}
	o, ok := AsOpenable(it)
	if !ok {
		return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s can't be closed.", it.Name())
	}
	return o.Close()
}

// lockable resolves the target of a lock or unlock command and checks that
// the player has what is needed to work its lock.
func (w *World) lockable(cmd command.Command) (Lockable, error) {
	if cmd.Recipient == "" {
		return nil, missingArg(cmd.Verb)
	}
	if err := w.doorInDark(cmd.Recipient, cmd.Verb); err != nil {
		return nil, err
	}
	it, _, err := w.resolveItem(cmd.Recipient, cmd.Verb)
	if err != nil {
		return nil, err
	}
	l, ok := AsLockable(it)
	if !ok {
		return nil, dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s doesn't have a lock.", it.Name())
	}

	key := l.KeyID()
	if cmd.Instrument != "" {
		res, err := w.Resolve(cmd.Instrument)
		if err != nil || !res.Where.Held() {
			return nil, dqerrors.Newf(dqerrors.ErrNotFound, "You don't have %s.", util.WithArticle(cmd.Instrument))
		}
		if key != "" && res.ID != key {
			return nil, dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s doesn't fit the %s.", w.itemName(res.ID), it.Name())
		}
	}
	if key != "" && !w.holds(key) {
		return nil, dqerrors.Newf(dqerrors.ErrInvalidTransition, "You don't have the key to %s the %s.", cmd.Verb, it.Name())
	}
	return l, nil
}

// holds returns whether the player has the item anywhere on them.
func (w *World) holds(id string) bool {
	if w.player.Has(id) {
		return true
	}
	for _, cid := range w.player.Containers() {
		if util.InSlice(id, w.holderContents(cid)) {
			return true
		}
	}
	return false
}

func (w *World) executeUnlock(cmd command.Command) (string, error) {
	l, err := w.lockable(cmd)
	if err != nil {
		return "", err
	}

	trapped := false
	if c, ok := l.(Container); ok {
		trapped = c.IsTrapped()
	}

	msg, err := l.Unlock()
	if err != nil {
		return "", err
	}

	var buf narration.Buffer
	buf.Read(msg)
	buf.Read(w.exec(l.Fields().Text("unlock_script"), l))
	if trapped {
		buf.Read(w.exec(l.Fields().Text("trap_script"), l))
		if w.player.HP() <= 0 {
			buf.Addf("You died! The trap on the %s got the better of you.", l.Name())
			w.status = Lost
		}
	}
	return buf.Send(), nil
}

func (w *World) executeLock(cmd command.Command) (string, error) {
	l, err := w.lockable(cmd)
	if err != nil {
		return "", err
	}
	return l.Lock()
}

func (w *World) executeSearch(cmd command.Command) (string, error) {
	room := w.CurrentRoom()
	location := cmd.Recipient
	if !w.canSee(room) {
		return "You grope around in the dark but find nothing.", nil
	}

	spots := room.Fields().List("hidden_spots")
	switch location {
	case "", "room", "here", "around", "area":
		if room.HasHidden() && len(spots) == 0 {
			return w.reveal(room), nil
		}
		return "You don't find anything of interest.", nil
	}

	if len(spots) > 0 && util.InSlice(location, spots) {
		if room.HasHidden() {
			return w.reveal(room), nil
		}
		return "You search again, but don't find anything new.", nil
	}

	res, err := w.Resolve(location)
	if err == nil {
		if it, ok := w.items[res.ID]; ok {
			if _, isHolder := AsHolder(it); isHolder {
				o, _ := AsOpenable(it)
				if !o.IsOpen() {
					return o.Open()
				}
				return spill(Container{it}), nil
			}
		}
	}

	if len(spots) > 0 && room.HasHidden() {
		return "You feel you might be onto something, just not here.", nil
	}
	return fmt.Sprintf("You search the %s but don't find anything of interest.", strings.TrimSpace(location)), nil
}

// reveal uncovers the room's hidden feature. It only happens once.
func (w *World) reveal(room *Room) string {
	room.Fields().SetText("hidden_state", HiddenFound)
	out := w.exec(room.Fields().Text("hidden"), room)
	w.log.WithField("room", room.ID()).Info("hidden feature found")
	if out == "" {
		out = "You find something!"
	}
	return out
}
