package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/narration"
	"github.com/dekarrin/delveq/internal/util"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.English)

const defaultSmell = "It smells like most caves. A faint whiff of bat guano mingled with damp moss and wet rocks."

// describeRoom gives the description of the current room. The long
// description is shown on the first visit and whenever verbose is set;
// otherwise the short one is. If enter is set, the description counts as the
// player entering the room.
func (w *World) describeRoom(verbose, enter bool) string {
	room := w.CurrentRoom()
	var buf narration.Buffer

	buf.Addf("<< %s >>", titleCaser.String(room.Name()))

	firstVisit := room.Visits() == 0
	if enter {
		room.Visit()
		if room.IsExit() {
			w.status = Won
			w.log.WithField("room", room.ID()).Info("player reached the exit")
		}
	}

	f := room.Fields()
	if !w.canSee(room) {
		if dark := f.Text("dark_description"); dark != "" {
			buf.Read(dark)
		} else {
			buf.Add("It's very dark. You can't see anything.")
		}
		if len(room.NPCs()) > 0 {
			buf.Add("You think you hear someone moving around in the darkness.")
		}
		if dirs := ExitDirections(room.Exits(true)); len(dirs) > 0 {
			buf.Addf("You feel a slight breeze coming from the %s.", util.MakeTextList(dirs, false))
		}
		return buf.Send()
	}

	desc := f.Text("short_description")
	if firstVisit || verbose || desc == "" {
		desc = f.Text("long_description")
	}
	buf.Read(strings.TrimSpace(desc))

	var details narration.Buffer
	if items := room.Items(); len(items) > 0 {
		details.Addf("You see %s here.", util.MakeTextList(w.itemNames(items), true))
		for _, id := range items {
			if w.isOpenHolder(id) {
				if contents := w.holderContents(id); len(contents) > 0 {
					details.Addf("The %s contains %s.", w.itemName(id), util.MakeTextList(w.itemNames(contents), true))
				}
			}
		}
	}
	if npcs := room.NPCs(); len(npcs) > 0 {
		names := make([]string, len(npcs))
		for i, id := range npcs {
			names[i] = id
			if m, ok := w.monsters[id]; ok {
				names[i] = m.Name()
			}
		}
		details.Addf("You see %s here.", util.MakeTextList(names, true))
	}
	if dirs := ExitDirections(room.Exits(false)); len(dirs) > 0 {
		details.Add("You can go: " + strings.Join(dirs, ", "))
	}
	if details.Len() > 0 {
		buf.Add("")
		buf.Read(details.Send())
	}

	return buf.Send()
}

func (w *World) executeLook(cmd command.Command) (string, error) {
	room := w.CurrentRoom()
	target := cmd.Recipient

	if target == "" || target == "around" || target == "room" {
		return w.describeRoom(true, false), nil
	}
	if !w.canSee(room) {
		return "", dqerrors.New(dqerrors.ErrInvalidTransition, "It's too dark to see anything.", "look in the dark")
	}

	if command.IsDirection(target) {
		if text := room.Fields().Text("look_" + target); text != "" {
			return text, nil
		}
		if dest, ok := room.Exits(false)[target]; ok {
			if r, ok := w.rooms[dest]; ok {
				return fmt.Sprintf("To the %s you can make out the %s.", target, r.Name()), nil
			}
		}
		return fmt.Sprintf("You see nothing special to the %s.", target), nil
	}

	switch target {
	case "self", "me", "myself":
		return fmt.Sprintf("You look about as well as anyone could expect. (HP %d/%d)", w.player.HP(), w.player.MaxHP()), nil
	}

	res, err := w.Resolve(target)
	if err != nil {
		return "", err
	}
	switch res.Where {
	case AtNPC:
		return w.monsters[res.ID].Describe(), nil
	case InScenery:
		return fmt.Sprintf("It's just %s. Nothing special about it.", util.WithArticle(target)), nil
	}
	if it, ok := w.items[res.ID]; ok {
		return it.Describe(), nil
	}
	return "", dqerrors.Newf(dqerrors.ErrNotFound, "You don't see %s here.", util.WithArticle(target))
}

func (w *World) executeListen(cmd command.Command) (string, error) {
	room := w.CurrentRoom()
	target := cmd.Recipient

	if target == "" {
		if text := room.Fields().Text("listen_text"); text != "" {
			return text, nil
		}
		if sound := w.dialog.Line(DialogSounds); sound != "" {
			return fmt.Sprintf("You listen intently. You hear %s.", sound), nil
		}
		return "You listen intently, but hear nothing unusual.", nil
	}

	res, err := w.Resolve(target)
	if err == nil && res.Where == AtNPC {
		m := w.monsters[res.ID]
		if line := w.dialog.Line(m.DialogRef()); line != "" {
			return line, nil
		}
		return fmt.Sprintf("The %s is quiet.", m.Name()), nil
	}
	return fmt.Sprintf("You try listening to the %s, but don't hear anything.", target), nil
}

func (w *World) executeSmell(cmd command.Command) (string, error) {
	room := w.CurrentRoom()
	target := cmd.Recipient

	switch target {
	case "", "room", "here", "place", "cave", "cavern", "air":
		if text := room.Fields().Text("smell_text"); text != "" {
			return fmt.Sprintf("It smells like %s here.", text), nil
		}
		return defaultSmell, nil
	}

	res, err := w.Resolve(target)
	if err != nil || res.Where == InScenery {
		return fmt.Sprintf("It smells pretty much like what you figured %s would smell like.", util.WithArticle(target)), nil
	}

	var e Entity
	if res.Where == AtNPC {
		e = w.monsters[res.ID]
	} else if it, ok := w.items[res.ID]; ok {
		e = it
	}
	if e == nil {
		return "", dqerrors.Newf(dqerrors.ErrNotFound, "You don't see %s here.", util.WithArticle(target))
	}
	if text := e.Fields().Text("smell_text"); text != "" {
		return fmt.Sprintf("The %s smells like %s.", e.Name(), text), nil
	}
	return fmt.Sprintf("The %s doesn't have a noticeable scent.", e.Name()), nil
}
