package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dialog"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/narration"
	"github.com/dekarrin/delveq/internal/util"
)

// Dialog sets that are not tied to any one speaker.
const (
	// DialogEchoes is what the player hears when they speak to an empty room.
	DialogEchoes = dialog.Echoes

	// DialogSounds is what the player hears when they listen to a room.
	DialogSounds = dialog.Sounds
)

// respond gives a monster's reply to the player.
func (w *World) respond(m *Monster) string {
	line := w.dialog.Line(m.DialogRef())
	if line == "" {
		return fmt.Sprintf("The %s doesn't respond.", m.Name())
	}
	return fmt.Sprintf("The %s says: %s", m.Name(), line)
}

// livingNPCs returns the monsters in the room that are still alive.
func (w *World) livingNPCs() []*Monster {
	var living []*Monster
	for _, id := range w.CurrentRoom().NPCs() {
		if m, ok := w.monsters[id]; ok && m.Alive() {
			living = append(living, m)
		}
	}
	return living
}

func (w *World) executeTalk(cmd command.Command) (string, error) {
	npcs := w.livingNPCs()
	target := cmd.Recipient

	if target == "" {
		if !w.canSee(w.CurrentRoom()) {
			return "You blather on to no one in particular.", nil
		}
		if len(npcs) == 1 {
			target = npcs[0].ID()
		} else if len(npcs) == 0 {
			return "You blather on to no one in particular.", nil
		} else {
			return "", dqerrors.New(dqerrors.ErrBadArgs, "Who do you want to talk to?", "talk with several npcs present")
		}
	}

	res, err := w.Resolve(target)
	if err != nil {
		return "", err
	}
	switch res.Where {
	case AtNPC:
	case InScenery:
		return fmt.Sprintf("You try speaking to the %s, but it doesn't respond. Perhaps it's shy?", target), nil
	default:
		return fmt.Sprintf("You try speaking to the %s, but it doesn't respond. Perhaps it's shy?", w.itemName(res.ID)), nil
	}

	m := w.monsters[res.ID]
	var buf narration.Buffer
	buf.Addf("You talk to the %s.", m.Name())
	if !m.Is("talkative") {
		buf.Addf("The %s does not appear to enjoy your attempts at small talk.", m.Name())
		return buf.Send(), nil
	}
	buf.Add(w.respond(m))
	return buf.Send(), nil
}

func (w *World) executeAsk(cmd command.Command) (string, error) {
	npcs := w.livingNPCs()

	// "ask goblin about gold" has the goblin as recipient and gold as the
	// topic; "ask about gold" has only the topic.
	var askWho []*Monster
	topic := cmd.Recipient
	if cmd.Link != "" {
		topic = cmd.Instrument
		res, err := w.Resolve(cmd.Recipient)
		if err != nil {
			return "", err
		}
		if res.Where != AtNPC {
			return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You can't ask the %s anything.", cmd.Recipient)
		}
		askWho = []*Monster{w.monsters[res.ID]}
	} else if cmd.Prep == "" && topic != "" {
		// "ask goblin" with no topic
		if res, err := w.Resolve(topic); err == nil && res.Where == AtNPC {
			return fmt.Sprintf("What did you want to ask the %s?", w.monsters[res.ID].Name()), nil
		}
		askWho = npcs
	} else {
		askWho = npcs
	}

	if topic == "" {
		return "", dqerrors.New(dqerrors.ErrBadArgs, "You should ask someone about something.", "ask with no topic")
	}
	if len(askWho) == 0 {
		return fmt.Sprintf("There's no one here to ask about %s.", topic), nil
	}

	var buf narration.Buffer
	for _, m := range askWho {
		buf.Add(w.respond(m))
	}
	return buf.Send(), nil
}

func (w *World) executeSay(cmd command.Command) (string, error) {
	words := strings.Join(cmd.Args(), " ")
	if words == "" {
		return "", dqerrors.New(dqerrors.ErrBadArgs, "What did you want to say?", "say with nothing")
	}
	switch words {
	case "nothing", "nada":
		return "You hold your tongue. Perhaps now is not the right time to speak?", nil
	}

	npcs := w.livingNPCs()
	if len(npcs) == 0 {
		echo := w.dialog.Line(DialogEchoes)
		if echo == "" {
			echo = "Your words echo back at you."
		}
		return fmt.Sprintf("'%s.' %s", util.Capitalize(words), echo), nil
	}

	var buf narration.Buffer
	buf.Addf("You say: '%s'", util.Capitalize(words))
	for _, m := range npcs {
		buf.Add(w.respond(m))
	}
	return buf.Send(), nil
}
