package game

import (
	"fmt"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/narration"
	"github.com/dekarrin/delveq/internal/util"
	"github.com/sirupsen/logrus"
)

// CritRoll is the natural d20 roll at or above which an attack is a critical
// hit.
const CritRoll = 20

func (w *World) executeAttack(cmd command.Command) (string, error) {
	return w.attack(cmd.Verb, cmd.Recipient, cmd.Instrument, "")
}

func (w *World) executeKick(cmd command.Command) (string, error) {
	return w.attack("kick", cmd.Recipient, "", Foot)
}

func (w *World) executePunch(cmd command.Command) (string, error) {
	return w.attack("punch", cmd.Recipient, "", Fist)
}

// attack resolves an attack on target. with is the item the player named to
// attack with, and body is the fist or foot used to punch or kick; both may be
// empty.
func (w *World) attack(verb, target, with, body string) (string, error) {
	room := w.CurrentRoom()

	if target == "" {
		if !w.canSee(room) {
			return "", dqerrors.Newf(dqerrors.ErrInvalidTransition, "You %s wildly at the darkness, but hit nothing.", verb)
		}
		npcs := room.NPCs()
		if len(npcs) != 1 {
			return "", dqerrors.Newf(dqerrors.ErrBadArgs, "Who or what are you trying to %s?", verb)
		}
		target = npcs[0]
	}

	switch target {
	case "self", "myself", "me":
		return "Although things look pretty bleak, you resist the urge. Maybe the next room will be better?", nil
	}

	res, err := w.Resolve(target)
	if err != nil {
		if m, ok := w.monsters[target]; ok && !room.HasNPC(target) {
			return "", dqerrors.Newf(dqerrors.ErrNotFound, "There is no %s here to attack.", m.Name())
		}
		return "", err
	}

	switch res.Where {
	case AtNPC:
		m := w.monsters[res.ID]
		if !m.Alive() {
			return fmt.Sprintf("The %s is already dead. Why are you still attacking the corpse?", m.Name()), nil
		}
		weapon, err := w.pickWeapon(with, body)
		if err != nil {
			return "", err
		}
		return w.fight(m, weapon), nil
	case InScenery:
		return fmt.Sprintf("You %s the %s. Surprisingly, it doesn't fight back.", verb, target), nil
	}

	name := w.itemName(res.ID)
	if body == "" {
		return fmt.Sprintf("You attack the %s but fail to cause any damage.", name), nil
	}

	// hitting things with your bare body only hurts you
	var buf narration.Buffer
	if body == Foot {
		buf.Addf("You kick the %s and break your toe. That didn't go as planned.", name)
	} else {
		buf.Addf("You punch the %s. Nothing happens, other than you breaking your fingernails.", name)
	}
	if w.player.Hurt(1) {
		buf.Addf("You died! Well, that was embarrassing. You were killed trying to %s the %s.", verb, name)
		w.status = Lost
	}
	return buf.Send(), nil
}

// pickWeapon returns what the player attacks with.
func (w *World) pickWeapon(with, body string) (Wieldable, error) {
	id := body
	if id == "" && with != "" {
		res, err := w.Resolve(with)
		if err != nil {
			return nil, err
		}
		if !res.Where.Held() {
			return nil, dqerrors.Newf(dqerrors.ErrNotFound, "You don't have %s.", util.WithArticle(with))
		}
		id = res.ID
	}
	if id == "" {
		id = w.player.Weapon()
	}

	it, ok := w.items[id]
	if !ok {
		return bareHands{NewItem(id, fields.Bag{"name": fields.Str(id)})}, nil
	}
	if weap, ok := AsWieldable(it); ok {
		return weap, nil
	}
	if id == Fist || id == Foot {
		return bareHands{it}, nil
	}
	return nil, dqerrors.Newf(dqerrors.ErrInvalidTransition, "The %s isn't much of a weapon.", it.Name())
}

// fight runs one exchange of blows: the player attacks, and if the monster
// survives it strikes back.
func (w *World) fight(m *Monster, weapon Wieldable) string {
	var buf narration.Buffer
	room := w.CurrentRoom()

	buf.Addf("You attack the %s with your %s.", m.Name(), weapon.Name())

	natural, total := w.dice.RollMod(20, weapon.ToHit())
	crit := natural >= CritRoll
	w.log.WithFields(logrus.Fields{
		"monster": m.ID(),
		"natural": natural,
		"total":   total,
		"ac":      m.AC(),
	}).Debug("player attack roll")

	if crit || total > m.AC() {
		dmg := weapon.Damage()
		if crit {
			dmg *= 2
			buf.Add("Critical hit!")
			buf.Add(weapon.CritText())
		}
		if hit := weapon.HitText(); hit != "" {
			buf.Add(hit)
		} else {
			buf.Addf("You hit the %s.", m.Name())
		}

		if m.Wound(dmg) {
			buf.Addf("You have slain the %s!", m.Name())
			buf.Add(m.DeathText())
			if corpse := m.Corpse(); corpse != "" {
				room.AddItems(corpse)
			}
			if drops := m.Drops(); len(drops) > 0 {
				room.AddItems(drops...)
			}
			room.RemoveNPC(m.ID())
			w.log.WithField("monster", m.ID()).Info("monster slain")

			buf.Add("")
			buf.Read(w.describeRoom(false, false))
			return buf.Send()
		}
	} else {
		if miss := weapon.MissText(); miss != "" {
			buf.Add(miss)
		} else {
			buf.Addf("You miss the %s.", m.Name())
		}
	}

	_, against := w.dice.RollMod(20, m.ToHit())
	if against > w.player.AC() {
		buf.Add(m.HitText())
		if w.player.Hurt(m.Damage()) {
			buf.Addf("You died! The %s has slain you with its treacherous attack.", m.Name())
			w.status = Lost
			w.log.WithField("monster", m.ID()).Info("player slain")
		}
	} else {
		buf.Add(m.MissText())
	}

	return buf.Send()
}
