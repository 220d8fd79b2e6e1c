package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/narration"
	"github.com/dekarrin/delveq/internal/util"
	"github.com/dekarrin/rosed"
	"github.com/sirupsen/logrus"
)

// Status is the state of the session after a turn.
type Status int

const (
	// Continue means the game goes on.
	Continue Status = iota

	// Won means the player reached an exit of the world.
	Won

	// Lost means the player died.
	Lost

	// Quit means the player asked to stop playing.
	Quit
)

func (s Status) String() string {
	switch s {
	case Continue:
		return "continue"
	case Won:
		return "won"
	case Lost:
		return "lost"
	case Quit:
		return "quit"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// TurnResult is the outcome of handling one line of input.
type TurnResult struct {
	// Narration is the text to show the player. It may be empty.
	Narration string

	// Status tells the caller whether the session goes on.
	Status Status

	// Err is the reason the command did not do what was asked, if it did not.
	// The player has already been told about it in Narration.
	Err error
}

// handler carries out one verb.
type handler func(cmd command.Command) (string, error)

var commandHelp = [][2]string{
	{"GO/N/S/E/W/U/D", "go to another room via one of the exits"},
	{"LOOK/EXAMINE [something]", "show the description of something, or the room with LOOK by itself"},
	{"TAKE/GET [item] [from container]", "pick up an object, or ALL of them"},
	{"DROP/LEAVE [item]", "put down an object in the room"},
	{"PUT/PLACE [item] in [container]", "put an object into something"},
	{"OPEN/CLOSE [thing]", "open or close a door or container"},
	{"LOCK/UNLOCK [thing]", "lock or unlock a door or lockbox, if you have the key"},
	{"SEARCH [place]", "look for anything hidden"},
	{"USE/LIGHT [item]", "use or light an object you are carrying"},
	{"EAT/DRINK [item]", "consume something"},
	{"READ [item]", "read what is written on something"},
	{"TALK TO [someone]", "talk to someone in the room"},
	{"ASK [someone] ABOUT [topic]", "ask someone about something"},
	{"SAY [phrase]", "say something out loud"},
	{"ATTACK/KICK/PUNCH [someone]", "fight someone in the room"},
	{"LISTEN/SMELL [thing]", "use your other senses"},
	{"INVENTORY/I", "show what you are carrying"},
	{"STATS", "show your health and armor"},
	{"EXITS", "show the exits from the room"},
	{"HINT/STUCK", "get a nudge in the right direction"},
	{"ABOUT/HELP/COMMANDS", "show information about the game"},
	{"QUIT/EXIT/BYE", "end the game"},
}

var textFormatOptions = rosed.Options{
	PreserveParagraphs: true,
	IndentStr:          "  ",
}

func (w *World) commandHandlers() map[string]handler {
	h := map[string]handler{
		"go":        w.executeGo,
		"look":      w.executeLook,
		"examine":   w.executeLook,
		"listen":    w.executeListen,
		"smell":     w.executeSmell,
		"search":    w.executeSearch,
		"take":      w.executeTake,
		"get":       w.executeTake,
		"drop":      w.executeDrop,
		"leave":     w.executeDrop,
		"put":       w.executePut,
		"place":     w.executePut,
		"open":      w.executeOpen,
		"close":     w.executeClose,
		"lock":      w.executeLock,
		"unlock":    w.executeUnlock,
		"use":       w.executeUse,
		"light":     w.executeLight,
		"read":      w.executeRead,
		"eat":       w.executeEat,
		"drink":     w.executeDrink,
		"talk":      w.executeTalk,
		"ask":       w.executeAsk,
		"say":       w.executeSay,
		"attack":    w.executeAttack,
		"hit":       w.executeAttack,
		"fight":     w.executeAttack,
		"kill":      w.executeAttack,
		"kick":      w.executeKick,
		"punch":     w.executePunch,
		"inventory": w.executeInventory,
		"stats":     w.executeStats,
		"exits":     w.executeExits,
		"hint":      w.executeHint,
		"stuck":     w.executeStuck,
		"about":     w.executeAbout,
		"help":      w.executeHelp,
		"commands":  w.executeCommands,
		"quit":      w.executeQuit,
	}
	if w.Config.Debug {
		h["debug"] = w.executeDebug
	}
	return h
}

// Handle carries out one line of player input and returns what happened. It
// never panics; unexpected failures are logged and reported as a turn where
// nothing happened.
func (w *World) Handle(raw string) (result TurnResult) {
	w.status = Continue
	w.rawInput = raw

	defer func() {
		if r := recover(); r != nil {
			w.log.WithFields(logrus.Fields{"panic": r, "input": raw}).Error("unexpected failure while handling command")
			result = TurnResult{
				Narration: "Something strange happens, but nothing comes of it.",
				Status:    Continue,
				Err:       fmt.Errorf("panic: %v", r),
			}
		}
	}()

	w.ensureRoom(w.Config.Start)

	tokens := command.Normalize(raw)
	if len(tokens) == 0 {
		return TurnResult{Status: Continue}
	}
	phrase := strings.Join(tokens, " ")

	// solution phrases take priority over everything else
	if room := w.CurrentRoom(); room != nil && room.IsSolution(phrase) {
		w.history.Add(phrase)
		return TurnResult{Narration: w.checkSolution(phrase), Status: w.status}
	}

	if !w.vocab.Has(tokens[0]) {
		if _, isAlias := command.VerbAliases[tokens[0]]; !isAlias {
			err := dqerrors.Newf(dqerrors.ErrUnknownCommand, "%q is not a recognized command. Type HELP for a list.", tokens[0])
			w.log.WithField("input", phrase).Debug("unknown command")
			return TurnResult{Narration: errorText(err), Status: Continue, Err: err}
		}
	}

	w.history.Add(phrase)
	cmd := command.ParseTokens(tokens)

	var out string
	var err error
	if h, ok := w.handlers[cmd.Verb]; ok {
		out, err = h(cmd)
	} else {
		out = fmt.Sprintf("You try to %s, but nothing happens.", cmd.Verb)
	}

	if err != nil {
		w.log.WithError(err).WithField("input", phrase).Debug("command failed")
		var buf narration.Buffer
		buf.Read(out)
		buf.Read(errorText(err))
		out = buf.Send()
	}

	return TurnResult{Narration: out, Status: w.status, Err: err}
}

// errorText gives the narration for an error that the player caused.
func errorText(err error) string {
	return dqerrors.GameMessage(err)
}

func missingArg(verb string) error {
	return dqerrors.Newf(dqerrors.ErrBadArgs, "What are you trying to %s?", verb)
}

// checkSolution attempts the current room's puzzle with the given solution
// phrase.
func (w *World) checkSolution(phrase string) string {
	room := w.CurrentRoom()
	if room.Solved() {
		return "You did that already and it worked."
	}

	verb, rest, _ := strings.Cut(phrase, " ")
	switch verb {
	case "use":
		res, err := w.Resolve(rest)
		if err != nil || !res.Where.Held() {
			return fmt.Sprintf("This seems like a brilliant idea. Too bad you don't have %s.", util.WithArticle(rest))
		}
	case "unlock":
		if !w.canSee(room) {
			return "You fumble around for a few minutes, but find it's impossible to unlock something in the dark."
		}
		res, err := w.Resolve(rest)
		if err != nil {
			return fmt.Sprintf("You try to unlock the %s, but fail.", rest)
		}
		if it, ok := w.items[res.ID]; ok {
			if l, ok := AsLockable(it); ok && l.KeyID() != "" && !w.player.Has(l.KeyID()) {
				return fmt.Sprintf("If only you had something to unlock the %s with.", it.Name())
			}
		}
	}

	return w.runSolution(room)
}

func (w *World) runSolution(room *Room) string {
	var buf narration.Buffer
	buf.Read(w.exec(room.Fields().Text("solved_script"), room))
	room.Fields().SetBool("solved", true)
	if solved := room.Fields().Text("solved_description"); solved != "" {
		room.Fields().SetText("short_description", solved)
	}
	w.log.WithField("room", room.ID()).Info("puzzle solved")
	buf.Read(w.describeRoom(false, false))
	return buf.Send()
}

func (w *World) executeQuit(cmd command.Command) (string, error) {
	w.status = Quit
	return "Goodbye.", nil
}

func (w *World) executeInventory(cmd command.Command) (string, error) {
	inv := w.player.Inventory()
	if len(inv) == 0 {
		return "You aren't carrying anything.", nil
	}

	var buf narration.Buffer
	buf.Addf("You are carrying %s.", util.MakeTextList(w.itemNames(inv), true))
	for _, cid := range w.player.Containers() {
		contents := w.holderContents(cid)
		if len(contents) > 0 {
			buf.Addf("In the %s you have %s.", w.itemName(cid), util.MakeTextList(w.itemNames(contents), true))
		}
	}
	buf.Addf("You are wielding your %s.", w.itemName(w.player.Weapon()))
	if w.lightIsLit() {
		buf.Addf("Your %s is lit.", w.itemName(w.player.Light()))
	}
	return buf.Send(), nil
}

func (w *World) executeStats(cmd command.Command) (string, error) {
	p := w.player
	var buf narration.Buffer
	buf.Addf("HP: %d/%d", p.HP(), p.MaxHP())
	buf.Addf("AC: %d", p.AC())
	buf.Addf("Weapon: %s", w.itemName(p.Weapon()))
	return buf.Send(), nil
}

func (w *World) executeExits(cmd command.Command) (string, error) {
	room := w.CurrentRoom()
	dirs := ExitDirections(room.Exits(!w.canSee(room)))
	if len(dirs) == 0 {
		return "There doesn't seem to be any way out.", nil
	}
	return "You can go: " + strings.Join(dirs, ", "), nil
}

func (w *World) executeHint(cmd command.Command) (string, error) {
	if hint := w.CurrentRoom().Fields().Text("hint"); hint != "" {
		return hint, nil
	}
	if w.Config.Stuck != "" {
		return w.Config.Stuck, nil
	}
	return "You don't have any particular ideas about this place.", nil
}

func (w *World) executeStuck(cmd command.Command) (string, error) {
	var buf narration.Buffer
	if w.Config.Stuck != "" {
		buf.Read(w.Config.Stuck)
	} else {
		buf.Add("Try looking at things, searching, and using what you carry.")
	}
	if recent := w.history.Recent(5); len(recent) > 1 {
		buf.Addf("Lately you've tried: %s.", strings.Join(recent[:len(recent)-1], "; "))
	}
	return buf.Send(), nil
}

func (w *World) executeAbout(cmd command.Command) (string, error) {
	if w.Config.About != "" {
		return w.Config.About, nil
	}
	title := w.Config.Title
	if title == "" {
		title = "this game"
	}
	return fmt.Sprintf("You are playing %s.", title), nil
}

func (w *World) executeHelp(cmd command.Command) (string, error) {
	ed := rosed.Edit("").WithOptions(textFormatOptions)
	if w.Config.Help != "" {
		ed = ed.Insert(rosed.End, w.Config.Help+"\n\n")
	}
	ed = ed.
		Insert(rosed.End, "Here are the commands you can use:\n").
		InsertDefinitionsTable(rosed.End, commandHelp, w.Config.Width)
	return ed.String(), nil
}

func (w *World) executeCommands(cmd command.Command) (string, error) {
	return "You can use: " + strings.Join(w.vocab.Verbs(), ", "), nil
}
