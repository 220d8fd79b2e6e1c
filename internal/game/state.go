package game

import (
	"fmt"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dice"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/logging"
	"github.com/dekarrin/delveq/internal/narration"
	"github.com/dekarrin/delveq/internal/objscript"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	DefaultPlayerHP     = 20
	DefaultPlayerAC     = 14
	DefaultWidth        = 80
	DefaultStartingRoom = "starting_room"
)

// Config is the game-wide settings that come from the world definition and
// the command line rather than from any one entity.
type Config struct {
	// Title is the name of the game.
	Title string

	// Start is the id of the room the player starts in. Defaults to
	// DefaultStartingRoom.
	Start string

	// Commands are extra verbs accepted on top of command.DefaultVerbs.
	Commands []string

	About string
	Help  string
	Stuck string

	// Intro is shown once before the first room description.
	Intro string

	PlayerHP     int
	PlayerAC     int
	PlayerWeapon string

	// HistorySize is how many recent commands are remembered.
	HistorySize int

	// Width is the column width help tables are laid out for.
	Width int

	// Debug enables the debug verb.
	Debug bool
}

func (cfg Config) withDefaults() Config {
	if cfg.Start == "" {
		cfg.Start = DefaultStartingRoom
	}
	if cfg.PlayerHP < 1 {
		cfg.PlayerHP = DefaultPlayerHP
	}
	if cfg.PlayerAC < 1 {
		cfg.PlayerAC = DefaultPlayerAC
	}
	if cfg.PlayerWeapon == "" {
		cfg.PlayerWeapon = Fist
	}
	if cfg.HistorySize < 1 {
		cfg.HistorySize = command.DefaultHistorySize
	}
	if cfg.Width < 2 {
		cfg.Width = DefaultWidth
	}
	return cfg
}

// DialogProvider gives lines of dialog for a speaker.
type DialogProvider interface {
	// Line returns one line for the speaker, falling back to a default set if
	// the speaker has none. It returns "" if there is nothing to say.
	Line(speaker string) string
}

type silentDialog struct{}

func (silentDialog) Line(string) string { return "" }

// Options are the collaborators a World is built with. All are optional.
type Options struct {
	// Dialog supplies NPC lines. If nil, NPCs have nothing to say.
	Dialog DialogProvider

	// Random is the source of all randomness in the game. If nil, a
	// time-seeded source is used.
	Random dice.Source

	// Log receives diagnostics. If nil, they are discarded.
	Log *logrus.Entry
}

// World is the whole state of one game session. Everything that needs the
// game state is handed the World explicitly.
type World struct {
	// SessionID identifies this session in logs.
	SessionID uuid.UUID

	Config Config

	rooms    map[string]*Room
	items    map[string]*Item
	monsters map[string]*Monster
	player   *Player

	dialog  DialogProvider
	dice    *dice.Roller
	scripts *objscript.Interpreter
	history *command.History
	vocab   command.Vocabulary

	log      *logrus.Entry
	status   Status
	snaps    snapshots
	handlers map[string]handler

	// rawInput is the line being handled, before normalization.
	rawInput string
}

// New loads every entity from loader and creates a World ready for Start.
//
// Definitions that fail to load are replaced with bare default entities and
// logged; the game goes on without them. The only fatal condition is a
// starting room with no definition at all.
func New(loader Loader, cfg Config, opts Options) (*World, error) {
	cfg = cfg.withDefaults()

	verbs := cfg.Commands
	if cfg.Debug {
		verbs = append(append([]string{}, verbs...), "debug")
	}

	w := &World{
		SessionID: uuid.New(),
		Config:    cfg,
		rooms:     map[string]*Room{},
		items:     map[string]*Item{},
		monsters:  map[string]*Monster{},
		dialog:    opts.Dialog,
		dice:      dice.New(opts.Random),
		history:   command.NewHistory(cfg.HistorySize),
		vocab:     command.NewVocabulary(verbs...),
		snaps:     snapshots{},
	}
	if w.dialog == nil {
		w.dialog = silentDialog{}
	}
	w.log = logging.Component(opts.Log, "game").WithField("session", w.SessionID.String())

	for _, id := range loader.IDs(EntityRoom) {
		w.rooms[id] = NewRoom(id, w.load(loader, EntityRoom, id))
	}
	for _, id := range loader.IDs(EntityItem) {
		w.items[id] = NewItem(id, w.load(loader, EntityItem, id))
	}
	for _, id := range loader.IDs(EntityMonster) {
		w.monsters[id] = NewMonster(id, w.load(loader, EntityMonster, id))
	}

	if _, ok := w.rooms[cfg.Start]; !ok {
		return nil, dqerrors.New(dqerrors.ErrLoad, "", fmt.Sprintf("starting room %q is not defined", cfg.Start))
	}

	w.fillReferences()

	w.player = NewPlayer(cfg.Start, cfg.PlayerHP, cfg.PlayerAC, cfg.PlayerWeapon)
	w.scripts = objscript.New(scriptBackend{w}, w.log)
	w.handlers = w.commandHandlers()

	if err := w.snapshot(); err != nil {
		return nil, err
	}

	w.log.WithFields(logrus.Fields{
		"rooms":    len(w.rooms),
		"items":    len(w.items),
		"monsters": len(w.monsters),
	}).Info("world loaded")

	return w, nil
}

// load reads one definition, substituting a default if it cannot be read.
func (w *World) load(loader Loader, kind EntityKind, id string) fields.Bag {
	bag, err := loader.Load(kind, id)
	if err != nil {
		w.log.WithError(err).WithFields(logrus.Fields{"kind": kind.String(), "id": id}).Warn("using default entity")
		return defaultBag(kind, id)
	}
	return bag
}

func defaultBag(kind EntityKind, id string) fields.Bag {
	bag := fields.Bag{"name": fields.Str(id)}
	switch kind {
	case EntityRoom:
		bag["long_description"] = fields.Str(fmt.Sprintf("You are in the %s.", id))
	case EntityMonster:
		bag["HP"] = fields.Int(1)
		bag["AC"] = fields.Int(0)
	}
	return bag
}

// fillReferences creates default entities for every id that some definition
// refers to but that the loader had nothing for.
func (w *World) fillReferences() {
	needItem := func(owner, id string) {
		if id == "" {
			return
		}
		if _, ok := w.items[id]; !ok {
			w.log.WithFields(logrus.Fields{"kind": "item", "id": id, "referrer": owner}).Warn("undefined item referenced; using default entity")
			w.items[id] = NewItem(id, defaultBag(EntityItem, id))
		}
	}

	for _, r := range w.rooms {
		for _, id := range r.Items() {
			needItem(r.ID(), id)
		}
		for _, id := range r.Doors() {
			needItem(r.ID(), id)
		}
		for _, m := range []map[string]string{r.Exits(false), r.Exits(true)} {
			for _, dest := range m {
				if _, ok := w.rooms[dest]; !ok {
					w.log.WithFields(logrus.Fields{"kind": "room", "id": dest, "referrer": r.ID()}).Warn("undefined room referenced; using default entity")
					w.rooms[dest] = NewRoom(dest, defaultBag(EntityRoom, dest))
				}
			}
		}
		for _, id := range r.NPCs() {
			if _, ok := w.monsters[id]; !ok {
				w.log.WithFields(logrus.Fields{"kind": "monster", "id": id, "referrer": r.ID()}).Warn("undefined monster referenced; using default entity")
				w.monsters[id] = NewMonster(id, defaultBag(EntityMonster, id))
			}
		}
	}
	for _, m := range w.monsters {
		needItem(m.ID(), m.Corpse())
		for _, id := range m.Drops() {
			needItem(m.ID(), id)
		}
	}

	// contents can name more items, so keep going until nothing new appears
	for seen := 0; seen != len(w.items); {
		seen = len(w.items)
		for _, it := range w.allItems() {
			contents := it.Fields().List("contents")
			if it.Kind() == KindPile {
				contents = Pile{it}.options()
			}
			for _, id := range contents {
				needItem(it.ID(), id)
			}
		}
	}
}

func (w *World) allItems() []*Item {
	all := make([]*Item, 0, len(w.items))
	for _, it := range w.items {
		all = append(all, it)
	}
	return all
}

func (w *World) snapshot() error {
	for _, r := range w.rooms {
		if err := w.snaps.save("room", r); err != nil {
			return err
		}
	}
	for _, it := range w.items {
		if err := w.snaps.save("item", it); err != nil {
			return err
		}
	}
	for _, m := range w.monsters {
		if err := w.snaps.save("monster", m); err != nil {
			return err
		}
	}
	return w.snaps.save("player", w.player)
}

// Start begins the game and returns the opening narration: the intro text, if
// any, and the description of the starting room.
func (w *World) Start() string {
	w.status = Continue
	var buf narration.Buffer
	buf.Read(w.Config.Intro)
	buf.Read(w.describeRoom(false, true))
	return buf.Send()
}

// Reset puts every entity back the way it was loaded and starts the game over.
// It returns the opening narration.
func (w *World) Reset() string {
	for _, r := range w.rooms {
		w.restore("room", r)
	}
	for _, it := range w.items {
		w.restore("item", it)
	}
	for _, m := range w.monsters {
		w.restore("monster", m)
	}
	w.restore("player", w.player)
	w.history.Clear()

	w.log.Info("world reset")
	return w.Start()
}

func (w *World) restore(kind string, e Entity) {
	if err := w.snaps.restore(kind, e); err != nil {
		w.log.WithError(err).Error("could not reset entity")
	}
}

// Status returns the session status after the most recent turn.
func (w *World) Status() Status {
	return w.status
}

// Player returns the player.
func (w *World) Player() *Player {
	return w.player
}

// CurrentRoom returns the room the player is in.
func (w *World) CurrentRoom() *Room {
	return w.rooms[w.player.Room()]
}

// Room returns the room with the given id.
func (w *World) Room(id string) (*Room, bool) {
	r, ok := w.rooms[id]
	return r, ok
}

// Item returns the item with the given id.
func (w *World) Item(id string) (*Item, bool) {
	it, ok := w.items[id]
	return it, ok
}

// Monster returns the monster with the given id.
func (w *World) Monster(id string) (*Monster, bool) {
	m, ok := w.monsters[id]
	return m, ok
}

// RecentCommands returns up to n of the most recently entered commands, oldest
// first.
func (w *World) RecentCommands(n int) []string {
	return w.history.Recent(n)
}

// Vocabulary returns the verbs the game accepts.
func (w *World) Vocabulary() command.Vocabulary {
	return w.vocab
}

// itemName returns the display name of the item with the given id.
func (w *World) itemName(id string) string {
	if it, ok := w.items[id]; ok {
		return it.Name()
	}
	return id
}

func (w *World) itemNames(ids []string) []string {
	names := make([]string, len(ids))
	for i := range ids {
		names[i] = w.itemName(ids[i])
	}
	return names
}

// canSee returns whether the player can see in the room.
func (w *World) canSee(r *Room) bool {
	return r.IsLit() || w.lightIsLit()
}

// lightIsLit returns whether the player's light source is in use.
func (w *World) lightIsLit() bool {
	if !w.player.HasLight() {
		return false
	}
	it, ok := w.items[w.player.Light()]
	return ok && it.Fields().Bool("in_use")
}

// exec runs a script against subject, returning whatever narration it made
// even if it failed partway.
func (w *World) exec(script string, subject objscript.Target) string {
	if script == "" {
		return ""
	}
	before := w.player.Room()
	out, err := w.scripts.Exec(script, subject)
	if err != nil {
		w.log.WithError(err).WithField("subject", subject.ID()).Debug("script did not finish")
	}
	w.ensureRoom(before)
	return out
}

// ensureRoom moves the player to fallback if they are in a room that does not
// exist, which a script writing the player's room field can cause.
func (w *World) ensureRoom(fallback string) {
	id := w.player.Room()
	if _, ok := w.rooms[id]; ok {
		return
	}
	if _, ok := w.rooms[fallback]; !ok {
		fallback = w.Config.Start
	}
	w.log.WithFields(logrus.Fields{"room": id, "fallback": fallback}).Warn("player moved to undefined room")
	w.player.MoveTo(fallback)
}
