package game

import (
	"fmt"
	"strings"

	"github.com/dekarrin/delveq/internal/command"
	"github.com/dekarrin/delveq/internal/dqerrors"
	"github.com/dekarrin/rosed"
)

// This file contains the handlers for the debug command, which is only
// available when Config.Debug is set.

func (w *World) executeDebug(cmd command.Command) (string, error) {
	args := cmd.Args()
	if len(args) < 1 {
		return "", dqerrors.New(dqerrors.ErrBadArgs, "Debug what? Use DEBUG ROOM, DEBUG FIELDS, DEBUG EXEC, or DEBUG HISTORY.", "debug with no subcommand")
	}

	switch args[0] {
	case "room":
		return w.executeDebugRoom(strings.Join(args[1:], " "))
	case "fields":
		return w.executeDebugFields(strings.Join(args[1:], " "))
	case "exec":
		return w.executeDebugExec(rawArgs(w.rawInput, 2))
	case "history":
		return strings.Join(w.history.Recent(w.history.Len()), "\n"), nil
	default:
		return "", dqerrors.Newf(dqerrors.ErrBadArgs, "There is no DEBUG action called %q.", args[0])
	}
}

// rawArgs returns the input after the first skip words, with its case kept.
func rawArgs(raw string, skip int) string {
	rest := strings.TrimSpace(raw)
	for i := 0; i < skip; i++ {
		_, after, found := strings.Cut(rest, " ")
		if !found {
			return ""
		}
		rest = strings.TrimSpace(after)
	}
	return rest
}

func (w *World) executeDebugRoom(id string) (string, error) {
	if id == "" {
		room := w.CurrentRoom()
		return w.fieldTable(room) + "\n\n(Type 'DEBUG ROOM id' to teleport to that room)", nil
	}

	if _, ok := w.rooms[id]; !ok {
		return "", dqerrors.Newf(dqerrors.ErrNotFound, "There doesn't seem to be any rooms with id %q in this world.", id)
	}
	w.player.MoveTo(id)
	return fmt.Sprintf("Poof! You are now in %q.", id), nil
}

func (w *World) executeDebugFields(id string) (string, error) {
	if id == "" {
		id = PlayerID
	}
	t, ok := scriptBackend{w}.Lookup(id)
	if !ok {
		return "", dqerrors.Newf(dqerrors.ErrNotFound, "There doesn't seem to be anything with id %q in this world.", id)
	}
	return w.fieldTable(t.(Entity)), nil
}

func (w *World) executeDebugExec(script string) (string, error) {
	if script == "" {
		return "", dqerrors.New(dqerrors.ErrBadArgs, "Execute what?", "debug exec with no script")
	}
	out, err := w.scripts.Exec(script, w.CurrentRoom())
	if err != nil {
		return out, dqerrors.Wrap(err, dqerrors.ErrScript, "Script error: "+err.Error(), "")
	}
	if out == "" {
		out = "(no output)"
	}
	return out, nil
}

// fieldTable returns a text table of every field on an entity.
func (w *World) fieldTable(e Entity) string {
	data := [][]string{{"Field", "Kind", "Value"}}
	for _, name := range e.Fields().Names() {
		v, _ := e.Fields().Get(name)
		data = append(data, []string{name, v.Kind().String(), v.Text()})
	}

	tableOpts := rosed.Options{
		TableHeaders:             true,
		NoTrailingLineSeparators: true,
	}

	return rosed.Edit(fmt.Sprintf("%s (%s)\n", e.Name(), e.ID())).
		InsertTableOpts(rosed.End, data, w.Config.Width, tableOpts).
		String()
}
