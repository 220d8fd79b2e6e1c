package objscript

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/util"
)

// opcode defines an instruction that can be executed in a script.
type opcode struct {
	name string

	// minArgs is the number of required arguments.
	minArgs int

	// maxArgs is the largest number of arguments accepted, or -1 for no
	// limit.
	maxArgs int

	call func(sc Scope, args []string, depth int) (string, error)
}

func (inter *Interpreter) opcodes() map[string]opcode {
	ops := []opcode{
		{name: "set", minArgs: 2, maxArgs: -1, call: opSet},
		{name: "add", minArgs: 2, maxArgs: 3, call: opAdd},
		{name: "sub", minArgs: 2, maxArgs: 3, call: opSub},
		{name: "toggle", minArgs: 1, maxArgs: 2, call: opToggle},
		{name: "append", minArgs: 2, maxArgs: -1, call: opAppend},
		{name: "remove", minArgs: 2, maxArgs: 3, call: opRemove},
		{name: "add_key", minArgs: 3, maxArgs: -1, call: opAddKey},
		{name: "boost", minArgs: 2, maxArgs: 2, call: opBoost},
		{name: "print", minArgs: 1, maxArgs: 1, call: opPrint},
		{name: "open", minArgs: 0, maxArgs: 1, call: inter.opOpen},
		{name: "run", minArgs: 2, maxArgs: 2, call: inter.opRun},
	}

	table := make(map[string]opcode, len(ops))
	for _, op := range ops {
		table[op.name] = op
	}
	return table
}

// entityWord converts an entity id as written in a script, where spaces are
// written as underscores, into the id used by the world.
func entityWord(s string) string {
	return strings.ReplaceAll(s, "_", " ")
}

// pick chooses the entity an instruction with plain arguments (not counting a
// scope qualifier) operates on. With one extra leading argument, that argument
// must be a qualifier naming the entity. Otherwise the first argument is the
// field name and is resolved through the scope.
func (s Scope) pick(args []string, plain int) (Target, []string, error) {
	if len(args) == plain+1 {
		t, ok := s.qualified(args[0])
		if !ok {
			return nil, nil, fmt.Errorf("%q is not self, player, or here", args[0])
		}
		return t, args[1:], nil
	}
	if len(args) != plain {
		return nil, nil, fmt.Errorf("expected %d arguments, got %d", plain, len(args))
	}
	return s.ResolveOrSubject(args[0]), args, nil
}

func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", errNotInteger, s)
	}
	return n, nil
}

// set K V or set K to F
func opSet(sc Scope, args []string, _ int) (string, error) {
	key := args[0]
	target := sc.ResolveOrSubject(key)

	if len(args) == 3 && args[1] == "to" {
		src, ok := sc.Resolve(args[2])
		if !ok {
			return "", fmt.Errorf("%w: %q", fields.ErrNoField, args[2])
		}
		val, _ := src.Fields().Get(args[2])
		return "", target.Fields().Set(key, val)
	}

	return "", target.Fields().SetLiteral(key, strings.Join(args[1:], " "))
}

func opAdd(sc Scope, args []string, _ int) (string, error) {
	target, args, err := sc.pick(args, 2)
	if err != nil {
		return "", err
	}
	n, err := parseInt(args[1])
	if err != nil {
		return "", err
	}
	return "", target.Fields().Add(args[0], n)
}

func opSub(sc Scope, args []string, _ int) (string, error) {
	target, args, err := sc.pick(args, 2)
	if err != nil {
		return "", err
	}
	n, err := parseInt(args[1])
	if err != nil {
		return "", err
	}

	// a missing field is created holding the literal, same as any other write
	if !target.Fields().Has(args[0]) {
		target.Fields().SetInt(args[0], n)
		return "", nil
	}
	return "", target.Fields().Add(args[0], -n)
}

func opToggle(sc Scope, args []string, _ int) (string, error) {
	target, args, err := sc.pick(args, 1)
	if err != nil {
		return "", err
	}
	if !target.Fields().Has(args[0]) {
		return "", nil
	}
	_, err = target.Fields().Toggle(args[0])
	return "", err
}

func opAppend(sc Scope, args []string, _ int) (string, error) {
	key := args[0]
	vals := make([]string, len(args)-1)
	for i := range args[1:] {
		vals[i] = entityWord(args[i+1])
	}

	target := sc.ResolveOrSubject(key)
	if err := target.Fields().Prepend(key, vals...); err != nil {
		return "", err
	}

	if key == "items" && sc.Room != nil && target.Fields() == sc.Room.Fields() {
		return "You found " + util.MakeTextList(vals, true) + "!", nil
	}
	return "", nil
}

func opRemove(sc Scope, args []string, _ int) (string, error) {
	target, args, err := sc.pick(args, 2)
	if err != nil {
		return "", err
	}
	_, err = target.Fields().Remove(args[0], entityWord(args[1]))
	return "", err
}

func opAddKey(sc Scope, args []string, _ int) (string, error) {
	target := sc.ResolveOrSubject(args[0])
	return "", target.Fields().SetKey(args[0], args[1], strings.Join(args[2:], " "))
}

func opBoost(sc Scope, args []string, _ int) (string, error) {
	if sc.Player == nil {
		return "", fmt.Errorf("%w: player", errNoTarget)
	}
	n, err := parseInt(args[1])
	if err != nil {
		return "", err
	}
	return "", sc.Player.Fields().Add(args[0], n)
}

func opPrint(sc Scope, args []string, _ int) (string, error) {
	src, ok := sc.Resolve(args[0])
	if !ok {
		return "", fmt.Errorf("%w: %q", fields.ErrNoField, args[0])
	}
	return src.Fields().Text(args[0]), nil
}

// lookup finds the entity a script names. Room and monster ids are used as
// written; item ids have their underscores read as spaces.
func (inter *Interpreter) lookup(word string) (Target, bool) {
	if t, ok := inter.world.Lookup(word); ok {
		return t, true
	}
	if id := entityWord(word); id != word {
		return inter.world.Lookup(id)
	}
	return nil, false
}

func (inter *Interpreter) opOpen(sc Scope, args []string, _ int) (string, error) {
	target := sc.Subject
	if len(args) == 1 {
		var ok bool
		target, ok = inter.lookup(args[0])
		if !ok {
			return "", fmt.Errorf("%w: %q", errNoTarget, args[0])
		}
	}
	if target == nil {
		return "", fmt.Errorf("%w: nothing to open", errNoTarget)
	}

	msg, ok := inter.world.Open(target)
	if !ok {
		inter.log.WithField("target", target.ID()).Debug("open on something that cannot be opened")
	}
	return msg, nil
}

func (inter *Interpreter) opRun(sc Scope, args []string, depth int) (string, error) {
	var target Target
	switch args[0] {
	case "current_room", "here":
		target = sc.Room
	case "self":
		target = sc.Subject
	case "player":
		target = sc.Player
	default:
		target, _ = inter.lookup(args[0])
	}
	if target == nil {
		return "", fmt.Errorf("%w: %q", errNoTarget, args[0])
	}

	if !target.Fields().Has(args[1]) {
		return "", fmt.Errorf("%w: %q on %q", fields.ErrNoField, args[1], target.ID())
	}

	return inter.exec(target.Fields().Text(args[1]), target, depth+1)
}
