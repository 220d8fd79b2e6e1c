// Package objscript runs the small mutation scripts that world definitions
// attach to rooms, items and monsters. A script is a semicolon-separated list
// of instructions, each a space-separated opcode followed by its arguments:
//
//	set openstate open; add gold 5; run here hidden_script
//
// Instructions run in order against a subject entity. A bare field name is
// looked up first on the subject, then on the player, then on the current
// room; the first entity holding the field is the one mutated. Fields that
// exist nowhere are created on the subject.
//
// Scripts are not transactional. If an instruction fails, the instructions
// before it stay applied and the rest of the script is skipped.
package objscript

import (
	"strings"

	"github.com/dekarrin/delveq/internal/fields"
	"github.com/dekarrin/delveq/internal/logging"
	"github.com/dekarrin/delveq/internal/narration"
	"github.com/sirupsen/logrus"
)

// DefaultMaxDepth is how deeply run instructions may nest.
const DefaultMaxDepth = 32

// Target is anything a script can read and write fields on.
type Target interface {
	ID() string
	Fields() *fields.Store
}

// Backend is the view of the world a script runs against.
type Backend interface {

	// Player returns the player entity.
	Player() Target

	// CurrentRoom returns the room the player is in.
	CurrentRoom() Target

	// Lookup finds an entity by id, checking monsters, then rooms, then items.
	Lookup(id string) (Target, bool)

	// Open opens t if it is an openable item, returning the narration of
	// opening it. If t cannot be opened, ok is false.
	Open(t Target) (msg string, ok bool)
}

// Scope is the three-tier resolution context an instruction's bare field
// names are resolved against.
type Scope struct {
	Subject Target
	Player  Target
	Room    Target
}

// Tiers returns the non-nil members of the scope in resolution order. An
// entity that appears in more than one tier is only listed once.
func (s Scope) Tiers() []Target {
	var tiers []Target
	for _, t := range []Target{s.Subject, s.Player, s.Room} {
		if t == nil {
			continue
		}
		dup := false
		for _, existing := range tiers {
			if existing.Fields() == t.Fields() {
				dup = true
				break
			}
		}
		if !dup {
			tiers = append(tiers, t)
		}
	}
	return tiers
}

// Resolve returns the first entity in the scope that has the named field.
func (s Scope) Resolve(field string) (Target, bool) {
	for _, t := range s.Tiers() {
		if t.Fields().Has(field) {
			return t, true
		}
	}
	return nil, false
}

// ResolveOrSubject returns the first entity in the scope that has the named
// field, or the subject if none do.
func (s Scope) ResolveOrSubject(field string) Target {
	if t, ok := s.Resolve(field); ok {
		return t
	}
	return s.Subject
}

// qualified returns the scope member named by a qualifier word, if word is
// one.
func (s Scope) qualified(word string) (Target, bool) {
	switch word {
	case "self":
		return s.Subject, s.Subject != nil
	case "player":
		return s.Player, s.Player != nil
	case "here", "current_room":
		return s.Room, s.Room != nil
	}
	return nil, false
}

// Interpreter executes scripts against a Backend.
type Interpreter struct {
	world    Backend
	ops      map[string]opcode
	log      *logrus.Entry
	maxDepth int
}

// New creates an Interpreter for the given world. If log is nil, diagnostics
// are discarded.
func New(world Backend, log *logrus.Entry) *Interpreter {
	inter := &Interpreter{
		world:    world,
		log:      logging.Component(log, "objscript"),
		maxDepth: DefaultMaxDepth,
	}
	inter.ops = inter.opcodes()
	return inter
}

// SetMaxDepth sets how deeply run instructions may nest.
func (inter *Interpreter) SetMaxDepth(depth int) {
	inter.maxDepth = depth
}

// Exec runs script against subject and returns the narration it produced. If
// an instruction fails, the narration produced before the failure is returned
// along with an *Error describing it.
func (inter *Interpreter) Exec(script string, subject Target) (string, error) {
	return inter.exec(script, subject, 0)
}

func (inter *Interpreter) exec(script string, subject Target, depth int) (string, error) {
	if depth > inter.maxDepth {
		err := newError(subject, 0, script, errTooDeep)
		inter.report(err)
		return "", err
	}

	scope := Scope{
		Subject: subject,
		Player:  inter.world.Player(),
		Room:    inter.world.CurrentRoom(),
	}

	var buf narration.Buffer
	for idx, instr := range Split(script) {
		tokens := strings.Fields(instr)
		name := strings.ToLower(tokens[0])
		args := tokens[1:]

		op, ok := inter.ops[name]
		if !ok {
			err := newError(subject, idx, instr, errUnknownOpcode)
			inter.report(err)
			return buf.Send(), err
		}
		if len(args) < op.minArgs || (op.maxArgs >= 0 && len(args) > op.maxArgs) {
			err := newError(subject, idx, instr, argCountError(op, len(args)))
			inter.report(err)
			return buf.Send(), err
		}

		out, err := op.call(scope, args, depth)
		buf.Read(out)
		if err != nil {
			// errors from nested runs were already reported at their own level
			se, nested := err.(*Error)
			if !nested {
				se = newError(subject, idx, instr, err)
				inter.report(se)
			}
			return buf.Send(), se
		}
	}

	return buf.Send(), nil
}

func (inter *Interpreter) report(err error) {
	data := logrus.Fields{"error": err.Error()}
	if se, ok := err.(*Error); ok {
		data["subject"] = se.Subject
		data["instruction"] = se.Instruction
	}
	inter.log.WithFields(data).Warn("script aborted")
}

// Split breaks a script into its instructions, dropping empty ones.
func Split(script string) []string {
	var instrs []string
	for _, part := range strings.Split(script, ";") {
		part = strings.TrimSpace(part)
		if part != "" {
			instrs = append(instrs, part)
		}
	}
	return instrs
}
