package fields

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/rezi"
)

var (
	// ErrKindMismatch is returned when a write would change the kind of an
	// existing field.
	ErrKindMismatch = errors.New("field kind mismatch")

	// ErrNoField is returned when an operation requires a field that does not
	// exist.
	ErrNoField = errors.New("no such field")
)

// Bag is a plain set of named values, as produced by a definition loader.
type Bag map[string]Value

// Store holds the named fields of a single entity. The zero value is not
// ready for use; create one with NewStore.
type Store struct {
	vals map[string]Value
}

// NewStore creates a Store populated with a deep copy of the given bag.
func NewStore(b Bag) *Store {
	s := &Store{vals: make(map[string]Value, len(b))}
	for name, v := range b {
		s.vals[name] = v.Copy()
	}
	return s
}

func mismatch(name string, have, want Kind) error {
	return fmt.Errorf("%w: %q is a %s field, not %s", ErrKindMismatch, name, have, want)
}

// Has returns whether the field exists.
func (s *Store) Has(name string) bool {
	_, ok := s.vals[name]
	return ok
}

// Get returns a copy of the named field's value.
func (s *Store) Get(name string) (Value, bool) {
	v, ok := s.vals[name]
	if !ok {
		return Value{}, false
	}
	return v.Copy(), true
}

// Names returns the names of all fields in alphabetical order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.vals))
	for k := range s.vals {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of fields in the store.
func (s *Store) Len() int {
	return len(s.vals)
}

// Set assigns v to the named field. If the field already exists with a
// different kind, ErrKindMismatch is returned and nothing changes.
func (s *Store) Set(name string, v Value) error {
	if cur, ok := s.vals[name]; ok && cur.kind != v.kind {
		return mismatch(name, cur.kind, v.kind)
	}
	s.vals[name] = v.Copy()
	return nil
}

// SetLiteral assigns raw text to the named field, interpreting it according
// to the kind of the existing field. New fields become ints if raw is numeric
// and strings otherwise.
func (s *Store) SetLiteral(name, raw string) error {
	cur, ok := s.vals[name]
	if !ok {
		s.vals[name] = Literal(raw)
		return nil
	}

	switch cur.kind {
	case KindString:
		s.vals[name] = Str(raw)
	case KindInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return mismatch(name, KindInt, KindString)
		}
		s.vals[name] = Int(n)
	case KindBool:
		b, err := strconv.ParseBool(strings.ToLower(raw))
		if err != nil {
			return mismatch(name, KindBool, Literal(raw).kind)
		}
		s.vals[name] = Bool(b)
	default:
		return mismatch(name, cur.kind, Literal(raw).kind)
	}
	return nil
}

// Put unconditionally replaces the named field with v, regardless of kind.
func (s *Store) Put(name string, v Value) {
	s.vals[name] = v.Copy()
}

// Delete removes the named field.
func (s *Store) Delete(name string) {
	delete(s.vals, name)
}

// Text returns the string form of the named field, or "" if it is absent.
func (s *Store) Text(name string) string {
	return s.vals[name].Text()
}

// Int returns the integer value of the named field, or 0 if it is absent.
func (s *Store) Int(name string) int {
	return s.vals[name].Num()
}

// Bool returns whether the named field holds a true value.
func (s *Store) Bool(name string) bool {
	return s.vals[name].Truth()
}

// List returns a copy of the named list field.
func (s *Store) List(name string) []string {
	return s.vals[name].Items()
}

// Map returns a copy of the named mapping field.
func (s *Store) Map(name string) map[string]string {
	return s.vals[name].Mapping()
}

// SetText replaces the named field with a string.
func (s *Store) SetText(name, text string) {
	s.vals[name] = Str(text)
}

// SetInt replaces the named field with an integer.
func (s *Store) SetInt(name string, n int) {
	s.vals[name] = Int(n)
}

// SetBool sets the named field to b. A boolean-as-string field stays a string.
func (s *Store) SetBool(name string, b bool) {
	if cur, ok := s.vals[name]; ok && cur.kind == KindString {
		s.vals[name] = Str(strconv.FormatBool(b))
		return
	}
	s.vals[name] = Bool(b)
}

// SetList replaces the named field with a list.
func (s *Store) SetList(name string, items []string) {
	s.vals[name] = List(items...)
}

// Add adds n to the named integer field, creating it with value n if it is
// absent.
func (s *Store) Add(name string, n int) error {
	cur, ok := s.vals[name]
	if !ok {
		s.vals[name] = Int(n)
		return nil
	}
	if cur.kind != KindInt {
		return mismatch(name, cur.kind, KindInt)
	}
	s.vals[name] = Int(cur.i + n)
	return nil
}

// Toggle flips the named field. Bool fields invert, and string fields that
// hold "true" or "false" in any case flip while keeping their letter case
// style. It returns whether anything changed.
func (s *Store) Toggle(name string) (bool, error) {
	cur, ok := s.vals[name]
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrNoField, name)
	}

	switch cur.kind {
	case KindBool:
		s.vals[name] = Bool(!cur.b)
		return true, nil
	case KindString:
		var flipped string
		switch strings.ToLower(cur.s) {
		case "true":
			flipped = "false"
		case "false":
			flipped = "true"
		default:
			return false, nil
		}
		if cur.s == strings.ToUpper(cur.s) {
			flipped = strings.ToUpper(flipped)
		} else if cur.s[:1] == strings.ToUpper(cur.s[:1]) {
			flipped = strings.ToUpper(flipped[:1]) + flipped[1:]
		}
		s.vals[name] = Str(flipped)
		return true, nil
	}
	return false, nil
}

func (s *Store) listFor(name string) ([]string, error) {
	cur, ok := s.vals[name]
	if !ok {
		return nil, nil
	}
	switch cur.kind {
	case KindList:
		return cur.l, nil
	case KindString:
		// a single-item list written as a bare string in a definition file
		if cur.s == "" {
			return nil, nil
		}
		return []string{cur.s}, nil
	}
	return nil, mismatch(name, cur.kind, KindList)
}

// Prepend puts vals at the front of the named list field, creating the list
// if it is absent.
func (s *Store) Prepend(name string, vals ...string) error {
	cur, err := s.listFor(name)
	if err != nil {
		return err
	}
	updated := make([]string, 0, len(vals)+len(cur))
	updated = append(updated, vals...)
	updated = append(updated, cur...)
	s.vals[name] = Value{kind: KindList, l: updated}
	return nil
}

// Append puts vals at the end of the named list field, creating the list if
// it is absent.
func (s *Store) Append(name string, vals ...string) error {
	cur, err := s.listFor(name)
	if err != nil {
		return err
	}
	updated := make([]string, 0, len(vals)+len(cur))
	updated = append(updated, cur...)
	updated = append(updated, vals...)
	s.vals[name] = Value{kind: KindList, l: updated}
	return nil
}

// Remove removes the first occurrence of val from the named list field. It
// returns whether anything was removed. An absent field becomes an empty
// list.
func (s *Store) Remove(name, val string) (bool, error) {
	cur, err := s.listFor(name)
	if err != nil {
		return false, err
	}
	updated := make([]string, 0, len(cur))
	removed := false
	for _, item := range cur {
		if !removed && item == val {
			removed = true
			continue
		}
		updated = append(updated, item)
	}
	s.vals[name] = Value{kind: KindList, l: updated}
	return removed, nil
}

// Contains returns whether the named list field holds val.
func (s *Store) Contains(name, val string) bool {
	for _, item := range s.vals[name].Items() {
		if item == val {
			return true
		}
	}
	return false
}

// SetKey sets key to val in the named mapping field, creating the mapping if
// it is absent.
func (s *Store) SetKey(name, key, val string) error {
	cur, ok := s.vals[name]
	if !ok {
		s.vals[name] = Map(map[string]string{key: val})
		return nil
	}
	if cur.kind != KindMap {
		return mismatch(name, cur.kind, KindMap)
	}
	updated := cur.Mapping()
	updated[key] = val
	s.vals[name] = Value{kind: KindMap, m: updated}
	return nil
}

// Copy returns a deep copy of the store.
func (s *Store) Copy() *Store {
	return NewStore(s.vals)
}

// MarshalBinary converts s into a slice of bytes that can be decoded with
// UnmarshalBinary. Fields are written in name order.
func (s *Store) MarshalBinary() ([]byte, error) {
	var data []byte

	names := s.Names()
	data = append(data, rezi.EncInt(len(names))...)
	for _, name := range names {
		data = append(data, rezi.EncString(name)...)
		data = append(data, rezi.EncBinary(s.vals[name])...)
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into s.
// All existing fields are replaced.
func (s *Store) UnmarshalBinary(data []byte) error {
	count, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("field count: %w", err)
	}
	data = data[n:]

	vals := make(map[string]Value, count)
	for i := 0; i < count; i++ {
		name, n, err := rezi.DecString(data)
		if err != nil {
			return fmt.Errorf("field %d name: %w", i, err)
		}
		data = data[n:]

		var v Value
		n, err = rezi.DecBinary(data, &v)
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		data = data[n:]

		vals[name] = v
	}

	s.vals = vals
	return nil
}
