// Package fields contains the typed field store that backs every entity in a
// DelveQuest world. A field is a named, tagged value; once a field exists its
// kind is fixed, and the validating setters refuse writes that would change it.
package fields

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/rezi"
)

// Kind is the type of data held in a Value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindBool
	KindList
	KindMap
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a single tagged field value. The zero value is the empty string.
type Value struct {
	kind Kind
	s    string
	i    int
	b    bool
	l    []string
	m    map[string]string
}

// Str returns a string Value.
func Str(s string) Value {
	return Value{kind: KindString, s: s}
}

// Int returns an integer Value.
func Int(i int) Value {
	return Value{kind: KindInt, i: i}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// List returns a list Value holding a copy of items.
func List(items ...string) Value {
	l := make([]string, len(items))
	copy(l, items)
	return Value{kind: KindList, l: l}
}

// Map returns a mapping Value holding a copy of m.
func Map(m map[string]string) Value {
	cp := make(map[string]string, len(m))
	for k, v := range m {
		cp[k] = v
	}
	return Value{kind: KindMap, m: cp}
}

// Literal interprets raw script or definition text. Text that parses as an
// integer becomes an int Value; everything else is kept as a string.
func Literal(raw string) Value {
	if n, err := strconv.Atoi(raw); err == nil {
		return Int(n)
	}
	return Str(raw)
}

// Kind returns the kind of data held in v.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the string form of v. Lists are joined with single spaces and
// maps are rendered as sorted key=value pairs.
func (v Value) Text() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindList:
		return strings.Join(v.l, " ")
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		pairs := make([]string, len(keys))
		for i, k := range keys {
			pairs[i] = k + "=" + v.m[k]
		}
		return strings.Join(pairs, " ")
	default:
		return v.s
	}
}

// Num returns the integer held in v. String values holding a number are
// converted; anything else is 0.
func (v Value) Num() int {
	switch v.kind {
	case KindInt:
		return v.i
	case KindString:
		n, _ := strconv.Atoi(strings.TrimSpace(v.s))
		return n
	case KindBool:
		if v.b {
			return 1
		}
	}
	return 0
}

// Truth returns whether v is true. Strings are true when they equal "true"
// ignoring case, which is how boolean-as-string definitions are read.
func (v Value) Truth() bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindString:
		return strings.EqualFold(strings.TrimSpace(v.s), "true")
	case KindInt:
		return v.i != 0
	case KindList:
		return len(v.l) > 0
	case KindMap:
		return len(v.m) > 0
	}
	return false
}

// Items returns a copy of the list held in v. A non-empty string is treated
// as a single-element list.
func (v Value) Items() []string {
	switch v.kind {
	case KindList:
		l := make([]string, len(v.l))
		copy(l, v.l)
		return l
	case KindString:
		if v.s != "" {
			return []string{v.s}
		}
	}
	return nil
}

// Mapping returns a copy of the mapping held in v, or nil if v is not a map.
func (v Value) Mapping() map[string]string {
	if v.kind != KindMap {
		return nil
	}
	cp := make(map[string]string, len(v.m))
	for k, val := range v.m {
		cp[k] = val
	}
	return cp
}

// Copy returns a deep copy of v.
func (v Value) Copy() Value {
	switch v.kind {
	case KindList:
		return List(v.l...)
	case KindMap:
		return Map(v.m)
	}
	return v
}

// Equal returns whether o is a Value with the same kind and contents as v.
func (v Value) Equal(o any) bool {
	other, ok := o.(Value)
	if !ok {
		otherPtr, ok := o.(*Value)
		if !ok || otherPtr == nil {
			return false
		}
		other = *otherPtr
	}
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindList:
		if len(v.l) != len(other.l) {
			return false
		}
		for i := range v.l {
			if v.l[i] != other.l[i] {
				return false
			}
		}
		return true
	case KindMap:
		if len(v.m) != len(other.m) {
			return false
		}
		for k, val := range v.m {
			if oVal, ok := other.m[k]; !ok || oVal != val {
				return false
			}
		}
		return true
	}
	return v.s == other.s && v.i == other.i && v.b == other.b
}

// String returns a debug representation of v.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.s)
	case KindList:
		return "[" + strings.Join(v.l, ", ") + "]"
	case KindMap:
		return "{" + v.Text() + "}"
	}
	return v.Text()
}

// MarshalBinary converts v into a slice of bytes that can be decoded with
// UnmarshalBinary.
func (v Value) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncInt(int(v.kind))...)
	switch v.kind {
	case KindString:
		data = append(data, rezi.EncString(v.s)...)
	case KindInt:
		data = append(data, rezi.EncInt(v.i)...)
	case KindBool:
		data = append(data, rezi.EncBool(v.b)...)
	case KindList:
		data = append(data, rezi.EncInt(len(v.l))...)
		for _, item := range v.l {
			data = append(data, rezi.EncString(item)...)
		}
	case KindMap:
		keys := make([]string, 0, len(v.m))
		for k := range v.m {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		data = append(data, rezi.EncInt(len(keys))...)
		for _, k := range keys {
			data = append(data, rezi.EncString(k)...)
			data = append(data, rezi.EncString(v.m[k])...)
		}
	default:
		return nil, fmt.Errorf("unknown value kind %d", int(v.kind))
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into v.
// All of v's data is replaced.
func (v *Value) UnmarshalBinary(data []byte) error {
	var n int
	var err error

	kindNum, n, err := rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("kind: %w", err)
	}
	data = data[n:]

	decoded := Value{kind: Kind(kindNum)}
	switch decoded.kind {
	case KindString:
		decoded.s, _, err = rezi.DecString(data)
	case KindInt:
		decoded.i, _, err = rezi.DecInt(data)
	case KindBool:
		decoded.b, _, err = rezi.DecBool(data)
	case KindList:
		var count int
		count, n, err = rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("list length: %w", err)
		}
		data = data[n:]
		decoded.l = make([]string, count)
		for i := 0; i < count; i++ {
			decoded.l[i], n, err = rezi.DecString(data)
			if err != nil {
				return fmt.Errorf("list item %d: %w", i, err)
			}
			data = data[n:]
		}
	case KindMap:
		var count int
		count, n, err = rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("map length: %w", err)
		}
		data = data[n:]
		decoded.m = make(map[string]string, count)
		for i := 0; i < count; i++ {
			var k, val string
			k, n, err = rezi.DecString(data)
			if err != nil {
				return fmt.Errorf("map key %d: %w", i, err)
			}
			data = data[n:]
			val, n, err = rezi.DecString(data)
			if err != nil {
				return fmt.Errorf("map value %q: %w", k, err)
			}
			data = data[n:]
			decoded.m[k] = val
		}
	default:
		return fmt.Errorf("unknown value kind %d", kindNum)
	}
	if err != nil {
		return fmt.Errorf("%s value: %w", decoded.kind, err)
	}

	*v = decoded
	return nil
}
