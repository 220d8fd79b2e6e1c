package fields

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Store_SetLiteral(t *testing.T) {
	testCases := []struct {
		name      string
		start     Bag
		field     string
		raw       string
		expect    Value
		expectErr bool
	}{
		{
			name:   "new numeric field becomes int",
			start:  Bag{},
			field:  "gold",
			raw:    "5",
			expect: Int(5),
		},
		{
			name:   "new text field becomes string",
			start:  Bag{},
			field:  "mood",
			raw:    "grumpy",
			expect: Str("grumpy"),
		},
		{
			name:   "string field keeps numeric text as string",
			start:  Bag{"code": Str("abc")},
			field:  "code",
			raw:    "1234",
			expect: Str("1234"),
		},
		{
			name:      "int field rejects text",
			start:     Bag{"HP": Int(10)},
			field:     "HP",
			raw:       "lots",
			expect:    Int(10),
			expectErr: true,
		},
		{
			name:   "bool field accepts any-case boolean",
			start:  Bag{"lit": Bool(false)},
			field:  "lit",
			raw:    "TRUE",
			expect: Bool(true),
		},
		{
			name:      "list field rejects literal",
			start:     Bag{"items": List("rock")},
			field:     "items",
			raw:       "key",
			expect:    List("rock"),
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s := NewStore(tc.start)
			err := s.SetLiteral(tc.field, tc.raw)

			if tc.expectErr {
				assert.ErrorIs(err, ErrKindMismatch)
			} else {
				assert.NoError(err)
			}
			actual, _ := s.Get(tc.field)
			assert.True(tc.expect.Equal(actual), "expected %v, got %v", tc.expect, actual)
		})
	}
}

func Test_Store_Add(t *testing.T) {
	assert := assert.New(t)

	s := NewStore(nil)
	assert.NoError(s.Add("gold", 5))
	assert.Equal(5, s.Int("gold"))
	assert.NoError(s.Add("gold", -2))
	assert.Equal(3, s.Int("gold"))

	s.SetText("name", "Bob")
	assert.ErrorIs(s.Add("name", 1), ErrKindMismatch)
	assert.Equal("Bob", s.Text("name"))
}

func Test_Store_Toggle(t *testing.T) {
	testCases := []struct {
		name          string
		start         Value
		expect        Value
		expectChanged bool
	}{
		{name: "bool true", start: Bool(true), expect: Bool(false), expectChanged: true},
		{name: "bool false", start: Bool(false), expect: Bool(true), expectChanged: true},
		{name: "lower string", start: Str("false"), expect: Str("true"), expectChanged: true},
		{name: "upper string", start: Str("TRUE"), expect: Str("FALSE"), expectChanged: true},
		{name: "title string", start: Str("False"), expect: Str("True"), expectChanged: true},
		{name: "other string", start: Str("open"), expect: Str("open")},
		{name: "int", start: Int(1), expect: Int(1)},
		{name: "list", start: List("a"), expect: List("a")},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			s := NewStore(Bag{"flag": tc.start})
			changed, err := s.Toggle("flag")

			assert.NoError(err)
			assert.Equal(tc.expectChanged, changed)
			actual, _ := s.Get("flag")
			assert.True(tc.expect.Equal(actual), "expected %v, got %v", tc.expect, actual)
		})
	}
}

func Test_Store_Lists(t *testing.T) {
	assert := assert.New(t)

	s := NewStore(Bag{"single": Str("rock"), "HP": Int(3)})

	assert.NoError(s.Prepend("items", "key", "coin"))
	assert.Equal([]string{"key", "coin"}, s.List("items"))

	assert.NoError(s.Prepend("items", "lamp"))
	assert.Equal([]string{"lamp", "key", "coin"}, s.List("items"))

	assert.NoError(s.Append("single", "stone"))
	assert.Equal([]string{"rock", "stone"}, s.List("single"))

	removed, err := s.Remove("items", "key")
	assert.NoError(err)
	assert.True(removed)
	assert.Equal([]string{"lamp", "coin"}, s.List("items"))

	removed, err = s.Remove("items", "sword")
	assert.NoError(err)
	assert.False(removed)

	assert.ErrorIs(s.Prepend("HP", "x"), ErrKindMismatch)
	assert.True(s.Contains("items", "coin"))
	assert.False(s.Contains("items", "key"))
}

func Test_Store_SetKey(t *testing.T) {
	assert := assert.New(t)

	s := NewStore(Bag{"name": Str("Hall")})
	assert.NoError(s.SetKey("map", "north", "kitchen"))
	assert.NoError(s.SetKey("map", "south", "cellar"))
	assert.Equal(map[string]string{"north": "kitchen", "south": "cellar"}, s.Map("map"))
	assert.ErrorIs(s.SetKey("name", "a", "b"), ErrKindMismatch)
}

func Test_Store_SetBool_KeepsStringKind(t *testing.T) {
	assert := assert.New(t)

	s := NewStore(Bag{"open": Str("false")})
	s.SetBool("open", true)

	v, _ := s.Get("open")
	assert.Equal(KindString, v.Kind())
	assert.True(s.Bool("open"))
}

func Test_Store_BinarySnapshotRestoresState(t *testing.T) {
	assert := assert.New(t)

	s := NewStore(Bag{
		"name":  Str("Goblin"),
		"HP":    Int(7),
		"lit":   Bool(true),
		"items": List("corpse", "dagger"),
		"map":   Map(map[string]string{"north": "hall"}),
	})

	snap, err := s.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	assert.NoError(s.Add("HP", -7))
	s.Delete("name")
	s.SetText("extra", "x")

	err = s.UnmarshalBinary(snap)
	if !assert.NoError(err) {
		return
	}

	assert.Equal([]string{"HP", "items", "lit", "map", "name"}, s.Names())
	assert.Equal(7, s.Int("HP"))
	assert.Equal("Goblin", s.Text("name"))
	assert.True(s.Bool("lit"))
	assert.Equal([]string{"corpse", "dagger"}, s.List("items"))
	assert.Equal("hall", s.Map("map")["north"])
}
