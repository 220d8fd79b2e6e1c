package dice

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Roller_Roll(t *testing.T) {
	testCases := []struct {
		name   string
		faces  []int
		sides  int
		expect []int
	}{
		{name: "replays faces", faces: []int{19, 20, 1}, sides: 20, expect: []int{19, 20, 1}},
		{name: "wraps around", faces: []int{3}, sides: 6, expect: []int{3, 3, 3}},
		{name: "clamps high faces", faces: []int{20}, sides: 6, expect: []int{6}},
		{name: "clamps low faces", faces: []int{0}, sides: 6, expect: []int{1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			r := New(NewSequence(tc.faces...))

			var actual []int
			for range tc.expect {
				actual = append(actual, r.Roll(tc.sides))
			}

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_Roller_RollMod(t *testing.T) {
	assert := assert.New(t)

	r := New(NewSequence(17))
	natural, total := r.RollMod(20, 3)

	assert.Equal(17, natural)
	assert.Equal(20, total)
	assert.Equal(int64(1), r.Position())
}

func Test_Roller_Choose(t *testing.T) {
	assert := assert.New(t)

	r := New(NewSequence(2))
	assert.Equal("b", r.Choose([]string{"a", "b", "c"}))
	assert.Equal("", r.Choose(nil))
}

func Test_Roller_Seeded_InRange(t *testing.T) {
	assert := assert.New(t)

	r := NewSeeded(42)
	for i := 0; i < 200; i++ {
		v := r.Roll(20)
		assert.GreaterOrEqual(v, 1)
		assert.LessOrEqual(v, 20)
	}
	assert.Equal(0, r.Roll(0))
}
