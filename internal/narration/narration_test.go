package narration

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Buffer(t *testing.T) {
	testCases := []struct {
		name   string
		fill   func(b *Buffer)
		expect string
	}{
		{
			name:   "empty",
			fill:   func(b *Buffer) {},
			expect: "",
		},
		{
			name: "skips empty adds",
			fill: func(b *Buffer) {
				b.Add("You open the box.")
				b.Add("")
				b.Addf("Inside it you find %s.", "a key")
			},
			expect: "You open the box.\nInside it you find a key.",
		},
		{
			name: "reads blocks line by line",
			fill: func(b *Buffer) {
				b.Read("<< Hall >>\n\nA long hall.")
				b.Add("Exits: north")
			},
			expect: "<< Hall >>\n\nA long hall.\nExits: north",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var b Buffer
			tc.fill(&b)

			assert.Equal(tc.expect, b.Send())
			assert.Equal(0, b.Len(), "send should drain the buffer")
		})
	}
}
