package logging

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func Test_NewTo(t *testing.T) {
	testCases := []struct {
		name        string
		level       string
		format      string
		expectLevel logrus.Level
		expectJSON  bool
	}{
		{name: "explicit debug text", level: "debug", format: "text", expectLevel: logrus.DebugLevel},
		{name: "json", level: "info", format: "json", expectLevel: logrus.InfoLevel, expectJSON: true},
		{name: "bad level falls back", level: "loud", format: "text", expectLevel: logrus.WarnLevel},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			var buf bytes.Buffer
			log := NewTo(&buf, tc.level, tc.format)

			assert.Equal(tc.expectLevel, log.GetLevel())
			log.WithField("room", "hall").Error("boom")
			if tc.expectJSON {
				assert.Contains(buf.String(), `"room":"hall"`)
			} else {
				assert.Contains(buf.String(), "room=hall")
			}
		})
	}
}

func Test_Component(t *testing.T) {
	assert := assert.New(t)

	entry := Component(nil, "objscript")
	assert.Equal("objscript", entry.Data["component"])
}
