package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConsoleLogger_Levels(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, LevelInfo)

	l.Debug("hidden")
	l.Info("info line")
	l.Warn("warn line")
	l.Error("error line")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "info line")
	assert.Contains(t, out, "WARN")
	assert.Contains(t, out, "error line")
	assert.Equal(t, 3, strings.Count(out, "\n"))
}

func TestConsoleLogger_FieldsSorted(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger(&buf, LevelDebug).
		WithFields(StringField("suite", "S"))

	l.Debug("named", StringField("name", "S - m"), IntField("a", 1))

	assert.Contains(t, buf.String(), "{a=1, name=S - m, suite=S}")
	assert.NoError(t, l.Close())
}
