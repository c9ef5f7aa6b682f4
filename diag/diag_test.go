package diag

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	lg := NewLogger(log.New(&buf, "", 0), Info)

	lg.Record(Debug, "hidden")
	Recordf(lg, Error, "glError 0x%x", 0x502)

	assert.Equal(t, "[ERROR] glError 0x502\n", buf.String())
}

func TestCapture(t *testing.T) {
	var c Capture
	c.Record(Info, "surface created")
	c.Record(Error, "could not link program")

	assert.Len(t, c.Entries(), 2)
	assert.Equal(t, []string{"could not link program"}, c.Messages(Warn))
	assert.Equal(t, "WARN", Warn.String())
	assert.Equal(t, "Level(9)", Level(9).String())
}
