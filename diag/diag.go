// Package diag carries diagnostic records out of the rendering core without
// tying it to a process-wide logger.
package diag

import (
	"fmt"
	"log"
	"sync"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	}
	return fmt.Sprintf("Level(%d)", int(l))
}

// Recorder receives diagnostic messages.
type Recorder interface {
	Record(level Level, message string)
}

// Recordf formats a message and hands it to r.
func Recordf(r Recorder, level Level, format string, args ...any) {
	r.Record(level, fmt.Sprintf(format, args...))
}

// Logger writes records to a standard library logger. Records below Min are
// dropped.
type Logger struct {
	l   *log.Logger
	Min Level
}

// NewLogger returns a Logger writing to l, or to the standard logger when l
// is nil.
func NewLogger(l *log.Logger, min Level) *Logger {
	if l == nil {
		l = log.Default()
	}
	return &Logger{l: l, Min: min}
}

func (lg *Logger) Record(level Level, message string) {
	if level < lg.Min {
		return
	}
	lg.l.Printf("[%s] %s", level, message)
}

// Entry is one captured record.
type Entry struct {
	Level   Level
	Message string
}

// Capture keeps every record in memory.
type Capture struct {
	mu      sync.Mutex
	entries []Entry
}

func (c *Capture) Record(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = append(c.entries, Entry{Level: level, Message: message})
}

// Entries returns a copy of the captured records.
func (c *Capture) Entries() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.entries...)
}

// Messages returns the messages recorded at level or above.
func (c *Capture) Messages(min Level) []string {
	var out []string
	for _, e := range c.Entries() {
		if e.Level >= min {
			out = append(out, e.Message)
		}
	}
	return out
}

// Discard drops every record.
var Discard Recorder = discard{}

type discard struct{}

func (discard) Record(Level, string) {}
