package logging

import (
	"fmt"
	"sync"
)

// NullLogger discards everything. Safe for concurrent use.
type NullLogger struct{}

// NewNullLogger creates a new NullLogger.
func NewNullLogger() *NullLogger {
	return &NullLogger{}
}

func (l *NullLogger) Verbose(format string, args ...interface{}) {}
func (l *NullLogger) Info(format string, args ...interface{})    {}
func (l *NullLogger) Error(format string, args ...interface{})   {}

// Level identifies which Logger method produced an Entry.
type Level string

const (
	LevelVerbose Level = "verbose"
	LevelInfo    Level = "info"
	LevelError   Level = "error"
)

// Entry is one formatted message kept by a Recorder.
type Entry struct {
	Level   Level
	Message string
}

// Recorder keeps every message in memory, verbose ones included.
// Tests use it to assert on what a component reported.
type Recorder struct {
	mu      sync.Mutex
	entries []Entry
}

func (r *Recorder) Verbose(format string, args ...interface{}) { r.add(LevelVerbose, format, args) }
func (r *Recorder) Info(format string, args ...interface{})    { r.add(LevelInfo, format, args) }
func (r *Recorder) Error(format string, args ...interface{})   { r.add(LevelError, format, args) }

func (r *Recorder) add(level Level, format string, args []interface{}) {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, Entry{Level: level, Message: msg})
}

// Messages returns the messages logged at level, oldest first.
func (r *Recorder) Messages(level Level) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []string
	for _, e := range r.entries {
		if e.Level == level {
			out = append(out, e.Message)
		}
	}
	return out
}

// Entries returns a copy of everything recorded.
func (r *Recorder) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Entry(nil), r.entries...)
}
