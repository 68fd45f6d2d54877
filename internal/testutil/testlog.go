package testutil

import (
	"sync"

	"port-terminal-core/internal/logx"
)

// LogEntry is a recorded log entry
type LogEntry struct {
	Level  string
	Msg    string
	Fields []logx.Field
}

// LogRecorder records log entries for assertions
type LogRecorder struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewLogRecorder returns a new recorder
func NewLogRecorder() *LogRecorder { return &LogRecorder{} }

// Logger returns a bound logger
func (r *LogRecorder) Logger() logx.Logger {
	return boundLogger{r: r}
}

// Entries returns a copy of the recorded entries
func (r *LogRecorder) Entries() []LogEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]LogEntry, len(r.entries))
	copy(out, r.entries)
	return out
}

func (r *LogRecorder) add(level, msg string, fields []logx.Field) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := append([]logx.Field(nil), fields...)
	r.entries = append(r.entries, LogEntry{Level: level, Msg: msg, Fields: cp})
}

type boundLogger struct {
	r    *LogRecorder
	base []logx.Field
}

func (b boundLogger) Debug(msg string, f ...logx.Field) {
	b.r.add("debug", msg, append(b.base, f...))
}

func (b boundLogger) Info(msg string, f ...logx.Field) {
	b.r.add("info", msg, append(b.base, f...))
}

func (b boundLogger) Warn(msg string, f ...logx.Field) {
	b.r.add("warn", msg, append(b.base, f...))
}

func (b boundLogger) Error(msg string, f ...logx.Field) {
	b.r.add("error", msg, append(b.base, f...))
}

func (b boundLogger) With(f ...logx.Field) logx.Logger {
	nb := boundLogger{r: b.r, base: append([]logx.Field(nil), b.base...)}
	nb.base = append(nb.base, f...)
	return nb
}

func (b boundLogger) Sync() error { return nil }

var _ logx.Logger = boundLogger{}
