package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"strings"

	"github.com/rs/zerolog"
)

// Event is one decoded log line.
type Event map[string]any

// Level returns the event level.
func (e Event) Level() string {
	return e.Str(zerolog.LevelFieldName)
}

// Message returns the event message.
func (e Event) Message() string {
	return e.Str(zerolog.MessageFieldName)
}

// Str returns a string field, or "" when it is missing or not a string.
func (e Event) Str(key string) string {
	s, _ := e[key].(string)
	return s
}

// Int returns a numeric field, or 0 when it is missing.
func (e Event) Int(key string) int {
	n, _ := e[key].(float64)
	return int(n)
}

// Recorder keeps log events in memory so a caller can inspect what a run
// reported. It is meant for tests and is not safe for concurrent use.
type Recorder struct {
	buf    bytes.Buffer
	logger zerolog.Logger
}

// NewRecorder returns a recorder capturing events at debug level and above.
func NewRecorder() *Recorder {
	r := &Recorder{}
	r.logger = zerolog.New(&r.buf).Level(zerolog.DebugLevel)
	return r
}

// Logger returns the recording logger.
func (r *Recorder) Logger() *zerolog.Logger {
	return &r.logger
}

// Context returns ctx carrying the recording logger.
func (r *Recorder) Context(ctx context.Context) context.Context {
	return WithLogger(ctx, &r.logger)
}

// Events decodes every recorded event in order.
func (r *Recorder) Events() []Event {
	var events []Event
	scanner := bufio.NewScanner(bytes.NewReader(r.buf.Bytes()))
	for scanner.Scan() {
		var e Event
		if err := json.Unmarshal(scanner.Bytes(), &e); err == nil {
			events = append(events, e)
		}
	}
	return events
}

// Find returns the events at level whose message contains msg.
func (r *Recorder) Find(level, msg string) []Event {
	var out []Event
	for _, e := range r.Events() {
		if e.Level() == level && strings.Contains(e.Message(), msg) {
			out = append(out, e)
		}
	}
	return out
}
