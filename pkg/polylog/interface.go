package polylog

import (
	"context"
	"time"
)

// Level is a logging level as understood by the underlying implementation.
type Level interface {
	String() string
	Int() int
}

// LoggerOption configures a Logger at construction time. Options are specific
// to the implementation package which provides them.
type LoggerOption func(logger Logger)

// Logger is the structured logger used throughout the module. Its API mirrors
// zerolog: a level method starts an Event, fields are chained onto it, and the
// event is emitted by Msg, Msgf or Send.
type Logger interface {
	// Debug starts a new message with debug level.
	Debug() Event
	// Info starts a new message with info level.
	Info() Event
	// Warn starts a new message with warn level.
	Warn() Event
	// Error starts a new message with error level.
	Error() Event

	// With returns a child logger with the given key/value pairs added to
	// every event it emits. keyVals MUST have an even length.
	With(keyVals ...any) Logger

	// WithLevel starts a new message with the given level.
	WithLevel(level Level) Event

	// WithContext returns a copy of ctx with the logger attached, to be
	// retrieved later via Ctx.
	WithContext(ctx context.Context) context.Context

	// Write implements io.Writer so the logger can back the standard library log.
	Write(p []byte) (n int, err error)
}

// Event is a single log line under construction.
//
// Nothing is written until one of Msg, Msgf or Send is called.
type Event interface {
	Str(key, value string) Event
	Strs(key string, values []string) Event
	Bool(key string, value bool) Event
	Int(key string, value int) Event
	Int64(key string, value int64) Event
	Uint64(key string, value uint64) Event
	Float64(key string, value float64) Event
	Err(err error) Event
	Time(key string, value time.Time) Event
	Dur(key string, value time.Duration) Event
	Fields(fields any) Event

	// Enabled reports whether the event will be written.
	Enabled() bool
	// Discard disables the event so Msg(f)/Send won't print it.
	Discard() Event

	Msg(msg string)
	Msgf(format string, args ...any)
	Send()
}
