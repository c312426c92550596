package polylog

import "context"

type ctxKey struct{}

// CtxKey is the key under which a Logger is stored in a context.Context. It is
// independent of any implementation-specific context key.
var CtxKey = ctxKey{}

// DefaultContextLogger is returned by Ctx when no logger is attached to the
// context. Implementation packages assign it in init() to avoid import cycles.
var DefaultContextLogger Logger

// Ctx returns the Logger associated with ctx, or DefaultContextLogger if none
// is attached.
//
// To attach a logger, call its WithContext method.
func Ctx(ctx context.Context) Logger {
	logger, ok := ctx.Value(CtxKey).(Logger)
	if !ok {
		return DefaultContextLogger
	}
	return logger
}
