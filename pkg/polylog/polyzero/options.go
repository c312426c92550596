package polyzero

import (
	"io"

	"github.com/rs/zerolog"

	"github.com/sunnya97/cosmos-kit/pkg/polylog"
)

// WithOutput replaces the writer of the underlying zerolog logger, keeping
// its level.
func WithOutput(output io.Writer) polylog.LoggerOption {
	return func(logger polylog.Logger) {
		ze := logger.(*zerologLogger)
		ze.Logger = ze.Logger.Output(output)
	}
}

// WithLevel sets the minimum level which will be written.
func WithLevel(level zerolog.Level) polylog.LoggerOption {
	return func(logger polylog.Logger) {
		ze := logger.(*zerologLogger)
		ze.Logger = ze.Logger.Level(level)
	}
}

// WithTimestamp adds a timestamp field to every event.
func WithTimestamp() polylog.LoggerOption {
	return WithSetupFn(func(zl *zerolog.Logger) {
		*zl = zl.With().Timestamp().Logger()
	})
}

// WithSetupFn gives direct access to the underlying zerolog logger.
func WithSetupFn(fn func(logger *zerolog.Logger)) polylog.LoggerOption {
	return func(logger polylog.Logger) {
		fn(&logger.(*zerologLogger).Logger)
	}
}
