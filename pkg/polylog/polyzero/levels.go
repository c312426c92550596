package polyzero

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/sunnya97/cosmos-kit/pkg/polylog"
)

const (
	DebugLevel = Level(zerolog.DebugLevel)
	InfoLevel  = Level(zerolog.InfoLevel)
	WarnLevel  = Level(zerolog.WarnLevel)
	ErrorLevel = Level(zerolog.ErrorLevel)
)

var _ polylog.Level = Level(0)

// Level implements polylog.Level for zerolog levels.
type Level int

// Levels returns all supported levels, lowest first.
func Levels() []Level {
	return []Level{DebugLevel, InfoLevel, WarnLevel, ErrorLevel}
}

func (lvl Level) String() string {
	return zerolog.Level(lvl).String()
}

func (lvl Level) Int() int {
	return int(lvl)
}

// ParseLevel maps a CLI level string (debug|info|warn|error) onto a zerolog level.
func ParseLevel(levelStr string) (zerolog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(levelStr)) {
	case "debug":
		return zerolog.DebugLevel, nil
	case "info", "":
		return zerolog.InfoLevel, nil
	case "warn", "warning":
		return zerolog.WarnLevel, nil
	case "error":
		return zerolog.ErrorLevel, nil
	default:
		return zerolog.NoLevel, fmt.Errorf("unsupported log level %q", levelStr)
	}
}

// ZerologLevel returns the zerolog representation of lvl.
func (lvl Level) ZerologLevel() zerolog.Level {
	return zerolog.Level(lvl)
}
