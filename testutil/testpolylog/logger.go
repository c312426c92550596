package testpolylog

import (
	"bytes"
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
)

// NewLoggerWithCtx returns a logger at the given level along with a context
// which has it attached.
func NewLoggerWithCtx(
	ctx context.Context,
	level zerolog.Level,
) (polylog.Logger, context.Context) {
	logger := polyzero.NewLogger(polyzero.WithLevel(level))
	return logger, logger.WithContext(ctx)
}

// NewBufferedLogger returns a debug-level logger which writes into the
// returned buffer, for asserting on log output.
func NewBufferedLogger() (polylog.Logger, *SyncBuffer) {
	buf := new(SyncBuffer)
	return polyzero.NewLogger(polyzero.WithOutput(buf)), buf
}

// SyncBuffer is a bytes.Buffer safe for concurrent writes, since peer
// disconnects log from their own goroutines.
type SyncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *SyncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *SyncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
