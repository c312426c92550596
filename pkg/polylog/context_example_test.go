package polylog_test

import (
	"context"
	"os"

	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
)

func ExampleCtx() {
	// Only log info and above.
	levelOpt := polyzero.WithLevel(polyzero.InfoLevel.ZerologLevel())

	// NB: WithOutput is only needed here to print to stdout for the example.
	expectedLogger := polyzero.NewLogger(levelOpt, polyzero.WithOutput(os.Stdout))
	expectedLogger = expectedLogger.With("chain", "osmosis")

	// Associate the logger with the context.
	ctx := expectedLogger.WithContext(context.Background())

	// Retrieve it elsewhere.
	polylog.Ctx(ctx).Debug().Msg("dropped")
	polylog.Ctx(ctx).Info().Msg("wallet connected")

	// Output:
	// {"level":"info","chain":"osmosis","message":"wallet connected"}
}
