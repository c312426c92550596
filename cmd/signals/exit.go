package signals

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sunnya97/cosmos-kit/pkg/polylog"
)

const shutDownTimeout = 30 * time.Second

// GoOnExitSignal calls onInterrupt when the process receives SIGINT or
// SIGTERM, until ctx is done. A second signal, or onInterrupt running for
// longer than shutDownTimeout, exits the process immediately.
func GoOnExitSignal(ctx context.Context, logger polylog.Logger, onInterrupt func()) {
	sigCh := make(chan os.Signal, 1)
	// SIGKILL cannot be trapped.
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		defer signal.Stop(sigCh)

		var sig os.Signal
		select {
		case <-ctx.Done():
			return
		case sig = <-sigCh:
		}
		logger.Info().Msgf("Received signal %s, shutting down...", sig)

		done := make(chan struct{})
		go func() {
			defer close(done)
			onInterrupt()
		}()

		timer := time.NewTimer(shutDownTimeout)
		defer timer.Stop()

		select {
		case <-done:
			logger.Info().Msg("Shutdown completed.")
		case sig := <-sigCh:
			logger.Warn().Msgf("Received another signal %s during shutdown, exiting immediately.", sig)
			os.Exit(130)
		case <-timer.C:
			logger.Warn().Msgf("Shutdown timed out after %s, exiting immediately.", shutDownTimeout)
			os.Exit(1)
		}
	}()
}
