package bridge

import (
	"time"

	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/retry"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

const (
	DefaultWalletName     = wallet.Name("bridge")
	DefaultPrettyName     = "Mobile bridge"
	DefaultRequestTimeout = 2 * time.Minute
)

// defaultDialRetryStrategy makes up to 3 extra dial attempts, 250ms apart at first.
var defaultDialRetryStrategy = retry.WithExponentialBackoffFn(3, 250, 2000)

// WalletOption configures a Wallet.
type WalletOption func(*Wallet)

// WithName overrides the wallet name, for running several bridges side by side.
func WithName(name wallet.Name) WalletOption {
	return func(w *Wallet) { w.info.Name = name }
}

func WithPrettyName(prettyName string) WalletOption {
	return func(w *Wallet) { w.info.PrettyName = prettyName }
}

func WithLogo(logo string) WalletOption {
	return func(w *Wallet) { w.info.Logo = logo }
}

// WithRequestTimeout bounds the time spent waiting for a reply. Requests which
// need user approval on the remote device can take a while.
func WithRequestTimeout(timeout time.Duration) WalletOption {
	return func(w *Wallet) { w.requestTimeout = timeout }
}

// WithDialRetryStrategy replaces the exponential backoff used when dialing.
func WithDialRetryStrategy(strategy retry.RetryStrategyFunc) WalletOption {
	return func(w *Wallet) { w.dialRetryStrategy = strategy }
}

func WithLogger(logger polylog.Logger) WalletOption {
	return func(w *Wallet) { w.logger = logger }
}
