package chainwallet

import (
	"time"

	nethttp "github.com/sunnya97/cosmos-kit/pkg/network/http"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

const (
	// DefaultProbeTimeout bounds a single endpoint health probe.
	DefaultProbeTimeout = 3 * time.Second
	// DefaultEndpointCacheTTL is how long a healthy endpoint is reused
	// before being probed again.
	DefaultEndpointCacheTTL = time.Minute
)

// ChainWalletOption configures a ChainWallet.
type ChainWalletOption func(*ChainWallet)

func WithLogger(logger polylog.Logger) ChainWalletOption {
	return func(cw *ChainWallet) {
		cw.logger = logger
	}
}

// WithProbeTimeout bounds each endpoint health probe.
func WithProbeTimeout(timeout time.Duration) ChainWalletOption {
	return func(cw *ChainWallet) {
		cw.probeTimeout = timeout
	}
}

// WithEndpointCacheTTL sets how long resolved endpoints are reused.
func WithEndpointCacheTTL(ttl time.Duration) ChainWalletOption {
	return func(cw *ChainWallet) {
		cw.endpointCacheTTL = ttl
	}
}

// WithProbeClient sets the client used to probe REST endpoints.
func WithProbeClient(probeClient *nethttp.ProbeClient) ChainWalletOption {
	return func(cw *ChainWallet) {
		cw.probeClient = probeClient
	}
}

// WithCallbacks sets the initial lifecycle callbacks.
func WithCallbacks(callbacks wallet.Callbacks) ChainWalletOption {
	return func(cw *ChainWallet) {
		cw.callbacks = callbacks
	}
}

// WithEnv sets the initial environment.
func WithEnv(env wallet.Env) ChainWalletOption {
	return func(cw *ChainWallet) {
		cw.env = env
	}
}
