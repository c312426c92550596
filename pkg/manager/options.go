package manager

import (
	"github.com/sunnya97/cosmos-kit/pkg/chainwallet"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

// ManagerOption configures a WalletManager.
type ManagerOption func(*WalletManager)

// WithMutex sets whether each chain allows a single connected wallet.
// Defaults to true.
func WithMutex(enabled bool) ManagerOption {
	return func(m *WalletManager) { m.mutexEnabled = enabled }
}

// WithSessionOptions sets the options every repo connects with.
func WithSessionOptions(sessionOptions *wallet.SessionOptions) ManagerOption {
	return func(m *WalletManager) { m.sessionOptions = sessionOptions }
}

func WithEnv(env wallet.Env) ManagerOption {
	return func(m *WalletManager) { m.env = env }
}

// WithChainWalletOptions appends options to every chainwallet the manager
// builds, e.g. probe timeouts.
func WithChainWalletOptions(opts ...chainwallet.ChainWalletOption) ManagerOption {
	return func(m *WalletManager) { m.chainWalletOpts = append(m.chainWalletOpts, opts...) }
}
