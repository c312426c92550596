package walletrepo

import (
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

// WalletRepoOption configures a WalletRepo.
type WalletRepoOption func(*WalletRepo)

// WithMutex enables or disables the one-connected-wallet rule. It is
// enabled by default.
func WithMutex(enabled bool) WalletRepoOption {
	return func(repo *WalletRepo) {
		repo.mutexEnabled = enabled
	}
}

// WithSessionOptions sets the session options passed to adapters on connect.
func WithSessionOptions(sessionOptions *wallet.SessionOptions) WalletRepoOption {
	return func(repo *WalletRepo) {
		repo.sessionOptions = sessionOptions
	}
}

func WithLogger(logger polylog.Logger) WalletRepoOption {
	return func(repo *WalletRepo) {
		repo.logger = logger
	}
}

// WithActions sets the view controller.
func WithActions(actions Actions) WalletRepoOption {
	return func(repo *WalletRepo) {
		repo.actions = actions
	}
}

// WithEnv sets the initial environment, propagated to every adapter.
func WithEnv(env wallet.Env) WalletRepoOption {
	return func(repo *WalletRepo) {
		repo.env = env
	}
}
