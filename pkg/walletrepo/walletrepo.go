package walletrepo

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/sunnya97/cosmos-kit/pkg/chain"
	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

// WalletRepo holds every wallet adapter registered for one chain.
type WalletRepo struct {
	logger polylog.Logger
	record *chain.Record
	// wallets is fixed at construction, in registration order.
	wallets        []wallet.ChainWallet
	sessionOptions *wallet.SessionOptions
	mutexEnabled   bool
	inUse          atomic.Bool

	mu      sync.RWMutex
	env     wallet.Env
	actions Actions

	// peerMu guards the count of peer disconnections started by the mutex
	// hook and not finished yet; peersIdle is closed when it drops to zero.
	peerMu       sync.Mutex
	peersPending int
	peersIdle    chan struct{}
}

// NewWalletRepo returns a repo for record over wallets. When the mutex is
// enabled, every adapter gets a BeforeConnect hook which disconnects its
// connected peers; the adapter's previous BeforeConnect, if any, runs after
// it and the other callbacks are left untouched.
func NewWalletRepo(
	record *chain.Record,
	wallets []wallet.ChainWallet,
	opts ...WalletRepoOption,
) *WalletRepo {
	repo := &WalletRepo{
		logger:       polyzero.NewLogger(polyzero.WithLevel(polyzero.InfoLevel.ZerologLevel())),
		record:       record,
		wallets:      append([]wallet.ChainWallet(nil), wallets...),
		mutexEnabled: true,
	}
	for _, opt := range opts {
		opt(repo)
	}
	repo.logger = logging.ForChainComponent(repo.logger, logging.ComponentWalletRepo, record.Name)

	for _, w := range repo.wallets {
		w.SetEnv(repo.env)
	}

	if repo.mutexEnabled {
		for _, w := range repo.wallets {
			repo.injectMutexHook(w)
		}
	}

	return repo
}

// injectMutexHook wraps the BeforeConnect callback of w so that connecting
// w disconnects every other adapter which is not already disconnected.
func (repo *WalletRepo) injectMutexHook(w wallet.ChainWallet) {
	callbacks := w.Callbacks()
	previous := callbacks.BeforeConnect

	callbacks.BeforeConnect = func(ctx context.Context) error {
		repo.disconnectPeers(ctx, w)
		if previous != nil {
			return previous(ctx)
		}
		return nil
	}
	w.UpdateCallbacks(callbacks)
}

// disconnectPeers starts the disconnection of every connected peer of
// connecting without waiting for it. Failures are logged only.
func (repo *WalletRepo) disconnectPeers(ctx context.Context, connecting wallet.ChainWallet) {
	peerCtx := context.WithoutCancel(ctx)

	for _, peer := range repo.Wallets() {
		if peer == connecting || peer.IsWalletDisconnected() {
			continue
		}

		repo.peerStarted()
		go func(peer wallet.ChainWallet) {
			defer repo.peerDone()

			logger := repo.logger.With(
				logging.FieldWallet, string(peer.WalletName()),
				logging.FieldReason, "mutex",
			)
			if err := peer.Disconnect(peerCtx); err != nil {
				peerDisconnectsTotal.WithLabelValues(repo.record.Name, logging.ResultFailure).Inc()
				logger.Warn().Err(err).Msg("unable to disconnect peer wallet")
				return
			}
			peerDisconnectsTotal.WithLabelValues(repo.record.Name, logging.ResultSuccess).Inc()
			logger.Debug().Msg("peer wallet disconnected")
		}(peer)
	}
}

func (repo *WalletRepo) peerStarted() {
	repo.peerMu.Lock()
	defer repo.peerMu.Unlock()

	if repo.peersPending == 0 {
		repo.peersIdle = make(chan struct{})
	}
	repo.peersPending++
}

func (repo *WalletRepo) peerDone() {
	repo.peerMu.Lock()
	defer repo.peerMu.Unlock()

	repo.peersPending--
	if repo.peersPending == 0 {
		close(repo.peersIdle)
	}
}

// WaitPeerDisconnects blocks until every peer disconnection started by the
// mutex hook so far has finished, or ctx is done.
func (repo *WalletRepo) WaitPeerDisconnects(ctx context.Context) error {
	repo.peerMu.Lock()
	if repo.peersPending == 0 {
		repo.peerMu.Unlock()
		return nil
	}
	idle := repo.peersIdle
	repo.peerMu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ChainName returns the name of the chain the repo serves.
func (repo *WalletRepo) ChainName() string {
	return repo.record.Name
}

func (repo *WalletRepo) ChainRecord() *chain.Record {
	return repo.record
}

// ChainLogo returns the logo of the chain's first asset, or "".
func (repo *WalletRepo) ChainLogo() string {
	return repo.record.Logo()
}

// SessionOptions returns the options passed to adapters on connect.
func (repo *WalletRepo) SessionOptions() *wallet.SessionOptions {
	return repo.sessionOptions
}

// IsMutexEnabled reports whether at most one adapter may be connected.
func (repo *WalletRepo) IsMutexEnabled() bool {
	return repo.mutexEnabled
}

// Env returns the current environment.
func (repo *WalletRepo) Env() wallet.Env {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	return repo.env
}

// SetEnv updates the environment of the repo and of every adapter,
// including the ones it hides.
func (repo *WalletRepo) SetEnv(env wallet.Env) {
	repo.mu.Lock()
	repo.env = env
	repo.mu.Unlock()

	for _, w := range repo.wallets {
		w.SetEnv(env)
	}
}

// SetActions replaces the view controller.
func (repo *WalletRepo) SetActions(actions Actions) {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	repo.actions = actions
}

// IsInUse reports whether the application marked the repo as in use.
func (repo *WalletRepo) IsInUse() bool {
	return repo.inUse.Load()
}

func (repo *WalletRepo) SetInUse(inUse bool) {
	repo.inUse.Store(inUse)
}

// Wallets returns the adapters visible in the current environment, in
// registration order. Mobile-disabled adapters are hidden on mobile.
func (repo *WalletRepo) Wallets() []wallet.ChainWallet {
	if !repo.Env().IsMobile() {
		return append([]wallet.ChainWallet(nil), repo.wallets...)
	}

	wallets := make([]wallet.ChainWallet, 0, len(repo.wallets))
	for _, w := range repo.wallets {
		if w.WalletInfo().MobileDisabled {
			continue
		}
		wallets = append(wallets, w)
	}
	return wallets
}

// IsSingleWallet reports whether exactly one adapter is visible.
func (repo *WalletRepo) IsSingleWallet() bool {
	return len(repo.Wallets()) == 1
}

// Current returns the first visible adapter which is not disconnected, or
// nil. It is meaningless without the mutex: a warning is logged and nil
// returned.
func (repo *WalletRepo) Current() wallet.ChainWallet {
	if !repo.mutexEnabled {
		repo.logger.Warn().
			Err(ErrRepoMutexDisabled).
			Bool(logging.FieldMutex, false).
			Msg("current wallet requested while mutex is disabled")
		return nil
	}

	for _, w := range repo.Wallets() {
		if !w.IsWalletDisconnected() {
			return w
		}
	}
	return nil
}

// GetWallet returns the visible adapter named walletName, or nil.
func (repo *WalletRepo) GetWallet(walletName wallet.Name) wallet.ChainWallet {
	for _, w := range repo.Wallets() {
		if w.WalletName() == walletName {
			return w
		}
	}
	return nil
}

// OpenView shows this repo in the view and opens it.
func (repo *WalletRepo) OpenView() {
	repo.mu.RLock()
	actions := repo.actions
	repo.mu.RUnlock()

	if actions.ViewWalletRepo != nil {
		actions.ViewWalletRepo(repo)
	}
	if actions.ViewOpen != nil {
		actions.ViewOpen(true)
	}
}

// CloseView closes the view.
func (repo *WalletRepo) CloseView() {
	repo.mu.RLock()
	actions := repo.actions
	repo.mu.RUnlock()

	if actions.ViewOpen != nil {
		actions.ViewOpen(false)
	}
}

// Connect connects the adapter named walletName. With an empty name, the
// only visible adapter is connected directly; if there are several (or
// none) the view is opened instead so the user can pick one.
func (repo *WalletRepo) Connect(ctx context.Context, walletName wallet.Name) error {
	var target wallet.ChainWallet
	switch {
	case walletName != "":
		target = repo.GetWallet(walletName)
		if target == nil {
			connectsTotal.WithLabelValues(repo.record.Name, logging.ResultFailure).Inc()
			return ErrRepoWalletNotFound.Wrapf("wallet %q on chain %s", walletName, repo.record.Name)
		}
	case repo.IsSingleWallet():
		target = repo.Wallets()[0]
	default:
		connectsTotal.WithLabelValues(repo.record.Name, "view").Inc()
		repo.OpenView()
		return nil
	}

	if err := target.Connect(ctx, repo.sessionOptions); err != nil {
		connectsTotal.WithLabelValues(repo.record.Name, logging.ResultFailure).Inc()
		return err
	}
	connectsTotal.WithLabelValues(repo.record.Name, logging.ResultSuccess).Inc()
	return nil
}

// Disconnect disconnects the adapter named walletName. With an empty name,
// every visible adapter is disconnected one after the other in registration
// order; all of them are visited even if some fail, and the failures are
// returned joined.
func (repo *WalletRepo) Disconnect(ctx context.Context, walletName wallet.Name) error {
	if walletName != "" {
		target := repo.GetWallet(walletName)
		if target == nil {
			disconnectsTotal.WithLabelValues(repo.record.Name, logging.ResultFailure).Inc()
			return ErrRepoWalletNotFound.Wrapf("wallet %q on chain %s", walletName, repo.record.Name)
		}
		if err := target.Disconnect(ctx); err != nil {
			disconnectsTotal.WithLabelValues(repo.record.Name, logging.ResultFailure).Inc()
			return err
		}
		disconnectsTotal.WithLabelValues(repo.record.Name, logging.ResultSuccess).Inc()
		return nil
	}

	var errs []error
	for _, w := range repo.Wallets() {
		if err := w.Disconnect(ctx); err != nil {
			repo.logger.Warn().
				Err(err).
				Str(logging.FieldWallet, string(w.WalletName())).
				Msg("unable to disconnect wallet")
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		disconnectsTotal.WithLabelValues(repo.record.Name, logging.ResultFailure).Inc()
		return errors.Join(errs...)
	}
	disconnectsTotal.WithLabelValues(repo.record.Name, logging.ResultSuccess).Inc()
	return nil
}
