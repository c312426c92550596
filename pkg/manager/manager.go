package manager

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"cosmossdk.io/depinject"

	"github.com/sunnya97/cosmos-kit/pkg/chain"
	"github.com/sunnya97/cosmos-kit/pkg/chainwallet"
	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/session"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
	"github.com/sunnya97/cosmos-kit/pkg/walletrepo"
)

// Wallet pairs the description of a wallet with the client talking to it.
type Wallet struct {
	Info   wallet.Info
	Client wallet.Client
}

// WalletManager owns the wallet repositories of every configured chain.
type WalletManager struct {
	logger polylog.Logger
	store  session.Store

	sessionOptions  *wallet.SessionOptions
	mutexEnabled    bool
	env             wallet.Env
	chainWalletOpts []chainwallet.ChainWalletOption

	// records keeps the configured chain order.
	records      []*chain.Record
	repos        map[string]*walletrepo.WalletRepo
	chainWallets map[string]map[wallet.Name]*chainwallet.ChainWallet

	// closing stops session persistence while Close disconnects everything,
	// so sessions survive the process.
	closing atomic.Bool
	// restoring holds the session keys being reconnected by RestoreSessions,
	// whose stored expiry must not be overwritten.
	restoring sync.Map
}

// NewWalletManager builds one chainwallet per (wallet, chain) pair and one
// WalletRepo per chain.
//
// Required dependencies:
// - polylog.Logger
// - session.Store
func NewWalletManager(
	deps depinject.Config,
	records []*chain.Record,
	wallets []Wallet,
	opts ...ManagerOption,
) (*WalletManager, error) {
	m := &WalletManager{
		mutexEnabled: true,
		repos:        make(map[string]*walletrepo.WalletRepo),
		chainWallets: make(map[string]map[wallet.Name]*chainwallet.ChainWallet),
	}

	if err := depinject.Inject(
		deps,
		&m.logger,
		&m.store,
	); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		opt(m)
	}
	m.logger = logging.ForComponent(m.logger, logging.ComponentWalletManager)

	if len(records) == 0 {
		return nil, ErrManagerNoChains
	}
	if len(wallets) == 0 {
		return nil, ErrManagerNoWallets
	}
	if err := validateWallets(wallets); err != nil {
		return nil, err
	}

	for _, record := range records {
		if record == nil {
			return nil, ErrManagerChainNotFound.Wrap("nil chain record")
		}
		if _, ok := m.repos[record.Name]; ok {
			return nil, ErrManagerDuplicateChain.Wrapf("chain %q", record.Name)
		}

		repo, err := m.buildRepo(record, wallets)
		if err != nil {
			return nil, err
		}
		m.records = append(m.records, record)
		m.repos[record.Name] = repo
	}

	m.logger.Info().
		Int(logging.FieldCount, len(m.records)).
		Bool(logging.FieldMutex, m.mutexEnabled).
		Msgf("wallet manager ready with %d wallet(s) per chain", len(wallets))
	return m, nil
}

func validateWallets(wallets []Wallet) error {
	seen := make(map[wallet.Name]struct{}, len(wallets))
	for _, w := range wallets {
		if w.Info.Name == "" {
			return ErrManagerNoWallets.Wrap("wallet with an empty name")
		}
		if _, ok := seen[w.Info.Name]; ok {
			return ErrManagerDuplicateWallet.Wrapf("wallet %q", w.Info.Name)
		}
		seen[w.Info.Name] = struct{}{}
	}
	return nil
}

func (m *WalletManager) buildRepo(record *chain.Record, wallets []Wallet) (*walletrepo.WalletRepo, error) {
	chainWallets := make([]wallet.ChainWallet, 0, len(wallets))
	byName := make(map[wallet.Name]*chainwallet.ChainWallet, len(wallets))

	for _, w := range wallets {
		opts := []chainwallet.ChainWalletOption{
			chainwallet.WithLogger(m.logger),
			chainwallet.WithEnv(m.env),
		}
		opts = append(opts, m.chainWalletOpts...)
		opts = append(opts, chainwallet.WithCallbacks(m.sessionCallbacks(record.Name, w.Info.Name)))

		cw, err := chainwallet.NewChainWallet(w.Info, record, w.Client, opts...)
		if err != nil {
			return nil, err
		}
		chainWallets = append(chainWallets, cw)
		byName[w.Info.Name] = cw
	}
	m.chainWallets[record.Name] = byName

	return walletrepo.NewWalletRepo(
		record,
		chainWallets,
		walletrepo.WithMutex(m.mutexEnabled),
		walletrepo.WithSessionOptions(m.sessionOptions),
		walletrepo.WithLogger(m.logger),
		walletrepo.WithEnv(m.env),
	), nil
}

// sessionCallbacks persists the session of walletName on chainName when it
// connects and forgets it when it disconnects.
func (m *WalletManager) sessionCallbacks(chainName string, walletName wallet.Name) wallet.Callbacks {
	return wallet.Callbacks{
		AfterConnect: func(ctx context.Context) {
			m.saveSession(ctx, chainName, walletName)
		},
		AfterDisconnect: func(ctx context.Context) {
			m.deleteSession(ctx, chainName, walletName)
		},
	}
}

func (m *WalletManager) saveSession(ctx context.Context, chainName string, walletName wallet.Name) {
	if m.closing.Load() {
		return
	}
	if _, ok := m.restoring.Load(session.Key(chainName, walletName)); ok {
		return
	}

	var duration time.Duration
	if m.sessionOptions != nil {
		duration = m.sessionOptions.Duration
	}

	err := m.store.Save(ctx, session.NewSession(chainName, walletName, time.Now(), duration))
	m.logSessionWrite(chainName, walletName, "save", err)
}

func (m *WalletManager) deleteSession(ctx context.Context, chainName string, walletName wallet.Name) {
	if m.closing.Load() {
		return
	}

	err := m.store.Delete(ctx, chainName, walletName)
	m.logSessionWrite(chainName, walletName, "delete", err)
}

func (m *WalletManager) logSessionWrite(chainName string, walletName wallet.Name, operation string, err error) {
	if err != nil {
		sessionWritesTotal.WithLabelValues(chainName, operation, logging.ResultFailure).Inc()
		m.logger.Warn().
			Err(err).
			Str(logging.FieldChainName, chainName).
			Str(logging.FieldWallet, string(walletName)).
			Msgf("unable to %s session", operation)
		return
	}
	sessionWritesTotal.WithLabelValues(chainName, operation, logging.ResultSuccess).Inc()
}

// ChainNames returns the configured chain names in configuration order.
func (m *WalletManager) ChainNames() []string {
	names := make([]string, 0, len(m.records))
	for _, record := range m.records {
		names = append(names, record.Name)
	}
	return names
}

func (m *WalletManager) GetChainRecord(chainName string) (*chain.Record, error) {
	repo, err := m.GetWalletRepo(chainName)
	if err != nil {
		return nil, err
	}
	return repo.ChainRecord(), nil
}

func (m *WalletManager) GetWalletRepo(chainName string) (*walletrepo.WalletRepo, error) {
	repo, ok := m.repos[chainName]
	if !ok {
		return nil, ErrManagerChainNotFound.Wrapf("chain %q", chainName)
	}
	return repo, nil
}

// GetChainWallet returns the adapter of walletName on chainName, whether or
// not the current environment shows it.
func (m *WalletManager) GetChainWallet(chainName string, walletName wallet.Name) (*chainwallet.ChainWallet, error) {
	byName, ok := m.chainWallets[chainName]
	if !ok {
		return nil, ErrManagerChainNotFound.Wrapf("chain %q", chainName)
	}
	cw, ok := byName[walletName]
	if !ok {
		return nil, ErrManagerWalletNotFound.Wrapf("wallet %q on chain %s", walletName, chainName)
	}
	return cw, nil
}

// SetEnv updates the environment of every repo and adapter.
func (m *WalletManager) SetEnv(env wallet.Env) {
	for _, record := range m.records {
		m.repos[record.Name].SetEnv(env)
	}
}

// SetActions installs the same view controller on every repo.
func (m *WalletManager) SetActions(actions walletrepo.Actions) {
	for _, record := range m.records {
		m.repos[record.Name].SetActions(actions)
	}
}

// Close disconnects every adapter and releases its clients. Persisted
// sessions are kept so RestoreSessions can pick them up again. Peer
// disconnections already started by a repo's mutex still forget their
// sessions: Close waits for them first.
func (m *WalletManager) Close(ctx context.Context) error {
	if m.closing.Load() {
		return nil
	}

	var errs []error
	for _, record := range m.records {
		if err := m.repos[record.Name].WaitPeerDisconnects(ctx); err != nil {
			m.logger.Warn().
				Err(err).
				Str(logging.FieldChainName, record.Name).
				Msg("stopped waiting for peer disconnections")
			errs = append(errs, err)
			break
		}
	}

	if m.closing.Swap(true) {
		return nil
	}

	for _, record := range m.records {
		for _, cw := range m.chainWallets[record.Name] {
			if err := cw.Close(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	m.logger.Info().Msg("wallet manager closed")
	return errors.Join(errs...)
}
