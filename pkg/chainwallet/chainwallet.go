package chainwallet

import (
	"context"
	"errors"
	"sync"
	"time"

	cosmostypes "github.com/cosmos/cosmos-sdk/types"

	"github.com/sunnya97/cosmos-kit/pkg/cache"
	"github.com/sunnya97/cosmos-kit/pkg/cache/memory"
	"github.com/sunnya97/cosmos-kit/pkg/chain"
	"github.com/sunnya97/cosmos-kit/pkg/client/cosmwasm"
	"github.com/sunnya97/cosmos-kit/pkg/client/stargate"
	"github.com/sunnya97/cosmos-kit/pkg/logging"
	nethttp "github.com/sunnya97/cosmos-kit/pkg/network/http"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

var _ wallet.ChainWallet = (*ChainWallet)(nil)

// defaultProbeClient is shared so that every adapter's REST probes count
// against one concurrency limit.
var defaultProbeClient = nethttp.NewProbeClient()

// ChainWallet binds a wallet.Client to a chain record.
type ChainWallet struct {
	logger       polylog.Logger
	info         wallet.Info
	record       *chain.Record
	walletClient wallet.Client

	probeTimeout     time.Duration
	endpointCacheTTL time.Duration
	endpointCache    cache.KeyValueCache[string]
	probeClient      *nethttp.ProbeClient

	mu        sync.Mutex
	status    wallet.Status
	account   *wallet.Account
	callbacks wallet.Callbacks
	env       wallet.Env
	// connectionID is bumped by every connect and disconnect so in-flight
	// connects and expiry timers started before it can tell they are stale.
	connectionID   uint64
	expiryTimer    *time.Timer
	stargateClient *stargate.Client
	cosmWasmClient *cosmwasm.Client
}

// NewChainWallet returns a disconnected ChainWallet. A nil walletClient is
// accepted: connecting then fails with wallet.ErrWalletClientMissing and the
// status becomes wallet.StatusNotExist.
func NewChainWallet(
	info wallet.Info,
	record *chain.Record,
	walletClient wallet.Client,
	opts ...ChainWalletOption,
) (*ChainWallet, error) {
	if record == nil {
		return nil, ErrChainWalletInvalidChain.Wrap("nil chain record")
	}
	if record.ChainID() == "" {
		return nil, ErrChainWalletInvalidChain.Wrapf("chain %q has no chain id", record.Name)
	}

	cw := &ChainWallet{
		logger:           polyzero.NewLogger(polyzero.WithLevel(polyzero.InfoLevel.ZerologLevel())),
		info:             info,
		record:           record,
		walletClient:     walletClient,
		probeTimeout:     DefaultProbeTimeout,
		endpointCacheTTL: DefaultEndpointCacheTTL,
		probeClient:      defaultProbeClient,
	}
	for _, opt := range opts {
		opt(cw)
	}

	cw.logger = logging.ForChainComponent(cw.logger, logging.ComponentChainWallet, record.Name).
		With(logging.FieldWallet, string(info.Name))

	endpointCache, err := memory.NewKeyValueCache[string](
		memory.WithTTL(cw.endpointCacheTTL),
		memory.WithMaxKeys(2),
	)
	if err != nil {
		return nil, err
	}
	cw.endpointCache = endpointCache

	return cw, nil
}

func (cw *ChainWallet) WalletName() wallet.Name {
	return cw.info.Name
}

func (cw *ChainWallet) WalletInfo() wallet.Info {
	return cw.info
}

func (cw *ChainWallet) ChainName() string {
	return cw.record.Name
}

// ChainRecord returns the chain the wallet is bound to.
func (cw *ChainWallet) ChainRecord() *chain.Record {
	return cw.record
}

func (cw *ChainWallet) Status() wallet.Status {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.status
}

func (cw *ChainWallet) IsWalletDisconnected() bool {
	return cw.Status() == wallet.StatusDisconnected
}

// Account returns the connected account, or nil when not connected.
func (cw *ChainWallet) Account() *wallet.Account {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.account
}

// Address returns the bech32 address of the connected account using the
// chain's prefix.
func (cw *ChainWallet) Address() (string, error) {
	account := cw.Account()
	if account == nil {
		return "", ErrChainWalletNotConnected.Wrapf("wallet %s on chain %s", cw.info.Name, cw.record.Name)
	}
	if cw.record.Info.Bech32Prefix == "" {
		return account.Address.String(), nil
	}
	return cosmostypes.Bech32ifyAddressBytes(cw.record.Info.Bech32Prefix, account.Address)
}

func (cw *ChainWallet) Callbacks() wallet.Callbacks {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.callbacks
}

// UpdateCallbacks replaces every callback. Callers wanting to change a
// single hook read Callbacks first and write back the modified copy.
func (cw *ChainWallet) UpdateCallbacks(callbacks wallet.Callbacks) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.callbacks = callbacks
}

func (cw *ChainWallet) SetEnv(env wallet.Env) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.env = env
}

// Env returns the environment last set on the wallet.
func (cw *ChainWallet) Env() wallet.Env {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.env
}

// Connect enables the wallet client for the chain and loads its account.
// Errors from callbacks and from the client are returned unmodified.
func (cw *ChainWallet) Connect(ctx context.Context, sessionOptions *wallet.SessionOptions) error {
	logger := cw.logger.With(logging.FieldMethod, "Connect")

	cw.mu.Lock()
	if cw.walletClient == nil {
		cw.setStatusLocked(wallet.StatusNotExist)
		cw.mu.Unlock()
		return wallet.ErrWalletClientMissing.Wrapf("wallet %s", cw.info.Name)
	}
	// A reconnect starts from scratch: the previous account and session
	// timer no longer apply.
	cw.connectionID++
	cw.stopExpiryLocked()
	cw.account = nil
	cw.setStatusLocked(wallet.StatusConnecting)
	connectionID := cw.connectionID
	callbacks := cw.callbacks
	cw.mu.Unlock()

	if callbacks.BeforeConnect != nil {
		if err := callbacks.BeforeConnect(ctx); err != nil {
			cw.failConnect(connectionID, err)
			return err
		}
	}

	chainID := cw.record.ChainID()
	if err := cw.walletClient.Enable(ctx, chainID); err != nil {
		cw.failConnect(connectionID, err)
		return err
	}

	account, err := cw.walletClient.GetAccount(ctx, chainID)
	if err != nil {
		cw.failConnect(connectionID, err)
		return err
	}

	cw.mu.Lock()
	if cw.connectionID != connectionID {
		cw.mu.Unlock()
		logger.Debug().Msg("connection superseded by a disconnect or reconnect")
		return ErrChainWalletConnectAborted.Wrapf("wallet %s on chain %s", cw.info.Name, cw.record.Name)
	}
	cw.account = account
	cw.setStatusLocked(wallet.StatusConnected)
	cw.armExpiryLocked(sessionOptions)
	callbacks = cw.callbacks
	cw.mu.Unlock()

	logger.Info().Msg("wallet connected")

	if callbacks.AfterConnect != nil {
		callbacks.AfterConnect(ctx)
	}
	return nil
}

// Disconnect forgets the account and session timer and closes the cached
// clients. Calling it on a disconnected wallet is harmless.
func (cw *ChainWallet) Disconnect(ctx context.Context) error {
	callbacks := cw.Callbacks()
	if callbacks.BeforeDisconnect != nil {
		callbacks.BeforeDisconnect(ctx)
	}

	cw.mu.Lock()
	cw.connectionID++
	cw.stopExpiryLocked()
	wasDisconnected := cw.status == wallet.StatusDisconnected
	cw.account = nil
	cw.dropClientsLocked()
	cw.setStatusLocked(wallet.StatusDisconnected)
	callbacks = cw.callbacks
	cw.mu.Unlock()

	if !wasDisconnected {
		cw.logger.Info().Str(logging.FieldMethod, "Disconnect").Msg("wallet disconnected")
	}

	if callbacks.AfterDisconnect != nil {
		callbacks.AfterDisconnect(ctx)
	}
	return nil
}

// GetOfflineSigner returns the wallet client's signer for the chain.
func (cw *ChainWallet) GetOfflineSigner(ctx context.Context) (wallet.OfflineSigner, error) {
	if cw.Status() != wallet.StatusConnected {
		return nil, ErrChainWalletNotConnected.Wrapf("wallet %s on chain %s", cw.info.Name, cw.record.Name)
	}
	return cw.walletClient.GetOfflineSigner(ctx, cw.record.ChainID())
}

// Close disconnects the wallet, which also closes the cached clients.
func (cw *ChainWallet) Close(ctx context.Context) error {
	return cw.Disconnect(ctx)
}

// failConnect records the status matching err unless a disconnect already
// superseded the connection attempt.
func (cw *ChainWallet) failConnect(connectionID uint64, err error) {
	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.connectionID != connectionID {
		return
	}
	cw.dropClientsLocked()
	cw.setStatusLocked(statusForError(err))
	cw.logger.Warn().
		Err(err).
		Str(logging.FieldStatus, cw.status.String()).
		Msg("wallet connection failed")
}

// stopExpiryLocked stops the session timer, if any. cw.mu must be held.
func (cw *ChainWallet) stopExpiryLocked() {
	if cw.expiryTimer != nil {
		cw.expiryTimer.Stop()
		cw.expiryTimer = nil
	}
}

// dropClientsLocked closes and forgets the cached query clients. cw.mu must
// be held.
func (cw *ChainWallet) dropClientsLocked() {
	if cw.stargateClient != nil {
		_ = cw.stargateClient.Close()
		cw.stargateClient = nil
	}
	if cw.cosmWasmClient != nil {
		_ = cw.cosmWasmClient.Close()
		cw.cosmWasmClient = nil
	}
}

// armExpiryLocked starts the session timer. cw.mu must be held.
func (cw *ChainWallet) armExpiryLocked(sessionOptions *wallet.SessionOptions) {
	if sessionOptions == nil || sessionOptions.Duration <= 0 {
		return
	}

	connectionID := cw.connectionID
	onExpire := sessionOptions.OnExpire
	cw.expiryTimer = time.AfterFunc(sessionOptions.Duration, func() {
		cw.expire(connectionID, onExpire)
	})
}

func (cw *ChainWallet) expire(connectionID uint64, onExpire func()) {
	cw.mu.Lock()
	stale := cw.connectionID != connectionID
	cw.mu.Unlock()
	if stale {
		return
	}

	sessionsExpiredTotal.WithLabelValues(cw.record.Name, string(cw.info.Name)).Inc()
	cw.logger.Info().Msg("session expired")

	if err := cw.Disconnect(context.Background()); err != nil {
		cw.logger.Error().Err(err).Msg("unable to disconnect expired session")
	}
	if onExpire != nil {
		onExpire()
	}
}

// setStatusLocked updates the status. cw.mu must be held.
func (cw *ChainWallet) setStatusLocked(status wallet.Status) {
	if cw.status == status {
		return
	}
	cw.logger.Debug().
		Str(logging.FieldOldStatus, cw.status.String()).
		Str(logging.FieldNewStatus, status.String()).
		Msg("status changed")
	cw.status = status
	statusTransitionsTotal.WithLabelValues(cw.record.Name, string(cw.info.Name), status.String()).Inc()
}

// statusForError maps a connection error onto the status it leaves the
// wallet in.
func statusForError(err error) wallet.Status {
	switch {
	case errors.Is(err, wallet.ErrWalletRejected):
		return wallet.StatusRejected
	case errors.Is(err, wallet.ErrWalletNotExist), errors.Is(err, wallet.ErrWalletClientMissing):
		return wallet.StatusNotExist
	default:
		return wallet.StatusError
	}
}
