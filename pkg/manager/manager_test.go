package manager_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"cosmossdk.io/depinject"
	cosmostypes "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/sunnya97/cosmos-kit/pkg/chain"
	"github.com/sunnya97/cosmos-kit/pkg/manager"
	"github.com/sunnya97/cosmos-kit/pkg/session"
	"github.com/sunnya97/cosmos-kit/pkg/session/leveldb"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
	"github.com/sunnya97/cosmos-kit/pkg/walletrepo"
	"github.com/sunnya97/cosmos-kit/testutil/testpolylog"
	"github.com/sunnya97/cosmos-kit/testutil/testwallet"
)

const (
	osmosisName   = "osmosis"
	osmosisID     = "osmosis-1"
	cosmoshubName = "cosmoshub"
	cosmoshubID   = "cosmoshub-4"

	walletA = wallet.Name("wallet-a")
	walletB = wallet.Name("wallet-b")
)

func newTestRecords() []*chain.Record {
	return []*chain.Record{
		{Name: osmosisName, Info: chain.Info{ChainName: osmosisName, ChainID: osmosisID, Bech32Prefix: "osmo"}},
		{Name: cosmoshubName, Info: chain.Info{ChainName: cosmoshubName, ChainID: cosmoshubID, Bech32Prefix: "cosmos"}},
	}
}

func newTestClient(opts ...testwallet.ClientOption) *testwallet.Client {
	account := &wallet.Account{
		Name:    "alice",
		Algo:    "secp256k1",
		Address: cosmostypes.AccAddress([]byte("manager-test-address")),
	}
	opts = append([]testwallet.ClientOption{
		testwallet.WithAccount(osmosisID, account),
		testwallet.WithAccount(cosmoshubID, account),
	}, opts...)
	return testwallet.NewClient(opts...)
}

func newTestWallets() []manager.Wallet {
	return []manager.Wallet{
		{
			Info:   wallet.Info{Name: walletA, PrettyName: "Wallet A", Mode: wallet.ModeWalletConnect},
			Client: newTestClient(),
		},
		{
			Info:   wallet.Info{Name: walletB, PrettyName: "Wallet B", Mode: wallet.ModeExtension, MobileDisabled: true},
			Client: newTestClient(),
		},
	}
}

func newTestStore(t *testing.T) *leveldb.Store {
	t.Helper()

	store, err := leveldb.OpenMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func newTestManager(
	t *testing.T,
	store session.Store,
	wallets []manager.Wallet,
	opts ...manager.ManagerOption,
) *manager.WalletManager {
	t.Helper()

	logger, _ := testpolylog.NewBufferedLogger()
	deps := depinject.Supply(logger, store)

	m, err := manager.NewWalletManager(deps, newTestRecords(), wallets, opts...)
	require.NoError(t, err)
	return m
}

func TestNewWalletManager_Errors(t *testing.T) {
	tests := []struct {
		desc          string
		records       []*chain.Record
		wallets       []manager.Wallet
		expectedError error
	}{
		{
			desc:          "no chains",
			records:       nil,
			wallets:       newTestWallets(),
			expectedError: manager.ErrManagerNoChains,
		},
		{
			desc:          "no wallets",
			records:       newTestRecords(),
			wallets:       nil,
			expectedError: manager.ErrManagerNoWallets,
		},
		{
			desc:    "duplicate wallet",
			records: newTestRecords(),
			wallets: []manager.Wallet{
				{Info: wallet.Info{Name: walletA}, Client: newTestClient()},
				{Info: wallet.Info{Name: walletA}, Client: newTestClient()},
			},
			expectedError: manager.ErrManagerDuplicateWallet,
		},
		{
			desc:          "duplicate chain",
			records:       append(newTestRecords(), newTestRecords()[0]),
			wallets:       newTestWallets(),
			expectedError: manager.ErrManagerDuplicateChain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			logger, _ := testpolylog.NewBufferedLogger()
			deps := depinject.Supply(logger, newTestStore(t))

			_, err := manager.NewWalletManager(deps, tt.records, tt.wallets)
			require.ErrorIs(t, err, tt.expectedError)
		})
	}
}

func TestNewWalletManager_MissingStore(t *testing.T) {
	logger, _ := testpolylog.NewBufferedLogger()

	_, err := manager.NewWalletManager(depinject.Supply(logger), newTestRecords(), newTestWallets())
	require.Error(t, err)
}

func TestWalletManager_Lookups(t *testing.T) {
	m := newTestManager(t, newTestStore(t), newTestWallets())

	require.Equal(t, []string{osmosisName, cosmoshubName}, m.ChainNames())

	record, err := m.GetChainRecord(cosmoshubName)
	require.NoError(t, err)
	require.Equal(t, cosmoshubID, record.ChainID())

	repo, err := m.GetWalletRepo(osmosisName)
	require.NoError(t, err)
	require.Equal(t, osmosisName, repo.ChainName())
	require.True(t, repo.IsMutexEnabled())
	require.Len(t, repo.Wallets(), 2)

	_, err = m.GetWalletRepo("juno")
	require.ErrorIs(t, err, manager.ErrManagerChainNotFound)
	_, err = m.GetChainRecord("juno")
	require.ErrorIs(t, err, manager.ErrManagerChainNotFound)

	cw, err := m.GetChainWallet(osmosisName, walletB)
	require.NoError(t, err)
	require.Equal(t, walletB, cw.WalletName())

	_, err = m.GetChainWallet(osmosisName, "wallet-c")
	require.ErrorIs(t, err, manager.ErrManagerWalletNotFound)
}

func TestWalletManager_PersistsSessions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	m := newTestManager(t, store, newTestWallets(), manager.WithSessionOptions(&wallet.SessionOptions{Duration: time.Hour}))

	repo, err := m.GetWalletRepo(osmosisName)
	require.NoError(t, err)

	before := time.Now()
	require.NoError(t, repo.Connect(ctx, walletA))

	sess, err := store.Get(ctx, osmosisName, walletA)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.False(t, sess.ConnectedAt.Before(before))
	require.True(t, sess.ConnectedAt.Add(time.Hour).Equal(sess.ExpiresAt))

	// The other chain is untouched.
	other, err := store.Get(ctx, cosmoshubName, walletA)
	require.NoError(t, err)
	require.Nil(t, other)

	require.NoError(t, repo.Disconnect(ctx, walletA))
	sess, err = store.Get(ctx, osmosisName, walletA)
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestWalletManager_MutexForgetsPeerSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	m := newTestManager(t, store, newTestWallets())

	repo, err := m.GetWalletRepo(osmosisName)
	require.NoError(t, err)

	require.NoError(t, repo.Connect(ctx, walletA))
	require.NoError(t, repo.Connect(ctx, walletB))

	require.Eventually(t, func() bool {
		sess, err := store.Get(ctx, osmosisName, walletA)
		return err == nil && sess == nil
	}, time.Second, 10*time.Millisecond)

	sess, err := store.Get(ctx, osmosisName, walletB)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, walletB, repo.Current().WalletName())
}

func TestWalletManager_RestoreSessions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	now := time.Now()
	valid := session.NewSession(osmosisName, walletA, now.Add(-30*time.Minute), time.Hour)
	expired := session.NewSession(cosmoshubName, walletB, now.Add(-2*time.Hour), time.Hour)
	require.NoError(t, store.Save(ctx, valid))
	require.NoError(t, store.Save(ctx, expired))

	m := newTestManager(t, store, newTestWallets(), manager.WithSessionOptions(&wallet.SessionOptions{Duration: time.Hour}))
	require.NoError(t, m.RestoreSessions(ctx))

	osmosisWallet, err := m.GetChainWallet(osmosisName, walletA)
	require.NoError(t, err)
	require.Equal(t, wallet.StatusConnected, osmosisWallet.Status())

	// Restoring keeps the stored expiry.
	sess, err := store.Get(ctx, osmosisName, walletA)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.True(t, valid.ExpiresAt.Equal(sess.ExpiresAt))

	hubWallet, err := m.GetChainWallet(cosmoshubName, walletB)
	require.NoError(t, err)
	require.Equal(t, wallet.StatusDisconnected, hubWallet.Status())

	sess, err = store.Get(ctx, cosmoshubName, walletB)
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestWalletManager_RestoreForgetsFailedSession(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Save(ctx, session.NewSession(osmosisName, walletA, time.Now(), 0)))

	wallets := newTestWallets()
	wallets[0].Client = newTestClient(testwallet.WithEnableError(wallet.ErrWalletRejected.Wrap("user said no")))

	m := newTestManager(t, store, wallets)
	require.NoError(t, m.RestoreSessions(ctx))

	cw, err := m.GetChainWallet(osmosisName, walletA)
	require.NoError(t, err)
	require.Equal(t, wallet.StatusRejected, cw.Status())

	sess, err := store.Get(ctx, osmosisName, walletA)
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestWalletManager_RestoreSkipsHiddenWallets(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	require.NoError(t, store.Save(ctx, session.NewSession(osmosisName, walletB, time.Now(), 0)))

	mobileEnv := wallet.Env{Device: wallet.DeviceMobile, OS: "ios"}
	m := newTestManager(t, store, newTestWallets(), manager.WithEnv(mobileEnv))
	require.NoError(t, m.RestoreSessions(ctx))

	cw, err := m.GetChainWallet(osmosisName, walletB)
	require.NoError(t, err)
	require.Equal(t, wallet.StatusDisconnected, cw.Status())

	// The session is kept for when the wallet is visible again.
	sess, err := store.Get(ctx, osmosisName, walletB)
	require.NoError(t, err)
	require.NotNil(t, sess)
}

func TestWalletManager_CloseKeepsSessions(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	m := newTestManager(t, store, newTestWallets())

	repo, err := m.GetWalletRepo(cosmoshubName)
	require.NoError(t, err)
	require.NoError(t, repo.Connect(ctx, walletA))

	require.NoError(t, m.Close(ctx))
	require.NoError(t, m.Close(ctx))

	cw, err := m.GetChainWallet(cosmoshubName, walletA)
	require.NoError(t, err)
	require.True(t, cw.IsWalletDisconnected())

	sess, err := store.Get(ctx, cosmoshubName, walletA)
	require.NoError(t, err)
	require.NotNil(t, sess)
}

func TestWalletManager_CloseWaitsForPeerDisconnects(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	m := newTestManager(t, store, newTestWallets())

	repo, err := m.GetWalletRepo(osmosisName)
	require.NoError(t, err)
	require.NoError(t, repo.Connect(ctx, walletA))

	cwA, err := m.GetChainWallet(osmosisName, walletA)
	require.NoError(t, err)

	disconnectStarted := make(chan struct{})
	disconnectRelease := make(chan struct{})
	var once sync.Once
	callbacks := cwA.Callbacks()
	callbacks.BeforeDisconnect = func(ctx context.Context) {
		once.Do(func() {
			close(disconnectStarted)
			<-disconnectRelease
		})
	}
	cwA.UpdateCallbacks(callbacks)

	// Connecting wallet B starts disconnecting wallet A in the background.
	require.NoError(t, repo.Connect(ctx, walletB))
	<-disconnectStarted

	closeErr := make(chan error, 1)
	go func() { closeErr <- m.Close(ctx) }()

	select {
	case err = <-closeErr:
		t.Fatalf("Close returned before the peer disconnection finished: %v", err)
	case <-time.After(50 * time.Millisecond):
	}

	close(disconnectRelease)
	require.NoError(t, <-closeErr)

	// The peer's session is forgotten, the closed wallet's session is kept.
	sess, err := store.Get(ctx, osmosisName, walletA)
	require.NoError(t, err)
	require.Nil(t, sess)

	sess, err = store.Get(ctx, osmosisName, walletB)
	require.NoError(t, err)
	require.NotNil(t, sess)
}

func TestWalletManager_SetEnvAndActions(t *testing.T) {
	m := newTestManager(t, newTestStore(t), newTestWallets())

	m.SetEnv(wallet.Env{Device: wallet.DeviceMobile, OS: "android"})
	for _, chainName := range m.ChainNames() {
		repo, err := m.GetWalletRepo(chainName)
		require.NoError(t, err)
		require.Len(t, repo.Wallets(), 1)
		require.Equal(t, walletA, repo.Wallets()[0].WalletName())
	}

	m.SetEnv(wallet.Env{Device: wallet.DeviceDesktop, OS: "linux"})

	var viewed []string
	m.SetActions(walletrepo.Actions{
		ViewWalletRepo: func(repo *walletrepo.WalletRepo) { viewed = append(viewed, repo.ChainName()) },
	})

	repo, err := m.GetWalletRepo(cosmoshubName)
	require.NoError(t, err)
	require.NoError(t, repo.Connect(context.Background(), ""))
	require.Equal(t, []string{cosmoshubName}, viewed)
}
