package chainwallet_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/cosmos/cosmos-sdk/crypto/keys/secp256k1"
	cosmostypes "github.com/cosmos/cosmos-sdk/types"
	"github.com/stretchr/testify/require"

	"github.com/sunnya97/cosmos-kit/pkg/chain"
	"github.com/sunnya97/cosmos-kit/pkg/chainwallet"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
	"github.com/sunnya97/cosmos-kit/testutil/testpolylog"
	"github.com/sunnya97/cosmos-kit/testutil/testwallet"
)

const (
	testChainName = "osmosis"
	testChainID   = "osmosis-1"
	testWallet    = wallet.Name("keyring-test")
)

func newTestRecord(endpoints *chain.Endpoints) *chain.Record {
	return &chain.Record{
		Name: testChainName,
		Info: chain.Info{
			ChainName:    testChainName,
			ChainID:      testChainID,
			Bech32Prefix: "osmo",
		},
		PreferredEndpoints: endpoints,
	}
}

func newTestAccount(t *testing.T) *wallet.Account {
	t.Helper()

	pubKey := secp256k1.GenPrivKey().PubKey()
	return &wallet.Account{
		Name:    "alice",
		Algo:    "secp256k1",
		PubKey:  pubKey.Bytes(),
		Address: cosmostypes.AccAddress(pubKey.Address()),
	}
}

func newTestChainWallet(
	t *testing.T,
	walletClient wallet.Client,
	opts ...chainwallet.ChainWalletOption,
) *chainwallet.ChainWallet {
	t.Helper()

	logger, _ := testpolylog.NewBufferedLogger()
	opts = append([]chainwallet.ChainWalletOption{chainwallet.WithLogger(logger)}, opts...)

	info := wallet.Info{Name: testWallet, PrettyName: "Keyring (test)", Mode: wallet.ModeExtension}
	cw, err := chainwallet.NewChainWallet(info, newTestRecord(nil), walletClient, opts...)
	require.NoError(t, err)
	return cw
}

func TestNewChainWallet_InvalidRecord(t *testing.T) {
	info := wallet.Info{Name: testWallet}

	_, err := chainwallet.NewChainWallet(info, nil, testwallet.NewClient())
	require.ErrorIs(t, err, chainwallet.ErrChainWalletInvalidChain)

	_, err = chainwallet.NewChainWallet(info, &chain.Record{Name: testChainName}, testwallet.NewClient())
	require.ErrorIs(t, err, chainwallet.ErrChainWalletInvalidChain)
}

func TestChainWallet_Connect(t *testing.T) {
	account := newTestAccount(t)
	walletClient := testwallet.NewClient(testwallet.WithAccount(testChainID, account))

	var calls []string
	cw := newTestChainWallet(t, walletClient, chainwallet.WithCallbacks(wallet.Callbacks{
		BeforeConnect: func(ctx context.Context) error {
			calls = append(calls, "before_connect")
			return nil
		},
		AfterConnect: func(ctx context.Context) {
			calls = append(calls, "after_connect")
		},
	}))

	require.Equal(t, testWallet, cw.WalletName())
	require.Equal(t, testChainName, cw.ChainName())
	require.True(t, cw.IsWalletDisconnected())

	err := cw.Connect(context.Background(), nil)
	require.NoError(t, err)

	require.Equal(t, wallet.StatusConnected, cw.Status())
	require.False(t, cw.IsWalletDisconnected())
	require.Equal(t, account, cw.Account())
	require.Equal(t, []string{testChainID}, walletClient.EnabledChainIDs())
	require.Equal(t, []string{"before_connect", "after_connect"}, calls)

	address, err := cw.Address()
	require.NoError(t, err)
	expectedAddress, err := cosmostypes.Bech32ifyAddressBytes("osmo", account.Address)
	require.NoError(t, err)
	require.Equal(t, expectedAddress, address)
}

func TestChainWallet_ConnectErrors(t *testing.T) {
	errUnexpected := errors.New("unexpected")

	tests := []struct {
		desc string

		clientOpts    []testwallet.ClientOption
		beforeConnect func(ctx context.Context) error

		expectedError      error
		expectedStatus     wallet.Status
		expectedEnableCall int
	}{
		{
			desc:               "enable rejected",
			clientOpts:         []testwallet.ClientOption{testwallet.WithEnableError(wallet.ErrWalletRejected.Wrap("user said no"))},
			expectedError:      wallet.ErrWalletRejected,
			expectedStatus:     wallet.StatusRejected,
			expectedEnableCall: 1,
		},
		{
			desc:               "key does not exist",
			clientOpts:         []testwallet.ClientOption{testwallet.WithEnableError(wallet.ErrWalletNotExist)},
			expectedError:      wallet.ErrWalletNotExist,
			expectedStatus:     wallet.StatusNotExist,
			expectedEnableCall: 1,
		},
		{
			desc:               "unexpected enable error",
			clientOpts:         []testwallet.ClientOption{testwallet.WithEnableError(errUnexpected)},
			expectedError:      errUnexpected,
			expectedStatus:     wallet.StatusError,
			expectedEnableCall: 1,
		},
		{
			desc:               "account lookup fails",
			clientOpts:         []testwallet.ClientOption{testwallet.WithGetAccountError(errUnexpected)},
			expectedError:      errUnexpected,
			expectedStatus:     wallet.StatusError,
			expectedEnableCall: 1,
		},
		{
			desc: "before connect hook fails",
			beforeConnect: func(ctx context.Context) error {
				return errUnexpected
			},
			expectedError:      errUnexpected,
			expectedStatus:     wallet.StatusError,
			expectedEnableCall: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			clientOpts := append([]testwallet.ClientOption{
				testwallet.WithAccount(testChainID, newTestAccount(t)),
			}, tt.clientOpts...)
			walletClient := testwallet.NewClient(clientOpts...)

			cw := newTestChainWallet(t, walletClient, chainwallet.WithCallbacks(wallet.Callbacks{
				BeforeConnect: tt.beforeConnect,
			}))

			err := cw.Connect(context.Background(), nil)
			require.ErrorIs(t, err, tt.expectedError)
			require.Equal(t, tt.expectedStatus, cw.Status())
			require.Nil(t, cw.Account())
			require.Equal(t, tt.expectedEnableCall, walletClient.EnableCalls())
		})
	}
}

func TestChainWallet_ConnectWithoutClient(t *testing.T) {
	cw := newTestChainWallet(t, nil)

	err := cw.Connect(context.Background(), nil)
	require.ErrorIs(t, err, wallet.ErrWalletClientMissing)
	require.Equal(t, wallet.StatusNotExist, cw.Status())
}

func TestChainWallet_Disconnect(t *testing.T) {
	walletClient := testwallet.NewClient(testwallet.WithAccount(testChainID, newTestAccount(t)))

	var calls []string
	cw := newTestChainWallet(t, walletClient, chainwallet.WithCallbacks(wallet.Callbacks{
		BeforeDisconnect: func(ctx context.Context) {
			calls = append(calls, "before_disconnect")
		},
		AfterDisconnect: func(ctx context.Context) {
			calls = append(calls, "after_disconnect")
		},
	}))

	ctx := context.Background()
	require.NoError(t, cw.Connect(ctx, nil))
	require.NoError(t, cw.Disconnect(ctx))

	require.Equal(t, wallet.StatusDisconnected, cw.Status())
	require.Nil(t, cw.Account())
	require.Equal(t, []string{"before_disconnect", "after_disconnect"}, calls)

	_, err := cw.Address()
	require.ErrorIs(t, err, chainwallet.ErrChainWalletNotConnected)

	// Disconnecting again is harmless.
	require.NoError(t, cw.Disconnect(ctx))
	require.Equal(t, wallet.StatusDisconnected, cw.Status())
}

func TestChainWallet_ConnectSupersededByDisconnect(t *testing.T) {
	walletClient := testwallet.NewClient(testwallet.WithAccount(testChainID, newTestAccount(t)))
	cw := newTestChainWallet(t, walletClient)

	cw.UpdateCallbacks(wallet.Callbacks{
		BeforeConnect: func(ctx context.Context) error {
			return cw.Disconnect(ctx)
		},
	})

	err := cw.Connect(context.Background(), nil)
	require.ErrorIs(t, err, chainwallet.ErrChainWalletConnectAborted)
	require.Equal(t, wallet.StatusDisconnected, cw.Status())
	require.Nil(t, cw.Account())
}

func TestChainWallet_SessionExpiry(t *testing.T) {
	walletClient := testwallet.NewClient(testwallet.WithAccount(testChainID, newTestAccount(t)))
	cw := newTestChainWallet(t, walletClient)

	expired := make(chan struct{})
	sessionOptions := &wallet.SessionOptions{
		Duration: 50 * time.Millisecond,
		OnExpire: func() { close(expired) },
	}

	require.NoError(t, cw.Connect(context.Background(), sessionOptions))
	require.Equal(t, wallet.StatusConnected, cw.Status())

	select {
	case <-expired:
	case <-time.After(2 * time.Second):
		t.Fatal("session did not expire")
	}
	require.Equal(t, wallet.StatusDisconnected, cw.Status())
}

func TestChainWallet_DisconnectStopsSessionExpiry(t *testing.T) {
	walletClient := testwallet.NewClient(testwallet.WithAccount(testChainID, newTestAccount(t)))
	cw := newTestChainWallet(t, walletClient)

	expired := make(chan struct{}, 1)
	sessionOptions := &wallet.SessionOptions{
		Duration: 30 * time.Millisecond,
		OnExpire: func() { expired <- struct{}{} },
	}

	ctx := context.Background()
	require.NoError(t, cw.Connect(ctx, sessionOptions))
	require.NoError(t, cw.Disconnect(ctx))
	require.NoError(t, cw.Connect(ctx, nil))

	time.Sleep(100 * time.Millisecond)
	require.Empty(t, expired)
	require.Equal(t, wallet.StatusConnected, cw.Status())
}

func TestChainWallet_Reconnect(t *testing.T) {
	errHook := errors.New("hook failed")

	tests := []struct {
		desc string

		// A zero duration connects without session options.
		firstDuration  time.Duration
		secondDuration time.Duration
		reconnectErr   error

		expectedError      error
		expectedExpiration string
		expectedStatus     wallet.Status
		expectedAccount    bool
	}{
		{
			desc:            "reconnect without sessions",
			expectedStatus:  wallet.StatusConnected,
			expectedAccount: true,
		},
		{
			desc:            "longer session replaces a shorter one",
			firstDuration:   30 * time.Millisecond,
			secondDuration:  time.Hour,
			expectedStatus:  wallet.StatusConnected,
			expectedAccount: true,
		},
		{
			desc:            "reconnect without a session cancels the previous one",
			firstDuration:   30 * time.Millisecond,
			expectedStatus:  wallet.StatusConnected,
			expectedAccount: true,
		},
		{
			desc:               "shorter session replaces a longer one",
			firstDuration:      time.Hour,
			secondDuration:     30 * time.Millisecond,
			expectedExpiration: "second",
			expectedStatus:     wallet.StatusDisconnected,
		},
		{
			desc:           "failed reconnect forgets the previous connection",
			firstDuration:  30 * time.Millisecond,
			secondDuration: time.Hour,
			reconnectErr:   errHook,
			expectedError:  errHook,
			expectedStatus: wallet.StatusError,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			walletClient := testwallet.NewClient(testwallet.WithAccount(testChainID, newTestAccount(t)))
			cw := newTestChainWallet(t, walletClient)

			expirations := make(chan string, 4)
			sessionOptions := func(label string, duration time.Duration) *wallet.SessionOptions {
				if duration == 0 {
					return nil
				}
				return &wallet.SessionOptions{
					Duration: duration,
					OnExpire: func() { expirations <- label },
				}
			}

			ctx := context.Background()
			require.NoError(t, cw.Connect(ctx, sessionOptions("first", test.firstDuration)))

			if test.reconnectErr != nil {
				cw.UpdateCallbacks(wallet.Callbacks{
					BeforeConnect: func(ctx context.Context) error { return test.reconnectErr },
				})
			}

			err := cw.Connect(ctx, sessionOptions("second", test.secondDuration))
			if test.expectedError != nil {
				require.ErrorIs(t, err, test.expectedError)
			} else {
				require.NoError(t, err)
			}

			if test.expectedExpiration != "" {
				select {
				case label := <-expirations:
					require.Equal(t, test.expectedExpiration, label)
				case <-time.After(2 * time.Second):
					t.Fatal("session did not expire")
				}
			}

			// Outlive every short session so a leftover timer would fire.
			time.Sleep(100 * time.Millisecond)
			require.Empty(t, expirations)
			require.Equal(t, test.expectedStatus, cw.Status())

			if test.expectedAccount {
				require.NotNil(t, cw.Account())
				_, err = cw.Address()
				require.NoError(t, err)
				return
			}
			require.Nil(t, cw.Account())
			_, err = cw.Address()
			require.ErrorIs(t, err, chainwallet.ErrChainWalletNotConnected)
		})
	}
}

func TestChainWallet_Callbacks(t *testing.T) {
	cw := newTestChainWallet(t, testwallet.NewClient())
	require.Nil(t, cw.Callbacks().BeforeConnect)

	called := false
	callbacks := cw.Callbacks()
	callbacks.AfterConnect = func(ctx context.Context) { called = true }
	cw.UpdateCallbacks(callbacks)

	cw.Callbacks().AfterConnect(context.Background())
	require.True(t, called)
}

func TestChainWallet_SetEnv(t *testing.T) {
	cw := newTestChainWallet(t, testwallet.NewClient())

	env := wallet.Env{Device: wallet.DeviceMobile, OS: "ios"}
	cw.SetEnv(env)
	require.Equal(t, env, cw.Env())
}

func TestChainWallet_GetOfflineSigner(t *testing.T) {
	account := newTestAccount(t)
	walletClient := testwallet.NewClient(testwallet.WithAccount(testChainID, account))
	cw := newTestChainWallet(t, walletClient)

	ctx := context.Background()

	_, err := cw.GetOfflineSigner(ctx)
	require.ErrorIs(t, err, chainwallet.ErrChainWalletNotConnected)

	require.NoError(t, cw.Connect(ctx, nil))

	signer, err := cw.GetOfflineSigner(ctx)
	require.NoError(t, err)

	accounts, err := signer.GetAccounts(ctx)
	require.NoError(t, err)
	require.Equal(t, []*wallet.Account{account}, accounts)
}
