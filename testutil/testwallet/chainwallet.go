package testwallet

import (
	"context"
	"sync"

	"github.com/sunnya97/cosmos-kit/pkg/client"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

var _ wallet.ChainWallet = (*ChainWallet)(nil)

// ChainWalletOption configures a fake ChainWallet.
type ChainWalletOption func(*ChainWallet)

// ChainWallet is a fake wallet.ChainWallet. Connect runs the BeforeConnect
// callback like a real adapter would, so hooks injected by a wallet
// repository are exercised.
type ChainWallet struct {
	mu sync.Mutex

	info      wallet.Info
	chainName string
	recorder  *Recorder

	status    wallet.Status
	callbacks wallet.Callbacks
	env       wallet.Env

	rpcEndpoint    string
	restEndpoint   string
	stargateClient client.StargateClient
	cosmWasmClient client.CosmWasmClient

	connectErr    error
	disconnectErr error
	endpointErr   error

	connectCalls           int
	disconnectCalls        int
	lastSessionOptions     *wallet.SessionOptions
	connectStarted         chan struct{}
	connectRelease         chan struct{}
	connectStartedNotified bool
	disconnectRelease      chan struct{}
}

// NewChainWallet returns a disconnected fake adapter for walletName on chainName.
func NewChainWallet(walletName wallet.Name, chainName string, opts ...ChainWalletOption) *ChainWallet {
	cw := &ChainWallet{
		info: wallet.Info{
			Name:       walletName,
			PrettyName: string(walletName),
			Mode:       wallet.ModeExtension,
		},
		chainName: chainName,
	}
	for _, opt := range opts {
		opt(cw)
	}
	return cw
}

// WithMobileDisabled flags the adapter as unavailable on mobile.
func WithMobileDisabled() ChainWalletOption {
	return func(cw *ChainWallet) { cw.info.MobileDisabled = true }
}

func WithRecorder(recorder *Recorder) ChainWalletOption {
	return func(cw *ChainWallet) { cw.recorder = recorder }
}

func WithStatus(status wallet.Status) ChainWalletOption {
	return func(cw *ChainWallet) { cw.status = status }
}

func WithRPCEndpoint(endpoint string) ChainWalletOption {
	return func(cw *ChainWallet) { cw.rpcEndpoint = endpoint }
}

func WithRESTEndpoint(endpoint string) ChainWalletOption {
	return func(cw *ChainWallet) { cw.restEndpoint = endpoint }
}

func WithStargateClient(stargateClient client.StargateClient) ChainWalletOption {
	return func(cw *ChainWallet) { cw.stargateClient = stargateClient }
}

func WithCosmWasmClient(cosmWasmClient client.CosmWasmClient) ChainWalletOption {
	return func(cw *ChainWallet) { cw.cosmWasmClient = cosmWasmClient }
}

// WithConnectError makes Connect fail with err after BeforeConnect ran.
func WithConnectError(err error) ChainWalletOption {
	return func(cw *ChainWallet) { cw.connectErr = err }
}

func WithDisconnectError(err error) ChainWalletOption {
	return func(cw *ChainWallet) { cw.disconnectErr = err }
}

// WithEndpointError makes every endpoint and client getter fail with err.
func WithEndpointError(err error) ChainWalletOption {
	return func(cw *ChainWallet) { cw.endpointErr = err }
}

// WithBlockingConnect makes Connect signal started once BeforeConnect ran
// and then wait for release to be closed.
func WithBlockingConnect(started chan struct{}, release chan struct{}) ChainWalletOption {
	return func(cw *ChainWallet) {
		cw.connectStarted = started
		cw.connectRelease = release
	}
}

// WithBlockingDisconnect makes Disconnect wait for release to be closed.
func WithBlockingDisconnect(release chan struct{}) ChainWalletOption {
	return func(cw *ChainWallet) { cw.disconnectRelease = release }
}

func (cw *ChainWallet) WalletName() wallet.Name {
	return cw.info.Name
}

func (cw *ChainWallet) WalletInfo() wallet.Info {
	return cw.info
}

func (cw *ChainWallet) ChainName() string {
	return cw.chainName
}

func (cw *ChainWallet) Status() wallet.Status {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.status
}

func (cw *ChainWallet) IsWalletDisconnected() bool {
	return cw.Status() == wallet.StatusDisconnected
}

func (cw *ChainWallet) Connect(ctx context.Context, sessionOptions *wallet.SessionOptions) error {
	cw.recorder.record("connect", cw.info.Name)

	cw.mu.Lock()
	cw.connectCalls++
	cw.lastSessionOptions = sessionOptions
	cw.status = wallet.StatusConnecting
	beforeConnect := cw.callbacks.BeforeConnect
	cw.mu.Unlock()

	if beforeConnect != nil {
		if err := beforeConnect(ctx); err != nil {
			cw.setStatus(wallet.StatusError)
			return err
		}
	}

	cw.mu.Lock()
	started, release := cw.connectStarted, cw.connectRelease
	notify := started != nil && !cw.connectStartedNotified
	cw.connectStartedNotified = cw.connectStartedNotified || notify
	cw.mu.Unlock()
	if notify {
		close(started)
	}
	if release != nil {
		<-release
	}

	if cw.connectErr != nil {
		cw.setStatus(wallet.StatusError)
		return cw.connectErr
	}

	cw.setStatus(wallet.StatusConnected)
	return nil
}

func (cw *ChainWallet) Disconnect(ctx context.Context) error {
	cw.recorder.record("disconnect", cw.info.Name)

	cw.mu.Lock()
	cw.disconnectCalls++
	release := cw.disconnectRelease
	cw.mu.Unlock()

	if release != nil {
		<-release
	}

	if cw.disconnectErr != nil {
		return cw.disconnectErr
	}

	cw.setStatus(wallet.StatusDisconnected)
	return nil
}

func (cw *ChainWallet) GetRPCEndpoint(ctx context.Context) (string, error) {
	cw.recorder.record("rpc", cw.info.Name)
	if cw.endpointErr != nil {
		return "", cw.endpointErr
	}
	return cw.rpcEndpoint, nil
}

func (cw *ChainWallet) GetRESTEndpoint(ctx context.Context) (string, error) {
	cw.recorder.record("rest", cw.info.Name)
	if cw.endpointErr != nil {
		return "", cw.endpointErr
	}
	return cw.restEndpoint, nil
}

func (cw *ChainWallet) GetStargateClient(ctx context.Context) (client.StargateClient, error) {
	cw.recorder.record("stargate", cw.info.Name)
	if cw.endpointErr != nil {
		return nil, cw.endpointErr
	}
	return cw.stargateClient, nil
}

func (cw *ChainWallet) GetCosmWasmClient(ctx context.Context) (client.CosmWasmClient, error) {
	cw.recorder.record("cosmwasm", cw.info.Name)
	if cw.endpointErr != nil {
		return nil, cw.endpointErr
	}
	return cw.cosmWasmClient, nil
}

func (cw *ChainWallet) Callbacks() wallet.Callbacks {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.callbacks
}

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

// Env returns the last environment set on the adapter.
func (cw *ChainWallet) Env() wallet.Env {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.env
}

func (cw *ChainWallet) ConnectCalls() int {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.connectCalls
}

func (cw *ChainWallet) DisconnectCalls() int {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.disconnectCalls
}

// LastSessionOptions returns the session options of the last Connect call.
func (cw *ChainWallet) LastSessionOptions() *wallet.SessionOptions {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	return cw.lastSessionOptions
}

func (cw *ChainWallet) setStatus(status wallet.Status) {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	cw.status = status
}
