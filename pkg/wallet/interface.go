package wallet

import (
	"context"

	txtypes "github.com/cosmos/cosmos-sdk/types/tx"

	"github.com/sunnya97/cosmos-kit/pkg/client"
)

// Client is a chain-agnostic wallet backend.
type Client interface {
	// Enable asks the backend to grant access to the given chains.
	Enable(ctx context.Context, chainIDs ...string) error
	// GetAccount returns the account the backend exposes for chainID.
	GetAccount(ctx context.Context, chainID string) (*Account, error)
	// GetOfflineSigner returns a signer bound to chainID.
	GetOfflineSigner(ctx context.Context, chainID string) (OfflineSigner, error)
}

// DirectSignResponse is the result of signing a SignDoc in SIGN_MODE_DIRECT.
type DirectSignResponse struct {
	Signed    *txtypes.SignDoc
	PubKey    []byte
	Signature []byte
}

// OfflineSigner signs transactions without broadcasting them.
type OfflineSigner interface {
	GetAccounts(ctx context.Context) ([]*Account, error)
	SignDirect(
		ctx context.Context,
		signerAddress string,
		signDoc *txtypes.SignDoc,
	) (*DirectSignResponse, error)
}

// ChainWallet is a wallet adapter: one Client bound to one chain. It is the
// unit the wallet repository coordinates.
type ChainWallet interface {
	WalletName() Name
	WalletInfo() Info
	ChainName() string

	Status() Status
	// IsWalletDisconnected reports whether Status is StatusDisconnected.
	IsWalletDisconnected() bool

	// Connect enables the backend for this chain and loads its account.
	Connect(ctx context.Context, sessionOptions *SessionOptions) error
	// Disconnect drops the account and returns to StatusDisconnected.
	Disconnect(ctx context.Context) error

	// GetRPCEndpoint returns a usable RPC endpoint or "" if none is available.
	GetRPCEndpoint(ctx context.Context) (string, error)
	// GetRESTEndpoint returns a usable REST endpoint or "" if none is available.
	GetRESTEndpoint(ctx context.Context) (string, error)
	// GetStargateClient returns nil if no endpoint is available.
	GetStargateClient(ctx context.Context) (client.StargateClient, error)
	// GetCosmWasmClient returns nil if no endpoint is available.
	GetCosmWasmClient(ctx context.Context) (client.CosmWasmClient, error)

	Callbacks() Callbacks
	UpdateCallbacks(callbacks Callbacks)
	SetEnv(env Env)
}
