package client

import (
	"context"

	cosmostypes "github.com/cosmos/cosmos-sdk/types"
	accounttypes "github.com/cosmos/cosmos-sdk/x/auth/types"
)

// StargateClient queries the standard Cosmos SDK modules of a chain.
type StargateClient interface {
	// ChainID returns the network reported by the node.
	ChainID(ctx context.Context) (string, error)
	// Height returns the latest block height known to the node.
	Height(ctx context.Context) (int64, error)
	// Balance returns the balance of address in denom.
	Balance(ctx context.Context, address, denom string) (*cosmostypes.Coin, error)
	// AllBalances returns every balance held by address.
	AllBalances(ctx context.Context, address string) (cosmostypes.Coins, error)
	// Account returns the onchain account of address.
	Account(ctx context.Context, address string) (accounttypes.AccountI, error)
	// Endpoint returns the RPC endpoint the client is connected to.
	Endpoint() string
	// Close releases the underlying connection.
	Close() error
}

// CosmWasmClient is a StargateClient which can also query CosmWasm contracts.
type CosmWasmClient interface {
	StargateClient

	// QueryContractSmart runs the JSON query against the contract and returns
	// the raw JSON response.
	QueryContractSmart(ctx context.Context, contractAddress string, queryMsg []byte) ([]byte, error)
	// QueryContractRaw returns the value stored under key in the contract state.
	QueryContractRaw(ctx context.Context, contractAddress string, key []byte) ([]byte, error)
}
