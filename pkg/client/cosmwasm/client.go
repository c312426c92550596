package cosmwasm

import (
	"context"
	"encoding/json"

	"github.com/sunnya97/cosmos-kit/pkg/client"
	"github.com/sunnya97/cosmos-kit/pkg/client/stargate"
)

var _ client.CosmWasmClient = (*Client)(nil)

// Client is a stargate.Client which can also read CosmWasm contract state.
type Client struct {
	*stargate.Client
}

// NewClient returns a Client for the RPC endpoint.
func NewClient(endpoint string, opts ...stargate.ClientOption) (*Client, error) {
	stargateClient, err := stargate.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{Client: stargateClient}, nil
}

// QueryContractSmart sends queryMsg, which must be valid JSON, to the
// contract and returns its JSON response.
func (c *Client) QueryContractSmart(
	ctx context.Context,
	contractAddress string,
	queryMsg []byte,
) ([]byte, error) {
	if contractAddress == "" {
		return nil, ErrCosmWasmInvalidQuery.Wrap("empty contract address")
	}
	if !json.Valid(queryMsg) {
		return nil, ErrCosmWasmInvalidQuery.Wrapf("query is not valid JSON: %s", queryMsg)
	}

	res, err := c.ABCIQuery(ctx, smartContractStatePath, encodeContractStateRequest(contractAddress, queryMsg))
	if err != nil {
		return nil, ErrCosmWasmQuery.Wrapf("contract: %s [%v]", contractAddress, err)
	}
	return decodeContractStateResponse(res)
}

// QueryContractRaw returns the value stored under key in the contract state,
// or nil when the key is not set.
func (c *Client) QueryContractRaw(
	ctx context.Context,
	contractAddress string,
	key []byte,
) ([]byte, error) {
	if contractAddress == "" {
		return nil, ErrCosmWasmInvalidQuery.Wrap("empty contract address")
	}

	res, err := c.ABCIQuery(ctx, rawContractStatePath, encodeContractStateRequest(contractAddress, key))
	if err != nil {
		return nil, ErrCosmWasmQuery.Wrapf("contract: %s [%v]", contractAddress, err)
	}
	return decodeContractStateResponse(res)
}
