package stargate

import (
	"context"
	"net/http"
	"sync/atomic"
	"time"

	rpchttp "github.com/cometbft/cometbft/rpc/client/http"
	jsonrpcclient "github.com/cometbft/cometbft/rpc/jsonrpc/client"
	cosmosclient "github.com/cosmos/cosmos-sdk/client"
	cosmostypes "github.com/cosmos/cosmos-sdk/types"
	accounttypes "github.com/cosmos/cosmos-sdk/x/auth/types"
	banktypes "github.com/cosmos/cosmos-sdk/x/bank/types"
	gogogrpc "github.com/cosmos/gogoproto/grpc"

	"github.com/sunnya97/cosmos-kit/pkg/client"
)

const defaultRequestTimeout = 10 * time.Second

var _ client.StargateClient = (*Client)(nil)

// Client queries a chain through one CometBFT RPC endpoint.
type Client struct {
	endpoint       string
	requestTimeout time.Duration

	httpClient *http.Client
	rpcClient  *rpchttp.HTTP
	// clientConn tunnels module gRPC queries through abci_query.
	clientConn gogogrpc.ClientConn

	bankQuerier    banktypes.QueryClient
	accountQuerier accounttypes.QueryClient

	closed atomic.Bool
}

// NewClient returns a Client for the RPC endpoint. No request is made until
// the first query.
func NewClient(endpoint string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		endpoint:       endpoint,
		requestTimeout: defaultRequestTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	httpClient, err := jsonrpcclient.DefaultHTTPClient(endpoint)
	if err != nil {
		return nil, ErrStargateDial.Wrapf("endpoint: %s [%v]", endpoint, err)
	}
	httpClient.Timeout = c.requestTimeout

	rpcClient, err := rpchttp.NewWithClient(endpoint, "/websocket", httpClient)
	if err != nil {
		return nil, ErrStargateDial.Wrapf("endpoint: %s [%v]", endpoint, err)
	}

	c.httpClient = httpClient
	c.rpcClient = rpcClient
	c.clientConn = cosmosclient.Context{}.
		WithClient(rpcClient).
		WithCodec(queryCodec).
		WithInterfaceRegistry(queryCodec.InterfaceRegistry())
	c.bankQuerier = banktypes.NewQueryClient(c.clientConn)
	c.accountQuerier = accounttypes.NewQueryClient(c.clientConn)

	return c, nil
}

// Endpoint returns the RPC endpoint the client queries.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// ChainID returns the network reported by the node status.
func (c *Client) ChainID(ctx context.Context) (string, error) {
	if c.closed.Load() {
		return "", ErrStargateClosed
	}

	status, err := c.rpcClient.Status(ctx)
	if err != nil {
		return "", ErrStargateQuery.Wrapf("status [%v]", err)
	}
	return status.NodeInfo.Network, nil
}

// Height returns the latest block height reported by the node status.
func (c *Client) Height(ctx context.Context) (int64, error) {
	if c.closed.Load() {
		return 0, ErrStargateClosed
	}

	status, err := c.rpcClient.Status(ctx)
	if err != nil {
		return 0, ErrStargateQuery.Wrapf("status [%v]", err)
	}
	return status.SyncInfo.LatestBlockHeight, nil
}

// Balance returns the balance of address in denom.
func (c *Client) Balance(ctx context.Context, address, denom string) (*cosmostypes.Coin, error) {
	if c.closed.Load() {
		return nil, ErrStargateClosed
	}

	req := &banktypes.QueryBalanceRequest{Address: address, Denom: denom}
	res, err := c.bankQuerier.Balance(ctx, req)
	if err != nil {
		return nil, ErrStargateQuery.Wrapf("balance of %s in %s [%v]", address, denom, err)
	}
	return res.Balance, nil
}

// AllBalances returns the first page of balances held by address.
func (c *Client) AllBalances(ctx context.Context, address string) (cosmostypes.Coins, error) {
	if c.closed.Load() {
		return nil, ErrStargateClosed
	}

	req := &banktypes.QueryAllBalancesRequest{Address: address}
	res, err := c.bankQuerier.AllBalances(ctx, req)
	if err != nil {
		return nil, ErrStargateQuery.Wrapf("all balances of %s [%v]", address, err)
	}
	return res.Balances, nil
}

// Account returns the onchain account of address.
func (c *Client) Account(ctx context.Context, address string) (accounttypes.AccountI, error) {
	if c.closed.Load() {
		return nil, ErrStargateClosed
	}

	req := &accounttypes.QueryAccountRequest{Address: address}
	res, err := c.accountQuerier.Account(ctx, req)
	if err != nil {
		return nil, ErrStargateQuery.Wrapf("account %s [%v]", address, err)
	}

	var acc accounttypes.AccountI
	if err = queryCodec.UnpackAny(res.Account, &acc); err != nil {
		return nil, ErrStargateUnpackAccount.Wrapf("address: %s [%v]", address, err)
	}
	return acc, nil
}

// ABCIQuery runs a raw abci_query against the node and returns the response
// value.
func (c *Client) ABCIQuery(ctx context.Context, path string, data []byte) ([]byte, error) {
	if c.closed.Load() {
		return nil, ErrStargateClosed
	}

	res, err := c.rpcClient.ABCIQuery(ctx, path, data)
	if err != nil {
		return nil, ErrStargateQuery.Wrapf("abci query %s [%v]", path, err)
	}
	if !res.Response.IsOK() {
		return nil, ErrStargateABCIQuery.Wrapf(
			"path: %s, codespace: %s, code: %d, log: %s",
			path, res.Response.Codespace, res.Response.Code, res.Response.Log,
		)
	}
	return res.Response.Value, nil
}

// Close releases idle connections. Subsequent queries fail with
// ErrStargateClosed.
func (c *Client) Close() error {
	if c.closed.Swap(true) {
		return nil
	}
	c.httpClient.CloseIdleConnections()
	return nil
}
