package chainwallet

import (
	"context"
	"net/http"
	"strings"

	rpchttp "github.com/cometbft/cometbft/rpc/client/http"

	"github.com/sunnya97/cosmos-kit/pkg/client"
	"github.com/sunnya97/cosmos-kit/pkg/client/cosmwasm"
	"github.com/sunnya97/cosmos-kit/pkg/client/stargate"
	"github.com/sunnya97/cosmos-kit/pkg/logging"
)

const (
	endpointKindRPC  = "rpc"
	endpointKindREST = "rest"

	restNodeInfoPath = "/cosmos/base/tendermint/v1beta1/node_info"
)

// GetRPCEndpoint returns the first healthy RPC endpoint of the chain, or ""
// when none responds. Lazy chains skip probing and use the first candidate.
func (cw *ChainWallet) GetRPCEndpoint(ctx context.Context) (string, error) {
	return cw.resolveEndpoint(ctx, endpointKindRPC, cw.record.RPCCandidates(), cw.probeRPC)
}

// GetRESTEndpoint returns the first healthy REST endpoint of the chain, or ""
// when none responds. Lazy chains skip probing and use the first candidate.
func (cw *ChainWallet) GetRESTEndpoint(ctx context.Context) (string, error) {
	return cw.resolveEndpoint(ctx, endpointKindREST, cw.record.RESTCandidates(), cw.probeREST)
}

// GetStargateClient returns a client on the resolved RPC endpoint, or nil
// when no endpoint is available.
func (cw *ChainWallet) GetStargateClient(ctx context.Context) (client.StargateClient, error) {
	endpoint, err := cw.GetRPCEndpoint(ctx)
	if err != nil || endpoint == "" {
		return nil, err
	}

	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.stargateClient != nil && cw.stargateClient.Endpoint() == endpoint {
		return cw.stargateClient, nil
	}

	stargateClient, err := stargate.NewClient(endpoint)
	if err != nil {
		return nil, ErrChainWalletClient.Wrapf("stargate client for %s [%v]", endpoint, err)
	}
	if cw.stargateClient != nil {
		_ = cw.stargateClient.Close()
	}
	cw.stargateClient = stargateClient
	return stargateClient, nil
}

// GetCosmWasmClient returns a client on the resolved RPC endpoint, or nil
// when no endpoint is available.
func (cw *ChainWallet) GetCosmWasmClient(ctx context.Context) (client.CosmWasmClient, error) {
	endpoint, err := cw.GetRPCEndpoint(ctx)
	if err != nil || endpoint == "" {
		return nil, err
	}

	cw.mu.Lock()
	defer cw.mu.Unlock()

	if cw.cosmWasmClient != nil && cw.cosmWasmClient.Endpoint() == endpoint {
		return cw.cosmWasmClient, nil
	}

	cosmWasmClient, err := cosmwasm.NewClient(endpoint)
	if err != nil {
		return nil, ErrChainWalletClient.Wrapf("cosmwasm client for %s [%v]", endpoint, err)
	}
	if cw.cosmWasmClient != nil {
		_ = cw.cosmWasmClient.Close()
	}
	cw.cosmWasmClient = cosmWasmClient
	return cosmWasmClient, nil
}

func (cw *ChainWallet) resolveEndpoint(
	ctx context.Context,
	kind string,
	candidates []string,
	probe func(ctx context.Context, endpoint string) error,
) (string, error) {
	logger := cw.logger.With(logging.FieldAccessor, kind)

	if endpoint, ok := cw.endpointCache.Get(kind); ok {
		endpointCacheHitsTotal.WithLabelValues(cw.record.Name, kind).Inc()
		return endpoint, nil
	}

	if len(candidates) == 0 {
		logger.Debug().Msg("no endpoint candidates")
		return "", nil
	}

	if cw.record.IsLazy() {
		cw.endpointCache.Set(kind, candidates[0])
		return candidates[0], nil
	}

	for _, endpoint := range candidates {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		probeCtx, cancel := context.WithTimeout(ctx, cw.probeTimeout)
		err := probe(probeCtx, endpoint)
		cancel()

		if err != nil {
			endpointProbesTotal.WithLabelValues(cw.record.Name, kind, logging.ResultFailure).Inc()
			logger.Debug().
				Err(err).
				Str(logging.FieldEndpoint, endpoint).
				Msg("endpoint probe failed")
			continue
		}

		endpointProbesTotal.WithLabelValues(cw.record.Name, kind, logging.ResultSuccess).Inc()
		cw.endpointCache.Set(kind, endpoint)
		return endpoint, nil
	}

	logger.Debug().Int(logging.FieldCount, len(candidates)).Msg("no healthy endpoint")
	return "", nil
}

// probeRPC calls the CometBFT health method on endpoint.
func (cw *ChainWallet) probeRPC(ctx context.Context, endpoint string) error {
	rpcClient, err := rpchttp.New(endpoint, "/websocket")
	if err != nil {
		return err
	}
	_, err = rpcClient.Health(ctx)
	return err
}

// probeREST fetches the node info from the REST endpoint.
func (cw *ChainWallet) probeREST(ctx context.Context, endpoint string) error {
	url := strings.TrimSuffix(endpoint, "/") + restNodeInfoPath
	statusCode, err := cw.probeClient.Get(ctx, cw.logger, url)
	if err != nil {
		return err
	}
	if statusCode != http.StatusOK {
		return ErrChainWalletProbe.Wrapf("GET %s: %d %s", url, statusCode, http.StatusText(statusCode))
	}
	return nil
}
