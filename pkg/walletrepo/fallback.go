package walletrepo

import (
	"context"

	"github.com/sunnya97/cosmos-kit/pkg/client"
	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

const (
	accessorRPCEndpoint    = "rpc_endpoint"
	accessorRESTEndpoint   = "rest_endpoint"
	accessorStargateClient = "stargate_client"
	accessorCosmWasmClient = "cosmwasm_client"
)

// GetRPCEndpoint returns the first non-empty RPC endpoint of the visible
// adapters, asked one at a time in registration order. When none has one, a
// warning naming the chain is logged and ErrRepoNoEndpoint returned.
func (repo *WalletRepo) GetRPCEndpoint(ctx context.Context) (string, error) {
	endpoint, ok := firstNonEmpty(ctx, repo, accessorRPCEndpoint,
		func(ctx context.Context, w wallet.ChainWallet) (string, error) {
			return w.GetRPCEndpoint(ctx)
		},
		func(endpoint string) bool { return endpoint == "" },
	)
	if !ok {
		repo.logger.Warn().Msgf("No valid RPC endpoint for chain %s in wallet repo", repo.record.Name)
		return "", ErrRepoNoEndpoint.Wrapf("rpc endpoint for chain %s", repo.record.Name)
	}
	return endpoint, nil
}

// GetRESTEndpoint is GetRPCEndpoint for REST endpoints.
func (repo *WalletRepo) GetRESTEndpoint(ctx context.Context) (string, error) {
	endpoint, ok := firstNonEmpty(ctx, repo, accessorRESTEndpoint,
		func(ctx context.Context, w wallet.ChainWallet) (string, error) {
			return w.GetRESTEndpoint(ctx)
		},
		func(endpoint string) bool { return endpoint == "" },
	)
	if !ok {
		repo.logger.Warn().Msgf("No valid REST endpoint for chain %s in wallet repo", repo.record.Name)
		return "", ErrRepoNoEndpoint.Wrapf("rest endpoint for chain %s", repo.record.Name)
	}
	return endpoint, nil
}

// GetStargateClient returns the first Stargate client any visible adapter
// provides, falling back in registration order.
func (repo *WalletRepo) GetStargateClient(ctx context.Context) (client.StargateClient, error) {
	stargateClient, ok := firstNonEmpty(ctx, repo, accessorStargateClient,
		func(ctx context.Context, w wallet.ChainWallet) (client.StargateClient, error) {
			return w.GetStargateClient(ctx)
		},
		func(stargateClient client.StargateClient) bool { return stargateClient == nil },
	)
	if !ok {
		repo.logger.Warn().Msgf("No valid Stargate client for chain %s in wallet repo", repo.record.Name)
		return nil, ErrRepoNoClient.Wrapf("stargate client for chain %s", repo.record.Name)
	}
	return stargateClient, nil
}

// GetCosmWasmClient returns the first CosmWasm client any visible adapter
// provides, falling back in registration order.
func (repo *WalletRepo) GetCosmWasmClient(ctx context.Context) (client.CosmWasmClient, error) {
	cosmWasmClient, ok := firstNonEmpty(ctx, repo, accessorCosmWasmClient,
		func(ctx context.Context, w wallet.ChainWallet) (client.CosmWasmClient, error) {
			return w.GetCosmWasmClient(ctx)
		},
		func(cosmWasmClient client.CosmWasmClient) bool { return cosmWasmClient == nil },
	)
	if !ok {
		repo.logger.Warn().Msgf("No valid CosmWasm client for chain %s in wallet repo", repo.record.Name)
		return nil, ErrRepoNoClient.Wrapf("cosmwasm client for chain %s", repo.record.Name)
	}
	return cosmWasmClient, nil
}

// firstNonEmpty asks every visible adapter in turn, waiting for each answer
// before asking the next. Adapter errors count as an empty answer.
func firstNonEmpty[T any](
	ctx context.Context,
	repo *WalletRepo,
	accessor string,
	get func(context.Context, wallet.ChainWallet) (T, error),
	isEmpty func(T) bool,
) (T, bool) {
	logger := repo.logger.With(logging.FieldAccessor, accessor)

	for _, w := range repo.Wallets() {
		value, err := get(ctx, w)
		if err != nil {
			logger.Debug().
				Err(err).
				Str(logging.FieldWallet, string(w.WalletName())).
				Msg("wallet accessor failed, trying next wallet")
			continue
		}
		if isEmpty(value) {
			continue
		}

		fallbackLookupsTotal.WithLabelValues(repo.record.Name, accessor, logging.ResultSuccess).Inc()
		return value, true
	}

	fallbackLookupsTotal.WithLabelValues(repo.record.Name, accessor, logging.ResultEmpty).Inc()
	var zero T
	return zero, false
}
