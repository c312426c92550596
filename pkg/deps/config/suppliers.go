package config

import (
	"context"
	"errors"

	"cosmossdk.io/depinject"
	"github.com/spf13/cobra"

	"github.com/sunnya97/cosmos-kit/pkg/chain"
	"github.com/sunnya97/cosmos-kit/pkg/manager"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/session"
	"github.com/sunnya97/cosmos-kit/pkg/session/leveldb"
	"github.com/sunnya97/cosmos-kit/pkg/session/redis"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
	"github.com/sunnya97/cosmos-kit/pkg/wallets/bridge"
	"github.com/sunnya97/cosmos-kit/pkg/wallets/keyring"
)

// SupplierFn is a function that is used to supply a depinject config.
type SupplierFn func(
	context.Context,
	depinject.Config,
	*cobra.Command,
) (depinject.Config, error)

// ChainRecords holds the chain records selected from the registry.
type ChainRecords struct {
	Records []*chain.Record
}

// Wallets holds the configured wallets. Close releases the bridge
// connections.
type Wallets struct {
	Wallets []manager.Wallet
	bridges []*bridge.Wallet
}

// Close closes every bridge wallet.
func (w *Wallets) Close() error {
	var errs []error
	for _, bridgeWallet := range w.bridges {
		errs = append(errs, bridgeWallet.Close())
	}
	return errors.Join(errs...)
}

// SupplyConfig supplies a depinject config by calling each of the supplied
// supplier functions in order and passing the result of each supplier to the
// next supplier, chaining them together.
func SupplyConfig(
	ctx context.Context,
	cmd *cobra.Command,
	suppliers []SupplierFn,
) (deps depinject.Config, err error) {
	// Initialize deps to with empty depinject config.
	deps = depinject.Configs()
	for _, supplyFn := range suppliers {
		deps, err = supplyFn(ctx, deps, cmd)
		if err != nil {
			return nil, err
		}
	}
	return deps, nil
}

// NewSupplyLoggerFromCtx supplies a depinject config with a polylog.Logger instance
// populated from the given context.
func NewSupplyLoggerFromCtx(ctx context.Context) SupplierFn {
	return func(
		_ context.Context,
		deps depinject.Config,
		_ *cobra.Command,
	) (depinject.Config, error) {
		return depinject.Configs(deps, depinject.Supply(polylog.Ctx(ctx))), nil
	}
}

// NewSupplySessionStoreFn supplies a depinject config with the session.Store
// selected by storeCfg.
//
// Required dependencies:
// - polylog.Logger
func NewSupplySessionStoreFn(storeCfg SessionStoreConfig) SupplierFn {
	return func(
		_ context.Context,
		deps depinject.Config,
		_ *cobra.Command,
	) (depinject.Config, error) {
		var logger polylog.Logger
		if err := depinject.Inject(deps, &logger); err != nil {
			return nil, err
		}

		var (
			store session.Store
			err   error
		)
		switch storeCfg.Backend {
		case SessionStoreLevelDB:
			store, err = leveldb.OpenFile(storeCfg.Path, leveldbOptions(logger, storeCfg)...)
		case SessionStoreMemory:
			store, err = leveldb.OpenMemory(leveldbOptions(logger, storeCfg)...)
		case SessionStoreRedis:
			redisOpts := []redis.StoreOption{redis.WithLogger(logger)}
			if storeCfg.KeyPrefix != "" {
				redisOpts = append(redisOpts, redis.WithKeyPrefix(storeCfg.KeyPrefix))
			}
			store, err = redis.NewStoreFromURL(storeCfg.RedisURL, redisOpts...)
		default:
			return nil, ErrConfigSessionStore.Wrapf("unknown backend %q", storeCfg.Backend)
		}
		if err != nil {
			return nil, ErrConfigSessionStore.Wrapf("%s backend [%v]", storeCfg.Backend, err)
		}

		return depinject.Configs(deps, depinject.Supply(store)), nil
	}
}

func leveldbOptions(logger polylog.Logger, storeCfg SessionStoreConfig) []leveldb.StoreOption {
	opts := []leveldb.StoreOption{leveldb.WithLogger(logger)}
	if storeCfg.KeyPrefix != "" {
		opts = append(opts, leveldb.WithKeyPrefix(storeCfg.KeyPrefix))
	}
	return opts
}

// NewSupplyChainRecordsFn supplies a depinject config with the ChainRecords
// loaded from chainsFile. When chainNames is not empty, only those chains are
// kept, in the given order.
func NewSupplyChainRecordsFn(chainsFile string, chainNames []string) SupplierFn {
	return func(
		_ context.Context,
		deps depinject.Config,
		_ *cobra.Command,
	) (depinject.Config, error) {
		records, err := chain.LoadRegistryFile(chainsFile)
		if err != nil {
			return nil, err
		}

		records, err = selectChains(records, chainNames)
		if err != nil {
			return nil, err
		}

		return depinject.Configs(deps, depinject.Supply(&ChainRecords{Records: records})), nil
	}
}

func selectChains(records []*chain.Record, chainNames []string) ([]*chain.Record, error) {
	if len(chainNames) == 0 {
		return records, nil
	}

	byName := make(map[string]*chain.Record, len(records))
	for _, record := range records {
		byName[record.Name] = record
	}

	selected := make([]*chain.Record, 0, len(chainNames))
	for _, chainName := range chainNames {
		record, ok := byName[chainName]
		if !ok {
			return nil, ErrConfigUnknownChain.Wrapf("chain %q", chainName)
		}
		selected = append(selected, record)
	}
	return selected, nil
}

// NewSupplyWalletsFn supplies a depinject config with the Wallets built from
// the keyring and bridge configs. The keyring wallet, if enabled, comes first.
//
// Required dependencies:
// - polylog.Logger
func NewSupplyWalletsFn(keyringCfg KeyringConfig, bridgeCfgs []BridgeConfig) SupplierFn {
	return func(
		_ context.Context,
		deps depinject.Config,
		cmd *cobra.Command,
	) (depinject.Config, error) {
		var logger polylog.Logger
		if err := depinject.Inject(deps, &logger); err != nil {
			return nil, err
		}

		wallets := &Wallets{}
		if keyringCfg.Enabled {
			keyringWallet, err := keyring.NewWallet(keyringOptions(logger, keyringCfg, cmd)...)
			if err != nil {
				return nil, ErrConfigWallet.Wrapf("keyring [%v]", err)
			}
			wallets.Wallets = append(wallets.Wallets, manager.Wallet{
				Info:   keyringWallet.Info(),
				Client: keyringWallet,
			})
		}

		for _, bridgeCfg := range bridgeCfgs {
			bridgeOpts := []bridge.WalletOption{
				bridge.WithLogger(logger),
				bridge.WithName(wallet.Name(bridgeCfg.Name)),
			}
			if bridgeCfg.PrettyName != "" {
				bridgeOpts = append(bridgeOpts, bridge.WithPrettyName(bridgeCfg.PrettyName))
			}
			if bridgeCfg.RequestTimeout > 0 {
				bridgeOpts = append(bridgeOpts, bridge.WithRequestTimeout(bridgeCfg.RequestTimeout))
			}

			bridgeWallet, err := bridge.NewWallet(bridgeCfg.URL, bridgeOpts...)
			if err != nil {
				return nil, ErrConfigWallet.Wrapf("bridge %q [%v]", bridgeCfg.Name, err)
			}
			wallets.bridges = append(wallets.bridges, bridgeWallet)
			wallets.Wallets = append(wallets.Wallets, manager.Wallet{
				Info:   bridgeWallet.Info(),
				Client: bridgeWallet,
			})
		}

		return depinject.Configs(deps, depinject.Supply(wallets)), nil
	}
}

func keyringOptions(logger polylog.Logger, keyringCfg KeyringConfig, cmd *cobra.Command) []keyring.WalletOption {
	opts := []keyring.WalletOption{
		keyring.WithLogger(logger),
		keyring.WithBackend(keyringCfg.Backend),
		keyring.WithDir(keyringCfg.Dir),
	}
	if keyringCfg.AppName != "" {
		opts = append(opts, keyring.WithAppName(keyringCfg.AppName))
	}
	if keyringCfg.KeyName != "" {
		opts = append(opts, keyring.WithKeyName(keyringCfg.KeyName))
	}
	if keyringCfg.Mnemonic != "" {
		opts = append(opts, keyring.WithMnemonic(keyringCfg.Mnemonic))
	}
	if cmd != nil {
		opts = append(opts, keyring.WithInput(cmd.InOrStdin()))
	}
	return opts
}

// NewSupplyWalletManagerFn supplies a depinject config with a WalletManager.
//
// Required dependencies:
// - polylog.Logger
// - session.Store
// - *ChainRecords
// - *Wallets
func NewSupplyWalletManagerFn(opts ...manager.ManagerOption) SupplierFn {
	return func(
		_ context.Context,
		deps depinject.Config,
		_ *cobra.Command,
	) (depinject.Config, error) {
		var (
			records *ChainRecords
			wallets *Wallets
		)
		if err := depinject.Inject(deps, &records, &wallets); err != nil {
			return nil, err
		}

		walletManager, err := manager.NewWalletManager(deps, records.Records, wallets.Wallets, opts...)
		if err != nil {
			return nil, err
		}

		return depinject.Configs(deps, depinject.Supply(walletManager)), nil
	}
}
