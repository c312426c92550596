package cmd

import (
	"context"
	"errors"
	"runtime"
	"time"

	"cosmossdk.io/depinject"
	"github.com/spf13/cobra"

	"github.com/sunnya97/cosmos-kit/cmd/flags"
	"github.com/sunnya97/cosmos-kit/cmd/logger"
	"github.com/sunnya97/cosmos-kit/cmd/signals"
	"github.com/sunnya97/cosmos-kit/pkg/chainwallet"
	"github.com/sunnya97/cosmos-kit/pkg/deps/config"
	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/manager"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/session"
	"github.com/sunnya97/cosmos-kit/pkg/view/tui"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

const closeTimeout = 10 * time.Second

// kit holds what a command builds from the config. It is set up lazily, by
// the commands which need it, and closed once the command returns.
type kit struct {
	configPath string

	logger   polylog.Logger
	cancel   context.CancelFunc
	manager  *manager.WalletManager
	store    session.Store
	wallets  *config.Wallets
	selector *tui.Selector
}

// Execute runs the walletkit CLI with args.
func Execute(ctx context.Context, args []string) (err error) {
	k := new(kit)
	rootCmd, err := newRootCmd(k)
	if err != nil {
		return err
	}
	rootCmd.SetArgs(args)

	defer func() {
		err = errors.Join(err, k.close())
	}()
	return rootCmd.ExecuteContext(ctx)
}

func newRootCmd(k *kit) (*cobra.Command, error) {
	rootCmd := &cobra.Command{
		Use:   "walletkit",
		Short: "Connect wallets to Cosmos chains",
		Long: `Connect wallets to Cosmos chains.

Every chain of the registry gets one wallet repository holding the configured
wallets: a local keyring and any number of remote bridges. With the mutex on,
connecting a wallet disconnects the other wallets of the same chain. Sessions
are persisted, so a wallet connected by one invocation is reconnected by the
next one until the session expires or the wallet is disconnected.`,
		SilenceUsage:      true,
		PersistentPreRunE: logger.PreRunESetup,
	}

	rootCmd.PersistentFlags().StringVar(&k.configPath, flags.FlagConfig, "", flags.FlagConfigUsage)
	rootCmd.PersistentFlags().StringVar(&logger.LogLevel, flags.FlagLogLevel, flags.DefaultLogLevel, flags.FlagLogLevelUsage)
	rootCmd.PersistentFlags().StringVar(&logger.LogOutput, flags.FlagLogOutput, flags.DefaultLogOutput, flags.FlagLogOutputUsage)
	rootCmd.PersistentFlags().Bool(flags.FlagMobile, false, flags.FlagMobileUsage)
	if err := flags.BindFlags(rootCmd, flags.FlagDescriptor{
		FlagName:    flags.FlagChainsFile,
		ConfigKey:   "chains_file",
		Description: flags.FlagChainsFileUsage,
	}); err != nil {
		return nil, err
	}

	rootCmd.AddCommand(
		chainsCmd(k),
		walletsCmd(k),
		connectCmd(k),
		disconnectCmd(k),
		currentCmd(k),
		endpointCmd(k),
		balanceCmd(k),
		heightCmd(k),
		contractQueryCmd(k),
	)
	return rootCmd, nil
}

// runE wraps run so that the kit is set up first. With restore, the
// persisted sessions are reconnected before run.
func (k *kit) runE(restore bool, run func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if err := k.setup(cmd); err != nil {
			return err
		}
		if restore {
			if err := k.manager.RestoreSessions(cmd.Context()); err != nil {
				return err
			}
		}
		return run(cmd, args)
	}
}

// setup loads the config and builds the wallet manager with its session
// store and wallets.
func (k *kit) setup(cmd *cobra.Command) error {
	k.logger = logging.ForComponent(logger.Logger, logging.ComponentCLI)

	if err := setupViper(cmd, k.configPath); err != nil {
		return err
	}
	cfg, err := parseConfigFromViper()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	k.cancel = cancel
	cmd.SetContext(ctx)
	signals.GoOnExitSignal(ctx, k.logger, cancel)

	deps, err := config.SupplyConfig(ctx, cmd, []config.SupplierFn{
		config.NewSupplyLoggerFromCtx(ctx),
		config.NewSupplySessionStoreFn(cfg.SessionStore),
		config.NewSupplyChainRecordsFn(cfg.ChainsFile, cfg.Chains),
		config.NewSupplyWalletsFn(cfg.Keyring, cfg.Bridges),
		config.NewSupplyWalletManagerFn(managerOptions(cfg)...),
	})
	if err != nil {
		return err
	}
	if err := depinject.Inject(deps, &k.manager, &k.store, &k.wallets); err != nil {
		return err
	}

	k.selector = tui.NewSelector(ctx, tui.WithLogger(k.logger))
	k.manager.SetActions(k.selector.Actions())

	k.logger.Debug().
		Strs(logging.FieldChainNames, k.manager.ChainNames()).
		Int(logging.FieldCount, len(k.wallets.Wallets)).
		Bool(logging.FieldMutex, cfg.Mutex).
		Bool(logging.FieldMobile, cfg.Mobile).
		Msg("wallet manager ready")
	return nil
}

func managerOptions(cfg *config.Config) []manager.ManagerOption {
	env := wallet.Env{Device: wallet.DeviceDesktop, OS: runtime.GOOS}
	if cfg.Mobile {
		env.Device = wallet.DeviceMobile
	}

	opts := []manager.ManagerOption{
		manager.WithMutex(cfg.Mutex),
		manager.WithEnv(env),
		manager.WithSessionOptions(&wallet.SessionOptions{Duration: cfg.SessionDuration}),
	}
	if cfg.ProbeTimeout > 0 {
		opts = append(opts, manager.WithChainWalletOptions(chainwallet.WithProbeTimeout(cfg.ProbeTimeout)))
	}
	return opts
}

// close releases whatever setup built. Sessions survive it.
func (k *kit) close() error {
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	var errs []error
	if k.manager != nil {
		errs = append(errs, k.manager.Close(ctx))
	}
	if k.wallets != nil {
		errs = append(errs, k.wallets.Close())
	}
	if k.store != nil {
		errs = append(errs, k.store.Close())
	}
	if k.cancel != nil {
		k.cancel()
	}
	return errors.Join(errs...)
}
