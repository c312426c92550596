// Package config provides a method by which dependencies can be injected into
// dependency chains, via the use of SupplierFn functions. These functions
// return functions that can be used in CLI code to chain the dependencies
// required by the walletkit commands (logger, session store, chain records,
// wallets and the wallet manager) into a single depinject.Config.
//
// It also defines Config, the walletkit configuration decoded from viper.
package config
