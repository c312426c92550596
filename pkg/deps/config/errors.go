package config

import (
	sdkerrors "cosmossdk.io/errors"
)

var (
	codespace             = "depsconfig"
	ErrConfigInvalid      = sdkerrors.Register(codespace, 1, "invalid walletkit config")
	ErrConfigUnknownChain = sdkerrors.Register(codespace, 2, "chain not found in registry")
	ErrConfigSessionStore = sdkerrors.Register(codespace, 3, "unable to open session store")
	ErrConfigWallet       = sdkerrors.Register(codespace, 4, "unable to create wallet")
)
