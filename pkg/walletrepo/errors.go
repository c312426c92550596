package walletrepo

import sdkerrors "cosmossdk.io/errors"

var (
	codespace             = "walletrepo"
	ErrRepoNoEndpoint     = sdkerrors.Register(codespace, 1, "no endpoint available")
	ErrRepoNoClient       = sdkerrors.Register(codespace, 2, "no client available")
	ErrRepoWalletNotFound = sdkerrors.Register(codespace, 3, "wallet not found")
	ErrRepoMutexDisabled  = sdkerrors.Register(codespace, 4, "current wallet is undefined when mutex is disabled")
)
