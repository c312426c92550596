package manager

import (
	sdkerrors "cosmossdk.io/errors"
)

var (
	codespace                 = "walletmanager"
	ErrManagerChainNotFound   = sdkerrors.Register(codespace, 1, "chain not found")
	ErrManagerNoWallets       = sdkerrors.Register(codespace, 2, "no wallets configured")
	ErrManagerNoChains        = sdkerrors.Register(codespace, 3, "no chains configured")
	ErrManagerDuplicateWallet = sdkerrors.Register(codespace, 4, "duplicate wallet name")
	ErrManagerDuplicateChain  = sdkerrors.Register(codespace, 5, "duplicate chain name")
	ErrManagerWalletNotFound  = sdkerrors.Register(codespace, 6, "wallet not found")
)
