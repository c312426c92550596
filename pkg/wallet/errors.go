package wallet

import sdkerrors "cosmossdk.io/errors"

var (
	codespace              = "wallet"
	ErrWalletNotExist      = sdkerrors.Register(codespace, 1, "wallet does not exist")
	ErrWalletRejected      = sdkerrors.Register(codespace, 2, "wallet request rejected")
	ErrWalletClientMissing = sdkerrors.Register(codespace, 3, "wallet client missing")
	ErrWalletNotConnected  = sdkerrors.Register(codespace, 4, "wallet not connected")
)
