package bridge

import (
	sdkerrors "cosmossdk.io/errors"
)

var (
	codespace           = "bridgewallet"
	ErrBridgeInvalidURL = sdkerrors.Register(codespace, 1, "invalid bridge url")
	ErrBridgeDial       = sdkerrors.Register(codespace, 2, "unable to dial bridge")
	ErrBridgeRPC        = sdkerrors.Register(codespace, 3, "bridge returned an error")
	ErrBridgeDecode     = sdkerrors.Register(codespace, 4, "unable to decode bridge message")
	ErrBridgeClosed     = sdkerrors.Register(codespace, 5, "bridge wallet closed")
	ErrBridgeTransport  = sdkerrors.Register(codespace, 6, "bridge connection failed")
)
