package chainwallet

import sdkerrors "cosmossdk.io/errors"

var (
	codespace                    = "chainwallet"
	ErrChainWalletInvalidChain   = sdkerrors.Register(codespace, 1, "invalid chain record")
	ErrChainWalletConnectAborted = sdkerrors.Register(codespace, 2, "connection superseded by a concurrent disconnect or reconnect")
	ErrChainWalletNotConnected   = sdkerrors.Register(codespace, 3, "chain wallet is not connected")
	ErrChainWalletClient         = sdkerrors.Register(codespace, 4, "unable to build chain client")
	ErrChainWalletProbe          = sdkerrors.Register(codespace, 5, "endpoint probe failed")
)
