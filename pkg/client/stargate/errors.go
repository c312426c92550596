package stargate

import sdkerrors "cosmossdk.io/errors"

var (
	codespace                = "stargate"
	ErrStargateDial          = sdkerrors.Register(codespace, 1, "unable to create rpc client")
	ErrStargateQuery         = sdkerrors.Register(codespace, 2, "stargate query failed")
	ErrStargateUnpackAccount = sdkerrors.Register(codespace, 3, "unable to deserialize account")
	ErrStargateClosed        = sdkerrors.Register(codespace, 4, "stargate client is closed")
	ErrStargateABCIQuery     = sdkerrors.Register(codespace, 5, "abci query returned a non-zero code")
)
