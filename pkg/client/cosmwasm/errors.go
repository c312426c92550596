package cosmwasm

import sdkerrors "cosmossdk.io/errors"

var (
	codespace                = "cosmwasm"
	ErrCosmWasmInvalidQuery  = sdkerrors.Register(codespace, 1, "invalid contract query")
	ErrCosmWasmQuery         = sdkerrors.Register(codespace, 2, "contract query failed")
	ErrCosmWasmDecodeMessage = sdkerrors.Register(codespace, 3, "unable to decode contract query response")
)
