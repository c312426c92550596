package session

import (
	sdkerrors "cosmossdk.io/errors"
)

var (
	codespace         = "session"
	ErrSessionInvalid = sdkerrors.Register(codespace, 1, "invalid session")
	ErrSessionEncode  = sdkerrors.Register(codespace, 2, "unable to encode session")
	ErrSessionDecode  = sdkerrors.Register(codespace, 3, "unable to decode session")
	ErrSessionStore   = sdkerrors.Register(codespace, 4, "session store operation failed")
	ErrSessionClosed  = sdkerrors.Register(codespace, 5, "session store is closed")
)
