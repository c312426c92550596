package flags

import sdkerrors "cosmossdk.io/errors"

const codespace = "flags"

var (
	// ErrFlagNotRegistered is returned when a flag is looked up on a command
	// which never declared it.
	ErrFlagNotRegistered = sdkerrors.Register(codespace, 1, "flag not registered")
	// ErrFlagInvalidValue covers both malformed flag values and malformed
	// positional arguments.
	ErrFlagInvalidValue = sdkerrors.Register(codespace, 2, "invalid flag or argument value")
)
