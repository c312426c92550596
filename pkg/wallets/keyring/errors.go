package keyring

import sdkerrors "cosmossdk.io/errors"

var (
	codespace                     = "keyringwallet"
	ErrKeyringInvalidBackend      = sdkerrors.Register(codespace, 1, "unsupported keyring backend")
	ErrKeyringInvalidMnemonic     = sdkerrors.Register(codespace, 2, "invalid mnemonic")
	ErrKeyringImport              = sdkerrors.Register(codespace, 3, "unable to import key")
	ErrKeyringChainNotEnabled     = sdkerrors.Register(codespace, 4, "chain not enabled")
	ErrKeyringSignerMismatch      = sdkerrors.Register(codespace, 5, "signer address does not match the key")
	ErrKeyringSign                = sdkerrors.Register(codespace, 6, "unable to sign")
	ErrKeyringEmptyKeyName        = sdkerrors.Register(codespace, 7, "empty key name")
	ErrKeyringUnableToOpenKeyring = sdkerrors.Register(codespace, 8, "unable to open keyring")
)
