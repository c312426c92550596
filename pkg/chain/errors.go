package chain

import sdkerrors "cosmossdk.io/errors"

var (
	codespace                      = "chain"
	ErrChainRegistryEmpty          = sdkerrors.Register(codespace, 1, "empty chain registry content")
	ErrChainRegistryUnmarshalYAML  = sdkerrors.Register(codespace, 2, "config reader cannot unmarshal yaml content")
	ErrChainRegistryInvalidChain   = sdkerrors.Register(codespace, 3, "invalid chain in chain registry")
	ErrChainRegistryDuplicateChain = sdkerrors.Register(codespace, 4, "duplicate chain in chain registry")
	ErrChainRegistryInvalidURL     = sdkerrors.Register(codespace, 5, "invalid endpoint url in chain registry")
	ErrChainRegistryUnknownChain   = sdkerrors.Register(codespace, 6, "chain registry entry references an unknown chain")
	ErrChainRegistryInvalidGas     = sdkerrors.Register(codespace, 7, "invalid gas price in chain registry")
	ErrChainRegistryRead           = sdkerrors.Register(codespace, 8, "unable to read chain registry file")
)
