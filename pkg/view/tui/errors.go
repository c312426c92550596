package tui

import (
	sdkerrors "cosmossdk.io/errors"
)

var (
	codespace           = "tui"
	ErrSelectorCanceled = sdkerrors.Register(codespace, 1, "wallet selection canceled")
	ErrSelectorNoRepo   = sdkerrors.Register(codespace, 2, "no wallet repo to show")
	ErrSelectorRun      = sdkerrors.Register(codespace, 3, "unable to run the terminal view")
)
