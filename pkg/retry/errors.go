package retry

import (
	sdkerrors "cosmossdk.io/errors"
)

var (
	codespace = "retry"

	// ErrNonRetryable, when wrapped by an attempt's error, stops Call.
	ErrNonRetryable = sdkerrors.Register(codespace, 1, "non-retryable error")
)

// NonRetryable marks err so that Call returns it without retrying.
func NonRetryable(err error) error {
	return ErrNonRetryable.Wrapf("%v", err)
}
