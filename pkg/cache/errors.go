package cache

import "cosmossdk.io/errors"

const codespace = "cache"

// ErrCacheConfigInvalid is returned by cache constructors given inconsistent
// options.
var ErrCacheConfigInvalid = errors.Register(codespace, 1, "invalid cache config")
