package memory

import (
	"time"

	"github.com/sunnya97/cosmos-kit/pkg/cache"
)

// EvictionPolicy determines which value is dropped once maxKeys is exceeded.
type EvictionPolicy int64

const (
	// FirstInFirstOut drops the value which was set the longest ago.
	FirstInFirstOut = EvictionPolicy(iota)
)

// KeyValueCacheOptionFn configures a key/value cache.
type KeyValueCacheOptionFn func(*keyValueCacheConfig) error

type keyValueCacheConfig struct {
	// maxKeys is the maximum number of values held; 0 means unbounded.
	maxKeys int64
	// ttl is how long a value is served after being set; 0 disables expiry.
	ttl            time.Duration
	evictionPolicy EvictionPolicy
	now            func() time.Time
}

func defaultKeyValueCacheConfig() keyValueCacheConfig {
	return keyValueCacheConfig{
		evictionPolicy: FirstInFirstOut,
		now:            time.Now,
	}
}

func (cfg *keyValueCacheConfig) validate() error {
	if cfg.maxKeys < 0 {
		return cache.ErrCacheConfigInvalid.Wrapf("maxKeys MUST be >= 0, got %d", cfg.maxKeys)
	}
	if cfg.ttl < 0 {
		return cache.ErrCacheConfigInvalid.Wrapf("ttl MUST be >= 0, got %s", cfg.ttl)
	}
	if cfg.now == nil {
		return cache.ErrCacheConfigInvalid.Wrap("clock MUST NOT be nil")
	}
	switch cfg.evictionPolicy {
	case FirstInFirstOut:
	default:
		return cache.ErrCacheConfigInvalid.Wrapf("unsupported eviction policy %d", cfg.evictionPolicy)
	}
	return nil
}

// WithMaxKeys bounds the number of cached values.
func WithMaxKeys(maxKeys int64) KeyValueCacheOptionFn {
	return func(cfg *keyValueCacheConfig) error {
		cfg.maxKeys = maxKeys
		return nil
	}
}

// WithTTL sets how long values remain valid after being set.
func WithTTL(ttl time.Duration) KeyValueCacheOptionFn {
	return func(cfg *keyValueCacheConfig) error {
		cfg.ttl = ttl
		return nil
	}
}

func WithEvictionPolicy(policy EvictionPolicy) KeyValueCacheOptionFn {
	return func(cfg *keyValueCacheConfig) error {
		cfg.evictionPolicy = policy
		return nil
	}
}

// WithClock replaces time.Now for expiry checks.
func WithClock(now func() time.Time) KeyValueCacheOptionFn {
	return func(cfg *keyValueCacheConfig) error {
		cfg.now = now
		return nil
	}
}
