package memory

import (
	"sync"
	"time"

	"github.com/sunnya97/cosmos-kit/pkg/cache"
)

var _ cache.KeyValueCache[any] = (*keyValueCache[any])(nil)

// keyValueCache is an in-memory KeyValueCache safe for concurrent use.
// Expired values are dropped lazily, by Get and Set.
type keyValueCache[T any] struct {
	config keyValueCacheConfig

	mu      sync.Mutex
	entries map[string]entry[T]
	// nextSeq orders entries by the time they were set, for FIFO eviction.
	nextSeq uint64
}

type entry[T any] struct {
	value T
	seq   uint64
	// expiresAt is zero when the cache has no TTL.
	expiresAt time.Time
}

// NewKeyValueCache returns an empty cache configured by opts.
func NewKeyValueCache[T any](opts ...KeyValueCacheOptionFn) (*keyValueCache[T], error) {
	config := defaultKeyValueCacheConfig()
	for _, opt := range opts {
		if err := opt(&config); err != nil {
			return nil, err
		}
	}
	if err := config.validate(); err != nil {
		return nil, err
	}

	return &keyValueCache[T]{
		config:  config,
		entries: make(map[string]entry[T]),
	}, nil
}

func (c *keyValueCache[T]) Get(key string) (T, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero T
		return zero, false
	}
	if c.expiredLocked(e, c.config.now()) {
		delete(c.entries, key)
		var zero T
		return zero, false
	}
	return e.value, true
}

// Set stores value under key. Setting an existing key makes it the newest.
func (c *keyValueCache[T]) Set(key string, value T) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.config.now()
	e := entry[T]{value: value, seq: c.nextSeq}
	c.nextSeq++
	if c.config.ttl > 0 {
		e.expiresAt = now.Add(c.config.ttl)
	}
	c.entries[key] = e

	c.evictLocked(now)
}

func (c *keyValueCache[T]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

func (c *keyValueCache[T]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry[T])
}

func (c *keyValueCache[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *keyValueCache[T]) expiredLocked(e entry[T], now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// evictLocked drops expired entries, then the oldest ones while more than
// maxKeys remain.
func (c *keyValueCache[T]) evictLocked(now time.Time) {
	if c.config.ttl > 0 {
		for key, e := range c.entries {
			if c.expiredLocked(e, now) {
				delete(c.entries, key)
			}
		}
	}

	if c.config.maxKeys <= 0 {
		return
	}
	for int64(len(c.entries)) > c.config.maxKeys {
		var (
			oldestKey string
			oldestSeq uint64
			found     bool
		)
		for key, e := range c.entries {
			if !found || e.seq < oldestSeq {
				oldestKey, oldestSeq, found = key, e.seq, true
			}
		}
		delete(c.entries, oldestKey)
	}
}
