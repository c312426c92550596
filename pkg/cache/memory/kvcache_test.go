package memory_test

import (
	"sync"
	"testing"
	"time"

	sdkerrors "cosmossdk.io/errors"
	"github.com/stretchr/testify/require"

	"github.com/sunnya97/cosmos-kit/pkg/cache"
	"github.com/sunnya97/cosmos-kit/pkg/cache/memory"
)

// fakeClock is a manually advanced clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestKeyValueCache_Operations(t *testing.T) {
	kvCache, err := memory.NewKeyValueCache[string]()
	require.NoError(t, err)

	kvCache.Set("rpc", "http://a")
	value, ok := kvCache.Get("rpc")
	require.True(t, ok)
	require.Equal(t, "http://a", value)

	kvCache.Set("rpc", "http://b")
	value, ok = kvCache.Get("rpc")
	require.True(t, ok)
	require.Equal(t, "http://b", value)
	require.Equal(t, 1, kvCache.Len())

	_, ok = kvCache.Get("rest")
	require.False(t, ok)

	kvCache.Delete("rpc")
	_, ok = kvCache.Get("rpc")
	require.False(t, ok)

	kvCache.Set("rpc", "http://a")
	kvCache.Set("rest", "http://c")
	kvCache.Clear()
	require.Equal(t, 0, kvCache.Len())
}

func TestKeyValueCache_TTL(t *testing.T) {
	clock := newFakeClock()
	kvCache, err := memory.NewKeyValueCache[string](
		memory.WithTTL(time.Minute),
		memory.WithClock(clock.Now),
	)
	require.NoError(t, err)

	kvCache.Set("rpc", "http://a")
	clock.Advance(59 * time.Second)
	value, ok := kvCache.Get("rpc")
	require.True(t, ok)
	require.Equal(t, "http://a", value)

	clock.Advance(time.Second)
	_, ok = kvCache.Get("rpc")
	require.False(t, ok)
	// Expired values are dropped on read.
	require.Equal(t, 0, kvCache.Len())

	// Setting again restarts the TTL.
	kvCache.Set("rpc", "http://b")
	clock.Advance(30 * time.Second)
	kvCache.Set("rest", "http://c")
	clock.Advance(30 * time.Second)
	_, ok = kvCache.Get("rpc")
	require.False(t, ok)
	_, ok = kvCache.Get("rest")
	require.True(t, ok)
}

func TestKeyValueCache_SetDropsExpired(t *testing.T) {
	clock := newFakeClock()
	kvCache, err := memory.NewKeyValueCache[int](
		memory.WithTTL(time.Second),
		memory.WithClock(clock.Now),
	)
	require.NoError(t, err)

	kvCache.Set("a", 1)
	kvCache.Set("b", 2)
	clock.Advance(time.Second)
	kvCache.Set("c", 3)

	require.Equal(t, 1, kvCache.Len())
}

func TestKeyValueCache_FIFOEviction(t *testing.T) {
	kvCache, err := memory.NewKeyValueCache[string](
		memory.WithMaxKeys(2),
		memory.WithEvictionPolicy(memory.FirstInFirstOut),
	)
	require.NoError(t, err)

	kvCache.Set("key1", "value1")
	kvCache.Set("key2", "value2")
	// Re-setting key1 makes key2 the oldest.
	kvCache.Set("key1", "value1b")
	kvCache.Set("key3", "value3")

	_, ok := kvCache.Get("key2")
	require.False(t, ok)

	value, ok := kvCache.Get("key1")
	require.True(t, ok)
	require.Equal(t, "value1b", value)

	value, ok = kvCache.Get("key3")
	require.True(t, ok)
	require.Equal(t, "value3", value)
	require.Equal(t, 2, kvCache.Len())
}

func TestKeyValueCache_ConcurrentAccess(t *testing.T) {
	kvCache, err := memory.NewKeyValueCache[int](memory.WithMaxKeys(4))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			kvCache.Set("key", i)
			_, _ = kvCache.Get("key")
		}(i)
	}
	wg.Wait()

	_, ok := kvCache.Get("key")
	require.True(t, ok)
	require.Equal(t, 1, kvCache.Len())
}

func TestKeyValueCache_InvalidConfig(t *testing.T) {
	tests := []struct {
		desc          string
		opts          []memory.KeyValueCacheOptionFn
		expectedError *sdkerrors.Error
	}{
		{
			desc:          "negative max keys",
			opts:          []memory.KeyValueCacheOptionFn{memory.WithMaxKeys(-1)},
			expectedError: cache.ErrCacheConfigInvalid,
		},
		{
			desc:          "negative ttl",
			opts:          []memory.KeyValueCacheOptionFn{memory.WithTTL(-time.Second)},
			expectedError: cache.ErrCacheConfigInvalid,
		},
		{
			desc:          "unknown eviction policy",
			opts:          []memory.KeyValueCacheOptionFn{memory.WithEvictionPolicy(memory.EvictionPolicy(9))},
			expectedError: cache.ErrCacheConfigInvalid,
		},
		{
			desc:          "nil clock",
			opts:          []memory.KeyValueCacheOptionFn{memory.WithClock(nil)},
			expectedError: cache.ErrCacheConfigInvalid,
		},
	}

	for _, test := range tests {
		t.Run(test.desc, func(t *testing.T) {
			_, err := memory.NewKeyValueCache[string](test.opts...)
			require.ErrorIs(t, err, test.expectedError)
		})
	}
}
