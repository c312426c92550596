package redis_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/sunnya97/cosmos-kit/pkg/session"
	"github.com/sunnya97/cosmos-kit/pkg/session/redis"
)

func setupMiniredis(t *testing.T) (*miniredis.Miniredis, goredis.UniversalClient) {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)

	client := goredis.NewClient(&goredis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return mr, client
}

func TestStore_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniredis(t)
	store := redis.NewStore(client)

	sess := session.NewSession("osmosis", "bridge", time.Now(), 0)
	require.NoError(t, store.Save(ctx, sess))
	require.True(t, mr.Exists(redis.DefaultKeyPrefix+":osmosis/bridge"))
	// Sessions without expiry have no TTL.
	require.Zero(t, mr.TTL(redis.DefaultKeyPrefix+":osmosis/bridge"))

	got, err := store.Get(ctx, "osmosis", "bridge")
	require.NoError(t, err)
	require.Equal(t, "osmosis", got.ChainName)
	require.EqualValues(t, "bridge", got.WalletName)

	require.NoError(t, store.Delete(ctx, "osmosis", "bridge"))
	got, err = store.Get(ctx, "osmosis", "bridge")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStore_TTL(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniredis(t)
	store := redis.NewStore(client, redis.WithKeyPrefix("test"))

	sess := session.NewSession("osmosis", "bridge", time.Now(), time.Hour)
	require.NoError(t, store.Save(ctx, sess))

	ttl := mr.TTL("test:osmosis/bridge")
	require.Greater(t, ttl, 59*time.Minute)
	require.LessOrEqual(t, ttl, time.Hour)

	mr.FastForward(2 * time.Hour)

	got, err := store.Get(ctx, "osmosis", "bridge")
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestStore_SaveExpiredDeletes(t *testing.T) {
	ctx := context.Background()
	mr, client := setupMiniredis(t)
	store := redis.NewStore(client)

	require.NoError(t, store.Save(ctx, session.NewSession("osmosis", "bridge", time.Now(), 0)))

	expired := session.NewSession("osmosis", "bridge", time.Now().Add(-2*time.Hour), time.Hour)
	require.NoError(t, store.Save(ctx, expired))
	require.False(t, mr.Exists(redis.DefaultKeyPrefix+":osmosis/bridge"))
}

func TestStore_Errors(t *testing.T) {
	tests := []struct {
		desc          string
		run           func(store *redis.Store) error
		closeStore    bool
		expectedError error
	}{
		{
			desc: "invalid session",
			run: func(store *redis.Store) error {
				return store.Save(context.Background(), &session.Session{ChainName: "osmosis"})
			},
			expectedError: session.ErrSessionInvalid,
		},
		{
			desc: "closed store",
			run: func(store *redis.Store) error {
				_, err := store.Get(context.Background(), "osmosis", "bridge")
				return err
			},
			closeStore:    true,
			expectedError: session.ErrSessionClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			_, client := setupMiniredis(t)
			store := redis.NewStore(client)
			if tt.closeStore {
				require.NoError(t, store.Close())
			}
			require.ErrorIs(t, tt.run(store), tt.expectedError)
		})
	}
}

func TestStore_CorruptValue(t *testing.T) {
	mr, client := setupMiniredis(t)
	store := redis.NewStore(client)

	require.NoError(t, mr.Set(redis.DefaultKeyPrefix+":osmosis/bridge", "not json"))

	_, err := store.Get(context.Background(), "osmosis", "bridge")
	require.ErrorIs(t, err, session.ErrSessionDecode)
}

func TestNewStoreFromURL(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	store, err := redis.NewStoreFromURL("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.Save(context.Background(), session.NewSession("juno", "bridge", time.Now(), 0)))
	require.True(t, mr.Exists(redis.DefaultKeyPrefix+":juno/bridge"))

	_, err = redis.NewStoreFromURL("not a url")
	require.ErrorIs(t, err, session.ErrSessionStore)
}
