package redis

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
	"github.com/sunnya97/cosmos-kit/pkg/session"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

const DefaultKeyPrefix = "walletkit:sessions"

var _ session.Store = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

func WithKeyPrefix(keyPrefix string) StoreOption {
	return func(s *Store) { s.keyPrefix = keyPrefix }
}

func WithLogger(logger polylog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// Store keeps sessions as JSON values under "<prefix>:<chain>/<wallet>" keys.
// Sessions with an expiry get a matching TTL so Redis evicts them.
type Store struct {
	logger      polylog.Logger
	redisClient redis.UniversalClient
	keyPrefix   string
	ownsClient  bool

	mu     sync.RWMutex
	closed bool
}

// NewStore creates a store on redisClient. The caller keeps ownership of the
// client; Close does not close it.
func NewStore(redisClient redis.UniversalClient, opts ...StoreOption) *Store {
	s := &Store{
		logger:      polyzero.NewLogger(polyzero.WithLevel(polyzero.InfoLevel.ZerologLevel())),
		redisClient: redisClient,
		keyPrefix:   DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.ForComponent(s.logger, logging.ComponentSessionStore).With(logging.FieldBackend, "redis")
	return s
}

// NewStoreFromURL parses a redis:// URL and creates a store owning the client.
func NewStoreFromURL(redisURL string, opts ...StoreOption) (*Store, error) {
	redisOpts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, session.ErrSessionStore.Wrapf("parsing redis url [%v]", err)
	}
	s := NewStore(redis.NewClient(redisOpts), opts...)
	s.ownsClient = true
	return s, nil
}

func (s *Store) key(chainName string, walletName wallet.Name) string {
	return s.keyPrefix + ":" + session.Key(chainName, walletName)
}

// Save stores sess. An already expired session is deleted instead.
func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	if err := s.checkUsable(); err != nil {
		return err
	}
	defer s.mu.RUnlock()

	value, err := session.Encode(sess)
	if err != nil {
		return err
	}

	key := s.key(sess.ChainName, sess.WalletName)
	var ttl time.Duration
	if !sess.ExpiresAt.IsZero() {
		ttl = time.Until(sess.ExpiresAt)
		if ttl <= 0 {
			if err = s.redisClient.Del(ctx, key).Err(); err != nil {
				return session.ErrSessionStore.Wrapf("deleting expired %s [%v]", key, err)
			}
			return nil
		}
	}

	if err = s.redisClient.Set(ctx, key, value, ttl).Err(); err != nil {
		return session.ErrSessionStore.Wrapf("saving %s [%v]", key, err)
	}

	s.logger.Debug().
		Str(logging.FieldChainName, sess.ChainName).
		Str(logging.FieldWallet, string(sess.WalletName)).
		Dur("ttl", ttl).
		Msg("saved session")
	return nil
}

func (s *Store) Get(ctx context.Context, chainName string, walletName wallet.Name) (*session.Session, error) {
	if err := s.checkUsable(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	key := s.key(chainName, walletName)
	value, err := s.redisClient.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, session.ErrSessionStore.Wrapf("getting %s [%v]", key, err)
	}
	return session.Decode(value)
}

func (s *Store) Delete(ctx context.Context, chainName string, walletName wallet.Name) error {
	if err := s.checkUsable(); err != nil {
		return err
	}
	defer s.mu.RUnlock()

	key := s.key(chainName, walletName)
	if err := s.redisClient.Del(ctx, key).Err(); err != nil {
		return session.ErrSessionStore.Wrapf("deleting %s [%v]", key, err)
	}
	return nil
}

// Close marks the store closed. The client is closed only when the store
// created it.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	s.logger.Info().Msg("session store closed")
	if s.ownsClient {
		return s.redisClient.Close()
	}
	return nil
}

// checkUsable read-locks the store on success; the caller must RUnlock.
func (s *Store) checkUsable() error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return session.ErrSessionClosed
	}
	return nil
}
