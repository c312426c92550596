package leveldb

import (
	"context"
	"errors"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"

	"github.com/sunnya97/cosmos-kit/pkg/logging"
	"github.com/sunnya97/cosmos-kit/pkg/polylog"
	"github.com/sunnya97/cosmos-kit/pkg/polylog/polyzero"
	"github.com/sunnya97/cosmos-kit/pkg/session"
	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

const DefaultKeyPrefix = "walletkit:sessions:"

var _ session.Store = (*Store)(nil)

// StoreOption configures a Store.
type StoreOption func(*Store)

func WithKeyPrefix(keyPrefix string) StoreOption {
	return func(s *Store) { s.keyPrefix = keyPrefix }
}

func WithLogger(logger polylog.Logger) StoreOption {
	return func(s *Store) { s.logger = logger }
}

// Store keeps sessions as JSON values under "<prefix><chain>/<wallet>" keys.
// Expired sessions are kept until deleted; readers check Session.Expired.
type Store struct {
	logger    polylog.Logger
	db        *leveldb.DB
	keyPrefix string

	mu     sync.RWMutex
	closed bool
}

// NewStore wraps an open database. Close closes it.
func NewStore(db *leveldb.DB, opts ...StoreOption) *Store {
	s := &Store{
		logger:    polyzero.NewLogger(polyzero.WithLevel(polyzero.InfoLevel.ZerologLevel())),
		db:        db,
		keyPrefix: DefaultKeyPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.ForComponent(s.logger, logging.ComponentSessionStore).With(logging.FieldBackend, "leveldb")
	return s
}

// OpenFile opens (or creates) the database at path.
func OpenFile(path string, opts ...StoreOption) (*Store, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, session.ErrSessionStore.Wrapf("opening leveldb at %q [%v]", path, err)
	}
	return NewStore(db, opts...), nil
}

// OpenMemory opens a database which lives in memory only.
func OpenMemory(opts ...StoreOption) (*Store, error) {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	if err != nil {
		return nil, session.ErrSessionStore.Wrapf("opening in-memory leveldb [%v]", err)
	}
	return NewStore(db, opts...), nil
}

func (s *Store) key(chainName string, walletName wallet.Name) []byte {
	return []byte(s.keyPrefix + session.Key(chainName, walletName))
}

func (s *Store) Save(ctx context.Context, sess *session.Session) error {
	if err := s.checkUsable(ctx); err != nil {
		return err
	}
	defer s.mu.RUnlock()

	value, err := session.Encode(sess)
	if err != nil {
		return err
	}

	if err = s.db.Put(s.key(sess.ChainName, sess.WalletName), value, nil); err != nil {
		return session.ErrSessionStore.Wrapf("saving %s [%v]", session.Key(sess.ChainName, sess.WalletName), err)
	}

	s.logger.Debug().
		Str(logging.FieldChainName, sess.ChainName).
		Str(logging.FieldWallet, string(sess.WalletName)).
		Msg("saved session")
	return nil
}

func (s *Store) Get(ctx context.Context, chainName string, walletName wallet.Name) (*session.Session, error) {
	if err := s.checkUsable(ctx); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	value, err := s.db.Get(s.key(chainName, walletName), nil)
	if errors.Is(err, leveldb.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, session.ErrSessionStore.Wrapf("getting %s [%v]", session.Key(chainName, walletName), err)
	}
	return session.Decode(value)
}

func (s *Store) Delete(ctx context.Context, chainName string, walletName wallet.Name) error {
	if err := s.checkUsable(ctx); err != nil {
		return err
	}
	defer s.mu.RUnlock()

	if err := s.db.Delete(s.key(chainName, walletName), nil); err != nil {
		return session.ErrSessionStore.Wrapf("deleting %s [%v]", session.Key(chainName, walletName), err)
	}
	return nil
}

// Close closes the database. Subsequent calls are no-ops.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := s.db.Close(); err != nil {
		return session.ErrSessionStore.Wrapf("closing leveldb [%v]", err)
	}
	s.logger.Info().Msg("session store closed")
	return nil
}

// checkUsable read-locks the store on success; the caller must RUnlock.
func (s *Store) checkUsable(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return session.ErrSessionClosed
	}
	return nil
}
