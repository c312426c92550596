package session

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sunnya97/cosmos-kit/pkg/wallet"
)

// Session records that a wallet was connected on a chain.
type Session struct {
	ChainName   string      `json:"chain_name"`
	WalletName  wallet.Name `json:"wallet_name"`
	ConnectedAt time.Time   `json:"connected_at"`
	// ExpiresAt is zero for sessions which never expire.
	ExpiresAt time.Time `json:"expires_at"`
}

// Store persists sessions keyed by chain and wallet name.
type Store interface {
	// Save creates or replaces the session of s.ChainName and s.WalletName.
	Save(ctx context.Context, s *Session) error
	// Get returns nil, nil when no session is stored.
	Get(ctx context.Context, chainName string, walletName wallet.Name) (*Session, error)
	// Delete is a no-op when no session is stored.
	Delete(ctx context.Context, chainName string, walletName wallet.Name) error
	Close() error
}

// NewSession starts a session at now. A zero duration never expires.
func NewSession(chainName string, walletName wallet.Name, now time.Time, duration time.Duration) *Session {
	s := &Session{
		ChainName:   chainName,
		WalletName:  walletName,
		ConnectedAt: now,
	}
	if duration > 0 {
		s.ExpiresAt = now.Add(duration)
	}
	return s
}

// Expired reports whether the session has expired at now.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

func (s *Session) Validate() error {
	if s == nil {
		return ErrSessionInvalid.Wrap("nil session")
	}
	if s.ChainName == "" {
		return ErrSessionInvalid.Wrap("empty chain name")
	}
	if s.WalletName == "" {
		return ErrSessionInvalid.Wrapf("empty wallet name for chain %s", s.ChainName)
	}
	return nil
}

// Key returns the store key of a session, "<chain>/<wallet>".
func Key(chainName string, walletName wallet.Name) string {
	return chainName + "/" + string(walletName)
}

// Encode serializes s as JSON after validating it.
func Encode(s *Session) ([]byte, error) {
	if err := s.Validate(); err != nil {
		return nil, err
	}
	bz, err := json.Marshal(s)
	if err != nil {
		return nil, ErrSessionEncode.Wrapf("session %s [%v]", Key(s.ChainName, s.WalletName), err)
	}
	return bz, nil
}

// Decode parses a session serialized by Encode.
func Decode(bz []byte) (*Session, error) {
	var s Session
	if err := json.Unmarshal(bz, &s); err != nil {
		return nil, ErrSessionDecode.Wrapf("%v", err)
	}
	return &s, nil
}
