package auth

import (
	"context"
	"time"
)

const revokedTokenKeyPrefix = "revoked_token:"

// KeyValue is the subset of the cache client the token store needs.
type KeyValue interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// RevocationStore records tokens that were logged out before they expired.
type RevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore keeps revoked token ids in the cache until the token would have expired.
type TokenStore struct {
	kv KeyValue
}

// Ensure TokenStore implements RevocationStore
var _ RevocationStore = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(kv KeyValue) *TokenStore {
	return &TokenStore{kv: kv}
}

// Revoke blacklists tokenID for ttl. Already expired tokens need no entry.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" || ttl <= 0 {
		return nil
	}
	return s.kv.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked checks if a token id is blacklisted.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}
	data, err := s.kv.Get(ctx, revokedTokenKeyPrefix+tokenID)
	if err != nil {
		return false, err
	}
	return data != nil, nil
}
