package auth

import (
	"context"
	"time"

	"dealerdesk/internal/cache"
)

const revokedTokenKeyPrefix = "revoked_token:"

// TokenDenylistInterface defines the revoked-token store operations.
type TokenDenylistInterface interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

// TokenDenylist keeps revoked token IDs in Redis until they would have
// expired anyway. Logout writes here; the authenticate gate reads.
type TokenDenylist struct {
	cache *cache.Client
}

// Ensure TokenDenylist implements TokenDenylistInterface
var _ TokenDenylistInterface = (*TokenDenylist)(nil)

// NewTokenDenylist creates a denylist backed by the shared cache.
func NewTokenDenylist(cache *cache.Client) *TokenDenylist {
	return &TokenDenylist{cache: cache}
}

// Revoke marks a token ID as unusable for ttl.
func (d *TokenDenylist) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.cache.Set(ctx, revokedTokenKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsRevoked checks whether a token ID has been revoked. The cache fails safe,
// so an unreachable redis reads as not revoked.
func (d *TokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return d.cache.Exists(ctx, revokedTokenKeyPrefix+tokenID)
}
