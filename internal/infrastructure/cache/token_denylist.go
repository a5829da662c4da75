package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenDenylist records revoked token ids until they would have expired anyway.
type TokenDenylist interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

type redisTokenDenylist struct {
	client *redis.Client
	now    func() time.Time
}

// NewTokenDenylist falls back to a no-op list when client is nil.
func NewTokenDenylist(client *redis.Client) TokenDenylist {
	if client == nil {
		return nopTokenDenylist{}
	}
	return &redisTokenDenylist{client: client, now: time.Now}
}

func revokedTokenKey(tokenID string) string {
	return fmt.Sprintf("revoked_token:%s", tokenID)
}

func (d *redisTokenDenylist) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(d.now())
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, revokedTokenKey(tokenID), 1, ttl).Err()
}

func (d *redisTokenDenylist) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	exists, err := d.client.Exists(ctx, revokedTokenKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}

type nopTokenDenylist struct{}

func (nopTokenDenylist) Revoke(context.Context, string, time.Time) error { return nil }

func (nopTokenDenylist) IsRevoked(context.Context, string) (bool, error) { return false, nil }

// MemoryTokenDenylist is an in-process denylist used by tests and single-node setups.
type MemoryTokenDenylist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewMemoryTokenDenylist() *MemoryTokenDenylist {
	return &MemoryTokenDenylist{revoked: make(map[string]time.Time), now: time.Now}
}

func (d *MemoryTokenDenylist) Revoke(_ context.Context, tokenID string, expiresAt time.Time) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.revoked[tokenID] = expiresAt
	return nil
}

func (d *MemoryTokenDenylist) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	expiresAt, ok := d.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !d.now().Before(expiresAt) {
		delete(d.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
