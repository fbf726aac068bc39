package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedRoleStore puts a short-lived Redis cache in front of the
// authoritative role lookup. The freshness guarantee survives because
// every role change must call Invalidate before it is acknowledged.
type CachedRoleStore struct {
	store  RoleStore
	client *redis.Client
	ttl    time.Duration
}

// NewCachedRoleStore constructs the cache decorator.
func NewCachedRoleStore(store RoleStore, client *redis.Client, ttl time.Duration) *CachedRoleStore {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachedRoleStore{store: store, client: client, ttl: ttl}
}

// FindRoleByEmail serves from cache when possible; only successful
// authoritative lookups are cached, so absence is always re-checked.
func (c *CachedRoleStore) FindRoleByEmail(ctx context.Context, email string) (string, error) {
	key := c.key(email)
	if role, err := c.client.Get(ctx, key).Result(); err == nil && role != "" {
		return role, nil
	}
	role, err := c.store.FindRoleByEmail(ctx, email)
	if err != nil {
		return "", err
	}
	_ = c.client.Set(ctx, key, role, c.ttl).Err()
	return role, nil
}

// Invalidate drops the cached role. Callers changing a role must invoke
// this before reporting success.
func (c *CachedRoleStore) Invalidate(ctx context.Context, email string) error {
	return c.client.Del(ctx, c.key(email)).Err()
}

func (c *CachedRoleStore) key(email string) string {
	return "role:" + email
}

var _ RoleStore = (*CachedRoleStore)(nil)
