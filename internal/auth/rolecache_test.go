package auth

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

func newCacheFixture(t *testing.T, store RoleStore) *CachedRoleStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewCachedRoleStore(store, client, time.Minute)
}

func TestCachedRoleStoreServesFromCache(t *testing.T) {
	store := &stubRoleStore{roles: map[string]string{"admin@inkwell.local": shared.RoleAdmin}}
	cached := newCacheFixture(t, store)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		role, err := cached.FindRoleByEmail(ctx, "admin@inkwell.local")
		if err != nil || role != shared.RoleAdmin {
			t.Fatalf("lookup %d: %q / %v", i, role, err)
		}
	}
	if store.calls != 1 {
		t.Fatalf("expected a single authoritative lookup, got %d", store.calls)
	}
}

func TestCachedRoleStoreInvalidate(t *testing.T) {
	store := &stubRoleStore{roles: map[string]string{"admin@inkwell.local": shared.RoleAdmin}}
	cached := newCacheFixture(t, store)
	ctx := context.Background()

	if _, err := cached.FindRoleByEmail(ctx, "admin@inkwell.local"); err != nil {
		t.Fatalf("prime cache: %v", err)
	}

	// Demote, then invalidate; the next lookup must observe the new role.
	store.roles["admin@inkwell.local"] = shared.RoleUser
	if err := cached.Invalidate(ctx, "admin@inkwell.local"); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	role, err := cached.FindRoleByEmail(ctx, "admin@inkwell.local")
	if err != nil || role != shared.RoleUser {
		t.Fatalf("expected demoted role after invalidation, got %q / %v", role, err)
	}
}

func TestCachedRoleStoreDoesNotCacheAbsence(t *testing.T) {
	store := &stubRoleStore{roles: map[string]string{}}
	cached := newCacheFixture(t, store)
	ctx := context.Background()

	if _, err := cached.FindRoleByEmail(ctx, "ghost@inkwell.local"); err == nil {
		t.Fatal("expected not-found error")
	}
	store.roles["ghost@inkwell.local"] = shared.RoleUser
	role, err := cached.FindRoleByEmail(ctx, "ghost@inkwell.local")
	if err != nil || role != shared.RoleUser {
		t.Fatalf("absence must be re-checked: %q / %v", role, err)
	}
}
