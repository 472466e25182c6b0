package authz

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestSnapshotStore(t *testing.T) *RedisSnapshotStore {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSnapshotStore(client)
}

func TestRedisSnapshotStoreRoundTrip(t *testing.T) {
	store := newTestSnapshotStore(t)
	ctx := context.Background()

	_, ok, err := store.Get(ctx, 7)
	require.NoError(t, err)
	require.False(t, ok)

	now := time.Now().UTC().Truncate(time.Second)
	snap := PermissionSnapshot{
		EmployeeID: 7,
		Permissions: []Permission{
			{Code: "projects:view:own", Resource: "projects", Action: "view", Scope: ScopeOwn},
		},
		Roles:        []Role{{ID: 1, Code: "RESEARCHER", NameKo: "연구원", Priority: 10, IsActive: true}},
		CalculatedAt: now,
		ExpiresAt:    now.Add(time.Hour),
	}
	require.NoError(t, store.Put(ctx, snap))

	got, ok, err := store.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, snap.EmployeeID, got.EmployeeID)
	require.Equal(t, snap.Permissions, got.Permissions)
	require.Len(t, got.Roles, 1)
	require.True(t, snap.ExpiresAt.Equal(got.ExpiresAt))
}

func TestRedisSnapshotStoreDelete(t *testing.T) {
	store := newTestSnapshotStore(t)
	ctx := context.Background()

	now := time.Now()
	snap := PermissionSnapshot{EmployeeID: 7, CalculatedAt: now, ExpiresAt: now.Add(time.Hour)}
	require.NoError(t, store.Put(ctx, snap))
	require.NoError(t, store.Delete(ctx, 7))

	_, ok, err := store.Get(ctx, 7)
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent snapshot is fine.
	require.NoError(t, store.Delete(ctx, 7))
}

func TestRedisSnapshotStoreSkipsExpired(t *testing.T) {
	store := newTestSnapshotStore(t)
	ctx := context.Background()

	now := time.Now()
	snap := PermissionSnapshot{EmployeeID: 7, CalculatedAt: now.Add(-2 * time.Hour), ExpiresAt: now.Add(-time.Hour)}
	require.NoError(t, store.Put(ctx, snap))

	_, ok, err := store.Get(ctx, 7)
	require.NoError(t, err)
	require.False(t, ok, "snapshots already past expiry must not be stored")
}
