package authz

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// SnapshotStore persists resolved permission snapshots. The contract is an
// atomic read/replace/delete of the whole snapshot per employee; individual
// permissions are never queried from storage.
type SnapshotStore interface {
	Get(ctx context.Context, employeeID int64) (PermissionSnapshot, bool, error)
	Put(ctx context.Context, snapshot PermissionSnapshot) error
	Delete(ctx context.Context, employeeID int64) error
}

// RedisSnapshotStore keeps snapshots as JSON blobs in Redis with a server-side
// TTL mirroring the snapshot expiry.
type RedisSnapshotStore struct {
	client *redis.Client
}

// NewRedisSnapshotStore wraps the given client.
func NewRedisSnapshotStore(client *redis.Client) *RedisSnapshotStore {
	return &RedisSnapshotStore{client: client}
}

func snapshotKey(employeeID int64) string {
	return fmt.Sprintf("authz:snapshot:%d", employeeID)
}

// Get loads the snapshot for the employee, reporting absence without error.
func (s *RedisSnapshotStore) Get(ctx context.Context, employeeID int64) (PermissionSnapshot, bool, error) {
	payload, err := s.client.Get(ctx, snapshotKey(employeeID)).Bytes()
	if err == redis.Nil {
		return PermissionSnapshot{}, false, nil
	}
	if err != nil {
		return PermissionSnapshot{}, false, err
	}
	var snap PermissionSnapshot
	if err := json.Unmarshal(payload, &snap); err != nil {
		return PermissionSnapshot{}, false, err
	}
	return snap, true, nil
}

// Put replaces the employee's snapshot.
func (s *RedisSnapshotStore) Put(ctx context.Context, snapshot PermissionSnapshot) error {
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	ttl := time.Until(snapshot.ExpiresAt)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, snapshotKey(snapshot.EmployeeID), raw, ttl).Err()
}

// Delete invalidates the employee's snapshot.
func (s *RedisSnapshotStore) Delete(ctx context.Context, employeeID int64) error {
	return s.client.Del(ctx, snapshotKey(employeeID)).Err()
}
