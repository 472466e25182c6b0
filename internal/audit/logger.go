// Package audit appends authorization audit entries. Writes are best-effort:
// a failed append must never abort the operation that triggered it.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Entry represents a record stored in audit_logs. ActorEmployeeID is nil when
// the actor is a system account.
type Entry struct {
	ID                   uuid.UUID
	ActorEmployeeID      *int64
	Action               string
	TargetEmployeeID     *int64
	TargetRoleID         *int64
	TargetPermissionCode *string
	Details              map[string]any
	At                   time.Time
}

func (e Entry) withDefaults() Entry {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.At.IsZero() {
		e.At = time.Now()
	}
	return e
}

// Logger writes records into audit_logs.
type Logger struct {
	pool *pgxpool.Pool
}

// NewLogger returns a new Logger.
func NewLogger(pool *pgxpool.Pool) *Logger {
	return &Logger{pool: pool}
}

// Record persists the log entry.
func (l *Logger) Record(ctx context.Context, entry Entry) error {
	if l == nil || l.pool == nil {
		return errors.New("audit logger not initialised")
	}
	if entry.Action == "" {
		return errors.New("audit log requires an action")
	}
	entry = entry.withDefaults()
	detailsJSON, err := json.Marshal(entry.Details)
	if err != nil {
		return err
	}
	_, err = l.pool.Exec(ctx, `
		INSERT INTO audit_logs (id, actor_employee_id, action, target_employee_id, target_role_id, target_permission_code, details, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		entry.ID, entry.ActorEmployeeID, entry.Action, entry.TargetEmployeeID, entry.TargetRoleID, entry.TargetPermissionCode, detailsJSON, entry.At)
	return err
}
