package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meridian-erp/meridian-erp/internal/authz"
)

// SnapshotWarmer precomputes permission snapshots so the first request after
// an invalidation does not pay the resolution cost.
type SnapshotWarmer struct {
	pool    *pgxpool.Pool
	service *authz.Service
	logger  *slog.Logger
}

// NewSnapshotWarmer builds the warmup handler.
func NewSnapshotWarmer(pool *pgxpool.Pool, service *authz.Service, logger *slog.Logger) *SnapshotWarmer {
	return &SnapshotWarmer{pool: pool, service: service, logger: logger}
}

// Handle processes TaskSnapshotWarmup tasks.
func (w *SnapshotWarmer) Handle(ctx context.Context, t *asynq.Task) error {
	var payload WarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	rows, err := w.pool.Query(ctx, `SELECT DISTINCT employee_id FROM employee_role_assignments WHERE is_active`)
	if err != nil {
		return err
	}
	defer rows.Close()
	warmed := 0
	for rows.Next() {
		var employeeID int64
		if err := rows.Scan(&employeeID); err != nil {
			return err
		}
		if _, err := w.service.Refresh(ctx, employeeID); err != nil {
			w.logger.Warn("snapshot warmup", slog.Int64("employee_id", employeeID), slog.Any("error", err))
			continue
		}
		warmed++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	w.logger.Info("snapshot warmup finished", slog.Int("warmed", warmed))
	return nil
}
