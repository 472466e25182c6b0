package jobs

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskProjectValidationSweep revalidates every R&D project.
	TaskProjectValidationSweep = "rnd:validation_sweep"
	// TaskSnapshotWarmup refreshes permission snapshots for assigned employees.
	TaskSnapshotWarmup = "authz:snapshot_warmup"
)

// SweepPayload carries scheduling metadata for the validation sweep.
type SweepPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewProjectValidationSweepTask constructs an Asynq task for the sweep.
func NewProjectValidationSweepTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(SweepPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskProjectValidationSweep, body, asynq.Queue(QueueDefault)), nil
}

// WarmupPayload carries scheduling metadata for the snapshot warmup.
type WarmupPayload struct {
	ScheduledFor time.Time `json:"scheduled_for"`
}

// NewSnapshotWarmupTask constructs an Asynq task for the warmup.
func NewSnapshotWarmupTask(at time.Time) (*asynq.Task, error) {
	body, err := json.Marshal(WarmupPayload{ScheduledFor: at})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskSnapshotWarmup, body, asynq.Queue(QueueDefault)), nil
}
