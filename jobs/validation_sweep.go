package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/meridian-erp/meridian-erp/internal/rnd"
)

// ValidationSweeper runs the project revalidation sweep.
type ValidationSweeper struct {
	service *rnd.Service
	logger  *slog.Logger
}

// NewValidationSweeper builds the sweep handler.
func NewValidationSweeper(service *rnd.Service, logger *slog.Logger) *ValidationSweeper {
	return &ValidationSweeper{service: service, logger: logger}
}

// Handle processes TaskProjectValidationSweep tasks.
func (s *ValidationSweeper) Handle(ctx context.Context, t *asynq.Task) error {
	var payload SweepPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	processed, err := s.service.Sweep(ctx)
	if err != nil {
		s.logger.Warn("validation sweep finished with errors",
			slog.Int("processed", processed), slog.Any("error", err))
		return err
	}
	s.logger.Info("validation sweep finished", slog.Int("processed", processed))
	return nil
}
