package rnd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/meridian-erp/meridian-erp/internal/authz"
	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// SweepEnqueuer submits a background revalidation sweep.
type SweepEnqueuer func(ctx context.Context, at time.Time) error

// Handler exposes the project validation endpoints.
type Handler struct {
	logger       *slog.Logger
	service      *Service
	guard        authz.Middleware
	enqueueSweep SweepEnqueuer
}

// NewHandler builds Handler instance. enqueueSweep may be nil when no job
// queue is configured; the sweep trigger endpoint then responds 503.
func NewHandler(logger *slog.Logger, service *Service, guard authz.Middleware, enqueueSweep SweepEnqueuer) *Handler {
	return &Handler{logger: logger, service: service, guard: guard, enqueueSweep: enqueueSweep}
}

// MountRoutes registers project validation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(shared.ResourceProjects, shared.ActionView))
		r.Get("/projects/{id}/validation", h.report)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(shared.ResourceProjects, shared.ActionEdit))
		r.Post("/validation/sweeps", h.triggerSweep)
	})
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	projectID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "INVALID_REQUEST", "과제 ID가 올바르지 않습니다", "")
		return
	}
	report, err := h.service.Report(r.Context(), projectID)
	if err != nil {
		if errors.Is(err, ErrProjectNotFound) {
			httpx.Fail(w, http.StatusNotFound, "PROJECT_NOT_FOUND", ErrProjectNotFound.Error(), "")
			return
		}
		h.logger.Error("validation report", slog.Int64("project_id", projectID), slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "VALIDATION_REPORT_FAILED", "검증 보고서를 생성할 수 없습니다", err.Error())
		return
	}
	httpx.OK(w, report)
}

func (h *Handler) triggerSweep(w http.ResponseWriter, r *http.Request) {
	if h.enqueueSweep == nil {
		httpx.Fail(w, http.StatusServiceUnavailable, "SWEEP_UNAVAILABLE", "검증 작업 큐가 설정되지 않았습니다", "")
		return
	}
	if err := h.enqueueSweep(r.Context(), time.Now()); err != nil {
		h.logger.Error("enqueue validation sweep", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "SWEEP_ENQUEUE_FAILED", "검증 작업을 등록할 수 없습니다", err.Error())
		return
	}
	httpx.JSON(w, http.StatusAccepted, httpx.Envelope{Success: true})
}
