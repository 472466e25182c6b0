package authz

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Handler exposes the role and permission management endpoints.
type Handler struct {
	logger   *slog.Logger
	service  *Service
	validate *validator.Validate
	guard    Middleware
}

// NewHandler builds Handler instance.
func NewHandler(logger *slog.Logger, service *Service, guard Middleware) *Handler {
	return &Handler{
		logger:   logger,
		service:  service,
		validate: validator.New(),
		guard:    guard,
	}
}

// MountRoutes registers authorization routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/me/permissions", h.myPermissions)
	r.Post("/me/permissions/refresh", h.refreshPermissions)

	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(shared.ResourceRoles, shared.ActionView))
		r.Get("/roles", h.listRoles)
		r.Get("/roles/{code}/permissions", h.rolePermissions)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(shared.ResourceRoles, shared.ActionEdit))
		r.Post("/roles", h.createRole)
		r.Patch("/roles/{id}/active", h.setRoleActive)
	})
	r.Group(func(r chi.Router) {
		r.Use(h.guard.Require(shared.ResourceRoles, shared.ActionAssign))
		r.Post("/role-assignments", h.assignRole)
		r.Post("/role-assignments/revoke", h.revokeRole)
	})
}

func (h *Handler) myPermissions(w http.ResponseWriter, r *http.Request) {
	principalID, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "UNAUTHORIZED", "인증이 필요합니다", "")
		return
	}
	snap, err := h.service.EffectivePermissions(r.Context(), principalID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OK(w, snap)
}

func (h *Handler) refreshPermissions(w http.ResponseWriter, r *http.Request) {
	principalID, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "UNAUTHORIZED", "인증이 필요합니다", "")
		return
	}
	snap, err := h.service.Refresh(r.Context(), principalID)
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OK(w, snap)
}

func (h *Handler) listRoles(w http.ResponseWriter, r *http.Request) {
	roles, err := h.service.AllRoles(r.Context())
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OK(w, roles)
}

func (h *Handler) rolePermissions(w http.ResponseWriter, r *http.Request) {
	perms, err := h.service.RolePermissions(r.Context(), chi.URLParam(r, "code"))
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OK(w, perms)
}

func (h *Handler) createRole(w http.ResponseWriter, r *http.Request) {
	var req CreateRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "INVALID_REQUEST", "요청 본문이 올바르지 않습니다", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_FAILED", "요청 값이 올바르지 않습니다", err.Error())
		return
	}
	role, err := h.service.CreateRole(r.Context(), Role{
		Code:         req.Code,
		Name:         req.Name,
		NameKo:       req.NameKo,
		Description:  req.Description,
		Priority:     req.Priority,
		ParentRoleID: req.ParentRoleID,
	})
	if err != nil {
		h.respondError(w, err)
		return
	}
	httpx.JSON(w, http.StatusCreated, httpx.Envelope{Success: true, Data: role})
}

func (h *Handler) setRoleActive(w http.ResponseWriter, r *http.Request) {
	roleID, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		httpx.Fail(w, http.StatusBadRequest, "INVALID_REQUEST", "역할 ID가 올바르지 않습니다", "")
		return
	}
	var req struct {
		IsActive bool `json:"is_active"`
	}
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "INVALID_REQUEST", "요청 본문이 올바르지 않습니다", err.Error())
		return
	}
	if err := h.service.SetRoleActive(r.Context(), roleID, req.IsActive); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *Handler) assignRole(w http.ResponseWriter, r *http.Request) {
	actorID, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "UNAUTHORIZED", "인증이 필요합니다", "")
		return
	}
	var req AssignRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "INVALID_REQUEST", "요청 본문이 올바르지 않습니다", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_FAILED", "요청 값이 올바르지 않습니다", err.Error())
		return
	}
	if err := h.service.AssignRole(r.Context(), req.EmployeeID, req.RoleCode, actorID, req.ExpiresAt); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *Handler) revokeRole(w http.ResponseWriter, r *http.Request) {
	actorID, ok := shared.PrincipalFromContext(r.Context())
	if !ok {
		httpx.Fail(w, http.StatusUnauthorized, "UNAUTHORIZED", "인증이 필요합니다", "")
		return
	}
	var req RevokeRoleRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "INVALID_REQUEST", "요청 본문이 올바르지 않습니다", err.Error())
		return
	}
	if err := h.validate.Struct(req); err != nil {
		httpx.Fail(w, http.StatusBadRequest, "VALIDATION_FAILED", "요청 값이 올바르지 않습니다", err.Error())
		return
	}
	if err := h.service.RevokeRole(r.Context(), req.EmployeeID, req.RoleCode, actorID); err != nil {
		h.respondError(w, err)
		return
	}
	httpx.OK(w, nil)
}

func (h *Handler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrRoleNotFound):
		httpx.Fail(w, http.StatusNotFound, "ROLE_NOT_FOUND", ErrRoleNotFound.Error(), "")
	case errors.Is(err, ErrRoleExists):
		httpx.Fail(w, http.StatusConflict, "ROLE_EXISTS", ErrRoleExists.Error(), "")
	case errors.Is(err, ErrPermissionLookup):
		h.logger.Error("permission lookup", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "PERMISSION_LOOKUP_FAILED", ErrPermissionLookup.Error(), "")
	case errors.Is(err, ErrRoleAssignment):
		h.logger.Error("role assignment", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "ROLE_ASSIGNMENT_FAILED", ErrRoleAssignment.Error(), "")
	default:
		h.logger.Error("authz handler", slog.Any("error", err))
		httpx.Fail(w, http.StatusInternalServerError, "INTERNAL_ERROR", "요청을 처리할 수 없습니다", "")
	}
}
