package authz

import (
	"log/slog"
	"net/http"

	"github.com/meridian-erp/meridian-erp/internal/platform/httpx"
	"github.com/meridian-erp/meridian-erp/internal/shared"
)

// Middleware wires authorization helpers for HTTP handlers. Identity is
// established upstream (token verification is a separate concern); this layer
// only consults the resolver.
type Middleware struct {
	Service *Service
	Logger  *slog.Logger
}

// Require ensures the current principal holds a permission for the resource
// and action at any scope.
func (m Middleware) Require(resource, action string) func(http.Handler) http.Handler {
	return m.RequireScope(resource, action, ScopeUnspecified)
}

// RequireScope ensures the current principal holds a permission covering the
// requested scope. Missing identity or a resolver fault both deny.
func (m Middleware) RequireScope(resource, action string, scope Scope) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principalID, ok := shared.PrincipalFromContext(r.Context())
			if !ok {
				httpx.Problem(w, http.StatusUnauthorized, "Unauthorized", "인증이 필요합니다")
				return
			}
			if !m.Service.HasPermission(r.Context(), principalID, resource, action, scope) {
				if m.Logger != nil {
					m.Logger.Info("permission denied",
						slog.Int64("principal_id", principalID),
						slog.String("resource", resource),
						slog.String("action", action))
				}
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "접근 권한이 없습니다")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole ensures the current principal holds the given role.
func (m Middleware) RequireRole(roleCode string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principalID, ok := shared.PrincipalFromContext(r.Context())
			if !ok || !m.Service.HasRole(r.Context(), principalID, roleCode) {
				httpx.Problem(w, http.StatusForbidden, "Forbidden", "접근 권한이 없습니다")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
