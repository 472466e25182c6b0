package authz

import "time"

// Scope describes the breadth of a permission grant.
type Scope string

// Scope values, narrowest to broadest.
const (
	ScopeOwn        Scope = "own"
	ScopeDepartment Scope = "department"
	ScopeAll        Scope = "all"
)

// ScopeUnspecified matches any stored scope when passed to HasPermission.
const ScopeUnspecified Scope = ""

// Satisfies reports whether a stored scope covers the requested scope.
// `all` covers everything, `department` also covers `own`; otherwise the
// scopes must match exactly.
func (s Scope) Satisfies(requested Scope) bool {
	if requested == ScopeUnspecified || s == ScopeAll {
		return true
	}
	if s == ScopeDepartment && (requested == ScopeDepartment || requested == ScopeOwn) {
		return true
	}
	return s == requested
}

// Role represents a role definition. Roles are reference data; only the
// activation flag changes after creation.
type Role struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"`
	Name         string    `json:"name"`
	NameKo       string    `json:"name_ko"`
	Description  string    `json:"description,omitempty"`
	Priority     int       `json:"priority"`
	ParentRoleID *int64    `json:"parent_role_id,omitempty"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
}

// Permission represents an atomic capability attached to roles. Identity is
// the (resource, action, scope) tuple.
type Permission struct {
	Code     string `json:"code"`
	Resource string `json:"resource"`
	Action   string `json:"action"`
	Scope    Scope  `json:"scope"`
}

// RoleAssignment links an employee to a role.
type RoleAssignment struct {
	EmployeeID           int64
	RoleID               int64
	AssignedByEmployeeID *int64
	AssignedAt           time.Time
	ExpiresAt            *time.Time
	IsActive             bool
}

// PermissionSnapshot is the cached resolution result for one principal.
type PermissionSnapshot struct {
	EmployeeID   int64        `json:"employee_id"`
	Permissions  []Permission `json:"permissions"`
	Roles        []Role       `json:"roles"`
	CalculatedAt time.Time    `json:"calculated_at"`
	ExpiresAt    time.Time    `json:"expires_at"`
}

// Expired reports whether the snapshot is stale at the given instant. A
// snapshot read exactly at its expiry is treated as stale.
func (s PermissionSnapshot) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
