package authz

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/meridian-erp/meridian-erp/internal/audit"
	"github.com/meridian-erp/meridian-erp/internal/identity"
)

// Audit actions recorded by the service.
const (
	auditActionGrantRole  = "grant_role"
	auditActionRevokeRole = "revoke_role"
)

// RepositoryPort defines data access methods for roles and permissions.
type RepositoryPort interface {
	AllActiveRoles(ctx context.Context) ([]Role, error)
	AllRoles(ctx context.Context) ([]Role, error)
	AllActivePermissions(ctx context.Context) ([]Permission, error)
	ActiveRolesForEmployee(ctx context.Context, employeeID int64) ([]Role, error)
	PermissionsForRoles(ctx context.Context, roleIDs []int64) ([]Permission, error)
	FindRoleByCode(ctx context.Context, code string, activeOnly bool) (Role, error)
	RolePermissions(ctx context.Context, roleID int64) ([]Permission, error)
	UpsertAssignment(ctx context.Context, a RoleAssignment) error
	DeactivateAssignment(ctx context.Context, employeeID, roleID int64) error
	CreateRole(ctx context.Context, role Role) (Role, error)
	SetRoleActive(ctx context.Context, roleID int64, active bool) error
}

// AuditRecorder appends audit entries. Failures are logged and swallowed.
type AuditRecorder interface {
	Record(ctx context.Context, entry audit.Entry) error
}

// ServiceConfig tunes snapshot lifetimes.
type ServiceConfig struct {
	EmployeeTTL      time.Duration
	SystemAccountTTL time.Duration
}

func (c ServiceConfig) withDefaults() ServiceConfig {
	if c.EmployeeTTL <= 0 {
		c.EmployeeTTL = time.Hour
	}
	if c.SystemAccountTTL <= 0 {
		c.SystemAccountTTL = 24 * time.Hour
	}
	return c
}

// Service resolves effective permissions and answers authorization queries.
// Boolean queries are fail-closed: internal faults degrade to a deny, never to
// a propagated error.
type Service struct {
	repo      RepositoryPort
	snapshots SnapshotStore
	identity  identity.Resolver
	auditor   AuditRecorder
	logger    *slog.Logger
	cfg       ServiceConfig
	now       func() time.Time
}

// NewService constructs a Service with its collaborators injected.
func NewService(repo RepositoryPort, snapshots SnapshotStore, resolver identity.Resolver, auditor AuditRecorder, logger *slog.Logger, cfg ServiceConfig) *Service {
	return &Service{
		repo:      repo,
		snapshots: snapshots,
		identity:  resolver,
		auditor:   auditor,
		logger:    logger,
		cfg:       cfg.withDefaults(),
		now:       time.Now,
	}
}

// EffectivePermissions returns the authoritative permission snapshot for the
// principal. System accounts receive a virtual snapshot containing every
// active permission and role; it is never persisted. Employees read through
// the snapshot store and recompute on miss or expiry.
func (s *Service) EffectivePermissions(ctx context.Context, principalID int64) (PermissionSnapshot, error) {
	isSystem, err := s.identity.IsSystemAccount(ctx, principalID)
	if err != nil {
		return PermissionSnapshot{}, fmt.Errorf("%w: %v", ErrPermissionLookup, err)
	}
	if isSystem {
		return s.systemSnapshot(ctx, principalID)
	}
	now := s.now()
	snap, ok, err := s.snapshots.Get(ctx, principalID)
	if err != nil {
		return PermissionSnapshot{}, fmt.Errorf("%w: %v", ErrPermissionLookup, err)
	}
	if ok && !snap.Expired(now) {
		return snap, nil
	}
	return s.Refresh(ctx, principalID)
}

// Refresh recomputes the employee's snapshot from role assignments and
// replaces the stored copy. Assignment expiry is deliberately not enforced
// here; only the activation flags of the assignment and the role are
// consulted.
func (s *Service) Refresh(ctx context.Context, employeeID int64) (PermissionSnapshot, error) {
	roles, err := s.repo.ActiveRolesForEmployee(ctx, employeeID)
	if err != nil {
		return PermissionSnapshot{}, fmt.Errorf("%w: %v", ErrPermissionLookup, err)
	}
	roleIDs := make([]int64, len(roles))
	for i, role := range roles {
		roleIDs[i] = role.ID
	}
	perms, err := s.repo.PermissionsForRoles(ctx, roleIDs)
	if err != nil {
		return PermissionSnapshot{}, fmt.Errorf("%w: %v", ErrPermissionLookup, err)
	}
	now := s.now()
	snap := PermissionSnapshot{
		EmployeeID:   employeeID,
		Permissions:  perms,
		Roles:        roles,
		CalculatedAt: now,
		ExpiresAt:    now.Add(s.cfg.EmployeeTTL),
	}
	if err := s.snapshots.Put(ctx, snap); err != nil {
		return PermissionSnapshot{}, fmt.Errorf("%w: %v", ErrPermissionLookup, err)
	}
	return snap, nil
}

func (s *Service) systemSnapshot(ctx context.Context, principalID int64) (PermissionSnapshot, error) {
	perms, err := s.repo.AllActivePermissions(ctx)
	if err != nil {
		return PermissionSnapshot{}, fmt.Errorf("%w: %v", ErrPermissionLookup, err)
	}
	roles, err := s.repo.AllActiveRoles(ctx)
	if err != nil {
		return PermissionSnapshot{}, fmt.Errorf("%w: %v", ErrPermissionLookup, err)
	}
	now := s.now()
	return PermissionSnapshot{
		EmployeeID:   principalID,
		Permissions:  perms,
		Roles:        roles,
		CalculatedAt: now,
		ExpiresAt:    now.Add(s.cfg.SystemAccountTTL),
	}, nil
}

// HasPermission reports whether the principal holds a permission matching the
// resource, action and requested scope. Pass ScopeUnspecified to match any
// stored scope. Fail-closed.
func (s *Service) HasPermission(ctx context.Context, principalID int64, resource, action string, scope Scope) bool {
	ok, err := s.hasPermission(ctx, principalID, resource, action, scope)
	if err != nil {
		s.warn("has permission", principalID, err)
		return false
	}
	return ok
}

func (s *Service) hasPermission(ctx context.Context, principalID int64, resource, action string, scope Scope) (bool, error) {
	snap, err := s.EffectivePermissions(ctx, principalID)
	if err != nil {
		return false, err
	}
	for _, p := range snap.Permissions {
		if p.Resource == resource && p.Action == action && p.Scope.Satisfies(scope) {
			return true, nil
		}
	}
	return false, nil
}

// HasRole reports whether the principal holds the role. System accounts hold
// every role. Fail-closed.
func (s *Service) HasRole(ctx context.Context, principalID int64, roleCode string) bool {
	ok, err := s.hasRole(ctx, principalID, roleCode)
	if err != nil {
		s.warn("has role", principalID, err)
		return false
	}
	return ok
}

func (s *Service) hasRole(ctx context.Context, principalID int64, roleCode string) (bool, error) {
	isSystem, err := s.identity.IsSystemAccount(ctx, principalID)
	if err != nil {
		return false, err
	}
	if isSystem {
		return true, nil
	}
	snap, err := s.EffectivePermissions(ctx, principalID)
	if err != nil {
		return false, err
	}
	for _, role := range snap.Roles {
		if role.Code == roleCode {
			return true, nil
		}
	}
	return false, nil
}

// CanAccessResource decides access for a concrete resource instance.
// Scope `all` grants outright, `own` requires owner identity, `department`
// grants whenever a department id is supplied.
// TODO: compare resourceDepartmentID against the principal's department once
// employee-department membership is exposed to this service.
func (s *Service) CanAccessResource(ctx context.Context, principalID int64, resource, action string, resourceOwnerID, resourceDepartmentID *int64) bool {
	ok, err := s.canAccessResource(ctx, principalID, resource, action, resourceOwnerID, resourceDepartmentID)
	if err != nil {
		s.warn("can access resource", principalID, err)
		return false
	}
	return ok
}

func (s *Service) canAccessResource(ctx context.Context, principalID int64, resource, action string, resourceOwnerID, resourceDepartmentID *int64) (bool, error) {
	snap, err := s.EffectivePermissions(ctx, principalID)
	if err != nil {
		return false, err
	}
	for _, p := range snap.Permissions {
		if p.Resource != resource || p.Action != action {
			continue
		}
		switch p.Scope {
		case ScopeAll:
			return true, nil
		case ScopeOwn:
			if resourceOwnerID != nil && *resourceOwnerID == principalID {
				return true, nil
			}
		case ScopeDepartment:
			if resourceDepartmentID != nil {
				return true, nil
			}
		}
	}
	return false, nil
}

// HighestRole returns the principal's highest-priority role. On equal
// priority the first role encountered wins; priorities are expected unique in
// practice. Fail-closed to a missing role.
func (s *Service) HighestRole(ctx context.Context, principalID int64) (Role, bool) {
	snap, err := s.EffectivePermissions(ctx, principalID)
	if err != nil {
		s.warn("highest role", principalID, err)
		return Role{}, false
	}
	var (
		highest Role
		found   bool
	)
	for _, role := range snap.Roles {
		if !found || role.Priority > highest.Priority {
			highest = role
			found = true
		}
	}
	return highest, found
}

// AssignRole grants the role to the employee and invalidates their snapshot.
// Re-assigning a revoked role reactivates the existing assignment row.
func (s *Service) AssignRole(ctx context.Context, employeeID int64, roleCode string, assignedBy int64, expiresAt *time.Time) error {
	role, err := s.repo.FindRoleByCode(ctx, roleCode, true)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrRoleAssignment, err)
	}
	assignment := RoleAssignment{
		EmployeeID: employeeID,
		RoleID:     role.ID,
		AssignedAt: s.now(),
		ExpiresAt:  expiresAt,
		IsActive:   true,
	}
	isEmployee, err := s.identity.IsEmployee(ctx, assignedBy)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRoleAssignment, err)
	}
	if isEmployee {
		assignment.AssignedByEmployeeID = &assignedBy
	}
	if err := s.repo.UpsertAssignment(ctx, assignment); err != nil {
		return fmt.Errorf("%w: %v", ErrRoleAssignment, err)
	}
	s.record(ctx, audit.Entry{
		ActorEmployeeID:  assignment.AssignedByEmployeeID,
		Action:           auditActionGrantRole,
		TargetEmployeeID: &employeeID,
		TargetRoleID:     &role.ID,
		Details:          map[string]any{"role_code": role.Code, "expires_at": expiresAt},
	})
	s.invalidate(ctx, employeeID)
	return nil
}

// RevokeRole deactivates the employee's assignment for the role. Revoking a
// role not currently held is not an error.
func (s *Service) RevokeRole(ctx context.Context, employeeID int64, roleCode string, revokedBy int64) error {
	role, err := s.repo.FindRoleByCode(ctx, roleCode, false)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrRoleAssignment, err)
	}
	if err := s.repo.DeactivateAssignment(ctx, employeeID, role.ID); err != nil {
		return fmt.Errorf("%w: %v", ErrRoleAssignment, err)
	}
	var actor *int64
	if isEmployee, err := s.identity.IsEmployee(ctx, revokedBy); err == nil && isEmployee {
		actor = &revokedBy
	}
	s.record(ctx, audit.Entry{
		ActorEmployeeID:  actor,
		Action:           auditActionRevokeRole,
		TargetEmployeeID: &employeeID,
		TargetRoleID:     &role.ID,
		Details:          map[string]any{"role_code": role.Code},
	})
	s.invalidate(ctx, employeeID)
	return nil
}

// AllRoles lists every role definition.
func (s *Service) AllRoles(ctx context.Context) ([]Role, error) {
	return s.repo.AllRoles(ctx)
}

// RolePermissions lists the permissions attached to the role identified by
// code.
func (s *Service) RolePermissions(ctx context.Context, roleCode string) ([]Permission, error) {
	role, err := s.repo.FindRoleByCode(ctx, roleCode, false)
	if err != nil {
		return nil, err
	}
	return s.repo.RolePermissions(ctx, role.ID)
}

// CreateRole inserts a new role definition.
func (s *Service) CreateRole(ctx context.Context, role Role) (Role, error) {
	return s.repo.CreateRole(ctx, role)
}

// SetRoleActive toggles a role's activation flag.
func (s *Service) SetRoleActive(ctx context.Context, roleID int64, active bool) error {
	return s.repo.SetRoleActive(ctx, roleID, active)
}

func (s *Service) invalidate(ctx context.Context, employeeID int64) {
	if err := s.snapshots.Delete(ctx, employeeID); err != nil {
		s.warn("invalidate snapshot", employeeID, err)
	}
}

func (s *Service) record(ctx context.Context, entry audit.Entry) {
	if s.auditor == nil {
		return
	}
	if err := s.auditor.Record(ctx, entry); err != nil && s.logger != nil {
		s.logger.Warn("audit record failed", slog.String("action", entry.Action), slog.Any("error", err))
	}
}

func (s *Service) warn(op string, principalID int64, err error) {
	if s.logger != nil {
		s.logger.Warn(op, slog.Int64("principal_id", principalID), slog.Any("error", err))
	}
}
