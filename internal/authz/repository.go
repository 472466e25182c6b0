package authz

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const uniqueViolation = "23505"

// isUniqueViolation reports whether err carries SQLSTATE 23505.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// Repository provides PostgreSQL backed persistence for roles, permissions
// and role assignments.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const roleColumns = `id, code, name, name_ko, description, priority, parent_role_id, is_active, created_at`

func scanRole(row pgx.Row) (Role, error) {
	var role Role
	err := row.Scan(&role.ID, &role.Code, &role.Name, &role.NameKo, &role.Description, &role.Priority, &role.ParentRoleID, &role.IsActive, &role.CreatedAt)
	return role, err
}

func (r *Repository) collectRoles(ctx context.Context, query string, args ...any) ([]Role, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var roles []Role
	for rows.Next() {
		role, err := scanRole(rows)
		if err != nil {
			return nil, err
		}
		roles = append(roles, role)
	}
	return roles, rows.Err()
}

func (r *Repository) collectPermissions(ctx context.Context, query string, args ...any) ([]Permission, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var perms []Permission
	for rows.Next() {
		var p Permission
		if err := rows.Scan(&p.Code, &p.Resource, &p.Action, &p.Scope); err != nil {
			return nil, err
		}
		perms = append(perms, p)
	}
	return perms, rows.Err()
}

// AllActiveRoles returns every active role ordered by priority.
func (r *Repository) AllActiveRoles(ctx context.Context) ([]Role, error) {
	return r.collectRoles(ctx, `SELECT `+roleColumns+` FROM roles WHERE is_active ORDER BY priority DESC, id`)
}

// AllRoles returns every role regardless of activation.
func (r *Repository) AllRoles(ctx context.Context) ([]Role, error) {
	return r.collectRoles(ctx, `SELECT `+roleColumns+` FROM roles ORDER BY priority DESC, id`)
}

// AllActivePermissions returns every active permission.
func (r *Repository) AllActivePermissions(ctx context.Context) ([]Permission, error) {
	return r.collectPermissions(ctx, `SELECT code, resource, action, scope FROM permissions WHERE is_active ORDER BY code`)
}

// ActiveRolesForEmployee returns the roles currently assigned to the employee.
// Filters on the assignment and role activation flags only; assignment expiry
// is stored but not enforced here (known gap kept for parity with existing
// authorization outcomes).
func (r *Repository) ActiveRolesForEmployee(ctx context.Context, employeeID int64) ([]Role, error) {
	return r.collectRoles(ctx, `
		SELECT r.id, r.code, r.name, r.name_ko, r.description, r.priority, r.parent_role_id, r.is_active, r.created_at
		FROM employee_role_assignments a
		JOIN roles r ON r.id = a.role_id
		WHERE a.employee_id = $1 AND a.is_active AND r.is_active
		ORDER BY r.priority DESC, r.id`, employeeID)
}

// PermissionsForRoles returns the union of permissions attached to the roles.
func (r *Repository) PermissionsForRoles(ctx context.Context, roleIDs []int64) ([]Permission, error) {
	if len(roleIDs) == 0 {
		return nil, nil
	}
	return r.collectPermissions(ctx, `
		SELECT p.code, p.resource, p.action, p.scope
		FROM role_permissions rp
		JOIN permissions p ON p.code = rp.permission_code
		WHERE rp.role_id = ANY($1) AND p.is_active`, roleIDs)
}

// FindRoleByCode fetches a role by its symbolic code.
func (r *Repository) FindRoleByCode(ctx context.Context, code string, activeOnly bool) (Role, error) {
	query := `SELECT ` + roleColumns + ` FROM roles WHERE code = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	role, err := scanRole(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Role{}, ErrRoleNotFound
		}
		return Role{}, err
	}
	return role, nil
}

// RolePermissions returns the permissions attached to a single role.
func (r *Repository) RolePermissions(ctx context.Context, roleID int64) ([]Permission, error) {
	return r.collectPermissions(ctx, `
		SELECT p.code, p.resource, p.action, p.scope
		FROM role_permissions rp
		JOIN permissions p ON p.code = rp.permission_code
		WHERE rp.role_id = $1
		ORDER BY p.code`, roleID)
}

// UpsertAssignment inserts or reactivates the (employee, role) assignment.
// On conflict the row is updated in place and forced active so re-assigning a
// revoked role reactivates it.
func (r *Repository) UpsertAssignment(ctx context.Context, a RoleAssignment) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO employee_role_assignments (employee_id, role_id, assigned_by_employee_id, assigned_at, expires_at, is_active)
		VALUES ($1, $2, $3, $4, $5, TRUE)
		ON CONFLICT (employee_id, role_id) DO UPDATE
		SET assigned_by_employee_id = EXCLUDED.assigned_by_employee_id,
		    assigned_at = EXCLUDED.assigned_at,
		    expires_at = EXCLUDED.expires_at,
		    is_active = TRUE`,
		a.EmployeeID, a.RoleID, a.AssignedByEmployeeID, a.AssignedAt, a.ExpiresAt)
	return err
}

// DeactivateAssignment marks the assignment inactive. Revoking a role the
// employee does not hold is a no-op.
func (r *Repository) DeactivateAssignment(ctx context.Context, employeeID, roleID int64) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE employee_role_assignments SET is_active = FALSE
		WHERE employee_id = $1 AND role_id = $2`, employeeID, roleID)
	return err
}

// CreateRole inserts a new role definition.
func (r *Repository) CreateRole(ctx context.Context, role Role) (Role, error) {
	created, err := scanRole(r.pool.QueryRow(ctx, `
		INSERT INTO roles (code, name, name_ko, description, priority, parent_role_id, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE)
		RETURNING `+roleColumns,
		role.Code, role.Name, role.NameKo, role.Description, role.Priority, role.ParentRoleID))
	if err != nil {
		if isUniqueViolation(err) {
			return Role{}, ErrRoleExists
		}
		return Role{}, err
	}
	return created, nil
}

// SetRoleActive toggles the role activation flag.
func (r *Repository) SetRoleActive(ctx context.Context, roleID int64, active bool) error {
	tag, err := r.pool.Exec(ctx, `UPDATE roles SET is_active = $2 WHERE id = $1`, roleID, active)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrRoleNotFound
	}
	return nil
}
