package authz

import "time"

// AssignRoleRequest represents a request to grant a role to an employee.
type AssignRoleRequest struct {
	EmployeeID int64      `json:"employee_id" validate:"required,gt=0"`
	RoleCode   string     `json:"role_code" validate:"required,max=100"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// RevokeRoleRequest represents a request to revoke a role from an employee.
type RevokeRoleRequest struct {
	EmployeeID int64  `json:"employee_id" validate:"required,gt=0"`
	RoleCode   string `json:"role_code" validate:"required,max=100"`
}

// CreateRoleRequest represents a request to define a new role.
type CreateRoleRequest struct {
	Code         string `json:"code" validate:"required,max=100"`
	Name         string `json:"name" validate:"required,max=200"`
	NameKo       string `json:"name_ko" validate:"required,max=200"`
	Description  string `json:"description,omitempty"`
	Priority     int    `json:"priority" validate:"gte=0"`
	ParentRoleID *int64 `json:"parent_role_id,omitempty" validate:"omitempty,gt=0"`
}
