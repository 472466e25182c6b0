package authz

import "errors"

// Sentinel errors surfaced to handlers. User-facing messages stay Korean for
// compatibility with the existing UI.
var (
	// ErrRoleNotFound indicates an unrecognised role code.
	ErrRoleNotFound = errors.New("역할을 찾을 수 없습니다")
	// ErrRoleExists indicates a duplicate role code on creation.
	ErrRoleExists = errors.New("이미 존재하는 역할 코드입니다")
	// ErrPermissionLookup indicates the permission data could not be retrieved.
	ErrPermissionLookup = errors.New("권한 정보를 조회할 수 없습니다")
	// ErrRoleAssignment indicates a role assignment or revocation failed.
	ErrRoleAssignment = errors.New("역할 할당에 실패했습니다")
)
