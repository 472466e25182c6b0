// Package identity classifies principal ids as system accounts or employees.
package identity

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidAPIKey indicates a system-account key mismatch.
var ErrInvalidAPIKey = errors.New("유효하지 않은 API 키입니다")

// Resolver answers which population a principal id belongs to.
type Resolver interface {
	IsSystemAccount(ctx context.Context, principalID int64) (bool, error)
	IsEmployee(ctx context.Context, principalID int64) (bool, error)
}

// Repository resolves principals against PostgreSQL.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// IsSystemAccount reports whether the id belongs to an active system account.
func (r *Repository) IsSystemAccount(ctx context.Context, principalID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM system_accounts WHERE id = $1 AND is_active)`, principalID).Scan(&exists)
	return exists, err
}

// IsEmployee reports whether the id belongs to an employee record.
func (r *Repository) IsEmployee(ctx context.Context, principalID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM employees WHERE id = $1)`, principalID).Scan(&exists)
	return exists, err
}

// VerifyAPIKey checks a system-account API key against its stored bcrypt hash.
func (r *Repository) VerifyAPIKey(ctx context.Context, accountID int64, key string) error {
	var hash string
	err := r.pool.QueryRow(ctx, `SELECT api_key_hash FROM system_accounts WHERE id = $1 AND is_active`, accountID).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrInvalidAPIKey
		}
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(key)); err != nil {
		return ErrInvalidAPIKey
	}
	return nil
}

// HashAPIKey produces the bcrypt hash stored for a system-account key.
func HashAPIKey(key string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(key), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
