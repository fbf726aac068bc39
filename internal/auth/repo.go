package auth

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/inkwell-cms/inkwell/internal/shared"
)

// RoleStore is the authoritative source for a user's current privilege
// level. The resolver consults it on every resolution.
type RoleStore interface {
	FindRoleByEmail(ctx context.Context, email string) (string, error)
}

// Repository defines persistence operations for the auth module.
type Repository interface {
	RoleStore
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

// FindByEmail fetches a user by email.
func (r *PGRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	row := r.pool.QueryRow(ctx, `SELECT id, email, name, COALESCE(image, ''), role, password_hash, is_active, created_at, updated_at FROM users WHERE email = $1`, email)
	var user User
	if err := row.Scan(&user.ID, &user.Email, &user.Name, &user.Image, &user.Role, &user.PasswordHash, &user.IsActive, &user.CreatedAt, &user.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// FindRoleByEmail fetches only the current role of the claimed identity.
func (r *PGRepository) FindRoleByEmail(ctx context.Context, email string) (string, error) {
	var role string
	if err := r.pool.QueryRow(ctx, `SELECT role FROM users WHERE email = $1`, email).Scan(&role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", shared.ErrNotFound
		}
		return "", err
	}
	return role, nil
}

var _ Repository = (*PGRepository)(nil)
