package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/token-auth-service/internal/domain"
)

// ErrUserStoreUnavailable is returned when no Postgres pool is configured.
var ErrUserStoreUnavailable = errors.New("user store unavailable")

// UserRepository defines persistence access for accounts. Lookups of a
// missing account return pgx.ErrNoRows.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation. A nil pool
// yields a repository whose calls fail with ErrUserStoreUnavailable.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (id, username, password_hash, authorities)
        VALUES ($1, $2, $3, $4)
        RETURNING created_at, updated_at`

	if r.pool == nil {
		return ErrUserStoreUnavailable
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	authorities := user.Authorities
	if authorities == nil {
		authorities = []string{}
	}

	return r.pool.QueryRow(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		authorities,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

func (r *userRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const query = `
        SELECT id, username, password_hash, authorities, created_at, updated_at
        FROM users WHERE username=$1`

	if r.pool == nil {
		return nil, ErrUserStoreUnavailable
	}

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Authorities,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// IsNotFound reports whether err means the account does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
