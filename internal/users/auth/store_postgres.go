// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yonota/internal/platform/apperr"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.

Description: Unique-constraint violations on username or email are returned
raw so the service can classify them by constraint name.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users.account (
			id, username, email, bio, role, isstaff, issuperuser, isactive, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.Bio,
		user.Role,
		user.IsStaff,
		user.IsSuperuser,
		user.IsActive,
		user.CreatedAt,
		user.UpdatedAt,
	)

	return err
}

/*
FindByID retrieves a user record by their unique ID.

Parameters:
  - context: context.Context
  - id: string (UUIDv7)

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, username, email, bio, role, isstaff, issuperuser, isactive, createdat, updatedat
		FROM users.account
		WHERE id = $1`

	return scanUser(repository.pool.QueryRow(context, query, id), "postgres_user_repo_find_by_id_failed")
}

/*
FindByUsername retrieves a user record by their unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	const query = `
		SELECT id, username, email, bio, role, isstaff, issuperuser, isactive, createdat, updatedat
		FROM users.account
		WHERE username = $1`

	return scanUser(repository.pool.QueryRow(context, query, username), "postgres_user_repo_find_by_username_failed")
}

/*
FindByEmail retrieves a user record by their unique email address.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByEmail(context context.Context, email string) (*User, error) {
	const query = `
		SELECT id, username, email, bio, role, isstaff, issuperuser, isactive, createdat, updatedat
		FROM users.account
		WHERE email = $1`

	return scanUser(repository.pool.QueryRow(context, query, email), "postgres_user_repo_find_by_email_failed")
}

/*
MarkActive flips the account's isactive flag.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Database errors
*/
func (repository *PostgresUserRepository) MarkActive(context context.Context, userID string) error {
	const query = "UPDATE users.account SET isactive = TRUE, updatedat = $2 WHERE id = $1"
	_, err := repository.pool.Exec(context, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_user_repo_mark_active_failed: %w", err)
	}
	return nil
}

// scanUser hydrates one account row, mapping absence to apperr.NotFound.
func scanUser(row pgx.Row, wrapMessage string) (*User, error) {
	user := &User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.Bio,
		&user.Role,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.IsActive,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("%s: %w", wrapMessage, err)
	}

	return user, nil
}
