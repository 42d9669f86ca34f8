// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account (Postgres) implements the storage layer for the user directory.

# Schema Table Mapping
  - users.account: Master identity and profile data.
*/
package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yonota/internal/platform/apperr"
	"github.com/taibuivan/yonota/internal/platform/database/schema"
	"github.com/taibuivan/yonota/internal/users/auth"
)

// # Repository Implementation

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new Postgres implementation for the directory.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// accountColumns returns the column list shared by every SELECT in this file.
func accountColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Bio, schema.UserAccount.Role, schema.UserAccount.IsStaff,
		schema.UserAccount.IsSuperuser, schema.UserAccount.IsActive,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)
}

func scanAccount(row pgx.Row, wrapMessage string) (*auth.User, error) {
	user := &auth.User{}
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

/*
List retrieves a page of accounts ordered by username.

Parameters:
  - context: context.Context
  - search: string (Substring match on username, empty for all)
  - limit: int
  - offset: int

Returns:
  - []*auth.User: Page of accounts
  - int: Total matching rows
  - error: Retrieval failures
*/
func (repository *PostgresRepository) List(context context.Context, search string, limit, offset int) ([]*auth.User, int, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s`, accountColumns(), schema.UserAccount.Table)
	countQuery := fmt.Sprintf(`SELECT count(*) FROM %s`, schema.UserAccount.Table)

	args := []any{}
	countArgs := []any{}

	if search != "" {
		searchTerm := "%" + search + "%"
		query += fmt.Sprintf(` WHERE %s ILIKE $1`, schema.UserAccount.Username)
		countQuery += fmt.Sprintf(` WHERE %s ILIKE $1`, schema.UserAccount.Username)
		args = append(args, searchTerm)
		countArgs = append(countArgs, searchTerm)
	}

	query += fmt.Sprintf(` ORDER BY %s ASC LIMIT $%d OFFSET $%d`, schema.UserAccount.Username, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_count_failed: %w", err)
	}

	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("postgres_account_repo_list_failed: %w", err)
	}
	defer rows.Close()

	users := make([]*auth.User, 0)
	for rows.Next() {
		user := &auth.User{}
		err := rows.Scan(
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
			return nil, 0, fmt.Errorf("postgres_account_repo_scan_failed: %w", err)
		}
		users = append(users, user)
	}

	return users, total, nil
}

/*
FindByID retrieves a user record from the users.account table.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.ID,
	)

	return scanAccount(
		repository.pool.QueryRow(context, query, id),
		"postgres_account_repo_find_by_id_failed",
	)
}

/*
FindByUsername retrieves a user record by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *auth.User: Hydrated identity entity
  - error: apperr.NotFound or database execution failure
*/
func (repository *PostgresRepository) FindByUsername(context context.Context, username string) (*auth.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		accountColumns(), schema.UserAccount.Table, schema.UserAccount.Username,
	)

	return scanAccount(
		repository.pool.QueryRow(context, query, username),
		"postgres_account_repo_find_by_username_failed",
	)
}

/*
Create inserts a new account row.

Description: Constraint violations are returned raw so the service can map
them to field errors by constraint name.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Insert failures
*/
func (repository *PostgresRepository) Create(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NOW(), NOW())
		RETURNING %s, %s`,
		schema.UserAccount.Table,
		schema.UserAccount.ID, schema.UserAccount.Username, schema.UserAccount.Email,
		schema.UserAccount.Bio, schema.UserAccount.Role, schema.UserAccount.IsStaff,
		schema.UserAccount.IsSuperuser, schema.UserAccount.IsActive,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	return repository.pool.QueryRow(context, query,
		user.ID,
		user.Username,
		user.Email,
		user.Bio,
		user.Role,
		user.IsStaff,
		user.IsSuperuser,
		user.IsActive,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
}

/*
Update modifies the mutable fields of an account.

Description: Syncs email, bio, and role, and refreshes the updatedat
timestamp. Constraint violations are returned raw.

Parameters:
  - context: context.Context
  - user: *auth.User

Returns:
  - error: Update failures
*/
func (repository *PostgresRepository) Update(context context.Context, user *auth.User) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.Email, schema.UserAccount.Bio, schema.UserAccount.Role,
		schema.UserAccount.UpdatedAt,
		schema.UserAccount.ID,
	)

	_, err := repository.pool.Exec(context, query,
		user.ID,
		user.Email,
		user.Bio,
		user.Role,
		time.Now(),
	)

	return err
}

/*
Delete removes an account row permanently.

Description: The foreign keys on reviews and comments cascade, so the
account's authored content is removed in the same statement.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: apperr.NotFound if no row matched, or execution failures
*/
func (repository *PostgresRepository) Delete(context context.Context, username string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.UserAccount.Table, schema.UserAccount.Username,
	)

	cmd, err := repository.pool.Exec(context, query, username)
	if err != nil {
		return fmt.Errorf("postgres_account_repo_delete_failed: %w", err)
	}

	if cmd.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
