// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account handles user directory administration and self-service profiles.

It provides the administrative surface for listing, creating, and editing any
account, plus the /me endpoints through which users manage their own profile.

# Architecture

  - Domain: This package depends on the auth package for the User entity.
  - Security: Administrative operations are gated by role middleware; the
    self-service operations only touch the authenticated user's own row.
*/
package account

import (
	"context"

	"github.com/taibuivan/yonota/internal/users/auth"
)

// # Repository Contracts

// Repository defines the persistence contract for user directory management.
type Repository interface {
	/*
		List retrieves a page of accounts, optionally filtered by a username
		search term.

		Parameters:
		  - context: context.Context
		  - search: string (Substring match on username, empty for all)
		  - limit: int
		  - offset: int

		Returns:
		  - []*auth.User: Page of accounts ordered by username
		  - int: Total matching rows
		  - error: Storage failures
	*/
	List(context context.Context, search string, limit, offset int) ([]*auth.User, int, error)

	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByUsername retrieves a user record by their unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *auth.User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByUsername(context context.Context, username string) (*auth.User, error)

	/*
		Create persists a new account row.

		Description: Unique-constraint violations are returned raw so the
		service can classify them by constraint name.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (ID must be set by the caller)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, user *auth.User) error

	/*
		Update persists the mutable fields of an existing account.

		Description: Syncs email, bio, and role, and refreshes the updatedat
		timestamp. Unique-constraint violations are returned raw.

		Parameters:
		  - context: context.Context
		  - user: *auth.User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		Delete removes an account row permanently.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: apperr.NotFound if no such account, or execution failures
	*/
	Delete(context context.Context, username string) error
}
