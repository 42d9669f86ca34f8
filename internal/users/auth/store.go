// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract auth needs for accounts.
// The account package holds the wider administrative contract.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByUsername returns the account with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Unique-constraint or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		MarkActive flips the account's isactive flag after the first
		successful token exchange.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkActive(context context.Context, userID string) error
}

// # Volatile Data Access

// CodeRepository defines the contract for storing volatile confirmation codes.
//
// Codes are keyed by username: storing a new code replaces the previous one,
// so only the latest emailed code is ever exchangeable.
type CodeRepository interface {

	/*
		Set stores the confirmation code for a username, replacing any
		earlier code.

		Parameters:
		  - context: context.Context
		  - username: string
		  - code: string
		  - ttl: time.Duration

		Returns:
		  - error: Persistence failures
	*/
	Set(context context.Context, username, code string, ttl time.Duration) error

	/*
		Get retrieves the stored confirmation code for a username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - string: The stored code
		  - error: apperr.NotFound when absent or expired
	*/
	Get(context context.Context, username string) (string, error)

	/*
		Delete removes the code after a successful exchange.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: Deletion failures
	*/
	Delete(context context.Context, username string) error
}
