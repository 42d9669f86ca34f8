// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the passwordless signup and token issuance flow.

Yonota accounts carry no password. Registration is a two-step handshake:

 1. POST /auth/signup registers (or re-registers) a username/email pair and
    emails a short confirmation code.
 2. POST /auth/token exchanges username + code for a signed JWT access token.

# Architecture

This layer is the "Truth" of the identity system. The User entity defined here
is shared with the account package, which manages profiles once an identity
exists.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yonota/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the Yonota platform.
type User struct {
	ID       string       `json:"-"`
	Username string       `json:"username"`
	Email    string       `json:"email"`
	Bio      string       `json:"bio"`
	Role     sec.UserRole `json:"role"`

	// IsStaff and IsSuperuser grant admin-equivalent access regardless of
	// Role. They are set operationally, never through the API.
	IsStaff     bool `json:"-"`
	IsSuperuser bool `json:"-"`

	// IsActive flips to true on the first successful token exchange.
	IsActive bool `json:"-"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldUsername         = "username"
	FieldEmail            = "email"
	FieldConfirmationCode = "confirmation_code"
	FieldRole             = "role"
	FieldBio              = "bio"
	FieldToken            = "token"
	FieldMessage          = "message"
)

// # Column Limits

const (
	UsernameMaxLen = 150
	EmailMaxLen    = 254
	BioMaxLen      = 1000
)
