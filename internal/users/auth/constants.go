// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Authentication Constraints

const (
	// AccessTokenTTL is the duration a JWT access token remains valid.
	// There is no refresh flow, so a full day keeps re-confirmation rare
	// while still bounding a leaked token's lifetime.
	AccessTokenTTL = 24 * time.Hour

	// ConfirmationCodeTTL is how long a signup confirmation code stays
	// exchangeable. Users may not check email immediately, so it matches
	// the token lifetime.
	ConfirmationCodeTTL = 24 * time.Hour
)
