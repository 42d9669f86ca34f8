// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// UserRole represents the authorization level granted to an account.
type UserRole string

const (
	// Unrestricted system access, including catalog and user management
	RoleAdmin UserRole = "admin"

	// Can edit or remove any review and comment
	RoleModerator UserRole = "moderator"

	// Default role for standard registered users
	RoleUser UserRole = "user"
)

// # Role Hierarchy

// AtLeast checks if the current role meets or exceeds the required target role.
func (r UserRole) AtLeast(target UserRole) bool {
	return r.level() >= target.level()
}

// level maps a role to a numeric hierarchy level for comparison logic.
func (r UserRole) level() int {

	// Linear scale (10-30) allows for future intermediate roles
	switch r {
	case RoleAdmin:
		return 30
	case RoleModerator:
		return 20
	case RoleUser:
		return 10
	default:
		return 0
	}
}

// # Capability Predicates
//
// Pure functions over the claims' current state. Nothing here is cached:
// every authorization decision recomputes from the fields at hand.

// IsAdmin reports whether the actor has admin capability. Staff and superuser
// accounts count as admin-equivalent so the external admin panel keeps
// working for operators whose role field says otherwise.
func (c *AuthClaims) IsAdmin() bool {
	return c != nil && (UserRole(c.Role) == RoleAdmin || c.Staff)
}

// IsModerator reports whether the actor's role is exactly moderator.
func (c *AuthClaims) IsModerator() bool {
	return c != nil && UserRole(c.Role) == RoleModerator
}

// EffectiveRole returns the role used for hierarchy comparisons, promoting
// staff/superuser accounts to admin.
func (c *AuthClaims) EffectiveRole() UserRole {
	if c == nil {
		return ""
	}
	if c.Staff {
		return RoleAdmin
	}
	return UserRole(c.Role)
}

// CanManageContent is the per-object decision for author-owned resources
// (reviews and comments): the author themselves, a moderator, or an admin
// may mutate. Catalog entities never pass through here; they are gated by
// admin-only route middleware since they have no author.
func (c *AuthClaims) CanManageContent(authorID string) bool {
	if c == nil {
		return false
	}
	return c.IsAdmin() || c.IsModerator() || c.UserID == authorID
}
