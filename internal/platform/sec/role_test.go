// Copyright (c) 2026 Yonota. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/yonota/internal/platform/sec"
)

func TestUserRole_AtLeast(t *testing.T) {
	tests := []struct {
		name   string
		role   sec.UserRole
		target sec.UserRole
		want   bool
	}{
		{"admin_at_least_moderator", sec.RoleAdmin, sec.RoleModerator, true},
		{"admin_at_least_admin", sec.RoleAdmin, sec.RoleAdmin, true},
		{"moderator_not_admin", sec.RoleModerator, sec.RoleAdmin, false},
		{"moderator_at_least_user", sec.RoleModerator, sec.RoleUser, true},
		{"user_not_moderator", sec.RoleUser, sec.RoleModerator, false},
		{"unknown_role_below_user", sec.UserRole("ghost"), sec.RoleUser, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.role.AtLeast(tt.target))
		})
	}
}

func TestAuthClaims_IsAdmin(t *testing.T) {
	tests := []struct {
		name   string
		claims *sec.AuthClaims
		want   bool
	}{
		{"role_admin", &sec.AuthClaims{Role: "admin"}, true},
		{"staff_with_user_role", &sec.AuthClaims{Role: "user", Staff: true}, true},
		{"moderator", &sec.AuthClaims{Role: "moderator"}, false},
		{"plain_user", &sec.AuthClaims{Role: "user"}, false},
		{"anonymous", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.IsAdmin())
		})
	}
}

func TestAuthClaims_EffectiveRole(t *testing.T) {
	staff := &sec.AuthClaims{Role: "user", Staff: true}
	assert.Equal(t, sec.RoleAdmin, staff.EffectiveRole())

	moderator := &sec.AuthClaims{Role: "moderator"}
	assert.Equal(t, sec.RoleModerator, moderator.EffectiveRole())
}

func TestAuthClaims_CanManageContent(t *testing.T) {
	const authorID = "0191d7a2-1111-7abc-8000-000000000001"

	tests := []struct {
		name   string
		claims *sec.AuthClaims
		want   bool
	}{
		{"author_edits_own", &sec.AuthClaims{UserID: authorID, Role: "user"}, true},
		{"other_user_denied", &sec.AuthClaims{UserID: "someone-else", Role: "user"}, false},
		{"moderator_allowed", &sec.AuthClaims{UserID: "someone-else", Role: "moderator"}, true},
		{"admin_allowed", &sec.AuthClaims{UserID: "someone-else", Role: "admin"}, true},
		{"staff_allowed", &sec.AuthClaims{UserID: "someone-else", Role: "user", Staff: true}, true},
		{"anonymous_denied", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.claims.CanManageContent(authorID))
		})
	}
}
