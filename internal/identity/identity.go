// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package identity resolves bearer credentials to an authenticated user
// identity and role. The rest of the application treats this resolution
// as opaque input: services receive a user id and never inspect
// credentials themselves.
package identity

import (
	"github.com/google/uuid"
)

// Role is the closed set of permission levels. Authorization is a
// capability check against this enumeration at the route boundary, not a
// string comparison scattered through business logic.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// ParseRole maps a stored role string onto the enumeration.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin:
		return Role(s), true
	}
	return "", false
}

// Allows reports whether a caller holding r may act as required.
// Admins hold every capability.
func (r Role) Allows(required Role) bool {
	if r == RoleAdmin {
		return true
	}
	return r == required
}

// Identity is the resolved output of the identity context: who is
// calling and what they may do.
type Identity struct {
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Role   Role      `json:"role"`
}

// IsAdmin reports whether the identity holds the admin role.
func (i *Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}
