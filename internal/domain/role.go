package domain

import "strings"

type Role string

const (
	RoleAdmin    Role = "Admin"
	RoleManager  Role = "Manager"
	RoleProvider Role = "Provider"
	RoleGuest    Role = "Guest"
)

// Roles lists every role from most to least privileged.
var Roles = []Role{RoleAdmin, RoleManager, RoleProvider, RoleGuest}

func (r Role) Valid() bool {
	for _, role := range Roles {
		if r == role {
			return true
		}
	}

	return false
}

// ParseRole is case-insensitive and reports false for unknown names.
func ParseRole(s string) (Role, bool) {
	for _, role := range Roles {
		if strings.EqualFold(string(role), s) {
			return role, true
		}
	}

	return "", false
}
