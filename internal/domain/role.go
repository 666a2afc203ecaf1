package domain

import (
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a role claim does not name a known role.
var ErrUnknownRole = errors.New("unknown role")

// Role enumerates the closed set of caller roles.
type Role uint8

const (
	RoleUser Role = iota + 1
	RoleAdmin
)

// Wire names used in token claims.
const (
	roleUserName  = "User"
	roleAdminName = "Admin"
)

// RoleFromAdminFlag maps the stored IsAdmin flag to a Role.
func RoleFromAdminFlag(isAdmin bool) Role {
	if isAdmin {
		return RoleAdmin
	}
	return RoleUser
}

// ParseRole maps a claim value back to a Role. Matching is exact.
func ParseRole(name string) (Role, error) {
	switch name {
	case roleUserName:
		return RoleUser, nil
	case roleAdminName:
		return RoleAdmin, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, name)
	}
}

// String returns the claim name of the role.
func (r Role) String() string {
	switch r {
	case RoleUser:
		return roleUserName
	case RoleAdmin:
		return roleAdminName
	default:
		return fmt.Sprintf("Role(%d)", uint8(r))
	}
}

// IsAdmin reports whether r grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
