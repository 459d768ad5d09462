package domain

import (
	"fmt"
	"strings"
)

// Role is a member's role within a tenant. The set is closed and totally
// ordered: OWNER > ADMIN > MEMBER > VIEWER.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Roles returns every valid role, highest first.
func Roles() []Role {
	return []Role{RoleOwner, RoleAdmin, RoleMember, RoleViewer}
}

// ParseRole converts a case-insensitive string into a Role.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

// Rank returns the position of the role in the hierarchy. Unknown roles rank 0
// and are therefore denied every permission except reading.
func (r Role) Rank() int {
	switch r {
	case RoleOwner:
		return 4
	case RoleAdmin:
		return 3
	case RoleMember:
		return 2
	case RoleViewer:
		return 1
	default:
		return 0
	}
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	return r.Rank() > 0
}

// AtLeast reports whether r ranks at or above required.
func (r Role) AtLeast(required Role) bool {
	return r.Valid() && r.Rank() >= required.Rank()
}

// CanRead is true for every role.
func (r Role) CanRead() bool {
	return true
}

// CanWrite allows creating, updating and deleting accounts and transactions.
func (r Role) CanWrite() bool {
	return r.AtLeast(RoleMember)
}

// IsAdminOrHigher allows member management.
func (r Role) IsAdminOrHigher() bool {
	return r.AtLeast(RoleAdmin)
}

// IsOwner allows tenant updates and role changes.
func (r Role) IsOwner() bool {
	return r == RoleOwner
}

func (r Role) String() string {
	return string(r)
}
