package enums

import "fmt"

// MemberRole represents an application-level permissions role.
type MemberRole string

const (
	MemberRoleAdmin     MemberRole = "admin"
	MemberRoleChef      MemberRole = "chef"
	MemberRolePurchaser MemberRole = "purchaser"
)

var validMemberRoles = []MemberRole{
	MemberRoleAdmin,
	MemberRoleChef,
	MemberRolePurchaser,
}

// String implements fmt.Stringer.
func (m MemberRole) String() string {
	return string(m)
}

// IsValid reports whether the value is a known MemberRole.
func (m MemberRole) IsValid() bool {
	for _, candidate := range validMemberRoles {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseMemberRole converts raw input into a MemberRole.
func ParseMemberRole(value string) (MemberRole, error) {
	for _, candidate := range validMemberRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid member role %q", value)
}
