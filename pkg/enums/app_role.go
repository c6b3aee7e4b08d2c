package enums

import "fmt"

// AppRole controls access to the back office.
type AppRole string

const (
	AppRoleUser             AppRole = "user"
	AppRoleAdmin            AppRole = "admin"
	AppRoleSuperAdmin       AppRole = "super_admin"
	AppRoleInventoryManager AppRole = "inventory_manager"
)

var validAppRoles = []AppRole{
	AppRoleUser,
	AppRoleAdmin,
	AppRoleSuperAdmin,
	AppRoleInventoryManager,
}

// String implements fmt.Stringer.
func (r AppRole) String() string {
	return string(r)
}

// IsValid reports whether the role is recognized.
func (r AppRole) IsValid() bool {
	for _, candidate := range validAppRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// IsStaff reports whether the role grants back-office access.
func (r AppRole) IsStaff() bool {
	return r == AppRoleAdmin || r == AppRoleSuperAdmin || r == AppRoleInventoryManager
}

// ParseAppRole converts a raw string into an AppRole.
func ParseAppRole(value string) (AppRole, error) {
	for _, candidate := range validAppRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid app role %q", value)
}
