package constants

// Role user pada aplikasi House of Hope
const (
	RoleAdmin = "ADMIN"
	RoleStaff = "STAFF"
)

var AllowedRoles = []string{RoleAdmin, RoleStaff}

func IsValidRole(role string) bool {
	for _, r := range AllowedRoles {
		if r == role {
			return true
		}
	}
	return false
}
