package domain

// Role values carried in the bearer token. The set is closed; there are no
// per-tenant custom roles.
const (
	RoleAdmin    = "admin"
	RoleHR       = "hr"
	RoleEmployee = "employee"
)

// CanManageLeave reports whether a role may approve or reject leave requests
// and act on behalf of other employees.
func CanManageLeave(role string) bool {
	return role == RoleAdmin || role == RoleHR
}

// CanViewEmployee reports whether the actor may read HR data belonging to
// employeeID. Employees see only themselves.
func CanViewEmployee(actorID, role, employeeID string) bool {
	if CanManageLeave(role) {
		return true
	}
	return actorID == employeeID
}

func IsValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleHR, RoleEmployee:
		return true
	default:
		return false
	}
}
