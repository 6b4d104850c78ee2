package models

const (
	RoleSuperAdmin = "SUPER_ADMIN"
	RoleManager    = "MANAGER"
	RoleCashier    = "CASHIER"
)

type Staff struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Username          string   `json:"username"`
	PasswordHash      string   `json:"passwordHash"`
	Role              string   `json:"role"`
	AssignedBranchIDs []string `json:"assignedBranchIds"`
}

// CanAccessBranch is true for super admins and staff assigned to the branch.
func (s Staff) CanAccessBranch(branchID string) bool {
	if s.Role == RoleSuperAdmin {
		return true
	}
	for _, id := range s.AssignedBranchIDs {
		if id == branchID {
			return true
		}
	}
	return false
}
