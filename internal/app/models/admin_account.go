package models

// AdminRole describes what an admin account may do. Roles are informational
// for now; every authenticated admin can edit the document.
type AdminRole string

const (
	RoleSuperAdmin      AdminRole = "super_admin"
	RoleDepartmentAdmin AdminRole = "department_admin"
	RoleEditor          AdminRole = "editor"
)

// AdminAccount is a pre-created dashboard account. There is no
// self-registration; accounts come from configuration.
type AdminAccount struct {
	Username     string
	PasswordHash string
	FullName     string
	Email        string
	Role         AdminRole
}
