package constants

import "fmt"

// Role names as stored on users.user_role
const (
	RoleAdmin      = "admin"
	RoleInstructor = "instructor"
	RoleStudent    = "student"
)

// Role error message templates
const (
	ErrOnlyInstructorsCanAccess = "❌ Only instructors or admins may access %s."
	ErrOnlyAdminsCanAccess      = "❌ Only admins may access %s."
)

func RoleErrorInstructor(feature string) string {
	return fmt.Sprintf(ErrOnlyInstructorsCanAccess, feature)
}

func RoleErrorAdmin(feature string) string {
	return fmt.Sprintf(ErrOnlyAdminsCanAccess, feature)
}

// ==========================
// ✅ Grouped Role Slices
// ==========================
var (
	AdminOnly          = []string{RoleAdmin}
	AdminAndInstructor = []string{RoleAdmin, RoleInstructor}
	AllRoles           = []string{RoleAdmin, RoleInstructor, RoleStudent}
)

// Permission names, one CRUD set per managed resource.
var Permissions = []string{
	"create.users", "read.users", "update.users", "delete.users",
	"create.formations", "read.formations", "update.formations", "delete.formations",
	"create.modules", "read.modules", "update.modules", "delete.modules",
	"create.lessons", "read.lessons", "update.lessons", "delete.lessons",
}
