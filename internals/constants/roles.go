package constants

// User roles. A homeschool deployment has exactly two: the parent
// administrator and the students.
const (
	RoleAdmin   = "admin"
	RoleStudent = "student"
)

var ValidRoles = []string{RoleAdmin, RoleStudent}
