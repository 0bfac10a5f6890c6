package model

// Role is the closed set of user roles. Authorization decisions compare
// against these constants at the API boundary, never ad-hoc strings.
type Role string

const (
	RoleEmployee  Role = "employee"
	RoleExecutive Role = "executive"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleEmployee, RoleExecutive:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }
