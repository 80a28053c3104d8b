package models

// Role enumerates the account roles known to the portal backend.
type Role string

const (
	RoleAdmin     Role = "ADMIN"
	RoleTeacher   Role = "TEACHER"
	RoleCommittee Role = "COMMITTEE"
)

// Valid reports whether r is one of the roles the backend issues.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleCommittee:
		return true
	}
	return false
}

// User represents an account as returned by the backend.
// The client never mutates a User directly; it is replaced wholesale
// by login and /auth/me responses.
type User struct {
	ID       int64  `json:"id"`
	Name     string `json:"name,omitempty"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}
