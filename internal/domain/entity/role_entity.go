package entity

// Role is a coarse-grained capability tier checked by exact match.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultRole is assigned when registration does not name one.
const DefaultRole = RoleUser

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// ParseRole maps an optional client value to a Role; empty yields DefaultRole.
func ParseRole(s string) (Role, bool) {
	if s == "" {
		return DefaultRole, true
	}
	r := Role(s)
	return r, r.Valid()
}
