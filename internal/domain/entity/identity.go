package entity

// Identity is the verified caller attached to a request by the authentication gate.
type Identity struct {
	UserID string
	Role   Role
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }
