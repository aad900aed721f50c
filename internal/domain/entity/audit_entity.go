package entity

import "time"

const (
	AuditRegister     = "register"
	AuditLoginSuccess = "login_success"
	AuditLoginFailure = "login_failure"
)

// AuditLog records an authentication event. It never carries secrets.
type AuditLog struct {
	UserID    string
	Email     string
	Action    string
	IP        string
	UserAgent string
	Metadata  map[string]any
	CreatedAt time.Time
}
