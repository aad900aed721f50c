package templates

import "time"

// Branding is the sender-side information shared by every email.
type Branding struct {
	AppName     string
	CompanyName string
	LoginURL    string
	SupportURL  string
}

// NewWelcomeData builds the data for the welcome.* templates. It travels on
// the queue as a plain map so the worker does not share Go types with the API.
func NewWelcomeData(b Branding, name, email string, at time.Time) map[string]any {
	return map[string]any{
		"Name":        name,
		"Email":       email,
		"AppName":     b.AppName,
		"CompanyName": b.CompanyName,
		"LoginURL":    b.LoginURL,
		"SupportURL":  b.SupportURL,
		"JoinedAt":    at.UTC().Format(time.RFC3339),
	}
}
