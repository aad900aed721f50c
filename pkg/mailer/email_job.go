package mailer

import "github.com/oksasatya/securetask/pkg/mailer/templates"

// EmailJob is the JSON payload put on the RabbitMQ queue. Either Template
// with Data, or Subject with Text and/or HTML is set.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
}

// WelcomeJob addresses the welcome template to a newly registered user.
func WelcomeJob(to string, data map[string]any) EmailJob {
	return EmailJob{To: to, Template: templates.Welcome, Data: data}
}
