package mailer

import (
	"context"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const sendTimeout = 10 * time.Second

// Mailgun delivers composed messages through the Mailgun HTTP API. One
// client is built per process and shared by every send.
type Mailgun struct {
	sender string
	client *mg.MailgunImpl
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{sender: sender, client: mg.NewMailgun(domain, apiKey)}
}

// Send delivers one message. html is optional; tags label it in Mailgun
// analytics (the worker tags with the template name).
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string, tags ...string) (string, error) {
	msg := m.client.NewMessage(m.sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if err := msg.AddTag(tag); err != nil {
			return "", err
		}
	}
	c, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	_, id, err := m.client.Send(c, msg)
	return id, err
}
