package mailer

import (
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/securetask/pkg/mailer/templates"
)

var ErrEmptyJob = errors.New("email job has neither template nor body")

// Compose resolves a job into the final subject, text and html parts.
func Compose(job EmailJob) (subject, text, html string, err error) {
	if strings.TrimSpace(job.To) == "" {
		return "", "", "", errors.New("email job has no recipient")
	}
	if job.Template == "" {
		if job.Subject == "" || (job.Text == "" && job.HTML == "") {
			return "", "", "", ErrEmptyJob
		}
		return job.Subject, job.Text, job.HTML, nil
	}

	data := job.Data
	if data == nil {
		data = map[string]any{}
	}
	if v, ok := data["Email"]; !ok || fmt.Sprintf("%v", v) == "" {
		data["Email"] = job.To
	}
	subject, text, html, err = templates.Render(strings.ToLower(job.Template), data)
	if err != nil {
		return "", "", "", err
	}
	if job.Subject != "" {
		subject = job.Subject
	}
	return subject, text, html, nil
}
