package mailer

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

// Mailgun wraps Mailgun client configuration.
type Mailgun struct {
	Domain string
	APIKey string
	Sender string
}

func NewMailgun(domain, apiKey, sender string) *Mailgun {
	return &Mailgun{Domain: domain, APIKey: apiKey, Sender: sender}
}

// Send sends an email via Mailgun. html is optional; if provided it will be used as HTML body.
func (m *Mailgun) Send(ctx context.Context, to, subject, text, html string) error {
	client := mg.NewMailgun(m.Domain, m.APIKey)
	msg := client.NewMessage(m.Sender, subject, text, to)
	if html != "" {
		msg.SetHtml(html)
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	_, _, err := client.Send(c, msg)
	return err
}

var welcomeTmpl = template.Must(template.New("welcome").Parse(`<html>
<body style="font-family: Arial, sans-serif; color: #222;">
  <h2>Welcome, {{.Username}}!</h2>
  <p>Your channel is ready. Upload your first video and start building your audience.</p>
  <p style="color: #888; font-size: 12px;">You are receiving this because you created an account.</p>
</body>
</html>`))

// RenderJob produces subject, plain-text and HTML bodies for a queued job.
func RenderJob(job EmailJob) (subject, text, html string, err error) {
	switch job.Template {
	case TemplateWelcome:
		var buf bytes.Buffer
		if err := welcomeTmpl.Execute(&buf, job.Data); err != nil {
			return "", "", "", err
		}
		username, _ := job.Data["Username"].(string)
		return "Welcome to your new channel",
			fmt.Sprintf("Welcome, %s! Your channel is ready.", username),
			buf.String(), nil
	default:
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
}
