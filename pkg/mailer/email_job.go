package mailer

// Template names understood by the email worker.
const (
	TemplateWelcome = "welcome"
)

// EmailJob is the message published to the email queue. The worker
// renders the named template with Data and sends through Mailgun.
type EmailJob struct {
	To       string         `json:"to"`
	Template string         `json:"template"`
	Data     map[string]any `json:"data,omitempty"`
}
