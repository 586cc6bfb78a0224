package notification

import (
	"strings"

	"github.com/advisor-site/lead-intake/internal/models"
)

// Message is one outbound plain-text email.
type Message struct {
	From    string
	To      string
	Subject string
	ReplyTo string
	Text    string
}

// FormatBody renders one "Label: value" line per entry, in order.
func FormatBody(lines []models.LabeledValue) string {
	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.Label)
		b.WriteString(": ")
		b.WriteString(line.Value)
	}
	return b.String()
}

// ApplicationMessage builds the notification for an application. From and To
// are filled in by the Dispatcher.
func ApplicationMessage(app *models.ApplicationSubmission) Message {
	return Message{
		Subject: "New IUL Application: " + app.FullName,
		ReplyTo: app.Email,
		Text:    FormatBody(app.Lines()),
	}
}

// ContactMessage builds the notification for a contact inquiry.
func ContactMessage(contact *models.ContactSubmission) Message {
	return Message{
		Subject: "Contact Inquiry: " + contact.Name,
		ReplyTo: contact.Email,
		Text:    FormatBody(contact.Lines()),
	}
}
