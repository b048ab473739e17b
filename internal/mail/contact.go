package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	gomail "github.com/wneessen/go-mail"

	"github.com/heliowatt/opsportal/internal/config"
)

// ContactMessage is a visitor submission from the contact form.
type ContactMessage struct {
	Name    string
	ReplyTo string
	Subject string
	Body    string
}

// Validate checks the submission before any mail is composed.
func (m ContactMessage) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if strings.TrimSpace(m.ReplyTo) == "" || !strings.Contains(m.ReplyTo, "@") {
		return fmt.Errorf("a reply address is required")
	}
	if strings.TrimSpace(m.Body) == "" {
		return fmt.Errorf("message body is required")
	}
	return nil
}

// Contact delivers contact-form submissions to the operations mailbox over
// SMTP. Each send opens its own connection.
type Contact struct {
	cfg config.MailConfig
}

// NewContact creates a contact-form sender.
func NewContact(cfg config.MailConfig) *Contact {
	return &Contact{cfg: cfg}
}

// Send composes and delivers the submission, returning the reference ID
// echoed back to the visitor.
func (c *Contact) Send(ctx context.Context, msg ContactMessage) (string, error) {
	if c.cfg.SMTPHost == "" || c.cfg.ContactTo == "" {
		return "", fmt.Errorf("contact mail not configured")
	}
	if err := msg.Validate(); err != nil {
		return "", err
	}

	ref := uuid.NewString()[:8]

	m := gomail.NewMsg()
	if err := m.From(c.cfg.ContactFrom); err != nil {
		return "", fmt.Errorf("set sender: %w", err)
	}
	if err := m.To(c.cfg.ContactTo); err != nil {
		return "", fmt.Errorf("set recipient: %w", err)
	}
	if err := m.ReplyTo(msg.ReplyTo); err != nil {
		return "", fmt.Errorf("set reply-to: %w", err)
	}
	m.Subject(contactSubject(ref, msg.Subject))
	m.SetBodyString(gomail.TypeTextPlain, contactBody(msg))

	client, err := gomail.NewClient(c.cfg.SMTPHost,
		gomail.WithPort(c.cfg.SMTPPort),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	)
	if err != nil {
		return "", fmt.Errorf("smtp client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, m); err != nil {
		return "", fmt.Errorf("send contact mail: %w", err)
	}
	return ref, nil
}

func contactSubject(ref, subject string) string {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		subject = "Contact form submission"
	}
	return fmt.Sprintf("[portal #%s] %s", ref, subject)
}

func contactBody(msg ContactMessage) string {
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s <%s>\n\n", msg.Name, msg.ReplyTo)
	b.WriteString(msg.Body)
	b.WriteString("\n")
	return b.String()
}
