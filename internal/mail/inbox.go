// Package mail covers the two mail duties of the portal: reviewing the
// operations mailbox from the admin area (POP3) and delivering contact-form
// submissions (SMTP).
package mail

import (
	"context"
	"fmt"

	"github.com/knadh/go-pop3"

	"github.com/heliowatt/opsportal/internal/config"
)

// Summary is one mailbox message as shown in the admin review list. Bodies
// are not fetched; review works off headers alone.
type Summary struct {
	ID      int    `json:"id"`
	Size    int    `json:"size"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Date    string `json:"date"`
}

// Inbox lists the operations mailbox. Each call opens its own POP3
// connection and quits it before returning.
type Inbox struct {
	cfg config.MailConfig
}

// NewInbox creates an inbox reader for the configured mailbox.
func NewInbox(cfg config.MailConfig) *Inbox {
	return &Inbox{cfg: cfg}
}

// List returns header summaries for every message currently in the mailbox,
// in mailbox order, as a finite materialized slice.
//
// The POP3 client has no context support, so cancellation is only honored
// between messages; an in-flight read runs to completion.
func (i *Inbox) List(ctx context.Context) ([]Summary, error) {
	if i.cfg.POP3Host == "" {
		return nil, fmt.Errorf("mailbox review not configured")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	client := pop3.New(pop3.Opt{Host: i.cfg.POP3Host, Port: i.cfg.POP3Port})
	conn, err := client.NewConn()
	if err != nil {
		return nil, fmt.Errorf("dial mailbox %s:%d: %w", i.cfg.POP3Host, i.cfg.POP3Port, err)
	}
	defer func() { _ = conn.Quit() }()

	if err := conn.Auth(i.cfg.POP3Username, i.cfg.POP3Password); err != nil {
		return nil, fmt.Errorf("mailbox auth: %w", err)
	}

	ids, err := conn.List(0)
	if err != nil {
		return nil, fmt.Errorf("list mailbox: %w", err)
	}

	summaries := make([]Summary, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		// Headers only; bodies stay on the server.
		msg, err := conn.Top(id.ID, 0)
		if err != nil {
			return nil, fmt.Errorf("read headers of message %d: %w", id.ID, err)
		}
		summaries = append(summaries, Summary{
			ID:      id.ID,
			Size:    id.Size,
			From:    msg.Header.Get("From"),
			Subject: msg.Header.Get("Subject"),
			Date:    msg.Header.Get("Date"),
		})
	}
	return summaries, nil
}
