package server

import (
	"context"
	"io"

	"github.com/heliowatt/opsportal/internal/directory"
	"github.com/heliowatt/opsportal/internal/files"
	"github.com/heliowatt/opsportal/internal/mail"
)

// Directory verifies a credential pair against the corporate directory.
type Directory interface {
	Authenticate(ctx context.Context, username, password string) (*directory.Entry, error)
}

// FileBrowser serves the admin file area from the site FTP server.
type FileBrowser interface {
	List(ctx context.Context) ([]files.Entry, error)
	Fetch(ctx context.Context, name string, w io.Writer) error
}

// InboxLister summarizes the operations mailbox for admin review.
type InboxLister interface {
	List(ctx context.Context) ([]mail.Summary, error)
}

// ContactSender delivers a contact-form submission and returns its
// reference ID.
type ContactSender interface {
	Send(ctx context.Context, msg mail.ContactMessage) (string, error)
}
