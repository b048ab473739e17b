// Package directory authenticates portal users against the corporate LDAP
// directory and fetches the attributes role derivation needs.
package directory

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-ldap/ldap/v3"

	"github.com/heliowatt/opsportal/internal/auth"
	"github.com/heliowatt/opsportal/internal/config"
)

// Entry is the directory's view of an authenticated user. It exists only for
// the duration of the login request; the durable identity is derived from it
// by the login handler.
type Entry struct {
	// DisplayName is the user's display name attribute.
	DisplayName string

	// Groups lists the common names of the groups the user belongs to,
	// extracted from the leaf component of each memberOf DN.
	Groups []string
}

// conn is the subset of *ldap.Conn the client uses. Narrowed so tests can
// substitute a fake without a live directory.
type conn interface {
	Bind(username, password string) error
	Search(req *ldap.SearchRequest) (*ldap.SearchResult, error)
	Close() error
}

// Client performs credential binds and user lookups against one directory.
// It is stateless and safe for concurrent use; every call dials its own
// short-lived connection and releases it before returning.
type Client struct {
	cfg  config.DirectoryConfig
	dial func(url string) (conn, error)
}

// NewClient creates a directory client from the loaded configuration.
func NewClient(cfg config.DirectoryConfig) *Client {
	return &Client{
		cfg: cfg,
		dial: func(url string) (conn, error) {
			return ldap.DialURL(url)
		},
	}
}

// Authenticate verifies the credential pair and, on success, returns the
// user's display name and group memberships.
//
// A rejected bind yields auth.ErrInvalidCredentials - the only failure shown
// to the user as "login failed". Every other failure (dial, search, missing
// entry) yields auth.ErrDirectoryUnavailable. There are no retries: this is
// a user-interactive path and a single failure terminates the attempt.
func (c *Client) Authenticate(ctx context.Context, username, password string) (*Entry, error) {
	l, err := c.dial(c.cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %v", auth.ErrDirectoryUnavailable, c.cfg.URL, err)
	}
	// Release the connection on every exit path, including bind and search
	// failures. Leaking directory connections was a bug class in the old
	// portal.
	defer func() { _ = l.Close() }()

	// Bind as <username>@<domain>; the directory validates the password.
	bindUser := fmt.Sprintf("%s@%s", username, c.cfg.Domain)
	if err := l.Bind(bindUser, password); err != nil {
		if ldap.IsErrorWithCode(err, ldap.LDAPResultInvalidCredentials) {
			return nil, auth.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("%w: bind: %v", auth.ErrDirectoryUnavailable, err)
	}

	req := ldap.NewSearchRequest(
		c.cfg.SearchBase,
		ldap.ScopeWholeSubtree,
		ldap.NeverDerefAliases,
		0, 0, false,
		fmt.Sprintf("(sAMAccountName=%s)", ldap.EscapeFilter(username)),
		[]string{"displayName", "memberOf"},
		nil,
	)
	res, err := l.Search(req)
	if err != nil {
		return nil, fmt.Errorf("%w: search: %v", auth.ErrDirectoryUnavailable, err)
	}
	if len(res.Entries) == 0 {
		return nil, fmt.Errorf("%w: no directory entry for %q", auth.ErrDirectoryUnavailable, username)
	}

	// Exactly one result is expected; only the first is used.
	entry := res.Entries[0]
	displayName := entry.GetAttributeValue("displayName")
	if displayName == "" {
		displayName = username
	}

	return &Entry{
		DisplayName: displayName,
		Groups:      groupNames(entry.GetAttributeValues("memberOf")),
	}, nil
}

// groupNames extracts the leaf CN from each group DN. Values that do not
// parse as DNs or whose leaf is not a CN are skipped.
func groupNames(memberOf []string) []string {
	groups := make([]string, 0, len(memberOf))
	for _, dn := range memberOf {
		parsed, err := ldap.ParseDN(dn)
		if err != nil || len(parsed.RDNs) == 0 || len(parsed.RDNs[0].Attributes) == 0 {
			continue
		}
		leaf := parsed.RDNs[0].Attributes[0]
		if !strings.EqualFold(leaf.Type, "CN") {
			continue
		}
		groups = append(groups, leaf.Value)
	}
	return groups
}
