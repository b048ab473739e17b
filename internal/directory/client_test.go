package directory

import (
	"context"
	"errors"
	"testing"

	"github.com/go-ldap/ldap/v3"

	"github.com/heliowatt/opsportal/internal/auth"
	"github.com/heliowatt/opsportal/internal/config"
)

var testCfg = config.DirectoryConfig{
	URL:        "ldap://dc1.corp.example.com:389",
	Domain:     "corp.example.com",
	SearchBase: "DC=corp,DC=example,DC=com",
}

// fakeConn scripts bind/search outcomes and records whether the connection
// was released.
type fakeConn struct {
	bindErr   error
	searchRes *ldap.SearchResult
	searchErr error

	boundUser string
	boundPass string
	closed    bool
}

func (f *fakeConn) Bind(username, password string) error {
	f.boundUser = username
	f.boundPass = password
	return f.bindErr
}

func (f *fakeConn) Search(req *ldap.SearchRequest) (*ldap.SearchResult, error) {
	if f.searchErr != nil {
		return nil, f.searchErr
	}
	return f.searchRes, nil
}

func (f *fakeConn) Close() error {
	f.closed = true
	return nil
}

func newTestClient(fc *fakeConn) *Client {
	return &Client{
		cfg:  testCfg,
		dial: func(url string) (conn, error) { return fc, nil },
	}
}

func aliceResult() *ldap.SearchResult {
	return &ldap.SearchResult{
		Entries: []*ldap.Entry{
			ldap.NewEntry("CN=Alice A.,OU=Staff,DC=corp,DC=example,DC=com", map[string][]string{
				"displayName": {"Alice A."},
				"memberOf": {
					"CN=Employees,OU=Groups,DC=corp,DC=example,DC=com",
					"CN=Web Admins,OU=Groups,DC=corp,DC=example,DC=com",
				},
			}),
		},
	}
}

// TestAuthenticate_Success tests the full bind + search flow
func TestAuthenticate_Success(t *testing.T) {
	fc := &fakeConn{searchRes: aliceResult()}
	client := newTestClient(fc)

	entry, err := client.Authenticate(context.Background(), "alice", "correct")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}

	if fc.boundUser != "alice@corp.example.com" {
		t.Errorf("bound as %q, want realm-suffixed principal", fc.boundUser)
	}
	if entry.DisplayName != "Alice A." {
		t.Errorf("DisplayName = %q, want %q", entry.DisplayName, "Alice A.")
	}
	if len(entry.Groups) != 2 || entry.Groups[0] != "Employees" || entry.Groups[1] != "Web Admins" {
		t.Errorf("Groups = %v, want leaf CNs of memberOf", entry.Groups)
	}
	if !fc.closed {
		t.Error("connection not released after successful authentication")
	}
}

// TestAuthenticate_BindRejected tests that a rejected bind surfaces as
// invalid credentials and still releases the connection
func TestAuthenticate_BindRejected(t *testing.T) {
	fc := &fakeConn{bindErr: ldap.NewError(ldap.LDAPResultInvalidCredentials, errors.New("80090308"))}
	client := newTestClient(fc)

	entry, err := client.Authenticate(context.Background(), "bob", "wrong")
	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got: %v", err)
	}
	if entry != nil {
		t.Error("expected nil entry on bind rejection")
	}
	if !fc.closed {
		t.Error("connection not released after bind rejection")
	}
}

// TestAuthenticate_BindTransportError tests that non-credential bind failures
// are infrastructure errors, not login failures
func TestAuthenticate_BindTransportError(t *testing.T) {
	fc := &fakeConn{bindErr: ldap.NewError(ldap.LDAPResultUnavailable, errors.New("server shutting down"))}
	client := newTestClient(fc)

	_, err := client.Authenticate(context.Background(), "alice", "correct")
	if !errors.Is(err, auth.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got: %v", err)
	}
	if !fc.closed {
		t.Error("connection not released after bind transport error")
	}
}

func TestAuthenticate_DialFailure(t *testing.T) {
	client := &Client{
		cfg:  testCfg,
		dial: func(url string) (conn, error) { return nil, errors.New("connection refused") },
	}

	_, err := client.Authenticate(context.Background(), "alice", "correct")
	if !errors.Is(err, auth.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got: %v", err)
	}
}

func TestAuthenticate_SearchFailure(t *testing.T) {
	fc := &fakeConn{searchErr: errors.New("size limit exceeded")}
	client := newTestClient(fc)

	_, err := client.Authenticate(context.Background(), "alice", "correct")
	if !errors.Is(err, auth.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable, got: %v", err)
	}
	if !fc.closed {
		t.Error("connection not released after search failure")
	}
}

func TestAuthenticate_NoEntry(t *testing.T) {
	fc := &fakeConn{searchRes: &ldap.SearchResult{}}
	client := newTestClient(fc)

	_, err := client.Authenticate(context.Background(), "ghost", "correct")
	if !errors.Is(err, auth.ErrDirectoryUnavailable) {
		t.Fatalf("expected ErrDirectoryUnavailable for missing entry, got: %v", err)
	}
}

// TestAuthenticate_FirstEntryOnly tests that only the first search result is used
func TestAuthenticate_FirstEntryOnly(t *testing.T) {
	res := aliceResult()
	res.Entries = append(res.Entries,
		ldap.NewEntry("CN=Alice Imposter,OU=Staff,DC=corp,DC=example,DC=com", map[string][]string{
			"displayName": {"Alice Imposter"},
		}))
	fc := &fakeConn{searchRes: res}
	client := newTestClient(fc)

	entry, err := client.Authenticate(context.Background(), "alice", "correct")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if entry.DisplayName != "Alice A." {
		t.Errorf("DisplayName = %q, want the first entry's", entry.DisplayName)
	}
}

// TestAuthenticate_MissingDisplayName tests the username fallback
func TestAuthenticate_MissingDisplayName(t *testing.T) {
	fc := &fakeConn{searchRes: &ldap.SearchResult{
		Entries: []*ldap.Entry{
			ldap.NewEntry("CN=svc,DC=corp,DC=example,DC=com", map[string][]string{}),
		},
	}}
	client := newTestClient(fc)

	entry, err := client.Authenticate(context.Background(), "svc-reports", "correct")
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if entry.DisplayName != "svc-reports" {
		t.Errorf("DisplayName = %q, want username fallback", entry.DisplayName)
	}
}

func TestGroupNames(t *testing.T) {
	got := groupNames([]string{
		"CN=Web Admins,OU=Groups,DC=corp,DC=example,DC=com",
		"cn=lowercase type,OU=Groups,DC=corp,DC=example,DC=com",
		"OU=Not A Group,DC=corp,DC=example,DC=com", // leaf is not a CN
		"not a dn at all",
	})

	want := []string{"Web Admins", "lowercase type"}
	if len(got) != len(want) {
		t.Fatalf("groupNames = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("groupNames[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
