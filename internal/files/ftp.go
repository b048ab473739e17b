// Package files exposes the site FTP server to the admin area: a listing of
// the drop directory and retrieval of single files. Connections are dialed,
// used, and quit within each call; nothing is pooled.
package files

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/jlaffaye/ftp"

	"github.com/heliowatt/opsportal/internal/config"
)

// Entry is one file in the drop directory.
type Entry struct {
	Name     string    `json:"name"`
	Size     uint64    `json:"size"`
	Modified time.Time `json:"modified"`
}

// Browser lists and fetches files from the configured FTP server. Stateless;
// safe for concurrent use.
type Browser struct {
	cfg config.FTPConfig
}

// NewBrowser creates a browser for the configured file-transfer server.
func NewBrowser(cfg config.FTPConfig) *Browser {
	return &Browser{cfg: cfg}
}

// connect dials and logs in. The caller must Quit the returned connection.
func (b *Browser) connect(ctx context.Context) (*ftp.ServerConn, error) {
	conn, err := ftp.Dial(b.cfg.Addr,
		ftp.DialWithContext(ctx),
		ftp.DialWithTimeout(10*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("dial file server %s: %w", b.cfg.Addr, err)
	}
	if err := conn.Login(b.cfg.Username, b.cfg.Password); err != nil {
		_ = conn.Quit()
		return nil, fmt.Errorf("file server login: %w", err)
	}
	return conn, nil
}

// List returns the files in the drop directory as a finite, name-sorted
// slice. Directories and other non-file entries are omitted.
func (b *Browser) List(ctx context.Context) ([]Entry, error) {
	conn, err := b.connect(ctx)
	if err != nil {
		return nil, err
	}
	defer func() { _ = conn.Quit() }()

	raw, err := conn.List(b.cfg.RootDir)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", b.cfg.RootDir, err)
	}

	entries := make([]Entry, 0, len(raw))
	for _, e := range raw {
		if e.Type != ftp.EntryTypeFile {
			continue
		}
		entries = append(entries, Entry{Name: e.Name, Size: e.Size, Modified: e.Time})
	}
	sortEntries(entries)
	return entries, nil
}

// Fetch retrieves one named file from the drop directory and copies it to w.
// The name must be a bare filename; anything that could escape the directory
// is rejected before a connection is made.
func (b *Browser) Fetch(ctx context.Context, name string, w io.Writer) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	conn, err := b.connect(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = conn.Quit() }()

	resp, err := conn.Retr(strings.TrimSuffix(b.cfg.RootDir, "/") + "/" + name)
	if err != nil {
		return fmt.Errorf("retrieve %s: %w", name, err)
	}
	defer resp.Close()

	if _, err := io.Copy(w, resp); err != nil {
		return fmt.Errorf("stream %s: %w", name, err)
	}
	return nil
}

// ValidateName rejects names that are empty or could traverse out of the
// drop directory.
func ValidateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty file name")
	}
	if strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") {
		return fmt.Errorf("invalid file name %q", name)
	}
	return nil
}

func sortEntries(entries []Entry) {
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
}
