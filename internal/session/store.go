// Package session persists the signed session token inside a client-held
// cookie. Two independent integrity layers are in play: the inner token is
// an HMAC-signed JWT, and the outer cookie envelope is sealed separately by
// securecookie. Neither layer is treated as redundant.
package session

import (
	"crypto/sha256"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/securecookie"

	"github.com/heliowatt/opsportal/internal/auth"
)

// CookieName is the portal session cookie.
const CookieName = "opsportal.session"

// Store seals session tokens into cookies and opens them back up. It owns
// the lifetime of the client-held session: created on login, removed on
// logout. Stateless and safe for concurrent use.
type Store struct {
	codec *auth.TokenCodec
	sc    *securecookie.SecureCookie
}

// NewStore builds a session store from the configured secret. The cookie
// envelope key is derived from the same secret as the token key but with a
// distinct context string, so the two signatures never collapse into one.
func NewStore(secret string, codec *auth.TokenCodec) *Store {
	hashKey := sha256.Sum256([]byte("opsportal/cookie-envelope:" + secret))
	sc := securecookie.New(hashKey[:], nil)
	// Sessions have no expiry; validity ends at logout or secret rotation.
	sc.MaxAge(0)
	return &Store{codec: codec, sc: sc}
}

// Save mints a token for the principal and writes it into the session cookie.
func (s *Store) Save(w http.ResponseWriter, r *http.Request, p auth.Principal) error {
	token, err := s.codec.Encode(p)
	if err != nil {
		return err
	}
	sealed, err := s.sc.Encode(CookieName, token)
	if err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sealed,
		Path:     "/",
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// Load returns the principal carried by the request's session cookie, or nil
// when there is no session. A forged or corrupted cookie - at either
// integrity layer - degrades to "logged out" rather than an error; tamper
// attempts are logged so they stay observable.
func (s *Store) Load(r *http.Request) *auth.Principal {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}

	var token string
	if err := s.sc.Decode(CookieName, cookie.Value, &token); err != nil {
		log.Printf("session: rejecting cookie with bad envelope: %v", err)
		return nil
	}

	p, err := s.codec.Decode(token)
	if err != nil {
		log.Printf("session: rejecting cookie with bad token: %v", err)
		return nil
	}
	return &p
}

// Clear removes the session cookie. Calling it with no active session is
// not an error; logout is idempotent.
func (s *Store) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
