// Package middleware carries the request-level access guard for the portal.
package middleware

import (
	"net/http"

	"github.com/heliowatt/opsportal/internal/auth"
)

// SessionReader is the slice of the session store the guard needs.
type SessionReader interface {
	Load(r *http.Request) *auth.Principal
}

// WithPrincipal resolves the current session on every request and, when one
// exists, copies the principal into the request context. Requests without a
// session pass through untouched; an invalid cookie has already been
// downgraded to "no session" by the store.
func WithPrincipal(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if p := sessions.Load(r); p != nil {
				r = r.WithContext(auth.SetPrincipalContext(r.Context(), *p))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin gates privileged routes. A request with no session and a
// request with a non-admin session are denied identically: same status,
// same body, nothing for a probing client to distinguish.
//
// The old portal read the principal's fields before checking it existed,
// so an anonymous request to an admin route crashed instead of being
// denied. The typed principal plus the nil check here close that hole.
func RequireAdmin(sessions SessionReader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			p := sessions.Load(r)
			if p == nil || !p.Admin {
				http.Error(w, auth.ErrUnauthorized.Error(), http.StatusUnauthorized)
				return
			}
			r = r.WithContext(auth.SetPrincipalContext(r.Context(), *p))
			next.ServeHTTP(w, r)
		})
	}
}
