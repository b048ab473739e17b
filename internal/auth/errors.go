package auth

import "errors"

// Error taxonomy for the authentication core. Handlers translate these into
// HTTP responses at the boundary; nothing in the core retries on any of them.
var (
	// ErrInvalidCredentials is returned when the directory rejects a
	// username/password bind. This is the only failure surfaced to the
	// user as "login failed".
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDirectoryUnavailable is returned when the directory service cannot
	// be reached or the protocol exchange fails for a reason other than a
	// rejected bind.
	ErrDirectoryUnavailable = errors.New("directory unavailable")

	// ErrInvalidToken is returned when a session token fails signature
	// verification or its payload does not parse. Callers treat it as
	// "no session", never as a user-visible failure.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrUnauthorized is returned when a privileged operation is requested
	// without an admin principal.
	ErrUnauthorized = errors.New("unauthorized")
)
