package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenCodec signs and verifies session tokens with a process-wide symmetric
// secret. Construct it once at startup and pass it by value into the session
// layer; the secret is never read from ambient state.
//
// Tokens are HS256 JWTs carrying the principal's name and admin flag. The
// signature covers the full serialized payload, so any bit-level mutation is
// detected on decode. The payload is not confidential - the holder can read
// it - it is only protected from forgery and tampering.
type TokenCodec struct {
	secret []byte
}

// NewTokenCodec creates a codec from the configured session secret.
func NewTokenCodec(secret string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret)}
}

// sessionClaims is the JWT claim set for a portal session. No expiry claim
// is set: sessions stay valid until explicit logout or secret rotation.
type sessionClaims struct {
	Name  string `json:"name"`
	Admin bool   `json:"admin"`
	jwt.RegisteredClaims
}

// Encode serializes the principal into a signed, URL-safe token. It never
// fails for a well-formed principal and valid secret.
func (c *TokenCodec) Encode(p Principal) (string, error) {
	claims := sessionClaims{
		Name:  p.Name,
		Admin: p.Admin,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}
	return signed, nil
}

// Decode verifies the token signature and returns the embedded principal.
// Any verification or parse failure yields ErrInvalidToken; callers must
// treat that as "no session", not as a fatal error.
func (c *TokenCodec) Decode(token string) (Principal, error) {
	var claims sessionClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return c.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid {
		return Principal{}, ErrInvalidToken
	}
	return Principal{Name: claims.Name, Admin: claims.Admin}, nil
}
