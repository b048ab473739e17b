package auth

import "context"

// Principal is the durable, minimal identity carried across requests.
//
// This struct is IMMUTABLE after construction. Admin is derived from
// directory group membership exactly once, at login time; a role change in
// the directory only takes effect on the next login. The Principal is
// copied into each request context, never shared.
type Principal struct {
	// Name is the display name fetched from the directory at login.
	Name string `json:"name"`

	// Admin is true when the directory placed the user in the
	// administrators group at login time.
	Admin bool `json:"admin"`
}

type principalContextKey struct{}

// SetPrincipalContext stores the authenticated principal on the context for
// downstream consumers.
func SetPrincipalContext(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext retrieves the authenticated principal from the context.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(principalContextKey{}).(Principal)
	return p, ok
}
