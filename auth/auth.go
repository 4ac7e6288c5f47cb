package auth

import (
	"context"
	"net/http"
	"slices"
	"time"
)

// Authenticator verifies the credentials carried in request headers.
//
// Authenticate returns an error wrapping one of ErrMissingCredentials,
// ErrInvalidCredentials, ErrTokenExpired, ErrTokenMalformed or
// ErrInsufficientScope when the caller is rejected. Any other error means the
// credentials could not be checked at all. Implementations must be safe for
// concurrent use.
type Authenticator interface {
	Authenticate(ctx context.Context, header http.Header) (*Identity, error)
}

// Identity is an authenticated caller of the health endpoints.
type Identity struct {
	// Subject is the sub claim, typically the deploy pipeline or operator.
	Subject string

	Scopes    []string
	Claims    map[string]any
	ExpiresAt time.Time
	IssuedAt  time.Time
}

// HasScope reports whether the identity was granted scope.
func (id *Identity) HasScope(scope string) bool {
	return slices.Contains(id.Scopes, scope)
}

type identityKey struct{}

// WithIdentity attaches id to ctx.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFromContext returns the identity attached by RequireAuth, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityKey{}).(*Identity)
	return id
}
