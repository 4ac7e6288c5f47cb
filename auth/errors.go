package auth

import "errors"

// Rejections. RequireAuth answers 403 for ErrInsufficientScope and 401 for
// the rest.
var (
	ErrMissingCredentials = errors.New("auth: missing credentials")
	ErrInvalidCredentials = errors.New("auth: invalid credentials")
	ErrTokenExpired       = errors.New("auth: token expired")
	ErrTokenMalformed     = errors.New("auth: token malformed")
	ErrInsufficientScope  = errors.New("auth: insufficient scope")
)

// ErrKeyNotFound indicates the key provider has no key to verify with.
var ErrKeyNotFound = errors.New("auth: signing key not found")

// rejected reports whether err rejects the caller, as opposed to a failure
// to check the credentials.
func rejected(err error) bool {
	for _, target := range []error{ErrMissingCredentials, ErrInvalidCredentials, ErrTokenExpired, ErrTokenMalformed, ErrInsufficientScope} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
