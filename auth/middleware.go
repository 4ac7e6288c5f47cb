package auth

import (
	"errors"
	"net/http"
)

// RequireAuth is HTTP middleware that only lets authenticated callers through
// to next. Accepted requests carry the identity in their context.
func RequireAuth(authn Authenticator, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := authn.Authenticate(r.Context(), r.Header)
		switch {
		case err == nil:
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), id)))
		case errors.Is(err, ErrInsufficientScope):
			http.Error(w, err.Error(), http.StatusForbidden)
		case rejected(err):
			w.Header().Set("WWW-Authenticate", `Bearer realm="launchgate"`)
			http.Error(w, "unauthorized", http.StatusUnauthorized)
		default:
			http.Error(w, "authentication unavailable", http.StatusInternalServerError)
		}
	})
}
