package daemon

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// TokenAuthMiddleware requires the daemon bearer token on every /v1/ route.
// Health and metrics stay open so callers can probe before reading the token.
func TokenAuthMiddleware(token string, next http.Handler) http.Handler {
	expected := []byte(strings.TrimSpace(token))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.URL.Path, "/v1/") {
			next.ServeHTTP(w, r)
			return
		}

		auth := r.Header.Get("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		presented := []byte(strings.TrimSpace(auth[len(prefix):]))
		if len(expected) == 0 || subtle.ConstantTimeCompare(presented, expected) != 1 {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}

		next.ServeHTTP(w, r)
	})
}
