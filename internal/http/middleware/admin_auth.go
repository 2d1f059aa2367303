package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/blckops/agency-site/internal/http/httpjson"
)

const bearerPrefix = "Bearer "

// BearerToken extracts the credential from an "Authorization: Bearer <token>"
// header. It returns "" when the header is absent or uses another scheme.
func BearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, bearerPrefix) {
		return ""
	}
	return auth[len(bearerPrefix):]
}

// TokenMatches reports whether the request carries exactly the shared admin
// token. An empty configured token never matches.
func TokenMatches(r *http.Request, token string) bool {
	got := BearerToken(r)
	if token == "" || got == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(got), []byte(token)) == 1
}

// AdminToken gates a route behind the single shared admin token.
func AdminToken(token string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !TokenMatches(r, token) {
				httpjson.Error(w, http.StatusUnauthorized, "Unauthorized")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
