package server

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"golang.org/x/crypto/bcrypt"
)

// OperatorCredentials identify the single operator allowed to publish.
// PasswordHash is a bcrypt hash; the plain password never lives in config.
type OperatorCredentials struct {
	Username     string
	PasswordHash string
}

type contextKey struct{ name string }

var operatorContextKey = contextKey{"operator"}

// operatorFromContext returns the authenticated operator username. It is
// only meaningful under the basicAuth middleware.
func operatorFromContext(ctx context.Context) string {
	operator, _ := ctx.Value(operatorContextKey).(string)
	return operator
}

// basicAuth guards the admin subtree with HTTP basic auth. Failures answer
// 401 with a Basic challenge; the username comparison is constant-time and
// bcrypt handles the password comparison the same way.
func basicAuth(creds OperatorCredentials, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			username, password, ok := r.BasicAuth()
			if !ok || !validCredentials(creds, username, password) {
				log.WarnContext(r.Context(), "rejected admin request",
					"path", r.URL.Path, "username", username)
				w.Header().Set("WWW-Authenticate", `Basic realm="publish"`)
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), operatorContextKey, username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validCredentials(creds OperatorCredentials, username, password string) bool {
	usernameMatch := subtle.ConstantTimeCompare([]byte(creds.Username), []byte(username)) == 1
	passwordMatch := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)) == nil
	return usernameMatch && passwordMatch
}
