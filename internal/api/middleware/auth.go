package middleware

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/zatekoja/clinicrecords/internal/infrastructure/observability"
	"github.com/zatekoja/clinicrecords/pkg/config"
)

// publicPaths are served without credentials
var publicPaths = map[string]bool{
	"/health": true,
}

// BasicAuth rejects requests that do not carry the configured credentials.
// It is a pass-through when no username is configured.
func BasicAuth(cfg config.AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if cfg.Username == "" {
			return next
		}
		hash := []byte(cfg.PasswordHash)
		username := []byte(cfg.Username)

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if publicPaths[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			user, password, ok := r.BasicAuth()
			if !ok ||
				subtle.ConstantTimeCompare([]byte(user), username) != 1 ||
				bcrypt.CompareHashAndPassword(hash, []byte(password)) != nil {
				observability.LoggerFromContext(r.Context()).Warn().
					Str("path", r.URL.Path).
					Bool("credentials_present", ok).
					Msg("auth.rejected")

				w.Header().Set("WWW-Authenticate", `Basic realm="clinic-records", charset="UTF-8"`)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
