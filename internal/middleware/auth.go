// Package middleware provides HTTP middleware components.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/devlink/devlink/internal/auth"
	"github.com/devlink/devlink/internal/token"
)

// AuthHeader is the single designated header carrying the credential.
const AuthHeader = "X-Auth-Token"

// AuthConfig holds configuration for the auth middleware.
type AuthConfig struct {
	Logger *slog.Logger
	Codec  *token.Codec
}

// Auth returns the identity gate: it extracts the credential from the
// request header, verifies it, and binds the resolved identity to the
// request context. A missing header is rejected before the codec is
// ever called; the two failure modes are distinguished only in the
// logs — the response body is identical to prevent probing.
func Auth(cfg AuthConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tok := r.Header.Get(AuthHeader)
			if tok == "" {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "missing_credential"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			userID, err := cfg.Codec.Verify(tok)
			if err != nil {
				cfg.Logger.Warn("authentication failed",
					slog.String("reason", "invalid_credential"),
					slog.String("endpoint", r.Method+" "+r.URL.Path),
					slog.String("request_id", GetRequestID(r.Context())),
				)
				writeAuthError(w)
				return
			}

			ctx := auth.WithIdentity(r.Context(), auth.Identity{UserID: userID})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeAuthError writes a 401 Unauthorized response.
// Uses the same message for all auth failures to prevent enumeration.
func writeAuthError(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"Invalid or missing credential","code":"UNAUTHENTICATED"}`))
}
