package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
)

// JWTValidator defines the interface for validating session tokens.
type JWTValidator interface {
	ValidateToken(tokenString string) (*JWTClaims, error)
}

// JWTClaims represents the claims we expect from the JWT validator.
type JWTClaims struct {
	UserID    string
	SessionID string
	Persona   string
}

// RequireAuth rejects requests without a valid bearer token and stashes the
// authenticated user and session ids in the request context.
func RequireAuth(validator JWTValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const bearerPrefix = "Bearer "
			token, ok := strings.CutPrefix(authHeader, bearerPrefix)
			if !ok {
				unauthorized(w, r, logger, "missing token")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				unauthorized(w, r, logger, "invalid token")
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, ContextKeyUserID, claims.UserID)
			ctx = context.WithValue(ctx, ContextKeySessionID, claims.SessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, logger *slog.Logger, reason string) {
	ctx := r.Context()
	logger.WarnContext(ctx, "unauthorized access",
		"reason", reason,
		"request_id", GetRequestID(ctx),
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"unauthorized","error_description":"Invalid or expired token"}`))
}
