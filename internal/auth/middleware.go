package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/speaking-practice/backend/internal/models"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	sessionIDKey
)

// WithIdentity stores the authenticated user and session on ctx.
func WithIdentity(ctx context.Context, userID int64, sessionID string) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, sessionIDKey, sessionID)
}

func UserID(ctx context.Context) (int64, bool) {
	uid, ok := ctx.Value(userIDKey).(int64)
	return uid, ok
}

// SessionID is the session claim of the token, empty when absent.
func SessionID(ctx context.Context) string {
	sid, _ := ctx.Value(sessionIDKey).(string)
	return sid
}

// Middleware rejects requests without a valid Bearer token.
func Middleware(tokens *Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || raw == "" {
				writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Missing or invalid authorization header"})
				return
			}

			claims, err := tokens.Parse(raw)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid or expired token"})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), claims.UserID, claims.SessionID)))
		})
	}
}
