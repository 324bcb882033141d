package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mcoot/eggbreaker/internal/api/apierr"
	"github.com/mcoot/eggbreaker/internal/services/session"
)

// SessionCookie is the cookie name accepted as an alternative to a bearer token
const SessionCookie = "session"

type contextKey string

const (
	managerContextKey contextKey = "manager"
	tokenContextKey   contextKey = "token"
)

// Auth resolves the session token to its manager, rejecting unknown tokens
func Auth(sessions *session.Registry) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractToken(r)
			if token == "" {
				apierr.WriteError(w, apierr.NewUnauthorizedError())
				return
			}

			manager, err := sessions.Get(r.Context(), token)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			ctx := r.Context()
			ctx = context.WithValue(ctx, tokenContextKey, token)
			ctx = context.WithValue(ctx, managerContextKey, manager)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken extracts the session token from the request
func extractToken(r *http.Request) string {
	// Check Authorization header first
	authHeader := r.Header.Get("Authorization")
	if strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}

	// Fall back to cookie
	cookie, err := r.Cookie(SessionCookie)
	if err == nil {
		return cookie.Value
	}

	return ""
}

// GetManager returns the session manager from the request context
func GetManager(ctx context.Context) *session.Manager {
	manager, _ := ctx.Value(managerContextKey).(*session.Manager)
	return manager
}

// GetToken returns the session token from the request context
func GetToken(ctx context.Context) string {
	token, _ := ctx.Value(tokenContextKey).(string)
	return token
}

// MustGetManager returns the session manager or panics
func MustGetManager(ctx context.Context) *session.Manager {
	manager := GetManager(ctx)
	if manager == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return manager
}
