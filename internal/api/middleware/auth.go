package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/helpbeacon/helpbeacon/internal/api"
	"github.com/helpbeacon/helpbeacon/internal/domain"
)

type contextKey string

const SessionKey contextKey = "session"

type SessionValidator interface {
	ValidateToken(ctx context.Context, token string) (*domain.Session, error)
}

// SessionAuth authenticates requests with a bearer session token and
// stores the resolved session in context.
func SessionAuth(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.Error(w, http.StatusUnauthorized, "missing authorization header")
				return
			}

			if !strings.HasPrefix(authHeader, "Bearer ") {
				api.Error(w, http.StatusUnauthorized, "invalid authorization format")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")

			session, err := validator.ValidateToken(r.Context(), token)
			if err != nil {
				api.Error(w, http.StatusUnauthorized, "invalid session token")
				return
			}

			ctx := context.WithValue(r.Context(), SessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionAuthOptional resolves a bearer session token when one is
// present and valid, and passes the request through either way. For
// endpoints that must not report errors to the caller; their handlers
// treat a missing session as a silent drop.
func SessionAuthOptional(validator SessionValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") {
				token := strings.TrimPrefix(authHeader, "Bearer ")
				if session, err := validator.ValidateToken(r.Context(), token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), SessionKey, session))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireManager rejects sessions without the manager role. Must run
// after SessionAuth.
func RequireManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := GetSession(r.Context())
		if session == nil {
			api.Error(w, http.StatusUnauthorized, "missing session")
			return
		}
		if !session.IsManager() {
			api.HandleError(w, domain.ErrManagerRequired)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetSession returns the authenticated session from context.
func GetSession(ctx context.Context) *domain.Session {
	session, _ := ctx.Value(SessionKey).(*domain.Session)
	return session
}
