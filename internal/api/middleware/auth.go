package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/deepakUNO/Kindle-Server/internal/domain"
	"github.com/deepakUNO/Kindle-Server/internal/service"
)

type contextKey string

const (
	userKey contextKey = "user"
)

// AuthCookieName is the cookie consulted when no Authorization header is
// present.
const AuthCookieName = "authToken"

// Auth resolves the bearer token into an authenticated user and injects
// it into the request context. Requests without a valid, current session
// token get 401.
func Auth(authService *service.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := authService.ValidateToken(r.Context(), BearerToken(r))
			if err != nil {
				http.Error(w, "Unauthenticated", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), userKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// BearerToken extracts the raw token from the Authorization header,
// falling back to the auth cookie. Returns "" when neither is present.
func BearerToken(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(AuthCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// GetUser returns the authenticated user injected by Auth.
func GetUser(ctx context.Context) (*domain.User, bool) {
	user, ok := ctx.Value(userKey).(*domain.User)
	return user, ok
}
