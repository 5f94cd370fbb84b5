package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	h "communityhub/internal/delivery/http/helpers"
	"communityhub/internal/domain"
)

type contextKey string

const (
	userKey  contextKey = "user"
	tokenKey contextKey = "token"
)

// SetUser returns a context carrying the authenticated operator.
func SetUser(ctx context.Context, user *domain.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}

// UserFromContext returns the authenticated operator, if present.
func UserFromContext(ctx context.Context) (*domain.User, bool) {
	u, ok := ctx.Value(userKey).(*domain.User)
	return u, ok && u != nil
}

// TokenFromContext returns the bearer token RequireAuth accepted for this request.
func TokenFromContext(ctx context.Context) (string, bool) {
	t, ok := ctx.Value(tokenKey).(string)
	return t, ok && t != ""
}

// RequireAuth returns a wrapper that validates the Bearer token, checks the allow-list
// and puts the operator and the token in the request context. Missing or invalid tokens get 401,
// users outside the allow-list get 403; next is not called in either case.
func RequireAuth(authService domain.AuthService, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing authorization header")
				return
			}
			const prefix = "Bearer "
			if !strings.HasPrefix(header, prefix) {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid authorization format")
				return
			}
			token := strings.TrimSpace(header[len(prefix):])
			if token == "" {
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "missing token")
				return
			}
			user, err := authService.Authenticate(token)
			if err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					logger.WarnContext(r.Context(), "rejected user outside allow-list", "path", r.URL.Path, "err", err)
					h.WriteJSONError(w, http.StatusForbidden, h.ErrCodeForbidden, "email is not allowed")
					return
				}
				h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, "invalid or expired token")
				return
			}
			ctx := context.WithValue(SetUser(r.Context(), user), tokenKey, token)
			next(w, r.WithContext(ctx))
		}
	}
}
