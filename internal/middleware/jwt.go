package myMiddleware

import (
	"context"
	"net/http"
	"strings"
)

type contextKey string

const (
	UserKey     contextKey = "user_id"
	UsernameKey contextKey = "username"
)

// TokenValidator decouples the middleware from the user package.
type TokenValidator interface {
	ValidateToken(tokenString string) (int, string, error)
}

type AuthMiddleware struct {
	validator  TokenValidator
	cookieName string
}

func NewAuthMiddleware(v TokenValidator, cookieName string) *AuthMiddleware {
	return &AuthMiddleware{validator: v, cookieName: cookieName}
}

func (am *AuthMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := am.token(r)
		if tokenString == "" {
			http.Error(w, "Missing authentication token", http.StatusUnauthorized)
			return
		}

		userID, username, err := am.validator.ValidateToken(tokenString)
		if err != nil {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), UserKey, userID)
		ctx = context.WithValue(ctx, UsernameKey, username)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// token looks in the Authorization header, then the cookie. Query-string tokens
// are not accepted because request URIs end up in access logs.
func (am *AuthMiddleware) token(r *http.Request) string {
	if authHeader := r.Header.Get("Authorization"); authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}

	if am.cookieName != "" {
		if c, err := r.Cookie(am.cookieName); err == nil && c.Value != "" {
			return c.Value
		}
	}

	return ""
}

// CallerID returns the authenticated user id, or 0 for an anonymous request.
func CallerID(ctx context.Context) int {
	id, _ := ctx.Value(UserKey).(int)
	return id
}
