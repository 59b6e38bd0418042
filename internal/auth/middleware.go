package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/dmartinez/todo-api/internal/api"
	"github.com/dmartinez/todo-api/internal/config"
)

// Define a custom type for context keys
type contextKey string

const (
	// UserIDContextKey is the key used to store the caller's user id in the context
	UserIDContextKey contextKey = "userID"
	// RolesContextKey is the key used to store the caller's roles in the context
	RolesContextKey contextKey = "roles"
)

type AuthMiddleware struct {
	config *config.AuthConfig
}

func NewAuthMiddleware(config *config.AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{
		config: config,
	}
}

// Authenticate verifies the bearer token and stores the caller identity in
// the request context. The user id always comes from the verified token,
// never from the request itself.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			api.WriteFailure(w, http.StatusUnauthorized, "Authorization token required")
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			api.WriteFailure(w, http.StatusUnauthorized, "Invalid authorization header")
			return
		}

		claims, err := validateToken(token, m.config.JWTSecret)
		if err != nil {
			api.WriteFailure(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDContextKey, claims.UserID())
		ctx = context.WithValue(ctx, RolesContextKey, claims.Roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext returns the authenticated caller's user id.
func GetUserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(UserIDContextKey).(string)
	if !ok || userID == "" {
		return "", errors.New("user not found in context")
	}
	return userID, nil
}

// GetRolesFromContext returns the authenticated caller's role names.
func GetRolesFromContext(ctx context.Context) []string {
	roles, _ := ctx.Value(RolesContextKey).([]string)
	return roles
}

func validateToken(tokenString string, secretKey string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secretKey), nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
