// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// roleKey is the context key for storing the authenticated role.
const roleKey ContextKey = "role"

// TokenValidator is an interface for validating JWT tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (RoleGetter, error)
}

// RoleGetter is an interface for extracting the bearer's role from token claims.
type RoleGetter interface {
	GetRole() string
}

// AdminMiddleware creates middleware that validates bearer tokens and
// requires the admin role. Missing or invalid tokens get 401; a valid token
// without the admin role gets 403.
func AdminMiddleware(jwtService TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Parse Bearer token
			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			tokenString := strings.TrimSpace(parts[1])
			if tokenString == "" {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			// Validate token
			claims, err := jwtService.ValidateToken(tokenString)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			role := claims.GetRole()
			if role != "admin" {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}

			// Add role to request context
			ctx := context.WithValue(r.Context(), roleKey, role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetRole extracts the authenticated role from the request context.
func GetRole(r *http.Request) (string, error) {
	role, ok := r.Context().Value(roleKey).(string)
	if !ok {
		return "", fmt.Errorf("role not found in request context")
	}
	return role, nil
}

// RoleKey returns the context key for the role (for testing purposes).
func RoleKey() ContextKey {
	return roleKey
}
