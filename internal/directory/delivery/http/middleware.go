package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/mams-platform/mams/pkg/auth"
	"github.com/mams-platform/mams/pkg/logger"
)

type contextKey string

const (
	UserIDKey   contextKey = "user_id"
	UsernameKey contextKey = "username"
	RoleKey     contextKey = "role"
	BaseIDKey   contextKey = "base_id"
)

// AuthMiddleware validates the Bearer token and puts the caller's identity
// into the request context
func AuthMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			respondError(w, http.StatusUnauthorized, "Authorization header required")
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			respondError(w, http.StatusUnauthorized, "Invalid authorization header format")
			return
		}

		claims, err := auth.ValidateToken(parts[1])
		if err != nil {
			logger.Logger.Warn().Err(err).Msg("Invalid token")
			respondError(w, http.StatusUnauthorized, "Invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
		ctx = context.WithValue(ctx, UsernameKey, claims.Username)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)
		ctx = context.WithValue(ctx, BaseIDKey, claims.BaseID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}

// RequireRoles wraps AuthMiddleware and additionally checks that the caller
// holds one of the given roles
func RequireRoles(next http.HandlerFunc, roles ...string) http.HandlerFunc {
	return AuthMiddleware(func(w http.ResponseWriter, r *http.Request) {
		role, ok := r.Context().Value(RoleKey).(string)
		if !ok {
			respondError(w, http.StatusForbidden, "Insufficient permissions")
			return
		}
		for _, allowed := range roles {
			if role == allowed {
				next.ServeHTTP(w, r)
				return
			}
		}
		respondError(w, http.StatusForbidden, "Insufficient permissions")
	})
}

// CallerFromContext extracts the authenticated caller's identity from the
// request context. ok is false when the request did not pass AuthMiddleware.
func CallerFromContext(ctx context.Context) (userID uint, role string, baseID *uint, ok bool) {
	userID, ok = ctx.Value(UserIDKey).(uint)
	if !ok {
		return 0, "", nil, false
	}
	role, ok = ctx.Value(RoleKey).(string)
	if !ok {
		return 0, "", nil, false
	}
	baseID, _ = ctx.Value(BaseIDKey).(*uint)
	return userID, role, baseID, true
}

// Helper function for error responses
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
