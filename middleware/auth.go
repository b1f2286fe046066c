package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"hrms/auth"
)

type contextKey string

const claimsContextKey contextKey = "claims"

// RequireAuth rejects requests without a valid bearer token before they
// reach handler logic. The verified claims become the trust context for
// the rest of the request; handlers read the organisation id from there
// and nowhere else.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok || token == "" {
				unauthorized(w, "No token provided")
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetClaims returns the trust context set by RequireAuth, or nil on
// routes that never passed through it.
func GetClaims(ctx context.Context) *auth.Claims {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// WithClaims injects a trust context directly; tests use it to exercise
// protected handlers without minting tokens.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message})
}
