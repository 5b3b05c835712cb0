package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/kirish34/teketeke/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "admin_claims"

// AuthMiddleware guards administrative routes with a bearer token issued by
// the token manager. The settlement callback is deliberately left outside
// this middleware; the payment network authenticates at the gateway.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: "missing bearer token"})
				return
			}
			claims, err := tokens.ValidateToken(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorResponse{Error: err.Error()})
				return
			}
			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the validated admin claims, if any.
func ClaimsFromContext(ctx context.Context) (*security.AdminClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*security.AdminClaims)
	return claims, ok
}
