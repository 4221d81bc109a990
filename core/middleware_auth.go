package core

import (
	"context"
	"net/http"

	"github.com/caasmo/tablebook/crypto"
)

// contextKey is a type for context keys.
type contextKey string

const claimsKey contextKey = "session_claims"

// AuthClaims returns the session claims the access guard attached to the
// request, or nil when the route did not run the guard.
func AuthClaims(r *http.Request) *crypto.SessionClaims {
	claims, _ := r.Context().Value(claimsKey).(*crypto.SessionClaims)
	return claims
}

// RequireAuth validates the session credential and attaches the decoded
// identity to the request context for downstream handlers.
func (a *App) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, resp, err := a.Auth().Authenticate(r)
		if err != nil {
			WriteJsonError(w, resp)
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRoles is the declarative authorization policy: it runs the access
// guard and then rejects identities whose role is not in the allow-list.
// The route table pairs each protected route with its roles.
func (a *App) RequireRoles(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return a.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := AuthClaims(r)
			if _, ok := allowed[claims.Role]; !ok {
				WriteJsonError(w, errorRoleNotAllowed)
				return
			}
			next.ServeHTTP(w, r)
		}))
	}
}
