// Package middleware provides HTTP middleware for session authentication.
package middleware

import (
	"context"
	"fmt"
	"net/http"

	"github.com/briteco/briteroles/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

// identityKey is the context key for the authenticated identity.
const identityKey ContextKey = "identity"

// SessionValidator resolves a request to an authenticated identity. The
// server's session service implements this; tests substitute fakes.
type SessionValidator interface {
	IdentityFromRequest(r *http.Request) (*types.Identity, error)
}

// RequireSession creates middleware that rejects requests without a valid
// session and stores the identity in the request context for handlers.
func RequireSession(sessions SessionValidator, onReject http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, err := sessions.IdentityFromRequest(r)
			if err != nil {
				onReject(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
		})
	}
}

// WithIdentity stores an identity in the context.
func WithIdentity(ctx context.Context, identity *types.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom extracts the authenticated identity from the request context.
func IdentityFrom(r *http.Request) (*types.Identity, error) {
	identity, ok := r.Context().Value(identityKey).(*types.Identity)
	if !ok || identity == nil {
		return nil, fmt.Errorf("identity not found in request context")
	}
	return identity, nil
}
