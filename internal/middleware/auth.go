// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"inkwell/internal/identity"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the resolved caller identity.
	IdentityKey contextKey = "identity"
)

// Authenticate resolves the bearer token from the Authorization header and
// stores the caller's identity in the request context. Downstream handlers
// access it via IdentityFromCtx(). This middleware does NOT enforce
// authentication — it just resolves the identity if a valid token exists.
func Authenticate(tokens *identity.TokenStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident, err := tokens.Resolve(r.Context(), bearerToken(r))
			if err != nil {
				// Treat a token backend failure as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			if ident != nil {
				ctx := context.WithValue(r.Context(), IdentityKey, ident)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns 401 for requests without a resolved identity.
// Must be applied after Authenticate in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			deny(w, http.StatusUnauthorized, "Not authorized, no token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireRole returns 403 unless the authenticated caller's role grants
// the required capability. Must be applied after RequireAuth.
func RequireRole(required identity.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ident := IdentityFromCtx(r.Context())
			if ident == nil || !ident.Role.Allows(required) {
				deny(w, http.StatusForbidden, "Forbidden")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// IdentityFromCtx extracts the caller identity from the request context.
// Returns nil if no identity is resolved (caller is not authenticated).
func IdentityFromCtx(ctx context.Context) *identity.Identity {
	ident, _ := ctx.Value(IdentityKey).(*identity.Identity)
	return ident
}

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

// deny writes a JSON error envelope. Middleware cannot reuse the handler
// package's helpers without an import cycle, so it carries its own.
func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(`{"success":false,"error":"` + message + `"}`))
}
