package middleware

import (
	"context"

	"rental-movies/internal/auth"
)

// contextKey defines a custom type for context keys to avoid collisions.
type contextKey string

const identityContextKey = contextKey("identity")

// GetIdentity retrieves the identity of the visitor from the request context.
func GetIdentity(ctx context.Context) auth.Identity {
	if id, ok := ctx.Value(identityContextKey).(auth.Identity); ok {
		return id
	}
	return auth.Anonymous()
}

// SetIdentity adds the identity of the visitor to the request context.
func SetIdentity(ctx context.Context, id auth.Identity) context.Context {
	return context.WithValue(ctx, identityContextKey, id)
}
