// Package session keeps the logged in identity between requests.
package session

import (
	"context"
	"net/http"

	"rental-movies/internal/auth"
)

// Manager is an interface that abstracts the session management implementation.
// This allows for easier testing and dependency injection.
type Manager interface {
	LoadAndSave(next http.Handler) http.Handler
	Put(ctx context.Context, key string, val interface{})
	GetString(ctx context.Context, key string) string
	PopString(ctx context.Context, key string) string
	RenewToken(ctx context.Context) error
	Destroy(ctx context.Context) error
	Remove(ctx context.Context, key string)
}

const (
	acronymKey = "acronym"
	nameKey    = "name"
	roleKey    = "role"
	// FlashKey holds a one-time status message.
	FlashKey = "flash"
)

// Login stores id in the session. The session token is renewed to prevent
// session fixation.
func Login(ctx context.Context, m Manager, id auth.Identity) error {
	if err := m.RenewToken(ctx); err != nil {
		return err
	}
	m.Put(ctx, acronymKey, id.Acronym)
	m.Put(ctx, nameKey, id.Name)
	m.Put(ctx, roleKey, id.Role.String())
	return nil
}

// Identity returns the identity stored in the session, or the anonymous
// identity.
func Identity(ctx context.Context, m Manager) auth.Identity {
	acronym := m.GetString(ctx, acronymKey)
	if acronym == "" {
		return auth.Anonymous()
	}
	return auth.Identity{
		Role:    auth.ParseRole(m.GetString(ctx, roleKey)),
		Acronym: acronym,
		Name:    m.GetString(ctx, nameKey),
	}
}

// Logout ends the session.
func Logout(ctx context.Context, m Manager) error {
	return m.Destroy(ctx)
}
