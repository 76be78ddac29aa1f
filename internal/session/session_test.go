//go:build unit

package session

import (
	"context"
	"net/http"
	"testing"

	"rental-movies/internal/auth"
)

type memoryManager struct {
	values  map[string]string
	renewed bool
}

var _ Manager = (*memoryManager)(nil)

func (m *memoryManager) LoadAndSave(next http.Handler) http.Handler { return next }
func (m *memoryManager) Put(ctx context.Context, key string, val interface{}) {
	m.values[key] = val.(string)
}
func (m *memoryManager) GetString(ctx context.Context, key string) string { return m.values[key] }
func (m *memoryManager) PopString(ctx context.Context, key string) string {
	v := m.values[key]
	delete(m.values, key)
	return v
}
func (m *memoryManager) RenewToken(ctx context.Context) error {
	m.renewed = true
	return nil
}
func (m *memoryManager) Destroy(ctx context.Context) error {
	m.values = map[string]string{}
	return nil
}
func (m *memoryManager) Remove(ctx context.Context, key string) { delete(m.values, key) }

func TestLoginLogout(t *testing.T) {
	ctx := context.Background()
	m := &memoryManager{values: map[string]string{}}

	if id := Identity(ctx, m); id.IsAuthenticated() {
		t.Fatalf("expected anonymous identity, got %+v", id)
	}

	want := auth.Identity{Role: auth.RoleAdmin, Acronym: "admin", Name: "Administrator"}
	if err := Login(ctx, m, want); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if !m.renewed {
		t.Error("expected the session token to be renewed")
	}
	if got := Identity(ctx, m); got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}

	if err := Logout(ctx, m); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if id := Identity(ctx, m); id.IsAuthenticated() {
		t.Errorf("expected anonymous identity after logout, got %+v", id)
	}
}
