//go:build unit

package view

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestView_Render(t *testing.T) {
	v := New(false)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := v.Render(rr, req, http.StatusCreated, map[string]int{"id": 3}); err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if rr.Code != http.StatusCreated {
		t.Errorf("want status %d; got %d", http.StatusCreated, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("unexpected content type %q", ct)
	}
	if got := strings.TrimSpace(rr.Body.String()); got != `{"id":3}` {
		t.Errorf("unexpected body %s", got)
	}
}

func TestView_RenderUnencodable(t *testing.T) {
	v := New(false)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := v.Render(rr, req, http.StatusOK, func() {}); err == nil {
		t.Fatal("expected an encoding error")
	}
	if rr.Body.Len() != 0 {
		t.Errorf("expected nothing written, got %q", rr.Body.String())
	}
}

func TestView_Error(t *testing.T) {
	v := New(true)
	rr := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/", nil)

	if err := v.Error(rr, req, http.StatusNotFound, "", ""); err != nil {
		t.Fatalf("Error failed: %v", err)
	}
	body := rr.Body.String()
	if !strings.Contains(body, `"error": "Not Found"`) || strings.Contains(body, "field") {
		t.Errorf("unexpected body %s", body)
	}
}
