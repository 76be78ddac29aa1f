package handler

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"rental-movies/internal/auth"
	"rental-movies/internal/logger"
	"rental-movies/internal/middleware"
	"rental-movies/internal/service"
	"rental-movies/internal/session"
	"rental-movies/internal/view"

	"golang.org/x/oauth2"
)

const stateCookie = "state"

// SSO is the single sign-on provider.
type SSO interface {
	AuthCodeURL(state string, opts ...oauth2.AuthCodeOption) string
	ExchangeClaims(ctx context.Context, code string) (auth.Claims, error)
}

var _ SSO = (*auth.Authenticator)(nil)

// AuthHandler holds the dependencies for the authentication handlers.
type AuthHandler struct {
	users   UserServicer
	sso     SSO
	session session.Manager
	view    *view.View
	log     logger.Logger
}

// NewAuthHandler creates a new AuthHandler. sso may be nil when single
// sign-on is not configured.
func NewAuthHandler(users UserServicer, sso SSO, sm session.Manager, v *view.View, log logger.Logger) *AuthHandler {
	return &AuthHandler{users: users, sso: sso, session: sm, view: v, log: log}
}

type credentials struct {
	Acronym  string `json:"acronym"`
	Password string `json:"password"`
}

// Status describes who is logged in.
type Status struct {
	Authenticated bool   `json:"authenticated"`
	Acronym       string `json:"acronym,omitempty"`
	Name          string `json:"name,omitempty"`
	Role          string `json:"role"`
	Message       string `json:"message"`
	Flash         string `json:"flash,omitempty"`
}

func statusOf(id auth.Identity) Status {
	if !id.IsAuthenticated() {
		return Status{Role: id.Role.String(), Message: "You are not logged in."}
	}
	return Status{
		Authenticated: true,
		Acronym:       id.Acronym,
		Name:          id.Name,
		Role:          id.Role.String(),
		Message:       fmt.Sprintf("You are logged in as: %s (%s)", id.Acronym, id.Name),
	}
}

// handleLogin checks the posted acronym and password and stores the
// identity in the session.
func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var c credentials
	if appErr := decodeJSON(w, r, &c); appErr != nil {
		return appErr
	}
	id, err := h.users.Authenticate(r.Context(), c.Acronym, c.Password)
	if err != nil {
		return middleware.ServiceError(err)
	}
	if err := session.Login(r.Context(), h.session, id); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to start session", Code: http.StatusInternalServerError}
	}
	h.log.With(map[string]interface{}{"acronym": id.Acronym}).Info("User logged in")
	return render(h.view, w, r, http.StatusOK, statusOf(id))
}

// handleLogout destroys the session.
func (h *AuthHandler) handleLogout(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if err := session.Logout(r.Context(), h.session); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to log out", Code: http.StatusInternalServerError}
	}
	return render(h.view, w, r, http.StatusOK, statusOf(auth.Anonymous()))
}

func (h *AuthHandler) handleStatus(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	status := statusOf(middleware.GetIdentity(r.Context()))
	status.Flash = h.session.PopString(r.Context(), session.FlashKey)
	return render(h.view, w, r, http.StatusOK, status)
}

// handleSSOLogin redirects the user to the OIDC provider to log in.
// It uses a random 'state' string for CSRF protection.
func (h *AuthHandler) handleSSOLogin(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.sso == nil {
		return &middleware.AppError{Error: auth.ErrSSODisabled, Message: auth.ErrSSODisabled.Error(), Code: http.StatusNotFound}
	}
	state, err := randString(16)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Internal Server Error", Code: http.StatusInternalServerError}
	}
	// Store the state in a short-lived cookie to verify on callback.
	http.SetCookie(w, &http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(10 * time.Minute / time.Second),
		HttpOnly: true,
		Secure:   r.TLS != nil,
	})
	http.Redirect(w, r, h.sso.AuthCodeURL(state), http.StatusFound)
	return nil
}

// handleSSOCallback is the redirect URL for the OIDC provider. The verified
// claims must name an existing local account.
func (h *AuthHandler) handleSSOCallback(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	if h.sso == nil {
		return &middleware.AppError{Error: auth.ErrSSODisabled, Message: auth.ErrSSODisabled.Error(), Code: http.StatusNotFound}
	}
	cookie, err := r.Cookie(stateCookie)
	if err != nil {
		return &middleware.AppError{Error: err, Message: "state cookie not found", Code: http.StatusBadRequest}
	}
	if r.URL.Query().Get("state") != cookie.Value {
		return &middleware.AppError{Error: errors.New("state mismatch"), Message: "state did not match", Code: http.StatusBadRequest}
	}
	http.SetCookie(w, &http.Cookie{Name: stateCookie, Path: "/", MaxAge: -1})

	claims, err := h.sso.ExchangeClaims(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		return &middleware.AppError{Error: err, Message: "Single sign-on failed", Code: http.StatusUnauthorized}
	}
	id, err := h.users.Lookup(r.Context(), claims.Acronym())
	if errors.Is(err, service.ErrNotFound) {
		return &middleware.AppError{Error: err, Message: "No account for " + claims.Acronym(), Code: http.StatusForbidden}
	}
	if err != nil {
		return middleware.ServiceError(err)
	}
	if err := session.Login(r.Context(), h.session, id); err != nil {
		return &middleware.AppError{Error: err, Message: "Failed to start session", Code: http.StatusInternalServerError}
	}
	h.session.Put(r.Context(), session.FlashKey, statusOf(id).Message)
	h.log.With(map[string]interface{}{"acronym": id.Acronym, "subject": claims.Subject}).Info("User logged in through single sign-on")

	http.Redirect(w, r, "/", http.StatusFound)
	return nil
}

// randString is a helper function to generate a random string for the 'state' parameter.
func randString(nByte int) (string, error) {
	b := make([]byte, nByte)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
