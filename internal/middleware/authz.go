package middleware

import (
	"net/http"

	"rental-movies/internal/logger"
	"rental-movies/internal/session"
	"rental-movies/internal/view"
)

// Enforcer decides whether a subject may perform an action on an object.
type Enforcer interface {
	Enforce(rvals ...interface{}) (bool, error)
}

// Authorizer creates a new middleware for authorization. It loads the
// visitor's identity from the session, adds it to the request context and
// checks the route permission of its role with Casbin.
func Authorizer(e Enforcer, sm session.Manager, v *view.View, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := session.Identity(r.Context(), sm)
			r = r.WithContext(SetIdentity(r.Context(), id))

			allowed, err := e.Enforce(id.Role.String(), r.URL.Path, r.Method)
			if err != nil {
				log.Error(err, "Authorization error")
				v.Error(w, r, http.StatusInternalServerError, "Authorization error", "")
				return
			}
			if !allowed {
				if !id.IsAuthenticated() {
					v.Error(w, r, http.StatusUnauthorized, "Log in to continue", "")
					return
				}
				v.Error(w, r, http.StatusForbidden, "Forbidden", "")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
