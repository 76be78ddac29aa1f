package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"rental-movies/internal/logger"
	"rental-movies/internal/service"
	"rental-movies/internal/view"
)

// AppError represents a custom error type for the application.
type AppError struct {
	Error   error
	Message string
	Field   string
	Code    int
}

// AppHandler is a custom handler function type that returns an AppError.
type AppHandler func(http.ResponseWriter, *http.Request) *AppError

// ServiceError maps an error returned by the service layer to an AppError.
func ServiceError(err error) *AppError {
	var validationErr *service.ValidationError
	var constraintErr *service.ConstraintError
	var gatewayErr *service.GatewayError
	switch {
	case errors.As(err, &validationErr):
		return &AppError{Error: err, Message: validationErr.Message, Field: validationErr.Field, Code: http.StatusBadRequest}
	case errors.As(err, &constraintErr):
		return &AppError{Error: err, Message: constraintErr.Message, Field: constraintErr.Field, Code: http.StatusConflict}
	case errors.Is(err, service.ErrNotFound):
		return &AppError{Error: err, Message: "Not found", Code: http.StatusNotFound}
	case errors.Is(err, service.ErrForbidden):
		return &AppError{Error: err, Message: "Forbidden", Code: http.StatusForbidden}
	case errors.Is(err, service.ErrInvalidCredentials):
		return &AppError{Error: err, Message: err.Error(), Code: http.StatusUnauthorized}
	case errors.As(err, &gatewayErr):
		return &AppError{Error: err, Message: "The operation failed: " + gatewayErr.Op, Code: http.StatusInternalServerError}
	default:
		return &AppError{Error: err, Message: "Internal Server Error", Code: http.StatusInternalServerError}
	}
}

// Error is a middleware that converts handler errors into JSON error documents.
func Error(log logger.Logger, v *view.View) func(AppHandler) http.Handler {
	return func(next AppHandler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					err, ok := rec.(error)
					if !ok {
						err = fmt.Errorf("%v", rec)
					}
					log.Error(err, "Panic recovered")
					v.Error(w, r, http.StatusInternalServerError, "Internal Server Error", "")
				}
			}()

			appErr := next(w, r)
			if appErr == nil {
				return
			}
			fields := map[string]interface{}{"status": appErr.Code, "path": r.URL.Path}
			if appErr.Code >= http.StatusInternalServerError {
				log.With(fields).Error(appErr.Error, appErr.Message)
			} else {
				log.With(fields).Debug(appErr.Message)
			}
			v.Error(w, r, appErr.Code, appErr.Message, appErr.Field)
		})
	}
}
