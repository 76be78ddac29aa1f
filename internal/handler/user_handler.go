package handler

import (
	"net/http"

	"rental-movies/internal/middleware"
	"rental-movies/internal/service"
	"rental-movies/internal/view"
)

// UserHandler serves account registration and administration.
type UserHandler struct {
	users  UserServicer
	paging Paging
	view   *view.View
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(users UserServicer, p Paging, v *view.View) *UserHandler {
	return &UserHandler{users: users, paging: p, view: v}
}

func (h *UserHandler) search(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	params, appErr := h.paging.searchParams(r)
	if appErr != nil {
		return appErr
	}
	res, err := h.users.Search(r.Context(), params, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, newListing(h.paging, r, res))
}

// create registers a new account.
func (h *UserHandler) create(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var in service.UserInput
	if appErr := decodeJSON(w, r, &in); appErr != nil {
		return appErr
	}
	msg, err := h.users.Create(r.Context(), in, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusCreated, msg)
}

func (h *UserHandler) show(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}
	u, err := h.users.Get(r.Context(), id, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, u)
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}
	var in service.UserInput
	if appErr := decodeJSON(w, r, &in); appErr != nil {
		return appErr
	}
	msg, err := h.users.Update(r.Context(), id, in, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, msg)
}

func (h *UserHandler) delete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}
	msg, err := h.users.Delete(r.Context(), id, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, msg)
}
