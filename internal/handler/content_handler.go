package handler

import (
	"net/http"

	"rental-movies/internal/middleware"
	"rental-movies/internal/service"
	"rental-movies/internal/view"
)

// ContentHandler serves the content administration.
type ContentHandler struct {
	content ContentServicer
	paging  Paging
	view    *view.View
}

// NewContentHandler creates a new ContentHandler.
func NewContentHandler(content ContentServicer, p Paging, v *view.View) *ContentHandler {
	return &ContentHandler{content: content, paging: p, view: v}
}

func (h *ContentHandler) search(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	params, appErr := h.paging.searchParams(r)
	if appErr != nil {
		return appErr
	}
	res, err := h.content.Search(r.Context(), params, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, newListing(h.paging, r, res))
}

// status lists all content with its availability.
func (h *ContentHandler) status(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	list, err := h.content.List(r.Context(), middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, list)
}

func (h *ContentHandler) create(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	var in service.ContentInput
	if appErr := decodeJSON(w, r, &in); appErr != nil {
		return appErr
	}
	msg, err := h.content.Create(r.Context(), in, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusCreated, msg)
}

func (h *ContentHandler) show(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}
	c, err := h.content.Get(r.Context(), id, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, c)
}

func (h *ContentHandler) update(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}
	var in service.ContentInput
	if appErr := decodeJSON(w, r, &in); appErr != nil {
		return appErr
	}
	msg, err := h.content.Update(r.Context(), id, in, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, msg)
}

func (h *ContentHandler) delete(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}
	msg, err := h.content.SoftDelete(r.Context(), id, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, msg)
}

func (h *ContentHandler) erase(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	id, appErr := pathID(r, "id")
	if appErr != nil {
		return appErr
	}
	msg, err := h.content.HardErase(r.Context(), id, middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, msg)
}

// reset restores the default content.
func (h *ContentHandler) reset(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	msg, err := h.content.Reset(r.Context(), middleware.GetIdentity(r.Context()))
	if err != nil {
		return middleware.ServiceError(err)
	}
	return render(h.view, w, r, http.StatusOK, msg)
}
