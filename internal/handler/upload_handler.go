package handler

import (
	"errors"
	"net/http"

	"rental-movies/internal/middleware"
	"rental-movies/internal/upload"
	"rental-movies/internal/view"
)

// UploadHandler accepts images from members.
type UploadHandler struct {
	uploader *upload.Uploader
	prefix   string
	view     *view.View
}

// NewUploadHandler creates a new UploadHandler. prefix is the URL path the
// upload directory is served under.
func NewUploadHandler(u *upload.Uploader, prefix string, v *view.View) *UploadHandler {
	return &UploadHandler{uploader: u, prefix: prefix, view: v}
}

type uploaded struct {
	File    string `json:"file"`
	URL     string `json:"url"`
	Message string `json:"message"`
}

// upload stores the multipart file field "image".
func (h *UploadHandler) upload(w http.ResponseWriter, r *http.Request) *middleware.AppError {
	r.Body = http.MaxBytesReader(w, r.Body, h.uploader.MaxSize()+maxBodySize)
	file, header, err := r.FormFile("image")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return uploadError(upload.ErrTooLarge)
		}
		return uploadError(upload.ErrMissing)
	}
	defer file.Close()

	name, err := h.uploader.Save(header.Filename, header.Size, file)
	if err != nil {
		return uploadError(err)
	}
	return render(h.view, w, r, http.StatusCreated, uploaded{
		File:    name,
		URL:     h.prefix + "/" + name,
		Message: "The image was uploaded.",
	})
}

func uploadError(err error) *middleware.AppError {
	switch {
	case errors.Is(err, upload.ErrTooLarge):
		return &middleware.AppError{Error: err, Message: err.Error(), Field: "image", Code: http.StatusRequestEntityTooLarge}
	case errors.Is(err, upload.ErrMissing), errors.Is(err, upload.ErrExtension):
		return &middleware.AppError{Error: err, Message: err.Error(), Field: "image", Code: http.StatusBadRequest}
	default:
		return &middleware.AppError{Error: err, Message: "Failed to store the image", Code: http.StatusInternalServerError}
	}
}
