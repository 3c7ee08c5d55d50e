package handler

import (
	"errors"
	"net/http"
	"strconv"

	"go-blog-app/internal/middleware"
	"go-blog-app/internal/service"
	"go-blog-app/internal/storage"

	"github.com/go-chi/chi/v5"
)

// appError maps a service error onto an AppError with the right status.
func appError(err error, msg string) *middleware.AppError {
	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, service.ErrForbidden), errors.Is(err, service.ErrNotAuthenticated):
		code = http.StatusForbidden
	case errors.Is(err, service.ErrInvalidInput):
		code = http.StatusBadRequest
	}
	return &middleware.AppError{Error: err, Message: msg, Code: code}
}

// saveFormFile stores an uploaded form file, if one was submitted, and
// returns the name it was stored as. A missing file or an unusable
// filename is not an error; it just leaves the reference empty.
func saveFormFile(r *http.Request, field string, store *storage.UploadStore) (string, error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		// Covers both a missing part and a non-multipart form.
		return "", nil
	}
	defer file.Close()
	if header.Filename == "" {
		return "", nil
	}
	name, err := store.Save(header.Filename, file)
	if errors.Is(err, storage.ErrEmptyFilename) {
		return "", nil
	}
	return name, err
}

// idParam parses a numeric chi URL parameter.
func idParam(r *http.Request, name string) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, service.ErrNotFound
	}
	return id, nil
}
