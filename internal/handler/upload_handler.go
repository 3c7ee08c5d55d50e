package handler

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"go-blog-app/internal/logger"
	"go-blog-app/internal/storage"
)

// UploadHandler receives image uploads from the rich-text editor widget.
type UploadHandler struct {
	uploads *storage.UploadStore
	log     logger.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(uploads *storage.UploadStore, log logger.Logger) *UploadHandler {
	return &UploadHandler{uploads: uploads, log: log}
}

// uploadHandler stores the file and answers in the format the editor
// expects: the CKEditor callback script when CKEditorFuncNum is present,
// otherwise a JSON payload with the file URL.
func (h *UploadHandler) uploadHandler(w http.ResponseWriter, r *http.Request) {
	file, header, err := r.FormFile("upload")
	if err != nil {
		http.Error(w, "No file part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		http.Error(w, "No selected file", http.StatusBadRequest)
		return
	}

	name, err := h.uploads.Save(header.Filename, file)
	if err != nil {
		h.log.Error(err, "failed to store editor upload")
		http.Error(w, "Upload failed", http.StatusInternalServerError)
		return
	}
	fileURL := "/uploads/" + name

	if callback := r.URL.Query().Get("CKEditorFuncNum"); callback != "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprintf(w, "<script>window.parent.CKEDITOR.tools.callFunction(%s, '%s', '');</script>",
			template.JSEscapeString(callback), template.JSEscapeString(fileURL))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"url": fileURL})
}
