package handler

import (
	"net/http"

	"github.com/propositos-api/internal/application/media"
)

// MediaHandler turns uploaded images into inline data URLs the other
// endpoints accept. Nothing is persisted here.
type MediaHandler struct {
	svc media.Service
}

func NewMediaHandler(svc media.Service) *MediaHandler {
	return &MediaHandler{svc: svc}
}

func (h *MediaHandler) Process(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file is required")
		return
	}
	defer file.Close()

	img, err := h.svc.Process(file, header.Size)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, img)
}
