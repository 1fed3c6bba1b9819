package handler

import (
	"net/http"
	"strconv"

	"github.com/propositos-api/internal/application/images"
)

// ImageHandler proxies stock photo search for the inspiration board.
type ImageHandler struct {
	svc images.Service
}

func NewImageHandler(svc images.Service) *ImageHandler {
	return &ImageHandler{svc: svc}
}

func (h *ImageHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	result, err := h.svc.Search(r.Context(), query, page)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
