package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propositos-api/internal/application/inspiration"
	"github.com/propositos-api/internal/domain"
)

// InspirationHandler handles the mood board endpoints.
type InspirationHandler struct {
	svc inspiration.Service
}

func NewInspirationHandler(svc inspiration.Service) *InspirationHandler {
	return &InspirationHandler{svc: svc}
}

func (h *InspirationHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	inspirations, err := h.svc.List(r.Context(), claims.WeddingID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, inspirations)
}

func (h *InspirationHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.CreateInspirationRequest
	if !decodeValid(w, r, &req) {
		return
	}
	insp, err := h.svc.Create(r.Context(), claims.WeddingID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, insp)
}

func (h *InspirationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), claims.WeddingID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "inspiration deleted"})
}
