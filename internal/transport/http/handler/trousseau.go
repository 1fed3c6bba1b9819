package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propositos-api/internal/application/trousseau"
	"github.com/propositos-api/internal/domain"
)

// TrousseauHandler handles the home checklist endpoints.
type TrousseauHandler struct {
	svc trousseau.Service
}

func NewTrousseauHandler(svc trousseau.Service) *TrousseauHandler {
	return &TrousseauHandler{svc: svc}
}

func (h *TrousseauHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	items, err := h.svc.List(r.Context(), claims.WeddingID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (h *TrousseauHandler) Progress(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	progress, err := h.svc.Progress(r.Context(), claims.WeddingID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

func (h *TrousseauHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.CreateTrousseauItemRequest
	if !decodeValid(w, r, &req) {
		return
	}
	item, err := h.svc.Create(r.Context(), claims.WeddingID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, item)
}

func (h *TrousseauHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.UpdateTrousseauItemRequest
	if !decodeValid(w, r, &req) {
		return
	}
	item, err := h.svc.Update(r.Context(), claims.WeddingID, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *TrousseauHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	item, err := h.svc.Toggle(r.Context(), claims.WeddingID, chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, item)
}

func (h *TrousseauHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), claims.WeddingID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "trousseau item deleted"})
}
