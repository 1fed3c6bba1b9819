package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propositos-api/internal/application/gift"
	"github.com/propositos-api/internal/domain"
)

// GiftHandler manages the registry for the couple and exposes the public
// registry page guests use to pick a gift.
type GiftHandler struct {
	svc gift.Service
}

func NewGiftHandler(svc gift.Service) *GiftHandler {
	return &GiftHandler{svc: svc}
}

func (h *GiftHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	gifts, err := h.svc.List(r.Context(), claims.WeddingID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gifts)
}

func (h *GiftHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.CreateGiftRequest
	if !decodeValid(w, r, &req) {
		return
	}
	g, err := h.svc.Create(r.Context(), claims.WeddingID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (h *GiftHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.UpdateGiftRequest
	if !decodeValid(w, r, &req) {
		return
	}
	g, err := h.svc.Update(r.Context(), claims.WeddingID, chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (h *GiftHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), claims.WeddingID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "gift deleted"})
}

func (h *GiftHandler) Thank(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.Thank(r.Context(), claims.WeddingID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "gift marked as thanked"})
}

// PublicList is the registry page guests see. The wedding id comes from the
// shared link, no session involved.
func (h *GiftHandler) PublicList(w http.ResponseWriter, r *http.Request) {
	gifts, err := h.svc.PublicList(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gifts)
}

// Claim lets a guest reserve a gift by name. A gift already claimed by
// someone else comes back as a conflict.
func (h *GiftHandler) Claim(w http.ResponseWriter, r *http.Request) {
	var req domain.ClaimGiftRequest
	if !decodeValid(w, r, &req) {
		return
	}
	g, err := h.svc.Claim(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}
