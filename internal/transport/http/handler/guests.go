package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propositos-api/internal/application/guest"
	"github.com/propositos-api/internal/domain"
)

// GuestHandler manages the guest list for the couple and serves the public
// RSVP endpoints guests reach from an invitation link.
type GuestHandler struct {
	svc guest.Service
}

func NewGuestHandler(svc guest.Service) *GuestHandler {
	return &GuestHandler{svc: svc}
}

func (h *GuestHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	guests, err := h.svc.List(r.Context(), claims.WeddingID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, guests)
}

func (h *GuestHandler) Summary(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	summary, err := h.svc.Summary(r.Context(), claims.WeddingID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *GuestHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.CreateGuestRequest
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

func (h *GuestHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.UpdateGuestRequest
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

func (h *GuestHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), claims.WeddingID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "guest deleted"})
}

func (h *GuestHandler) Invite(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.Invite(r.Context(), claims.WeddingID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "invitation sent"})
}

func (h *GuestHandler) Remind(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.Remind(r.Context(), claims.WeddingID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "reminder sent"})
}

// GetForRSVP is public. The guest id in the link is the only credential;
// the reply carries no other guest's data.
func (h *GuestHandler) GetForRSVP(w http.ResponseWriter, r *http.Request) {
	g, err := h.svc.GetForRSVP(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

// RSVP is public, reached from the invitation link.
func (h *GuestHandler) RSVP(w http.ResponseWriter, r *http.Request) {
	var req domain.GuestRSVPRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.svc.RSVP(r.Context(), chi.URLParam(r, "id"), req); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "rsvp recorded"})
}
