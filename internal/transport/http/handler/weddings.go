package handler

import (
	"net/http"

	"github.com/propositos-api/internal/application/wedding"
	"github.com/propositos-api/internal/domain"
)

// WeddingHandler serves the caller's own wedding. The wedding id always comes
// from the JWT, never from the URL.
type WeddingHandler struct {
	svc wedding.Service
}

func NewWeddingHandler(svc wedding.Service) *WeddingHandler {
	return &WeddingHandler{svc: svc}
}

func (h *WeddingHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	wed, err := h.svc.Get(r.Context(), claims.WeddingID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wed)
}

func (h *WeddingHandler) Members(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	members, err := h.svc.Members(r.Context(), claims.WeddingID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, members)
}

func (h *WeddingHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.UpdateWeddingRequest
	if !decodeValid(w, r, &req) {
		return
	}
	wed, err := h.svc.Update(r.Context(), claims.WeddingID, req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wed)
}
