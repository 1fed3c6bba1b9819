package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propositos-api/internal/application/budget"
	"github.com/propositos-api/internal/domain"
)

// BudgetHandler handles the wedding budget endpoints.
type BudgetHandler struct {
	svc budget.Service
}

func NewBudgetHandler(svc budget.Service) *BudgetHandler {
	return &BudgetHandler{svc: svc}
}

func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
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

func (h *BudgetHandler) Summary(w http.ResponseWriter, r *http.Request) {
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

func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.CreateBudgetItemRequest
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

func (h *BudgetHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	var req domain.UpdateBudgetItemRequest
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

func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), claims.WeddingID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "budget item deleted"})
}
