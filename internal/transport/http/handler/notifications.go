package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/propositos-api/internal/application/notification"
	"github.com/propositos-api/internal/domain"
)

// NotificationHandler serves the per-user feed plus the admin surface that
// feeds it (broadcasts and campaign rules).
type NotificationHandler struct {
	svc notification.Service
}

func NewNotificationHandler(svc notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// Feed returns every visible notification for the caller, newest first,
// together with the unread count.
func (h *NotificationHandler) Feed(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	feed, err := h.svc.Feed(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

// UnreadCount resolves the feed and returns only the unread total. Clients
// polling the badge use this instead of pulling the whole feed.
func (h *NotificationHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	feed, err := h.svc.Feed(r.Context(), claims.UserID)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, UnreadEnvelope{Unread: feed.Unread})
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkRead(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "notification read"})
}

func (h *NotificationHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.MarkAllRead(r.Context(), claims.UserID); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "all notifications read"})
}

func (h *NotificationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := claimsOrAbort(w, r)
	if !ok {
		return
	}
	if err := h.svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "notification deleted"})
}

func (h *NotificationHandler) CreateBroadcast(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateBroadcastRequest
	if !decodeValid(w, r, &req) {
		return
	}
	b, err := h.svc.CreateBroadcast(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, b)
}

func (h *NotificationHandler) ListBroadcasts(w http.ResponseWriter, r *http.Request) {
	broadcasts, err := h.svc.ListBroadcasts(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, broadcasts)
}

func (h *NotificationHandler) DeleteBroadcast(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBroadcast(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "broadcast deleted"})
}

func (h *NotificationHandler) CreateCampaign(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateCampaignRequest
	if !decodeValid(w, r, &req) {
		return
	}
	c, err := h.svc.CreateCampaign(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *NotificationHandler) ListCampaigns(w http.ResponseWriter, r *http.Request) {
	campaigns, err := h.svc.ListCampaigns(r.Context())
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, campaigns)
}

func (h *NotificationHandler) UpdateCampaign(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateCampaignRequest
	if !decodeValid(w, r, &req) {
		return
	}
	c, err := h.svc.UpdateCampaign(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, c)
}

func (h *NotificationHandler) DeleteCampaign(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteCampaign(r.Context(), chi.URLParam(r, "id")); err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "campaign deleted"})
}
