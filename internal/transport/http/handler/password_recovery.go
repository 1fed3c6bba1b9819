package handler

import (
	"net/http"

	"github.com/propositos-api/internal/application/auth"
)

// PasswordRecoveryHandler handles the forgot-password flow.
type PasswordRecoveryHandler struct {
	svc auth.Service
}

func NewPasswordRecoveryHandler(svc auth.Service) *PasswordRecoveryHandler {
	return &PasswordRecoveryHandler{svc: svc}
}

func (h *PasswordRecoveryHandler) Request(w http.ResponseWriter, r *http.Request) {
	var req auth.PasswordRecoveryRequest
	if !decodeValid(w, r, &req) {
		return
	}
	if err := h.svc.RequestPasswordRecovery(r.Context(), req); err != nil {
		httpError(w, err)
		return
	}
	// Same reply whether or not the email has an account.
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "if the email has an account, a code is on its way"})
}

func (h *PasswordRecoveryHandler) Reset(w http.ResponseWriter, r *http.Request) {
	var req auth.ResetPasswordRequest
	if !decodeValid(w, r, &req) {
		return
	}
	result, err := h.svc.ResetPassword(r.Context(), req)
	if err != nil {
		httpError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, AuthEnvelope{
		AccessToken:  result.Bearer,
		RefreshToken: result.RefreshToken,
		Session:      result.Session,
		User:         result.Session.User,
	})
}
