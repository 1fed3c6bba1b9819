package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/propositos-api/internal/application/session"
	"github.com/propositos-api/internal/domain"
)

// --- mock ---

type mockSessionSvc struct{ mock.Mock }

func (m *mockSessionSvc) Login(ctx context.Context, req session.LoginRequest) (*session.LoginResult, error) {
	args := m.Called(ctx, req)
	if res, _ := args.Get(0).(*session.LoginResult); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionSvc) LoginWithGoogle(ctx context.Context, req session.GoogleLoginRequest) (*session.LoginResult, error) {
	args := m.Called(ctx, req)
	if res, _ := args.Get(0).(*session.LoginResult); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionSvc) StartSession(ctx context.Context, u *domain.User) (*session.LoginResult, error) {
	args := m.Called(ctx, u)
	if res, _ := args.Get(0).(*session.LoginResult); res != nil {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockSessionSvc) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *mockSessionSvc) Logout(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

func (m *mockSessionSvc) GetCurrent(ctx context.Context, sessionID string) (*domain.Session, error) {
	args := m.Called(ctx, sessionID)
	if s, _ := args.Get(0).(*domain.Session); s != nil {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func loginResult() *session.LoginResult {
	return &session.LoginResult{
		Bearer:       "access-token",
		RefreshToken: "refresh-token",
		Session: &domain.Session{
			SessionID: "s1", UserID: "u1",
			User: &domain.User{UserID: "u1", Name: "Alice", Role: domain.RoleBride, WeddingID: "wed-1"},
		},
	}
}

// --- Login tests ---

func TestLogin_InvalidBody(t *testing.T) {
	svc := &mockSessionSvc{}
	h := NewSessionHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewBufferString("{"))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLogin_MissingPassword(t *testing.T) {
	svc := &mockSessionSvc{}
	h := NewSessionHandler(svc)
	body, _ := json.Marshal(session.LoginRequest{Email: "alice@example.com"})
	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Login", mock.Anything, mock.Anything).Return(nil, domain.ErrUnauthorized)
	h := NewSessionHandler(svc)
	body, _ := json.Marshal(session.LoginRequest{Email: "alice@example.com", Password: "nope"})
	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertExpectations(t)
}

func TestLogin_ReturnsTokenPair(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Login", mock.Anything, session.LoginRequest{Email: "alice@example.com", Password: "secret123"}).
		Return(loginResult(), nil)
	h := NewSessionHandler(svc)
	body, _ := json.Marshal(session.LoginRequest{Email: "alice@example.com", Password: "secret123"})
	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "access-token", resp.AccessToken)
	assert.Equal(t, "refresh-token", resp.RefreshToken)
	assert.Equal(t, "wed-1", resp.User.WeddingID)
	svc.AssertExpectations(t)
}

func TestLoginWithGoogle_ReturnsTokenPair(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("LoginWithGoogle", mock.Anything, session.GoogleLoginRequest{IDToken: "google-id-token"}).
		Return(loginResult(), nil)
	h := NewSessionHandler(svc)
	body, _ := json.Marshal(session.GoogleLoginRequest{IDToken: "google-id-token"})
	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/google", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.LoginWithGoogle(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "access-token", resp.AccessToken)
	svc.AssertExpectations(t)
}

// --- Refresh tests ---

func TestRefresh_MissingToken(t *testing.T) {
	svc := &mockSessionSvc{}
	h := NewSessionHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/refresh", bytes.NewBufferString(`{}`))
	rr := httptest.NewRecorder()
	h.Refresh(rr, r)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestRefresh_RotatesToken(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Refresh", mock.Anything, "old-refresh").Return("new-access", "new-refresh", nil)
	h := NewSessionHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/refresh",
		bytes.NewBufferString(`{"refresh_token":"old-refresh"}`))
	rr := httptest.NewRecorder()
	h.Refresh(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp AuthEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "new-access", resp.AccessToken)
	assert.Equal(t, "new-refresh", resp.RefreshToken)
	svc.AssertExpectations(t)
}

func TestRefresh_RevokedSession(t *testing.T) {
	svc := &mockSessionSvc{}
	svc.On("Refresh", mock.Anything, "stale").Return("", "", domain.ErrUnauthorized)
	h := NewSessionHandler(svc)
	r := httptest.NewRequest(http.MethodPost, "/v1/sessions/refresh",
		bytes.NewBufferString(`{"refresh_token":"stale"}`))
	rr := httptest.NewRecorder()
	h.Refresh(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	svc.AssertExpectations(t)
}

// --- GetCurrent / Logout tests ---

func TestGetCurrent_MissingClaims(t *testing.T) {
	svc := &mockSessionSvc{}
	h := NewSessionHandler(svc)
	r := httptest.NewRequest(http.MethodGet, "/v1/sessions", nil)
	rr := httptest.NewRecorder()
	h.GetCurrent(rr, r)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetCurrent_ReturnsSessionWithUser(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockSessionSvc{}
	sess := &domain.Session{SessionID: "sess1", UserID: "u1", User: &domain.User{UserID: "u1", Name: "Alice"}}
	svc.On("GetCurrent", mock.Anything, "sess1").Return(sess, nil)
	h := NewSessionHandler(svc)

	r := bearerReq(t, p, http.MethodGet, "/v1/sessions", "u1", domain.RoleBride, "wed-1", nil)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.GetCurrent), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp SessionEnvelope
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "sess1", resp.Session.SessionID)
	assert.Equal(t, "Alice", resp.User.Name)
	svc.AssertExpectations(t)
}

func TestLogout_DisablesTheSession(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockSessionSvc{}
	svc.On("Logout", mock.Anything, "sess1").Return(nil)
	h := NewSessionHandler(svc)

	r := bearerReq(t, p, http.MethodPost, "/v1/sessions/logout", "u1", domain.RoleBride, "wed-1", nil)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Logout), rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	svc.AssertExpectations(t)
}
