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

	"github.com/propositos-api/internal/domain"
)

// --- mock ---

type mockGiftSvc struct{ mock.Mock }

func (m *mockGiftSvc) List(ctx context.Context, weddingID string) ([]domain.Gift, error) {
	args := m.Called(ctx, weddingID)
	if gs, _ := args.Get(0).([]domain.Gift); gs != nil {
		return gs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGiftSvc) Create(ctx context.Context, weddingID string, req domain.CreateGiftRequest) (*domain.Gift, error) {
	args := m.Called(ctx, weddingID, req)
	if g, _ := args.Get(0).(*domain.Gift); g != nil {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGiftSvc) Update(ctx context.Context, weddingID, giftID string, req domain.UpdateGiftRequest) (*domain.Gift, error) {
	args := m.Called(ctx, weddingID, giftID, req)
	if g, _ := args.Get(0).(*domain.Gift); g != nil {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGiftSvc) Delete(ctx context.Context, weddingID, giftID string) error {
	return m.Called(ctx, weddingID, giftID).Error(0)
}

func (m *mockGiftSvc) Thank(ctx context.Context, weddingID, giftID string) error {
	return m.Called(ctx, weddingID, giftID).Error(0)
}

func (m *mockGiftSvc) PublicList(ctx context.Context, weddingID string) ([]domain.Gift, error) {
	args := m.Called(ctx, weddingID)
	if gs, _ := args.Get(0).([]domain.Gift); gs != nil {
		return gs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockGiftSvc) Claim(ctx context.Context, giftID string, req domain.ClaimGiftRequest) (*domain.Gift, error) {
	args := m.Called(ctx, giftID, req)
	if g, _ := args.Get(0).(*domain.Gift); g != nil {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

// --- couple-side tests ---

func TestCreateGift_HappyPath(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockGiftSvc{}
	req := domain.CreateGiftRequest{Name: "Stand mixer", Description: "The red one"}
	svc.On("Create", mock.Anything, "wed-1", req).
		Return(&domain.Gift{GiftID: "gift1", WeddingID: "wed-1", Name: "Stand mixer"}, nil)
	h := NewGiftHandler(svc)
	body, _ := json.Marshal(req)

	r := bearerReq(t, p, http.MethodPost, "/v1/gifts", "u1", domain.RoleBride, "wed-1", body)
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Create), rr, r)

	assert.Equal(t, http.StatusCreated, rr.Code)
	svc.AssertExpectations(t)
}

func TestThankGift_BeforeClaimIsRejected(t *testing.T) {
	p := newTestJWTProvider(t)
	svc := &mockGiftSvc{}
	svc.On("Thank", mock.Anything, "wed-1", "gift1").Return(domain.ErrConflict)
	h := NewGiftHandler(svc)

	r := bearerReq(t, p, http.MethodPost, "/v1/gifts/gift1/thank", "u1", domain.RoleGroom, "wed-1", nil)
	r = withChiID(r, "gift1")
	rr := httptest.NewRecorder()
	serveAuthed(p, http.HandlerFunc(h.Thank), rr, r)

	assert.Equal(t, http.StatusConflict, rr.Code)
	svc.AssertExpectations(t)
}

// --- public registry tests ---

func TestPublicRegistry_ListsGiftsWithoutAuth(t *testing.T) {
	svc := &mockGiftSvc{}
	svc.On("PublicList", mock.Anything, "wed-1").
		Return([]domain.Gift{{GiftID: "gift1", Name: "Stand mixer", ClaimedByName: "Carol"}}, nil)
	h := NewGiftHandler(svc)

	r := withChiID(httptest.NewRequest(http.MethodGet, "/v1/registry/wed-1", nil), "wed-1")
	rr := httptest.NewRecorder()
	h.PublicList(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp []domain.Gift
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, "Carol", resp[0].ClaimedByName)
	svc.AssertExpectations(t)
}

func TestClaimGift_RecordsClaimantName(t *testing.T) {
	svc := &mockGiftSvc{}
	req := domain.ClaimGiftRequest{Name: "Carol"}
	svc.On("Claim", mock.Anything, "gift1", req).
		Return(&domain.Gift{GiftID: "gift1", Name: "Stand mixer", ClaimedByName: "Carol"}, nil)
	h := NewGiftHandler(svc)
	body, _ := json.Marshal(req)

	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/registry/gifts/gift1/claim", bytes.NewReader(body)), "gift1")
	rr := httptest.NewRecorder()
	h.Claim(rr, r)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp domain.Gift
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "Carol", resp.ClaimedByName)
	svc.AssertExpectations(t)
}

func TestClaimGift_AlreadyClaimed(t *testing.T) {
	svc := &mockGiftSvc{}
	svc.On("Claim", mock.Anything, "gift1", mock.Anything).Return(nil, domain.ErrConflict)
	h := NewGiftHandler(svc)
	body, _ := json.Marshal(domain.ClaimGiftRequest{Name: "Dave"})

	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/registry/gifts/gift1/claim", bytes.NewReader(body)), "gift1")
	rr := httptest.NewRecorder()
	h.Claim(rr, r)
	assert.Equal(t, http.StatusConflict, rr.Code)
	svc.AssertExpectations(t)
}

func TestClaimGift_NameRequired(t *testing.T) {
	svc := &mockGiftSvc{}
	h := NewGiftHandler(svc)

	r := withChiID(httptest.NewRequest(http.MethodPost, "/v1/registry/gifts/gift1/claim", bytes.NewBufferString(`{}`)), "gift1")
	rr := httptest.NewRecorder()
	h.Claim(rr, r)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}
