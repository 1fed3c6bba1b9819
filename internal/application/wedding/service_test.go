package wedding

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/propositos-api/internal/domain"
)

type mockWeddingStore struct{ mock.Mock }

func (m *mockWeddingStore) Get(ctx context.Context, weddingID string) (*domain.Wedding, error) {
	args := m.Called(ctx, weddingID)
	if w, _ := args.Get(0).(*domain.Wedding); w != nil {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}
func (m *mockWeddingStore) Update(ctx context.Context, weddingID string, updates map[string]interface{}) error {
	return m.Called(ctx, weddingID, updates).Error(0)
}

type mockUserStore struct{ mock.Mock }

func (m *mockUserStore) ListByWedding(ctx context.Context, weddingID string) ([]domain.User, error) {
	args := m.Called(ctx, weddingID)
	if us, _ := args.Get(0).([]domain.User); us != nil {
		return us, args.Error(1)
	}
	return nil, args.Error(1)
}

func ptr[T any](v T) *T { return &v }

func TestMembers_OnlyEnabledCoupleAccounts(t *testing.T) {
	ws, us := &mockWeddingStore{}, &mockUserStore{}
	us.On("ListByWedding", mock.Anything, "wed-1").Return([]domain.User{
		{UserID: "u1", Role: domain.RoleBride, Enable: true},
		{UserID: "u2", Role: domain.RoleGroom, Enable: true},
		{UserID: "u3", Role: domain.RoleGuest, Enable: true},
		{UserID: "u4", Role: domain.RoleGroom, Enable: false},
	}, nil)

	members, err := NewService(ws, us).Members(context.Background(), "wed-1")

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "u1", members[0].UserID)
	assert.Equal(t, "u2", members[1].UserID)
}

func TestUpdate_ParsesWeddingDate(t *testing.T) {
	ws := &mockWeddingStore{}
	var updates map[string]interface{}
	ws.On("Update", mock.Anything, "wed-1", mock.Anything).
		Run(func(args mock.Arguments) { updates = args.Get(2).(map[string]interface{}) }).
		Return(nil)
	ws.On("Get", mock.Anything, "wed-1").Return(&domain.Wedding{WeddingID: "wed-1"}, nil)

	_, err := NewService(ws, &mockUserStore{}).Update(context.Background(), "wed-1", domain.UpdateWeddingRequest{
		WeddingDate: ptr("2026-09-12"),
	})

	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 9, 12, 0, 0, 0, 0, time.UTC), updates["weddingDate"])
}

func TestUpdate_EmptyStringClearsDate(t *testing.T) {
	ws := &mockWeddingStore{}
	var updates map[string]interface{}
	ws.On("Update", mock.Anything, "wed-1", mock.Anything).
		Run(func(args mock.Arguments) { updates = args.Get(2).(map[string]interface{}) }).
		Return(nil)
	ws.On("Get", mock.Anything, "wed-1").Return(&domain.Wedding{WeddingID: "wed-1"}, nil)

	_, err := NewService(ws, &mockUserStore{}).Update(context.Background(), "wed-1", domain.UpdateWeddingRequest{
		WeddingDate: ptr(""),
	})

	require.NoError(t, err)
	val, present := updates["weddingDate"]
	assert.True(t, present)
	assert.Nil(t, val)
}

func TestUpdate_BadDateFormat(t *testing.T) {
	ws := &mockWeddingStore{}

	_, err := NewService(ws, &mockUserStore{}).Update(context.Background(), "wed-1", domain.UpdateWeddingRequest{
		WeddingDate: ptr("12/09/2026"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrBadRequest))
	ws.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdate_EmptyRequestReturnsCurrent(t *testing.T) {
	ws := &mockWeddingStore{}
	ws.On("Get", mock.Anything, "wed-1").Return(&domain.Wedding{WeddingID: "wed-1", CoupleName: "A & B"}, nil)

	w, err := NewService(ws, &mockUserStore{}).Update(context.Background(), "wed-1", domain.UpdateWeddingRequest{})

	require.NoError(t, err)
	assert.Equal(t, "A & B", w.CoupleName)
	ws.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
