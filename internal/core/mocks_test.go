package core_test

import (
	"context"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/mock"

	"playpal-backend-go/internal/core"
	"playpal-backend-go/internal/models"
)

type mockUserRepository struct {
	mock.Mock
}

func (m *mockUserRepository) GetByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func (m *mockUserRepository) ClearFCMToken(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type mockNotificationRepository struct {
	mock.Mock
}

func (m *mockNotificationRepository) Add(ctx context.Context, userID string, n *models.InAppNotification) (string, error) {
	args := m.Called(ctx, userID, n)
	return args.String(0), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) SendMulticast(ctx context.Context, tokens []string, p core.Payload) ([]core.SendResult, error) {
	args := m.Called(ctx, tokens, p)
	results, _ := args.Get(0).([]core.SendResult)
	return results, args.Error(1)
}

type mockGuard struct {
	mock.Mock
}

func (m *mockGuard) Claim(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *mockGuard) Release(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

type mockCache struct {
	mock.Mock
}

func (m *mockCache) SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, expiration)
	return args.Bool(0), args.Error(1)
}

func (m *mockCache) Delete(ctx context.Context, key string) error {
	return m.Called(ctx, key).Error(0)
}

func (m *mockCache) Close() error {
	return m.Called().Error(0)
}

type mockUserAdmin struct {
	mock.Mock
}

func (m *mockUserAdmin) UpdateUser(ctx context.Context, uid string, user *auth.UserToUpdate) (*auth.UserRecord, error) {
	args := m.Called(ctx, uid, user)
	record, _ := args.Get(0).(*auth.UserRecord)
	return record, args.Error(1)
}

func withToken(uid, token string) *models.User {
	return &models.User{ID: uid, FCMToken: token}
}
