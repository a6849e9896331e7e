package core_test

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"playpal-backend-go/internal/core"
)

func TestVerificationService_VerifyTestUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		admin := new(mockUserAdmin)
		admin.On("UpdateUser", ctx, "test-uid", mock.AnythingOfType("*auth.UserToUpdate")).
			Return(&auth.UserRecord{UserInfo: &auth.UserInfo{UID: "test-uid", Email: "qa@playpal.test"}, EmailVerified: true}, nil).Once()

		email, err := core.NewVerificationService(admin).VerifyTestUser(ctx, "test-uid")

		require.NoError(t, err)
		assert.Equal(t, "qa@playpal.test", email)
		admin.AssertExpectations(t)
	})

	t.Run("Missing UID", func(t *testing.T) {
		admin := new(mockUserAdmin)

		_, err := core.NewVerificationService(admin).VerifyTestUser(ctx, "")

		assert.ErrorIs(t, err, core.ErrMissingUID)
		admin.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Auth failure", func(t *testing.T) {
		admin := new(mockUserAdmin)
		authErr := errors.New("no user record found")
		admin.On("UpdateUser", ctx, "ghost", mock.Anything).Return(nil, authErr).Once()

		_, err := core.NewVerificationService(admin).VerifyTestUser(ctx, "ghost")

		require.Error(t, err)
		assert.Same(t, authErr, err)
		assert.Equal(t, "no user record found", err.Error())
	})
}
