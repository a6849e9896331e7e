package db

import (
	"context"
	"os"
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"playpal-backend-go/internal/models"
)

func TestRepositories_RejectEmptyInput(t *testing.T) {
	ctx := context.Background()
	// Validation runs before the client is touched, so no client is needed.
	users := NewFirestoreUserRepository(nil)
	notifications := NewFirestoreNotificationRepository(nil)

	t.Run("GetByID without userID", func(t *testing.T) {
		user, err := users.GetByID(ctx, "")
		assert.Nil(t, user)
		assert.EqualError(t, err, "userID cannot be empty for GetByID operation")
	})

	t.Run("ClearFCMToken without userID", func(t *testing.T) {
		assert.EqualError(t, users.ClearFCMToken(ctx, ""), "userID cannot be empty for ClearFCMToken operation")
	})

	t.Run("Add without userID", func(t *testing.T) {
		_, err := notifications.Add(ctx, "", &models.InAppNotification{})
		assert.EqualError(t, err, "userID cannot be empty for Add operation")
	})

	t.Run("Add without notification", func(t *testing.T) {
		_, err := notifications.Add(ctx, "u1", nil)
		assert.EqualError(t, err, "notification cannot be nil for Add operation")
	})
}

// newEmulatorClient connects to the Firestore emulator, skipping the test
// when FIRESTORE_EMULATOR_HOST is not set.
func newEmulatorClient(t *testing.T) *firestore.Client {
	t.Helper()
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("FIRESTORE_EMULATOR_HOST not set")
	}
	client, err := firestore.NewClient(context.Background(), "playpal-test")
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })
	return client
}

func seedUser(t *testing.T, client *firestore.Client, fields map[string]interface{}) string {
	t.Helper()
	uid := "user-" + uuid.NewString()
	_, err := client.Collection(usersCollection).Doc(uid).Set(context.Background(), fields)
	require.NoError(t, err)
	return uid
}

func TestFirestoreUserRepository_Emulator(t *testing.T) {
	ctx := context.Background()
	client := newEmulatorClient(t)
	repo := NewFirestoreUserRepository(client)

	t.Run("GetByID", func(t *testing.T) {
		uid := seedUser(t, client, map[string]interface{}{"fcmToken": "tokA", "displayName": "Sam"})

		user, err := repo.GetByID(ctx, uid)

		require.NoError(t, err)
		assert.Equal(t, &models.User{ID: uid, FCMToken: "tokA"}, user)
	})

	t.Run("GetByID missing user", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "user-"+uuid.NewString())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("ClearFCMToken keeps the rest of the document", func(t *testing.T) {
		uid := seedUser(t, client, map[string]interface{}{"fcmToken": "tokA", "displayName": "Sam"})

		require.NoError(t, repo.ClearFCMToken(ctx, uid))

		snap, err := client.Collection(usersCollection).Doc(uid).Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, map[string]interface{}{"displayName": "Sam"}, snap.Data())

		user, err := repo.GetByID(ctx, uid)
		require.NoError(t, err)
		assert.Empty(t, user.FCMToken)
	})

	t.Run("ClearFCMToken on a user without token", func(t *testing.T) {
		uid := seedUser(t, client, map[string]interface{}{"displayName": "Sam"})
		assert.NoError(t, repo.ClearFCMToken(ctx, uid))
	})

	t.Run("ClearFCMToken missing user", func(t *testing.T) {
		uid := "user-" + uuid.NewString()

		err := repo.ClearFCMToken(ctx, uid)

		assert.ErrorIs(t, err, ErrNotFound)
		snap, getErr := client.Collection(usersCollection).Doc(uid).Get(ctx)
		require.Error(t, getErr)
		assert.False(t, snap.Exists())
	})
}

func TestFirestoreNotificationRepository_Emulator(t *testing.T) {
	ctx := context.Background()
	client := newEmulatorClient(t)
	repo := NewFirestoreNotificationRepository(client)
	uid := seedUser(t, client, map[string]interface{}{"fcmToken": "tokA"})

	n := &models.InAppNotification{
		Type:     models.NotificationTypePaymentDecision,
		MatchID:  "m7",
		Status:   "rejected",
		Title:    "Payment Rejected ❌",
		Body:     "receipt unreadable",
		DeepLink: "playpal://match/m7",
		Read:     true,
	}

	id, err := repo.Add(ctx, uid, n)

	require.NoError(t, err)
	require.NotEmpty(t, id)
	assert.Equal(t, id, n.ID)
	assert.True(t, n.Read, "caller's record is not modified beyond its ID")

	snap, err := client.Collection(usersCollection).Doc(uid).Collection(notificationsCollection).Doc(id).Get(ctx)
	require.NoError(t, err)
	var stored models.InAppNotification
	require.NoError(t, snap.DataTo(&stored))
	assert.False(t, stored.Read)
	assert.Equal(t, "m7", stored.MatchID)
	assert.Equal(t, "rejected", stored.Status)
	assert.Equal(t, "playpal://match/m7", stored.DeepLink)
	assert.False(t, stored.CreatedAt.IsZero())
}
