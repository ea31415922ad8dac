package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

func setupNotificationRepo(t *testing.T) (NotificationRepository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t, &models.User{}, &models.Notification{})
	return NewNotificationRepository(db), db
}

func TestNotificationMarkReadScopedToOwner(t *testing.T) {
	repo, db := setupNotificationRepo(t)
	ctx := context.Background()
	seedUser(t, db, "alice", "Maple Street", "Springfield")

	notification := models.Notification{UserID: "alice", Title: "New message", Type: "chat"}
	require.NoError(t, repo.Create(ctx, &notification))

	err := repo.MarkRead(ctx, notification.ID, "mallory")
	require.ErrorIs(t, err, gorm.ErrRecordNotFound, "another user's notification behaves like a missing one")

	require.NoError(t, repo.MarkRead(ctx, notification.ID, "alice"))

	list, err := repo.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.True(t, list[0].IsRead)
}

func TestNotificationCountUnread(t *testing.T) {
	repo, db := setupNotificationRepo(t)
	ctx := context.Background()
	seedUser(t, db, "alice", "Maple Street", "Springfield")

	read := models.Notification{UserID: "alice", Title: "Old", Type: "chat", IsRead: true}
	require.NoError(t, repo.Create(ctx, &read))
	unread := models.Notification{UserID: "alice", Title: "New", Type: "emergency"}
	require.NoError(t, repo.Create(ctx, &unread))

	count, err := repo.CountUnread(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, int64(1), count)
}

func TestNotificationCreateBatch(t *testing.T) {
	repo, db := setupNotificationRepo(t)
	ctx := context.Background()
	seedUser(t, db, "alice", "Maple Street", "Springfield")
	seedUser(t, db, "bob", "Maple Street", "Springfield")

	batch := []models.Notification{
		{UserID: "alice", Title: "Neighbor needs help", Type: "emergency"},
		{UserID: "bob", Title: "Neighbor needs help", Type: "emergency"},
	}
	require.NoError(t, repo.CreateBatch(ctx, batch))
	require.NoError(t, repo.CreateBatch(ctx, nil))

	list, err := repo.List(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 1)
}
