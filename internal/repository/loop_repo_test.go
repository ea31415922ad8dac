package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

func setupLoopRepo(t *testing.T) (LoopRepository, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t, &models.User{}, &models.LoopItem{})
	return NewLoopRepository(db), db
}

func TestLoopListFiltersCombineConjunctively(t *testing.T) {
	repo, db := setupLoopRepo(t)
	ctx := context.Background()
	seedUser(t, db, "alice", "Maple Street", "Springfield")

	drill := models.LoopItem{UserID: "alice", Title: "Power drill", Category: "tools", Type: "offer", Status: "available"}
	require.NoError(t, repo.Create(ctx, &drill))
	ladder := models.LoopItem{UserID: "alice", Title: "Ladder", Category: "tools", Type: "request", Status: "available"}
	require.NoError(t, repo.Create(ctx, &ladder))
	blender := models.LoopItem{UserID: "alice", Title: "Blender", Category: "kitchen", Type: "offer", Status: "available"}
	require.NoError(t, repo.Create(ctx, &blender))

	items, err := repo.List(ctx, LoopFilters{Category: "tools", Type: "offer"})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Power drill", items[0].Title)

	all, err := repo.List(ctx, LoopFilters{})
	require.NoError(t, err)
	require.Len(t, all, 3)
}

func TestLoopListPreloadsOwner(t *testing.T) {
	repo, db := setupLoopRepo(t)
	ctx := context.Background()
	seedUser(t, db, "alice", "Maple Street", "Springfield")

	item := models.LoopItem{UserID: "alice", Title: "Tent", Category: "outdoors", Type: "offer"}
	require.NoError(t, repo.Create(ctx, &item))

	items, err := repo.List(ctx, LoopFilters{})
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.NotNil(t, items[0].User)
	require.Equal(t, "alice", items[0].User.ID)
}

func TestLoopUpdateScopedToOwner(t *testing.T) {
	repo, db := setupLoopRepo(t)
	ctx := context.Background()
	seedUser(t, db, "alice", "Maple Street", "Springfield")

	item := models.LoopItem{UserID: "alice", Title: "Bike", Category: "sports", Type: "offer", Status: "available"}
	require.NoError(t, repo.Create(ctx, &item))

	_, err := repo.Update(ctx, item.ID, "mallory", map[string]interface{}{"status": "borrowed"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound, "another user's edit behaves like a missing item")

	updated, err := repo.Update(ctx, item.ID, "alice", map[string]interface{}{"status": "borrowed"})
	require.NoError(t, err)
	require.Equal(t, "borrowed", updated.Status)
}

func TestLoopDeleteScopedToOwner(t *testing.T) {
	repo, db := setupLoopRepo(t)
	ctx := context.Background()
	seedUser(t, db, "alice", "Maple Street", "Springfield")

	item := models.LoopItem{UserID: "alice", Title: "Saw", Category: "tools", Type: "offer"}
	require.NoError(t, repo.Create(ctx, &item))

	require.ErrorIs(t, repo.Delete(ctx, item.ID, "mallory"), gorm.ErrRecordNotFound)
	require.NoError(t, repo.Delete(ctx, item.ID, "alice"))

	_, err := repo.Get(ctx, item.ID)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
