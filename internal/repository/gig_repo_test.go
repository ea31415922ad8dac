package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

func TestGigApplicationRequiresExistingGig(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Gig{}, &models.GigApplication{})
	repo := NewGigRepository(db)
	ctx := context.Background()
	seedUser(t, db, "poster", "Maple Street", "Springfield")
	seedUser(t, db, "worker", "Maple Street", "Springfield")

	application := models.GigApplication{GigID: "missing", UserID: "worker"}
	require.ErrorIs(t, repo.CreateApplication(ctx, &application), gorm.ErrRecordNotFound)

	gig := models.Gig{UserID: "poster", Title: "Mow lawn", Category: "yard_work"}
	require.NoError(t, repo.Create(ctx, &gig))

	application = models.GigApplication{GigID: gig.ID, UserID: "worker", Message: "Can do Saturday"}
	require.NoError(t, repo.CreateApplication(ctx, &application))

	applications, err := repo.ListApplications(ctx, gig.ID)
	require.NoError(t, err)
	require.Len(t, applications, 1)
	require.Equal(t, "pending", applications[0].Status)
}

func TestGigUpdateScopedToOwner(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Gig{})
	repo := NewGigRepository(db)
	ctx := context.Background()
	seedUser(t, db, "poster", "Maple Street", "Springfield")

	gig := models.Gig{UserID: "poster", Title: "Mow lawn", Category: "yard_work"}
	require.NoError(t, repo.Create(ctx, &gig))

	_, err := repo.Update(ctx, gig.ID, "mallory", map[string]interface{}{"title": "Hijacked"})
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)

	updated, err := repo.Update(ctx, gig.ID, "poster", map[string]interface{}{"title": "Mow front lawn"})
	require.NoError(t, err)
	require.Equal(t, "Mow front lawn", updated.Title)
}

func TestGigListFiltersByStatus(t *testing.T) {
	db := setupTestDB(t, &models.User{}, &models.Gig{})
	repo := NewGigRepository(db)
	ctx := context.Background()
	seedUser(t, db, "poster", "Maple Street", "Springfield")

	open := models.Gig{UserID: "poster", Title: "Mow lawn", Category: "yard_work", Status: "open"}
	require.NoError(t, repo.Create(ctx, &open))
	done := models.Gig{UserID: "poster", Title: "Rake leaves", Category: "yard_work", Status: "completed"}
	require.NoError(t, repo.Create(ctx, &done))

	gigs, err := repo.List(ctx, GigFilters{Status: "open"})
	require.NoError(t, err)
	require.Len(t, gigs, 1)
	require.Equal(t, open.ID, gigs[0].ID)
}
