package repository

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/hommiefi/hommiefi-api/internal/models"
)

// setupTestDB opens an in-memory database named after the test, so parallel
// tests never share tables.
func setupTestDB(t *testing.T, entities ...interface{}) *gorm.DB {
	t.Helper()
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(entities...))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id, neighborhood, city string) models.User {
	t.Helper()
	user := models.User{
		ID:           id,
		Email:        id + "@example.com",
		FirstName:    "Test",
		LastName:     "User",
		Neighborhood: neighborhood,
		City:         city,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}
