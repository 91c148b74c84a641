package repositories

import (
	"testing"

	"github.com/sociablehq/sociable/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("opening test database: %v", err)
	}
	if err := db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{}); err != nil {
		t.Fatalf("migrating test database: %v", err)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, id string) *models.User {
	t.Helper()
	user := &models.User{
		ID:         id,
		Name:       "user-" + id,
		Email:      id + "@example.com",
		LikedPosts: []models.LikedPost{},
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("seeding user %s: %v", id, err)
	}
	return user
}
