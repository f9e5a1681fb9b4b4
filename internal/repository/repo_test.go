package repository

import (
	"fmt"
	"testing"

	"ripple/internal/database"
	"ripple/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.AutoMigrate(database.Collections()...); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

var userSeq int

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	userSeq++
	user := &models.User{
		ExternalID: fmt.Sprintf("user_ext_%s_%d", username, userSeq),
		Username:   username,
		Avatar:     "/noAvatar.png",
		Cover:      "/noCover.png",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}
