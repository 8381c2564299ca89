package repository

import (
	"fmt"
	"testing"
	"time"

	"steamfinder/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Game{},
		&models.Friendship{},
		&models.Message{},
		&models.Group{},
		&models.GroupMembership{},
		&models.Tournament{},
		&models.TournamentParticipant{},
		&models.UserStats{},
		&models.Event{},
		&models.EventParticipant{},
		&models.Achievement{},
		&models.Review{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	ts := time.Now().UnixNano()
	user := &models.User{
		Username:   fmt.Sprintf("%s_%d", name, ts),
		Email:      fmt.Sprintf("%s_%d@e.com", name, ts),
		Password:   "hashed",
		SkillLevel: 1,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}
