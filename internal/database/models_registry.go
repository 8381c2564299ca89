package database

import "steamfinder/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Game{},
		&models.Friendship{},
		&models.Message{},
		&models.Group{},
		&models.GroupMembership{},
		&models.Tournament{},
		&models.TournamentParticipant{},
		&models.Event{},
		&models.EventParticipant{},
		&models.Achievement{},
		&models.UserStats{},
		&models.Review{},
	}
}
