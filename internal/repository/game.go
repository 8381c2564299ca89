package repository

import (
	"context"
	"errors"
	"strings"

	"steamfinder/internal/models"

	"gorm.io/gorm"
)

// GameRepository defines persistence operations for games and the
// user-game interest relation.
type GameRepository interface {
	GetOrCreateByName(ctx context.Context, name string) (*models.Game, error)
	Search(ctx context.Context, query string, limit int) ([]models.Game, error)
	AddToUser(ctx context.Context, userID uint, game *models.Game) error
}

type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository returns a new GameRepository implementation.
func NewGameRepository(db *gorm.DB) GameRepository {
	return &gameRepository{db: db}
}

// GetOrCreateByName returns the game row for a name, creating it on
// first reference. Game rows are never deleted.
func (r *gameRepository) GetOrCreateByName(ctx context.Context, name string) (*models.Game, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Game name is required")
	}

	var game models.Game
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&game).Error
	if err == nil {
		return &game, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.NewInternalError(err)
	}

	game = models.Game{Name: name}
	if createErr := r.db.WithContext(ctx).Create(&game).Error; createErr != nil {
		// Concurrent first reference: another request created the row
		// between our lookup and insert. Re-read it.
		if isUniqueConstraintError(createErr) {
			if err := r.db.WithContext(ctx).Where("name = ?", name).First(&game).Error; err != nil {
				return nil, models.NewInternalError(err)
			}
			return &game, nil
		}
		return nil, models.NewInternalError(createErr)
	}
	return &game, nil
}

func (r *gameRepository) Search(ctx context.Context, query string, limit int) ([]models.Game, error) {
	var games []models.Game
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	pattern := "%" + strings.ToLower(strings.TrimSpace(query)) + "%"
	if err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ?", pattern).
		Order("name").
		Limit(limit).
		Find(&games).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return games, nil
}

// AddToUser registers a user's interest in a game. Appending a game the
// user already has is a no-op.
func (r *gameRepository) AddToUser(ctx context.Context, userID uint, game *models.Game) error {
	user := models.User{ID: userID}
	if err := r.db.WithContext(ctx).
		Model(&user).
		Association("Games").
		Append(game); err != nil {
		if isUniqueConstraintError(err) {
			return nil
		}
		return models.NewInternalError(err)
	}
	return nil
}
