package repository

import (
	"context"
	"time"

	"steamfinder/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StatsRepository defines persistence operations for user play statistics.
type StatsRepository interface {
	Upsert(ctx context.Context, stats *models.UserStats) error
	GetByUserID(ctx context.Context, userID uint) (*models.UserStats, error)
	ListUserIDs(ctx context.Context) ([]uint, error)
}

type statsRepository struct {
	db *gorm.DB
}

// NewStatsRepository returns a new StatsRepository implementation.
func NewStatsRepository(db *gorm.DB) StatsRepository {
	return &statsRepository{db: db}
}

func (r *statsRepository) Upsert(ctx context.Context, stats *models.UserStats) error {
	stats.RefreshedAt = time.Now().UTC()
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"hours_played", "matches_won", "matches_lost", "refreshed_at", "updated_at",
			}),
		}).
		Create(stats).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *statsRepository) GetByUserID(ctx context.Context, userID uint) (*models.UserStats, error) {
	var stats models.UserStats
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&stats).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, models.NewNotFoundError("UserStats", userID)
		}
		return nil, models.NewInternalError(err)
	}
	return &stats, nil
}

func (r *statsRepository) ListUserIDs(ctx context.Context) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Pluck("id", &ids).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return ids, nil
}
