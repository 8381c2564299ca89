package repository

import (
	"context"
	"time"

	"steamfinder/internal/models"

	"gorm.io/gorm"
)

// ReviewRepository defines persistence operations for player reviews.
type ReviewRepository interface {
	Create(ctx context.Context, review *models.Review) error
	ListForSubject(ctx context.Context, subjectID uint, limit, offset int) ([]models.Review, error)
}

// AchievementRepository defines persistence operations for unlocked achievements.
type AchievementRepository interface {
	GrantOnce(ctx context.Context, userID uint, title string) (bool, error)
	ListForUser(ctx context.Context, userID uint) ([]models.Achievement, error)
}

type reviewRepository struct {
	db *gorm.DB
}

// NewReviewRepository returns a new ReviewRepository implementation.
func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) Create(ctx context.Context, review *models.Review) error {
	if err := r.db.WithContext(ctx).Create(review).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *reviewRepository) ListForSubject(ctx context.Context, subjectID uint, limit, offset int) ([]models.Review, error) {
	var reviews []models.Review
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Where("subject_id = ?", subjectID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&reviews).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return reviews, nil
}

type achievementRepository struct {
	db *gorm.DB
}

// NewAchievementRepository returns a new AchievementRepository implementation.
func NewAchievementRepository(db *gorm.DB) AchievementRepository {
	return &achievementRepository{db: db}
}

// GrantOnce unlocks the titled achievement for the user if they do not
// already hold it. Returns true only when a new row was written.
func (r *achievementRepository) GrantOnce(ctx context.Context, userID uint, title string) (bool, error) {
	achievement := models.Achievement{UserID: userID, Title: title, UnlockedAt: time.Now().UTC()}
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND title = ?", userID, title).
		FirstOrCreate(&achievement)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return false, nil
		}
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *achievementRepository) ListForUser(ctx context.Context, userID uint) ([]models.Achievement, error) {
	var achievements []models.Achievement
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("unlocked_at DESC").
		Find(&achievements).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return achievements, nil
}
