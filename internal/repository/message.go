package repository

import (
	"context"
	"errors"
	"time"

	"steamfinder/internal/models"

	"gorm.io/gorm"
)

// MessageRepository defines persistence operations for the message log.
type MessageRepository interface {
	Create(ctx context.Context, message *models.Message) error
	GetByID(ctx context.Context, id uint) (*models.Message, error)
	GetInbox(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error)
	GetConversation(ctx context.Context, userID1, userID2 uint, limit, offset int) ([]models.Message, error)
	MarkRead(ctx context.Context, messageID uint, readAt time.Time) error
	UpdateBody(ctx context.Context, messageID uint, body string) error
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository returns a new MessageRepository implementation.
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{db: db}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	var message models.Message
	if err := r.db.WithContext(ctx).Preload("Sender").First(&message, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Message", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &message, nil
}

func (r *messageRepository) GetInbox(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if err := r.db.WithContext(ctx).
		Where("recipient_id = ?", userID).
		Preload("Sender").
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) GetConversation(ctx context.Context, userID1, userID2 uint, limit, offset int) ([]models.Message, error) {
	var messages []models.Message
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if err := r.db.WithContext(ctx).
		Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			userID1, userID2, userID2, userID1).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return messages, nil
}

func (r *messageRepository) MarkRead(ctx context.Context, messageID uint, readAt time.Time) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", messageID).
		Updates(map[string]interface{}{"is_read": true, "read_at": readAt}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *messageRepository) UpdateBody(ctx context.Context, messageID uint, body string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", messageID).
		Updates(map[string]interface{}{"body": body, "is_edited": true}).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// PurgeOlderThan hard-deletes messages created strictly before the
// cutoff and returns how many rows went away. Fire-and-forget from the
// scheduler; there is no compensating log.
func (r *messageRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Unscoped().
		Where("created_at < ?", cutoff).
		Delete(&models.Message{})
	if res.Error != nil {
		return 0, models.NewInternalError(res.Error)
	}
	return res.RowsAffected, nil
}
