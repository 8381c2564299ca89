package repository

import (
	"context"
	"errors"
	"time"

	"steamfinder/internal/models"

	"gorm.io/gorm"
)

// EventRepository defines persistence operations for community events.
type EventRepository interface {
	Create(ctx context.Context, event *models.Event) error
	GetByID(ctx context.Context, id uint) (*models.Event, error)
	ListUpcoming(ctx context.Context, limit, offset int) ([]models.Event, error)
	Join(ctx context.Context, eventID, userID uint) (bool, error)
	Participants(ctx context.Context, eventID uint) ([]models.User, error)
}

type eventRepository struct {
	db *gorm.DB
}

// NewEventRepository returns a new EventRepository implementation.
func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepository{db: db}
}

func (r *eventRepository) Create(ctx context.Context, event *models.Event) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *eventRepository) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Event", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &event, nil
}

// ListUpcoming returns events that have not started yet, soonest first.
func (r *eventRepository) ListUpcoming(ctx context.Context, limit, offset int) ([]models.Event, error) {
	var events []models.Event
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if err := r.db.WithContext(ctx).
		Where("start_time > ?", time.Now().UTC()).
		Order("start_time ASC").
		Limit(limit).
		Offset(offset).
		Find(&events).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return events, nil
}

// Join adds the user to the participant list. Returns false without
// error when the user is already signed up.
func (r *eventRepository) Join(ctx context.Context, eventID, userID uint) (bool, error) {
	var event models.Event
	if err := r.db.WithContext(ctx).First(&event, eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, models.NewNotFoundError("Event", eventID)
		}
		return false, models.NewInternalError(err)
	}

	participant := models.EventParticipant{EventID: eventID, UserID: userID}
	result := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		FirstOrCreate(&participant)
	if result.Error != nil {
		if isUniqueConstraintError(result.Error) {
			return false, nil
		}
		return false, models.NewInternalError(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *eventRepository) Participants(ctx context.Context, eventID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN event_participants ep ON ep.user_id = users.id").
		Where("ep.event_id = ?", eventID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}
