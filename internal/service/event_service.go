package service

import (
	"context"
	"strings"
	"time"

	"steamfinder/internal/models"
	"steamfinder/internal/repository"
)

// EventService provides community event business logic.
type EventService struct {
	eventRepo repository.EventRepository
	userRepo  repository.UserRepository
}

// NewEventService returns a new EventService.
func NewEventService(eventRepo repository.EventRepository, userRepo repository.UserRepository) *EventService {
	return &EventService{eventRepo: eventRepo, userRepo: userRepo}
}

// Create schedules a new event. The start time must lie in the future.
func (s *EventService) Create(ctx context.Context, name, description, location string, startTime time.Time) (*models.Event, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Event name is required")
	}
	if !startTime.After(time.Now().UTC()) {
		return nil, models.NewValidationError("Event start time must be in the future")
	}

	event := &models.Event{
		Name:        name,
		Description: description,
		Location:    location,
		StartTime:   startTime.UTC(),
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List returns upcoming events, soonest first.
func (s *EventService) List(ctx context.Context, limit, offset int) ([]models.Event, error) {
	return s.eventRepo.ListUpcoming(ctx, limit, offset)
}

// Get returns a single event by ID.
func (s *EventService) Get(ctx context.Context, id uint) (*models.Event, error) {
	return s.eventRepo.GetByID(ctx, id)
}

// Join signs the user up for an event that has not started yet.
// Returns false when they were already signed up.
func (s *EventService) Join(ctx context.Context, eventID, userID uint) (bool, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return false, err
	}
	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		return false, err
	}
	if !event.StartTime.After(time.Now().UTC()) {
		return false, models.NewValidationError("Event has already started")
	}
	return s.eventRepo.Join(ctx, eventID, userID)
}

// Participants returns everyone signed up for the event.
func (s *EventService) Participants(ctx context.Context, eventID uint) ([]models.User, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.eventRepo.Participants(ctx, eventID)
}
