package service

import (
	"context"
	"testing"
	"time"

	"steamfinder/internal/models"
)

type eventRepoStub struct {
	createFn       func(context.Context, *models.Event) error
	getByIDFn      func(context.Context, uint) (*models.Event, error)
	listUpcomingFn func(context.Context, int, int) ([]models.Event, error)
	joinFn         func(context.Context, uint, uint) (bool, error)
	participantsFn func(context.Context, uint) ([]models.User, error)
}

func (s *eventRepoStub) Create(ctx context.Context, event *models.Event) error {
	return s.createFn(ctx, event)
}
func (s *eventRepoStub) GetByID(ctx context.Context, id uint) (*models.Event, error) {
	return s.getByIDFn(ctx, id)
}
func (s *eventRepoStub) ListUpcoming(ctx context.Context, limit, offset int) ([]models.Event, error) {
	return s.listUpcomingFn(ctx, limit, offset)
}
func (s *eventRepoStub) Join(ctx context.Context, eventID, userID uint) (bool, error) {
	return s.joinFn(ctx, eventID, userID)
}
func (s *eventRepoStub) Participants(ctx context.Context, eventID uint) ([]models.User, error) {
	return s.participantsFn(ctx, eventID)
}

func noopEventRepo() *eventRepoStub {
	return &eventRepoStub{
		createFn: func(context.Context, *models.Event) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Event, error) {
			return &models.Event{ID: id, StartTime: time.Now().UTC().Add(time.Hour)}, nil
		},
		listUpcomingFn: func(context.Context, int, int) ([]models.Event, error) { return nil, nil },
		joinFn:         func(context.Context, uint, uint) (bool, error) { return true, nil },
		participantsFn: func(context.Context, uint) ([]models.User, error) { return nil, nil },
	}
}

func TestEventCreateRequiresName(t *testing.T) {
	svc := NewEventService(noopEventRepo(), noopUserRepo())

	_, err := svc.Create(context.Background(), "   ", "", "", time.Now().Add(time.Hour))
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestEventCreateRejectsPastStart(t *testing.T) {
	svc := NewEventService(noopEventRepo(), noopUserRepo())

	_, err := svc.Create(context.Background(), "LAN night", "", "Berlin", time.Now().Add(-time.Minute))
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestEventJoinRejectsStartedEvent(t *testing.T) {
	repo := noopEventRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Event, error) {
		return &models.Event{ID: id, StartTime: time.Now().UTC().Add(-time.Hour)}, nil
	}
	svc := NewEventService(repo, noopUserRepo())

	_, err := svc.Join(context.Background(), 5, 1)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestEventJoinAlreadySignedUpIsNoOp(t *testing.T) {
	repo := noopEventRepo()
	repo.joinFn = func(context.Context, uint, uint) (bool, error) { return false, nil }
	svc := NewEventService(repo, noopUserRepo())

	joined, err := svc.Join(context.Background(), 5, 1)
	if err != nil {
		t.Fatalf("repeat signup must not error: %v", err)
	}
	if joined {
		t.Fatal("repeat signup must report joined=false")
	}
}
