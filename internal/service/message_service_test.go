package service

import (
	"context"
	"testing"
	"time"

	"steamfinder/internal/models"
)

type messageRepoStub struct {
	createFn          func(context.Context, *models.Message) error
	getByIDFn         func(context.Context, uint) (*models.Message, error)
	getInboxFn        func(context.Context, uint, int, int) ([]models.Message, error)
	getConversationFn func(context.Context, uint, uint, int, int) ([]models.Message, error)
	markReadFn        func(context.Context, uint, time.Time) error
	updateBodyFn      func(context.Context, uint, string) error
	purgeOlderThanFn  func(context.Context, time.Time) (int64, error)
}

func (s *messageRepoStub) Create(ctx context.Context, message *models.Message) error {
	return s.createFn(ctx, message)
}
func (s *messageRepoStub) GetByID(ctx context.Context, id uint) (*models.Message, error) {
	return s.getByIDFn(ctx, id)
}
func (s *messageRepoStub) GetInbox(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.getInboxFn(ctx, userID, limit, offset)
}
func (s *messageRepoStub) GetConversation(ctx context.Context, userID1, userID2 uint, limit, offset int) ([]models.Message, error) {
	return s.getConversationFn(ctx, userID1, userID2, limit, offset)
}
func (s *messageRepoStub) MarkRead(ctx context.Context, messageID uint, readAt time.Time) error {
	return s.markReadFn(ctx, messageID, readAt)
}
func (s *messageRepoStub) UpdateBody(ctx context.Context, messageID uint, body string) error {
	return s.updateBodyFn(ctx, messageID, body)
}
func (s *messageRepoStub) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.purgeOlderThanFn(ctx, cutoff)
}

func noopMessageRepo() *messageRepoStub {
	return &messageRepoStub{
		createFn:          func(context.Context, *models.Message) error { return nil },
		getByIDFn:         func(_ context.Context, id uint) (*models.Message, error) { return &models.Message{ID: id}, nil },
		getInboxFn:        func(context.Context, uint, int, int) ([]models.Message, error) { return nil, nil },
		getConversationFn: func(context.Context, uint, uint, int, int) ([]models.Message, error) { return nil, nil },
		markReadFn:        func(context.Context, uint, time.Time) error { return nil },
		updateBodyFn:      func(context.Context, uint, string) error { return nil },
		purgeOlderThanFn:  func(context.Context, time.Time) (int64, error) { return 0, nil },
	}
}

func newMessageService(repo *messageRepoStub) *MessageService {
	return NewMessageService(repo, noopUserRepo(), noopGroupRepo())
}

func TestMessageServiceSendEmptyBody(t *testing.T) {
	svc := newMessageService(noopMessageRepo())
	_, err := svc.Send(context.Background(), 1, 2, "   ", nil)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestMessageServiceSendSelf(t *testing.T) {
	svc := newMessageService(noopMessageRepo())
	_, err := svc.Send(context.Background(), 1, 1, "hey", nil)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestMessageServiceSendRecipientMissing(t *testing.T) {
	users := noopUserRepo()
	users.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		return nil, models.NewNotFoundError("User", id)
	}
	svc := NewMessageService(noopMessageRepo(), users, noopGroupRepo())
	_, err := svc.Send(context.Background(), 1, 99, "hey", nil)
	assertAppErrorCode(t, err, "NOT_FOUND")
}

func TestMessageServiceSendGroupRequiresMembership(t *testing.T) {
	svc := newMessageService(noopMessageRepo())
	groupID := uint(5)
	_, err := svc.Send(context.Background(), 1, 2, "gg", &groupID)
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}

func TestMessageServiceMarkReadRecipientOnly(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Message, error) {
		return &models.Message{ID: 3, SenderID: 1, RecipientID: 2}, nil
	}

	svc := newMessageService(repo)
	_, err := svc.MarkRead(context.Background(), 1, 3)
	assertAppErrorCode(t, err, "UNAUTHORIZED")
}

func TestMessageServiceMarkReadIdempotent(t *testing.T) {
	readAt := time.Now().UTC().Add(-time.Hour)
	repo := noopMessageRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Message, error) {
		return &models.Message{ID: 3, SenderID: 1, RecipientID: 2, IsRead: true, ReadAt: &readAt}, nil
	}
	writes := 0
	repo.markReadFn = func(context.Context, uint, time.Time) error {
		writes++
		return nil
	}

	svc := newMessageService(repo)
	message, err := svc.MarkRead(context.Background(), 2, 3)
	if err != nil {
		t.Fatalf("re-reading must not fail: %v", err)
	}
	if !message.IsRead || message.ReadAt == nil || !message.ReadAt.Equal(readAt) {
		t.Fatal("expected the original read timestamp preserved")
	}
	if writes != 0 {
		t.Fatal("re-reading must not write")
	}
}

func TestMessageServiceEditSenderOnly(t *testing.T) {
	repo := noopMessageRepo()
	repo.getByIDFn = func(context.Context, uint) (*models.Message, error) {
		return &models.Message{ID: 3, SenderID: 1, RecipientID: 2, Body: "before"}, nil
	}

	svc := newMessageService(repo)
	_, err := svc.Edit(context.Background(), 2, 3, "after")
	assertAppErrorCode(t, err, "UNAUTHORIZED")

	message, err := svc.Edit(context.Background(), 1, 3, "after")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if message.Body != "after" || !message.IsEdited {
		t.Fatalf("expected edited message, got body=%q edited=%v", message.Body, message.IsEdited)
	}
}

func TestMessageServicePurgeOldCutoff(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := noopMessageRepo()
	var gotCutoff time.Time
	repo.purgeOlderThanFn = func(_ context.Context, cutoff time.Time) (int64, error) {
		gotCutoff = cutoff
		return 7, nil
	}

	svc := newMessageService(repo)
	purged, err := svc.PurgeOld(context.Background(), models.MessageRetention, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purged != 7 {
		t.Fatalf("expected 7 purged, got %d", purged)
	}
	want := now.Add(-models.MessageRetention)
	if !gotCutoff.Equal(want) {
		t.Fatalf("expected cutoff %v, got %v", want, gotCutoff)
	}
}
