package service

import (
	"context"
	"strings"
	"time"

	"steamfinder/internal/models"
	"steamfinder/internal/repository"
)

// MessageService provides direct-message business logic.
type MessageService struct {
	messageRepo repository.MessageRepository
	userRepo    repository.UserRepository
	groupRepo   repository.GroupRepository
}

// NewMessageService returns a new MessageService.
func NewMessageService(messageRepo repository.MessageRepository, userRepo repository.UserRepository, groupRepo repository.GroupRepository) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		userRepo:    userRepo,
		groupRepo:   groupRepo,
	}
}

// Send appends a message to the log. Given a valid sender and recipient
// it always succeeds; durability is the only delivery guarantee.
func (s *MessageService) Send(ctx context.Context, senderID, recipientID uint, body string, groupID *uint) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Message body is required")
	}
	if senderID == recipientID {
		return nil, models.NewValidationError("Cannot message yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, recipientID); err != nil {
		return nil, err
	}
	if groupID != nil {
		member, err := s.groupRepo.IsMember(ctx, *groupID, senderID)
		if err != nil {
			return nil, err
		}
		if !member {
			return nil, models.NewUnauthorizedError("You must be a group member to post there")
		}
	}

	message := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		GroupID:     groupID,
		Body:        body,
	}
	if err := s.messageRepo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

// Inbox returns messages addressed to the user, newest first.
func (s *MessageService) Inbox(ctx context.Context, userID uint, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.GetInbox(ctx, userID, limit, offset)
}

// Conversation returns the message history between two users.
func (s *MessageService) Conversation(ctx context.Context, userID, otherID uint, limit, offset int) ([]models.Message, error) {
	return s.messageRepo.GetConversation(ctx, userID, otherID, limit, offset)
}

// MarkRead flags a message as read. Only the recipient may do so.
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID uint) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.RecipientID != userID {
		return nil, models.NewUnauthorizedError("You can only mark your own messages as read")
	}
	if message.IsRead {
		return message, nil
	}

	now := time.Now().UTC()
	if err := s.messageRepo.MarkRead(ctx, messageID, now); err != nil {
		return nil, err
	}
	message.IsRead = true
	message.ReadAt = &now
	return message, nil
}

// Edit replaces the body of a message. Only the sender may edit, and the
// message is flagged as edited.
func (s *MessageService) Edit(ctx context.Context, userID, messageID uint, body string) (*models.Message, error) {
	if strings.TrimSpace(body) == "" {
		return nil, models.NewValidationError("Message body is required")
	}

	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		return nil, err
	}
	if message.SenderID != userID {
		return nil, models.NewUnauthorizedError("You can only edit your own messages")
	}

	if err := s.messageRepo.UpdateBody(ctx, messageID, body); err != nil {
		return nil, err
	}
	message.Body = body
	message.IsEdited = true
	return message, nil
}

// PurgeOld deletes messages created strictly before now-retention and
// returns how many were removed.
func (s *MessageService) PurgeOld(ctx context.Context, retention time.Duration, now time.Time) (int64, error) {
	return s.messageRepo.PurgeOlderThan(ctx, now.Add(-retention))
}
