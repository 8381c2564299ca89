// Package service implements the business rules of the relationship store.
package service

import (
	"context"

	"steamfinder/internal/models"
	"steamfinder/internal/repository"
)

// FriendService provides friend-request and friendship business logic.
type FriendService struct {
	friendRepo repository.FriendRepository
	userRepo   repository.UserRepository
}

// NewFriendService returns a new FriendService.
func NewFriendService(friendRepo repository.FriendRepository, userRepo repository.UserRepository) *FriendService {
	return &FriendService{
		friendRepo: friendRepo,
		userRepo:   userRepo,
	}
}

// SendFriendRequest sends a friend request to the target user. When a
// pending or accepted relation already exists the call is a no-op: the
// existing edge is returned with alreadyExists set, never an error and
// never a duplicate notification.
func (s *FriendService) SendFriendRequest(ctx context.Context, userID, targetUserID uint) (friendship *models.Friendship, alreadyExists bool, err error) {
	if userID == targetUserID {
		return nil, false, models.NewValidationError("Cannot send friend request to yourself")
	}

	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return nil, false, err
	}

	existing, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, true, nil
	}

	friendship = &models.Friendship{
		RequesterID: userID,
		AddresseeID: targetUserID,
		Status:      models.FriendshipStatusPending,
	}
	if err := s.friendRepo.Create(ctx, friendship); err != nil {
		return nil, false, err
	}

	created, err := s.friendRepo.GetByID(ctx, friendship.ID)
	if err != nil {
		return nil, false, err
	}
	return created, false, nil
}

// GetPendingRequests returns pending friend requests for the user.
func (s *FriendService) GetPendingRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friendRepo.GetPendingRequests(ctx, userID)
}

// GetSentRequests returns friend requests sent by the user.
func (s *FriendService) GetSentRequests(ctx context.Context, userID uint) ([]models.Friendship, error) {
	return s.friendRepo.GetSentRequests(ctx, userID)
}

// AcceptFriendRequest accepts a pending friend request. Only the
// addressee may accept. The single edge flips to accepted; symmetry
// comes from querying the edge from either endpoint, so no reciprocal
// row is written.
func (s *FriendService) AcceptFriendRequest(ctx context.Context, userID, requestID uint) (*models.Friendship, error) {
	friendship, err := s.friendRepo.GetByID(ctx, requestID)
	if err != nil {
		return nil, err
	}

	if friendship.AddresseeID != userID {
		return nil, models.NewUnauthorizedError("You can only accept friend requests sent to you")
	}
	if friendship.Status != models.FriendshipStatusPending {
		return nil, models.NewValidationError("Friend request is not pending")
	}

	if err := s.friendRepo.UpdateStatus(ctx, requestID, models.FriendshipStatusAccepted); err != nil {
		return nil, err
	}

	return s.friendRepo.GetByID(ctx, requestID)
}

// DeclineFriendRequest removes the pending request from requesterID to
// userID. Declining a request that is not there is a no-op, so a double
// decline never fails. The pair can request again later; decline is not
// a block.
func (s *FriendService) DeclineFriendRequest(ctx context.Context, userID, requesterID uint) error {
	return s.friendRepo.DeletePending(ctx, requesterID, userID)
}

// GetFriends returns the list of friends for the user.
func (s *FriendService) GetFriends(ctx context.Context, userID uint) ([]models.User, error) {
	return s.friendRepo.GetFriends(ctx, userID)
}

// IsFriend reports whether an accepted friendship exists between the
// two users, in either direction.
func (s *FriendService) IsFriend(ctx context.Context, userID, otherID uint) (bool, error) {
	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, otherID)
	if err != nil {
		return false, err
	}
	return friendship != nil && friendship.Status == models.FriendshipStatusAccepted, nil
}

// GetFriendshipStatus returns the friendship status between two users.
func (s *FriendService) GetFriendshipStatus(ctx context.Context, userID, targetUserID uint) (string, uint, error) {
	if _, err := s.userRepo.GetByID(ctx, targetUserID); err != nil {
		return "", 0, err
	}

	friendship, err := s.friendRepo.GetFriendshipBetweenUsers(ctx, userID, targetUserID)
	if err != nil {
		return "", 0, err
	}

	status := "none"
	var requestID uint
	if friendship != nil {
		switch friendship.Status {
		case models.FriendshipStatusAccepted:
			status = "friends"
		case models.FriendshipStatusPending:
			requestID = friendship.ID
			if friendship.RequesterID == userID {
				status = "pending_sent"
			} else {
				status = "pending_received"
			}
		default:
			status = string(friendship.Status)
		}
	}

	return status, requestID, nil
}
