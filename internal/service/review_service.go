package service

import (
	"context"
	"strings"

	"steamfinder/internal/models"
	"steamfinder/internal/repository"
)

// ReviewService provides player review business logic.
type ReviewService struct {
	reviewRepo repository.ReviewRepository
	userRepo   repository.UserRepository
}

// NewReviewService returns a new ReviewService.
func NewReviewService(reviewRepo repository.ReviewRepository, userRepo repository.UserRepository) *ReviewService {
	return &ReviewService{reviewRepo: reviewRepo, userRepo: userRepo}
}

// Create leaves a review about another player. Ratings run 1 to 5 and
// self-reviews are rejected.
func (s *ReviewService) Create(ctx context.Context, authorID, subjectID uint, rating int, body string) (*models.Review, error) {
	if authorID == subjectID {
		return nil, models.NewValidationError("You cannot review yourself")
	}
	if rating < 1 || rating > 5 {
		return nil, models.NewValidationError("Rating must be between 1 and 5")
	}

	if _, err := s.userRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}

	review := &models.Review{
		AuthorID:  authorID,
		SubjectID: subjectID,
		Rating:    rating,
		Body:      strings.TrimSpace(body),
	}
	if err := s.reviewRepo.Create(ctx, review); err != nil {
		return nil, err
	}
	return review, nil
}

// ListForUser returns reviews written about the given player, newest first.
func (s *ReviewService) ListForUser(ctx context.Context, subjectID uint, limit, offset int) ([]models.Review, error) {
	if _, err := s.userRepo.GetByID(ctx, subjectID); err != nil {
		return nil, err
	}
	return s.reviewRepo.ListForSubject(ctx, subjectID, limit, offset)
}
