package server

import (
	"github.com/gofiber/fiber/v2"

	"steamfinder/internal/models"
)

// CreateReview handles POST /api/users/:id/reviews
func (s *Server) CreateReview(c *fiber.Ctx) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Rating int    `json:"rating"`
		Body   string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	review, err := s.reviewService.Create(c.Context(), currentUserID(c), subjectID, req.Rating, req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

// GetUserReviews handles GET /api/users/:id/reviews
func (s *Server) GetUserReviews(c *fiber.Ctx) error {
	subjectID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 20)
	reviews, err := s.reviewService.ListForUser(c.Context(), subjectID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"reviews": reviews})
}

// GetUserAchievements handles GET /api/users/:id/achievements
func (s *Server) GetUserAchievements(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	achievements, err := s.statsService.Achievements(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"achievements": achievements})
}
