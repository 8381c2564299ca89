package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"steamfinder/internal/models"
)

// CreateEvent handles POST /api/events
func (s *Server) CreateEvent(c *fiber.Ctx) error {
	var req struct {
		Name        string    `json:"name"`
		Description string    `json:"description"`
		Location    string    `json:"location"`
		StartTime   time.Time `json:"start_time"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	event, err := s.eventService.Create(c.Context(), req.Name, req.Description, req.Location, req.StartTime)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(event)
}

// GetEvents handles GET /api/events
func (s *Server) GetEvents(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	events, err := s.eventService.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"events": events})
}

// GetEvent handles GET /api/events/:id
func (s *Server) GetEvent(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	event, err := s.eventService.Get(c.Context(), eventID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(event)
}

// JoinEvent handles POST /api/events/:id/join
func (s *Server) JoinEvent(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	joined, err := s.eventService.Join(c.Context(), eventID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if joined {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"joined": joined})
}

// GetEventParticipants handles GET /api/events/:id/participants
func (s *Server) GetEventParticipants(c *fiber.Ctx) error {
	eventID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	participants, err := s.eventService.Participants(c.Context(), eventID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"participants": summarizeUsers(participants)})
}
