package server

import (
	"github.com/gofiber/fiber/v2"

	"steamfinder/internal/models"
)

// SendMessage handles POST /api/messages
func (s *Server) SendMessage(c *fiber.Ctx) error {
	var req struct {
		RecipientID uint   `json:"recipient_id"`
		Body        string `json:"body"`
		GroupID     *uint  `json:"group_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Send(c.Context(), currentUserID(c), req.RecipientID, req.Body, req.GroupID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(message)
}

// GetInbox handles GET /api/messages
func (s *Server) GetInbox(c *fiber.Ctx) error {
	page := parsePagination(c, 50)
	messages, err := s.messageService.Inbox(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// GetConversation handles GET /api/messages/conversation/:userId
func (s *Server) GetConversation(c *fiber.Ctx) error {
	otherID, err := s.parseID(c, "userId")
	if err != nil {
		return nil
	}

	page := parsePagination(c, 50)
	messages, err := s.messageService.Conversation(c.Context(), currentUserID(c), otherID, page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// MarkMessageRead handles POST /api/messages/:id/read
func (s *Server) MarkMessageRead(c *fiber.Ctx) error {
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	message, err := s.messageService.MarkRead(c.Context(), currentUserID(c), messageID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(message)
}

// EditMessage handles PUT /api/messages/:id
func (s *Server) EditMessage(c *fiber.Ctx) error {
	messageID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Body string `json:"body"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	message, err := s.messageService.Edit(c.Context(), currentUserID(c), messageID, req.Body)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(message)
}
