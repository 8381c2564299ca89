package server

import (
	"github.com/gofiber/fiber/v2"

	"steamfinder/internal/models"
)

// CreateGroup handles POST /api/groups
func (s *Server) CreateGroup(c *fiber.Ctx) error {
	var req struct {
		Name          string `json:"name"`
		Description   string `json:"description"`
		IsPrivate     bool   `json:"is_private"`
		MaxMembers    int    `json:"max_members"`
		MinSkillLevel int    `json:"min_skill_level"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.MaxMembers == 0 {
		req.MaxMembers = 50
	}

	group, err := s.groupService.Create(c.Context(), currentUserID(c),
		req.Name, req.Description, req.IsPrivate, req.MaxMembers, req.MinSkillLevel)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(group)
}

// GetGroups handles GET /api/groups
func (s *Server) GetGroups(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	groups, err := s.groupService.List(c.Context(), currentUserID(c), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"groups": groups})
}

// GetGroup handles GET /api/groups/:id
func (s *Server) GetGroup(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	group, err := s.groupService.Get(c.Context(), currentUserID(c), groupID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(group)
}

// JoinGroup handles POST /api/groups/:id/join
func (s *Server) JoinGroup(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	joined, err := s.groupService.Join(c.Context(), currentUserID(c), groupID)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if joined {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"joined": joined})
}

// GetGroupMembers handles GET /api/groups/:id/members
func (s *Server) GetGroupMembers(c *fiber.Ctx) error {
	groupID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	members, err := s.groupService.Members(c.Context(), currentUserID(c), groupID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"members": summarizeUsers(members)})
}
