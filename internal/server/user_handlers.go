package server

import (
	"github.com/gofiber/fiber/v2"

	"steamfinder/internal/models"
)

// GetUsers handles GET /api/users
func (s *Server) GetUsers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	users, err := s.userService.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"users": summarizeUsers(users)})
}

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	user, err := s.userService.GetProfile(c.Context(), currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Bio        *string `json:"bio"`
		Avatar     *string `json:"avatar"`
		SkillLevel *int    `json:"skill_level"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.UpdateProfile(c.Context(), currentUserID(c), req.Bio, req.Avatar, req.SkillLevel)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// GetUserProfile handles GET /api/users/:id
func (s *Server) GetUserProfile(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	user, err := s.userService.GetProfile(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// LinkSteamProfile handles POST /api/users/me/steam
func (s *Server) LinkSteamProfile(c *fiber.Ctx) error {
	var req struct {
		SteamID string `json:"steam_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.LinkSteamProfile(c.Context(), currentUserID(c), req.SteamID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(user)
}

// AddGame handles POST /api/users/me/games
func (s *Server) AddGame(c *fiber.Ctx) error {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	game, err := s.userService.AddGame(c.Context(), currentUserID(c), req.Name)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(game)
}

// SearchPlayers handles GET /api/players/search?game=...
func (s *Server) SearchPlayers(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	users, err := s.userService.SearchPlayersByGame(c.Context(), c.Query("game"), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"players": summarizeUsers(users)})
}

// SearchGames handles GET /api/games/search?q=...
func (s *Server) SearchGames(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	games, err := s.userService.SearchGames(c.Context(), c.Query("q"), page.Limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"games": games})
}

// GetUserStats handles GET /api/users/:id/stats
func (s *Server) GetUserStats(c *fiber.Ctx) error {
	userID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	stats, err := s.statsService.Get(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(stats)
}
