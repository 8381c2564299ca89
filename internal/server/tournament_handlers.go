package server

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"steamfinder/internal/models"
)

// CreateTournament handles POST /api/tournaments
func (s *Server) CreateTournament(c *fiber.Ctx) error {
	var req struct {
		Name       string    `json:"name"`
		Game       string    `json:"game"`
		StartTime  time.Time `json:"start_time"`
		EndTime    time.Time `json:"end_time"`
		MaxPlayers int       `json:"max_players"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.MaxPlayers == 0 {
		req.MaxPlayers = 16
	}

	tournament, err := s.tournamentService.Create(c.Context(),
		req.Name, req.Game, req.StartTime, req.EndTime, req.MaxPlayers)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tournament)
}

// GetTournaments handles GET /api/tournaments
func (s *Server) GetTournaments(c *fiber.Ctx) error {
	page := parsePagination(c, 20)
	tournaments, err := s.tournamentService.List(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"tournaments": tournaments})
}

// GetTournament handles GET /api/tournaments/:id
func (s *Server) GetTournament(c *fiber.Ctx) error {
	tournamentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	tournament, err := s.tournamentService.Get(c.Context(), tournamentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(tournament)
}

// JoinTournament handles POST /api/tournaments/:id/join
func (s *Server) JoinTournament(c *fiber.Ctx) error {
	tournamentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	joined, err := s.tournamentService.Join(c.Context(), currentUserID(c), tournamentID)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	if joined {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(fiber.Map{"joined": joined})
}

// GetTournamentRoster handles GET /api/tournaments/:id/roster
func (s *Server) GetTournamentRoster(c *fiber.Ctx) error {
	tournamentID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	roster, err := s.tournamentService.Roster(c.Context(), tournamentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"roster": summarizeUsers(roster)})
}
