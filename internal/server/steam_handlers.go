package server

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"steamfinder/internal/models"
)

// SteamLogin handles GET /api/auth/steam and redirects the browser to
// the Steam OpenID login page.
func (s *Server) SteamLogin(c *fiber.Ctx) error {
	return c.Redirect(s.steamClient.LoginURL(), fiber.StatusFound)
}

// SteamCallback handles GET /api/auth/steam/callback. Steam redirects
// here after login; the parameters are replayed back to Steam for
// verification and the verified Steam ID is matched to an account.
func (s *Server) SteamCallback(c *fiber.Ctx) error {
	params := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		params.Add(string(key), string(value))
	})

	steamID, err := s.steamClient.VerifyCallback(c.Context(), params)
	if err != nil {
		return respondServiceError(c, err)
	}

	user, err := s.userRepo.GetBySteamID(c.Context(), steamID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError, err)
	}
	if user == nil {
		// No account carries this Steam ID yet. The client should sign
		// up (or log in) and link it via POST /api/users/me/steam.
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"steam_id": steamID,
			"linked":   false,
		})
	}

	token, err := s.generateToken(user.ID, user.Username)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	return c.JSON(fiber.Map{
		"steam_id": steamID,
		"linked":   true,
		"token":    token,
		"user":     user,
	})
}
