package service

import (
	"context"
	"strings"

	"steamfinder/internal/models"
	"steamfinder/internal/repository"
)

// UserService provides profile and Steam-linking business logic.
type UserService struct {
	userRepo repository.UserRepository
	gameRepo repository.GameRepository
}

// NewUserService returns a new UserService.
func NewUserService(userRepo repository.UserRepository, gameRepo repository.GameRepository) *UserService {
	return &UserService{userRepo: userRepo, gameRepo: gameRepo}
}

// GetProfile returns the user with their game list.
func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByIDWithGames(ctx, userID)
}

// UpdateProfile updates the mutable profile fields.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, bio, avatar *string, skillLevel *int) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if bio != nil {
		user.Bio = *bio
	}
	if avatar != nil {
		user.Avatar = *avatar
	}
	if skillLevel != nil {
		if *skillLevel < 1 {
			return nil, models.NewValidationError("Skill level must be at least 1")
		}
		user.SkillLevel = *skillLevel
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// LinkSteamProfile sets the Steam identifier on the user. Re-linking
// the same ID is a no-op; linking a different ID overwrites. A Steam ID
// already claimed by another user is a conflict.
func (s *UserService) LinkSteamProfile(ctx context.Context, userID uint, steamID string) (*models.User, error) {
	steamID = strings.TrimSpace(steamID)
	if steamID == "" {
		return nil, models.NewValidationError("Steam ID is required")
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.SteamID != nil && *user.SteamID == steamID {
		return user, nil
	}

	owner, err := s.userRepo.GetBySteamID(ctx, steamID)
	if err != nil {
		return nil, err
	}
	if owner != nil && owner.ID != userID {
		return nil, models.NewConflictError("Steam profile is already linked to another user")
	}

	if err := s.userRepo.SetSteamID(ctx, userID, steamID); err != nil {
		return nil, err
	}
	user.SteamID = &steamID
	return user, nil
}

// AddGame registers the user's interest in a game, creating the game
// row on first reference. Adding a game twice is a no-op.
func (s *UserService) AddGame(ctx context.Context, userID uint, gameName string) (*models.Game, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	game, err := s.gameRepo.GetOrCreateByName(ctx, gameName)
	if err != nil {
		return nil, err
	}
	if err := s.gameRepo.AddToUser(ctx, userID, game); err != nil {
		return nil, err
	}
	return game, nil
}

// List returns a page of users, newest first.
func (s *UserService) List(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// SearchGames finds games whose name matches the query, for pickers
// and autocomplete.
func (s *UserService) SearchGames(ctx context.Context, query string, limit int) ([]models.Game, error) {
	if strings.TrimSpace(query) == "" {
		return nil, models.NewValidationError("Search query is required")
	}
	return s.gameRepo.Search(ctx, query, limit)
}

// SearchPlayersByGame finds users who registered interest in a game
// matching the query.
func (s *UserService) SearchPlayersByGame(ctx context.Context, gameName string, limit, offset int) ([]models.User, error) {
	if strings.TrimSpace(gameName) == "" {
		return nil, models.NewValidationError("Game name is required")
	}
	return s.userRepo.SearchByGame(ctx, gameName, limit, offset)
}
