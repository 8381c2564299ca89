package service

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"steamfinder/internal/middleware"
	"steamfinder/internal/models"
	"steamfinder/internal/repository"
)

// TournamentService provides tournament roster and status business logic.
type TournamentService struct {
	tournamentRepo repository.TournamentRepository
	userRepo       repository.UserRepository
	gameRepo       repository.GameRepository
}

// NewTournamentService returns a new TournamentService.
func NewTournamentService(tournamentRepo repository.TournamentRepository, userRepo repository.UserRepository, gameRepo repository.GameRepository) *TournamentService {
	return &TournamentService{
		tournamentRepo: tournamentRepo,
		userRepo:       userRepo,
		gameRepo:       gameRepo,
	}
}

// Create schedules a new tournament.
func (s *TournamentService) Create(ctx context.Context, name string, gameName string, start, end time.Time, maxPlayers int) (*models.Tournament, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, models.NewValidationError("Tournament name is required")
	}
	if !end.After(start) {
		return nil, models.NewValidationError("Tournament end time must be after start time")
	}
	if maxPlayers < 2 {
		return nil, models.NewValidationError("Tournament needs room for at least 2 players")
	}

	tournament := &models.Tournament{
		Name:       name,
		StartTime:  start,
		EndTime:    end,
		MaxPlayers: maxPlayers,
	}
	if gameName != "" {
		game, err := s.gameRepo.GetOrCreateByName(ctx, gameName)
		if err != nil {
			return nil, err
		}
		tournament.GameID = &game.ID
	}
	tournament.Status = models.DeriveTournamentStatus(tournament, time.Now().UTC())

	if err := s.tournamentRepo.Create(ctx, tournament); err != nil {
		return nil, err
	}
	return tournament, nil
}

// Get returns a tournament with its status derived from the clock, not
// from the stored column.
func (s *TournamentService) Get(ctx context.Context, tournamentID uint) (*models.Tournament, error) {
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	tournament.Status = models.DeriveTournamentStatus(tournament, time.Now().UTC())
	return tournament, nil
}

// List returns tournaments ordered by start time, statuses derived.
func (s *TournamentService) List(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	tournaments, err := s.tournamentRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range tournaments {
		tournaments[i].Status = models.DeriveTournamentStatus(&tournaments[i], now)
	}
	return tournaments, nil
}

// Join adds the user to the tournament roster. Completed tournaments
// reject joins; capacity is enforced inside the repository transaction;
// duplicate joins are idempotent no-ops.
func (s *TournamentService) Join(ctx context.Context, userID, tournamentID uint) (joined bool, err error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return false, err
	}
	tournament, err := s.tournamentRepo.GetByID(ctx, tournamentID)
	if err != nil {
		return false, err
	}
	if models.DeriveTournamentStatus(tournament, time.Now().UTC()) == models.TournamentStatusCompleted {
		return false, models.NewValidationError("Tournament has already completed")
	}

	return s.tournamentRepo.Join(ctx, tournamentID, userID)
}

// Roster returns the tournament participants.
func (s *TournamentService) Roster(ctx context.Context, tournamentID uint) ([]models.User, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		return nil, err
	}
	return s.tournamentRepo.Roster(ctx, tournamentID)
}

// RefreshStatuses persists the derived status for every tournament
// whose stored status has drifted. Called by the scheduler; a failed
// update is logged and the pass continues.
func (s *TournamentService) RefreshStatuses(ctx context.Context, now time.Time) error {
	tournaments, err := s.tournamentRepo.ListAll(ctx)
	if err != nil {
		return err
	}
	for i := range tournaments {
		derived := models.DeriveTournamentStatus(&tournaments[i], now)
		if derived == tournaments[i].Status {
			continue
		}
		if err := s.tournamentRepo.UpdateStatus(ctx, tournaments[i].ID, derived); err != nil {
			middleware.Logger.WarnContext(ctx, "tournament status refresh failed",
				slog.Any("tournament_id", tournaments[i].ID),
				slog.String("error", err.Error()),
			)
		}
	}
	return nil
}
