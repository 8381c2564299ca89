package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"steamfinder/internal/models"
)

type tournamentRepoStub struct {
	createFn       func(context.Context, *models.Tournament) error
	getByIDFn      func(context.Context, uint) (*models.Tournament, error)
	listFn         func(context.Context, int, int) ([]models.Tournament, error)
	listAllFn      func(context.Context) ([]models.Tournament, error)
	joinFn         func(context.Context, uint, uint) (bool, error)
	rosterFn       func(context.Context, uint) ([]models.User, error)
	updateStatusFn func(context.Context, uint, models.TournamentStatus) error
}

func (s *tournamentRepoStub) Create(ctx context.Context, tournament *models.Tournament) error {
	return s.createFn(ctx, tournament)
}
func (s *tournamentRepoStub) GetByID(ctx context.Context, id uint) (*models.Tournament, error) {
	return s.getByIDFn(ctx, id)
}
func (s *tournamentRepoStub) List(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	return s.listFn(ctx, limit, offset)
}
func (s *tournamentRepoStub) ListAll(ctx context.Context) ([]models.Tournament, error) {
	return s.listAllFn(ctx)
}
func (s *tournamentRepoStub) Join(ctx context.Context, tournamentID, userID uint) (bool, error) {
	return s.joinFn(ctx, tournamentID, userID)
}
func (s *tournamentRepoStub) Roster(ctx context.Context, tournamentID uint) ([]models.User, error) {
	return s.rosterFn(ctx, tournamentID)
}
func (s *tournamentRepoStub) UpdateStatus(ctx context.Context, tournamentID uint, status models.TournamentStatus) error {
	return s.updateStatusFn(ctx, tournamentID, status)
}

func noopTournamentRepo() *tournamentRepoStub {
	return &tournamentRepoStub{
		createFn: func(context.Context, *models.Tournament) error { return nil },
		getByIDFn: func(_ context.Context, id uint) (*models.Tournament, error) {
			return &models.Tournament{
				ID:         id,
				StartTime:  time.Now().UTC().Add(24 * time.Hour),
				EndTime:    time.Now().UTC().Add(48 * time.Hour),
				MaxPlayers: 16,
				Status:     models.TournamentStatusUpcoming,
			}, nil
		},
		listFn:         func(context.Context, int, int) ([]models.Tournament, error) { return nil, nil },
		listAllFn:      func(context.Context) ([]models.Tournament, error) { return nil, nil },
		joinFn:         func(context.Context, uint, uint) (bool, error) { return true, nil },
		rosterFn:       func(context.Context, uint) ([]models.User, error) { return nil, nil },
		updateStatusFn: func(context.Context, uint, models.TournamentStatus) error { return nil },
	}
}

func newTournamentService(repo *tournamentRepoStub) *TournamentService {
	return NewTournamentService(repo, noopUserRepo(), noopGameRepo())
}

func TestTournamentServiceCreateWindowValidation(t *testing.T) {
	svc := newTournamentService(noopTournamentRepo())
	start := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	_, err := svc.Create(context.Background(), "Weekly Cup", "Dota 2", start, start, 16)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")

	_, err = svc.Create(context.Background(), "Weekly Cup", "Dota 2", start, start.Add(-time.Hour), 16)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestTournamentServiceJoinCompleted(t *testing.T) {
	repo := noopTournamentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Tournament, error) {
		return &models.Tournament{
			ID:        id,
			StartTime: time.Now().UTC().Add(-48 * time.Hour),
			EndTime:   time.Now().UTC().Add(-24 * time.Hour),
		}, nil
	}

	svc := newTournamentService(repo)
	_, err := svc.Join(context.Background(), 1, 3)
	assertAppErrorCode(t, err, "VALIDATION_ERROR")
}

func TestTournamentServiceJoinFull(t *testing.T) {
	repo := noopTournamentRepo()
	repo.joinFn = func(context.Context, uint, uint) (bool, error) {
		return false, models.NewCapacityError("Tournament is full")
	}

	svc := newTournamentService(repo)
	_, err := svc.Join(context.Background(), 1, 3)
	assertAppErrorCode(t, err, "CAPACITY")
}

func TestTournamentServiceJoinDuplicateNoOp(t *testing.T) {
	repo := noopTournamentRepo()
	repo.joinFn = func(context.Context, uint, uint) (bool, error) { return false, nil }

	svc := newTournamentService(repo)
	joined, err := svc.Join(context.Background(), 1, 3)
	if err != nil {
		t.Fatalf("rejoining must not fail: %v", err)
	}
	if joined {
		t.Fatal("rejoining must not report a new entry")
	}
}

func TestTournamentServiceGetDerivesStatus(t *testing.T) {
	repo := noopTournamentRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.Tournament, error) {
		return &models.Tournament{
			ID:        id,
			StartTime: time.Now().UTC().Add(-time.Hour),
			EndTime:   time.Now().UTC().Add(time.Hour),
			Status:    models.TournamentStatusUpcoming, // stale stored value
		}, nil
	}

	svc := newTournamentService(repo)
	tournament, err := svc.Get(context.Background(), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tournament.Status != models.TournamentStatusActive {
		t.Fatalf("expected derived active status, got %s", tournament.Status)
	}
}

func TestTournamentServiceRefreshStatusesContinuesPastFailure(t *testing.T) {
	now := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
	repo := noopTournamentRepo()
	repo.listAllFn = func(context.Context) ([]models.Tournament, error) {
		return []models.Tournament{
			{ID: 1, StartTime: now.Add(-48 * time.Hour), EndTime: now.Add(-24 * time.Hour), Status: models.TournamentStatusActive},
			{ID: 2, StartTime: now.Add(-time.Hour), EndTime: now.Add(time.Hour), Status: models.TournamentStatusUpcoming},
			{ID: 3, StartTime: now.Add(time.Hour), EndTime: now.Add(2 * time.Hour), Status: models.TournamentStatusUpcoming},
		}, nil
	}
	var updated []uint
	repo.updateStatusFn = func(_ context.Context, id uint, status models.TournamentStatus) error {
		if id == 1 {
			return errors.New("write failed")
		}
		updated = append(updated, id)
		if id == 2 && status != models.TournamentStatusActive {
			t.Fatalf("expected tournament 2 flipped to active, got %s", status)
		}
		return nil
	}

	svc := newTournamentService(repo)
	if err := svc.RefreshStatuses(context.Background(), now); err != nil {
		t.Fatalf("a single failed update must not abort the pass: %v", err)
	}
	if len(updated) != 1 || updated[0] != 2 {
		t.Fatalf("expected only the drifted tournament 2 updated, got %v", updated)
	}
}
