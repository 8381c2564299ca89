package repository

import (
	"context"
	"errors"

	"steamfinder/internal/cache"
	"steamfinder/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TournamentRepository defines persistence operations for tournaments
// and their participant rosters.
type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id uint) (*models.Tournament, error)
	List(ctx context.Context, limit, offset int) ([]models.Tournament, error)
	ListAll(ctx context.Context) ([]models.Tournament, error)
	Join(ctx context.Context, tournamentID, userID uint) (bool, error)
	Roster(ctx context.Context, tournamentID uint) ([]models.User, error)
	UpdateStatus(ctx context.Context, tournamentID uint, status models.TournamentStatus) error
}

type tournamentRepository struct {
	db *gorm.DB
}

// NewTournamentRepository returns a new TournamentRepository implementation.
func NewTournamentRepository(db *gorm.DB) TournamentRepository {
	return &tournamentRepository{db: db}
}

func (r *tournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	if err := r.db.WithContext(ctx).Create(tournament).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *tournamentRepository) GetByID(ctx context.Context, id uint) (*models.Tournament, error) {
	var tournament models.Tournament
	err := cache.Aside(ctx, cache.TournamentKey(id), &tournament, cache.TournamentTTL, func() error {
		if err := r.db.WithContext(ctx).Preload("Game").First(&tournament, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Tournament", id)
			}
			return models.NewInternalError(err)
		}

		var count int64
		if err := r.db.WithContext(ctx).
			Model(&models.TournamentParticipant{}).
			Where("tournament_id = ?", id).
			Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		tournament.PlayerCount = count
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &tournament, nil
}

func (r *tournamentRepository) List(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if err := r.db.WithContext(ctx).
		Order("start_time").
		Limit(limit).
		Offset(offset).
		Find(&tournaments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tournaments, nil
}

// ListAll returns every tournament; used by the status refresh job.
func (r *tournamentRepository) ListAll(ctx context.Context) ([]models.Tournament, error) {
	var tournaments []models.Tournament
	if err := r.db.WithContext(ctx).Find(&tournaments).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return tournaments, nil
}

// Join appends the user to the roster. Capacity is checked under a row
// lock in the same transaction as the insert; duplicate joins are
// idempotent no-ops and return false.
func (r *tournamentRepository) Join(ctx context.Context, tournamentID, userID uint) (bool, error) {
	joined := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tournament models.Tournament
		q := tx
		// Row lock is PostgreSQL-only; sqlite (tests) serializes writers anyway.
		if tx.Dialector.Name() == "postgres" {
			q = tx.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		if err := q.First(&tournament, tournamentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Tournament", tournamentID)
			}
			return models.NewInternalError(err)
		}

		var existing int64
		if err := tx.Model(&models.TournamentParticipant{}).
			Where("tournament_id = ? AND user_id = ?", tournamentID, userID).
			Count(&existing).Error; err != nil {
			return models.NewInternalError(err)
		}
		if existing > 0 {
			return nil // already on the roster, idempotent no-op
		}

		var players int64
		if err := tx.Model(&models.TournamentParticipant{}).
			Where("tournament_id = ?", tournamentID).
			Count(&players).Error; err != nil {
			return models.NewInternalError(err)
		}
		if players >= int64(tournament.MaxPlayers) {
			return models.NewCapacityError("Tournament roster is full")
		}

		participant := models.TournamentParticipant{TournamentID: tournamentID, UserID: userID}
		if err := tx.Create(&participant).Error; err != nil {
			if isUniqueConstraintError(err) {
				return nil
			}
			return models.NewInternalError(err)
		}
		joined = true
		return nil
	})
	if err != nil {
		return false, err
	}
	if joined {
		cache.Invalidate(ctx, cache.TournamentKey(tournamentID))
	}
	return joined, nil
}

func (r *tournamentRepository) Roster(ctx context.Context, tournamentID uint) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).
		Table("users").
		Joins("JOIN tournament_participants tp ON tp.user_id = users.id").
		Where("tp.tournament_id = ?", tournamentID).
		Find(&users).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return users, nil
}

func (r *tournamentRepository) UpdateStatus(ctx context.Context, tournamentID uint, status models.TournamentStatus) error {
	if err := r.db.WithContext(ctx).
		Model(&models.Tournament{}).
		Where("id = ?", tournamentID).
		Update("status", status).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.Invalidate(ctx, cache.TournamentKey(tournamentID))
	return nil
}
