package service

import (
	"context"
	"log/slog"
	"math/rand"

	"steamfinder/internal/middleware"
	"steamfinder/internal/models"
	"steamfinder/internal/repository"
)

// StatsFetcher produces fresh play statistics for a user. The default
// implementation simulates an upstream stats API; tests and future
// integrations substitute their own.
type StatsFetcher func(ctx context.Context, userID uint) (*models.UserStats, error)

// Achievement thresholds checked after every stat refresh.
var statAchievements = []struct {
	title  string
	earned func(s *models.UserStats) bool
}{
	{"Centurion", func(s *models.UserStats) bool { return s.MatchesWon >= 100 }},
	{"Marathon Gamer", func(s *models.UserStats) bool { return s.HoursPlayed >= 1000 }},
	{"Iron Will", func(s *models.UserStats) bool { return s.MatchesLost >= 250 }},
}

// StatsService refreshes per-user play statistics on a schedule and
// unlocks achievements when thresholds are crossed.
type StatsService struct {
	statsRepo       repository.StatsRepository
	achievementRepo repository.AchievementRepository
	fetch           StatsFetcher
}

// NewStatsService returns a new StatsService. A nil fetcher gets the
// built-in simulator; a nil achievement repository disables unlocks.
func NewStatsService(statsRepo repository.StatsRepository, achievementRepo repository.AchievementRepository, fetch StatsFetcher) *StatsService {
	if fetch == nil {
		fetch = simulateStats
	}
	return &StatsService{statsRepo: statsRepo, achievementRepo: achievementRepo, fetch: fetch}
}

// Get returns the stored statistics for a user.
func (s *StatsService) Get(ctx context.Context, userID uint) (*models.UserStats, error) {
	return s.statsRepo.GetByUserID(ctx, userID)
}

// RefreshAll fetches and stores fresh statistics for every user. A
// failure for one user is logged and the batch continues; the previous
// values for that user stand. Returns how many users were refreshed.
func (s *StatsService) RefreshAll(ctx context.Context) (int, error) {
	ids, err := s.statsRepo.ListUserIDs(ctx)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, id := range ids {
		stats, err := s.fetch(ctx, id)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "stat refresh failed for user",
				slog.Any("user_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		stats.UserID = id
		if err := s.statsRepo.Upsert(ctx, stats); err != nil {
			middleware.Logger.WarnContext(ctx, "stat upsert failed for user",
				slog.Any("user_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		s.unlockAchievements(ctx, id, stats)
		refreshed++
	}
	return refreshed, nil
}

// Achievements returns the titles the user has unlocked so far.
func (s *StatsService) Achievements(ctx context.Context, userID uint) ([]models.Achievement, error) {
	return s.achievementRepo.ListForUser(ctx, userID)
}

// unlockAchievements grants any newly crossed thresholds. Grant failures
// are logged and never fail the refresh.
func (s *StatsService) unlockAchievements(ctx context.Context, userID uint, stats *models.UserStats) {
	if s.achievementRepo == nil {
		return
	}
	for _, a := range statAchievements {
		if !a.earned(stats) {
			continue
		}
		granted, err := s.achievementRepo.GrantOnce(ctx, userID, a.title)
		if err != nil {
			middleware.Logger.WarnContext(ctx, "achievement grant failed",
				slog.Any("user_id", userID),
				slog.String("title", a.title),
				slog.String("error", err.Error()),
			)
			continue
		}
		if granted {
			middleware.Logger.InfoContext(ctx, "achievement unlocked",
				slog.Any("user_id", userID),
				slog.String("title", a.title),
			)
		}
	}
}

// simulateStats stands in for a real stats API while none is wired up.
func simulateStats(_ context.Context, userID uint) (*models.UserStats, error) {
	won := rand.Intn(200)
	lost := rand.Intn(200)
	return &models.UserStats{
		UserID:      userID,
		HoursPlayed: rand.Intn(2000),
		MatchesWon:  won,
		MatchesLost: lost,
	}, nil
}
