// Package scheduler runs the recurring background maintenance jobs:
// message retention purges, tournament status refreshes, and the stat
// simulator.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"

	"steamfinder/internal/middleware"
	"steamfinder/internal/models"
	"steamfinder/internal/service"
)

const (
	purgeInterval   = time.Hour
	statusInterval  = time.Minute
	statsInterval   = 15 * time.Minute
	jobNamePurge    = "message_purge"
	jobNameStatuses = "tournament_statuses"
	jobNameStats    = "stat_refresh"
)

// Scheduler owns the gocron instance and the job wiring.
type Scheduler struct {
	sched      gocron.Scheduler
	messages   *service.MessageService
	tournament *service.TournamentService
	stats      *service.StatsService
}

// New builds a Scheduler around the given services. Jobs run in
// singleton mode: a tick that fires while the previous run is still in
// flight is skipped rather than stacked.
func New(messages *service.MessageService, tournament *service.TournamentService, stats *service.StatsService) (*Scheduler, error) {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return nil, err
	}
	return &Scheduler{
		sched:      sched,
		messages:   messages,
		tournament: tournament,
		stats:      stats,
	}, nil
}

// Start registers the jobs and starts the scheduler.
func (s *Scheduler) Start() error {
	jobs := []struct {
		name     string
		interval time.Duration
		run      func(ctx context.Context) error
	}{
		{jobNamePurge, purgeInterval, s.runPurge},
		{jobNameStatuses, statusInterval, s.runStatusRefresh},
		{jobNameStats, statsInterval, s.runStatRefresh},
	}

	for _, job := range jobs {
		job := job
		_, err := s.sched.NewJob(
			gocron.DurationJob(job.interval),
			gocron.NewTask(func() {
				ctx := context.Background()
				outcome := "ok"
				if err := job.run(ctx); err != nil {
					outcome = "error"
				}
				middleware.SchedulerRuns.WithLabelValues(job.name, outcome).Inc()
			}),
			gocron.WithName(job.name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			return err
		}
	}

	s.sched.Start()
	middleware.Logger.Info("scheduler started",
		slog.Duration("purge_interval", purgeInterval),
		slog.Duration("status_interval", statusInterval),
		slog.Duration("stats_interval", statsInterval),
	)
	return nil
}

// Shutdown stops the scheduler and waits for running jobs.
func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}

func (s *Scheduler) runPurge(ctx context.Context) error {
	purged, err := s.messages.PurgeOld(ctx, models.MessageRetention, time.Now().UTC())
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "message purge failed", slog.String("error", err.Error()))
		return err
	}
	middleware.MessagesPurged.Add(float64(purged))
	if purged > 0 {
		middleware.Logger.InfoContext(ctx, "purged old messages", slog.Int64("count", purged))
	}
	return nil
}

func (s *Scheduler) runStatusRefresh(ctx context.Context) error {
	if err := s.tournament.RefreshStatuses(ctx, time.Now().UTC()); err != nil {
		middleware.Logger.ErrorContext(ctx, "tournament status refresh failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}

func (s *Scheduler) runStatRefresh(ctx context.Context) error {
	refreshed, err := s.stats.RefreshAll(ctx)
	if err != nil {
		middleware.Logger.ErrorContext(ctx, "stat refresh failed", slog.String("error", err.Error()))
		return err
	}
	middleware.Logger.InfoContext(ctx, "refreshed user stats", slog.Int("users", refreshed))
	return nil
}
