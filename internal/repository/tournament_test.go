package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"steamfinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTournamentRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTournamentRepository(db)
	ctx := context.Background()

	p1 := createTestUser(t, db, "t_p1")
	p2 := createTestUser(t, db, "t_p2")
	p3 := createTestUser(t, db, "t_p3")

	tournament := &models.Tournament{
		Name:       "Duo Cup",
		StartTime:  time.Now().UTC().Add(24 * time.Hour),
		EndTime:    time.Now().UTC().Add(48 * time.Hour),
		MaxPlayers: 2,
		Status:     models.TournamentStatusUpcoming,
	}

	t.Run("Create", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, tournament))
		require.NotZero(t, tournament.ID)
	})

	t.Run("Join Fills Roster", func(t *testing.T) {
		joined, err := repo.Join(ctx, tournament.ID, p1.ID)
		require.NoError(t, err)
		assert.True(t, joined)

		joined, err = repo.Join(ctx, tournament.ID, p2.ID)
		require.NoError(t, err)
		assert.True(t, joined)
	})

	t.Run("Duplicate Join Is NoOp", func(t *testing.T) {
		joined, err := repo.Join(ctx, tournament.ID, p1.ID)
		require.NoError(t, err)
		assert.False(t, joined)

		roster, err := repo.Roster(ctx, tournament.ID)
		require.NoError(t, err)
		assert.Len(t, roster, 2)
	})

	t.Run("Join Full Tournament Fails With Capacity", func(t *testing.T) {
		_, err := repo.Join(ctx, tournament.ID, p3.ID)
		require.Error(t, err)
		var appErr *models.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "CAPACITY", appErr.Code)

		roster, rerr := repo.Roster(ctx, tournament.ID)
		require.NoError(t, rerr)
		assert.Len(t, roster, 2, "failed join must not exceed max players")
	})

	t.Run("GetByID Includes PlayerCount", func(t *testing.T) {
		got, err := repo.GetByID(ctx, tournament.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(2), got.PlayerCount)
	})

	t.Run("UpdateStatus", func(t *testing.T) {
		require.NoError(t, repo.UpdateStatus(ctx, tournament.ID, models.TournamentStatusActive))
		got, err := repo.GetByID(ctx, tournament.ID)
		require.NoError(t, err)
		assert.Equal(t, models.TournamentStatusActive, got.Status)
	})
}

func TestTournamentRepositoryConcurrentJoins(t *testing.T) {
	db := setupTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// One connection keeps every writer on the same in-memory database;
	// on postgres the row lock in Join serializes them instead.
	sqlDB.SetMaxOpenConns(1)

	repo := NewTournamentRepository(db)
	ctx := context.Background()

	tournament := &models.Tournament{
		Name:       "Rush Cup",
		StartTime:  time.Now().UTC().Add(24 * time.Hour),
		EndTime:    time.Now().UTC().Add(48 * time.Hour),
		MaxPlayers: 4,
		Status:     models.TournamentStatusUpcoming,
	}
	require.NoError(t, repo.Create(ctx, tournament))

	entrants := make([]*models.User, 8)
	for i := range entrants {
		entrants[i] = createTestUser(t, db, fmt.Sprintf("tc_p%d", i))
	}

	var wg sync.WaitGroup
	results := make(chan error, len(entrants))
	for _, u := range entrants {
		wg.Add(1)
		go func(userID uint) {
			defer wg.Done()
			_, err := repo.Join(ctx, tournament.ID, userID)
			results <- err
		}(u.ID)
	}
	wg.Wait()
	close(results)

	capacityHits := 0
	for err := range results {
		if err == nil {
			continue
		}
		var appErr *models.AppError
		if errors.As(err, &appErr) && appErr.Code == "CAPACITY" {
			capacityHits++
			continue
		}
		// sqlite may turn away a concurrent writer outright; the roster
		// bound below is the invariant under test.
		t.Logf("join error tolerated: %v", err)
	}

	roster, err := repo.Roster(ctx, tournament.ID)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(roster), tournament.MaxPlayers, "roster must never exceed max players")
	assert.Greater(t, capacityHits, 0, "overflow joins must be rejected with CAPACITY")
}
