package repository

import (
	"context"
	"testing"
	"time"

	"steamfinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewEventRepository(db)
	ctx := context.Background()

	u1 := createTestUser(t, db, "e_u1")
	u2 := createTestUser(t, db, "e_u2")

	event := &models.Event{
		Name:      "Community LAN",
		Location:  "Hamburg",
		StartTime: time.Now().UTC().Add(48 * time.Hour),
	}

	t.Run("Create And ListUpcoming", func(t *testing.T) {
		require.NoError(t, repo.Create(ctx, event))
		require.NotZero(t, event.ID)

		past := &models.Event{
			Name:      "Last Year's LAN",
			StartTime: time.Now().UTC().Add(-24 * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, past))

		upcoming, err := repo.ListUpcoming(ctx, 20, 0)
		require.NoError(t, err)
		require.Len(t, upcoming, 1)
		assert.Equal(t, event.ID, upcoming[0].ID)
	})

	t.Run("Join Adds Participant", func(t *testing.T) {
		joined, err := repo.Join(ctx, event.ID, u1.ID)
		require.NoError(t, err)
		assert.True(t, joined)

		joined, err = repo.Join(ctx, event.ID, u2.ID)
		require.NoError(t, err)
		assert.True(t, joined)

		participants, err := repo.Participants(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, participants, 2)
	})

	t.Run("Repeat Join Is NoOp", func(t *testing.T) {
		joined, err := repo.Join(ctx, event.ID, u1.ID)
		require.NoError(t, err)
		assert.False(t, joined)

		participants, err := repo.Participants(ctx, event.ID)
		require.NoError(t, err)
		assert.Len(t, participants, 2)
	})

	t.Run("Join Missing Event Is NotFound", func(t *testing.T) {
		_, err := repo.Join(ctx, 9999, u1.ID)
		require.Error(t, err)
	})
}
