package repository

import (
	"context"
	"testing"

	"steamfinder/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFriendRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewFriendRepository(db)
	ctx := context.Background()

	u1 := createTestUser(t, db, "f1")
	u2 := createTestUser(t, db, "f2")
	u3 := createTestUser(t, db, "f3")

	t.Run("Create and GetPendingRequests", func(t *testing.T) {
		friendship := &models.Friendship{
			RequesterID: u1.ID,
			AddresseeID: u2.ID,
			Status:      models.FriendshipStatusPending,
		}
		err := repo.Create(ctx, friendship)
		require.NoError(t, err)

		reqs, err := repo.GetPendingRequests(ctx, u2.ID)
		assert.NoError(t, err)
		assert.Len(t, reqs, 1)
		assert.Equal(t, u1.ID, reqs[0].RequesterID)
	})

	t.Run("Edge Visible From Both Directions", func(t *testing.T) {
		forward, err := repo.GetFriendshipBetweenUsers(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		require.NotNil(t, forward)

		backward, err := repo.GetFriendshipBetweenUsers(ctx, u2.ID, u1.ID)
		require.NoError(t, err)
		require.NotNil(t, backward)
		assert.Equal(t, forward.ID, backward.ID)
	})

	t.Run("Accept Flips Single Row And GetFriends Is Symmetric", func(t *testing.T) {
		edge, err := repo.GetFriendshipBetweenUsers(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		require.NoError(t, repo.UpdateStatus(ctx, edge.ID, models.FriendshipStatusAccepted))

		var count int64
		db.Model(&models.Friendship{}).Count(&count)
		assert.Equal(t, int64(1), count, "acceptance must not write a reciprocal row")

		friendsOf1, err := repo.GetFriends(ctx, u1.ID)
		require.NoError(t, err)
		require.Len(t, friendsOf1, 1)
		assert.Equal(t, u2.ID, friendsOf1[0].ID)

		friendsOf2, err := repo.GetFriends(ctx, u2.ID)
		require.NoError(t, err)
		require.Len(t, friendsOf2, 1)
		assert.Equal(t, u1.ID, friendsOf2[0].ID)
	})

	t.Run("DeletePending Removes Only Pending Rows", func(t *testing.T) {
		// u3 -> u1 pending, then declined.
		pending := &models.Friendship{
			RequesterID: u3.ID,
			AddresseeID: u1.ID,
			Status:      models.FriendshipStatusPending,
		}
		require.NoError(t, repo.Create(ctx, pending))

		require.NoError(t, repo.DeletePending(ctx, u3.ID, u1.ID))
		gone, err := repo.GetFriendshipBetweenUsers(ctx, u3.ID, u1.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		// The accepted u1<->u2 edge is untouched by decline semantics.
		require.NoError(t, repo.DeletePending(ctx, u1.ID, u2.ID))
		kept, err := repo.GetFriendshipBetweenUsers(ctx, u1.ID, u2.ID)
		require.NoError(t, err)
		assert.NotNil(t, kept)
	})

	t.Run("DeletePending Is Idempotent", func(t *testing.T) {
		assert.NoError(t, repo.DeletePending(ctx, u3.ID, u1.ID))
		assert.NoError(t, repo.DeletePending(ctx, u3.ID, u1.ID))
	})

	t.Run("Duplicate Edge Rejected By Unique Index", func(t *testing.T) {
		dup := &models.Friendship{
			RequesterID: u1.ID,
			AddresseeID: u2.ID,
			Status:      models.FriendshipStatusPending,
		}
		assert.Error(t, repo.Create(ctx, dup))
	})
}
