package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cachedThing struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client = nil })
	return mr
}

func TestAsideFetchesOnceThenServesFromCache(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	fetch := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.ID = 7
			dest.Name = "cached"
			return nil
		}
	}

	var first cachedThing
	require.NoError(t, Aside(ctx, "thing:7", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, fetches)

	var second cachedThing
	require.NoError(t, Aside(ctx, "thing:7", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, fetches, "second read must come from the cache")
	assert.Equal(t, first, second)
}

func TestAsideRefetchesAfterInvalidate(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	load := func(dest *cachedThing) func() error {
		return func() error {
			fetches++
			dest.ID = 3
			return nil
		}
	}

	var v cachedThing
	require.NoError(t, Aside(ctx, "thing:3", &v, time.Minute, load(&v)))
	Invalidate(ctx, "thing:3")
	require.NoError(t, Aside(ctx, "thing:3", &v, time.Minute, load(&v)))
	assert.Equal(t, 2, fetches)
}

func TestCacheHelpersNoOpWithoutClient(t *testing.T) {
	client = nil
	ctx := context.Background()

	found, err := GetJSON(ctx, "missing", &cachedThing{})
	require.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "missing", cachedThing{ID: 1}, time.Minute))
	Invalidate(ctx, "missing")

	var v cachedThing
	calls := 0
	require.NoError(t, Aside(ctx, "missing", &v, time.Minute, func() error {
		calls++
		v.ID = 9
		return nil
	}))
	assert.Equal(t, 1, calls)
	assert.Equal(t, uint(9), v.ID)
}
