package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRedisStandingsCacheRoundTrip(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewRedisStandingsCache(rdb, 30*time.Second)
	ctx := context.Background()

	_, ok, err := cache.Get(ctx, quizDay)
	require.NoError(t, err)
	assert.False(t, ok)

	want := []Standing{{AttemptID: 2, UserID: 20, Score: 25, ElapsedSeconds: 100}, {AttemptID: 1, UserID: 10, Score: 20, ElapsedSeconds: 90}}
	require.NoError(t, cache.Set(ctx, quizDay, want))

	got, ok, err := cache.Get(ctx, quizDay)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)

	mr.FastForward(31 * time.Second)
	_, ok, err = cache.Get(ctx, quizDay)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisStandingsCacheDisabledWithZeroTTL(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewRedisStandingsCache(rdb, 0)

	require.NoError(t, cache.Set(context.Background(), quizDay, []Standing{{UserID: 1}}))
	assert.False(t, mr.Exists(standingsKey(quizDay)))
}

func TestRedisStandingsCacheInvalidate(t *testing.T) {
	mr, rdb := newTestRedis(t)
	cache := NewRedisStandingsCache(rdb, time.Minute)
	ctx := context.Background()

	for _, day := range []string{"2024-03-01", "2024-03-02", "2024-03-03"} {
		require.NoError(t, cache.Set(ctx, day, []Standing{{UserID: 1}}))
	}
	require.NoError(t, mr.Set("unrelated", "keep"))

	require.NoError(t, cache.Invalidate(ctx, "2024-03-02"))
	assert.False(t, mr.Exists(standingsKey("2024-03-02")))
	assert.True(t, mr.Exists(standingsKey("2024-03-01")))

	require.NoError(t, cache.Invalidate(ctx, ""))
	assert.False(t, mr.Exists(standingsKey("2024-03-01")))
	assert.False(t, mr.Exists(standingsKey("2024-03-03")))
	assert.True(t, mr.Exists("unrelated"))
}

func TestQuizServiceUsesRedisCache(t *testing.T) {
	_, rdb := newTestRedis(t)
	f := newQuizFixture(t, DefaultRewardPolicy())
	f.quiz.Cache = NewRedisStandingsCache(rdb, time.Minute)
	f.seed(t, 10, 20, 25)
	f.clock.Set(afterRelease)
	ctx := context.Background()

	view, err := f.quiz.GetResult(ctx, 1, quizDay)
	require.NoError(t, err)
	assert.Equal(t, intPtr(3), view.Rank)

	cached, ok, err := f.quiz.Cache.Get(ctx, quizDay)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Len(t, cached, 3)
	assert.Equal(t, uint(3), cached[0].UserID)
}
