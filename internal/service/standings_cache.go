package service

import (
	"context"
	"encoding/json"
	"errors"
	"school_quiz_backend/pkg/monitoring"
	"time"

	"github.com/go-redis/redis/v8"
)

const standingsKeyPrefix = "quiz:standings:"

// StandingsCache 缓存某天已排序的名次列表
type StandingsCache interface {
	Get(ctx context.Context, day string) ([]Standing, bool, error)
	Set(ctx context.Context, day string, standings []Standing) error
	Invalidate(ctx context.Context, day string) error
}

type RedisStandingsCache struct {
	Redis *redis.Client
	TTL   time.Duration
}

func NewRedisStandingsCache(rdb *redis.Client, ttl time.Duration) *RedisStandingsCache {
	return &RedisStandingsCache{Redis: rdb, TTL: ttl}
}

func standingsKey(day string) string {
	return standingsKeyPrefix + day
}

func (c *RedisStandingsCache) Get(ctx context.Context, day string) ([]Standing, bool, error) {
	val, err := c.Redis.Get(ctx, standingsKey(day)).Bytes()
	if errors.Is(err, redis.Nil) {
		monitoring.StandingsCache.WithLabelValues("miss").Inc()
		return nil, false, nil
	}
	if err != nil {
		monitoring.StandingsCache.WithLabelValues("error").Inc()
		return nil, false, err
	}

	var standings []Standing
	if err := json.Unmarshal(val, &standings); err != nil {
		monitoring.StandingsCache.WithLabelValues("error").Inc()
		return nil, false, err
	}
	monitoring.StandingsCache.WithLabelValues("hit").Inc()
	return standings, true, nil
}

func (c *RedisStandingsCache) Set(ctx context.Context, day string, standings []Standing) error {
	if c.TTL <= 0 {
		return nil
	}
	data, err := json.Marshal(standings)
	if err != nil {
		return err
	}
	return c.Redis.Set(ctx, standingsKey(day), data, c.TTL).Err()
}

// Invalidate day 为空时清除所有日期的缓存
func (c *RedisStandingsCache) Invalidate(ctx context.Context, day string) error {
	if day != "" {
		return c.Redis.Del(ctx, standingsKey(day)).Err()
	}

	iter := c.Redis.Scan(ctx, 0, standingsKeyPrefix+"*", 100).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.Redis.Del(ctx, keys...).Err()
}
