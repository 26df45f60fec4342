package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/brightboard/quiz-service/internal/models"
	"github.com/redis/go-redis/v9"
)

const leaderboardTTL = 60 * time.Second

// LeaderboardCache keeps the ranked student listing in Redis so the hot
// endpoint does not hit postgres on every request.
type LeaderboardCache struct {
	client *redis.Client
}

func NewLeaderboardCache(client *redis.Client) *LeaderboardCache {
	return &LeaderboardCache{client: client}
}

func key(limit int) string {
	return fmt.Sprintf("leaderboard:top:%d", limit)
}

// Get returns the cached listing, or (nil, nil) on a miss.
func (c *LeaderboardCache) Get(ctx context.Context, limit int) ([]*models.LeaderboardEntry, error) {
	data, err := c.client.Get(ctx, key(limit)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var entries []*models.LeaderboardEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *LeaderboardCache) Set(ctx context.Context, limit int, entries []*models.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key(limit), data, leaderboardTTL).Err()
}

// Invalidate drops all cached listings, called after profile stats change.
func (c *LeaderboardCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "leaderboard:top:*", 0).Iterator()
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
	return c.client.Del(ctx, keys...).Err()
}
