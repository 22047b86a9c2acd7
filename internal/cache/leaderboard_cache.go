package cache

import (
	"context"
	"fmt"
	"time"

	"drawit/internal/model"

	"github.com/redis/go-redis/v9"
)

const leaderboardTTL = 24 * time.Hour

// LeaderboardCache handles Redis ZSET operations for room leaderboards
type LeaderboardCache interface {
	UpdateScores(ctx context.Context, roomKey string, standings []model.PlayerData) error
	GetTop(ctx context.Context, roomKey string, limit int) ([]model.LeaderboardEntry, error)
	GetRank(ctx context.Context, roomKey, username string) (int64, error)
	Delete(ctx context.Context, roomKey string) error
}

type leaderboardCache struct {
	client *redis.Client
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
	}
}

func (c *leaderboardCache) key(roomKey string) string {
	return fmt.Sprintf("room:%s:lb", roomKey)
}

// UpdateScores writes the full standings in one pipeline and refreshes the TTL
func (c *leaderboardCache) UpdateScores(ctx context.Context, roomKey string, standings []model.PlayerData) error {
	if len(standings) == 0 {
		return nil
	}
	members := make([]redis.Z, len(standings))
	for i, p := range standings {
		members[i] = redis.Z{
			Score:  float64(p.Score),
			Member: p.Username,
		}
	}

	key := c.key(roomKey)
	pipe := c.client.TxPipeline()
	pipe.ZAdd(ctx, key, members...)
	pipe.Expire(ctx, key, leaderboardTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("update leaderboard %s: %w", roomKey, err)
	}
	return nil
}

func (c *leaderboardCache) GetTop(ctx context.Context, roomKey string, limit int) ([]model.LeaderboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(roomKey), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]model.LeaderboardEntry, len(results))
	for i, z := range results {
		username, _ := z.Member.(string)
		entries[i] = model.LeaderboardEntry{
			Username: username,
			Score:    int(z.Score),
			Rank:     i + 1,
		}
	}
	return entries, nil
}

func (c *leaderboardCache) GetRank(ctx context.Context, roomKey, username string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(roomKey), username).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}

func (c *leaderboardCache) Delete(ctx context.Context, roomKey string) error {
	return c.client.Del(ctx, c.key(roomKey)).Err()
}
