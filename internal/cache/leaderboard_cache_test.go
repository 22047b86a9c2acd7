package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"drawit/internal/model"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeaderboardKey(t *testing.T) {
	c := &leaderboardCache{}
	assert.Equal(t, "room:lobby#3:lb", c.key("lobby#3"))
}

func TestUpdateScoresEmptyIsNoop(t *testing.T) {
	// no client: an empty update must not touch Redis
	c := &leaderboardCache{}
	assert.NoError(t, c.UpdateScores(context.Background(), "lobby#1", nil))
}

// newRedisClient connects to REDIS_TEST_ADDR or skips the test
func newRedisClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, client.Ping(ctx).Err())
	t.Cleanup(func() { client.Close() })
	return client
}

func TestLeaderboardRoundTrip(t *testing.T) {
	client := newRedisClient(t)
	lb := NewLeaderboardCache(client)
	ctx := context.Background()
	roomKey := "test-" + uuid.NewString() + "#1"
	t.Cleanup(func() { lb.Delete(ctx, roomKey) })

	require.NoError(t, lb.UpdateScores(ctx, roomKey, []model.PlayerData{
		{Username: "alice", Score: 10},
		{Username: "bob", Score: 75},
		{Username: "carol", Score: 40},
	}))

	top, err := lb.GetTop(ctx, roomKey, 2)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, "bob", top[0].Username)
	assert.Equal(t, 75, top[0].Score)
	assert.Equal(t, 2, top[1].Rank)

	rank, err := lb.GetRank(ctx, roomKey, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), rank)

	rank, err = lb.GetRank(ctx, roomKey, "nobody")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), rank)

	ttl, err := client.TTL(ctx, "room:"+roomKey+":lb").Result()
	require.NoError(t, err)
	assert.Positive(t, ttl)
}
