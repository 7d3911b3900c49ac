//go:build integration

package service

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/alienwaste/alienwaste-backend/pkg/clock"
	"github.com/alienwaste/alienwaste-backend/pkg/state"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Run with: go test -tags integration ./pkg/service/...
// Requires a Redis server at REDIS_HOST:REDIS_PORT (default localhost:6379).

func integrationClient(t *testing.T) *redis.Client {
	t.Helper()

	host := os.Getenv("REDIS_HOST")
	if host == "" {
		host = "localhost"
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	client := redis.NewClient(&redis.Options{Addr: host + ":" + port})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Redis not reachable at %s:%s: %v", host, port, err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestRedisIntegration_Lifecycle(t *testing.T) {
	client := integrationClient(t)
	ctx := context.Background()

	store := NewRedisGameStateStore(client, testFactory, clock.System{}, RedisGameStateStoreConfig{TTL: time.Minute, MaxRetries: 100})
	userID := fmt.Sprintf("integration-%d", time.Now().UnixNano())
	t.Cleanup(func() { _ = store.Delete(ctx, userID) })

	gs, created, err := store.GetOrCreate(ctx, userID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, userID, gs.UserID)

	const workers, perWorker = 4, 10
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perWorker; j++ {
				_, err := store.Apply(ctx, userID, func(gs *state.GameState) error {
					gs.EcoPoints++
					return nil
				})
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	gs, err = store.Get(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, workers*perWorker, gs.EcoPoints)

	ttl := client.TTL(ctx, makeGameStateStoreKey(userID)).Val()
	assert.Greater(t, ttl, time.Duration(0))
}
