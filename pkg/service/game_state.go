package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alienwaste/alienwaste-backend/pkg/clock"
	"github.com/alienwaste/alienwaste-backend/pkg/state"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const (
	// gameStateStoreKeyPrefix is the prefix for all game state keys
	gameStateStoreKeyPrefix = "alienwaste:game_state:"
	// gameStateStoreDefaultMaxRetries bounds optimistic transaction retries under contention
	gameStateStoreDefaultMaxRetries = 10
	gameStateStoreScanCount         = 100
)

// RedisGameStateStore implements StateStore using Redis.
// Values are JSON documents; updates use WATCH/MULTI optimistic transactions.
type RedisGameStateStore struct {
	client  redis.UniversalClient
	factory StateFactory
	clock   clock.Clock
	cfg     RedisGameStateStoreConfig
}

type RedisGameStateStoreConfig struct {
	// TTL of a stored state, refreshed on every write. Zero keeps states forever.
	TTL        time.Duration
	MaxRetries uint64
}

// NewRedisGameStateStore creates a new Redis-backed state store.
func NewRedisGameStateStore(
	client redis.UniversalClient,
	factory StateFactory,
	clk clock.Clock,
	cfg RedisGameStateStoreConfig,
) *RedisGameStateStore {
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = gameStateStoreDefaultMaxRetries
	}
	return &RedisGameStateStore{
		client:  client,
		factory: factory,
		clock:   clk,
		cfg:     cfg,
	}
}

// makeGameStateStoreKey creates a Redis key for a player
func makeGameStateStoreKey(userID string) string {
	return fmt.Sprintf("%s%s", gameStateStoreKeyPrefix, userID)
}

func decodeGameState(data []byte) (*state.GameState, error) {
	var gs state.GameState
	if err := json.Unmarshal(data, &gs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal state: %w", err)
	}
	return &gs, nil
}

func (r *RedisGameStateStore) GetOrCreate(ctx context.Context, userID string) (*state.GameState, bool, error) {
	gs, err := r.Get(ctx, userID)
	if err == nil {
		return gs, false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, false, err
	}

	fresh := r.factory(userID, r.clock.Now())
	data, err := json.Marshal(fresh)
	if err != nil {
		return nil, false, fmt.Errorf("failed to marshal state: %w", err)
	}

	ok, err := r.client.SetNX(ctx, makeGameStateStoreKey(userID), data, r.cfg.TTL).Result()
	if err != nil {
		logrus.Errorf("failed to seed state for user %s: %v", userID, err)
		return nil, false, fmt.Errorf("failed to seed state: %w", err)
	}
	if !ok {
		// Another request seeded it first
		gs, err := r.Get(ctx, userID)
		return gs, false, err
	}

	logrus.Infof("created game state for user %s", userID)
	return fresh, true, nil
}

// Get retrieves the game state for a player from Redis
func (r *RedisGameStateStore) Get(ctx context.Context, userID string) (*state.GameState, error) {
	data, err := r.client.Get(ctx, makeGameStateStoreKey(userID)).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		logrus.Errorf("failed to get state for user %s: %v", userID, err)
		return nil, fmt.Errorf("failed to get state: %w", err)
	}

	gs, err := decodeGameState(data)
	if err != nil {
		logrus.Errorf("failed to decode state for user %s: %v", userID, err)
		return nil, err
	}
	return gs, nil
}

func (r *RedisGameStateStore) Apply(ctx context.Context, userID string, mutate Mutation) (*state.GameState, error) {
	key := makeGameStateStoreKey(userID)
	var result *state.GameState

	txn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, key).Bytes()
		if err == redis.Nil {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get state: %w", err)
		}

		working, err := decodeGameState(data)
		if err != nil {
			return err
		}
		if err := mutate(working); err != nil {
			return err
		}

		payload, err := json.Marshal(working)
		if err != nil {
			return fmt.Errorf("failed to marshal state: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.cfg.TTL)
			return nil
		})
		if err != nil {
			return err
		}

		result = working
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 5 * time.Millisecond
	b.MaxInterval = 100 * time.Millisecond
	policy := backoff.WithContext(backoff.WithMaxRetries(b, r.cfg.MaxRetries), ctx)

	err := backoff.Retry(
		func() error {
			err := r.client.Watch(ctx, txn, key)
			if errors.Is(err, redis.TxFailedErr) {
				logrus.Debugf("state of user %s changed concurrently, retrying", userID)
				return err
			}
			if err != nil {
				return backoff.Permanent(err)
			}
			return nil
		},
		policy,
	)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logrus.Warnf("failed to apply state change for user %s: %v", userID, err)
		}
		return nil, err
	}

	return result, nil
}

// List returns every stored state. Keys that expire during the walk are skipped.
func (r *RedisGameStateStore) List(ctx context.Context) ([]*state.GameState, error) {
	var keys []string
	iter := r.client.Scan(ctx, 0, gameStateStoreKeyPrefix+"*", gameStateStoreScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to scan state keys: %w", err)
	}

	states := make([]*state.GameState, 0, len(keys))
	if len(keys) == 0 {
		return states, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load states: %w", err)
	}

	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		gs, err := decodeGameState([]byte(raw))
		if err != nil {
			logrus.Warnf("skipping undecodable state at %s: %v", keys[i], err)
			continue
		}
		states = append(states, gs)
	}
	return states, nil
}

// Delete removes the game state of a player
func (r *RedisGameStateStore) Delete(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, makeGameStateStoreKey(userID)).Err(); err != nil {
		logrus.Errorf("failed to delete state for user %s: %v", userID, err)
		return fmt.Errorf("failed to delete state: %w", err)
	}

	logrus.Infof("deleted state for user %s", userID)
	return nil
}
