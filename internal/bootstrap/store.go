// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/alienwaste/alienwaste-backend/internal/config"
	"github.com/alienwaste/alienwaste-backend/pkg/clock"
	"github.com/alienwaste/alienwaste-backend/pkg/service"
	"github.com/alienwaste/alienwaste-backend/pkg/state"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// InitStateStore picks the state store backend named by STATE_STORE.
// The Redis client must be non-nil when the redis backend is selected.
func InitStateStore(
	cfg *config.Config,
	client redis.UniversalClient,
	factory service.StateFactory,
	clk clock.Clock,
) (service.StateStore, state.Checker, error) {
	switch cfg.StateStore {
	case config.StoreMemory:
		logrus.Info("using in-memory state store")
		return service.NewMemoryGameStateStore(factory, clk), state.MemoryHealthChecker{}, nil

	case config.StoreRedis:
		if client == nil {
			return nil, nil, fmt.Errorf("redis state store selected without a Redis client")
		}
		store := service.NewRedisGameStateStore(client, factory, clk, service.RedisGameStateStoreConfig{
			TTL: cfg.RedisStateTTL,
		})
		logrus.Infof("using Redis state store (ttl: %s)", cfg.RedisStateTTL)
		return store, state.NewHealthChecker(client), nil

	default:
		return nil, nil, fmt.Errorf("unknown state store %q", cfg.StateStore)
	}
}
