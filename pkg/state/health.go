// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package state

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// Checker reports whether the backing state storage is reachable
type Checker interface {
	Check(ctx context.Context) error
}

// HealthChecker provides Redis health check functionality
type HealthChecker struct {
	client  redis.UniversalClient
	timeout time.Duration
}

// NewHealthChecker creates a new health checker
func NewHealthChecker(client redis.UniversalClient) *HealthChecker {
	return &HealthChecker{client: client, timeout: 2 * time.Second}
}

// Check performs a Redis health check
func (h *HealthChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	if _, err := h.client.Ping(ctx).Result(); err != nil {
		logrus.Errorf("Redis health check failed: %v", err)
		return err
	}

	logrus.Debugf("Redis health check passed")
	return nil
}

// IsHealthy returns true if Redis is accessible
func (h *HealthChecker) IsHealthy(ctx context.Context) bool {
	return h.Check(ctx) == nil
}

// MemoryHealthChecker is used with the in-memory store, which cannot become unreachable
type MemoryHealthChecker struct{}

// Check always succeeds
func (MemoryHealthChecker) Check(context.Context) error { return nil }
