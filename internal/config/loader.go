// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import (
	"fmt"
	"time"

	"github.com/alienwaste/alienwaste-backend/pkg/gate"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Load reads configuration from environment variables.
// It attempts to load from .env file first (for local development),
// then parses environment variables into the Config struct.
func Load() (*Config, error) {
	// In production (Docker/K8s), environment variables are injected directly
	if err := godotenv.Load(); err != nil {
		logrus.Warnf("no .env file found or error loading it: %v (this is normal in production)", err)
	} else {
		logrus.Infof("loaded environment variables from .env file")
	}

	return Parse()
}

// Parse reads the Config from the process environment and validates it.
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config from environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Validate performs custom validation on the configuration.
func (c *Config) Validate() error {
	for name, port := range map[string]int{
		"HTTP_PORT":    c.HTTPPort,
		"GRPC_PORT":    c.GRPCPort,
		"METRICS_PORT": c.MetricsPort,
	} {
		if port < 1 || port > 65535 {
			return fmt.Errorf("invalid %s: %d (must be 1-65535)", name, port)
		}
	}

	switch c.StateStore {
	case StoreMemory, StoreRedis:
	default:
		return fmt.Errorf("invalid STATE_STORE: %q (must be %s or %s)", c.StateStore, StoreMemory, StoreRedis)
	}

	if c.RedisMaxRetries < 0 {
		return fmt.Errorf("REDIS_MAX_RETRIES must be non-negative")
	}
	if c.RedisStateTTL < 0 {
		return fmt.Errorf("REDIS_STATE_TTL must be non-negative")
	}

	if _, err := c.Policy(); err != nil {
		return err
	}

	if c.HungerTickEnabled {
		if c.HungerTickInterval <= 0 {
			return fmt.Errorf("HUNGER_TICK_INTERVAL must be positive")
		}
		if c.HungerTickAmount < 1 {
			return fmt.Errorf("HUNGER_TICK_AMOUNT must be at least 1")
		}
	}

	if c.BotActive() && c.WebAppURL == "" {
		return fmt.Errorf("WEB_APP_URL is required when the bot is enabled")
	}

	return nil
}

// BotActive reports whether the Telegram bot should run
func (c *Config) BotActive() bool {
	return c.BotEnabled && c.BotToken != ""
}

// Policy builds the anti-cheat policy from the configuration
func (c *Config) Policy() (gate.Policy, error) {
	loc, err := time.LoadLocation(c.DayBoundaryTZ)
	if err != nil {
		return gate.Policy{}, fmt.Errorf("invalid DAY_BOUNDARY_TZ %q: %w", c.DayBoundaryTZ, err)
	}

	policy := gate.Policy{
		MinScanInterval:   time.Duration(c.MinScanIntervalMs) * time.Millisecond,
		MinDistanceMeters: c.MinDistanceMeters,
		MaxScansPerDay:    c.MaxScansPerDay,
		Location:          loc,
	}
	if err := policy.Validate(); err != nil {
		return gate.Policy{}, err
	}
	return policy, nil
}
