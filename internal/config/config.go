// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package config

import "time"

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
)

// Config holds all application configuration loaded from environment variables.
// This struct uses github.com/caarlos0/env for automatic environment variable parsing.
type Config struct {
	// Server configuration
	HTTPPort    int    `env:"HTTP_PORT" envDefault:"3000"`
	GRPCPort    int    `env:"GRPC_PORT" envDefault:"6565"`
	MetricsPort int    `env:"METRICS_PORT" envDefault:"8080"`
	Environment string `env:"ENVIRONMENT" envDefault:"dev"`
	ServiceName string `env:"SERVICE_NAME" envDefault:"alienwaste"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	StaticDir   string `env:"STATIC_DIR"`

	// Telegram configuration
	BotToken   string `env:"BOT_TOKEN"`
	BotEnabled bool   `env:"BOT_ENABLED" envDefault:"true"`
	WebAppURL  string `env:"WEB_APP_URL"`
	WebhookURL string `env:"WEBHOOK_URL"`

	// State store configuration
	StateStore        string        `env:"STATE_STORE" envDefault:"memory"`
	RedisHost         string        `env:"REDIS_HOST" envDefault:"localhost"`
	RedisPort         string        `env:"REDIS_PORT" envDefault:"6379"`
	RedisPassword     string        `env:"REDIS_PASSWORD"`
	RedisMaxRetries   int           `env:"REDIS_MAX_RETRIES" envDefault:"5"`
	RedisRetryDelayMs int           `env:"REDIS_RETRY_DELAY_MS" envDefault:"1000"`
	RedisStateTTL     time.Duration `env:"REDIS_STATE_TTL" envDefault:"0s"`

	// Anti-cheat configuration
	MinScanIntervalMs int64   `env:"MIN_SCAN_INTERVAL_MS" envDefault:"300000"`
	MinDistanceMeters float64 `env:"MIN_DISTANCE_METERS" envDefault:"10"`
	MaxScansPerDay    int     `env:"MAX_SCANS_PER_DAY" envDefault:"100"`
	// DayBoundaryTZ is an IANA zone name or "Local"
	DayBoundaryTZ string `env:"DAY_BOUNDARY_TZ" envDefault:"Local"`

	// Hunger ticker configuration
	HungerTickEnabled  bool          `env:"HUNGER_TICK_ENABLED" envDefault:"true"`
	HungerTickInterval time.Duration `env:"HUNGER_TICK_INTERVAL" envDefault:"30s"`
	HungerTickAmount   int           `env:"HUNGER_TICK_AMOUNT" envDefault:"2"`

	// Game catalog; empty uses the built-in catalog
	GameConfigPath string `env:"GAME_CONFIG_PATH"`

	// Telemetry configuration
	OtelEnabled        bool   `env:"OTEL_ENABLED" envDefault:"true"`
	OtelZipkinEndpoint string `env:"OTEL_EXPORTER_ZIPKIN_ENDPOINT"`
}
