// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package app

import (
	"context"
	"fmt"
	"time"

	"github.com/alienwaste/alienwaste-backend/internal/bootstrap"
	"github.com/alienwaste/alienwaste-backend/internal/config"
	"github.com/alienwaste/alienwaste-backend/internal/server"
	"github.com/alienwaste/alienwaste-backend/pkg/clock"
	"github.com/alienwaste/alienwaste-backend/pkg/game"
	"github.com/alienwaste/alienwaste-backend/pkg/handler"
	"github.com/alienwaste/alienwaste-backend/pkg/worker"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// App holds all application dependencies and manages the application lifecycle.
type App struct {
	cfg               *config.Config
	apiServer         *server.APIServer
	grpcServer        *server.GRPCServer
	metricsServer     *server.MetricsServer
	hungerTicker      *worker.HungerTicker
	redisClient       *redis.Client
	shutdownTelemetry func(context.Context) error
}

// New creates and initializes a new application instance.
//
// Components are initialized in dependency order:
// 1. Redis (only for the redis state store)
// 2. Game catalog, state store, rate gate and game service
// 3. Telegram bot
// 4. Servers (HTTP API, gRPC health, metrics) and the hunger ticker
// 5. Telemetry (OpenTelemetry tracing)
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logrus.Info("initializing application...")

	app := &App{cfg: cfg}

	if cfg.StateStore == config.StoreRedis {
		if err := app.initRedis(ctx); err != nil {
			return nil, fmt.Errorf("failed to init Redis: %w", err)
		}
	}

	cat, err := bootstrap.LoadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	clk := clock.System{}
	var redisClient redis.UniversalClient
	if app.redisClient != nil {
		redisClient = app.redisClient
	}
	store, checker, err := bootstrap.InitStateStore(cfg, redisClient, game.NewStateFactory(cat), clk)
	if err != nil {
		return nil, fmt.Errorf("failed to init state store: %w", err)
	}

	gameService, err := bootstrap.InitGame(cfg, store, cat, clk)
	if err != nil {
		return nil, fmt.Errorf("failed to init game service: %w", err)
	}

	apiOpts := handler.NewAPIOptions{
		Game:   gameService,
		Health: checker,
	}
	bot, err := bootstrap.InitBot(cfg, gameService)
	if err != nil {
		return nil, fmt.Errorf("failed to init Telegram bot: %w", err)
	}
	if bot != nil {
		apiOpts.Bot = bot
	}

	app.apiServer = server.NewAPIServer(server.NewAPIServerOptions{
		Port:      cfg.HTTPPort,
		API:       handler.NewAPI(apiOpts),
		StaticDir: cfg.StaticDir,
	})

	app.grpcServer = server.NewGRPCServer(cfg.GRPCPort, checker)
	if err := app.grpcServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup gRPC server: %w", err)
	}

	app.metricsServer = server.NewMetricsServer(cfg.MetricsPort, "/metrics")
	if err := app.metricsServer.Setup(); err != nil {
		return nil, fmt.Errorf("failed to setup metrics server: %w", err)
	}

	if cfg.HungerTickEnabled {
		app.hungerTicker = worker.NewHungerTicker(worker.NewHungerTickerOptions{
			Applier:  gameService,
			Interval: cfg.HungerTickInterval,
			Amount:   cfg.HungerTickAmount,
		})
	}

	if cfg.OtelEnabled {
		shutdownTelemetry, err := server.SetupTelemetry(ctx, cfg.ServiceName, cfg.Environment, 0, cfg.OtelZipkinEndpoint)
		if err != nil {
			return nil, fmt.Errorf("failed to setup telemetry: %w", err)
		}
		app.shutdownTelemetry = shutdownTelemetry
	}

	logrus.Info("application initialized successfully")

	return app, nil
}

// initRedis initializes the Redis client, retrying the first ping with
// exponential backoff.
func (a *App) initRedis(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:         a.cfg.RedisHost + ":" + a.cfg.RedisPort,
		Password:     a.cfg.RedisPassword,
		DB:           0, // use default DB
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(a.cfg.RedisRetryDelayMs) * time.Millisecond
	maxRetries := backoff.WithMaxRetries(b, uint64(a.cfg.RedisMaxRetries))

	err := backoff.Retry(
		func() error {
			_, err := client.Ping(ctx).Result()
			if err != nil {
				logrus.Warnf("Redis connection failed: %v, retrying...", err)
				return err
			}
			return nil
		},
		backoff.WithContext(maxRetries, ctx),
	)

	if err != nil {
		_ = client.Close()
		return err
	}

	a.redisClient = client
	logrus.Info("Redis client initialized")
	return nil
}
