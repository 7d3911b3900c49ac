// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/alienwaste/alienwaste-backend/internal/config"
	"github.com/alienwaste/alienwaste-backend/pkg/catalog"
	"github.com/alienwaste/alienwaste-backend/pkg/clock"
	"github.com/alienwaste/alienwaste-backend/pkg/game"
	"github.com/alienwaste/alienwaste-backend/pkg/gate"
	"github.com/alienwaste/alienwaste-backend/pkg/service"

	"github.com/sirupsen/logrus"
)

// LoadCatalog reads GAME_CONFIG_PATH, falling back to the built-in catalog
func LoadCatalog(cfg *config.Config) (*catalog.Catalog, error) {
	cat, err := catalog.Load(cfg.GameConfigPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load game catalog: %w", err)
	}
	if cfg.GameConfigPath != "" {
		logrus.Infof("loaded game catalog from %s", cfg.GameConfigPath)
	}
	logrus.Infof("game catalog: %d waste types, mission target %d", len(cat.WasteTypes), cat.MissionTarget)
	return cat, nil
}

// InitGame builds the rate gate and the game service on top of store
func InitGame(
	cfg *config.Config,
	store service.StateStore,
	cat *catalog.Catalog,
	clk clock.Clock,
) (*game.Service, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}

	logrus.Infof("anti-cheat policy: interval %s, distance %.1fm, %d scans/day, day boundary %s",
		policy.MinScanInterval, policy.MinDistanceMeters, policy.MaxScansPerDay, policy.Location)

	return game.NewService(store, gate.New(policy), clk, cat, game.Config{
		BotToken: cfg.BotToken,
	}), nil
}
