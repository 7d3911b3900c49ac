// Copyright (c) 2025 AccelByte Inc. All Rights Reserved.
// This is licensed software from AccelByte Inc, for limitations
// and restrictions contact your company contract manager.

package bootstrap

import (
	"fmt"

	"github.com/alienwaste/alienwaste-backend/internal/config"
	"github.com/alienwaste/alienwaste-backend/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// InitBot connects to the Telegram Bot API and registers the webhook when
// WEBHOOK_URL is set. It returns nil when the bot is disabled.
func InitBot(cfg *config.Config, players telegram.Players) (*telegram.Bot, error) {
	if !cfg.BotActive() {
		logrus.Info("Telegram bot disabled")
		return nil, nil
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Telegram: %w", err)
	}
	logrus.Infof("authorized on Telegram as @%s", api.Self.UserName)

	bot := telegram.NewBot(api, players, cfg.WebAppURL)

	if cfg.WebhookURL != "" {
		if err := bot.SetWebhook(cfg.WebhookURL); err != nil {
			return nil, err
		}
	}

	return bot, nil
}
