package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/alienwaste/alienwaste-backend/pkg/state"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const leaderboardSize = 10

// Sender is the part of the Bot API the bot talks to.
// *tgbotapi.BotAPI satisfies it.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Players gives the bot read access to game state
type Players interface {
	EnsurePlayer(ctx context.Context, userID string) (*state.GameState, error)
	Leaderboard(ctx context.Context, limit int) ([]state.LeaderboardEntry, error)
}

// Bot answers chat commands
type Bot struct {
	api       Sender
	players   Players
	webAppURL string
}

func NewBot(api Sender, players Players, webAppURL string) *Bot {
	return &Bot{
		api:       api,
		players:   players,
		webAppURL: strings.TrimRight(webAppURL, "/"),
	}
}

// SetWebhook points Telegram at url for update delivery
func (b *Bot) SetWebhook(url string) error {
	wh, err := tgbotapi.NewWebhook(url)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if _, err := b.api.Request(wh); err != nil {
		return fmt.Errorf("failed to set webhook: %w", err)
	}

	logrus.Infof("webhook set to %s", url)
	return nil
}

// HandleUpdate processes one update delivered by Telegram.
// Anything but a known command is ignored.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) error {
	msg := update.Message
	if msg == nil || msg.Chat == nil || !msg.IsCommand() {
		return nil
	}

	chatID := msg.Chat.ID
	var reply tgbotapi.MessageConfig

	switch msg.Command() {
	case "start":
		reply = tgbotapi.NewMessage(chatID, StartText)
		reply.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonURL("🚀 Launch AlienWaste", b.webAppURL+"/webapp"),
			),
		)
	case "help":
		reply = tgbotapi.NewMessage(chatID, HelpText)
	case "stats":
		if msg.From == nil {
			return nil
		}
		gs, err := b.players.EnsurePlayer(ctx, strconv.FormatInt(msg.From.ID, 10))
		if err != nil {
			return fmt.Errorf("failed to load stats: %w", err)
		}
		reply = tgbotapi.NewMessage(chatID, StatsText(gs))
	case "leaderboard":
		entries, err := b.players.Leaderboard(ctx, leaderboardSize)
		if err != nil {
			return fmt.Errorf("failed to load leaderboard: %w", err)
		}
		reply = tgbotapi.NewMessage(chatID, LeaderboardText(entries))
	default:
		logrus.Debugf("ignoring unknown command /%s", msg.Command())
		return nil
	}

	if _, err := b.api.Send(reply); err != nil {
		return fmt.Errorf("failed to send reply: %w", err)
	}
	return nil
}

const StartText = "👽 Welcome to AlienWaste!\n\n" +
	"Feed your alien companion by scanning waste and help save the planet! 🌍\n\n" +
	"Click the button below to start your eco-adventure:"

const HelpText = "🤖 AlienWaste Commands:\n\n" +
	"/start - Launch the game\n" +
	"/stats - View your statistics\n" +
	"/leaderboard - Global rankings\n" +
	"/help - Show this help message\n\n" +
	"🎮 Use the Web App to play the full game!"

func StatsText(gs *state.GameState) string {
	return fmt.Sprintf("📊 Your AlienWaste Stats:\n\n"+
		"👽 Alien Level: %d\n"+
		"⚡ Eco Points: %d\n"+
		"🎯 Total Scans: %d\n"+
		"🔥 Streak: %d days\n"+
		"🍽️ Hunger Level: %d%%\n\n"+
		"Launch the Web App to continue playing! 🚀",
		gs.AlienLevel, gs.EcoPoints, gs.TotalScans, gs.StreakDays, gs.HungerLevel)
}

func LeaderboardText(entries []state.LeaderboardEntry) string {
	if len(entries) == 0 {
		return "🏆 No players yet. Be the first to scan some waste! 🚀"
	}

	var sb strings.Builder
	sb.WriteString("🏆 AlienWaste Leaderboard:\n\n")
	for i, e := range entries {
		fmt.Fprintf(&sb, "%d. 👽 %s - ⚡ %d points (Level %d)\n", i+1, e.UserID, e.EcoPoints, e.AlienLevel)
	}
	return strings.TrimRight(sb.String(), "\n")
}
