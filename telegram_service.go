package main

import (
	"fmt"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// TelegramService sends one-way operator notifications. With no API key or
// chat ID configured it degrades to a logged no-op; the bot never depends on it.
type TelegramService struct {
	bot         *tgbotapi.BotAPI
	adminChatID int64
	logger      *logrus.Logger
}

func NewTelegramService(apiKey string, adminChatID string, logger *logrus.Logger) (*TelegramService, error) {
	if apiKey == "" || adminChatID == "" {
		logger.Info("Telegram notifications disabled (no API key or admin chat ID)")
		return &TelegramService{logger: logger}, nil
	}

	chatID, err := strconv.ParseInt(adminChatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", ENV_TELEGRAM_ADMIN_CHAT_ID, adminChatID, err)
	}

	bot, err := tgbotapi.NewBotAPI(apiKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	logger.WithField("bot", bot.Self.UserName).Info("Telegram notifications enabled")
	return &TelegramService{
		bot:         bot,
		adminChatID: chatID,
		logger:      logger,
	}, nil
}

func (s *TelegramService) Enabled() bool {
	return s.bot != nil
}

func (s *TelegramService) send(text string) error {
	if s.bot == nil {
		s.logger.WithField("text", text).Debug("Telegram disabled, notification skipped")
		return nil
	}

	msg := tgbotapi.NewMessage(s.adminChatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true

	_, err := s.bot.Send(msg)
	if err != nil {
		return fmt.Errorf("failed to send telegram message: %w", err)
	}
	return nil
}

func (s *TelegramService) NotifyStartup(handle string, dryRun bool, shares24h int64) error {
	mode := "live"
	if dryRun {
		mode = "dry-run"
	}
	text := fmt.Sprintf("🤖 *Reshare bot started*\nHandle: @%s\nMode: %s\nShares in last 24h: %d", handle, mode, shares24h)
	return s.send(text)
}

func (s *TelegramService) NotifyShared(result *ShareResult) error {
	text := fmt.Sprintf("🔁 *Retweeted* @%s via %s strategy\nhttps://x.com/%s/status/%s",
		result.Tweet.Author.UserName, result.Strategy, result.Tweet.Author.UserName, result.Tweet.Id)
	return s.send(text)
}
