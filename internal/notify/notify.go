// Package notify delivers revision reminders to users.
package notify

import (
	"context"
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

// ReminderText is the message sent for count due revisions
func ReminderText(count int) string {
	noun := "revisions"
	if count == 1 {
		noun = "revision"
	}
	return fmt.Sprintf("You have %d %s due today. Open your study tracker to review them.", count, noun)
}

// LogNotifier writes reminders to the log instead of delivering them
type LogNotifier struct {
	logger *slog.Logger
}

func NewLogNotifier(logger *slog.Logger) *LogNotifier {
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) SendReminder(ctx context.Context, user *models.User, count int) error {
	n.logger.InfoContext(ctx, "revision reminder", "user", user.ID, "email", user.Email, "due", count)
	return nil
}

// Sender is the part of the Telegram bot API used to deliver messages
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// TelegramNotifier sends reminders as Telegram messages to users that linked a chat
type TelegramNotifier struct {
	api    Sender
	logger *slog.Logger
}

// NewTelegramNotifier connects to the bot API with token
func NewTelegramNotifier(token string, logger *slog.Logger) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to telegram")
	}
	logger.Info("telegram notifier authorized", "account", api.Self.UserName)
	return NewTelegramNotifierWithSender(api, logger), nil
}

func NewTelegramNotifierWithSender(api Sender, logger *slog.Logger) *TelegramNotifier {
	return &TelegramNotifier{api: api, logger: logger}
}

func (n *TelegramNotifier) SendReminder(ctx context.Context, user *models.User, count int) error {
	if user.TelegramChatID == 0 {
		n.logger.DebugContext(ctx, "user has no telegram chat, skipping reminder", "user", user.ID)
		return nil
	}

	msg := tgbotapi.NewMessage(user.TelegramChatID, ReminderText(count))
	if _, err := n.api.Send(msg); err != nil {
		return errors.Wrapf(err, "failed to send reminder to user %d", user.ID)
	}
	n.logger.InfoContext(ctx, "sent reminder", "user", user.ID, "due", count)
	return nil
}
