package notify

import (
	"context"
	"io"
	"log/slog"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studytrack/pkg/models"
)

type fakeSender struct {
	sent []tgbotapi.MessageConfig
	err  error
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	if f.err != nil {
		return tgbotapi.Message{}, f.err
	}
	f.sent = append(f.sent, c.(tgbotapi.MessageConfig))
	return tgbotapi.Message{}, nil
}

var discard = slog.New(slog.NewTextHandler(io.Discard, nil))

func TestReminderText(t *testing.T) {
	assert.Contains(t, ReminderText(1), "1 revision due")
	assert.Contains(t, ReminderText(3), "3 revisions due")
}

func TestTelegramNotifier(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegramNotifierWithSender(sender, discard)
	ctx := context.Background()

	require.NoError(t, n.SendReminder(ctx, &models.User{ID: 1}, 2))
	assert.Empty(t, sender.sent)

	require.NoError(t, n.SendReminder(ctx, &models.User{ID: 1, TelegramChatID: 777}, 2))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(777), sender.sent[0].ChatID)
	assert.Equal(t, ReminderText(2), sender.sent[0].Text)

	sender.err = errors.New("blocked by user")
	assert.Error(t, n.SendReminder(ctx, &models.User{ID: 1, TelegramChatID: 777}, 2))
}

func TestLogNotifier(t *testing.T) {
	n := NewLogNotifier(discard)
	assert.NoError(t, n.SendReminder(context.Background(), &models.User{ID: 5}, 1))
}
