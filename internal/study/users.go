package study

import (
	"context"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

type ReminderSettingsPatch struct {
	TelegramChatID   *int64 `json:"telegramChatId"`
	RemindersEnabled *bool  `json:"remindersEnabled"`
	ReminderHour     *int   `json:"reminderHour" validate:"omitempty,min=0,max=23"`
}

// Profile returns the user record
func (s *Service) Profile(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, notFound("user", userID)
	}
	return user, nil
}

// UpdateReminderSettings changes when and where revision reminders are sent
func (s *Service) UpdateReminderSettings(ctx context.Context, userID int64, patch ReminderSettingsPatch) (*models.User, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	user, err := s.Profile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if patch.TelegramChatID != nil {
		user.TelegramChatID = *patch.TelegramChatID
	}
	if patch.RemindersEnabled != nil {
		user.RemindersEnabled = *patch.RemindersEnabled
	}
	if patch.ReminderHour != nil {
		user.ReminderHour = *patch.ReminderHour
	}
	user.UpdatedAt = s.now()

	if err := s.store.UpdateUserReminders(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ResetUserData deletes everything the user has recorded. The account and its
// reminder settings stay.
func (s *Service) ResetUserData(ctx context.Context, userID int64) error {
	if _, err := s.Profile(ctx, userID); err != nil {
		return err
	}
	if err := s.store.ResetUserData(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("user data reset", "user", userID)
	return nil
}
