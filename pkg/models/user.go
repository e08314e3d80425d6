package models

import "time"

// User is the owner of every record in the tracker
type User struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Email            string    `json:"email" db:"email"`
	TelegramChatID   int64     `json:"telegramChatId" db:"telegram_chat_id"`
	RemindersEnabled bool      `json:"remindersEnabled" db:"reminders_enabled"`
	ReminderHour     int       `json:"reminderHour" db:"reminder_hour"` // Hour of day for revision reminders (0-23)
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`
}
