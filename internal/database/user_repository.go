package database

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

const userColumns = `id, name, email, telegram_chat_id, reminders_enabled, reminder_hour, created_at, updated_at`

// CreateUser inserts a new user
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	now := time.Now().UTC()
	id, err := s.insert(ctx, s.db, `
		INSERT INTO users (name, email, telegram_chat_id, reminders_enabled, reminder_hour, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		user.Name, user.Email, user.TelegramChatID, user.RemindersEnabled, user.ReminderHour, now, now,
	)
	if err != nil {
		return errors.Wrap(err, "failed to create user")
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// GetUser returns a user by ID, or nil when there is none
func (s *Store) GetUser(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	ok, err := s.get(ctx, &user, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// GetUserByEmail returns a user by email, or nil when there is none
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	ok, err := s.get(ctx, &user, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user by email")
	}
	if !ok {
		return nil, nil
	}
	return &user, nil
}

// UpdateUserReminders changes the reminder preferences of a user
func (s *Store) UpdateUserReminders(ctx context.Context, user *models.User) error {
	err := s.execOne(ctx, s.db, `
		UPDATE users SET telegram_chat_id = ?, reminders_enabled = ?, reminder_hour = ?, updated_at = ?
		WHERE id = ?`,
		user.TelegramChatID, user.RemindersEnabled, user.ReminderHour, time.Now().UTC(), user.ID,
	)
	return errors.Wrap(err, "failed to update user")
}

// GetUsersForReminder returns users who want revision reminders at the given hour
func (s *Store) GetUsersForReminder(ctx context.Context, hour int) ([]models.User, error) {
	var users []models.User
	err := s.selectRows(ctx, &users, `
		SELECT `+userColumns+` FROM users
		WHERE reminders_enabled = ? AND reminder_hour = ?
		ORDER BY id`, true, hour)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get users for reminder")
	}
	return users, nil
}

// ResetUserData deletes every record the user owns in one transaction. The
// user row and its reminder settings are kept.
func (s *Store) ResetUserData(ctx context.Context, userID int64) error {
	subjects := `SELECT id FROM subjects WHERE user_id = ?`
	topics := `SELECT id FROM topics WHERE subject_id IN (` + subjects + `)`
	papers := `SELECT id FROM practice_papers WHERE subject_id IN (` + subjects + `)`
	args := []interface{}{userID}

	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		return s.runCleanup(ctx, tx, []cleanup{
			{"delete notes", `DELETE FROM notes WHERE user_id = ?`, args},
			{"delete practice paper questions", `DELETE FROM practice_paper_questions WHERE practice_paper_id IN (` + papers + `)`, args},
			{"delete practice paper logs", `DELETE FROM practice_paper_logs WHERE practice_paper_id IN (` + papers + `)`, args},
			{"delete practice papers", `DELETE FROM practice_papers WHERE subject_id IN (` + subjects + `)`, args},
			{"delete exams", `DELETE FROM exams WHERE user_id = ?`, args},
			{"delete subtopics", `DELETE FROM subtopics WHERE topic_id IN (` + topics + `)`, args},
			{"delete revisions", `DELETE FROM revisions WHERE topic_id IN (` + topics + `)`, args},
			{"delete topics", `DELETE FROM topics WHERE subject_id IN (` + subjects + `)`, args},
			{"delete subjects", `DELETE FROM subjects WHERE user_id = ?`, args},
			{"delete sat sessions", `DELETE FROM sat_sessions WHERE user_id = ?`, args},
			{"delete study sessions", `DELETE FROM study_sessions WHERE user_id = ?`, args},
			{"delete learning sessions", `DELETE FROM learning_sessions WHERE project_id IN (
				SELECT id FROM learning_projects WHERE user_id = ?)`, args},
			{"delete learning projects", `DELETE FROM learning_projects WHERE user_id = ?`, args},
			{"delete vocabulary", `DELETE FROM vocabulary WHERE user_id = ?`, args},
			{"delete grammar rules", `DELETE FROM grammar_rules WHERE user_id = ?`, args},
			{"delete essays", `DELETE FROM essays WHERE user_id = ?`, args},
			{"delete error entries", `DELETE FROM error_entries WHERE user_id = ?`, args},
		})
	})
}
