// Package reminder runs the hourly job that tells users about due revisions.
package reminder

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

// Default notification window, inclusive hours in the configured location
const (
	DefaultStartHour = 8
	DefaultEndHour   = 21
)

// Notifier delivers a reminder about count due revisions
type Notifier interface {
	SendReminder(ctx context.Context, user *models.User, count int) error
}

// Users finds the users to remind
type Users interface {
	GetUser(ctx context.Context, id int64) (*models.User, error)
	GetUsersForReminder(ctx context.Context, hour int) ([]models.User, error)
}

// Revisions answers which revisions of a user are due
type Revisions interface {
	GetPendingRevisions(ctx context.Context, userID int64, asOf time.Time) ([]models.Revision, error)
}

type Config struct {
	StartHour int
	EndHour   int
	Location  *time.Location
}

// Scheduler manages the reminder job
type Scheduler struct {
	cron      *gocron.Scheduler
	users     Users
	revisions Revisions
	notifier  Notifier
	cfg       Config
	clock     func() time.Time
	logger    *slog.Logger
}

// New creates a new scheduler instance
func New(users Users, revisions Revisions, notifier Notifier, cfg Config, logger *slog.Logger) *Scheduler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	cron := gocron.NewScheduler(cfg.Location)
	cron.SingletonModeAll()
	return &Scheduler{
		cron:      cron,
		users:     users,
		revisions: revisions,
		notifier:  notifier,
		cfg:       cfg,
		clock:     time.Now,
		logger:    logger,
	}
}

// Start schedules the check at the top of every hour and returns immediately.
// The job stops when ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) error {
	_, err := s.cron.Cron("0 * * * *").Do(func() {
		if _, err := s.CheckAndSendReminders(ctx); err != nil {
			s.logger.Error("reminder check failed", "err", err)
		}
	})
	if err != nil {
		return errors.Wrap(err, "failed to schedule reminders")
	}
	s.cron.StartAsync()
	go func() {
		<-ctx.Done()
		s.cron.Stop()
	}()
	s.logger.Info("reminder job started", "window_start", s.cfg.StartHour, "window_end", s.cfg.EndHour)
	return nil
}

// Stop terminates the job
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// InWindow reports whether hour is inside the notification window
func (s *Scheduler) InWindow(hour int) bool {
	return hour >= s.cfg.StartHour && hour <= s.cfg.EndHour
}

// CheckAndSendReminders reminds every user whose reminder hour is now. It
// returns how many users were notified. A failure for one user does not stop
// the others.
func (s *Scheduler) CheckAndSendReminders(ctx context.Context) (int, error) {
	now := s.clock().In(s.cfg.Location)
	hour := now.Hour()
	if !s.InWindow(hour) {
		s.logger.Debug("outside notification hours, skipping reminders",
			"hour", hour, "start", s.cfg.StartHour, "end", s.cfg.EndHour)
		return 0, nil
	}

	users, err := s.users.GetUsersForReminder(ctx, hour)
	if err != nil {
		return 0, err
	}

	var sent int
	for i := range users {
		ok, err := s.remind(ctx, &users[i], now)
		if err != nil {
			s.logger.Error("failed to send reminder", "user", users[i].ID, "err", err)
			continue
		}
		if ok {
			sent++
		}
	}
	return sent, nil
}

// RunManualCheck forces a check for one user regardless of the hour
func (s *Scheduler) RunManualCheck(ctx context.Context, userID int64) error {
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		return err
	}
	if user == nil {
		return errors.Wrapf(core.ErrNotFound, "user %d", userID)
	}
	_, err = s.remind(ctx, user, s.clock().In(s.cfg.Location))
	return err
}

func (s *Scheduler) remind(ctx context.Context, user *models.User, now time.Time) (bool, error) {
	due, err := s.revisions.GetPendingRevisions(ctx, user.ID, now)
	if err != nil {
		return false, err
	}
	if len(due) == 0 {
		return false, nil
	}
	if err := s.notifier.SendReminder(ctx, user, len(due)); err != nil {
		return false, err
	}
	return true, nil
}
