package reminder

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

type fakeUsers struct {
	users []models.User
}

func (f *fakeUsers) GetUser(_ context.Context, id int64) (*models.User, error) {
	for i := range f.users {
		if f.users[i].ID == id {
			return &f.users[i], nil
		}
	}
	return nil, nil
}

func (f *fakeUsers) GetUsersForReminder(_ context.Context, hour int) ([]models.User, error) {
	var out []models.User
	for _, u := range f.users {
		if u.RemindersEnabled && u.ReminderHour == hour {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeRevisions map[int64]int

func (f fakeRevisions) GetPendingRevisions(_ context.Context, userID int64, _ time.Time) ([]models.Revision, error) {
	return make([]models.Revision, f[userID]), nil
}

type recorder struct {
	calls map[int64]int
	fail  int64
}

func (r *recorder) SendReminder(_ context.Context, user *models.User, count int) error {
	if user.ID == r.fail {
		return errors.New("delivery failed")
	}
	r.calls[user.ID] = count
	return nil
}

func newTestScheduler(at time.Time, users []models.User, due fakeRevisions, notifier *recorder) *Scheduler {
	s := New(&fakeUsers{users: users}, due, notifier, Config{StartHour: 8, EndHour: 20},
		slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.clock = func() time.Time { return at }
	return s
}

func TestCheckAndSendReminders(t *testing.T) {
	users := []models.User{
		{ID: 1, RemindersEnabled: true, ReminderHour: 9},
		{ID: 2, RemindersEnabled: true, ReminderHour: 9},
		{ID: 3, RemindersEnabled: true, ReminderHour: 10},
		{ID: 4, RemindersEnabled: false, ReminderHour: 9},
		{ID: 5, RemindersEnabled: true, ReminderHour: 9},
	}
	due := fakeRevisions{1: 3, 2: 0, 3: 2, 4: 5, 5: 1}
	notifier := &recorder{calls: map[int64]int{}, fail: 5}

	s := newTestScheduler(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC), users, due, notifier)
	sent, err := s.CheckAndSendReminders(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, sent)
	assert.Equal(t, map[int64]int{1: 3}, notifier.calls)
}

func TestOutsideWindow(t *testing.T) {
	users := []models.User{{ID: 1, RemindersEnabled: true, ReminderHour: 22}}
	notifier := &recorder{calls: map[int64]int{}}

	s := newTestScheduler(time.Date(2024, 3, 15, 22, 0, 0, 0, time.UTC), users, fakeRevisions{1: 4}, notifier)
	sent, err := s.CheckAndSendReminders(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sent)
	assert.Empty(t, notifier.calls)
}

func TestRunManualCheck(t *testing.T) {
	users := []models.User{{ID: 7}}
	notifier := &recorder{calls: map[int64]int{}}
	s := newTestScheduler(time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC), users, fakeRevisions{7: 2}, notifier)

	require.NoError(t, s.RunManualCheck(context.Background(), 7))
	assert.Equal(t, 2, notifier.calls[7])

	err := s.RunManualCheck(context.Background(), 99)
	assert.True(t, core.IsNotFound(err))
}

func TestStartStopsWithContext(t *testing.T) {
	s := newTestScheduler(time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC), nil, fakeRevisions{}, &recorder{calls: map[int64]int{}})

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))
	require.True(t, s.cron.IsRunning())

	cancel()
	assert.Eventually(t, func() bool { return !s.cron.IsRunning() }, time.Second, 10*time.Millisecond)

	// Stop after the context already stopped the job is a no-op
	s.Stop()
	assert.False(t, s.cron.IsRunning())
}
