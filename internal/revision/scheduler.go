// Package revision schedules spaced-repetition reviews of completed topics.
package revision

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/internal/dateutil"
	"github.com/example/studytrack/pkg/models"
)

// Interval is one step of the revision schedule.
type Interval struct {
	Session int // 1-based position in the schedule
	Days    int // days after the topic was completed
}

// Intervals is the fixed review schedule: next day, day 3, end of week one,
// two weeks, four weeks and a little over eight weeks after completion.
var Intervals = []Interval{
	{Session: 1, Days: 1},
	{Session: 2, Days: 3},
	{Session: 3, Days: 7},
	{Session: 4, Days: 14},
	{Session: 5, Days: 28},
	{Session: 6, Days: 58},
}

// Store is the persistence the scheduler needs.
type Store interface {
	GetTopic(ctx context.Context, userID, topicID int64) (*models.Topic, error)
	// ReplacePendingRevisions deletes the incomplete revisions of the topic and
	// inserts the given ones atomically.
	ReplacePendingRevisions(ctx context.Context, topicID int64, revisions []*models.Revision) error
	ListRevisions(ctx context.Context, find *models.FindRevision) ([]models.Revision, error)
	UpdateRevision(ctx context.Context, revision *models.Revision) error
}

// Patch is a partial update of a revision.
type Patch struct {
	Completed *bool   `json:"completed"`
	Notes     *string `json:"notes" validate:"omitempty,max=2000"`
}

// Scheduler creates and completes revisions.
type Scheduler struct {
	store Store
}

// NewScheduler creates a new scheduler instance
func NewScheduler(store Store) *Scheduler {
	return &Scheduler{store: store}
}

// Plan returns the revisions a topic completed at completedAt should get.
func Plan(topicID int64, completedAt time.Time) []*models.Revision {
	revisions := make([]*models.Revision, 0, len(Intervals))
	for _, iv := range Intervals {
		revisions = append(revisions, &models.Revision{
			TopicID:       topicID,
			ScheduledFor:  dateutil.AddDays(completedAt, iv.Days),
			SessionNumber: iv.Session,
			Interval:      iv.Days,
			CreatedAt:     completedAt,
			UpdatedAt:     completedAt,
		})
	}
	return revisions
}

// ScheduleRevisions replaces any incomplete schedule of the topic with a fresh one
// counted from completedAt.
func (s *Scheduler) ScheduleRevisions(ctx context.Context, userID, topicID int64, completedAt time.Time) ([]models.Revision, error) {
	if userID <= 0 || topicID <= 0 || completedAt.IsZero() {
		return nil, core.ErrInvalidInput
	}

	topic, err := s.store.GetTopic(ctx, userID, topicID)
	if err != nil {
		return nil, errors.Wrap(err, "scheduling revisions")
	}
	if topic == nil {
		return nil, errors.Wrapf(core.ErrNotFound, "topic %d", topicID)
	}

	planned := Plan(topicID, completedAt)
	if err := s.store.ReplacePendingRevisions(ctx, topicID, planned); err != nil {
		return nil, errors.Wrap(err, "scheduling revisions")
	}

	revisions := make([]models.Revision, len(planned))
	for i, r := range planned {
		r.TopicName = topic.Name
		revisions[i] = *r
	}
	return revisions, nil
}

// GetPendingRevisions returns the incomplete revisions of the user that are due
// by the end of asOf's day, oldest first.
func (s *Scheduler) GetPendingRevisions(ctx context.Context, userID int64, asOf time.Time) ([]models.Revision, error) {
	if userID <= 0 {
		return nil, core.ErrInvalidInput
	}

	completed := false
	dueBy := dateutil.EndOfDay(asOf)
	revisions, err := s.store.ListRevisions(ctx, &models.FindRevision{
		UserID:          &userID,
		Completed:       &completed,
		ScheduledBefore: &dueBy,
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing pending revisions")
	}
	return revisions, nil
}

// CompleteRevision marks the revision done. The completion time is only set the
// first time.
func (s *Scheduler) CompleteRevision(ctx context.Context, userID, revisionID int64, now time.Time) (*models.Revision, error) {
	done := true
	return s.UpdateRevision(ctx, userID, revisionID, Patch{Completed: &done}, now)
}

// UpdateRevision applies patch to a revision owned by the user.
func (s *Scheduler) UpdateRevision(ctx context.Context, userID, revisionID int64, patch Patch, now time.Time) (*models.Revision, error) {
	if userID <= 0 || revisionID <= 0 {
		return nil, core.ErrInvalidInput
	}
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}

	revision, err := s.get(ctx, userID, revisionID)
	if err != nil {
		return nil, err
	}

	if patch.Completed != nil {
		if *patch.Completed && !revision.Completed && revision.CompletedAt == nil {
			completedAt := now
			revision.CompletedAt = &completedAt
		}
		revision.Completed = *patch.Completed
	}
	if patch.Notes != nil {
		revision.Notes = *patch.Notes
	}
	revision.UpdatedAt = now

	if err := s.store.UpdateRevision(ctx, revision); err != nil {
		return nil, errors.Wrap(err, "updating revision")
	}
	return revision, nil
}

func (s *Scheduler) get(ctx context.Context, userID, revisionID int64) (*models.Revision, error) {
	revisions, err := s.store.ListRevisions(ctx, &models.FindRevision{
		ID:     &revisionID,
		UserID: &userID,
		Limit:  1,
	})
	if err != nil {
		return nil, errors.Wrap(err, "getting revision")
	}
	if len(revisions) == 0 {
		return nil, errors.Wrapf(core.ErrNotFound, "revision %d", revisionID)
	}
	return &revisions[0], nil
}
