package revision

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

// memStore is an in-memory Store keyed by topic owner.
type memStore struct {
	mu        sync.Mutex
	owners    map[int64]int64 // topic id -> user id
	topics    map[int64]models.Topic
	revisions map[int64]models.Revision
	nextID    int64
	failWith  error
}

func newMemStore() *memStore {
	return &memStore{
		owners:    make(map[int64]int64),
		topics:    make(map[int64]models.Topic),
		revisions: make(map[int64]models.Revision),
	}
}

func (m *memStore) addTopic(userID, topicID int64, name string) {
	m.owners[topicID] = userID
	m.topics[topicID] = models.Topic{ID: topicID, Name: name}
}

func (m *memStore) GetTopic(_ context.Context, userID, topicID int64) (*models.Topic, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.owners[topicID] != userID {
		return nil, nil
	}
	topic := m.topics[topicID]
	return &topic, nil
}

func (m *memStore) ReplacePendingRevisions(_ context.Context, topicID int64, revisions []*models.Revision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return m.failWith
	}
	for id, r := range m.revisions {
		if r.TopicID == topicID && !r.Completed {
			delete(m.revisions, id)
		}
	}
	for _, r := range revisions {
		m.nextID++
		r.ID = m.nextID
		m.revisions[r.ID] = *r
	}
	return nil
}

func (m *memStore) ListRevisions(_ context.Context, find *models.FindRevision) ([]models.Revision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.Revision
	for _, r := range m.revisions {
		if find.ID != nil && r.ID != *find.ID {
			continue
		}
		if find.UserID != nil && m.owners[r.TopicID] != *find.UserID {
			continue
		}
		if find.Completed != nil && r.Completed != *find.Completed {
			continue
		}
		if find.ScheduledBefore != nil && r.ScheduledFor.After(*find.ScheduledBefore) {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ScheduledFor.Before(out[j].ScheduledFor) })
	return out, nil
}

func (m *memStore) UpdateRevision(_ context.Context, revision *models.Revision) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.revisions[revision.ID]; !ok {
		return core.ErrNotFound
	}
	m.revisions[revision.ID] = *revision
	return nil
}

func (m *memStore) incomplete(topicID int64) int {
	var n int
	for _, r := range m.revisions {
		if r.TopicID == topicID && !r.Completed {
			n++
		}
	}
	return n
}

func TestScheduleRevisions(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addTopic(1, 10, "Photosynthesis")
	s := NewScheduler(store)

	completedAt := time.Date(2026, 10, 19, 16, 45, 12, 0, time.UTC)
	revisions, err := s.ScheduleRevisions(ctx, 1, 10, completedAt)
	require.NoError(t, err)
	require.Len(t, revisions, len(Intervals))

	wantDays := []int{1, 3, 7, 14, 28, 58}
	for i, r := range revisions {
		assert.Equal(t, i+1, r.SessionNumber)
		assert.Equal(t, wantDays[i], r.Interval)
		assert.Equal(t, completedAt.AddDate(0, 0, wantDays[i]), r.ScheduledFor)
		assert.Equal(t, "Photosynthesis", r.TopicName)
		assert.False(t, r.Completed)
		assert.NotZero(t, r.ID)
	}
}

func TestScheduleRevisionsTwiceKeepsOneBatch(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addTopic(1, 10, "Cells")
	s := NewScheduler(store)

	first := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	_, err := s.ScheduleRevisions(ctx, 1, 10, first)
	require.NoError(t, err)
	_, err = s.ScheduleRevisions(ctx, 1, 10, first.Add(time.Hour))
	require.NoError(t, err)

	assert.Equal(t, len(Intervals), store.incomplete(10))
}

func TestScheduleRevisionsKeepsCompletedOnes(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addTopic(1, 10, "Cells")
	s := NewScheduler(store)

	first := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	revisions, err := s.ScheduleRevisions(ctx, 1, 10, first)
	require.NoError(t, err)
	_, err = s.CompleteRevision(ctx, 1, revisions[0].ID, first.AddDate(0, 0, 1))
	require.NoError(t, err)

	_, err = s.ScheduleRevisions(ctx, 1, 10, first.AddDate(0, 0, 2))
	require.NoError(t, err)

	assert.Len(t, store.revisions, len(Intervals)+1)
	assert.Equal(t, len(Intervals), store.incomplete(10))
}

func TestScheduleRevisionsErrors(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addTopic(1, 10, "Cells")
	s := NewScheduler(store)
	now := time.Now()

	_, err := s.ScheduleRevisions(ctx, 1, 0, now)
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = s.ScheduleRevisions(ctx, 1, 10, time.Time{})
	assert.ErrorIs(t, err, core.ErrInvalidInput)

	_, err = s.ScheduleRevisions(ctx, 1, 99, now)
	assert.True(t, core.IsNotFound(err))

	// another user's topic is reported the same way as a missing one
	_, err = s.ScheduleRevisions(ctx, 2, 10, now)
	assert.True(t, core.IsNotFound(err))

	boom := errors.New("disk full")
	store.failWith = boom
	_, err = s.ScheduleRevisions(ctx, 1, 10, now)
	assert.Equal(t, boom, errors.Cause(err))
}

func TestGetPendingRevisions(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addTopic(1, 10, "Cells")
	store.addTopic(2, 20, "Other user")
	s := NewScheduler(store)

	completedAt := time.Date(2026, 10, 1, 22, 30, 0, 0, time.UTC)
	_, err := s.ScheduleRevisions(ctx, 1, 10, completedAt)
	require.NoError(t, err)
	_, err = s.ScheduleRevisions(ctx, 2, 20, completedAt)
	require.NoError(t, err)

	// session 2 is scheduled for 2026-10-04 22:30; asking in the morning still counts it
	morning := time.Date(2026, 10, 4, 6, 0, 0, 0, time.UTC)
	pending, err := s.GetPendingRevisions(ctx, 1, morning)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, 1, pending[0].SessionNumber)
	assert.Equal(t, 2, pending[1].SessionNumber)
	assert.True(t, pending[0].ScheduledFor.Before(pending[1].ScheduledFor))
	for _, r := range pending {
		assert.Equal(t, int64(10), r.TopicID)
	}

	pending, err = s.GetPendingRevisions(ctx, 2, morning)
	require.NoError(t, err)
	for _, r := range pending {
		assert.Equal(t, int64(20), r.TopicID)
	}
}

func TestCompleteRevision(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addTopic(1, 10, "Cells")
	s := NewScheduler(store)

	completedAt := time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC)
	revisions, err := s.ScheduleRevisions(ctx, 1, 10, completedAt)
	require.NoError(t, err)
	id := revisions[0].ID

	firstDone := completedAt.AddDate(0, 0, 1)
	rev, err := s.CompleteRevision(ctx, 1, id, firstDone)
	require.NoError(t, err)
	assert.True(t, rev.Completed)
	require.NotNil(t, rev.CompletedAt)
	assert.Equal(t, firstDone, *rev.CompletedAt)

	rev, err = s.CompleteRevision(ctx, 1, id, firstDone.Add(48*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, firstDone, *rev.CompletedAt)

	_, err = s.CompleteRevision(ctx, 2, id, firstDone)
	assert.True(t, core.IsNotFound(err))

	_, err = s.CompleteRevision(ctx, 1, 12345, firstDone)
	assert.True(t, core.IsNotFound(err))
}

func TestUpdateRevisionNotes(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	store.addTopic(1, 10, "Cells")
	s := NewScheduler(store)

	revisions, err := s.ScheduleRevisions(ctx, 1, 10, time.Now())
	require.NoError(t, err)

	notes := "struggled with mitosis"
	rev, err := s.UpdateRevision(ctx, 1, revisions[2].ID, Patch{Notes: &notes}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, notes, rev.Notes)
	assert.False(t, rev.Completed)
	assert.Nil(t, rev.CompletedAt)
}
