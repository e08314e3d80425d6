package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

// ReplacePendingRevisions deletes the incomplete revisions of a topic and
// inserts the new batch in the same transaction, so a topic never ends up with
// two schedules or half of one.
func (s *Store) ReplacePendingRevisions(ctx context.Context, topicID int64, revisions []*models.Revision) error {
	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM revisions WHERE topic_id = ? AND completed = ?`), topicID, false)
		if err != nil {
			return errors.Wrap(err, "failed to delete pending revisions")
		}

		for _, rev := range revisions {
			id, err := s.insert(ctx, tx, `
				INSERT INTO revisions (
					topic_id, scheduled_for, session_number, interval_days,
					completed, completed_at, notes, created_at, updated_at
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				topicID, utc(rev.ScheduledFor), rev.SessionNumber, rev.Interval,
				rev.Completed, utcPtr(rev.CompletedAt), rev.Notes, utc(rev.CreatedAt), utc(rev.UpdatedAt),
			)
			if err != nil {
				return errors.Wrap(err, "failed to create revision")
			}
			rev.ID = id
			rev.TopicID = topicID
		}
		return nil
	})
}

// ListRevisions returns revisions matching find, earliest scheduled first
func (s *Store) ListRevisions(ctx context.Context, find *models.FindRevision) ([]models.Revision, error) {
	w := &where{}
	if find.ID != nil {
		w.add("r.id = ?", *find.ID)
	}
	if find.UserID != nil {
		w.add("s.user_id = ?", *find.UserID)
	}
	if find.TopicID != nil {
		w.add("r.topic_id = ?", *find.TopicID)
	}
	if find.Completed != nil {
		w.add("r.completed = ?", *find.Completed)
	}
	if find.ScheduledBefore != nil {
		w.add("r.scheduled_for <= ?", utc(*find.ScheduledBefore))
	}

	query := limit(`
		SELECT r.id, r.topic_id, t.name AS topic_name, s.id AS subject_id, s.name AS subject_name,
			r.scheduled_for, r.session_number, r.interval_days, r.completed, r.completed_at, r.notes,
			r.created_at, r.updated_at
		FROM revisions r
		JOIN topics t ON t.id = r.topic_id
		JOIN subjects s ON s.id = t.subject_id
		WHERE `+w.String()+`
		ORDER BY r.scheduled_for ASC, r.session_number ASC`, find.Limit)

	revisions := []models.Revision{}
	if err := s.selectRows(ctx, &revisions, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list revisions")
	}
	return revisions, nil
}

// UpdateRevision saves the status and notes of a revision
func (s *Store) UpdateRevision(ctx context.Context, rev *models.Revision) error {
	err := s.execOne(ctx, s.db, `
		UPDATE revisions SET completed = ?, completed_at = ?, notes = ?, updated_at = ?
		WHERE id = ?`,
		rev.Completed, utcPtr(rev.CompletedAt), rev.Notes, utc(rev.UpdatedAt), rev.ID,
	)
	return errors.Wrap(err, "failed to update revision")
}
