package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

const subtopicSelect = `
	SELECT st.id, st.topic_id, st.name, st.description, st.sort_order, st.completed, st.completed_at,
		st.created_at, st.updated_at
	FROM subtopics st
	JOIN topics t ON t.id = st.topic_id
	JOIN subjects s ON s.id = t.subject_id`

// CreateSubtopic inserts a new subtopic
func (s *Store) CreateSubtopic(ctx context.Context, st *models.Subtopic) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO subtopics (topic_id, name, description, sort_order, completed, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		st.TopicID, st.Name, st.Description, st.Order, st.Completed, utcPtr(st.CompletedAt),
		utc(st.CreatedAt), utc(st.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create subtopic")
	}
	st.ID = id
	return nil
}

// GetSubtopic returns a subtopic owned through topic and subject by the user, or nil
func (s *Store) GetSubtopic(ctx context.Context, userID, id int64) (*models.Subtopic, error) {
	var st models.Subtopic
	ok, err := s.get(ctx, &st, subtopicSelect+` WHERE st.id = ? AND s.user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get subtopic")
	}
	if !ok {
		return nil, nil
	}
	return &st, nil
}

// ListSubtopics returns the subtopics of every topic of a subject, grouped by topic
func (s *Store) ListSubtopics(ctx context.Context, userID, subjectID int64) ([]models.Subtopic, error) {
	subtopics := []models.Subtopic{}
	err := s.selectRows(ctx, &subtopics, subtopicSelect+`
		WHERE t.subject_id = ? AND s.user_id = ?
		ORDER BY st.topic_id ASC, st.sort_order ASC, st.id ASC`, subjectID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subtopics")
	}
	return subtopics, nil
}

// UpdateSubtopic modifies an existing subtopic owned by the user
func (s *Store) UpdateSubtopic(ctx context.Context, userID int64, st *models.Subtopic) error {
	err := s.execOne(ctx, s.db, `
		UPDATE subtopics SET name = ?, description = ?, sort_order = ?, completed = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND topic_id IN (
			SELECT t.id FROM topics t JOIN subjects s ON s.id = t.subject_id WHERE s.user_id = ?)`,
		st.Name, st.Description, st.Order, st.Completed, utcPtr(st.CompletedAt), utc(st.UpdatedAt),
		st.ID, userID,
	)
	return errors.Wrap(err, "failed to update subtopic")
}

// DeleteSubtopic removes a subtopic and the notes attached to it
func (s *Store) DeleteSubtopic(ctx context.Context, userID, id int64) error {
	owned := `SELECT st.id FROM subtopics st
		JOIN topics t ON t.id = st.topic_id
		JOIN subjects s ON s.id = t.subject_id
		WHERE st.id = ? AND s.user_id = ?`

	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, s.db.Rebind(`DELETE FROM notes WHERE subtopic_id IN (`+owned+`)`), id, userID)
		if err != nil {
			return errors.Wrap(err, "failed to delete notes")
		}
		err = s.execOne(ctx, tx, `DELETE FROM subtopics WHERE id IN (`+owned+`)`, id, userID)
		return errors.Wrap(err, "failed to delete subtopic")
	})
}
