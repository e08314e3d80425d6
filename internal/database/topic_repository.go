package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

const topicSelect = `
	SELECT t.id, t.subject_id, t.name, t.description, t.sort_order, t.completed, t.completed_at,
		t.created_at, t.updated_at
	FROM topics t
	JOIN subjects s ON s.id = t.subject_id`

// CreateTopic inserts a new topic
func (s *Store) CreateTopic(ctx context.Context, topic *models.Topic) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO topics (subject_id, name, description, sort_order, completed, completed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		topic.SubjectID, topic.Name, topic.Description, topic.Order, topic.Completed, utcPtr(topic.CompletedAt),
		utc(topic.CreatedAt), utc(topic.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create topic")
	}
	topic.ID = id
	return nil
}

// GetTopic returns a topic whose subject is owned by the user, or nil
func (s *Store) GetTopic(ctx context.Context, userID, topicID int64) (*models.Topic, error) {
	var topic models.Topic
	ok, err := s.get(ctx, &topic, topicSelect+` WHERE t.id = ? AND s.user_id = ?`, topicID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get topic")
	}
	if !ok {
		return nil, nil
	}
	return &topic, nil
}

// ListTopics returns the topics of a subject in their display order
func (s *Store) ListTopics(ctx context.Context, userID, subjectID int64) ([]models.Topic, error) {
	topics := []models.Topic{}
	err := s.selectRows(ctx, &topics, topicSelect+`
		WHERE t.subject_id = ? AND s.user_id = ?
		ORDER BY t.sort_order ASC, t.id ASC`, subjectID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list topics")
	}
	return topics, nil
}

// UpdateTopic modifies an existing topic owned by the user
func (s *Store) UpdateTopic(ctx context.Context, userID int64, topic *models.Topic) error {
	err := s.execOne(ctx, s.db, `
		UPDATE topics SET name = ?, description = ?, sort_order = ?, completed = ?, completed_at = ?, updated_at = ?
		WHERE id = ? AND subject_id IN (SELECT id FROM subjects WHERE user_id = ?)`,
		topic.Name, topic.Description, topic.Order, topic.Completed, utcPtr(topic.CompletedAt), utc(topic.UpdatedAt),
		topic.ID, userID,
	)
	return errors.Wrap(err, "failed to update topic")
}

// DeleteTopic removes a topic with its subtopics, notes and revisions. Practice
// papers filed under the topic stay with the subject.
func (s *Store) DeleteTopic(ctx context.Context, userID, topicID int64) error {
	owned := `SELECT t.id FROM topics t JOIN subjects s ON s.id = t.subject_id WHERE t.id = ? AND s.user_id = ?`
	args := []interface{}{topicID, userID}

	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		err := s.runCleanup(ctx, tx, []cleanup{
			{"delete notes", `DELETE FROM notes WHERE topic_id IN (` + owned + `)
				OR subtopic_id IN (SELECT id FROM subtopics WHERE topic_id IN (` + owned + `))`,
				[]interface{}{topicID, userID, topicID, userID}},
			{"delete subtopics", `DELETE FROM subtopics WHERE topic_id IN (` + owned + `)`, args},
			{"detach practice papers", `UPDATE practice_papers SET topic_id = NULL WHERE topic_id IN (` + owned + `)`, args},
			{"delete revisions", `DELETE FROM revisions WHERE topic_id IN (` + owned + `)`, args},
		})
		if err != nil {
			return err
		}
		err = s.execOne(ctx, tx, `DELETE FROM topics WHERE id IN (`+owned+`)`, topicID, userID)
		return errors.Wrap(err, "failed to delete topic")
	})
}
