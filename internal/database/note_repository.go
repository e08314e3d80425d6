package database

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

const noteSelect = `
	SELECT n.id, n.user_id, n.subject_id, n.topic_id, n.subtopic_id, n.title, n.content, n.file_url,
		n.file_type, n.last_position, n.last_viewed_at, n.created_at, n.updated_at
	FROM notes n`

// CreateNote inserts a new note
func (s *Store) CreateNote(ctx context.Context, n *models.Note) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO notes (user_id, subject_id, topic_id, subtopic_id, title, content, file_url, file_type,
			last_position, last_viewed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		n.UserID, n.SubjectID, n.TopicID, n.SubtopicID, n.Title, n.Content, n.FileURL, n.FileType,
		n.LastPosition, utcPtr(n.LastViewedAt), utc(n.CreatedAt), utc(n.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create note")
	}
	n.ID = id
	return nil
}

// GetNote returns a user's note, or nil
func (s *Store) GetNote(ctx context.Context, userID, id int64) (*models.Note, error) {
	var n models.Note
	ok, err := s.get(ctx, &n, noteSelect+` WHERE n.id = ? AND n.user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get note")
	}
	if !ok {
		return nil, nil
	}
	return &n, nil
}

// ListNotes returns a user's notes, newest first
func (s *Store) ListNotes(ctx context.Context, find *models.FindNote) ([]models.Note, error) {
	w := &where{}
	w.add("n.user_id = ?", find.UserID)
	if find.SubjectID != nil {
		w.add("n.subject_id = ?", *find.SubjectID)
	}
	if find.TopicID != nil {
		w.add("n.topic_id = ?", *find.TopicID)
	}
	if find.SubtopicID != nil {
		w.add("n.subtopic_id = ?", *find.SubtopicID)
	}

	notes := []models.Note{}
	query := noteSelect + ` WHERE ` + w.String() + ` ORDER BY n.created_at DESC, n.id DESC`
	if err := s.selectRows(ctx, &notes, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list notes")
	}
	return notes, nil
}

// UpdateNote modifies an existing note
func (s *Store) UpdateNote(ctx context.Context, n *models.Note) error {
	err := s.execOne(ctx, s.db, `
		UPDATE notes SET title = ?, content = ?, file_url = ?, file_type = ?, last_position = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		n.Title, n.Content, n.FileURL, n.FileType, n.LastPosition, utc(n.UpdatedAt),
		n.ID, n.UserID,
	)
	return errors.Wrap(err, "failed to update note")
}

// TouchNote records when the note was last opened
func (s *Store) TouchNote(ctx context.Context, userID, id int64, at time.Time) error {
	err := s.execOne(ctx, s.db, `UPDATE notes SET last_viewed_at = ? WHERE id = ? AND user_id = ?`, utc(at), id, userID)
	return errors.Wrap(err, "failed to touch note")
}

// DeleteNote removes a note
func (s *Store) DeleteNote(ctx context.Context, userID, id int64) error {
	err := s.execOne(ctx, s.db, `DELETE FROM notes WHERE id = ? AND user_id = ?`, id, userID)
	return errors.Wrap(err, "failed to delete note")
}
