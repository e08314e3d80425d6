package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

const subjectSelect = `
	SELECT s.id, s.user_id, s.name, s.type, s.level, s.color, s.icon, s.created_at, s.updated_at,
		(SELECT COUNT(*) FROM topics t WHERE t.subject_id = s.id) AS topic_count
	FROM subjects s`

// CreateSubject inserts a new subject
func (s *Store) CreateSubject(ctx context.Context, subject *models.Subject) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO subjects (user_id, name, type, level, color, icon, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		subject.UserID, subject.Name, subject.Type, subject.Level, subject.Color, subject.Icon,
		utc(subject.CreatedAt), utc(subject.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create subject")
	}
	subject.ID = id
	return nil
}

// GetSubject returns a subject owned by the user, or nil
func (s *Store) GetSubject(ctx context.Context, userID, subjectID int64) (*models.Subject, error) {
	var subject models.Subject
	ok, err := s.get(ctx, &subject, subjectSelect+` WHERE s.id = ? AND s.user_id = ?`, subjectID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get subject")
	}
	if !ok {
		return nil, nil
	}
	return &subject, nil
}

// ListSubjects returns the subjects of a user, newest first
func (s *Store) ListSubjects(ctx context.Context, userID int64) ([]models.Subject, error) {
	subjects := []models.Subject{}
	err := s.selectRows(ctx, &subjects, subjectSelect+` WHERE s.user_id = ? ORDER BY s.created_at DESC, s.id DESC`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list subjects")
	}
	return subjects, nil
}

// UpdateSubject modifies an existing subject
func (s *Store) UpdateSubject(ctx context.Context, subject *models.Subject) error {
	err := s.execOne(ctx, s.db, `
		UPDATE subjects SET name = ?, type = ?, level = ?, color = ?, icon = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		subject.Name, subject.Type, subject.Level, subject.Color, subject.Icon, utc(subject.UpdatedAt),
		subject.ID, subject.UserID,
	)
	return errors.Wrap(err, "failed to update subject")
}

// DeleteSubject removes a subject together with everything filed under it.
// Exams outlive their subject and are only detached.
func (s *Store) DeleteSubject(ctx context.Context, userID, subjectID int64) error {
	owned := `SELECT id FROM subjects WHERE id = ? AND user_id = ?`
	topics := `SELECT id FROM topics WHERE subject_id IN (` + owned + `)`
	subtopics := `SELECT id FROM subtopics WHERE topic_id IN (` + topics + `)`
	papers := `SELECT id FROM practice_papers WHERE subject_id IN (` + owned + `)`
	args := []interface{}{subjectID, userID}

	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		err := s.runCleanup(ctx, tx, []cleanup{
			{"delete notes", `DELETE FROM notes WHERE subject_id IN (` + owned + `)
				OR topic_id IN (` + topics + `) OR subtopic_id IN (` + subtopics + `)`,
				[]interface{}{subjectID, userID, subjectID, userID, subjectID, userID}},
			{"delete practice paper questions", `DELETE FROM practice_paper_questions WHERE practice_paper_id IN (` + papers + `)`, args},
			{"delete practice paper logs", `DELETE FROM practice_paper_logs WHERE practice_paper_id IN (` + papers + `)`, args},
			{"delete practice papers", `DELETE FROM practice_papers WHERE subject_id IN (` + owned + `)`, args},
			{"delete subtopics", `DELETE FROM subtopics WHERE topic_id IN (` + topics + `)`, args},
			{"delete revisions", `DELETE FROM revisions WHERE topic_id IN (` + topics + `)`, args},
			{"delete topics", `DELETE FROM topics WHERE subject_id IN (` + owned + `)`, args},
			{"detach exams", `UPDATE exams SET subject_id = NULL WHERE subject_id = ? AND user_id = ?`, args},
		})
		if err != nil {
			return err
		}
		err = s.execOne(ctx, tx, `DELETE FROM subjects WHERE id = ? AND user_id = ?`, subjectID, userID)
		return errors.Wrap(err, "failed to delete subject")
	})
}
