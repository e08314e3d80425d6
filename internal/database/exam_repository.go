package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

const examSelect = `
	SELECT e.id, e.user_id, e.subject_id, s.name AS subject_name, e.name, e.exam_date, e.board, e.notes,
		e.completed, e.created_at, e.updated_at
	FROM exams e
	LEFT JOIN subjects s ON s.id = e.subject_id`

// CreateExam inserts a new exam
func (s *Store) CreateExam(ctx context.Context, exam *models.Exam) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO exams (user_id, subject_id, name, exam_date, board, notes, completed, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exam.UserID, exam.SubjectID, exam.Name, utc(exam.ExamDate), exam.Board, exam.Notes, exam.Completed,
		utc(exam.CreatedAt), utc(exam.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create exam")
	}
	exam.ID = id
	return nil
}

// GetExam returns a user's exam, or nil
func (s *Store) GetExam(ctx context.Context, userID, id int64) (*models.Exam, error) {
	var exam models.Exam
	ok, err := s.get(ctx, &exam, examSelect+` WHERE e.id = ? AND e.user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get exam")
	}
	if !ok {
		return nil, nil
	}
	return &exam, nil
}

// ListExams returns a user's exams, soonest first
func (s *Store) ListExams(ctx context.Context, find *models.FindExam) ([]models.Exam, error) {
	w := &where{}
	w.add("e.user_id = ?", find.UserID)
	if find.Completed != nil {
		w.add("e.completed = ?", *find.Completed)
	}

	exams := []models.Exam{}
	query := limit(examSelect+` WHERE `+w.String()+` ORDER BY e.exam_date ASC, e.id ASC`, find.Limit)
	if err := s.selectRows(ctx, &exams, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list exams")
	}
	return exams, nil
}

// UpdateExam modifies an existing exam
func (s *Store) UpdateExam(ctx context.Context, exam *models.Exam) error {
	err := s.execOne(ctx, s.db, `
		UPDATE exams SET subject_id = ?, name = ?, exam_date = ?, board = ?, notes = ?, completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		exam.SubjectID, exam.Name, utc(exam.ExamDate), exam.Board, exam.Notes, exam.Completed, utc(exam.UpdatedAt),
		exam.ID, exam.UserID,
	)
	return errors.Wrap(err, "failed to update exam")
}

// DeleteExam removes an exam
func (s *Store) DeleteExam(ctx context.Context, userID, id int64) error {
	err := s.execOne(ctx, s.db, `DELETE FROM exams WHERE id = ? AND user_id = ?`, id, userID)
	return errors.Wrap(err, "failed to delete exam")
}
