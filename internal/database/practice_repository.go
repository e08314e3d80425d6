package database

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

const paperSelect = `
	SELECT p.id, p.subject_id, s.name AS subject_name, p.topic_id, t.name AS topic_name, p.paper_name,
		p.paper_type, p.pdf_url, p.question_start, p.question_end, p.total_questions, p.completed, p.score,
		p.total_marks, p.notes, p.reminder_days, p.reminder_date, p.created_at, p.updated_at
	FROM practice_papers p
	JOIN subjects s ON s.id = p.subject_id
	LEFT JOIN topics t ON t.id = p.topic_id`

// ownedPaper selects the id of a paper whose subject belongs to the user
const ownedPaper = `SELECT p.id FROM practice_papers p JOIN subjects s ON s.id = p.subject_id WHERE p.id = ? AND s.user_id = ?`

// CreatePracticePaper inserts a new practice paper
func (s *Store) CreatePracticePaper(ctx context.Context, p *models.PracticePaper) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO practice_papers (subject_id, topic_id, paper_name, paper_type, pdf_url, question_start,
			question_end, total_questions, completed, score, total_marks, notes, reminder_days, reminder_date,
			created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.SubjectID, p.TopicID, p.PaperName, p.PaperType, p.PDFURL, p.QuestionStart,
		p.QuestionEnd, p.TotalQuestions, p.Completed, p.Score, p.TotalMarks, p.Notes, p.ReminderDays,
		utcPtr(p.ReminderDate), utc(p.CreatedAt), utc(p.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create practice paper")
	}
	p.ID = id
	return nil
}

// GetPracticePaper returns a paper filed under one of the user's subjects, or nil
func (s *Store) GetPracticePaper(ctx context.Context, userID, id int64) (*models.PracticePaper, error) {
	var p models.PracticePaper
	ok, err := s.get(ctx, &p, paperSelect+` WHERE p.id = ? AND s.user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get practice paper")
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListPracticePapers returns the user's papers, newest first, or by reminder
// date when ReminderBefore is set
func (s *Store) ListPracticePapers(ctx context.Context, find *models.FindPracticePaper) ([]models.PracticePaper, error) {
	w := &where{}
	w.add("s.user_id = ?", find.UserID)
	if find.SubjectID != nil {
		w.add("p.subject_id = ?", *find.SubjectID)
	}
	if find.TopicID != nil {
		w.add("p.topic_id = ?", *find.TopicID)
	}
	order := ` ORDER BY p.created_at DESC, p.id DESC`
	if find.ReminderBefore != nil {
		w.add("p.reminder_date IS NOT NULL AND p.reminder_date <= ?", utc(*find.ReminderBefore))
		order = ` ORDER BY p.reminder_date ASC, p.id ASC`
	}

	papers := []models.PracticePaper{}
	if err := s.selectRows(ctx, &papers, paperSelect+` WHERE `+w.String()+order, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list practice papers")
	}
	return papers, nil
}

// UpdatePracticePaper modifies an existing paper owned by the user
func (s *Store) UpdatePracticePaper(ctx context.Context, userID int64, p *models.PracticePaper) error {
	return errors.Wrap(s.updatePaper(ctx, s.db, userID, p), "failed to update practice paper")
}

func (s *Store) updatePaper(ctx context.Context, e sqlx.ExecerContext, userID int64, p *models.PracticePaper) error {
	return s.execOne(ctx, e, `
		UPDATE practice_papers SET
			topic_id = ?, paper_name = ?, paper_type = ?, pdf_url = ?, question_start = ?, question_end = ?,
			total_questions = ?, completed = ?, score = ?, total_marks = ?, notes = ?, reminder_days = ?,
			reminder_date = ?, updated_at = ?
		WHERE id = ? AND subject_id IN (SELECT id FROM subjects WHERE user_id = ?)`,
		p.TopicID, p.PaperName, p.PaperType, p.PDFURL, p.QuestionStart, p.QuestionEnd,
		p.TotalQuestions, p.Completed, p.Score, p.TotalMarks, p.Notes, p.ReminderDays,
		utcPtr(p.ReminderDate), utc(p.UpdatedAt),
		p.ID, userID,
	)
}

// DeletePracticePaper removes a paper with its tracked questions and logs
func (s *Store) DeletePracticePaper(ctx context.Context, userID, id int64) error {
	args := []interface{}{id, userID}
	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		err := s.runCleanup(ctx, tx, []cleanup{
			{"delete practice paper questions", `DELETE FROM practice_paper_questions WHERE practice_paper_id IN (` + ownedPaper + `)`, args},
			{"delete practice paper logs", `DELETE FROM practice_paper_logs WHERE practice_paper_id IN (` + ownedPaper + `)`, args},
		})
		if err != nil {
			return err
		}
		err = s.execOne(ctx, tx, `DELETE FROM practice_papers WHERE id IN (`+ownedPaper+`)`, id, userID)
		return errors.Wrap(err, "failed to delete practice paper")
	})
}

const questionColumns = `q.id, q.practice_paper_id, q.question_number, q.status, q.notes, q.created_at, q.updated_at`

const ownedQuestion = `
	SELECT q.id FROM practice_paper_questions q
	JOIN practice_papers p ON p.id = q.practice_paper_id
	JOIN subjects s ON s.id = p.subject_id
	WHERE q.id = ? AND s.user_id = ?`

// SavePracticePaperQuestion stores the question under its paper and number,
// replacing status and notes when the number is already tracked. It reports
// whether a new row was created.
func (s *Store) SavePracticePaperQuestion(ctx context.Context, q *models.PracticePaperQuestion) (bool, error) {
	var created bool
	err := s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		var existing models.PracticePaperQuestion
		err := tx.GetContext(ctx, &existing, s.db.Rebind(`
			SELECT `+questionColumns+` FROM practice_paper_questions q
			WHERE q.practice_paper_id = ? AND q.question_number = ?`), q.PracticePaperID, q.QuestionNumber)
		switch {
		case err == nil:
			q.ID = existing.ID
			q.CreatedAt = existing.CreatedAt
			return s.execOne(ctx, tx, `UPDATE practice_paper_questions SET status = ?, notes = ?, updated_at = ? WHERE id = ?`,
				q.Status, q.Notes, utc(q.UpdatedAt), q.ID)
		case !errors.Is(err, sql.ErrNoRows):
			return err
		}

		id, err := s.insert(ctx, tx, `
			INSERT INTO practice_paper_questions (practice_paper_id, question_number, status, notes, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?)`,
			q.PracticePaperID, q.QuestionNumber, q.Status, q.Notes, utc(q.CreatedAt), utc(q.UpdatedAt),
		)
		if err != nil {
			return err
		}
		q.ID = id
		created = true
		return nil
	})
	return created, errors.Wrap(err, "failed to save practice paper question")
}

// GetPracticePaperQuestion returns a tracked question owned by the user, or nil
func (s *Store) GetPracticePaperQuestion(ctx context.Context, userID, id int64) (*models.PracticePaperQuestion, error) {
	var q models.PracticePaperQuestion
	ok, err := s.get(ctx, &q, `SELECT `+questionColumns+` FROM practice_paper_questions q WHERE q.id IN (`+ownedQuestion+`)`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get practice paper question")
	}
	if !ok {
		return nil, nil
	}
	return &q, nil
}

// ListPracticePaperQuestions returns the tracked questions of a paper, newest first
func (s *Store) ListPracticePaperQuestions(ctx context.Context, userID, paperID int64) ([]models.PracticePaperQuestion, error) {
	questions := []models.PracticePaperQuestion{}
	err := s.selectRows(ctx, &questions, `
		SELECT `+questionColumns+` FROM practice_paper_questions q
		WHERE q.practice_paper_id IN (`+ownedPaper+`)
		ORDER BY q.created_at DESC, q.id DESC`, paperID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list practice paper questions")
	}
	return questions, nil
}

// UpdatePracticePaperQuestion changes the status and notes of a tracked question
func (s *Store) UpdatePracticePaperQuestion(ctx context.Context, userID int64, q *models.PracticePaperQuestion) error {
	err := s.execOne(ctx, s.db, `
		UPDATE practice_paper_questions SET status = ?, notes = ?, updated_at = ?
		WHERE id IN (`+ownedQuestion+`)`,
		q.Status, q.Notes, utc(q.UpdatedAt), q.ID, userID,
	)
	return errors.Wrap(err, "failed to update practice paper question")
}

// DeletePracticePaperQuestion stops tracking a question
func (s *Store) DeletePracticePaperQuestion(ctx context.Context, userID, id int64) error {
	err := s.execOne(ctx, s.db, `DELETE FROM practice_paper_questions WHERE id IN (`+ownedQuestion+`)`, id, userID)
	return errors.Wrap(err, "failed to delete practice paper question")
}

// AddPracticePaperLog records a sitting. When paper is not nil it is saved in
// the same transaction.
func (s *Store) AddPracticePaperLog(ctx context.Context, userID int64, log *models.PracticePaperLog, paper *models.PracticePaper) error {
	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		id, err := s.insert(ctx, tx, `
			INSERT INTO practice_paper_logs (practice_paper_id, question_start, question_end, completed, score,
				total_marks, duration, notes, date)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			log.PracticePaperID, log.QuestionStart, log.QuestionEnd, log.Completed, log.Score,
			log.TotalMarks, log.Duration, log.Notes, utc(log.Date),
		)
		if err != nil {
			return errors.Wrap(err, "failed to create practice paper log")
		}
		log.ID = id

		if paper == nil {
			return nil
		}
		return errors.Wrap(s.updatePaper(ctx, tx, userID, paper), "failed to update practice paper")
	})
}

// ListPracticePaperLogs returns the sittings of a paper, most recent first
func (s *Store) ListPracticePaperLogs(ctx context.Context, userID, paperID int64) ([]models.PracticePaperLog, error) {
	logs := []models.PracticePaperLog{}
	err := s.selectRows(ctx, &logs, `
		SELECT l.id, l.practice_paper_id, l.question_start, l.question_end, l.completed, l.score, l.total_marks,
			l.duration, l.notes, l.date
		FROM practice_paper_logs l
		WHERE l.practice_paper_id IN (`+ownedPaper+`)
		ORDER BY l.date DESC, l.id DESC`, paperID, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list practice paper logs")
	}
	return logs, nil
}
