package database

import (
	"context"

	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

// CreateStudySession inserts a new study session
func (s *Store) CreateStudySession(ctx context.Context, session *models.StudySession) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO study_sessions (user_id, date, activities, duration, created_at)
		VALUES (?, ?, ?, ?, ?)`,
		session.UserID, utc(session.Date), session.Activities, session.Duration, utc(session.CreatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create study session")
	}
	session.ID = id
	return nil
}

// UpdateStudySession saves the activities and duration of a session
func (s *Store) UpdateStudySession(ctx context.Context, session *models.StudySession) error {
	err := s.execOne(ctx, s.db, `
		UPDATE study_sessions SET activities = ?, duration = ?
		WHERE id = ? AND user_id = ?`,
		session.Activities, session.Duration, session.ID, session.UserID,
	)
	return errors.Wrap(err, "failed to update study session")
}

// ListStudySessions returns a user's study sessions, most recent first
func (s *Store) ListStudySessions(ctx context.Context, find *models.FindStudySession) ([]models.StudySession, error) {
	w := &where{}
	w.add("user_id = ?", find.UserID)
	if find.From != nil {
		w.add("date >= ?", utc(*find.From))
	}
	if find.To != nil {
		w.add("date < ?", utc(*find.To))
	}

	sessions := []models.StudySession{}
	query := limit(`
		SELECT id, user_id, date, activities, duration, created_at
		FROM study_sessions
		WHERE `+w.String()+`
		ORDER BY date DESC, id DESC`, find.Limit)
	if err := s.selectRows(ctx, &sessions, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list study sessions")
	}
	return sessions, nil
}

const satColumns = `id, user_id, topic, source, youtube_url, video_id, video_timestamp, duration, notes,
	completed, date, created_at, updated_at`

// CreateSATSession inserts a new SAT session
func (s *Store) CreateSATSession(ctx context.Context, session *models.SATSession) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO sat_sessions (
			user_id, topic, source, youtube_url, video_id, video_timestamp, duration, notes,
			completed, date, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.UserID, session.Topic, session.Source, session.YoutubeURL, session.VideoID, session.Timestamp,
		session.Duration, session.Notes, session.Completed, utc(session.Date), utc(session.CreatedAt), utc(session.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create SAT session")
	}
	session.ID = id
	return nil
}

// GetSATSession returns a user's SAT session, or nil
func (s *Store) GetSATSession(ctx context.Context, userID, id int64) (*models.SATSession, error) {
	var session models.SATSession
	ok, err := s.get(ctx, &session, `SELECT `+satColumns+` FROM sat_sessions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get SAT session")
	}
	if !ok {
		return nil, nil
	}
	return &session, nil
}

// ListSATSessions returns a user's SAT sessions, most recent first
func (s *Store) ListSATSessions(ctx context.Context, find *models.FindSATSession) ([]models.SATSession, error) {
	w := &where{}
	w.add("user_id = ?", find.UserID)
	if find.From != nil {
		w.add("date >= ?", utc(*find.From))
	}
	if find.To != nil {
		w.add("date < ?", utc(*find.To))
	}

	sessions := []models.SATSession{}
	query := `SELECT ` + satColumns + ` FROM sat_sessions WHERE ` + w.String() + ` ORDER BY date DESC, id DESC`
	if err := s.selectRows(ctx, &sessions, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list SAT sessions")
	}
	return sessions, nil
}

// UpdateSATSession modifies an existing SAT session
func (s *Store) UpdateSATSession(ctx context.Context, session *models.SATSession) error {
	err := s.execOne(ctx, s.db, `
		UPDATE sat_sessions SET
			topic = ?, source = ?, youtube_url = ?, video_id = ?, video_timestamp = ?,
			duration = ?, notes = ?, completed = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		session.Topic, session.Source, session.YoutubeURL, session.VideoID, session.Timestamp,
		session.Duration, session.Notes, session.Completed, utc(session.UpdatedAt),
		session.ID, session.UserID,
	)
	return errors.Wrap(err, "failed to update SAT session")
}

// DeleteSATSession removes a SAT session
func (s *Store) DeleteSATSession(ctx context.Context, userID, id int64) error {
	err := s.execOne(ctx, s.db, `DELETE FROM sat_sessions WHERE id = ? AND user_id = ?`, id, userID)
	return errors.Wrap(err, "failed to delete SAT session")
}
