package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/example/studytrack/pkg/models"
)

const projectColumns = `id, user_id, name, category, description, total_units, completed_units, days_spent,
	status, last_studied, created_at, updated_at`

// CreateLearningProject inserts a new learning project
func (s *Store) CreateLearningProject(ctx context.Context, p *models.LearningProject) error {
	id, err := s.insert(ctx, s.db, `
		INSERT INTO learning_projects (
			user_id, name, category, description, total_units, completed_units, days_spent,
			status, last_studied, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.UserID, p.Name, p.Category, p.Description, p.TotalUnits, p.CompletedUnits, p.DaysSpent,
		p.Status, utcPtr(p.LastStudied), utc(p.CreatedAt), utc(p.UpdatedAt),
	)
	if err != nil {
		return errors.Wrap(err, "failed to create learning project")
	}
	p.ID = id
	return nil
}

// GetLearningProject returns a user's project, or nil
func (s *Store) GetLearningProject(ctx context.Context, userID, id int64) (*models.LearningProject, error) {
	var p models.LearningProject
	ok, err := s.get(ctx, &p, `SELECT `+projectColumns+` FROM learning_projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get learning project")
	}
	if !ok {
		return nil, nil
	}
	return &p, nil
}

// ListLearningProjects returns a user's projects. Projects filtered by status are
// ordered by when they were last studied, the others by last update.
func (s *Store) ListLearningProjects(ctx context.Context, find *models.FindLearningProject) ([]models.LearningProject, error) {
	w := &where{}
	w.add("user_id = ?", find.UserID)
	order := "updated_at DESC, id DESC"
	if find.Status != nil {
		w.add("status = ?", *find.Status)
		// NULL last_studied sorts after studied projects on both engines.
		order = "CASE WHEN last_studied IS NULL THEN 1 ELSE 0 END, last_studied DESC, id DESC"
	}

	projects := []models.LearningProject{}
	query := limit(`SELECT `+projectColumns+` FROM learning_projects WHERE `+w.String()+` ORDER BY `+order, find.Limit)
	if err := s.selectRows(ctx, &projects, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list learning projects")
	}
	return projects, nil
}

// UpdateLearningProject modifies an existing project
func (s *Store) UpdateLearningProject(ctx context.Context, p *models.LearningProject) error {
	return errors.Wrap(s.updateProject(ctx, s.db, p), "failed to update learning project")
}

func (s *Store) updateProject(ctx context.Context, e sqlx.ExecerContext, p *models.LearningProject) error {
	return s.execOne(ctx, e, `
		UPDATE learning_projects SET
			name = ?, category = ?, description = ?, total_units = ?, completed_units = ?,
			days_spent = ?, status = ?, last_studied = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		p.Name, p.Category, p.Description, p.TotalUnits, p.CompletedUnits,
		p.DaysSpent, p.Status, utcPtr(p.LastStudied), utc(p.UpdatedAt),
		p.ID, p.UserID,
	)
}

// DeleteLearningProject removes a project and its sessions
func (s *Store) DeleteLearningProject(ctx context.Context, userID, id int64) error {
	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		_, err := tx.ExecContext(ctx, s.db.Rebind(`
			DELETE FROM learning_sessions WHERE project_id IN (
				SELECT id FROM learning_projects WHERE id = ? AND user_id = ?)`), id, userID)
		if err != nil {
			return errors.Wrap(err, "failed to delete learning sessions")
		}
		err = s.execOne(ctx, tx, `DELETE FROM learning_projects WHERE id = ? AND user_id = ?`, id, userID)
		return errors.Wrap(err, "failed to delete learning project")
	})
}

// AddLearningSession records a session and saves the project progress it produced
func (s *Store) AddLearningSession(ctx context.Context, session *models.LearningSession, project *models.LearningProject) error {
	return s.db.inTx(ctx, func(tx *sqlx.Tx) error {
		id, err := s.insert(ctx, tx, `
			INSERT INTO learning_sessions (project_id, units_completed, unit_covered, duration, progress, notes, date)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			project.ID, session.UnitsCompleted, session.UnitCovered, session.Duration, session.Progress,
			session.Notes, utc(session.Date),
		)
		if err != nil {
			return errors.Wrap(err, "failed to create learning session")
		}
		session.ID = id
		session.ProjectID = project.ID

		return errors.Wrap(s.updateProject(ctx, tx, project), "failed to update learning project")
	})
}

// ListLearningSessions returns sessions of the user's projects, most recent first
func (s *Store) ListLearningSessions(ctx context.Context, find *models.FindLearningSession) ([]models.LearningSession, error) {
	w := &where{}
	w.add("p.user_id = ?", find.UserID)
	if find.ProjectID != nil {
		w.add("ls.project_id = ?", *find.ProjectID)
	}
	if find.From != nil {
		w.add("ls.date >= ?", utc(*find.From))
	}
	if find.To != nil {
		w.add("ls.date < ?", utc(*find.To))
	}

	sessions := []models.LearningSession{}
	query := limit(`
		SELECT ls.id, ls.project_id, ls.units_completed, ls.unit_covered, ls.duration, ls.progress, ls.notes, ls.date
		FROM learning_sessions ls
		JOIN learning_projects p ON p.id = ls.project_id
		WHERE `+w.String()+`
		ORDER BY ls.date DESC, ls.id DESC`, find.Limit)
	if err := s.selectRows(ctx, &sessions, query, w.args...); err != nil {
		return nil, errors.Wrap(err, "failed to list learning sessions")
	}
	return sessions, nil
}
