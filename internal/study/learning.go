package study

import (
	"context"
	"math"
	"time"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/pkg/models"
)

type LearningProjectInput struct {
	Name        string `json:"name" validate:"required,notblank,max=200"`
	Category    string `json:"category" validate:"max=100"`
	Description string `json:"description" validate:"max=5000"`
	TotalUnits  int    `json:"totalUnits" validate:"gte=0"`
}

type LearningProjectPatch struct {
	Name           *string `json:"name" validate:"omitempty,notblank,max=200"`
	Category       *string `json:"category" validate:"omitempty,max=100"`
	Description    *string `json:"description" validate:"omitempty,max=5000"`
	TotalUnits     *int    `json:"totalUnits" validate:"omitempty,gte=0"`
	CompletedUnits *int    `json:"completedUnits" validate:"omitempty,gte=0"`
	Status         *string `json:"status" validate:"omitempty,oneof=in_progress completed"`
}

type LearningSessionInput struct {
	ProjectID      int64  `json:"projectId" validate:"required,gt=0"`
	UnitsCompleted int    `json:"unitsCompleted" validate:"required,gt=0"`
	UnitCovered    string `json:"unitCovered" validate:"max=200"`
	Duration       int    `json:"duration" validate:"gte=0,lte=1440"`
	Progress       string `json:"progress" validate:"max=200"`
	Notes          string `json:"notes" validate:"max=5000"`
}

// ProgressPercentage is completed over total units, rounded to a whole percent.
func ProgressPercentage(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}

func withProgress(p *models.LearningProject) {
	p.ProgressPercentage = ProgressPercentage(p.CompletedUnits, p.TotalUnits)
}

func projectStatus(completed, total int) string {
	if total > 0 && completed >= total {
		return models.ProjectCompleted
	}
	return models.ProjectInProgress
}

// ListLearningProjects returns the user's projects, most recently updated first
func (s *Service) ListLearningProjects(ctx context.Context, userID int64) ([]models.LearningProject, error) {
	projects, err := s.store.ListLearningProjects(ctx, &models.FindLearningProject{UserID: userID})
	if err != nil {
		return nil, err
	}
	for i := range projects {
		withProgress(&projects[i])
	}
	return projects, nil
}

// GetLearningProject returns a project with its sessions
func (s *Service) GetLearningProject(ctx context.Context, userID, id int64) (*models.LearningProject, error) {
	project, err := s.store.GetLearningProject(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, notFound("learning project", id)
	}
	sessions, err := s.store.ListLearningSessions(ctx, &models.FindLearningSession{
		UserID:    userID,
		ProjectID: &project.ID,
	})
	if err != nil {
		return nil, err
	}
	project.Sessions = sessions
	withProgress(project)
	return project, nil
}

// CreateLearningProject starts a new project
func (s *Service) CreateLearningProject(ctx context.Context, userID int64, in LearningProjectInput) (*models.LearningProject, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	project := &models.LearningProject{
		UserID:      userID,
		Name:        core.CleanString(in.Name),
		Category:    orDefault(in.Category, "other"),
		Description: in.Description,
		TotalUnits:  in.TotalUnits,
		Status:      models.ProjectInProgress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.store.CreateLearningProject(ctx, project); err != nil {
		return nil, err
	}
	withProgress(project)
	return project, nil
}

// UpdateLearningProject applies a partial update
func (s *Service) UpdateLearningProject(ctx context.Context, userID, id int64, patch LearningProjectPatch) (*models.LearningProject, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	project, err := s.store.GetLearningProject(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, notFound("learning project", id)
	}

	if patch.Name != nil {
		project.Name = core.CleanString(*patch.Name)
	}
	if patch.Category != nil {
		project.Category = orDefault(*patch.Category, "other")
	}
	if patch.Description != nil {
		project.Description = *patch.Description
	}
	if patch.TotalUnits != nil {
		project.TotalUnits = *patch.TotalUnits
	}
	if patch.CompletedUnits != nil {
		project.CompletedUnits = *patch.CompletedUnits
	}
	if patch.Status != nil {
		project.Status = *patch.Status
	}
	project.UpdatedAt = s.now()

	if err := s.store.UpdateLearningProject(ctx, project); err != nil {
		return nil, err
	}
	withProgress(project)
	return project, nil
}

// DeleteLearningProject removes a project and its sessions
func (s *Service) DeleteLearningProject(ctx context.Context, userID, id int64) error {
	return s.store.DeleteLearningProject(ctx, userID, id)
}

// AddLearningSession records progress on a project. A session on a new day
// counts one more day spent; reaching the total units completes the project.
func (s *Service) AddLearningSession(ctx context.Context, userID int64, in LearningSessionInput) (*models.LearningSession, *models.LearningProject, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, nil, err
	}
	project, err := s.store.GetLearningProject(ctx, userID, in.ProjectID)
	if err != nil {
		return nil, nil, err
	}
	if project == nil {
		return nil, nil, notFound("learning project", in.ProjectID)
	}

	now := s.now()
	last := project.CreatedAt
	if project.LastStudied != nil {
		last = *project.LastStudied
	}
	if int(now.Sub(last)/(24*time.Hour)) > 0 {
		project.DaysSpent++
	}
	project.CompletedUnits += in.UnitsCompleted
	project.Status = projectStatus(project.CompletedUnits, project.TotalUnits)
	project.LastStudied = &now
	project.UpdatedAt = now

	session := &models.LearningSession{
		ProjectID:      project.ID,
		UnitsCompleted: in.UnitsCompleted,
		UnitCovered:    in.UnitCovered,
		Duration:       in.Duration,
		Progress:       in.Progress,
		Notes:          in.Notes,
		Date:           now,
	}
	if err := s.store.AddLearningSession(ctx, session, project); err != nil {
		return nil, nil, err
	}
	withProgress(project)
	return session, project, nil
}
