package study

import (
	"context"
	"time"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/internal/dateutil"
	"github.com/example/studytrack/pkg/models"
)

type ExamInput struct {
	SubjectID *int64    `json:"subjectId" validate:"omitempty,gt=0"`
	Name      string    `json:"name" validate:"required,notblank,max=200"`
	ExamDate  time.Time `json:"examDate" validate:"required"`
	Board     string    `json:"board" validate:"max=100"`
	Notes     string    `json:"notes" validate:"max=5000"`
}

type ExamPatch struct {
	SubjectID *int64     `json:"subjectId" validate:"omitempty,gt=0"`
	Name      *string    `json:"name" validate:"omitempty,notblank,max=200"`
	ExamDate  *time.Time `json:"examDate"`
	Board     *string    `json:"board" validate:"omitempty,max=100"`
	Notes     *string    `json:"notes" validate:"omitempty,max=5000"`
	Completed *bool      `json:"completed"`
}

func (s *Service) withCountdown(exams []models.Exam) {
	now := s.now()
	for i := range exams {
		exams[i].DaysRemaining = dateutil.DaysUntil(exams[i].ExamDate, now)
	}
}

// ListExams returns the user's incomplete exams, soonest first
func (s *Service) ListExams(ctx context.Context, userID int64) ([]models.Exam, error) {
	exams, err := s.store.ListExams(ctx, &models.FindExam{UserID: userID, Completed: boolPtr(false)})
	if err != nil {
		return nil, err
	}
	s.withCountdown(exams)
	return exams, nil
}

func (s *Service) checkSubject(ctx context.Context, userID int64, subjectID *int64) (*models.Subject, error) {
	if subjectID == nil {
		return nil, nil
	}
	subject, err := s.store.GetSubject(ctx, userID, *subjectID)
	if err != nil {
		return nil, err
	}
	if subject == nil {
		return nil, notFound("subject", *subjectID)
	}
	return subject, nil
}

// CreateExam adds an exam, optionally tied to one of the user's subjects
func (s *Service) CreateExam(ctx context.Context, userID int64, in ExamInput) (*models.Exam, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	subject, err := s.checkSubject(ctx, userID, in.SubjectID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	exam := &models.Exam{
		UserID:    userID,
		SubjectID: in.SubjectID,
		Name:      core.CleanString(in.Name),
		ExamDate:  in.ExamDate,
		Board:     in.Board,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if subject != nil {
		exam.SubjectName = strPtr(subject.Name)
	}
	if err := s.store.CreateExam(ctx, exam); err != nil {
		return nil, err
	}
	exam.DaysRemaining = dateutil.DaysUntil(exam.ExamDate, now)
	return exam, nil
}

// UpdateExam applies a partial update
func (s *Service) UpdateExam(ctx context.Context, userID, id int64, patch ExamPatch) (*models.Exam, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	exam, err := s.store.GetExam(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, notFound("exam", id)
	}

	if patch.SubjectID != nil {
		subject, err := s.checkSubject(ctx, userID, patch.SubjectID)
		if err != nil {
			return nil, err
		}
		exam.SubjectID = patch.SubjectID
		exam.SubjectName = strPtr(subject.Name)
	}
	if patch.Name != nil {
		exam.Name = core.CleanString(*patch.Name)
	}
	if patch.ExamDate != nil {
		exam.ExamDate = *patch.ExamDate
	}
	if patch.Board != nil {
		exam.Board = *patch.Board
	}
	if patch.Notes != nil {
		exam.Notes = *patch.Notes
	}
	if patch.Completed != nil {
		exam.Completed = *patch.Completed
	}
	now := s.now()
	exam.UpdatedAt = now

	if err := s.store.UpdateExam(ctx, exam); err != nil {
		return nil, err
	}
	exam.DaysRemaining = dateutil.DaysUntil(exam.ExamDate, now)
	return exam, nil
}

// DeleteExam removes an exam
func (s *Service) DeleteExam(ctx context.Context, userID, id int64) error {
	return s.store.DeleteExam(ctx, userID, id)
}
