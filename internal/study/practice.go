package study

import (
	"context"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/internal/dateutil"
	"github.com/example/studytrack/pkg/models"
)

type PracticePaperInput struct {
	SubjectID      int64  `json:"subjectId" validate:"required,gt=0"`
	TopicID        *int64 `json:"topicId" validate:"omitempty,gt=0"`
	PaperName      string `json:"paperName" validate:"required,notblank,max=200"`
	PaperType      string `json:"paperType" validate:"max=50"`
	PDFURL         string `json:"pdfUrl" validate:"max=2000"`
	QuestionStart  string `json:"questionStart" validate:"required,notblank,max=20"`
	QuestionEnd    string `json:"questionEnd" validate:"required,notblank,max=20"`
	TotalQuestions *int   `json:"totalQuestions" validate:"omitempty,gt=0"`
	Completed      bool   `json:"completed"`
	Score          *int   `json:"score" validate:"omitempty,gte=0"`
	TotalMarks     *int   `json:"totalMarks" validate:"omitempty,gt=0"`
	Notes          string `json:"notes" validate:"max=5000"`
	ReminderDays   *int   `json:"reminderDays" validate:"omitempty,gte=0,lte=365"`
}

type PracticePaperPatch struct {
	TopicID        *int64  `json:"topicId" validate:"omitempty,gt=0"`
	PaperName      *string `json:"paperName" validate:"omitempty,notblank,max=200"`
	PaperType      *string `json:"paperType" validate:"omitempty,max=50"`
	PDFURL         *string `json:"pdfUrl" validate:"omitempty,max=2000"`
	QuestionStart  *string `json:"questionStart" validate:"omitempty,notblank,max=20"`
	QuestionEnd    *string `json:"questionEnd" validate:"omitempty,notblank,max=20"`
	TotalQuestions *int    `json:"totalQuestions" validate:"omitempty,gt=0"`
	Completed      *bool   `json:"completed"`
	Score          *int    `json:"score" validate:"omitempty,gte=0"`
	TotalMarks     *int    `json:"totalMarks" validate:"omitempty,gt=0"`
	Notes          *string `json:"notes" validate:"omitempty,max=5000"`
	ReminderDays   *int    `json:"reminderDays" validate:"omitempty,gte=0,lte=365"`
}

// PracticePaperFilter narrows ListPracticePapers
type PracticePaperFilter struct {
	SubjectID *int64
	TopicID   *int64
}

type PracticeQuestionInput struct {
	PracticePaperID int64  `json:"practicePaperId" validate:"required,gt=0"`
	QuestionNumber  string `json:"questionNumber" validate:"required,notblank,max=20"`
	Status          string `json:"status" validate:"required,oneof=redo focus later"`
	Notes           string `json:"notes" validate:"max=5000"`
}

type PracticeQuestionPatch struct {
	Status *string `json:"status" validate:"omitempty,oneof=redo focus later"`
	Notes  *string `json:"notes" validate:"omitempty,max=5000"`
}

type PracticeLogInput struct {
	PracticePaperID int64  `json:"practicePaperId" validate:"required,gt=0"`
	QuestionStart   string `json:"questionStart" validate:"required,notblank,max=20"`
	QuestionEnd     string `json:"questionEnd" validate:"required,notblank,max=20"`
	Completed       bool   `json:"completed"`
	Score           *int   `json:"score" validate:"omitempty,gte=0"`
	TotalMarks      *int   `json:"totalMarks" validate:"omitempty,gt=0"`
	Duration        int    `json:"duration" validate:"gte=0"`
	Notes           string `json:"notes" validate:"max=5000"`
}

// ErrPaperCompleted is returned when a sitting is logged on a finished paper
// without marking it as a completed rework
var ErrPaperCompleted = errors.Wrap(core.ErrInvalidInput, "paper already completed, log the rework as completed")

func (s *Service) getPaper(ctx context.Context, userID, id int64) (*models.PracticePaper, error) {
	paper, err := s.store.GetPracticePaper(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if paper == nil {
		return nil, notFound("practice paper", id)
	}
	return paper, nil
}

// checkPaperTopic makes sure a paper's topic is one of its subject's topics
func (s *Service) checkPaperTopic(ctx context.Context, userID, subjectID int64, topicID *int64) error {
	if topicID == nil {
		return nil
	}
	topic, err := s.checkTopic(ctx, userID, *topicID)
	if err != nil {
		return err
	}
	if topic.SubjectID != subjectID {
		return core.NewValidationError(nil, core.FieldError{Field: "topicId", Error: "must be a topic of the paper's subject"})
	}
	return nil
}

// ListPracticePapers returns the user's papers, newest first
func (s *Service) ListPracticePapers(ctx context.Context, userID int64, filter PracticePaperFilter) ([]models.PracticePaper, error) {
	return s.store.ListPracticePapers(ctx, &models.FindPracticePaper{
		UserID:    userID,
		SubjectID: filter.SubjectID,
		TopicID:   filter.TopicID,
	})
}

// CreatePracticePaper files a paper under one of the user's subjects. A
// positive reminderDays sets a reminder that many days from now.
func (s *Service) CreatePracticePaper(ctx context.Context, userID int64, in PracticePaperInput) (*models.PracticePaper, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.checkSubject(ctx, userID, &in.SubjectID); err != nil {
		return nil, err
	}
	if err := s.checkPaperTopic(ctx, userID, in.SubjectID, in.TopicID); err != nil {
		return nil, err
	}

	now := s.now()
	paper := &models.PracticePaper{
		SubjectID:      in.SubjectID,
		TopicID:        in.TopicID,
		PaperName:      core.CleanString(in.PaperName),
		PaperType:      orDefault(in.PaperType, models.PaperTypeTopical),
		PDFURL:         in.PDFURL,
		QuestionStart:  core.CleanString(in.QuestionStart),
		QuestionEnd:    core.CleanString(in.QuestionEnd),
		TotalQuestions: in.TotalQuestions,
		Completed:      in.Completed,
		Score:          in.Score,
		TotalMarks:     in.TotalMarks,
		Notes:          in.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	setReminder(paper, in.ReminderDays, now)

	if err := s.store.CreatePracticePaper(ctx, paper); err != nil {
		return nil, err
	}
	return s.getPaper(ctx, userID, paper.ID)
}

// UpdatePracticePaper applies a partial update. Changing reminderDays moves the
// reminder to that many days from now; zero clears it.
func (s *Service) UpdatePracticePaper(ctx context.Context, userID, id int64, patch PracticePaperPatch) (*models.PracticePaper, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	paper, err := s.getPaper(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkPaperTopic(ctx, userID, paper.SubjectID, patch.TopicID); err != nil {
		return nil, err
	}

	now := s.now()
	if patch.TopicID != nil {
		paper.TopicID = patch.TopicID
	}
	if patch.PaperName != nil {
		paper.PaperName = core.CleanString(*patch.PaperName)
	}
	if patch.PaperType != nil {
		paper.PaperType = orDefault(*patch.PaperType, models.PaperTypeTopical)
	}
	if patch.PDFURL != nil {
		paper.PDFURL = *patch.PDFURL
	}
	if patch.QuestionStart != nil {
		paper.QuestionStart = core.CleanString(*patch.QuestionStart)
	}
	if patch.QuestionEnd != nil {
		paper.QuestionEnd = core.CleanString(*patch.QuestionEnd)
	}
	if patch.TotalQuestions != nil {
		paper.TotalQuestions = patch.TotalQuestions
	}
	if patch.Completed != nil {
		paper.Completed = *patch.Completed
	}
	if patch.Score != nil {
		paper.Score = patch.Score
	}
	if patch.TotalMarks != nil {
		paper.TotalMarks = patch.TotalMarks
	}
	if patch.Notes != nil {
		paper.Notes = *patch.Notes
	}
	if patch.ReminderDays != nil && (paper.ReminderDays == nil || *paper.ReminderDays != *patch.ReminderDays) {
		setReminder(paper, patch.ReminderDays, now)
	}
	paper.UpdatedAt = now

	if err := s.store.UpdatePracticePaper(ctx, userID, paper); err != nil {
		return nil, err
	}
	return s.getPaper(ctx, userID, id)
}

func setReminder(paper *models.PracticePaper, days *int, now time.Time) {
	if days == nil || *days <= 0 {
		paper.ReminderDays = nil
		paper.ReminderDate = nil
		return
	}
	at := dateutil.AddDays(now, *days)
	paper.ReminderDays = days
	paper.ReminderDate = &at
}

// DeletePracticePaper removes a paper with its tracked questions and logs
func (s *Service) DeletePracticePaper(ctx context.Context, userID, id int64) error {
	return s.store.DeletePracticePaper(ctx, userID, id)
}

// ListPracticeQuestions returns the questions tracked on a paper
func (s *Service) ListPracticeQuestions(ctx context.Context, userID, paperID int64) ([]models.PracticePaperQuestion, error) {
	if _, err := s.getPaper(ctx, userID, paperID); err != nil {
		return nil, err
	}
	return s.store.ListPracticePaperQuestions(ctx, userID, paperID)
}

// TrackPracticeQuestion flags a question of a paper. Tracking the same
// question number again replaces its status and notes.
func (s *Service) TrackPracticeQuestion(ctx context.Context, userID int64, in PracticeQuestionInput) (*models.PracticePaperQuestion, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	if _, err := s.getPaper(ctx, userID, in.PracticePaperID); err != nil {
		return nil, err
	}

	now := s.now()
	q := &models.PracticePaperQuestion{
		PracticePaperID: in.PracticePaperID,
		QuestionNumber:  core.CleanString(in.QuestionNumber),
		Status:          in.Status,
		Notes:           in.Notes,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if _, err := s.store.SavePracticePaperQuestion(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// UpdatePracticeQuestion changes the status or notes of a tracked question
func (s *Service) UpdatePracticeQuestion(ctx context.Context, userID, id int64, patch PracticeQuestionPatch) (*models.PracticePaperQuestion, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	q, err := s.store.GetPracticePaperQuestion(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, notFound("practice paper question", id)
	}

	if patch.Status != nil {
		q.Status = *patch.Status
	}
	if patch.Notes != nil {
		q.Notes = *patch.Notes
	}
	q.UpdatedAt = s.now()

	if err := s.store.UpdatePracticePaperQuestion(ctx, userID, q); err != nil {
		return nil, err
	}
	return q, nil
}

// DeletePracticeQuestion stops tracking a question
func (s *Service) DeletePracticeQuestion(ctx context.Context, userID, id int64) error {
	return s.store.DeletePracticePaperQuestion(ctx, userID, id)
}

// ListPracticeLogs returns the sittings of a paper, most recent first
func (s *Service) ListPracticeLogs(ctx context.Context, userID, paperID int64) ([]models.PracticePaperLog, error) {
	if _, err := s.getPaper(ctx, userID, paperID); err != nil {
		return nil, err
	}
	return s.store.ListPracticePaperLogs(ctx, userID, paperID)
}

// AddPracticeLog records a sitting on a paper. A finished paper only accepts
// sittings marked completed. The sitting completes the paper when it is
// marked so or reaches the paper's last question; the paper then takes the
// sitting's score.
func (s *Service) AddPracticeLog(ctx context.Context, userID int64, in PracticeLogInput) (*models.PracticePaperLog, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	paper, err := s.getPaper(ctx, userID, in.PracticePaperID)
	if err != nil {
		return nil, err
	}
	if paper.Completed && !in.Completed {
		return nil, ErrPaperCompleted
	}

	now := s.now()
	complete := in.Completed || reachesEnd(in.QuestionEnd, paper.TotalQuestions)
	log := &models.PracticePaperLog{
		PracticePaperID: paper.ID,
		QuestionStart:   core.CleanString(in.QuestionStart),
		QuestionEnd:     core.CleanString(in.QuestionEnd),
		Completed:       complete,
		Score:           in.Score,
		TotalMarks:      in.TotalMarks,
		Duration:        in.Duration,
		Notes:           in.Notes,
		Date:            now,
	}

	var updated *models.PracticePaper
	if complete {
		paper.Completed = true
		if in.Score != nil {
			paper.Score = in.Score
		}
		if in.TotalMarks != nil {
			paper.TotalMarks = in.TotalMarks
		}
		paper.UpdatedAt = now
		updated = paper
	}
	if err := s.store.AddPracticePaperLog(ctx, userID, log, updated); err != nil {
		return nil, err
	}
	return log, nil
}

// reachesEnd reports whether the digits of question, read as a number, are at
// least total. "Q12b" reads as 12.
func reachesEnd(question string, total *int) bool {
	if total == nil {
		return false
	}
	digits := strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) {
			return r
		}
		return -1
	}, question)
	n, err := strconv.Atoi(digits)
	return err == nil && n >= *total
}
