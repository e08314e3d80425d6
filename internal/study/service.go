// Package study implements the tracker's workflows on top of a Store: CRUD for
// every record type, the topic completion workflow that schedules revisions,
// and the dashboard, statistics and calendar aggregations.
package study

import (
	"context"
	"log/slog"
	"time"

	"github.com/example/studytrack/internal/revision"
	"github.com/example/studytrack/pkg/models"
)

// Store is the persistence used by the service. Get* methods return nil when
// the record does not exist or belongs to another user.
type Store interface {
	revision.Store

	GetUser(ctx context.Context, id int64) (*models.User, error)
	UpdateUserReminders(ctx context.Context, user *models.User) error
	ResetUserData(ctx context.Context, userID int64) error

	CreateSubject(ctx context.Context, subject *models.Subject) error
	GetSubject(ctx context.Context, userID, subjectID int64) (*models.Subject, error)
	ListSubjects(ctx context.Context, userID int64) ([]models.Subject, error)
	UpdateSubject(ctx context.Context, subject *models.Subject) error
	DeleteSubject(ctx context.Context, userID, subjectID int64) error

	CreateTopic(ctx context.Context, topic *models.Topic) error
	ListTopics(ctx context.Context, userID, subjectID int64) ([]models.Topic, error)
	UpdateTopic(ctx context.Context, userID int64, topic *models.Topic) error
	DeleteTopic(ctx context.Context, userID, topicID int64) error

	CreateSubtopic(ctx context.Context, st *models.Subtopic) error
	GetSubtopic(ctx context.Context, userID, id int64) (*models.Subtopic, error)
	ListSubtopics(ctx context.Context, userID, subjectID int64) ([]models.Subtopic, error)
	UpdateSubtopic(ctx context.Context, userID int64, st *models.Subtopic) error
	DeleteSubtopic(ctx context.Context, userID, id int64) error

	CreatePracticePaper(ctx context.Context, p *models.PracticePaper) error
	GetPracticePaper(ctx context.Context, userID, id int64) (*models.PracticePaper, error)
	ListPracticePapers(ctx context.Context, find *models.FindPracticePaper) ([]models.PracticePaper, error)
	UpdatePracticePaper(ctx context.Context, userID int64, p *models.PracticePaper) error
	DeletePracticePaper(ctx context.Context, userID, id int64) error
	SavePracticePaperQuestion(ctx context.Context, q *models.PracticePaperQuestion) (bool, error)
	GetPracticePaperQuestion(ctx context.Context, userID, id int64) (*models.PracticePaperQuestion, error)
	ListPracticePaperQuestions(ctx context.Context, userID, paperID int64) ([]models.PracticePaperQuestion, error)
	UpdatePracticePaperQuestion(ctx context.Context, userID int64, q *models.PracticePaperQuestion) error
	DeletePracticePaperQuestion(ctx context.Context, userID, id int64) error
	AddPracticePaperLog(ctx context.Context, userID int64, log *models.PracticePaperLog, paper *models.PracticePaper) error
	ListPracticePaperLogs(ctx context.Context, userID, paperID int64) ([]models.PracticePaperLog, error)

	CreateNote(ctx context.Context, n *models.Note) error
	GetNote(ctx context.Context, userID, id int64) (*models.Note, error)
	ListNotes(ctx context.Context, find *models.FindNote) ([]models.Note, error)
	UpdateNote(ctx context.Context, n *models.Note) error
	TouchNote(ctx context.Context, userID, id int64, at time.Time) error
	DeleteNote(ctx context.Context, userID, id int64) error

	CreateStudySession(ctx context.Context, session *models.StudySession) error
	UpdateStudySession(ctx context.Context, session *models.StudySession) error
	ListStudySessions(ctx context.Context, find *models.FindStudySession) ([]models.StudySession, error)

	CreateSATSession(ctx context.Context, session *models.SATSession) error
	GetSATSession(ctx context.Context, userID, id int64) (*models.SATSession, error)
	ListSATSessions(ctx context.Context, find *models.FindSATSession) ([]models.SATSession, error)
	UpdateSATSession(ctx context.Context, session *models.SATSession) error
	DeleteSATSession(ctx context.Context, userID, id int64) error

	CreateLearningProject(ctx context.Context, p *models.LearningProject) error
	GetLearningProject(ctx context.Context, userID, id int64) (*models.LearningProject, error)
	ListLearningProjects(ctx context.Context, find *models.FindLearningProject) ([]models.LearningProject, error)
	UpdateLearningProject(ctx context.Context, p *models.LearningProject) error
	DeleteLearningProject(ctx context.Context, userID, id int64) error
	AddLearningSession(ctx context.Context, session *models.LearningSession, project *models.LearningProject) error
	ListLearningSessions(ctx context.Context, find *models.FindLearningSession) ([]models.LearningSession, error)

	CreateExam(ctx context.Context, exam *models.Exam) error
	GetExam(ctx context.Context, userID, id int64) (*models.Exam, error)
	ListExams(ctx context.Context, find *models.FindExam) ([]models.Exam, error)
	UpdateExam(ctx context.Context, exam *models.Exam) error
	DeleteExam(ctx context.Context, userID, id int64) error

	CreateEssay(ctx context.Context, e *models.Essay) error
	GetEssay(ctx context.Context, userID, id int64) (*models.Essay, error)
	ListEssays(ctx context.Context, find *models.FindRecord) ([]models.Essay, error)
	UpdateEssay(ctx context.Context, e *models.Essay) error
	DeleteEssay(ctx context.Context, userID, id int64) error

	CreateVocabulary(ctx context.Context, v *models.Vocabulary) error
	GetVocabulary(ctx context.Context, userID, id int64) (*models.Vocabulary, error)
	ListVocabulary(ctx context.Context, find *models.FindRecord) ([]models.Vocabulary, error)
	UpdateVocabulary(ctx context.Context, v *models.Vocabulary) error
	DeleteVocabulary(ctx context.Context, userID, id int64) error

	CreateGrammarRule(ctx context.Context, g *models.GrammarRule) error
	GetGrammarRule(ctx context.Context, userID, id int64) (*models.GrammarRule, error)
	ListGrammarRules(ctx context.Context, find *models.FindRecord) ([]models.GrammarRule, error)
	UpdateGrammarRule(ctx context.Context, g *models.GrammarRule) error
	DeleteGrammarRule(ctx context.Context, userID, id int64) error

	CreateErrorEntry(ctx context.Context, e *models.ErrorEntry) error
	GetErrorEntry(ctx context.Context, userID, id int64) (*models.ErrorEntry, error)
	ListErrorEntries(ctx context.Context, find *models.FindRecord) ([]models.ErrorEntry, error)
	UpdateErrorEntry(ctx context.Context, e *models.ErrorEntry) error
	DeleteErrorEntry(ctx context.Context, userID, id int64) error

	CountGrammarRules(ctx context.Context, userID int64, status *string) (int, error)
	CountVocabulary(ctx context.Context, userID int64, learned *bool, since *time.Time) (int, error)
	CountEssays(ctx context.Context, userID int64) (int, error)
	CountErrorEntries(ctx context.Context, userID int64, resolved *bool) (int, error)
}

// Service runs the study workflows for explicitly given users
type Service struct {
	store     Store
	scheduler *revision.Scheduler
	loc       *time.Location
	clock     func() time.Time
	logger    *slog.Logger
}

// Option configures a Service
type Option func(*Service)

// WithLocation sets the time zone that decides calendar days
func WithLocation(loc *time.Location) Option {
	return func(s *Service) { s.loc = loc }
}

// WithClock replaces time.Now
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithLogger sets the logger
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a new service instance
func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		loc:    time.UTC,
		clock:  time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.scheduler = revision.NewScheduler(store)
	return s
}

// Scheduler returns the revision scheduler used by the service
func (s *Service) Scheduler() *revision.Scheduler {
	return s.scheduler
}

// Location returns the time zone calendar days are computed in
func (s *Service) Location() *time.Location {
	return s.loc
}

// Now returns the service clock's time in its location
func (s *Service) Now() time.Time {
	return s.now()
}

func (s *Service) now() time.Time {
	return s.clock().In(s.loc)
}

func boolPtr(b bool) *bool { return &b }

func strPtr(v string) *string { return &v }

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
