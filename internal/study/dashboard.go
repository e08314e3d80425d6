package study

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/studytrack/internal/dateutil"
	"github.com/example/studytrack/internal/streak"
	"github.com/example/studytrack/pkg/models"
)

const (
	dashboardListSize = 5
	// practice papers due within this window show up as reminders
	reminderLookahead = 3 * 24 * time.Hour
)

// Dashboard gathers the home page summary of the user
func (s *Service) Dashboard(ctx context.Context, userID int64) (*models.Dashboard, error) {
	now := s.now()

	var (
		exams     []models.Exam
		revisions []models.Revision
		projects  []models.LearningProject
		reminders []models.PracticePaper
		satDates  []time.Time
		study     []time.Time
	)
	inProgress := models.ProjectInProgress

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		exams, err = s.store.ListExams(gctx, &models.FindExam{
			UserID:    userID,
			Completed: boolPtr(false),
			Limit:     dashboardListSize,
		})
		return err
	})
	g.Go(func() (err error) {
		revisions, err = s.scheduler.GetPendingRevisions(gctx, userID, now)
		return err
	})
	g.Go(func() (err error) {
		projects, err = s.store.ListLearningProjects(gctx, &models.FindLearningProject{
			UserID: userID,
			Status: &inProgress,
			Limit:  dashboardListSize,
		})
		return err
	})
	g.Go(func() (err error) {
		before := now.Add(reminderLookahead)
		reminders, err = s.store.ListPracticePapers(gctx, &models.FindPracticePaper{
			UserID:         userID,
			ReminderBefore: &before,
		})
		return err
	})
	g.Go(func() error {
		sessions, err := s.store.ListSATSessions(gctx, &models.FindSATSession{UserID: userID})
		if err != nil {
			return err
		}
		satDates = make([]time.Time, len(sessions))
		for i, ss := range sessions {
			satDates[i] = ss.Date
		}
		return nil
	})
	g.Go(func() error {
		sessions, err := s.store.ListStudySessions(gctx, &models.FindStudySession{UserID: userID})
		if err != nil {
			return err
		}
		study = make([]time.Time, len(sessions))
		for i, ss := range sessions {
			study[i] = ss.Date
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	s.withCountdown(exams)
	for i := range projects {
		withProgress(&projects[i])
	}

	streaks := models.Streaks{
		Study:    streak.Compute(study, now).Current,
		SAT:      streak.Compute(satDates, now).Current,
		Learning: learningStreak(projects, now),
	}
	streaks.Unified = streak.Unified(map[string]int{
		"study":    streaks.Study,
		"sat":      streaks.SAT,
		"learning": streaks.Learning,
	})

	top := revisions
	if len(top) > dashboardListSize {
		top = top[:dashboardListSize]
	}

	return &models.Dashboard{
		Streaks:                streaks,
		UpcomingExams:          exams,
		PendingRevisions:       top,
		ActiveLearningProjects: projects,
		UpcomingReminders:      reminders,
		Stats: models.DashboardCounts{
			TotalExams:        len(exams),
			TotalRevisionsDue: len(revisions),
			ActiveProjects:    len(projects),
		},
	}, nil
}

// learningStreak is the largest daysSpent among projects studied today or yesterday.
func learningStreak(projects []models.LearningProject, now time.Time) int {
	var best int
	for _, p := range projects {
		if p.LastStudied == nil {
			continue
		}
		if dateutil.DaysBetween(p.LastStudied.In(now.Location()), now) <= 1 {
			best = max(best, p.DaysSpent)
		}
	}
	return best
}
