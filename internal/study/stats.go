package study

import (
	"context"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/studytrack/internal/dateutil"
	"github.com/example/studytrack/internal/streak"
	"github.com/example/studytrack/pkg/models"
)

// statsSessionWindow bounds the study sessions the streak report looks at.
const statsSessionWindow = 365

// Stats builds the progress report of the user
func (s *Service) Stats(ctx context.Context, userID int64) (*models.Statistics, error) {
	now := s.now()
	weekStart := dateutil.StartOfWeek(now)

	var (
		stats    models.Statistics
		essays   []models.Essay
		sessions []models.StudySession
	)
	g, gctx := errgroup.WithContext(ctx)
	count := func(dst *int, fn func(context.Context) (int, error)) func() error {
		return func() error {
			n, err := fn(gctx)
			*dst = n
			return err
		}
	}

	g.Go(count(&stats.Grammar.Total, func(ctx context.Context) (int, error) {
		return s.store.CountGrammarRules(ctx, userID, nil)
	}))
	g.Go(count(&stats.Grammar.Understood, func(ctx context.Context) (int, error) {
		return s.store.CountGrammarRules(ctx, userID, strPtr(models.GrammarUnderstood))
	}))
	g.Go(count(&stats.Grammar.NeedsWork, func(ctx context.Context) (int, error) {
		return s.store.CountGrammarRules(ctx, userID, strPtr(models.GrammarNeedsWork))
	}))
	g.Go(count(&stats.Vocabulary.Total, func(ctx context.Context) (int, error) {
		return s.store.CountVocabulary(ctx, userID, nil, nil)
	}))
	g.Go(count(&stats.Vocabulary.Learned, func(ctx context.Context) (int, error) {
		return s.store.CountVocabulary(ctx, userID, boolPtr(true), nil)
	}))
	g.Go(count(&stats.Vocabulary.ThisWeek, func(ctx context.Context) (int, error) {
		return s.store.CountVocabulary(ctx, userID, nil, &weekStart)
	}))
	g.Go(count(&stats.Essays.Total, func(ctx context.Context) (int, error) {
		return s.store.CountEssays(ctx, userID)
	}))
	g.Go(count(&stats.Errors.Total, func(ctx context.Context) (int, error) {
		return s.store.CountErrorEntries(ctx, userID, nil)
	}))
	g.Go(count(&stats.Errors.Unresolved, func(ctx context.Context) (int, error) {
		return s.store.CountErrorEntries(ctx, userID, boolPtr(false))
	}))
	g.Go(func() (err error) {
		essays, err = s.store.ListEssays(gctx, &models.FindRecord{UserID: userID})
		return err
	})
	g.Go(func() (err error) {
		sessions, err = s.store.ListStudySessions(gctx, &models.FindStudySession{
			UserID: userID,
			Limit:  statsSessionWindow,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	stats.Essays.WordCountTrend = wordCountTrend(essays)
	stats.Streak = streakStats(sessions, now)
	return &stats, nil
}

// wordCountTrend lists essay lengths, oldest first
func wordCountTrend(essays []models.Essay) []models.WordCountPoint {
	trend := make([]models.WordCountPoint, 0, len(essays))
	for _, e := range essays {
		trend = append(trend, models.WordCountPoint{Date: e.CreatedAt, WordCount: e.WordCount})
	}
	slices.SortStableFunc(trend, func(a, b models.WordCountPoint) int {
		return a.Date.Compare(b.Date)
	})
	return trend
}

// streakStats reports the streak over the given sessions. Days missed are the
// days since the oldest session without any session.
func streakStats(sessions []models.StudySession, now time.Time) models.StreakStats {
	dates := make([]time.Time, len(sessions))
	for i, ss := range sessions {
		dates[i] = ss.Date
	}
	days := streak.Days(dates, now.Location())
	if len(days) == 0 {
		return models.StreakStats{}
	}

	res := streak.Compute(days, now)
	oldest := days[len(days)-1]
	missed := max(0, dateutil.DaysBetween(oldest, now)-len(days)+1)
	return models.StreakStats{
		Current:    res.Current,
		Longest:    res.Longest,
		TotalDays:  len(days),
		DaysMissed: missed,
	}
}
