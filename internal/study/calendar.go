package study

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/example/studytrack/internal/dateutil"
	"github.com/example/studytrack/pkg/models"
)

// Calendar tags besides the study session activities
const (
	TagStudy    = "study"
	TagSAT      = "sat"
	TagLearning = "learning"
	TagError    = "error"
)

// defaultCalendarDays is the range shown when no month is requested.
const defaultCalendarDays = 60

// CalendarRange returns the [from, to) range of the calendar. A zero year or
// month selects the last 60 days up to the end of today.
func (s *Service) CalendarRange(year int, month time.Month) (time.Time, time.Time) {
	if year > 0 && month >= time.January && month <= time.December {
		from := dateutil.StartOfMonth(year, month, s.loc)
		return from, from.AddDate(0, 1, 0)
	}
	to := dateutil.AddDays(dateutil.StartOfDay(s.now()), 1)
	return dateutil.AddDays(to, -defaultCalendarDays), to
}

// ActivityCalendar lists the kinds of activity recorded on each day of [from, to),
// oldest day first. Days without activity are omitted.
func (s *Service) ActivityCalendar(ctx context.Context, userID int64, from, to time.Time) ([]models.CalendarDay, error) {
	var (
		study    []models.StudySession
		sat      []models.SATSession
		learning []models.LearningSession
		grammar  []models.GrammarRule
		vocab    []models.Vocabulary
		essays   []models.Essay
		errs     []models.ErrorEntry
	)
	record := &models.FindRecord{UserID: userID, From: &from, To: &to}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		study, err = s.store.ListStudySessions(gctx, &models.FindStudySession{UserID: userID, From: &from, To: &to})
		return err
	})
	g.Go(func() (err error) {
		sat, err = s.store.ListSATSessions(gctx, &models.FindSATSession{UserID: userID, From: &from, To: &to})
		return err
	})
	g.Go(func() (err error) {
		learning, err = s.store.ListLearningSessions(gctx, &models.FindLearningSession{UserID: userID, From: &from, To: &to})
		return err
	})
	g.Go(func() (err error) {
		grammar, err = s.store.ListGrammarRules(gctx, record)
		return err
	})
	g.Go(func() (err error) {
		vocab, err = s.store.ListVocabulary(gctx, record)
		return err
	})
	g.Go(func() (err error) {
		essays, err = s.store.ListEssays(gctx, record)
		return err
	})
	g.Go(func() (err error) {
		errs, err = s.store.ListErrorEntries(gctx, record)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	days := map[string]map[string]struct{}{}
	mark := func(t time.Time, tags ...string) {
		key := dateutil.DayKey(t.In(s.loc))
		set, ok := days[key]
		if !ok {
			set = map[string]struct{}{}
			days[key] = set
		}
		for _, tag := range tags {
			set[tag] = struct{}{}
		}
	}

	for _, ss := range study {
		mark(ss.Date, TagStudy)
		mark(ss.Date, ss.Activities...)
	}
	for _, ss := range sat {
		mark(ss.Date, TagSAT)
	}
	for _, ls := range learning {
		mark(ls.Date, TagLearning)
	}
	for _, r := range grammar {
		mark(r.CreatedAt, models.ActivityGrammar)
	}
	for _, v := range vocab {
		mark(v.CreatedAt, models.ActivityVocabulary)
	}
	for _, e := range essays {
		mark(e.CreatedAt, models.ActivityEssay)
	}
	for _, e := range errs {
		mark(e.CreatedAt, TagError)
	}

	calendar := make([]models.CalendarDay, 0, len(days))
	for key, set := range days {
		tags := make([]string, 0, len(set))
		for tag := range set {
			tags = append(tags, tag)
		}
		sort.Strings(tags)
		calendar = append(calendar, models.CalendarDay{Date: key, Activities: tags})
	}
	sort.Slice(calendar, func(i, j int) bool { return calendar[i].Date < calendar[j].Date })
	return calendar, nil
}
