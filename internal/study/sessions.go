package study

import (
	"context"
	"regexp"
	"time"

	"github.com/pkg/errors"

	"github.com/example/studytrack/internal/core"
	"github.com/example/studytrack/internal/dateutil"
	"github.com/example/studytrack/pkg/models"
)

// dailySessionMinutes is the duration given to sessions logged automatically.
const dailySessionMinutes = 30

const sourceYouTube = "youtube"

var (
	youtubeWatchRe = regexp.MustCompile(`(?:youtube\.com/watch\?v=|youtu\.be/)([^&\s]+)`)
	youtubeEmbedRe = regexp.MustCompile(`youtube\.com/embed/([^&\s]+)`)
)

// ExtractVideoID returns the video id of a YouTube watch, short or embed link.
func ExtractVideoID(url string) string {
	if m := youtubeWatchRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	if m := youtubeEmbedRe.FindStringSubmatch(url); m != nil {
		return m[1]
	}
	return ""
}

type StudySessionInput struct {
	Date       *time.Time `json:"date"`
	Activities []string   `json:"activities" validate:"dive,notblank,max=50"`
	Duration   int        `json:"duration" validate:"gte=0,lte=1440"`
}

// ListStudySessions returns the user's study sessions, most recent first
func (s *Service) ListStudySessions(ctx context.Context, userID int64) ([]models.StudySession, error) {
	return s.store.ListStudySessions(ctx, &models.FindStudySession{UserID: userID})
}

// CreateStudySession records a study session. The date defaults to today.
func (s *Service) CreateStudySession(ctx context.Context, userID int64, in StudySessionInput) (*models.StudySession, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	date := now
	if in.Date != nil {
		date = in.Date.In(s.loc)
	}
	activities := models.StringList{}
	if in.Activities != nil {
		activities = in.Activities
	}
	session := &models.StudySession{
		UserID:     userID,
		Date:       date,
		Activities: activities,
		Duration:   in.Duration,
		CreatedAt:  now,
	}
	if err := s.store.CreateStudySession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// LogDailyStudySession makes sure today's study session exists and lists activity.
func (s *Service) LogDailyStudySession(ctx context.Context, userID int64, activity string) (*models.StudySession, error) {
	switch activity {
	case models.ActivityGrammar, models.ActivityVocabulary, models.ActivityEssay:
	default:
		return nil, errors.Wrapf(core.ErrInvalidInput, "unknown activity %q", activity)
	}

	now := s.now()
	today := dateutil.StartOfDay(now)
	tomorrow := dateutil.AddDays(today, 1)
	sessions, err := s.store.ListStudySessions(ctx, &models.FindStudySession{
		UserID: userID,
		From:   &today,
		To:     &tomorrow,
		Limit:  1,
	})
	if err != nil {
		return nil, err
	}

	if len(sessions) == 0 {
		session := &models.StudySession{
			UserID:     userID,
			Date:       today,
			Activities: models.StringList{activity},
			Duration:   dailySessionMinutes,
			CreatedAt:  now,
		}
		if err := s.store.CreateStudySession(ctx, session); err != nil {
			return nil, err
		}
		return session, nil
	}

	session := &sessions[0]
	if session.Activities.Contains(activity) {
		return session, nil
	}
	session.Activities = append(session.Activities, activity)
	if err := s.store.UpdateStudySession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// logActivity records activity on today's session. Failures are only logged so
// the record that triggered it is still returned.
func (s *Service) logActivity(ctx context.Context, userID int64, activity string) {
	if _, err := s.LogDailyStudySession(ctx, userID, activity); err != nil {
		s.logger.Warn("failed to log daily study session", "user", userID, "activity", activity, "err", err)
	}
}

type SATSessionInput struct {
	Topic      string     `json:"topic" validate:"required,notblank,max=200"`
	Source     string     `json:"source" validate:"max=50"`
	YoutubeURL string     `json:"youtubeUrl" validate:"omitempty,url"`
	Timestamp  int        `json:"timestamp" validate:"gte=0"`
	Duration   int        `json:"duration" validate:"gte=0,lte=1440"`
	Notes      string     `json:"notes" validate:"max=5000"`
	Completed  bool       `json:"completed"`
	Date       *time.Time `json:"date"`
}

type SATSessionPatch struct {
	Topic      *string `json:"topic" validate:"omitempty,notblank,max=200"`
	Source     *string `json:"source" validate:"omitempty,max=50"`
	YoutubeURL *string `json:"youtubeUrl" validate:"omitempty,url"`
	Timestamp  *int    `json:"timestamp" validate:"omitempty,gte=0"`
	Duration   *int    `json:"duration" validate:"omitempty,gte=0,lte=1440"`
	Notes      *string `json:"notes" validate:"omitempty,max=5000"`
	Completed  *bool   `json:"completed"`
}

// ListSATSessions returns the user's SAT sessions, most recent first
func (s *Service) ListSATSessions(ctx context.Context, userID int64) ([]models.SATSession, error) {
	return s.store.ListSATSessions(ctx, &models.FindSATSession{UserID: userID})
}

// CreateSATSession records an SAT practice session
func (s *Service) CreateSATSession(ctx context.Context, userID int64, in SATSessionInput) (*models.SATSession, error) {
	if err := core.Validate.Struct(in); err != nil {
		return nil, err
	}
	now := s.now()
	session := &models.SATSession{
		UserID:     userID,
		Topic:      core.CleanString(in.Topic),
		Source:     orDefault(in.Source, "other"),
		YoutubeURL: in.YoutubeURL,
		Timestamp:  in.Timestamp,
		Duration:   in.Duration,
		Notes:      in.Notes,
		Completed:  in.Completed,
		Date:       now,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if in.Date != nil {
		session.Date = in.Date.In(s.loc)
	}
	if session.Source == sourceYouTube {
		session.VideoID = ExtractVideoID(session.YoutubeURL)
	}
	if err := s.store.CreateSATSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// UpdateSATSession applies a partial update
func (s *Service) UpdateSATSession(ctx context.Context, userID, id int64, patch SATSessionPatch) (*models.SATSession, error) {
	if err := core.Validate.Struct(patch); err != nil {
		return nil, err
	}
	session, err := s.store.GetSATSession(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, notFound("SAT session", id)
	}

	if patch.Topic != nil {
		session.Topic = core.CleanString(*patch.Topic)
	}
	if patch.Source != nil {
		session.Source = orDefault(*patch.Source, "other")
	}
	if patch.YoutubeURL != nil {
		session.YoutubeURL = *patch.YoutubeURL
	}
	if patch.Timestamp != nil {
		session.Timestamp = *patch.Timestamp
	}
	if patch.Duration != nil {
		session.Duration = *patch.Duration
	}
	if patch.Notes != nil {
		session.Notes = *patch.Notes
	}
	if patch.Completed != nil {
		session.Completed = *patch.Completed
	}
	session.VideoID = ""
	if session.Source == sourceYouTube {
		session.VideoID = ExtractVideoID(session.YoutubeURL)
	}
	session.UpdatedAt = s.now()

	if err := s.store.UpdateSATSession(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// DeleteSATSession removes an SAT session
func (s *Service) DeleteSATSession(ctx context.Context, userID, id int64) error {
	return s.store.DeleteSATSession(ctx, userID, id)
}
