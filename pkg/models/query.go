package models

import "time"

// Find* structs filter list queries. Nil fields are not applied.

type FindRevision struct {
	ID              *int64
	UserID          *int64
	TopicID         *int64
	Completed       *bool
	ScheduledBefore *time.Time
	Limit           int
}

type FindStudySession struct {
	UserID int64
	From   *time.Time
	To     *time.Time // exclusive
	Limit  int
}

type FindSATSession struct {
	UserID int64
	From   *time.Time
	To     *time.Time
}

type FindLearningProject struct {
	UserID int64
	Status *string
	Limit  int
}

type FindLearningSession struct {
	UserID    int64
	ProjectID *int64
	From      *time.Time
	To        *time.Time
	Limit     int
}

type FindExam struct {
	UserID    int64
	Completed *bool
	Limit     int
}

// FindRecord filters the user-owned journal tables (essays, vocabulary, grammar, errors).
type FindRecord struct {
	UserID int64
	From   *time.Time // created_at >= From
	To     *time.Time // created_at < To
}

type FindPracticePaper struct {
	UserID         int64
	SubjectID      *int64
	TopicID        *int64
	ReminderBefore *time.Time // only papers with a reminder due by then, soonest first
}

type FindNote struct {
	UserID     int64
	SubjectID  *int64
	TopicID    *int64
	SubtopicID *int64
}
