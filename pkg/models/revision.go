package models

import "time"

// Revision represents a scheduled review of a completed topic
type Revision struct {
	ID            int64      `json:"id" db:"id"`
	TopicID       int64      `json:"topicId" db:"topic_id"`
	TopicName     string     `json:"topicName" db:"topic_name"`
	SubjectID     int64      `json:"subjectId" db:"subject_id"`
	SubjectName   string     `json:"subjectName" db:"subject_name"`
	ScheduledFor  time.Time  `json:"scheduledFor" db:"scheduled_for"`
	SessionNumber int        `json:"sessionNumber" db:"session_number"`
	Interval      int        `json:"interval" db:"interval_days"`
	Completed     bool       `json:"completed" db:"completed"`
	CompletedAt   *time.Time `json:"completedAt" db:"completed_at"`
	Notes         string     `json:"notes" db:"notes"`
	CreatedAt     time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time  `json:"updatedAt" db:"updated_at"`
}
