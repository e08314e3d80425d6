package models

import "time"

// Note is study material attached to a subject, topic or subtopic. Only the
// metadata is stored; FileURL points at wherever the file lives.
type Note struct {
	ID           int64      `json:"id" db:"id"`
	UserID       int64      `json:"userId" db:"user_id"`
	SubjectID    *int64     `json:"subjectId" db:"subject_id"`
	TopicID      *int64     `json:"topicId" db:"topic_id"`
	SubtopicID   *int64     `json:"subtopicId" db:"subtopic_id"`
	Title        string     `json:"title" db:"title"`
	Content      string     `json:"content" db:"content"`
	FileURL      string     `json:"fileUrl" db:"file_url"`
	FileType     string     `json:"fileType" db:"file_type"`
	LastPosition string     `json:"lastPosition" db:"last_position"`
	LastViewedAt *time.Time `json:"lastViewedAt" db:"last_viewed_at"`
	CreatedAt    time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" db:"updated_at"`
}
